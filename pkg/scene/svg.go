package scene

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// NewDocument returns an svg root sized width x height with a matching viewBox.
func NewDocument(width, height float64) *Node {
	root := CreateNode(KindSVG)
	root.SetAttribute("xmlns", svgNamespace)
	root.SetAttribute("width", width)
	root.SetAttribute("height", height)
	root.SetAttribute("viewBox", "0 0 "+FormatValue(width)+" "+FormatValue(height))
	return root
}

// Render serializes the tree rooted at root as SVG markup.
func Render(root *Node) []byte {
	var buf bytes.Buffer
	writeNode(&buf, root, 0)
	return buf.Bytes()
}

// Encode writes the SVG markup of the tree rooted at root to w.
func Encode(w io.Writer, root *Node) error {
	_, err := w.Write(Render(root))
	return err
}

func writeNode(buf *bytes.Buffer, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(string(n.kind))
	for _, a := range n.attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		buf.WriteString(escape(a.Value))
		buf.WriteByte('"')
	}

	switch {
	case len(n.children) == 0 && n.text == "":
		buf.WriteString("/>\n")
	case len(n.children) == 0:
		buf.WriteByte('>')
		buf.WriteString(escape(n.text))
		buf.WriteString("</" + string(n.kind) + ">\n")
	default:
		buf.WriteString(">\n")
		if n.text != "" {
			buf.WriteString(indent + "  " + escape(n.text) + "\n")
		}
		for _, c := range n.children {
			writeNode(buf, c, depth+1)
		}
		buf.WriteString(indent + "</" + string(n.kind) + ">\n")
	}
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
