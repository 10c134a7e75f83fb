package scene

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewDocument(t *testing.T) {
	root := NewDocument(640, 480)

	if root.Kind() != KindSVG {
		t.Errorf("Kind() = %q, want %q", root.Kind(), KindSVG)
	}
	checks := map[string]string{
		"xmlns":   svgNamespace,
		"width":   "640",
		"height":  "480",
		"viewBox": "0 0 640 480",
	}
	for name, want := range checks {
		if got, _ := root.Attribute(name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestRender(t *testing.T) {
	root := NewDocument(100, 50)
	g := CreateNode(KindGroup)
	Mount(root, g)
	ApplyTransform(g, "translate(10, 10)")

	r := CreateNode(KindRect)
	ApplyAttributes(r, map[string]any{"x": 0, "y": 0, "width": 20, "height": 10})
	Mount(g, r)

	txt := CreateNode(KindText)
	txt.SetTextContent("a < b & c")
	Mount(g, txt)

	want := `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="50" viewBox="0 0 100 50">
  <g transform="translate(10, 10)">
    <rect height="10" width="20" x="0" y="0"/>
    <text>a &lt; b &amp; c</text>
  </g>
</svg>
`
	if got := string(Render(root)); got != want {
		t.Errorf("Render() mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderEscapesAttributes(t *testing.T) {
	n := CreateNode(KindText)
	n.SetAttribute("font-family", `"Fira Code", monospace`)

	out := string(Render(n))
	if strings.Contains(out, `""Fira`) {
		t.Errorf("quotes were not escaped: %s", out)
	}
	if !strings.Contains(out, "&#34;Fira Code&#34;") {
		t.Errorf("expected escaped quotes, got %s", out)
	}
}

func TestEncode(t *testing.T) {
	root := NewDocument(10, 10)
	Mount(root, CreateNode(KindCircle))

	var buf bytes.Buffer
	if err := Encode(&buf, root); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), Render(root)) {
		t.Error("Encode() should write the same bytes as Render()")
	}
}
