package scene

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the element type of a node.
type Kind string

// Supported node kinds.
const (
	KindSVG    Kind = "svg"
	KindGroup  Kind = "g"
	KindLine   Kind = "line"
	KindRect   Kind = "rect"
	KindCircle Kind = "circle"
	KindText   Kind = "text"
	KindPath   Kind = "path"
)

const transformAttr = "transform"

// Attr is a single wire-format attribute on a node.
type Attr struct {
	Name  string
	Value string
}

// Node is an element in the retained scene tree.
// Nodes are created detached and become part of a tree through [Mount].
type Node struct {
	kind     Kind
	attrs    []Attr
	text     string
	parent   *Node
	children []*Node
}

// CreateNode allocates a new, unmounted node of the given kind.
func CreateNode(kind Kind) *Node {
	return &Node{kind: kind}
}

// Mount appends child as the last child of parent.
// A nil parent is not an error: the child simply stays detached.
func Mount(parent, child *Node) {
	if parent == nil {
		return
	}
	child.parent = parent
	parent.children = append(parent.children, child)
}

// Kind returns the node's element kind.
func (n *Node) Kind() Kind { return n.kind }

// Parent returns the node this one is mounted under, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the mounted children in mount order.
func (n *Node) Children() []*Node { return n.children }

// Attributes returns a copy of the node's attributes in insertion order.
func (n *Node) Attributes() []Attr { return slices.Clone(n.attrs) }

// Attribute returns the wire value of the named attribute.
func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttribute writes name=FormatValue(value), keeping the original position
// if the attribute already exists. name is used verbatim.
func (n *Node) SetAttribute(name string, value any) {
	v := FormatValue(value)
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs[i].Value = v
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: v})
}

// TextContent returns the node's character data.
func (n *Node) TextContent() string { return n.text }

// SetTextContent replaces the node's character data.
func (n *Node) SetTextContent(s string) { n.text = s }

// Transform returns the node's transform attribute, or "" if unset.
func (n *Node) Transform() string {
	t, _ := n.Attribute(transformAttr)
	return t
}

// SetTransform overwrites the node's transform attribute.
func (n *Node) SetTransform(s string) { n.SetAttribute(transformAttr, s) }

// ApplyAttributes converts every key to wire form with [KebabCase] and sets it
// on n. Keys are applied in sorted order. Nil values are skipped so the host
// default applies.
func ApplyAttributes(n *Node, attrs map[string]any) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		v := attrs[k]
		if v == nil {
			continue
		}
		n.SetAttribute(KebabCase(k), v)
	}
}

// ApplyTransform composes t after the node's existing transform, separated by
// a single space. A nil node is ignored.
func ApplyTransform(n *Node, t string) {
	if n == nil {
		return
	}
	if old := n.Transform(); old != "" {
		t = old + " " + t
	}
	n.SetTransform(t)
}

// KebabCase converts a camel-case attribute name to its hyphenated wire form
// by replacing every ASCII upper-case letter with '-' and its lower-case form.
//
//	strokeWidth   -> stroke-width
//	fontSize      -> font-size
//	textAnchor    -> text-anchor
func KebabCase(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c >= 'A' && c <= 'Z' {
			b.WriteByte('-')
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// FormatValue stringifies an attribute value the way the wire format expects.
// Floats use the shortest representation that round-trips (10, 1.5, NaN).
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// Count returns the number of nodes in the subtree rooted at n, including n.
func Count(n *Node) int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.children {
		total += Count(c)
	}
	return total
}
