package renderer

import (
	"testing"

	"github.com/MrZhangFengfeng/dataVisualization/pkg/scene"
)

func attr(t *testing.T, n *scene.Node, name string) string {
	t.Helper()
	v, ok := n.Attribute(name)
	if !ok {
		t.Fatalf("<%s> has no %q attribute", n.Kind(), name)
	}
	return v
}

func TestShapeMountsUnderGroup(t *testing.T) {
	root := scene.CreateNode(scene.KindGroup)
	ctx := NewContext(root)

	a := Shape(scene.KindLine, ctx, Attrs{"x1": 0, "y1": 0, "x2": 10, "y2": 10})
	b := Circle(ctx, Attrs{"cx": 5, "cy": 5, "r": 2})

	if ctx.Group != root {
		t.Error("Shape must not change ctx.Group")
	}
	children := root.Children()
	if len(children) != 2 || children[0] != a || children[1] != b {
		t.Errorf("children = %v, want [line circle] in call order", children)
	}
	if a.Kind() != scene.KindLine || b.Kind() != scene.KindCircle {
		t.Errorf("kinds = %s, %s", a.Kind(), b.Kind())
	}
}

func TestShapeNilGroup(t *testing.T) {
	ctx := &Context{}

	n := Shape(scene.KindRect, ctx, Attrs{"width": 1})
	if n == nil {
		t.Fatal("Shape() returned nil for detached node")
	}
	if n.Parent() != nil {
		t.Error("node should not be mounted when ctx.Group is nil")
	}
	if got := attr(t, n, "width"); got != "1" {
		t.Errorf("width = %q, want %q", got, "1")
	}
}

func TestShapeConvertsAttributeNames(t *testing.T) {
	ctx := NewContext(scene.CreateNode(scene.KindGroup))
	n := Line(ctx, Attrs{"strokeWidth": 2, "strokeLinecap": "round"})

	if got := attr(t, n, "stroke-width"); got != "2" {
		t.Errorf("stroke-width = %q", got)
	}
	if got := attr(t, n, "stroke-linecap"); got != "round" {
		t.Errorf("stroke-linecap = %q", got)
	}
}

func TestRect(t *testing.T) {
	tests := []struct {
		name                 string
		in                   Attrs
		wantX, wantY         string
		wantWidth, wantHight string
	}{
		{
			name:  "positive",
			in:    Attrs{"x": 10, "y": 20, "width": 30, "height": 40},
			wantX: "10", wantY: "20", wantWidth: "30", wantHight: "40",
		},
		{
			name:  "negative width",
			in:    Attrs{"x": 10, "y": 20, "width": -30, "height": 40},
			wantX: "-20", wantY: "20", wantWidth: "30", wantHight: "40",
		},
		{
			name:  "negative height",
			in:    Attrs{"x": 10, "y": 20, "width": 30, "height": -40},
			wantX: "10", wantY: "-20", wantWidth: "30", wantHight: "40",
		},
		{
			name:  "both negative",
			in:    Attrs{"x": 5.5, "y": 5.5, "width": -1.5, "height": -2.5},
			wantX: "4", wantY: "3", wantWidth: "1.5", wantHight: "2.5",
		},
		{
			name:  "zero size",
			in:    Attrs{"x": 7, "y": 8, "width": 0, "height": 0},
			wantX: "7", wantY: "8", wantWidth: "0", wantHight: "0",
		},
		{
			name:  "missing origin",
			in:    Attrs{"width": -10, "height": -20},
			wantX: "-10", wantY: "-20", wantWidth: "10", wantHight: "20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(scene.CreateNode(scene.KindGroup))
			n := Rect(ctx, tt.in)

			if got := attr(t, n, "x"); got != tt.wantX {
				t.Errorf("x = %q, want %q", got, tt.wantX)
			}
			if got := attr(t, n, "y"); got != tt.wantY {
				t.Errorf("y = %q, want %q", got, tt.wantY)
			}
			if got := attr(t, n, "width"); got != tt.wantWidth {
				t.Errorf("width = %q, want %q", got, tt.wantWidth)
			}
			if got := attr(t, n, "height"); got != tt.wantHight {
				t.Errorf("height = %q, want %q", got, tt.wantHight)
			}
		})
	}
}

func TestRectSignFlip(t *testing.T) {
	cases := [][4]float64{
		{0, 0, 10, 20},
		{5, -3, -8, 4},
		{-2.5, 1.25, 3.5, -7.75},
		{100, 100, -100, -100},
		{1, 2, 0, 5},
	}

	for _, c := range cases {
		x, y, w, h := c[0], c[1], c[2], c[3]
		ctx := NewContext(scene.CreateNode(scene.KindGroup))

		a := Rect(ctx, Attrs{"x": x, "y": y, "width": w, "height": h})
		b := Rect(ctx, Attrs{"x": x + w, "y": y + h, "width": -w, "height": -h})

		for _, name := range []string{"x", "y", "width", "height"} {
			if attr(t, a, name) != attr(t, b, name) {
				t.Errorf("rect(%v) %s: %q vs flipped %q", c, name, attr(t, a, name), attr(t, b, name))
			}
		}
	}
}

func TestRectDoesNotMutateInput(t *testing.T) {
	in := Attrs{"x": 10, "y": 10, "width": -5, "height": -5}
	Rect(NewContext(nil), in)

	if in["width"] != -5 || in["x"] != 10 {
		t.Errorf("input attrs were modified: %v", in)
	}
}

func TestRectPassesThroughNonNumeric(t *testing.T) {
	n := Rect(NewContext(nil), Attrs{"x": 1, "y": 2, "width": "50%", "height": "auto"})

	if got := attr(t, n, "width"); got != "50%" {
		t.Errorf("width = %q, want %q", got, "50%")
	}
	if got := attr(t, n, "x"); got != "1" {
		t.Errorf("x = %q, want %q", got, "1")
	}
}

func TestText(t *testing.T) {
	root := scene.CreateNode(scene.KindGroup)
	in := Attrs{"text": "hello", "x": 10, "y": 20, "fontSize": 12}
	n := Text(NewContext(root), in)

	if n.Kind() != scene.KindText {
		t.Errorf("Kind() = %q", n.Kind())
	}
	if n.TextContent() != "hello" {
		t.Errorf("TextContent() = %q, want %q", n.TextContent(), "hello")
	}
	if _, ok := n.Attribute("text"); ok {
		t.Error("text must not be written as an attribute")
	}
	if got := attr(t, n, "font-size"); got != "12" {
		t.Errorf("font-size = %q", got)
	}
	if _, ok := in["text"]; !ok {
		t.Error("caller's attrs should keep the text entry")
	}
	if len(root.Children()) != 1 {
		t.Error("text node should be mounted")
	}
}

func TestTextNumericContent(t *testing.T) {
	n := Text(NewContext(nil), Attrs{"text": 42.5})
	if n.TextContent() != "42.5" {
		t.Errorf("TextContent() = %q, want %q", n.TextContent(), "42.5")
	}
}

func TestPath(t *testing.T) {
	tests := []struct {
		name string
		d    any
		want string
	}{
		{
			name: "nested any",
			d:    []any{[]any{"M", 0, 0}, []any{"L", 1, 1}, []any{"Z"}},
			want: "M 0 0 L 1 1 Z",
		},
		{
			name: "slice of slices",
			d:    [][]any{{"M", 10, 10}, {"L", 100, 100}, {"L", 100, 10}, {"Z"}},
			want: "M 10 10 L 100 100 L 100 10 Z",
		},
		{
			name: "commands",
			d:    PathCommands{M(0, 0), C(1, 2, 3, 4, 5, 6), Z()},
			want: "M 0 0 C 1 2 3 4 5 6 Z",
		},
		{
			name: "command slice",
			d:    []Command{M(0.5, 0.5), H(3), V(4)},
			want: "M 0.5 0.5 H 3 V 4",
		},
		{
			name: "string passes through",
			d:    "M0,0L5,5",
			want: "M0,0L5,5",
		},
		{
			name: "arc flags",
			d:    PathCommands{M(0, 0), A(5, 5, 0, true, false, 10, 0)},
			want: "M 0 0 A 5 5 0 1 0 10 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Path(NewContext(nil), Attrs{"d": tt.d, "stroke": "black"})
			if got := attr(t, n, "d"); got != tt.want {
				t.Errorf("d = %q, want %q", got, tt.want)
			}
			if got := attr(t, n, "stroke"); got != "black" {
				t.Errorf("stroke = %q", got)
			}
		})
	}
}

func TestRing(t *testing.T) {
	root := scene.CreateNode(scene.KindGroup)
	nodes := Ring(NewContext(root), RingSpec{CX: 0, CY: 0, R1: 10, R2: 20, Fill: "red"})

	if len(nodes) != 3 {
		t.Fatalf("len(Ring()) = %d, want 3", len(nodes))
	}
	if len(root.Children()) != 3 {
		t.Errorf("mounted %d circles, want 3", len(root.Children()))
	}

	wantR := []string{"10", "15", "20"}
	for i, n := range nodes {
		if n.Kind() != scene.KindCircle {
			t.Errorf("nodes[%d].Kind() = %q", i, n.Kind())
		}
		if got := attr(t, n, "r"); got != wantR[i] {
			t.Errorf("nodes[%d] r = %q, want %q", i, got, wantR[i])
		}
		if got := attr(t, n, "fill"); got != "transparent" {
			t.Errorf("nodes[%d] fill = %q, want transparent", i, got)
		}
		if got := attr(t, n, "stroke"); got != "red" {
			t.Errorf("nodes[%d] stroke = %q, want red", i, got)
		}
	}

	if got := attr(t, nodes[1], "stroke-width"); got != "9" {
		t.Errorf("mid stroke-width = %q, want 9", got)
	}
	for _, i := range []int{0, 2} {
		if _, ok := nodes[i].Attribute("stroke-width"); ok {
			t.Errorf("nodes[%d] should leave stroke-width unset", i)
		}
	}
}

func TestRingExplicitStroke(t *testing.T) {
	width := 2.0
	nodes := Ring(NewContext(nil), RingSpec{
		CX: 5, CY: 6, R1: 10, R2: 30,
		Stroke: "black", StrokeWidth: &width, Fill: "gold",
		Attrs: Attrs{"opacity": 0.5},
	})

	for _, i := range []int{0, 2} {
		if got := attr(t, nodes[i], "stroke"); got != "black" {
			t.Errorf("nodes[%d] stroke = %q, want black", i, got)
		}
		if got := attr(t, nodes[i], "stroke-width"); got != "2" {
			t.Errorf("nodes[%d] stroke-width = %q, want 2", i, got)
		}
	}
	mid := nodes[1]
	if got := attr(t, mid, "stroke"); got != "gold" {
		t.Errorf("mid stroke = %q, want gold", got)
	}
	if got := attr(t, mid, "stroke-width"); got != "18" {
		t.Errorf("mid stroke-width = %q, want 18", got)
	}
	if got := attr(t, mid, "opacity"); got != "0.5" {
		t.Errorf("mid opacity = %q, want 0.5", got)
	}
	if got := attr(t, mid, "cx"); got != "5" {
		t.Errorf("mid cx = %q, want 5", got)
	}
	if _, ok := nodes[0].Attribute("opacity"); ok {
		t.Error("extra attrs belong to the ring body only")
	}
}

func TestRingZeroStrokeWidth(t *testing.T) {
	zero := 0.0
	nodes := Ring(NewContext(nil), RingSpec{R1: 10, R2: 20, Fill: "red", StrokeWidth: &zero})

	if got := attr(t, nodes[1], "stroke-width"); got != "9" {
		t.Errorf("mid stroke-width = %q, want 9", got)
	}
	for _, i := range []int{0, 2} {
		if got := attr(t, nodes[i], "stroke-width"); got != "0" {
			t.Errorf("nodes[%d] stroke-width = %q, want 0", i, got)
		}
	}
}

func TestRingNegativeBandIsNotClamped(t *testing.T) {
	nodes := Ring(NewContext(nil), RingSpec{R1: 10, R2: 10.5, Fill: "red"})

	if got := attr(t, nodes[1], "stroke-width"); got != "-0.5" {
		t.Errorf("mid stroke-width = %q, want -0.5", got)
	}
}
