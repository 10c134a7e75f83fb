package renderer

import (
	"maps"
	"math"

	"github.com/MrZhangFengfeng/dataVisualization/pkg/scene"
)

// Shape creates a node of kind, applies attrs to it and mounts it under
// ctx.Group. The context itself is left unchanged.
func Shape(kind scene.Kind, ctx *Context, attrs Attrs) *scene.Node {
	n := scene.CreateNode(kind)
	scene.ApplyAttributes(n, attrs)
	scene.Mount(ctx.Group, n)
	return n
}

// Line draws a line; attrs carry x1, y1, x2, y2.
func Line(ctx *Context, attrs Attrs) *scene.Node {
	return Shape(scene.KindLine, ctx, attrs)
}

// Rect draws a rectangle. Negative width or height is folded into the origin
// so the node always carries non-negative dimensions covering the same area.
func Rect(ctx *Context, attrs Attrs) *scene.Node {
	out := maps.Clone(attrs)
	if out == nil {
		out = Attrs{}
	}
	normalizeSpan(out, "x", "width")
	normalizeSpan(out, "y", "height")
	return Shape(scene.KindRect, ctx, out)
}

// normalizeSpan rewrites one axis of a rect: size' = |size|, and the origin
// moves by size unless size > 0. Non-numeric sizes pass through untouched.
func normalizeSpan(attrs Attrs, originKey, sizeKey string) {
	size, ok := toFloat(attrs[sizeKey])
	if !ok {
		return
	}
	attrs[sizeKey] = math.Abs(size)
	if size > 0 {
		return
	}
	// A missing origin is the SVG default of 0.
	origin, ok := toFloat(attrs[originKey])
	if !ok && attrs[originKey] != nil {
		return
	}
	attrs[originKey] = origin + size
}

// Circle draws a circle; attrs carry cx, cy and r.
func Circle(ctx *Context, attrs Attrs) *scene.Node {
	return Shape(scene.KindCircle, ctx, attrs)
}

// Text draws a text node. The "text" entry becomes the node's content rather
// than an attribute.
func Text(ctx *Context, attrs Attrs) *scene.Node {
	rest := maps.Clone(attrs)
	content := rest["text"]
	delete(rest, "text")

	n := Shape(scene.KindText, ctx, rest)
	n.SetTextContent(scene.FormatValue(content))
	return n
}

// Path draws a path. The "d" entry may be a [PathCommands] list or any nested
// []any of command tuples; it is flattened and joined with single spaces.
func Path(ctx *Context, attrs Attrs) *scene.Node {
	out := maps.Clone(attrs)
	if d, ok := out["d"]; ok {
		out["d"] = pathData(d)
	}
	return Shape(scene.KindPath, ctx, out)
}

// RingSpec describes an annulus between radii R1 and R2 centred on (CX, CY).
type RingSpec struct {
	CX          float64  `mapstructure:"cx"`
	CY          float64  `mapstructure:"cy"`
	R1          float64  `mapstructure:"r1"`
	R2          float64  `mapstructure:"r2"`
	Stroke      string   `mapstructure:"stroke"`
	StrokeWidth *float64 `mapstructure:"strokeWidth"`
	Fill        string   `mapstructure:"fill"`

	// Attrs holds any further styling for the ring body (the middle circle).
	Attrs Attrs `mapstructure:",remain"`
}

const defaultRingStrokeWidth = 1.0

// Ring draws an annulus as three transparent-filled circles and returns them
// as [inner, mid, outer]. The inner and outer strokes draw the ring's borders;
// the middle circle's stroke, coloured with Fill, draws the band itself.
//
// The band width is R2 - R1 - StrokeWidth, where an unset or zero StrokeWidth
// counts as 1. It is not clamped: a ring thinner than its borders yields a
// negative stroke-width.
func Ring(ctx *Context, spec RingSpec) []*scene.Node {
	stroke := spec.Stroke
	if stroke == "" {
		stroke = spec.Fill
	}
	var strokeWidth any
	boundary := defaultRingStrokeWidth
	if spec.StrokeWidth != nil {
		strokeWidth = *spec.StrokeWidth
		if *spec.StrokeWidth != 0 {
			boundary = *spec.StrokeWidth
		}
	}

	inner := Circle(ctx, Attrs{
		"fill":        "transparent",
		"stroke":      stroke,
		"strokeWidth": strokeWidth,
		"cx":          spec.CX,
		"cy":          spec.CY,
		"r":           spec.R1,
	})

	body := maps.Clone(spec.Attrs)
	if body == nil {
		body = Attrs{}
	}
	body["strokeWidth"] = spec.R2 - spec.R1 - boundary
	body["stroke"] = spec.Fill
	body["fill"] = "transparent"
	body["cx"] = spec.CX
	body["cy"] = spec.CY
	body["r"] = (spec.R1 + spec.R2) / 2
	mid := Circle(ctx, body)

	outer := Circle(ctx, Attrs{
		"fill":        "transparent",
		"stroke":      stroke,
		"strokeWidth": strokeWidth,
		"cx":          spec.CX,
		"cy":          spec.CY,
		"r":           spec.R2,
	})

	return []*scene.Node{inner, mid, outer}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	case uint32:
		return float64(x), true
	default:
		return 0, false
	}
}
