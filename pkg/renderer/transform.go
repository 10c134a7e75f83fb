package renderer

import (
	"strings"

	"github.com/MrZhangFengfeng/dataVisualization/pkg/scene"
)

// Transform appends kind(p1, p2, ...) to the transform of ctx.Group.
// Each call is composed after the previous ones, in call order.
func Transform(kind string, ctx *Context, params ...float64) {
	args := make([]string, len(params))
	for i, p := range params {
		args[i] = scene.FormatValue(p)
	}
	scene.ApplyTransform(ctx.Group, kind+"("+strings.Join(args, ", ")+")")
}

// Translate moves the current coordinate system by (tx, ty).
func Translate(ctx *Context, tx, ty float64) {
	Transform("translate", ctx, tx, ty)
}

// Rotate rotates the current coordinate system by theta degrees.
func Rotate(ctx *Context, theta float64) {
	Transform("rotate", ctx, theta)
}

// Scale scales the current coordinate system by (sx, sy).
func Scale(ctx *Context, sx, sy float64) {
	Transform("scale", ctx, sx, sy)
}

// Save mounts a fresh group under ctx.Group and makes it the current group.
// Transforms applied afterwards only reach shapes drawn after the call, while
// everything already applied to the outer group still applies by nesting.
//
// There is no matching restore. Keep a copy of the context to leave the scope:
//
//	saved := *ctx
//	renderer.Save(ctx)
//	renderer.Rotate(ctx, 45)
//	...
//	*ctx = saved
func Save(ctx *Context) {
	g := scene.CreateNode(scene.KindGroup)
	scene.Mount(ctx.Group, g)
	ctx.Group = g
}
