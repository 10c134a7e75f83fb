// Package renderer draws SVG primitives into a [scene] tree.
//
// All functions work on a shared [Context] whose Group field is the current
// mount point. Shape functions ([Line], [Rect], [Circle], [Text], [Path],
// [Ring]) create nodes under Group and return them; transform functions
// ([Translate], [Rotate], [Scale]) compose onto Group's transform; [Save]
// opens a nested group and makes it current.
//
//	root := scene.NewDocument(200, 200)
//	ctx := renderer.NewContext(root)
//
//	renderer.Translate(ctx, 100, 100)
//	renderer.Ring(ctx, renderer.RingSpec{R1: 40, R2: 60, Fill: "steelblue"})
//
//	saved := *ctx
//	renderer.Save(ctx)
//	renderer.Rotate(ctx, 45)
//	renderer.Rect(ctx, renderer.Attrs{"x": -10, "y": -10, "width": 20, "height": 20})
//	*ctx = saved
//
// Attribute names are camel case (strokeWidth) and are converted to the
// hyphenated wire form on the node. Nothing here validates input: malformed
// attributes end up on the node as given.
//
// [scene]: github.com/MrZhangFengfeng/dataVisualization/pkg/scene
package renderer
