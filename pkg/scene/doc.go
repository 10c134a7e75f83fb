// Package scene is a minimal retained SVG node tree.
//
// It plays the role of the host document: nodes are created detached with
// [CreateNode], attached with [Mount], and carry an ordered attribute list and
// optional text content. Attribute names arrive in camel case from callers and
// are written in the hyphenated wire form ([KebabCase]); values are stringified
// with [FormatValue].
//
// Transforms are stored as plain strings on the transform attribute.
// [ApplyTransform] appends to whatever is already there, so successive calls
// compose left to right in document order:
//
//	g := scene.CreateNode(scene.KindGroup)
//	scene.ApplyTransform(g, "translate(1, 2)")
//	scene.ApplyTransform(g, "scale(2, 2)")
//	g.Transform() // "translate(1, 2) scale(2, 2)"
//
// # Serialization
//
// [NewDocument] creates an svg root with a viewBox; [Render] and [Encode]
// produce indented SVG markup for any subtree.
package scene
