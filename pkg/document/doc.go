// Package document reads declarative drawings and replays them onto a scene.
//
// A document is a canvas size plus an ordered list of operations. The same
// structure can be written in TOML, YAML or JSON:
//
//	width = 200
//	height = 200
//
//	[[ops]]
//	op = "translate"
//	args = [100, 100]
//
//	[[ops]]
//	op = "ring"
//	attrs = { r1 = 40, r2 = 60, fill = "steelblue" }
//
//	[[ops]]
//	op = "path"
//	attrs = { d = [["M", 0, 0], ["L", 10, 10], ["Z"]], stroke = "black" }
//
// Shape operations map one-to-one onto the functions of the renderer package
// and take their attributes verbatim. save opens a nested group; restore goes
// back to the group that was current at the matching save.
//
// Errors carry codes from the errors package: INVALID_SYNTAX for unknown
// encodings, INVALID_DOCUMENT for undecodable input and INVALID_OPERATION for
// bad operations.
package document
