package renderer

import (
	"strings"

	"github.com/MrZhangFengfeng/dataVisualization/pkg/scene"
)

// Command is one path instruction: an opcode followed by its numeric arguments,
// e.g. Command{"M", 10, 10}.
type Command []any

// PathCommands is an ordered list of path instructions.
type PathCommands []Command

// String flattens the commands into path data: "M 10 10 L 100 100 Z".
func (p PathCommands) String() string {
	tokens := make([]string, 0, len(p)*3)
	for _, c := range p {
		tokens = appendTokens(tokens, []any(c))
	}
	return strings.Join(tokens, " ")
}

// M moves the pen to (x, y).
func M(x, y float64) Command { return Command{"M", x, y} }

// L draws a line to (x, y).
func L(x, y float64) Command { return Command{"L", x, y} }

// H draws a horizontal line to x.
func H(x float64) Command { return Command{"H", x} }

// V draws a vertical line to y.
func V(y float64) Command { return Command{"V", y} }

// C draws a cubic Bézier curve to (x, y).
func C(x1, y1, x2, y2, x, y float64) Command { return Command{"C", x1, y1, x2, y2, x, y} }

// Q draws a quadratic Bézier curve to (x, y).
func Q(x1, y1, x, y float64) Command { return Command{"Q", x1, y1, x, y} }

// A draws an elliptical arc to (x, y).
func A(rx, ry, rotation float64, largeArc, sweep bool, x, y float64) Command {
	return Command{"A", rx, ry, rotation, flag(largeArc), flag(sweep), x, y}
}

// Z closes the current subpath.
func Z() Command { return Command{"Z"} }

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// pathData turns a d attribute value into its string form.
func pathData(d any) any {
	switch v := d.(type) {
	case string:
		return v
	case PathCommands:
		return v.String()
	case []Command:
		return PathCommands(v).String()
	case []any, [][]any:
		return strings.Join(appendTokens(nil, v), " ")
	default:
		return d
	}
}

// appendTokens flattens arbitrarily nested slices into string tokens.
func appendTokens(tokens []string, v any) []string {
	switch x := v.(type) {
	case []any:
		for _, e := range x {
			tokens = appendTokens(tokens, e)
		}
	case [][]any:
		for _, e := range x {
			tokens = appendTokens(tokens, e)
		}
	case Command:
		tokens = appendTokens(tokens, []any(x))
	case []float64:
		for _, e := range x {
			tokens = append(tokens, scene.FormatValue(e))
		}
	default:
		tokens = append(tokens, scene.FormatValue(x))
	}
	return tokens
}
