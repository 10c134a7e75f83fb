package renderer

import "github.com/MrZhangFengfeng/dataVisualization/pkg/scene"

// Context is the drawing state threaded through every call.
// Group is where new shapes are mounted and where transforms are composed.
// Only [Save] reassigns it; callers restore a scope by copying the value back.
type Context struct {
	Group *scene.Node
}

// NewContext returns a context drawing into group.
func NewContext(group *scene.Node) *Context {
	return &Context{Group: group}
}

// Attrs maps camel-case attribute names to numbers or strings.
type Attrs map[string]any
