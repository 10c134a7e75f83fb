package document

import (
	"github.com/mitchellh/mapstructure"

	"github.com/MrZhangFengfeng/dataVisualization/pkg/errors"
	"github.com/MrZhangFengfeng/dataVisualization/pkg/renderer"
	"github.com/MrZhangFengfeng/dataVisualization/pkg/scene"
)

// Operation names accepted in [Op.Op].
const (
	OpLine      = "line"
	OpRect      = "rect"
	OpCircle    = "circle"
	OpText      = "text"
	OpPath      = "path"
	OpRing      = "ring"
	OpTranslate = "translate"
	OpRotate    = "rotate"
	OpScale     = "scale"
	OpTransform = "transform"
	OpSave      = "save"
	OpRestore   = "restore"
)

// shapeOps draw through a renderer function that takes plain attributes.
var shapeOps = map[string]func(*renderer.Context, renderer.Attrs) *scene.Node{
	OpLine:   renderer.Line,
	OpRect:   renderer.Rect,
	OpCircle: renderer.Circle,
	OpText:   renderer.Text,
	OpPath:   renderer.Path,
}

// transformArity is the number of Args each named transform takes.
var transformArity = map[string]int{
	OpTranslate: 2,
	OpRotate:    1,
	OpScale:     2,
}

// Draw replays the document onto a fresh svg root and returns it. Ops draw
// into a group mounted directly under the root, so top-level transforms never
// land on the <svg> element itself.
//
// restore returns to the group that was current at the matching save; the
// drawing layer has no restore of its own, so the player keeps the snapshots.
func Draw(doc *Document) (*scene.Node, error) {
	root := scene.NewDocument(doc.Width, doc.Height)
	layer := scene.CreateNode(scene.KindGroup)
	scene.Mount(root, layer)
	ctx := renderer.NewContext(layer)
	if err := Play(ctx, doc.Ops); err != nil {
		return nil, err
	}
	return root, nil
}

// Play applies ops to ctx in order. ctx is left at whatever scope the ops end
// in; unmatched saves are allowed, unmatched restores are not.
func Play(ctx *renderer.Context, ops []Op) error {
	var saved []renderer.Context

	for i, op := range ops {
		switch name := op.Op; {
		case shapeOps[name] != nil:
			shapeOps[name](ctx, renderer.Attrs(op.Attrs))

		case name == OpRing:
			spec, err := decodeRing(op.Attrs)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidOperation, err, "op %d: ring", i)
			}
			renderer.Ring(ctx, spec)

		case transformArity[name] > 0:
			if want := transformArity[name]; len(op.Args) != want {
				return errors.New(errors.ErrCodeInvalidOperation, "op %d: %s takes %d args, got %d", i, name, want, len(op.Args))
			}
			renderer.Transform(name, ctx, op.Args...)

		case name == OpTransform:
			kind, _ := op.Attrs["kind"].(string)
			if kind == "" {
				return errors.New(errors.ErrCodeInvalidOperation, "op %d: transform requires attrs.kind", i)
			}
			renderer.Transform(kind, ctx, op.Args...)

		case name == OpSave:
			saved = append(saved, *ctx)
			renderer.Save(ctx)

		case name == OpRestore:
			if len(saved) == 0 {
				return errors.New(errors.ErrCodeInvalidOperation, "op %d: restore without matching save", i)
			}
			*ctx = saved[len(saved)-1]
			saved = saved[:len(saved)-1]

		case name == "":
			return errors.New(errors.ErrCodeInvalidOperation, "op %d: missing op name", i)

		default:
			return errors.New(errors.ErrCodeInvalidOperation, "op %d: unknown operation %q", i, name)
		}
	}
	return nil
}

func decodeRing(attrs map[string]any) (renderer.RingSpec, error) {
	var spec renderer.RingSpec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &spec,
	})
	if err != nil {
		return spec, err
	}
	if err := dec.Decode(attrs); err != nil {
		return spec, err
	}
	return spec, nil
}
