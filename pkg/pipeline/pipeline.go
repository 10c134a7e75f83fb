// Package pipeline turns scene documents into rendered artifacts.
//
// A render runs three stages:
//
//  1. Decode: parse the document source (TOML, YAML or JSON)
//  2. Draw: replay its operations onto a fresh SVG scene
//  3. Export: serialize the scene and convert it to each requested format
//
// Exported artifacts are cached per format, keyed by the source bytes and the
// options that affect the output. The CLI and the render service share the
// same [Runner]:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Render(ctx, pipeline.Request{
//	    Source:  data,
//	    Syntax:  document.SyntaxTOML,
//	    Formats: []string{"svg", "png"},
//	})
//	png := result.Artifacts["png"]
package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/MrZhangFengfeng/dataVisualization/pkg/document"
	"github.com/MrZhangFengfeng/dataVisualization/pkg/errors"
)

const (
	FormatSVG = errors.FormatSVG
	FormatPNG = errors.FormatPNG
	FormatPDF = errors.FormatPDF
)

const (
	// DefaultScale is the PNG scale factor when none is given.
	DefaultScale = 2.0

	// DefaultTTL is how long artifacts stay cached.
	DefaultTTL = 7 * 24 * time.Hour
)

// Request describes one render.
type Request struct {
	Source  []byte
	Syntax  document.Syntax
	Formats []string

	// Scale applies to PNG output only.
	Scale float64

	// Native renders PNG in-process instead of through rsvg-convert.
	Native bool

	// NoCache skips both cache lookups and cache writes.
	NoCache bool
}

// ValidateAndSetDefaults normalizes formats and fills in defaults.
func (r *Request) ValidateAndSetDefaults() error {
	if len(r.Source) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "document source is empty")
	}
	if r.Syntax == "" {
		r.Syntax = document.SyntaxJSON
	}
	if len(r.Formats) == 0 {
		r.Formats = []string{FormatSVG}
	}

	formats := make([]string, 0, len(r.Formats))
	for _, f := range r.Formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	if err := errors.ValidateFormats(formats); err != nil {
		return err
	}
	r.Formats = formats

	if r.Scale == 0 {
		r.Scale = DefaultScale
	}
	return errors.ValidateScale(r.Scale)
}

// Result holds the artifacts of one render, keyed by format.
type Result struct {
	Artifacts map[string][]byte
	Cached    map[string]bool

	// Nodes is the number of elements in the drawn scene.
	Nodes int

	// SourceHash identifies the document in cache keys and responses.
	SourceHash string

	Stats Stats
}

// Stats records stage timings.
type Stats struct {
	DrawTime   time.Duration
	ExportTime time.Duration
}
