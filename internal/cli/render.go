package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrZhangFengfeng/dataVisualization/pkg/document"
	"github.com/MrZhangFengfeng/dataVisualization/pkg/errors"
	"github.com/MrZhangFengfeng/dataVisualization/pkg/pipeline"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output  string   // output file, base path for several formats, or "-" for stdout
	formats []string // svg, png, pdf
	syntax  string   // document syntax; derived from the file extension when empty
	scale   float64  // PNG scale factor
	native  bool     // rasterize PNG in-process instead of through rsvg-convert
	noCache bool
}

func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a scene document to SVG, PNG or PDF",
		Long: `Render replays a scene document and writes one file per format.

Without -o the output sits next to the input: badge.toml becomes badge.svg.
With several formats -o is a base path that gets each format's extension.`,
		Example: `  dataviz render badge.toml
  dataviz render badge.yaml -f svg,png --native -o out/badge
  dataviz render scene.json -o - | less`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (several), or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.syntax, "syntax", "", "document syntax: toml, yaml, json (default: from extension)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.native, "native", false, "rasterize PNG in-process (no librsvg needed)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	source, err := os.ReadFile(input)
	if os.IsNotExist(err) {
		return errors.New(errors.ErrCodeFileNotFound, "file not found: %s", input)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	syntaxName := opts.syntax
	if syntaxName == "" {
		syntaxName = filepath.Ext(input)
	}
	syntax, err := document.ParseSyntax(syntaxName)
	if err != nil {
		return err
	}

	req := pipeline.Request{
		Source:  source,
		Syntax:  syntax,
		Formats: opts.formats,
		Scale:   opts.scale,
		Native:  opts.native,
		NoCache: opts.noCache,
	}
	if err := req.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if opts.output == "-" && len(req.Formats) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "-o - needs exactly one format, got %d", len(req.Formats))
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Rendering "+filepath.Base(input)+"...")
	spinner.Start()
	res, err := runner.Render(ctx, req)
	spinner.Stop()
	if err != nil {
		if errors.Is(err, errors.ErrCodeUnsupported) {
			printWarning("PNG can be rendered without librsvg using --native")
		}
		return err
	}

	if opts.output == "-" {
		_, err := os.Stdout.Write(res.Artifacts[req.Formats[0]])
		return err
	}

	cached := 0
	paths := make([]string, 0, len(req.Formats))
	for _, format := range req.Formats {
		path := outputPath(opts.output, input, format, len(req.Formats) > 1)
		if err := writeOutput(path, res.Artifacts[format]); err != nil {
			return err
		}
		paths = append(paths, path)
		if res.Cached[format] {
			cached++
		}
		logger.Debug("wrote artifact", "format", format, "path", path, "cached", res.Cached[format])
	}

	printSuccess("Rendered %s", filepath.Base(input))
	printStats(res.Nodes, cached, len(req.Formats))
	for _, path := range paths {
		printFile(path)
	}
	prog.done("Rendered " + filepath.Base(input))
	return nil
}

// outputPath picks the file for format. A single format uses output as is;
// several formats treat output as a base path.
func outputPath(output, input, format string, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	return basePath(output, input) + "." + format
}

// basePath strips a known format or document extension from output, or
// derives the base from input when output is empty.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".svg", ".png", ".pdf":
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return output
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
