package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/MrZhangFengfeng/dataVisualization/pkg/cache"
	"github.com/MrZhangFengfeng/dataVisualization/pkg/document"
	"github.com/MrZhangFengfeng/dataVisualization/pkg/observability"
	"github.com/MrZhangFengfeng/dataVisualization/pkg/scene"
)

// Runner renders documents with artifact caching.
//
// A Runner holds no per-render state; concurrent renders on one Runner are
// safe as long as its Cache is.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// [cache.DefaultKeyer] and a nil logger discards output.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger, TTL: DefaultTTL}
}

// Render decodes and draws req.Source, then produces every requested format.
// Each format is looked up in the cache first and stored after export.
func (r *Runner) Render(ctx context.Context, req Request) (result *Result, err error) {
	if err := req.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Render()
	start := time.Now()
	hooks.OnRenderStart(ctx, req.Formats)
	defer func() {
		nodes := 0
		if result != nil {
			nodes = result.Nodes
		}
		hooks.OnRenderComplete(ctx, req.Formats, nodes, time.Since(start), err)
	}()

	doc, err := document.Parse(req.Source, req.Syntax)
	hooks.OnDecode(ctx, string(req.Syntax), opCount(doc), err)
	if err != nil {
		return nil, err
	}

	drawStart := time.Now()
	root, err := document.Draw(doc)
	if err != nil {
		return nil, err
	}
	svg := scene.Render(root)

	result = &Result{
		Artifacts:  make(map[string][]byte, len(req.Formats)),
		Cached:     make(map[string]bool, len(req.Formats)),
		Nodes:      scene.Count(root),
		SourceHash: cache.Hash(append([]byte(req.Syntax+"\x00"), req.Source...)),
	}
	result.Stats.DrawTime = time.Since(drawStart)

	r.Logger.Debug("drew document",
		"ops", len(doc.Ops),
		"nodes", result.Nodes,
		"duration", result.Stats.DrawTime)

	exportStart := time.Now()
	for _, format := range req.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, hit, err := r.artifact(ctx, svg, result.SourceHash, format, req)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
		result.Cached[format] = hit
	}
	result.Stats.ExportTime = time.Since(exportStart)

	r.Logger.Info("rendered document",
		"formats", req.Formats,
		"nodes", result.Nodes,
		"duration", time.Since(start))

	return result, nil
}

func (r *Runner) artifact(ctx context.Context, svg []byte, sourceHash, format string, req Request) ([]byte, bool, error) {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		opts.Scale = req.Scale
		opts.Native = req.Native
	}
	key := r.Keyer.ArtifactKey(sourceHash, opts)
	cacheHooks := observability.Cache()

	if !req.NoCache {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			r.Logger.Warn("cache read failed", "format", format, "err", err)
		case hit:
			cacheHooks.OnCacheHit(ctx, format)
			return data, true, nil
		default:
			cacheHooks.OnCacheMiss(ctx, format)
		}
	}

	start := time.Now()
	data, err := Export(svg, format, req.Scale, req.Native)
	observability.Render().OnExport(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if !req.NoCache {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
		} else {
			cacheHooks.OnCacheSet(ctx, format, len(data))
		}
	}
	return data, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func opCount(doc *document.Document) int {
	if doc == nil {
		return 0
	}
	return len(doc.Ops)
}
