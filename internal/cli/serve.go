package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/MrZhangFengfeng/dataVisualization/internal/server"
	"github.com/MrZhangFengfeng/dataVisualization/pkg/buildinfo"
	"github.com/MrZhangFengfeng/dataVisualization/pkg/cache"
	"github.com/MrZhangFengfeng/dataVisualization/pkg/observability"
	"github.com/MrZhangFengfeng/dataVisualization/pkg/pipeline"
)

// redisAddrEnv supplies --redis when the flag is not set.
const redisAddrEnv = "DATAVIZ_REDIS_ADDR"

type serveOpts struct {
	addr          string
	redisAddr     string
	redisPassword string
	redisDB       int
	cacheTTL      time.Duration
	maxBody       int64
	noCache       bool
}

func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:     ":8080",
		cacheTTL: pipeline.DefaultTTL,
		maxBody:  server.DefaultMaxBody,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Serve renders documents posted to /render and exposes Prometheus
metrics on /metrics.

Artifacts are cached in Redis when --redis (or ` + redisAddrEnv + `) is set,
otherwise in the local cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.redisAddr == "" {
				opts.redisAddr = os.Getenv(redisAddrEnv)
			}
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the shared artifact cache (env "+redisAddrEnv+")")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().DurationVar(&opts.cacheTTL, "cache-ttl", opts.cacheTTL, "how long rendered artifacts stay cached")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", opts.maxBody, "maximum document size in bytes")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	cc, backend, err := serveCache(ctx, opts)
	if err != nil {
		return err
	}

	// Version-scoped keys: each release starts from an empty cache.
	runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, buildinfo.Version+":"), logger)
	runner.TTL = opts.cacheTTL
	defer runner.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := server.NewMetrics(reg)
	observability.SetRenderHooks(metrics)
	observability.SetCacheHooks(metrics)
	defer observability.Reset()

	srv := server.New(runner,
		server.WithLogger(logger),
		server.WithGatherer(reg),
		server.WithMaxBody(opts.maxBody),
	)

	printSuccess("Render service listening")
	printKeyValue("address", opts.addr)
	printKeyValue("cache", backend)
	printKeyValue("version", buildinfo.Version)

	if err := srv.ListenAndServe(ctx, opts.addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	logger.Info("render service stopped")
	return nil
}

// serveCache opens the configured backend and describes it for the startup
// banner. An unreachable Redis falls back to the file cache.
func serveCache(ctx context.Context, opts serveOpts) (cache.Cache, string, error) {
	if opts.noCache {
		return cache.NewNullCache(), "disabled", nil
	}
	if opts.redisAddr != "" {
		dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		rc, err := cache.DialRedis(dialCtx, opts.redisAddr, opts.redisPassword, opts.redisDB)
		if err == nil {
			return rc, "redis " + opts.redisAddr, nil
		}
		loggerFromContext(ctx).Warn("redis unavailable, using file cache", "addr", opts.redisAddr, "err", err)
		printWarning("Redis at %s unavailable, falling back to the file cache", opts.redisAddr)
	}

	cc, err := newCache(false)
	if err != nil {
		return nil, "", fmt.Errorf("open cache: %w", err)
	}
	if fc, ok := cc.(*cache.FileCache); ok {
		return fc, "file " + fc.Dir(), nil
	}
	return cc, "disabled", nil
}
