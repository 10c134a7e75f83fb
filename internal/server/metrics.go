package server

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MrZhangFengfeng/dataVisualization/pkg/errors"
	"github.com/MrZhangFengfeng/dataVisualization/pkg/observability"
)

// Metrics records render and cache events as Prometheus series. It is
// installed as both observability.RenderHooks and observability.CacheHooks.
type Metrics struct {
	renders        *prometheus.CounterVec
	renderDuration prometheus.Histogram
	exportDuration *prometheus.HistogramVec
	decodes        *prometheus.CounterVec
	cacheRequests  *prometheus.CounterVec
	cacheBytes     *prometheus.CounterVec
	nodes          prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dataviz_renders_total",
			Help: "Render requests by result code.",
		}, []string{"code"}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dataviz_render_duration_seconds",
			Help:    "Time spent on whole render requests.",
			Buckets: prometheus.DefBuckets,
		}),
		exportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dataviz_export_duration_seconds",
			Help:    "Time spent converting SVG per output format.",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}),
		decodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dataviz_documents_decoded_total",
			Help: "Decoded documents by syntax and result.",
		}, []string{"syntax", "result"}),
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dataviz_cache_requests_total",
			Help: "Artifact cache lookups by format and result.",
		}, []string{"format", "result"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dataviz_cache_written_bytes_total",
			Help: "Bytes written to the artifact cache.",
		}, []string{"format"}),
		nodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dataviz_scene_nodes",
			Help:    "Elements per drawn scene.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
	reg.MustRegister(m.renders, m.renderDuration, m.exportDuration, m.decodes,
		m.cacheRequests, m.cacheBytes, m.nodes)
	return m
}

func (m *Metrics) OnDecode(_ context.Context, syntax string, _ int, err error) {
	m.decodes.WithLabelValues(syntax, result(err)).Inc()
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, _ []string, nodes int, d time.Duration, err error) {
	code := "OK"
	if err != nil {
		code = string(errors.GetCode(err))
		if code == "" {
			code = string(errors.ErrCodeInternal)
		}
	}
	m.renders.WithLabelValues(code).Inc()
	m.renderDuration.Observe(d.Seconds())
	if err == nil {
		m.nodes.Observe(float64(nodes))
	}
}

func (m *Metrics) OnExport(_ context.Context, format string, _ int, d time.Duration, err error) {
	if err == nil {
		m.exportDuration.WithLabelValues(format).Observe(d.Seconds())
	}
}

func (m *Metrics) OnCacheHit(_ context.Context, format string) {
	m.cacheRequests.WithLabelValues(format, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, format string) {
	m.cacheRequests.WithLabelValues(format, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, format string, size int) {
	m.cacheBytes.WithLabelValues(format).Add(float64(size))
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

var (
	_ observability.RenderHooks = (*Metrics)(nil)
	_ observability.CacheHooks  = (*Metrics)(nil)
)
