// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	POST /render?format=svg,png&syntax=toml&scale=2&native=1&nocache=1
//	GET  /healthz
//	GET  /metrics
//
// A render with a single format answers with the artifact bytes. Several
// formats answer with a JSON object whose artifacts are base64 encoded.
// Every response carries an X-Request-ID header.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrZhangFengfeng/dataVisualization/pkg/buildinfo"
	"github.com/MrZhangFengfeng/dataVisualization/pkg/document"
	"github.com/MrZhangFengfeng/dataVisualization/pkg/errors"
	"github.com/MrZhangFengfeng/dataVisualization/pkg/pipeline"
)

// RequestIDHeader carries the request identifier on requests and responses.
const RequestIDHeader = "X-Request-ID"

// DefaultMaxBody limits document uploads.
const DefaultMaxBody = 1 << 20

var contentTypes = map[string]string{
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
	pipeline.FormatPDF: "application/pdf",
}

// Server serves renders from a shared runner.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	gatherer prometheus.Gatherer
	maxBody  int64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithGatherer sets the registry served on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithMaxBody sets the upload limit in bytes.
func WithMaxBody(n int64) Option {
	return func(s *Server) { s.maxBody = n }
}

// New creates a server around runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:   runner,
		logger:   log.New(io.Discard),
		gatherer: prometheus.DefaultGatherer,
		maxBody:  DefaultMaxBody,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Post("/render", s.handleRender)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type renderResponse struct {
	SourceHash string            `json:"source_hash"`
	Nodes      int               `json:"nodes"`
	Artifacts  map[string][]byte `json:"artifacts"`
	Cached     map[string]bool   `json:"cached"`
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Render(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("X-Source-Hash", res.SourceHash)
	w.Header().Set("X-Nodes", strconv.Itoa(res.Nodes))

	if len(req.Formats) == 1 {
		format := req.Formats[0]
		w.Header().Set("Content-Type", contentTypes[format])
		w.Header().Set("X-Cache", cacheStatus(res.Cached[format]))
		w.Write(res.Artifacts[format])
		return
	}

	writeJSON(w, http.StatusOK, renderResponse{
		SourceHash: res.SourceHash,
		Nodes:      res.Nodes,
		Artifacts:  res.Artifacts,
		Cached:     res.Cached,
	})
}

func (s *Server) decodeRequest(r *http.Request) (pipeline.Request, error) {
	q := r.URL.Query()

	syntax, err := document.ParseSyntax(q.Get("syntax"))
	if err != nil {
		return pipeline.Request{}, err
	}

	req := pipeline.Request{
		Syntax:  syntax,
		Native:  queryBool(q.Get("native")),
		NoCache: queryBool(q.Get("nocache")),
	}
	if f := q.Get("format"); f != "" {
		req.Formats = strings.Split(f, ",")
	}
	if sc := q.Get("scale"); sc != "" {
		req.Scale, err = strconv.ParseFloat(sc, 64)
		if err != nil {
			return pipeline.Request{}, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", sc)
		}
	}

	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, s.maxBody))
	if err != nil {
		return pipeline.Request{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read document (limit %d bytes)", s.maxBody)
	}
	req.Source = body
	return req, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}
	for k, v := range buildinfo.Fields() {
		resp[k] = v
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("render failed", "request_id", w.Header().Get(RequestIDHeader), "err", err)
	}
	writeJSON(w, status, errorResponse{
		Code:      string(code),
		Message:   errors.UserMessage(err),
		RequestID: w.Header().Get(RequestIDHeader),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// requestID keeps a caller-supplied request ID or assigns a new UUID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info(fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", w.Header().Get(RequestIDHeader))
	})
}

func queryBool(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
