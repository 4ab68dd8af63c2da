// Package docserver serves the converted Swagger document over HTTP.
//
// Routes:
//
//	GET /swagger.json   the document as indented JSON
//	GET /swagger.yaml   the document as YAML
//	GET /healthz        {"status":"ok"} or 503 with the last rebuild error
//	GET /metrics        Prometheus metrics
//
// The document is replaced atomically by Update, so readers always see a
// complete document. A failed rebuild keeps the last good document.
package docserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/erraggy/gw2oas/document"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	// AllowedOrigins are the CORS origins allowed to fetch documents.
	// Empty means "*".
	AllowedOrigins []string
	// Logger receives request and reload logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Server holds the current document and serves it.
type Server struct {
	mu        sync.RWMutex
	jsonDoc   []byte
	yamlDoc   []byte
	lastErr   error
	updatedAt time.Time

	logger   *slog.Logger
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	reloads  *prometheus.CounterVec
	handler  http.Handler
}

// New creates a Server without a document. Document routes answer 503
// until the first successful Update.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	s := &Server{
		logger:   logger,
		registry: registry,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gw2oas",
			Subsystem: "docserver",
			Name:      "requests_total",
			Help:      "How many HTTP requests processed, partitioned by status code, method and handler.",
		}, []string{"status", "method", "handler"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gw2oas",
			Subsystem: "docserver",
			Name:      "request_duration_seconds",
			Help:      "HTTP request durations, partitioned by handler.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"handler"}),
		reloads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gw2oas",
			Subsystem: "docserver",
			Name:      "reloads_total",
			Help:      "Document rebuilds, partitioned by result.",
		}, []string{"result"}),
	}

	mux := http.NewServeMux()
	mux.Handle("GET /swagger.json", s.instrument("swagger.json", http.HandlerFunc(s.serveJSON)))
	mux.Handle("GET /swagger.yaml", s.instrument("swagger.yaml", http.HandlerFunc(s.serveYAML)))
	mux.Handle("GET /healthz", s.instrument("healthz", http.HandlerFunc(s.serveHealth)))
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	s.handler = cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
	}).Handler(mux)
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Update renders doc in both formats and makes it the served document.
func (s *Server) Update(doc any) error {
	jsonDoc, err := document.MarshalJSONIndent(doc)
	if err != nil {
		s.Fail(err)
		return fmt.Errorf("docserver: %w", err)
	}
	yamlDoc, err := document.MarshalYAML(doc)
	if err != nil {
		s.Fail(err)
		return fmt.Errorf("docserver: %w", err)
	}

	s.mu.Lock()
	s.jsonDoc = jsonDoc
	s.yamlDoc = yamlDoc
	s.lastErr = nil
	s.updatedAt = time.Now()
	s.mu.Unlock()

	s.reloads.WithLabelValues("success").Inc()
	s.logger.Info("document updated", "bytes", len(jsonDoc))
	return nil
}

// Fail records a failed rebuild. The last good document stays served.
func (s *Server) Fail(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()

	s.reloads.WithLabelValues("failure").Inc()
	s.logger.Error("document rebuild failed", "error", err)
}

func (s *Server) current() (jsonDoc, yamlDoc []byte, lastErr error, updatedAt time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jsonDoc, s.yamlDoc, s.lastErr, s.updatedAt
}

func (s *Server) serveJSON(w http.ResponseWriter, _ *http.Request) {
	jsonDoc, _, _, updatedAt := s.current()
	s.writeDocument(w, "application/json", jsonDoc, updatedAt)
}

func (s *Server) serveYAML(w http.ResponseWriter, _ *http.Request) {
	_, yamlDoc, _, updatedAt := s.current()
	s.writeDocument(w, "application/yaml", yamlDoc, updatedAt)
}

func (s *Server) writeDocument(w http.ResponseWriter, contentType string, body []byte, updatedAt time.Time) {
	if body == nil {
		http.Error(w, "document not built yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("Last-Modified", updatedAt.UTC().Format(http.TimeFormat))
	_, _ = w.Write(body)
}

type health struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

func (s *Server) serveHealth(w http.ResponseWriter, _ *http.Request) {
	jsonDoc, _, lastErr, updatedAt := s.current()

	status := http.StatusOK
	body := health{Status: "ok"}
	switch {
	case lastErr != nil:
		status = http.StatusServiceUnavailable
		body = health{Status: "degraded", Error: lastErr.Error()}
	case jsonDoc == nil:
		status = http.StatusServiceUnavailable
		body = health{Status: "starting"}
	}
	if !updatedAt.IsZero() {
		body.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	}

	data, err := jsoniter.Marshal(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) instrument(name string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(rec, req)

		s.requests.WithLabelValues(strconv.Itoa(rec.status), req.Method, name).Inc()
		s.duration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		s.logger.Debug("request", "method", req.Method, "path", req.URL.Path, "status", rec.status)
	})
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	defer close(done)
	shutdownErr := make(chan error, 1)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("serving documents", "addr", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("docserver: %w", err)
	}
	return <-shutdownErr
}
