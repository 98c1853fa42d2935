// Package server is the HTTP ingestion front end.
//
// Routes:
//
//	GET  /healthz       liveness probe
//	GET  /v1/catalog    catalog ids and versions
//	POST /v1/analyze    multipart "files" -> analysis result
//	POST /v1/manifest   multipart "files", "tags", "sourceUrl", "type", "metadata" -> dep.json
//	POST /v1/publish    as /v1/manifest, then publish; 201 with the review summary
//
// Uploads are checked before analysis: every file must end in .lua and fit
// the size limit, otherwise the request fails with 400. Validation failures
// of the manifest builder are reported as 422 with the offending field.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/Deps-Tech/deps-registry/pkg/pipeline"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-Id"

const (
	// DefaultMaxFileSize is the upload limit per file.
	DefaultMaxFileSize int64 = 10 << 20

	shutdownTimeout = 10 * time.Second
)

// Options configures the handler.
type Options struct {
	// MaxFileSize limits each uploaded file. Zero selects DefaultMaxFileSize.
	MaxFileSize int64
	// Publishers receive packages submitted to /v1/publish. Without any,
	// the route answers 501.
	Publishers []pipeline.Publisher
	Logger     *log.Logger
}

// Server serves the ingestion API.
type Server struct {
	runner      *pipeline.Runner
	publishers  []pipeline.Publisher
	maxFileSize int64
	logger      *log.Logger
	router      *chi.Mux
}

// New creates a server that ingests through runner.
func New(runner *pipeline.Runner, opts Options) *Server {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	s := &Server{
		runner:      runner,
		publishers:  opts.Publishers,
		maxFileSize: opts.MaxFileSize,
		logger:      opts.Logger,
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(requestID, middleware.RealIP, s.logRequests, middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/manifest", s.handleManifest)
		r.Post("/publish", s.handlePublish)
	})
	return r
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// requestID accepts a client-supplied id or assigns a new one, and echoes it.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"id", middleware.GetReqID(r.Context()),
			"remote", r.RemoteAddr)
	})
}
