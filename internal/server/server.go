// Package server exposes the analysis pipeline over an HTTP JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jobfit/jobfit/internal/analyzer"
	"github.com/jobfit/jobfit/internal/docparse"
	"github.com/jobfit/jobfit/internal/match"
	"github.com/jobfit/jobfit/internal/skills"
)

const defaultAddress = ":8000"

// Uploaded documents are capped at 10 MiB.
const maxUploadBytes = 10 << 20

// Analysis is the pipeline surface the handlers depend on.
type Analysis interface {
	Analyze(ctx context.Context, resumeText, jobText string) (*analyzer.Report, error)
	Pitch(ctx context.Context, req analyzer.PitchRequest) (string, error)
}

// Server is the HTTP front for the analyzer.
type Server struct {
	httpServer *http.Server
	analysis   Analysis
	logger     *zap.Logger
}

func New(address string, analysis Analysis, logger *zap.Logger) *Server {
	if address == "" {
		address = defaultAddress
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{analysis: analysis, logger: logger}

	s.httpServer = &http.Server{
		Addr:         address,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler builds the routed and middleware-wrapped handler. Exposed so tests
// can drive it without a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /parse-resume", s.handleParseResume)
	mux.HandleFunc("POST /parse-jd", s.handleParseJD)
	mux.HandleFunc("POST /generate-pitch", s.handleGeneratePitch)
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.withLogging(s.withCORS(mux))
}

// Start listens for requests until an interrupt or termination signal, then
// shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("address", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	s.logger.Info("server stopped")
	return nil
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding response", zap.Error(err))
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	} else {
		s.logger.Warn("request rejected",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	s.jsonResponse(w, status, map[string]string{"detail": err.Error()})
}

// httpStatus maps pipeline errors onto HTTP statuses: bad inputs are the
// client's fault, capability failures are a bad gateway.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, skills.ErrInvalidInput),
		errors.Is(err, docparse.ErrUnsupportedType),
		errors.Is(err, docparse.ErrEmptyDocument),
		errors.Is(err, docparse.ErrUnreadable):
		return http.StatusBadRequest
	case errors.Is(err, skills.ErrExtractionFailed),
		errors.Is(err, match.ErrEmbeddingFailed),
		errors.Is(err, analyzer.ErrGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
