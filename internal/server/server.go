package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"anishelf/internal/config"
	"anishelf/internal/library"
	"anishelf/internal/logging"
	"anishelf/internal/releases"
)

// Resolver produces the release list for an anime ID.
type Resolver interface {
	Resolve(ctx context.Context, animeID int64) ([]releases.Resolved, error)
}

// Library is the slice of store operations the API surface consumes.
type Library interface {
	CountShows(ctx context.Context) (int64, error)
	GetShow(ctx context.Context, animeID int64) (*library.Show, error)
	GetRelease(ctx context.Context, releaseID string) (*library.Release, error)
	AddToCollection(ctx context.Context, animeID int64, releaseID string) (*library.CollectionEntry, error)
	ListCollection(ctx context.Context) ([]library.CollectionEntry, error)
	RemoveFromCollection(ctx context.Context, releaseID string) (bool, error)
}

// Server is the HTTP JSON API front end.
type Server struct {
	bind     string
	logger   *slog.Logger
	lib      Library
	resolver Resolver

	listener net.Listener
	server   *http.Server
}

// New builds the API server from its dependencies. The bind address comes
// from [paths].api_bind.
func New(cfg *config.Config, lib Library, resolver Resolver, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if lib == nil {
		return nil, errors.New("library is required")
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, errors.New("api bind address is required")
	}

	srv := &Server{
		bind:     bind,
		logger:   logger,
		lib:      lib,
		resolver: resolver,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", srv.handleHealth)
	mux.HandleFunc("/api/shows/", srv.handleShows)
	mux.HandleFunc("/api/collection", srv.handleCollection)
	mux.HandleFunc("/api/collection/", srv.handleCollectionEntry)

	srv.server = &http.Server{
		Handler:           srv.withRequestLog(mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

// Start begins serving and returns once the listener is bound. The server
// shuts down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down and closes the listener.
func (s *Server) Stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr reports the bound listen address, or empty before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.log().Info("api request",
			logging.String("request_id", requestID),
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", recorder.status),
			logging.Duration("elapsed", time.Since(start)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) log() *slog.Logger {
	if s.logger != nil {
		return s.logger.With(logging.String("component", "api-server"))
	}
	return logging.NewNop()
}
