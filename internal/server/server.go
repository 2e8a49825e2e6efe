// Package server exposes the folder, word and translation operations as a
// JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/five82/tango/internal/auth"
	"github.com/five82/tango/internal/service"
	"github.com/five82/tango/internal/translate"
)

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators the handlers delegate to. Translator and Pinger
// may be nil.
type Deps struct {
	Folders    *service.FolderService
	Words      *service.WordService
	Translator translate.Translator
	Verifier   auth.Verifier
	Pinger     Pinger
	Logger     *zap.Logger
}

// Config controls the listener and middleware.
type Config struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// Server owns the HTTP listener.
type Server struct {
	http   *http.Server
	logger *zap.Logger
}

// New builds the server and its handler chain.
func New(cfg Config, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Server{
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           NewHandler(deps, cfg.AllowedOrigins),
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      cfg.WriteTimeout,
		},
		logger: deps.Logger,
	}
}

// NewHandler wires routes behind CORS, authentication and request logging.
func NewHandler(deps Deps, allowedOrigins []string) http.Handler {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	h := &handler{deps: deps, logger: deps.Logger}

	var chain http.Handler = h.routes()
	chain = requestLogger(deps.Logger)(chain)
	if deps.Verifier != nil {
		chain = auth.Middleware(deps.Verifier)(chain)
	}
	if origins := cleanOrigins(allowedOrigins); len(origins) > 0 {
		chain = cors.New(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:         600,
		}).Handler(chain)
	}
	return chain
}

// ListenAndServe blocks until the server stops. A graceful shutdown is not
// reported as an error.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("http server listening", zap.String("addr", l.Addr().String()))
	if err := s.http.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.http.Shutdown(ctx)
}

func cleanOrigins(origins []string) []string {
	return lo.FilterMap(origins, func(o string, _ int) (string, bool) {
		o = strings.TrimSpace(o)
		return o, o != ""
	})
}
