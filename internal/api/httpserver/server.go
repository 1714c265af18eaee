// Package httpserver wraps http.Server with configured timeouts and a
// graceful shutdown hook.
package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/scholarai/scholarai/internal/config"
)

// Server is the HTTP listener for the service.
type Server struct {
	srv *http.Server
}

// New builds a server around the given handler.
func New(cfg config.ServerConfig, handler http.Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      handler,
			ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
			WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
		},
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Start blocks serving requests until Shutdown or failure.
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown drains in-flight requests until the context expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
