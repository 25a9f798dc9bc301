package server

import (
	"context"
	"net/http"
	"strings"
	"time"
)

const (
	defaultPort       = "8080"
	maxHeaderBytes    = 1 << 20 // 1 MB
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 90 * time.Second
)

// Server wraps an *http.Server with the lifecycle main needs: a blocking
// Run and a context-bounded Shutdown.
type Server struct {
	httpServer *http.Server
}

// New builds a server for the given port ("8080" or ":8080"; empty means
// the default) serving handler.
func New(port string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr(port),
			Handler:           handler,
			MaxHeaderBytes:    maxHeaderBytes,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
		},
	}
}

// addr turns a bare port into a listen address.
func addr(port string) string {
	if port == "" {
		port = defaultPort
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// Run blocks serving requests until the listener fails or Shutdown is
// called. A graceful shutdown surfaces as http.ErrServerClosed.
func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, allowing in-flight requests to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
