package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/multierr"

	"hostident/internal/logging"
)

// Server runs the HTTP API on a listener opened at Start
type Server struct {
	srv    *http.Server
	logger *slog.Logger

	mu   sync.Mutex
	ln   net.Listener
	done chan error
}

// NewServer creates a server for h on addr
func NewServer(addr string, h http.Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         addr,
			Handler:      h,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logging.Component("http"),
	}
}

// Start binds the listener and serves in the background
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.srv.Addr, err)
	}

	s.mu.Lock()
	s.ln = ln
	s.done = make(chan error, 1)
	s.mu.Unlock()

	go func() {
		err := s.srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.done <- err
	}()

	s.logger.Info("server listening", "addr", ln.Addr().String())
	return nil
}

// Stop shuts the server down gracefully
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done == nil {
		return nil
	}

	err := s.srv.Shutdown(ctx)
	select {
	case serveErr := <-done:
		err = multierr.Append(err, serveErr)
	case <-ctx.Done():
		err = multierr.Append(err, ctx.Err())
	}

	s.logger.Info("server stopped")
	return err
}

// Addr returns the bound address, or the configured one before Start
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return s.srv.Addr
	}
	return s.ln.Addr().String()
}
