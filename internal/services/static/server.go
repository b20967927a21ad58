// Package static serves a directory of shop pages with the page direction
// rewrite applied to every HTML response.
package static

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gothicvibe/rtlpage/internal/direction"
	"github.com/gothicvibe/rtlpage/internal/services/rewrite"
)

// defaultShutdownTimeout caps graceful HTTP shutdown.
const defaultShutdownTimeout = 5 * time.Second

// Config defines the inputs for the static server.
type Config struct {
	HTTPAddr string
	Root     string
	// NoCache marks every response as non-cacheable.
	NoCache bool
	// Initializer defaults to direction.Default when nil.
	Initializer *direction.Initializer
}

// Server hosts a directory over HTTP.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewServer builds a configured static server.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(config)
	if err != nil {
		return nil, err
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// NewHandler returns the file handler wrapped with the direction rewrite and,
// when configured, the no-cache headers.
func NewHandler(config Config) (http.Handler, error) {
	root := strings.TrimSpace(config.Root)
	if root == "" {
		return nil, errors.New("root directory is required")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %q is not a directory", root)
	}

	var handler http.Handler = http.FileServer(http.Dir(root))
	handler = rewrite.Middleware(config.Initializer, handler)
	if config.NoCache {
		handler = noCache(handler)
	}
	return handler, nil
}

// noCache sets headers that keep browsers from reusing a stale page.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		header.Set("Pragma", "no-cache")
		header.Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

// ListenAndServe serves requests until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("static server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	log.Printf("static listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
