package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"strings"
	"time"

	"recipescraper/internal/platform/config"
	"recipescraper/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

const shutdownGrace = 15 * time.Second

// Server is a thin wrapper over chi + stdlib http.Server
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *stdhttp.Server
}

// NewServer creates a zero-value friendly http server
// cfg is the service scope (SCRAPER_), the listen addr comes from API_PORT under it
// opts receive the *chi.Mux so callers can mount routes/mw
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := listenAddr(cfg.MayString("API_PORT", ":8000"))
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		addr: addr,
		mux:  m,
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
			// scrapes wait on remote sites and the LLM, keep idle conns bounded instead of writes
			IdleTimeout: 120 * time.Second,
		},
	}
}

// listenAddr accepts "8000", ":8000" or "host:8000"
func listenAddr(v string) string {
	if v == "" {
		return ":8000"
	}
	if !strings.Contains(v, ":") {
		return ":" + v
	}
	return v
}

// Router returns a Router facade over the internal chi mux
func (s *Server) Router() Router {
	return AdaptChi(s.mux)
}

// Addr returns the listening address
func (s *Server) Addr() string { return s.addr }

// Run listens on the configured addr and serves until ctx is canceled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts on ln and blocks
// Canceling ctx drains in-flight requests for up to shutdownGrace before Serve returns
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	log := logger.Named("http")
	log.Info().Str("addr", ln.Addr().String()).Msg("http listening")

	stopped := make(chan struct{})
	drained := make(chan error, 1)
	go func() {
		select {
		case <-ctx.Done():
			sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			drained <- s.srv.Shutdown(sctx)
		case <-stopped:
		}
	}()

	err := s.srv.Serve(ln)
	if !errors.Is(err, stdhttp.ErrServerClosed) {
		close(stopped)
		return err
	}
	if ctx.Err() == nil {
		// closed through Shutdown, the caller owns the drain
		close(stopped)
		return nil
	}
	if err := <-drained; err != nil {
		log.Warn().Err(err).Msg("http shutdown")
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
