package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/agent-portal/portal/internal/handlers"
	"github.com/agent-portal/portal/internal/models"
)

// Server binds the site's port and serves its router.
type Server struct {
	site   models.Site
	logger *slog.Logger
	http   *http.Server
}

func New(site models.Site, logger *slog.Logger) *Server {
	return &Server{
		site:   site,
		logger: logger,
		http:   &http.Server{Handler: handlers.NewRouter(site, logger)},
	}
}

// Listen binds TCP on all interfaces at the configured port.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.site.Addr())
	if err != nil {
		return nil, &models.StartupError{Stage: "server.listen", Kind: models.KindBind, Target: s.site.Addr(), Err: err}
	}
	return ln, nil
}

// Serve logs the ready line and blocks serving ln until the listener fails
// or Close is called.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("Agent Portal running", "url", URL(ln.Addr()), "root", s.site.Root)
	return s.http.Serve(ln)
}

// ListenAndServe is Listen followed by Serve.
func (s *Server) ListenAndServe() error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Close stops the listener and drops open connections immediately.
func (s *Server) Close() error {
	return s.http.Close()
}

// URL is the browsable address for a bound listener.
func URL(addr net.Addr) string {
	port := 0
	if tcp, ok := addr.(*net.TCPAddr); ok {
		port = tcp.Port
	}
	return fmt.Sprintf("http://localhost:%d", port)
}
