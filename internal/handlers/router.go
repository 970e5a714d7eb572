package handlers

import (
	"log/slog"
	"net/http"

	"github.com/agent-portal/portal/internal/models"
)

// NewRouter wires the two routes: "/" gets the default document, every
// other path goes to the static file handler.
func NewRouter(site models.Site, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	// "/{$}" matches only the root path itself.
	mux.Handle("/{$}", DefaultDocument(site.Root, site.DefaultDocument))
	mux.Handle("/", StaticFiles(site.Root, site.DefaultDocument))

	return LoggingMiddleware(logger, mux)
}
