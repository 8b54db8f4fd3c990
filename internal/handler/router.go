package handler

import (
	"io/fs"
	"net/http"

	"github.com/contactsite/backend/internal/repository"
	"github.com/contactsite/backend/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries everything the HTTP surface depends on.
type RouterConfig struct {
	Contacts      service.ContactService
	DB            repository.DB
	Assets        fs.FS
	AllowedOrigin string
}

// NewRouter wires the contact API, health and metrics endpoints and the
// static site into one handler wrapped in the standard middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	h := New(cfg.DB, cfg.AllowedOrigin)
	contactHandler := NewContactHandler(cfg.Contacts)
	static := NewStaticHandler(cfg.Assets)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/contact", contactHandler.Create)
	// Admin routes (unauthenticated)
	mux.HandleFunc("GET /api/contacts", contactHandler.List)
	mux.HandleFunc("DELETE /api/contact/{id}", contactHandler.Delete)

	mux.HandleFunc("GET /{$}", static.Root)
	mux.Handle("GET /", static)

	return RequestLogger(SecurityHeaders(h.CORS(mux)))
}
