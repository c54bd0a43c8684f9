package handler

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/contactintel/backend/internal/repository"
)

// Handler carries the cross-cutting dependencies of the HTTP layer: a DB
// handle for health checks and the configured CORS origin allow-list.
type Handler struct {
	db             repository.DB
	allowedOrigins []string
}

func New(db repository.DB, allowedOrigins []string) *Handler {
	return &Handler{db: db, allowedOrigins: allowedOrigins}
}

// CORS allows requests from the configured origins. Requests without an
// Origin header (curl, same-origin) pass through untouched.
func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" && slices.Contains(h.allowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Root handles GET / with the API banner.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": "Smart Contact Intelligence API",
		"version": "1.0.0",
	})
}

// NotFound is the fallback for unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": "Route not found",
		"path":    r.URL.Path,
	})
}
