package handler

import (
	"encoding/json"
	"net/http"
	"time"
)

type healthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := h.db.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(healthResponse{
			Status:    "unhealthy",
			Database:  "Disconnected",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:    "OK",
		Database:  "Connected",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
