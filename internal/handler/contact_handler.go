package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/contactintel/backend/internal/model"
	"github.com/contactintel/backend/internal/repository"
	"github.com/contactintel/backend/internal/scoring"
	"github.com/contactintel/backend/internal/service"
)

// ContactHandler handles the /api/contacts CRUD surface.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// contactRequest is the expected JSON body for POST and PUT.
// A "score" key, if present, is silently ignored: the score is always
// recomputed server-side from the validated record.
type contactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Priority string `json:"priority"`
}

func (req contactRequest) input() scoring.Input {
	return scoring.Input{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Message:  req.Message,
		Category: req.Category,
		Priority: req.Priority,
	}
}

// Create handles POST /api/contacts.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid JSON"})
		return
	}

	c, ferrs, err := h.contactService.Create(r.Context(), req.input())
	if ferrs != nil {
		writeFieldErrors(w, ferrs)
		return
	}
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Failed to create contact"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// Get handles GET /api/contacts/{id}.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.contactService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeLookupError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// List handles GET /api/contacts.
// Supports query params: category, sort (created_at/score), limit, offset.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := model.ContactListOptions{
		Category: r.URL.Query().Get("category"),
		SortBy:   r.URL.Query().Get("sort"),
		Limit:    50,
		Offset:   0,
	}

	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			opts.Limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			opts.Offset = n
		}
	}

	contacts, err := h.contactService.List(r.Context(), opts)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Failed to list contacts"})
		return
	}

	// Return [] not null for empty lists
	if contacts == nil {
		contacts = []*model.Contact{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(contacts)
}

// Update handles PUT /api/contacts/{id} as a full-record update.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid JSON"})
		return
	}

	c, ferrs, err := h.contactService.Update(r.Context(), r.PathValue("id"), req.input())
	if ferrs != nil {
		writeFieldErrors(w, ferrs)
		return
	}
	if err != nil {
		writeLookupError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// Delete handles DELETE /api/contacts/{id}. Deletion is terminal.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.contactService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeLookupError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Contact deleted successfully"})
}

// Stats handles GET /api/contacts/stats/summary.
func (h *ContactHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.contactService.Stats(r.Context())
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Failed to compute stats"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stats)
}

// writeFieldErrors renders validation failures as a field -> error map so the
// client can highlight each offending form field.
func writeFieldErrors(w http.ResponseWriter, ferrs scoring.FieldErrors) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]scoring.FieldErrors{"errors": ferrs})
}

// writeLookupError maps repository sentinels onto 404/400 responses.
func writeLookupError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case errors.Is(err, repository.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Contact not found"})
	case errors.Is(err, repository.ErrInvalidID):
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid ID"})
	default:
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Internal server error"})
	}
}
