package service

import (
	"context"

	"github.com/contactintel/backend/internal/model"
	"github.com/contactintel/backend/internal/scoring"
)

// ContactService defines the business logic for managing contacts.
// Create and Update take raw submissions; the implementation validates them,
// recomputes the intelligence score, and persists the normalized record.
// Validation failures are returned as scoring.FieldErrors, not as errors.
type ContactService interface {
	Create(ctx context.Context, in scoring.Input) (*model.Contact, scoring.FieldErrors, error)
	Get(ctx context.Context, id string) (*model.Contact, error)
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error)
	Update(ctx context.Context, id string, in scoring.Input) (*model.Contact, scoring.FieldErrors, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*model.ContactStats, error)
}
