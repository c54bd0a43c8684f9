package service

import (
	"context"

	"github.com/contactintel/backend/internal/model"
	"github.com/contactintel/backend/internal/repository"
	"github.com/contactintel/backend/internal/scoring"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo   repository.ContactRepository
	scorer scoring.Scorer
}

// NewContactService creates a ContactService backed by the given repository.
// scorer is the rubric used when persisting; any client-supplied score is
// ignored and recomputed here.
func NewContactService(repo repository.ContactRepository, scorer scoring.Scorer) ContactService {
	return &contactServiceImpl{repo: repo, scorer: scorer}
}

// Create validates the submission, scores the normalized record, and stores
// it. The repository populates ID and timestamps.
func (s *contactServiceImpl) Create(ctx context.Context, in scoring.Input) (*model.Contact, scoring.FieldErrors, error) {
	c, ferrs := scoring.Validate(in)
	if ferrs != nil {
		return nil, ferrs, nil
	}
	c.Score = s.scorer.Score(c)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, nil, err
	}
	return c, nil, nil
}

// Get returns the contact with the given id.
func (s *contactServiceImpl) Get(ctx context.Context, id string) (*model.Contact, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns contacts according to the given filter/sort/pagination options.
func (s *contactServiceImpl) List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error) {
	return s.repo.List(ctx, opts)
}

// Update is a full-record mutation: the submission is re-validated and
// rescored from scratch, then written over the existing row. CreatedAt is
// immutable; the repository refreshes UpdatedAt.
func (s *contactServiceImpl) Update(ctx context.Context, id string, in scoring.Input) (*model.Contact, scoring.FieldErrors, error) {
	c, ferrs := scoring.Validate(in)
	if ferrs != nil {
		return nil, ferrs, nil
	}
	c.ID = id
	c.Score = s.scorer.Score(c)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, nil, err
	}
	return c, nil, nil
}

// Delete removes the contact permanently.
func (s *contactServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Stats returns aggregate counts over the stored contacts.
func (s *contactServiceImpl) Stats(ctx context.Context) (*model.ContactStats, error) {
	return s.repo.Stats(ctx)
}
