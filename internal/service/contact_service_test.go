package service

import (
	"context"
	"errors"
	"testing"

	"github.com/contactintel/backend/internal/model"
	"github.com/contactintel/backend/internal/scoring"
)

// ---------------------------------------------------------------------------
// mockContactRepository — in-memory stub for testing
// ---------------------------------------------------------------------------

type mockContactRepository struct {
	createFunc func(ctx context.Context, c *model.Contact) error
	getFunc    func(ctx context.Context, id string) (*model.Contact, error)
	listFunc   func(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error)
	updateFunc func(ctx context.Context, c *model.Contact) error
	deleteFunc func(ctx context.Context, id string) error
	statsFunc  func(ctx context.Context) (*model.ContactStats, error)
}

func (m *mockContactRepository) Create(ctx context.Context, c *model.Contact) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, c)
	}
	return nil
}

func (m *mockContactRepository) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockContactRepository) Update(ctx context.Context, c *model.Contact) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, c)
	}
	return nil
}

func (m *mockContactRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockContactRepository) Stats(ctx context.Context) (*model.ContactStats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx)
	}
	return nil, nil
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestContactService_Create_ComputesScore(t *testing.T) {
	var saved *model.Contact
	mock := &mockContactRepository{
		createFunc: func(ctx context.Context, c *model.Contact) error {
			saved = c
			return nil
		},
	}
	svc := NewContactService(mock, scoring.CompletenessRubric{})

	c, ferrs, err := svc.Create(context.Background(), scoring.Input{
		Name:  "Jo",
		Email: "A@B.com",
		Phone: "123-456-7890",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ferrs != nil {
		t.Fatalf("unexpected field errors: %v", ferrs)
	}
	if saved == nil {
		t.Fatal("expected Create to be called on the repository")
	}
	// 25 name + 25 email + 25 phone + 5 category default + 5 priority default
	if c.Score != 85 {
		t.Errorf("expected score 85, got %d", c.Score)
	}
	if c.Email != "a@b.com" {
		t.Errorf("expected normalized email a@b.com, got %q", c.Email)
	}
	if c.Category != model.CategoryLead || c.Priority != model.PriorityMedium {
		t.Errorf("expected defaulted enums, got %q/%q", c.Category, c.Priority)
	}
}

func TestContactService_Create_ValidationFailureSkipsRepo(t *testing.T) {
	called := false
	mock := &mockContactRepository{
		createFunc: func(ctx context.Context, c *model.Contact) error {
			called = true
			return nil
		},
	}
	svc := NewContactService(mock, scoring.CompletenessRubric{})

	c, ferrs, err := svc.Create(context.Background(), scoring.Input{
		Name: "", Email: "bad", Phone: "123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != nil {
		t.Error("expected nil contact on validation failure")
	}
	if len(ferrs) != 3 {
		t.Errorf("expected 3 field errors, got %v", ferrs)
	}
	if called {
		t.Error("repository must not be touched when validation fails")
	}
}

func TestContactService_Create_RepoError(t *testing.T) {
	mock := &mockContactRepository{
		createFunc: func(ctx context.Context, c *model.Contact) error {
			return errors.New("db connection lost")
		},
	}
	svc := NewContactService(mock, scoring.CompletenessRubric{})

	_, _, err := svc.Create(context.Background(), scoring.Input{
		Name: "Jo", Email: "jo@x.com", Phone: "1234567890",
	})
	if err == nil {
		t.Error("expected repository error to propagate")
	}
}

// TestContactService_Create_UsesConfiguredRubric verifies the service scores
// with whatever rubric it was constructed with.
func TestContactService_Create_UsesConfiguredRubric(t *testing.T) {
	var saved *model.Contact
	mock := &mockContactRepository{
		createFunc: func(ctx context.Context, c *model.Contact) error {
			saved = c
			return nil
		},
	}
	svc := NewContactService(mock, scoring.EngagementRubric{})

	_, ferrs, err := svc.Create(context.Background(), scoring.Input{
		Name: "Jo", Email: "jo@x.com", Phone: "1234567890", Message: "hi",
	})
	if err != nil || ferrs != nil {
		t.Fatalf("unexpected failure: %v %v", err, ferrs)
	}
	// Engagement: 20 base + 30 email + 30 phone, message too short for credit.
	if saved.Score != 80 {
		t.Errorf("expected engagement score 80, got %d", saved.Score)
	}
}

// ---------------------------------------------------------------------------
// Update tests
// ---------------------------------------------------------------------------

func TestContactService_Update_RevalidatesAndRescores(t *testing.T) {
	var saved *model.Contact
	mock := &mockContactRepository{
		updateFunc: func(ctx context.Context, c *model.Contact) error {
			saved = c
			return nil
		},
	}
	svc := NewContactService(mock, scoring.CompletenessRubric{})

	c, ferrs, err := svc.Update(context.Background(), "some-id", scoring.Input{
		Name:    "Al",
		Email:   "AL@X.com",
		Phone:   "5551234567",
		Message: "Met at conference, interested in enterprise plan",
	})
	if err != nil || ferrs != nil {
		t.Fatalf("unexpected failure: %v %v", err, ferrs)
	}
	if saved.ID != "some-id" {
		t.Errorf("expected id carried through, got %q", saved.ID)
	}
	if c.Score != 100 {
		t.Errorf("expected rescored value 100, got %d", c.Score)
	}
	if c.Email != "al@x.com" {
		t.Errorf("expected renormalized email, got %q", c.Email)
	}
}

func TestContactService_Update_ValidationFailureSkipsRepo(t *testing.T) {
	called := false
	mock := &mockContactRepository{
		updateFunc: func(ctx context.Context, c *model.Contact) error {
			called = true
			return nil
		},
	}
	svc := NewContactService(mock, scoring.CompletenessRubric{})

	_, ferrs, _ := svc.Update(context.Background(), "some-id", scoring.Input{Phone: "123"})
	if len(ferrs) == 0 {
		t.Fatal("expected field errors")
	}
	if called {
		t.Error("repository must not be touched when validation fails")
	}
}

// ---------------------------------------------------------------------------
// Passthrough tests
// ---------------------------------------------------------------------------

func TestContactService_Delete_Passthrough(t *testing.T) {
	var deletedID string
	mock := &mockContactRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}
	svc := NewContactService(mock, scoring.CompletenessRubric{})

	if err := svc.Delete(context.Background(), "abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deletedID != "abc" {
		t.Errorf("expected delete forwarded with id abc, got %q", deletedID)
	}
}

func TestContactService_List_Passthrough(t *testing.T) {
	var captured model.ContactListOptions
	mock := &mockContactRepository{
		listFunc: func(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error) {
			captured = opts
			return []*model.Contact{{ID: "1"}}, nil
		},
	}
	svc := NewContactService(mock, scoring.CompletenessRubric{})

	got, err := svc.List(context.Background(), model.ContactListOptions{Category: "Client", SortBy: "score", Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 contact, got %d", len(got))
	}
	if captured.Category != "Client" || captured.SortBy != "score" || captured.Limit != 5 {
		t.Errorf("options not forwarded: %+v", captured)
	}
}

func TestContactService_Stats_Passthrough(t *testing.T) {
	mock := &mockContactRepository{
		statsFunc: func(ctx context.Context) (*model.ContactStats, error) {
			return &model.ContactStats{Total: 3, AverageScore: 90}, nil
		},
	}
	svc := NewContactService(mock, scoring.CompletenessRubric{})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("expected total 3, got %d", stats.Total)
	}
}
