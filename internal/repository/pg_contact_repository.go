package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/contactintel/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContactRepository defines the persistence interface for contacts.
// It is defined here (in repository) to avoid an import cycle with service.
type ContactRepository interface {
	Create(ctx context.Context, c *model.Contact) error
	GetByID(ctx context.Context, id string) (*model.Contact, error)
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error)
	Update(ctx context.Context, c *model.Contact) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*model.ContactStats, error)
}

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

// Ping checks database connectivity (DB interface).
func (r *PgContactRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

const contactSelectCols = `id, name, email, phone, message, category, priority, score, created_at, updated_at`

func scanContact(scan func(...any) error) (*model.Contact, error) {
	var c model.Contact
	if err := scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Message, &c.Category, &c.Priority, &c.Score, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new contacts row and populates c.ID and timestamps from the
// database RETURNING clause.
func (r *PgContactRepository) Create(ctx context.Context, c *model.Contact) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contacts (name, email, phone, message, category, priority, score)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Email, c.Phone, c.Message, c.Category, c.Priority, c.Score,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// GetByID returns the contact with the given id, ErrNotFound if it does not
// exist, or ErrInvalidID if id is not a well-formed UUID.
func (r *PgContactRepository) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+contactSelectCols+` FROM contacts WHERE id = $1`, id)
	c, err := scanContact(row.Scan)
	if err != nil {
		return nil, mapRowError(err)
	}
	return c, nil
}

// List returns contacts filtered by category and sorted newest-first by
// created_at, or highest-first by score when opts.SortBy is "score".
func (r *PgContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error) {
	var conditions []string
	var args []any

	if cat := strings.TrimSpace(opts.Category); cat != "" {
		args = append(args, cat)
		conditions = append(conditions, "category = $1")
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	// SortBy is restricted to known columns; never interpolate caller text.
	orderBy := "created_at DESC"
	if opts.SortBy == "score" {
		orderBy = "score DESC, created_at DESC"
	}

	limitArg := len(args) + 1
	offsetArg := len(args) + 2
	args = append(args, opts.Limit, opts.Offset)

	query := `SELECT ` + contactSelectCols + ` FROM contacts ` + where +
		` ORDER BY ` + orderBy +
		` LIMIT $` + strconv.Itoa(limitArg) + ` OFFSET $` + strconv.Itoa(offsetArg)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*model.Contact
	for rows.Next() {
		c, err := scanContact(rows.Scan)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// Update rewrites every mutable column of the contact and refreshes
// updated_at. Returns ErrNotFound if the id does not exist.
func (r *PgContactRepository) Update(ctx context.Context, c *model.Contact) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE contacts
		 SET name = $2, email = $3, phone = $4, message = $5, category = $6, priority = $7, score = $8, updated_at = NOW()
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		c.ID, c.Name, c.Email, c.Phone, c.Message, c.Category, c.Priority, c.Score,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	return mapRowError(err)
}

// Delete removes the contact permanently. Returns ErrNotFound if the id does
// not exist.
func (r *PgContactRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return mapRowError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats returns aggregate counts over the contacts table.
func (r *PgContactRepository) Stats(ctx context.Context) (*model.ContactStats, error) {
	stats := &model.ContactStats{ByCategory: map[string]int{}}

	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(score), 0) FROM contacts`,
	).Scan(&stats.Total, &stats.AverageScore)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT category, COUNT(*) FROM contacts GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		stats.ByCategory[category] = count
	}
	return stats, rows.Err()
}

// mapRowError converts pgx row errors to the repository sentinels.
// Postgres raises 22P02 (invalid_text_representation) when a non-UUID string
// is compared against the uuid id column.
func mapRowError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "22P02" {
		return ErrInvalidID
	}
	return err
}
