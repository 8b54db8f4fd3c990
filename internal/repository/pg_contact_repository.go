package repository

import (
	"context"
	"time"

	"github.com/contactsite/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

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

// Create inserts a new contact_messages row keyed by a time-ordered UUID.
// TIMESTAMPTZ keeps microseconds, so msg.Date is truncated to match.
func (r *PgContactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	date := msg.Date.Truncate(time.Microsecond)
	if _, err := r.pool.Exec(ctx,
		`INSERT INTO contact_messages (id, name, email, message, date)
		 VALUES ($1, $2, $3, $4, $5)`,
		id.String(), msg.Name, msg.Email, msg.Message, date,
	); err != nil {
		return err
	}
	msg.ID = id.String()
	msg.Date = date
	return nil
}

// List returns all contact messages, newest first.
func (r *PgContactRepository) List(ctx context.Context) ([]*model.ContactMessage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id::text, name, email, message, date
		 FROM contact_messages
		 ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*model.ContactMessage
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Date); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

// Delete removes a row by id. A malformed UUID cannot match any row.
func (r *PgContactRepository) Delete(ctx context.Context, id string) (bool, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, parsed.String())
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
