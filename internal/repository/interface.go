package repository

import (
	"context"

	"github.com/contactsite/backend/internal/model"
)

// DB reports whether the underlying storage connection is alive.
type DB interface {
	Ping(ctx context.Context) error
}

// ContactRepository defines the persistence interface for contact messages.
// It is defined here (in repository) to avoid an import cycle with service.
type ContactRepository interface {
	// Create persists msg and assigns msg.ID.
	Create(ctx context.Context, msg *model.ContactMessage) error

	// List returns every contact message ordered by date, newest first.
	List(ctx context.Context) ([]*model.ContactMessage, error)

	// Delete removes the message with the given id and reports whether a
	// record was removed. Ids the backend cannot parse match nothing.
	Delete(ctx context.Context, id string) (bool, error)
}
