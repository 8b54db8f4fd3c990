package service

import (
	"context"
	"errors"

	"github.com/contactsite/backend/internal/model"
)

// ErrValidation is returned when a required contact field is empty after trimming.
var ErrValidation = errors.New("name and email are required")

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Create validates in and stores a new contact message stamped with the
	// current time. It returns ErrValidation when name or email is blank.
	Create(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error)

	// List returns all contact messages, newest first.
	List(ctx context.Context) ([]*model.ContactMessage, error)

	// Delete removes a message by id. It returns repository.ErrNotFound when
	// no message matched.
	Delete(ctx context.Context, id string) error
}
