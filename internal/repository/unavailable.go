package repository

import (
	"context"
	"fmt"

	"github.com/contactsite/backend/internal/model"
)

// unavailableRepository stands in for a store that could not be opened.
type unavailableRepository struct {
	err error
}

// Unavailable returns a Store whose every operation fails with ErrUnavailable
// wrapping cause.
func Unavailable(cause error) *Store {
	r := &unavailableRepository{err: fmt.Errorf("%w: %v", ErrUnavailable, cause)}
	return &Store{
		Backend:  BackendUnavailable,
		Contacts: r,
		DB:       r,
		migrate:  func(context.Context) error { return r.err },
	}
}

func (r *unavailableRepository) Create(context.Context, *model.ContactMessage) error {
	return r.err
}

func (r *unavailableRepository) List(context.Context) ([]*model.ContactMessage, error) {
	return nil, r.err
}

func (r *unavailableRepository) Delete(context.Context, string) (bool, error) {
	return false, r.err
}

func (r *unavailableRepository) Ping(context.Context) error {
	return r.err
}
