package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/contactsite/backend/internal/metrics"
	"github.com/contactsite/backend/internal/model"
	"github.com/contactsite/backend/internal/repository"
	"github.com/go-playground/validator/v10"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo     repository.ContactRepository
	validate *validator.Validate
	now      func() time.Time
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository) ContactService {
	return newContactService(repo, time.Now)
}

func newContactService(repo repository.ContactRepository, now func() time.Time) *contactServiceImpl {
	return &contactServiceImpl{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      now,
	}
}

// Create trims name and email, rejects blanks with ErrValidation and persists
// the message. The date is always set here and never taken from the caller.
func (s *contactServiceImpl) Create(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := s.validate.Struct(in); err != nil {
		metrics.ContactOperations.WithLabelValues("create", metrics.ResultInvalid).Inc()
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	msg := &model.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
		Date:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		metrics.ContactOperations.WithLabelValues("create", metrics.ResultError).Inc()
		return nil, fmt.Errorf("create contact message: %w", err)
	}
	metrics.ContactOperations.WithLabelValues("create", metrics.ResultOK).Inc()
	return msg, nil
}

// List returns every stored message, newest first.
func (s *contactServiceImpl) List(ctx context.Context) ([]*model.ContactMessage, error) {
	messages, err := s.repo.List(ctx)
	if err != nil {
		metrics.ContactOperations.WithLabelValues("list", metrics.ResultError).Inc()
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	metrics.ContactOperations.WithLabelValues("list", metrics.ResultOK).Inc()
	return messages, nil
}

// Delete removes a message, mapping "nothing removed" to repository.ErrNotFound.
func (s *contactServiceImpl) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		metrics.ContactOperations.WithLabelValues("delete", metrics.ResultError).Inc()
		return fmt.Errorf("delete contact message %q: %w", id, err)
	}
	if !deleted {
		metrics.ContactOperations.WithLabelValues("delete", metrics.ResultNotFound).Inc()
		return repository.ErrNotFound
	}
	metrics.ContactOperations.WithLabelValues("delete", metrics.ResultOK).Inc()
	return nil
}
