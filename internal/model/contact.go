package model

import "time"

// ContactMessage represents a message submitted via the contact form.
// Records are created and deleted, never updated.
type ContactMessage struct {
	ID      string    `json:"_id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}

// ContactInput carries the client-settable fields of a new ContactMessage.
// Name and Email are validated after whitespace trimming.
type ContactInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Message string `json:"message"`
}
