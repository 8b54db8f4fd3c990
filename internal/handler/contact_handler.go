package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/contactsite/backend/internal/model"
	"github.com/contactsite/backend/internal/repository"
	"github.com/contactsite/backend/internal/service"
)

const maxBodyBytes = 1 << 20

// Response messages returned by the contact API.
const (
	msgSaved          = "Message saved"
	msgDeleted        = "Message deleted"
	msgRequired       = "Name and email are required"
	msgNotFound       = "Message not found"
	msgInvalidBody    = "Invalid request body"
	msgInternalServer = "Server error"
)

// ContactHandler handles contact form submission and the admin list/delete endpoints.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// contactResponse is the JSON body of every non-list contact API response.
type contactResponse struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
}

// Create handles POST /api/contact.
// Accepts JSON or form-encoded bodies; name and email are required.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	in, err := decodeContactInput(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, contactResponse{Msg: msgInvalidBody})
		return
	}

	if _, err := h.contactService.Create(r.Context(), in); err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, contactResponse{Msg: msgRequired})
			return
		}
		slog.Error("save contact message failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, contactResponse{Msg: msgInternalServer})
		return
	}

	writeJSON(w, http.StatusOK, contactResponse{Success: true, Msg: msgSaved})
}

// decodeContactInput reads the request body as a form or as JSON depending
// on Content-Type. An empty JSON body decodes to an empty input.
func decodeContactInput(r *http.Request) (model.ContactInput, error) {
	var in model.ContactInput

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if mediaType == "multipart/form-data" {
			if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
				return in, err
			}
		} else if err := r.ParseForm(); err != nil {
			return in, err
		}
		in.Name = r.PostFormValue("name")
		in.Email = r.PostFormValue("email")
		in.Message = r.PostFormValue("message")
		return in, nil
	}

	var fields map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil && !errors.Is(err, io.EOF) {
		return in, err
	}
	var err error
	if in.Name, err = scalarString(fields, "name"); err != nil {
		return in, err
	}
	if in.Email, err = scalarString(fields, "email"); err != nil {
		return in, err
	}
	if in.Message, err = scalarString(fields, "message"); err != nil {
		return in, err
	}
	return in, nil
}

// scalarString returns fields[key] as text. Numbers and booleans are
// stored in their JSON spelling; objects and arrays are rejected.
func scalarString(fields map[string]any, key string) (string, error) {
	switch v := fields[key].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("field %q must be a string, got %T", key, v)
	}
}

// List handles GET /api/contacts. Responds with all messages, newest first.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contactService.List(r.Context())
	if err != nil {
		slog.Error("list contact messages failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, contactResponse{Msg: msgInternalServer})
		return
	}

	// Return [] not null for empty lists
	if messages == nil {
		messages = []*model.ContactMessage{}
	}
	writeJSON(w, http.StatusOK, messages)
}

// Delete handles DELETE /api/contact/{id}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.contactService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, contactResponse{Msg: msgNotFound})
			return
		}
		slog.Error("delete contact message failed", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, contactResponse{Msg: msgInternalServer})
		return
	}

	writeJSON(w, http.StatusOK, contactResponse{Success: true, Msg: msgDeleted})
}
