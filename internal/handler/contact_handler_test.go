package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/contactsite/backend/internal/model"
	"github.com/contactsite/backend/internal/repository"
	"github.com/contactsite/backend/internal/service"
)

// ---------------------------------------------------------------------------
// Mock ContactService
// ---------------------------------------------------------------------------

type mockContactService struct {
	createFunc func(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error)
	listFunc   func(ctx context.Context) ([]*model.ContactMessage, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockContactService) Create(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, in)
	}
	return &model.ContactMessage{ID: "1", Name: in.Name, Email: in.Email, Message: in.Message}, nil
}

func (m *mockContactService) List(ctx context.Context) ([]*model.ContactMessage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockContactService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func decodeContactResponse(t *testing.T, rec *httptest.ResponseRecorder) contactResponse {
	t.Helper()
	var resp contactResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

// ---------------------------------------------------------------------------
// POST /api/contact tests
// ---------------------------------------------------------------------------

func TestContactHandler_Create_Success(t *testing.T) {
	var captured model.ContactInput
	mock := &mockContactService{
		createFunc: func(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error) {
			captured = in
			return &model.ContactMessage{ID: "1"}, nil
		},
	}
	h := NewContactHandler(mock)

	body := `{"name":"Alice","email":"alice@example.com","message":"Hello!"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d - body: %s", rec.Code, rec.Body.String())
	}
	resp := decodeContactResponse(t, rec)
	if !resp.Success || resp.Msg != "Message saved" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if captured.Name != "Alice" || captured.Email != "alice@example.com" || captured.Message != "Hello!" {
		t.Errorf("unexpected input forwarded: %+v", captured)
	}
}

// TestContactHandler_Create_FormEncoded verifies HTML form posts are accepted.
func TestContactHandler_Create_FormEncoded(t *testing.T) {
	var captured model.ContactInput
	mock := &mockContactService{
		createFunc: func(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error) {
			captured = in
			return &model.ContactMessage{ID: "1"}, nil
		},
	}
	h := NewContactHandler(mock)

	form := url.Values{"name": {"Bob"}, "email": {"bob@example.com"}, "message": {"via form"}}
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d - body: %s", rec.Code, rec.Body.String())
	}
	if captured.Name != "Bob" || captured.Email != "bob@example.com" || captured.Message != "via form" {
		t.Errorf("unexpected input forwarded: %+v", captured)
	}
}

// TestContactHandler_Create_ValidationError verifies ErrValidation maps to 400.
func TestContactHandler_Create_ValidationError(t *testing.T) {
	mock := &mockContactService{
		createFunc: func(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error) {
			return nil, fmt.Errorf("%w: name missing", service.ErrValidation)
		},
	}
	h := NewContactHandler(mock)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{"email":"a@x.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	resp := decodeContactResponse(t, rec)
	if resp.Success || resp.Msg != "Name and email are required" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

// TestContactHandler_Create_EmptyBody verifies a missing body reaches validation.
func TestContactHandler_Create_EmptyBody(t *testing.T) {
	var called bool
	mock := &mockContactService{
		createFunc: func(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error) {
			called = true
			if in.Name != "" || in.Email != "" {
				t.Errorf("expected empty input, got %+v", in)
			}
			return nil, service.ErrValidation
		},
	}
	h := NewContactHandler(mock)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if !called {
		t.Error("expected service Create to be called")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

// TestContactHandler_Create_InvalidJSON verifies that malformed JSON returns 400.
func TestContactHandler_Create_InvalidJSON(t *testing.T) {
	mock := &mockContactService{
		createFunc: func(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error) {
			t.Error("service must not be called for malformed JSON")
			return nil, nil
		},
	}
	h := NewContactHandler(mock)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader("{bad json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid JSON, got %d", rec.Code)
	}
	resp := decodeContactResponse(t, rec)
	if resp.Success {
		t.Error("expected success=false")
	}
}

func TestContactHandler_Create_ScalarFieldsBecomeText(t *testing.T) {
	var captured model.ContactInput
	mock := &mockContactService{
		createFunc: func(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error) {
			captured = in
			return &model.ContactMessage{ID: "1"}, nil
		},
	}
	h := NewContactHandler(mock)

	body := `{"name":123,"email":"a@x.com","message":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Name != "123" || captured.Email != "a@x.com" || captured.Message != "true" {
		t.Errorf("unexpected input: %+v", captured)
	}
}

func TestContactHandler_Create_NonScalarField(t *testing.T) {
	mock := &mockContactService{
		createFunc: func(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error) {
			t.Error("service must not be called for an object field")
			return nil, nil
		},
	}
	h := NewContactHandler(mock)

	for _, body := range []string{
		`{"name":{"first":"Ann"},"email":"a@x.com"}`,
		`{"name":"Ann","email":["a@x.com"]}`,
		`["Ann","a@x.com"]`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, rec.Code)
		}
		if resp := decodeContactResponse(t, rec); resp.Msg != msgInvalidBody {
			t.Errorf("%s: expected %q, got %q", body, msgInvalidBody, resp.Msg)
		}
	}
}

// TestContactHandler_Create_ServiceError verifies storage failures return a generic 500.
func TestContactHandler_Create_ServiceError(t *testing.T) {
	mock := &mockContactService{
		createFunc: func(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error) {
			return nil, errors.New("mongo: write concern failed on shard-7")
		},
	}
	h := NewContactHandler(mock)

	body := `{"name":"Ann","email":"a@x.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 on service error, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "shard-7") {
		t.Errorf("internal error leaked to client: %s", rec.Body.String())
	}
	resp := decodeContactResponse(t, rec)
	if resp.Success || resp.Msg != "Server error" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

// TestContactHandler_Create_ContentTypeJSON verifies the response Content-Type header.
func TestContactHandler_Create_ContentTypeJSON(t *testing.T) {
	h := NewContactHandler(&mockContactService{})

	body := `{"name":"t","email":"t@e.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type=application/json, got %q", ct)
	}
}

// ---------------------------------------------------------------------------
// GET /api/contacts tests
// ---------------------------------------------------------------------------

func TestContactHandler_List_Success(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	messages := []*model.ContactMessage{
		{ID: "2", Name: "Bob", Email: "b@x.com", Message: "Hi", Date: now},
		{ID: "1", Name: "Ann", Email: "a@x.com", Message: "", Date: now.Add(-time.Hour)},
	}
	mock := &mockContactService{
		listFunc: func(ctx context.Context) ([]*model.ContactMessage, error) {
			return messages, nil
		},
	}
	h := NewContactHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d - body: %s", rec.Code, rec.Body.String())
	}

	var resp []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(resp))
	}
	if resp[0]["_id"] != "2" || resp[0]["name"] != "Bob" {
		t.Errorf("unexpected first record: %v", resp[0])
	}
	if resp[0]["date"] != "2025-01-02T03:04:05Z" {
		t.Errorf("unexpected date encoding: %v", resp[0]["date"])
	}
}

// TestContactHandler_List_EmptyArray verifies an empty store encodes as [] not null.
func TestContactHandler_List_EmptyArray(t *testing.T) {
	h := NewContactHandler(&mockContactService{})

	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("expected [], got %s", got)
	}
}

func TestContactHandler_List_ServiceError(t *testing.T) {
	mock := &mockContactService{
		listFunc: func(ctx context.Context) ([]*model.ContactMessage, error) {
			return nil, errors.New("database error")
		},
	}
	h := NewContactHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	resp := decodeContactResponse(t, rec)
	if resp.Success || resp.Msg != "Server error" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

// ---------------------------------------------------------------------------
// DELETE /api/contact/{id} tests
// ---------------------------------------------------------------------------

func newDeleteRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodDelete, "/api/contact/"+id, nil)
	req.SetPathValue("id", id)
	return req
}

func TestContactHandler_Delete_Success(t *testing.T) {
	var gotID string
	mock := &mockContactService{
		deleteFunc: func(ctx context.Context, id string) error {
			gotID = id
			return nil
		},
	}
	h := NewContactHandler(mock)

	rec := httptest.NewRecorder()
	h.Delete(rec, newDeleteRequest("65f1c0ffee"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != "65f1c0ffee" {
		t.Errorf("expected id forwarded, got %q", gotID)
	}
	resp := decodeContactResponse(t, rec)
	if !resp.Success || resp.Msg != "Message deleted" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestContactHandler_Delete_NotFound(t *testing.T) {
	mock := &mockContactService{
		deleteFunc: func(ctx context.Context, id string) error {
			return repository.ErrNotFound
		},
	}
	h := NewContactHandler(mock)

	rec := httptest.NewRecorder()
	h.Delete(rec, newDeleteRequest("missing"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	resp := decodeContactResponse(t, rec)
	if resp.Success || resp.Msg != "Message not found" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestContactHandler_Delete_ServiceError(t *testing.T) {
	mock := &mockContactService{
		deleteFunc: func(ctx context.Context, id string) error {
			return fmt.Errorf("delete: %w", repository.ErrUnavailable)
		},
	}
	h := NewContactHandler(mock)

	rec := httptest.NewRecorder()
	h.Delete(rec, newDeleteRequest("abc"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
