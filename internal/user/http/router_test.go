package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mcguiretech/truapi/internal/common/logger"
	"github.com/mcguiretech/truapi/internal/user/repository"
	"github.com/mcguiretech/truapi/internal/user/service"
)

func setupHandler(t *testing.T) http.Handler {
	t.Helper()

	log, err := logger.New("", "test", "error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	users := service.NewUserService(repository.NewMemoryRepository(), log)
	return NewHandler(users, log, 5*time.Second)
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeUser(t *testing.T, rec *httptest.ResponseRecorder) userResponse {
	t.Helper()

	var resp userResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestHandler_CreateGetUpdateDelete(t *testing.T) {
	handler := setupHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/users", map[string]string{
		"username":     "alice",
		"email":        "alice@example.com",
		"display_name": "Alice",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeUser(t, rec)
	if created.ID == "" {
		t.Fatal("expected generated id")
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/users/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	got := decodeUser(t, rec)
	if got.Username != "alice" || got.Email != "alice@example.com" {
		t.Errorf("unexpected user %+v", got)
	}

	rec = doJSON(t, handler, http.MethodPatch, "/api/users/"+created.ID, map[string]string{
		"display_name": "Alice Liddell",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := decodeUser(t, rec)
	if updated.DisplayName != "Alice Liddell" {
		t.Errorf("expected patched display name, got %q", updated.DisplayName)
	}
	if updated.Email != "alice@example.com" {
		t.Errorf("email should be untouched, got %q", updated.Email)
	}

	rec = doJSON(t, handler, http.MethodDelete, "/api/users/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/users/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestHandler_ListFiltersByQuery(t *testing.T) {
	handler := setupHandler(t)

	for _, u := range []map[string]string{
		{"username": "alice", "email": "alice@example.com"},
		{"username": "bob", "email": "bob@example.com"},
	} {
		if rec := doJSON(t, handler, http.MethodPost, "/api/users", u); rec.Code != http.StatusCreated {
			t.Fatalf("setup create failed: %d", rec.Code)
		}
	}

	rec := doJSON(t, handler, http.MethodGet, "/api/users?username=bob", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var users []userResponse
	if err := json.NewDecoder(rec.Body).Decode(&users); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(users) != 1 || users[0].Username != "bob" {
		t.Errorf("expected only bob, got %+v", users)
	}
}

func TestHandler_CreateRejectsInvalidBody(t *testing.T) {
	handler := setupHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed json, got %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/users", map[string]string{
		"username": "alice",
		"email":    "not-an-email",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid email, got %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/users", map[string]string{
		"email": "alice@example.com",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing username, got %d", rec.Code)
	}
}

func TestHandler_InvalidIDFormat(t *testing.T) {
	handler := setupHandler(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/users/not-a-valid-id", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed id, got %d", rec.Code)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	handler := setupHandler(t)

	rec := doJSON(t, handler, http.MethodPut, "/api/users", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}
