package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/cyberrps/arena/internal/auth"
)

func TestExtractTokenPrefersAuthorizationHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	r.Header.Set("Authorization", "Bearer header-token")
	r.AddCookie(&http.Cookie{Name: "auth_token", Value: "cookie-token"})

	if got := extractToken(r); got != "header-token" {
		t.Fatalf("expected header token, got %q", got)
	}
}

func TestExtractTokenFallsBackToCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	r.AddCookie(&http.Cookie{Name: "auth_token", Value: "cookie-token"})

	if got := extractToken(r); got != "cookie-token" {
		t.Fatalf("expected cookie token, got %q", got)
	}
}

func TestExtractTokenBareHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	r.Header.Set("Authorization", "raw-token")

	if got := extractToken(r); got != "raw-token" {
		t.Fatalf("expected raw token, got %q", got)
	}
}

func TestAuthenticateRequest(t *testing.T) {
	if err := auth.Init(); err != nil {
		t.Fatalf("auth init: %v", err)
	}
	id := uuid.New()
	token, err := auth.CreateToken(id.String())
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	got, err := authenticateRequest(r)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/user", nil)
	if _, err := authenticateRequest(r); err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestWriteErrorShape(t *testing.T) {
	w := httptest.NewRecorder()
	writeError(w, http.StatusBadRequest, "nope")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "nope" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	HealthHandler(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
