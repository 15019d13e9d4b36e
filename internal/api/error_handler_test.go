package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/e-garderoba/backend/internal/api/handler"
	"github.com/e-garderoba/backend/internal/core/domain"
)

func runErrorHandler(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec, body
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{domain.ErrEmailExists, http.StatusConflict, "email already exists"},
		{domain.ErrNoPermission, http.StatusForbidden, "no permission"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
	}
	for _, tc := range cases {
		rec, body := runErrorHandler(t, tc.err)
		if rec.Code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		if body["error"] != tc.message {
			t.Errorf("%v: expected %q, got %v", tc.err, tc.message, body["error"])
		}
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("list users: %w", domain.ErrNoPermission)
	rec, _ := runErrorHandler(t, wrapped)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for wrapped error, got %d", rec.Code)
	}
}

func TestErrorHandler_ValidationError(t *testing.T) {
	ve := &handler.ValidationError{Fields: []handler.FieldError{
		handler.NewFieldError("firstName", handler.CodeRequired),
	}}

	rec, body := runErrorHandler(t, ve)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["error"] != "Validation failed" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
	fields, ok := body["validationErrors"].([]any)
	if !ok || len(fields) != 1 {
		t.Fatalf("expected one validation error, got %v", body["validationErrors"])
	}
	first := fields[0].(map[string]any)
	if first["field"] != "firstName" || first["code"] != "REQUIRED" {
		t.Fatalf("unexpected field error: %v", first)
	}
}

func TestErrorHandler_UnexpectedErrorIsGeneric(t *testing.T) {
	rec, body := runErrorHandler(t, errors.New("mongo: socket closed"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("internal details leaked: %v", body["error"])
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec, body := runErrorHandler(t, echo.NewHTTPError(http.StatusUnauthorized, "invalid token"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body["error"] != "invalid token" {
		t.Fatalf("unexpected message: %v", body["error"])
	}
}
