package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/blogora/blog-api/internal/core/domain"
	"github.com/blogora/blog-api/internal/infrastructure/storage"
)

func invokeErrorHandler(t *testing.T, err error) (*httptest.ResponseRecorder, errorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return rec, resp
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, ""},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, ""},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, ""},
		{"post not found", domain.ErrPostNotFound, http.StatusNotFound, ""},
		{"comment not found", domain.ErrCommentNotFound, http.StatusNotFound, ""},
		{"category not found", domain.ErrCategoryNotFound, http.StatusNotFound, ""},
		{"verification not found", domain.ErrVerificationNotFound, http.StatusNotFound, ""},
		{"email taken", domain.ErrEmailTaken, http.StatusBadRequest, ""},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusBadRequest, ""},
		{"account not verified", domain.ErrAccountNotVerified, http.StatusBadRequest, "email_not_verified"},
		{"file too big", storage.ErrFileTooBig, http.StatusBadRequest, ""},
		{"invalid file type", storage.ErrInvalidFileType, http.StatusBadRequest, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, resp := invokeErrorHandler(t, tc.err)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if resp.Code != tc.code {
				t.Fatalf("code = %q, want %q", resp.Code, tc.code)
			}
			if resp.Error == "" {
				t.Fatal("error message must not be empty")
			}
		})
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("find post"), domain.ErrPostNotFound)
	rec, _ := invokeErrorHandler(t, wrapped)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec, resp := invokeErrorHandler(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if resp.Error != "missing authorization header" {
		t.Fatalf("error = %q", resp.Error)
	}
}

func TestErrorHandler_PartialFailure(t *testing.T) {
	pf := &domain.PartialFailureError{
		Op:        "delete_user",
		Failed:    "delete_posts",
		Completed: []string{"locate_user", "remove_post_images"},
		Err:       errors.New("collection offline"),
	}
	rec, resp := invokeErrorHandler(t, pf)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if resp.Code != "partial_failure" {
		t.Fatalf("code = %q, want partial_failure", resp.Code)
	}
}

func TestErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	rec, resp := invokeErrorHandler(t, errors.New("pq: connection refused"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if resp.Error != "internal server error" {
		t.Fatalf("error = %q, internals must not leak", resp.Error)
	}
}
