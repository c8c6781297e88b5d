package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/blogora/blog-api/internal/api/metrics"
	"github.com/blogora/blog-api/internal/core/domain"
	"github.com/blogora/blog-api/internal/infrastructure/storage"
)

// errorResponse is the canonical error envelope for all API errors. Code is
// set only when clients need to tell apart errors sharing a status, e.g. an
// unverified-account login versus a validation failure.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, auth middleware).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusUnauthorized {
			metrics.AuthDenialsTotal.WithLabelValues("unauthenticated").Inc()
		}
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Cascade aborts: surface a 500 and keep the completed-step list in the log.
	var pf *domain.PartialFailureError
	if errors.As(err, &pf) {
		metrics.CascadeAbortsTotal.WithLabelValues(pf.Op, pf.Failed).Inc()
		log.Error().
			Err(pf.Err).
			Str("op", pf.Op).
			Str("failed_step", pf.Failed).
			Strs("completed_steps", pf.Completed).
			Str("path", c.Path()).
			Msg("cascade partial failure")
		return http.StatusInternalServerError, errorResponse{Error: "delete partially failed", Code: "partial_failure"}
	}

	// Known domain errors map to deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		metrics.AuthDenialsTotal.WithLabelValues("unauthenticated").Inc()
		return http.StatusUnauthorized, errorResponse{Error: "authentication required"}
	case errors.Is(err, domain.ErrForbidden):
		metrics.AuthDenialsTotal.WithLabelValues("forbidden").Inc()
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: "user not found"}
	case errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, errorResponse{Error: "post not found"}
	case errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound, errorResponse{Error: "comment not found"}
	case errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound, errorResponse{Error: "category not found"}
	case errors.Is(err, domain.ErrVerificationNotFound):
		return http.StatusNotFound, errorResponse{Error: "invalid or expired verification link"}
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, errorResponse{Error: "user already exists"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, errorResponse{Error: "invalid email or password"}
	case errors.Is(err, domain.ErrAccountNotVerified):
		return http.StatusBadRequest, errorResponse{
			Error: "we sent you an email, please verify your email address",
			Code:  "email_not_verified",
		}
	case errors.Is(err, storage.ErrFileTooBig), errors.Is(err, storage.ErrInvalidFileType):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
