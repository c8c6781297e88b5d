package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrVerificationNotFound = errors.New("verification token not found")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAccountNotVerified   = errors.New("account email not verified")
	ErrUnauthenticated      = errors.New("authentication required")
	ErrForbidden            = errors.New("access forbidden")
)

// PartialFailureError reports a cascade that aborted mid-sequence. Completed
// lists the steps that finished before the failure; nothing is rolled back.
type PartialFailureError struct {
	Op        string
	Failed    string
	Completed []string
	Err       error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s aborted at %s after [%s]: %v", e.Op, e.Failed, strings.Join(e.Completed, ", "), e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}
