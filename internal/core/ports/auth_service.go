package ports

import (
	"context"

	"github.com/blogora/blog-api/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string
	User  *domain.User
}

// AuthService implements registration, login, and account verification.
type AuthService interface {
	// Register creates an unverified account and sends a verification email.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)

	// Login authenticates by email and password. An unverified account with
	// correct credentials re-issues its verification token and fails with
	// ErrAccountNotVerified so clients can prompt for the email check.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// VerifyAccount consumes a verification token and marks the account
	// verified. The transition is terminal.
	VerifyAccount(ctx context.Context, userID, secret string) error
}
