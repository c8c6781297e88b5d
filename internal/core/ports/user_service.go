package ports

import (
	"context"

	"github.com/blogora/blog-api/internal/core/authz"
	"github.com/blogora/blog-api/internal/core/domain"
)

// UpdateUserInput carries the profile fields a user may change. Password, when
// set, is re-hashed before storage.
type UpdateUserInput struct {
	Username *string
	Bio      *string
	Password *string
}

// UserService defines use-case operations on accounts. Every operation
// receives the caller's claims and runs the relevant access policy before
// touching the store.
type UserService interface {
	List(ctx context.Context, claims *authz.Claims) ([]domain.User, error)
	Count(ctx context.Context, claims *authz.Claims) (int64, error)
	Get(ctx context.Context, id string) (*domain.User, error)

	// Update is strictly self-only; admins get no override on profiles.
	Update(ctx context.Context, claims *authz.Claims, id string, input UpdateUserInput) (*domain.User, error)

	// UploadProfilePhoto replaces the caller's photo, removing the previous
	// blob when one exists.
	UploadProfilePhoto(ctx context.Context, claims *authz.Claims, upload ImageUpload) (domain.Image, error)

	// Delete removes the account and cascades over its posts, comments, and
	// images. Allowed for the user themselves or an admin.
	Delete(ctx context.Context, claims *authz.Claims, id string) error
}
