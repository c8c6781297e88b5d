package ports

import (
	"context"

	"github.com/blogora/blog-api/internal/core/domain"
)

// UserUpdate carries the mutable profile fields. Nil pointers leave the
// stored value untouched.
type UserUpdate struct {
	Username     *string
	Bio          *string
	PasswordHash *string
}

// UserRepository defines persistence operations for accounts. Email
// uniqueness is enforced at this boundary (Create returns ErrEmailTaken).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
	SetProfilePhoto(ctx context.Context, id string, photo domain.Image) error
	SetVerified(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
