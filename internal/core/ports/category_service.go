package ports

import (
	"context"

	"github.com/blogora/blog-api/internal/core/authz"
	"github.com/blogora/blog-api/internal/core/domain"
)

// CategoryService defines use-case operations on categories. Deleting a
// category does not touch posts; they reference the category by title.
type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, claims *authz.Claims, title string) (*domain.Category, error)
	Delete(ctx context.Context, claims *authz.Claims, id string) error
}
