package ports

import (
	"context"

	"github.com/blogora/blog-api/internal/core/domain"
)

// ListPostsFilter carries the query parameters for listing posts. Results are
// always sorted newest first.
type ListPostsFilter struct {
	Category string // optional: exact match on category title
	Page     int    // 1-based; 0 disables pagination
	Limit    int    // rows per page (capped by the service)
}

// PostUpdate carries the mutable post fields. OwnerID is immutable and has no
// update path.
type PostUpdate struct {
	Title       *string
	Description *string
	Category    *string
}

// PostRepository defines persistence operations for posts. Single-document
// mutations (likes, image swap) are atomic at the store.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Post, error)
	List(ctx context.Context, filter ListPostsFilter) ([]domain.Post, int64, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, upd PostUpdate) (*domain.Post, error)
	SetImage(ctx context.Context, id string, image domain.Image) (*domain.Post, error)
	AddLike(ctx context.Context, id, userID string) (*domain.Post, error)
	RemoveLike(ctx context.Context, id, userID string) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) error
}
