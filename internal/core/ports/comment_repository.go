package ports

import (
	"context"

	"github.com/blogora/blog-api/internal/core/domain"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	List(ctx context.Context) ([]domain.Comment, error)
	FindByPost(ctx context.Context, postID string) ([]domain.Comment, error)
	UpdateText(ctx context.Context, id, text string) (*domain.Comment, error)
	Delete(ctx context.Context, id string) error
	DeleteByPost(ctx context.Context, postID string) error
	DeleteByOwner(ctx context.Context, ownerID string) error
}
