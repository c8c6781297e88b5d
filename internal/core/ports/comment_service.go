package ports

import (
	"context"

	"github.com/blogora/blog-api/internal/core/authz"
	"github.com/blogora/blog-api/internal/core/domain"
)

// CreateCommentInput carries the data for a new comment.
type CreateCommentInput struct {
	PostID string
	Text   string
}

// CommentService defines use-case operations on comments.
type CommentService interface {
	// List returns all comments, or only those on one post when postID is
	// non-empty.
	List(ctx context.Context, claims *authz.Claims, postID string) ([]domain.Comment, error)

	// Create refuses to attach a comment to a missing post.
	Create(ctx context.Context, claims *authz.Claims, input CreateCommentInput) (*domain.Comment, error)

	// Update is owner-only; admins are denied edit but allowed delete.
	Update(ctx context.Context, claims *authz.Claims, id, text string) (*domain.Comment, error)
	Delete(ctx context.Context, claims *authz.Claims, id string) error
}
