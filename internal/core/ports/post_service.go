package ports

import (
	"context"

	"github.com/blogora/blog-api/internal/core/authz"
	"github.com/blogora/blog-api/internal/core/domain"
)

// CreatePostInput carries the fields and image for a new post.
type CreatePostInput struct {
	Title       string
	Description string
	Category    string
	Image       ImageUpload
}

// UpdatePostInput carries the mutable post fields; nil means unchanged.
type UpdatePostInput struct {
	Title       *string
	Description *string
	Category    *string
}

// PostPage is one page of the post listing.
type PostPage struct {
	Items []domain.Post
	Total int64
	Page  int
	Limit int
}

// PostService defines use-case operations on posts.
type PostService interface {
	Create(ctx context.Context, claims *authz.Claims, input CreatePostInput) (*domain.Post, error)
	List(ctx context.Context, filter ListPostsFilter) (*PostPage, error)
	Count(ctx context.Context) (int64, error)
	Get(ctx context.Context, id string) (*domain.Post, error)

	// Update and UpdateImage are owner-only; admins may delete but not edit.
	Update(ctx context.Context, claims *authz.Claims, id string, input UpdatePostInput) (*domain.Post, error)
	UpdateImage(ctx context.Context, claims *authz.Claims, id string, upload ImageUpload) (*domain.Post, error)

	// Delete cascades over the post's comments and image. Owner or admin.
	Delete(ctx context.Context, claims *authz.Claims, id string) error

	// ToggleLike flips the caller's like on the post: present becomes absent,
	// absent becomes present.
	ToggleLike(ctx context.Context, claims *authz.Claims, id string) (*domain.Post, error)
}
