package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/blogora/blog-api/internal/core/authz"
	"github.com/blogora/blog-api/internal/core/domain"
	"github.com/blogora/blog-api/internal/core/ports"
)

const (
	defaultPostsPerPage = 4
	maxPostsPerPage     = 50
)

// PostService implements post CRUD, image management, and the like toggle.
type PostService struct {
	posts   ports.PostRepository
	blobs   ports.BlobStorage
	cascade *Coordinator
	log     zerolog.Logger
}

func NewPostService(posts ports.PostRepository, blobs ports.BlobStorage, cascade *Coordinator, log zerolog.Logger) *PostService {
	return &PostService{posts: posts, blobs: blobs, cascade: cascade, log: log}
}

func (s *PostService) Create(ctx context.Context, claims *authz.Claims, input ports.CreatePostInput) (*domain.Post, error) {
	if d := authz.Authorize(claims, authz.AnyAuthenticated()); !d.Allowed {
		return nil, d.Err()
	}

	image, err := s.blobs.Upload(ctx, input.Image)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &domain.Post{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		OwnerID:     claims.UserID,
		Image:       image,
		Likes:       []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("post_id", created.ID).Str("owner_id", claims.UserID).Str("category", created.Category).Msg("post created")
	return created, nil
}

func (s *PostService) List(ctx context.Context, filter ports.ListPostsFilter) (*ports.PostPage, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultPostsPerPage
	}
	if filter.Limit > maxPostsPerPage {
		filter.Limit = maxPostsPerPage
	}

	items, total, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.PostPage{Items: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *PostService) Count(ctx context.Context) (int64, error) {
	return s.posts.Count(ctx)
}

func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// Update is owner-only. Deletion grants admins an override; editing does not.
func (s *PostService) Update(ctx context.Context, claims *authz.Claims, id string, input ports.UpdatePostInput) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(claims, authz.SelfOnly(post.OwnerID)); !d.Allowed {
		return nil, d.Err()
	}

	updated, err := s.posts.Update(ctx, id, ports.PostUpdate{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("post_id", id).Msg("post updated")
	return updated, nil
}

// UpdateImage replaces the post image: old blob removed, new one uploaded,
// reference swapped. Owner-only.
func (s *PostService) UpdateImage(ctx context.Context, claims *authz.Claims, id string, upload ports.ImageUpload) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(claims, authz.SelfOnly(post.OwnerID)); !d.Allowed {
		return nil, d.Err()
	}

	if post.Image.PublicID != "" {
		if err := s.blobs.Remove(ctx, post.Image.PublicID); err != nil {
			return nil, err
		}
	}

	image, err := s.blobs.Upload(ctx, upload)
	if err != nil {
		return nil, err
	}

	updated, err := s.posts.SetImage(ctx, id, image)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("post_id", id).Msg("post image replaced")
	return updated, nil
}

// Delete cascades over the post's comments and image. Owner or admin.
func (s *PostService) Delete(ctx context.Context, claims *authz.Claims, id string) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if d := authz.Authorize(claims, authz.OwnerOrAdmin(post.OwnerID)); !d.Allowed {
		return d.Err()
	}
	return s.cascade.DeletePost(ctx, id)
}

// ToggleLike flips the caller's like: present becomes absent, absent becomes
// present. Two consecutive toggles restore the original state.
func (s *PostService) ToggleLike(ctx context.Context, claims *authz.Claims, id string) (*domain.Post, error) {
	if d := authz.Authorize(claims, authz.AnyAuthenticated()); !d.Allowed {
		return nil, d.Err()
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.LikedBy(claims.UserID) {
		return s.posts.RemoveLike(ctx, id, claims.UserID)
	}
	return s.posts.AddLike(ctx, id, claims.UserID)
}
