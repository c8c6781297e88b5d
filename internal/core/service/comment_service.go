package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/blogora/blog-api/internal/core/authz"
	"github.com/blogora/blog-api/internal/core/domain"
	"github.com/blogora/blog-api/internal/core/ports"
)

// CommentService implements comment CRUD with the asymmetric edit/delete
// policy: only the author edits, but admins may delete.
type CommentService struct {
	comments ports.CommentRepository
	posts    ports.PostRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewCommentService(comments ports.CommentRepository, posts ports.PostRepository, users ports.UserRepository, log zerolog.Logger) *CommentService {
	return &CommentService{comments: comments, posts: posts, users: users, log: log}
}

func (s *CommentService) List(ctx context.Context, claims *authz.Claims, postID string) ([]domain.Comment, error) {
	if d := authz.Authorize(claims, authz.AnyAuthenticated()); !d.Allowed {
		return nil, d.Err()
	}
	if postID != "" {
		return s.comments.FindByPost(ctx, postID)
	}
	return s.comments.List(ctx)
}

// Create attaches a comment to an existing post. A missing post yields
// ErrPostNotFound; orphans are never created.
func (s *CommentService) Create(ctx context.Context, claims *authz.Claims, input ports.CreateCommentInput) (*domain.Comment, error) {
	if d := authz.Authorize(claims, authz.AnyAuthenticated()); !d.Allowed {
		return nil, d.Err()
	}

	if _, err := s.posts.FindByID(ctx, input.PostID); err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	comment := &domain.Comment{
		PostID:    input.PostID,
		OwnerID:   claims.UserID,
		Username:  author.Username,
		Text:      input.Text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.comments.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("comment_id", created.ID).Str("post_id", input.PostID).Msg("comment created")
	return created, nil
}

// Update is author-only. Admins are deliberately denied edit rights here even
// though they may delete.
func (s *CommentService) Update(ctx context.Context, claims *authz.Claims, id, text string) (*domain.Comment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d := authz.Authorize(claims, authz.SelfOnly(comment.OwnerID)); !d.Allowed {
		return nil, d.Err()
	}
	return s.comments.UpdateText(ctx, id, text)
}

// Delete is allowed for the author or an admin.
func (s *CommentService) Delete(ctx context.Context, claims *authz.Claims, id string) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if d := authz.Authorize(claims, authz.OwnerOrAdmin(comment.OwnerID)); !d.Allowed {
		return d.Err()
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("comment_id", id).Msg("comment deleted")
	return nil
}
