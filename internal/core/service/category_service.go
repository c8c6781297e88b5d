package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/blogora/blog-api/internal/core/authz"
	"github.com/blogora/blog-api/internal/core/domain"
	"github.com/blogora/blog-api/internal/core/ports"
)

// CategoryService implements category CRUD. Posts reference categories by
// title value, so category deletion never cascades.
type CategoryService struct {
	categories ports.CategoryRepository
	log        zerolog.Logger
}

func NewCategoryService(categories ports.CategoryRepository, log zerolog.Logger) *CategoryService {
	return &CategoryService{categories: categories, log: log}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *CategoryService) Create(ctx context.Context, claims *authz.Claims, title string) (*domain.Category, error) {
	if d := authz.Authorize(claims, authz.AnyAuthenticated()); !d.Allowed {
		return nil, d.Err()
	}

	category := &domain.Category{
		Title:     title,
		CreatorID: claims.UserID,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.categories.Create(ctx, category)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("category_id", created.ID).Str("title", title).Msg("category created")
	return created, nil
}

// Delete is admin-only and leaves posts in the category untouched.
func (s *CategoryService) Delete(ctx context.Context, claims *authz.Claims, id string) error {
	if d := authz.Authorize(claims, authz.AdminOnly()); !d.Allowed {
		return d.Err()
	}
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}
