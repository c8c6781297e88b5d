package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/blogora/blog-api/internal/core/authz"
	"github.com/blogora/blog-api/internal/core/domain"
	"github.com/blogora/blog-api/internal/core/ports"
)

// UserService implements profile operations and account deletion.
type UserService struct {
	users   ports.UserRepository
	blobs   ports.BlobStorage
	cascade *Coordinator
	log     zerolog.Logger
}

func NewUserService(users ports.UserRepository, blobs ports.BlobStorage, cascade *Coordinator, log zerolog.Logger) *UserService {
	return &UserService{users: users, blobs: blobs, cascade: cascade, log: log}
}

func (s *UserService) List(ctx context.Context, claims *authz.Claims) ([]domain.User, error) {
	if d := authz.Authorize(claims, authz.AdminOnly()); !d.Allowed {
		return nil, d.Err()
	}
	return s.users.List(ctx)
}

func (s *UserService) Count(ctx context.Context, claims *authz.Claims) (int64, error) {
	if d := authz.Authorize(claims, authz.AdminOnly()); !d.Allowed {
		return 0, d.Err()
	}
	return s.users.Count(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// Update is strictly self-only; admins have no override on profiles.
func (s *UserService) Update(ctx context.Context, claims *authz.Claims, id string, input ports.UpdateUserInput) (*domain.User, error) {
	if d := authz.Authorize(claims, authz.SelfOnly(id)); !d.Allowed {
		return nil, d.Err()
	}

	upd := ports.UserUpdate{Username: input.Username, Bio: input.Bio}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		upd.PasswordHash = &hashed
	}

	updated, err := s.users.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id).Msg("profile updated")
	return updated, nil
}

// UploadProfilePhoto stores the new photo, swaps the reference, then removes
// the previous blob when one exists.
func (s *UserService) UploadProfilePhoto(ctx context.Context, claims *authz.Claims, upload ports.ImageUpload) (domain.Image, error) {
	if d := authz.Authorize(claims, authz.AnyAuthenticated()); !d.Allowed {
		return domain.Image{}, d.Err()
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return domain.Image{}, err
	}

	image, err := s.blobs.Upload(ctx, upload)
	if err != nil {
		return domain.Image{}, err
	}

	if err := s.users.SetProfilePhoto(ctx, user.ID, image); err != nil {
		return domain.Image{}, err
	}

	// Old blob removal is best effort; the record already points elsewhere.
	if user.ProfilePhoto.PublicID != "" {
		if err := s.blobs.Remove(ctx, user.ProfilePhoto.PublicID); err != nil {
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to remove previous profile photo")
		}
	}

	s.log.Info().Str("user_id", user.ID).Msg("profile photo updated")
	return image, nil
}

// Delete removes the account via the cascade coordinator. Allowed for the
// user themselves or an admin.
func (s *UserService) Delete(ctx context.Context, claims *authz.Claims, id string) error {
	if d := authz.Authorize(claims, authz.SelfOrAdmin(id)); !d.Allowed {
		return d.Err()
	}
	return s.cascade.DeleteUser(ctx, id)
}
