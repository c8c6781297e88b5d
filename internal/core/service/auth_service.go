package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/blogora/blog-api/internal/core/domain"
	"github.com/blogora/blog-api/internal/core/ports"
	"github.com/blogora/blog-api/internal/core/token"
)

// AuthService implements registration, login, and the verification state
// machine (Unverified -> Verified, terminal).
type AuthService struct {
	users        ports.UserRepository
	verification ports.VerificationStore
	notifier     ports.Notifier
	issuer       *token.Issuer
	clientDomain string
	log          zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	verification ports.VerificationStore,
	notifier ports.Notifier,
	issuer *token.Issuer,
	clientDomain string,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:        users,
		verification: verification,
		notifier:     notifier,
		issuer:       issuer,
		clientDomain: clientDomain,
		log:          log,
	}
}

// Register creates an unverified account and emails a verification link.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		ProfilePhoto: domain.Image{URL: domain.DefaultProfilePhotoURL},
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.sendVerificationEmail(ctx, created)

	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, nil
}

// Login authenticates by email and password. Correct credentials on an
// unverified account re-issue the verification token and fail with
// ErrAccountNotVerified, never with a credential error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Verified {
		s.sendVerificationEmail(ctx, user)
		return nil, domain.ErrAccountNotVerified
	}

	signed, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.LoginResult{Token: signed, User: user}, nil
}

// VerifyAccount consumes a one-time token and flips the account to verified.
// A consumed or mismatched token yields ErrVerificationNotFound.
func (s *AuthService) VerifyAccount(ctx context.Context, userID, secret string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.verification.Consume(ctx, user.ID, secret); err != nil {
		return err
	}

	if err := s.users.SetVerified(ctx, user.ID); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("account verified")
	return nil
}

// sendVerificationEmail is best effort: a notifier or store failure is logged
// and never blocks the primary operation.
func (s *AuthService) sendVerificationEmail(ctx context.Context, user *domain.User) {
	secret, _, err := s.verification.FindOrCreate(ctx, user.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to issue verification token")
		return
	}

	link := fmt.Sprintf("%s/users/%s/verify/%s", s.clientDomain, user.ID, secret)
	body := fmt.Sprintf(`<div><p>Click on the link below to verify your email</p><a href="%s">Verify</a></div>`, link)
	if err := s.notifier.Send(ctx, user.Email, "Verify Your Email", body); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to send verification email")
	}
}
