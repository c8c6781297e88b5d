package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/blogora/blog-api/internal/core/domain"
	"github.com/blogora/blog-api/internal/core/ports"
	"github.com/blogora/blog-api/internal/core/token"
)

type authFixture struct {
	users        *stubUserRepo
	verification *stubVerification
	notifier     *stubNotifier
	issuer       *token.Issuer
	svc          *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:        newStubUserRepo(),
		verification: newStubVerification(),
		notifier:     newStubNotifier(),
		issuer:       token.NewIssuer("test-secret", time.Hour),
	}
	f.svc = NewAuthService(f.users, f.verification, f.notifier, f.issuer, "http://localhost:5173", nopLogger())
	return f
}

func (f *authFixture) register(t *testing.T) *domain.User {
	t.Helper()
	user, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "alice@test.dev",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	return user
}

func TestAuthService_Register(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t)

	if user.Verified {
		t.Fatal("new accounts must start unverified")
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("Role = %q, want %q", user.Role, domain.RoleUser)
	}
	if user.PasswordHash == "correct-horse" {
		t.Fatal("password must be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.ProfilePhoto.URL != domain.DefaultProfilePhotoURL {
		t.Fatalf("ProfilePhoto.URL = %q, want the default", user.ProfilePhoto.URL)
	}

	if len(f.notifier.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(f.notifier.sent))
	}
	mail := f.notifier.sent[0]
	if mail.to != "alice@test.dev" {
		t.Fatalf("email sent to %q", mail.to)
	}
	secret := f.verification.secrets[user.ID]
	if secret == "" || !strings.Contains(mail.body, "/users/"+user.ID+"/verify/"+secret) {
		t.Fatalf("email body missing verification link: %q", mail.body)
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	f := newAuthFixture()
	f.register(t)

	_, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice2",
		Email:    "alice@test.dev",
		Password: "another-pass",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_NotifierFailureIsNotFatal(t *testing.T) {
	f := newAuthFixture()
	f.notifier.sendErr = errors.New("smtp down")

	if _, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "alice@test.dev",
		Password: "correct-horse",
	}); err != nil {
		t.Fatalf("Register must not fail on notifier errors, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	f := newAuthFixture()
	if _, err := f.svc.Login(context.Background(), "ghost@test.dev", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	f := newAuthFixture()
	f.register(t)
	if _, err := f.svc.Login(context.Background(), "alice@test.dev", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnverifiedResendsToken(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t)
	firstSecret := f.verification.secrets[user.ID]

	_, err := f.svc.Login(context.Background(), "alice@test.dev", "correct-horse")
	if !errors.Is(err, domain.ErrAccountNotVerified) {
		t.Fatalf("expected ErrAccountNotVerified, got %v", err)
	}

	// Correct credentials on an unverified account re-send the same pending
	// secret rather than failing as a credential error.
	if len(f.notifier.sent) != 2 {
		t.Fatalf("sent %d emails, want 2", len(f.notifier.sent))
	}
	if got := f.verification.secrets[user.ID]; got != firstSecret {
		t.Fatalf("pending secret changed from %q to %q", firstSecret, got)
	}
}

func TestAuthService_VerifyThenLogin(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t)
	secret := f.verification.secrets[user.ID]

	if err := f.svc.VerifyAccount(context.Background(), user.ID, secret); err != nil {
		t.Fatalf("VerifyAccount returned error: %v", err)
	}

	result, err := f.svc.Login(context.Background(), "alice@test.dev", "correct-horse")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a signed token")
	}
	claims, err := f.issuer.Verify(result.Token)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != domain.RoleUser {
		t.Fatalf("token claims = %+v", claims)
	}
}

func TestAuthService_VerifyAccount_TokenIsOneTime(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t)
	secret := f.verification.secrets[user.ID]

	if err := f.svc.VerifyAccount(context.Background(), user.ID, secret); err != nil {
		t.Fatalf("first VerifyAccount returned error: %v", err)
	}
	if err := f.svc.VerifyAccount(context.Background(), user.ID, secret); !errors.Is(err, domain.ErrVerificationNotFound) {
		t.Fatalf("expected ErrVerificationNotFound on reuse, got %v", err)
	}
}

func TestAuthService_VerifyAccount_WrongSecret(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t)

	if err := f.svc.VerifyAccount(context.Background(), user.ID, "bogus"); !errors.Is(err, domain.ErrVerificationNotFound) {
		t.Fatalf("expected ErrVerificationNotFound, got %v", err)
	}
	if f.users.users[user.ID].Verified {
		t.Fatal("account must stay unverified after a failed attempt")
	}
}

func TestAuthService_VerifyAccount_UnknownUser(t *testing.T) {
	f := newAuthFixture()
	if err := f.svc.VerifyAccount(context.Background(), "ghost", "secret"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
