package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/blogora/blog-api/internal/core/domain"
)

const verificationTTL = 24 * time.Hour

// VerificationStore keeps one-time account verification secrets in Redis.
// Key format: verify:<user_id>. SETNX gives the find-or-create semantics: at
// most one pending secret per user, without a separate exclusivity check.
type VerificationStore struct {
	client *redis.Client
}

// NewVerificationStore wraps the given Redis client.
func NewVerificationStore(client *redis.Client) *VerificationStore {
	return &VerificationStore{client: client}
}

// FindOrCreate returns the pending secret for userID, minting one when none
// exists. Secrets expire after verificationTTL; an expired secret is simply
// re-created on the next login attempt.
func (s *VerificationStore) FindOrCreate(ctx context.Context, userID string) (string, bool, error) {
	secret, err := newSecret()
	if err != nil {
		return "", false, err
	}

	created, err := s.client.SetNX(ctx, s.key(userID), secret, verificationTTL).Result()
	if err != nil {
		return "", false, fmt.Errorf("verification setnx: %w", err)
	}
	if created {
		return secret, true, nil
	}

	existing, err := s.client.Get(ctx, s.key(userID)).Result()
	if err != nil {
		return "", false, fmt.Errorf("verification get: %w", err)
	}
	return existing, false, nil
}

// Consume validates and deletes the secret. A missing or mismatched secret
// yields ErrVerificationNotFound, so a second presentation after success
// fails the same way as a fabricated one.
func (s *VerificationStore) Consume(ctx context.Context, userID, secret string) error {
	stored, err := s.client.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ErrVerificationNotFound
		}
		return fmt.Errorf("verification get: %w", err)
	}
	if stored != secret {
		return domain.ErrVerificationNotFound
	}

	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("verification del: %w", err)
	}
	return nil
}

func (s *VerificationStore) key(userID string) string {
	return "verify:" + userID
}

func newSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
