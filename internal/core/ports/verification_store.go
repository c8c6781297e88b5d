package ports

import "context"

// VerificationStore holds one-time account verification secrets, at most one
// pending per user.
type VerificationStore interface {
	// FindOrCreate returns the pending secret for userID, creating one if
	// none exists. created reports whether a new secret was minted.
	FindOrCreate(ctx context.Context, userID string) (secret string, created bool, err error)

	// Consume validates and deletes the secret in one pass. A missing or
	// mismatched secret yields ErrVerificationNotFound; a consumed secret
	// cannot be presented twice.
	Consume(ctx context.Context, userID, secret string) error
}
