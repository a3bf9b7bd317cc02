package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/trogers1052/stock-journal/internal/cache"
)

const revokedPrefix = "revoked:"

// Revocations records signed-out token ids until the token would have expired
type Revocations struct {
	store cache.Store
}

// NewRevocations creates a revocation list over store
func NewRevocations(store cache.Store) *Revocations {
	return &Revocations{store: store}
}

// Revoke marks the token identified by claims as signed out
func (r *Revocations) Revoke(ctx context.Context, claims Claims) error {
	if claims.ID == "" {
		return nil
	}

	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
		if ttl <= 0 {
			return nil
		}
	}
	if err := r.store.Set(ctx, revokedPrefix+claims.ID, []byte(claims.Subject), ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id was signed out
func (r *Revocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	_, found, err := r.store.Get(ctx, revokedPrefix+tokenID)
	if err != nil {
		return false, fmt.Errorf("failed to check revocation: %w", err)
	}
	return found, nil
}
