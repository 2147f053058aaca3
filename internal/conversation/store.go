package conversation

import (
	"context"
	"errors"
)

var ErrSessionNotFound = errors.New("session not found")

// Store keeps sessions keyed by their ID. Implementations must expire entries
// after the configured inactivity TTL; an expired session is indistinguishable
// from a missing one.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)

	Put(ctx context.Context, session *Session) error

	Delete(ctx context.Context, id string) error

	// PurgeExpired removes sessions past their TTL and reports how many were
	// dropped. Implementations with native expiry may return 0.
	PurgeExpired(ctx context.Context) (int, error)
}
