// Package sessionstore keeps the authoritative registry of refresh sessions.
// A refresh token is only usable while its record is present here, which is
// what makes self-contained refresh JWTs revocable.
package sessionstore

import (
	"context"
	"time"
)

// Record represents one active refresh-token lineage, keyed by the jti
// embedded in the refresh token. Identity fields are a snapshot taken at
// issuance time.
type Record struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the record's lifetime has passed at the given instant.
func (r Record) Expired(now time.Time) bool { return !r.ExpiresAt.After(now) }

// Store is the session registry. The in-memory implementation is the
// default; the redis implementation survives restarts.
type Store interface {
	// Get returns the record for a session id. The boolean is false when
	// the id is unknown.
	Get(ctx context.Context, sessionID string) (Record, bool, error)
	// Put inserts or replaces a record.
	Put(ctx context.Context, rec Record) error
	// Delete removes a record. Deleting an unknown id is not an error.
	Delete(ctx context.Context, sessionID string) error
	// SweepExpired removes every record expired at the given instant and
	// returns how many were removed. No background sweep runs; expired
	// records are otherwise pruned lazily on use.
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}
