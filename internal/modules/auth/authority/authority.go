// Package authority owns the session lifecycle: issuing access/refresh
// token pairs, validating access tokens, rotating refresh tokens on use,
// and revoking sessions.
package authority

import (
	"context"
	"sync"
	"time"

	"github.com/lingrid/core/internal/pkg/token"
	"github.com/lingrid/core/internal/sessionstore"
)

// Identity is the per-request authenticated identity derived from a valid
// access token. It is never persisted.
type Identity struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
}

// Pair is a freshly issued access/refresh token pair and the session id
// backing the refresh token.
type Pair struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
}

// Authority issues, validates, rotates, and revokes sessions.
//
// Access tokens are deliberately never revoked server-side: a stolen access
// token stays valid until its own short expiry regardless of logout. Only
// refresh sessions are revocable.
type Authority struct {
	codec *token.Codec
	store sessionstore.Store

	// Serializes rotate's lookup→delete→insert sequence so a concurrent
	// rotate or revoke on the same session id cannot interleave.
	mu sync.Mutex

	now func() time.Time
}

// New creates a session authority over the given codec and store.
func New(codec *token.Codec, store sessionstore.Store) *Authority {
	return &Authority{codec: codec, store: store, now: time.Now}
}

// Issue signs a fresh token pair for the identity and registers the new
// session. Codec and store failures are surfaced verbatim.
func (a *Authority) Issue(ctx context.Context, userID, email string) (Pair, error) {
	access, err := a.codec.SignAccess(userID, email)
	if err != nil {
		return Pair{}, err
	}
	refresh, jti, err := a.codec.SignRefresh(userID, email)
	if err != nil {
		return Pair{}, err
	}

	rec := sessionstore.Record{
		SessionID: jti,
		UserID:    userID,
		Email:     email,
		ExpiresAt: a.now().Add(a.codec.RefreshTTL()),
	}
	if err := a.store.Put(ctx, rec); err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh, SessionID: jti}, nil
}

// ValidateAccess checks an access token and returns the embedded identity.
// The check is stateless: validity is purely cryptographic plus expiry.
func (a *Authority) ValidateAccess(tokenStr string) (Identity, error) {
	if tokenStr == "" {
		return Identity{}, unauthenticated(CauseNoToken, "access token is required")
	}
	claims, err := a.codec.VerifyAccess(tokenStr)
	if err != nil {
		if err == token.ErrExpired {
			return Identity{}, unauthenticated(CauseTokenExpired, "access token expired")
		}
		return Identity{}, unauthenticated(CauseInvalidClaims, "access token invalid")
	}
	return Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// Rotate exchanges a refresh token for a brand-new session. Rotation is
// single-use: the old session record is deleted, so replaying the old
// token fails.
func (a *Authority) Rotate(ctx context.Context, oldRefresh string) (Identity, Pair, error) {
	claims, err := a.codec.VerifyRefresh(oldRefresh)
	if err != nil {
		if err == token.ErrExpired {
			return Identity{}, Pair{}, unauthenticated(CauseRefreshTokenExpired, "refresh token expired")
		}
		return Identity{}, Pair{}, unauthenticated(CauseInvalidRefreshToken, "refresh token invalid")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	rec, ok, err := a.store.Get(ctx, claims.SessionID())
	if err != nil {
		return Identity{}, Pair{}, err
	}
	if !ok || rec.UserID != claims.UserID {
		// Unknown jti (already rotated or revoked) or a valid-looking
		// token bound to someone else's session.
		return Identity{}, Pair{}, unauthenticated(CauseSessionNotFound, "refresh session not found")
	}
	if rec.Expired(a.now()) {
		_ = a.store.Delete(ctx, rec.SessionID)
		return Identity{}, Pair{}, unauthenticated(CauseRefreshTokenExpired, "refresh session expired")
	}

	if err := a.store.Delete(ctx, rec.SessionID); err != nil {
		return Identity{}, Pair{}, err
	}
	pair, err := a.Issue(ctx, rec.UserID, rec.Email)
	if err != nil {
		return Identity{}, Pair{}, err
	}
	return Identity{UserID: rec.UserID, Email: rec.Email}, pair, nil
}

// Revoke deletes a session. Unknown ids succeed; logout must never fail
// because of a stale session.
func (a *Authority) Revoke(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return a.store.Delete(ctx, sessionID)
}

// RevokeByToken decodes a refresh token and revokes its session. Decode
// failures are swallowed so a user can always clear local session state.
func (a *Authority) RevokeByToken(ctx context.Context, refreshToken string) {
	claims, err := a.codec.VerifyRefresh(refreshToken)
	if err != nil {
		return
	}
	_ = a.Revoke(ctx, claims.SessionID())
}
