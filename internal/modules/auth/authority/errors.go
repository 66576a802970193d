package authority

import "errors"

// Cause is a machine-readable failure code surfaced to clients alongside
// the human-readable message. Clients branch on the cause, not the message.
type Cause string

const (
	CauseNoToken             Cause = "NO_TOKEN"
	CauseInvalidClaims       Cause = "INVALID_CLAIMS"
	CauseTokenExpired        Cause = "TOKEN_EXPIRED"
	CauseInvalidRefreshToken Cause = "INVALID_REFRESH_TOKEN"
	CauseSessionNotFound     Cause = "SESSION_NOT_FOUND"
	CauseRefreshTokenExpired Cause = "REFRESH_TOKEN_EXPIRED"
)

// Error is an authentication failure. Every Error maps to an
// Unauthenticated response at the RPC boundary.
type Error struct {
	Cause   Cause
	Message string
}

func (e *Error) Error() string { return e.Message }

func unauthenticated(cause Cause, message string) *Error {
	return &Error{Cause: cause, Message: message}
}

// CauseOf extracts the cause code from an error chain, or "" if the error
// is not an authority failure.
func CauseOf(err error) Cause {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Cause
	}
	return ""
}
