package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lingrid/core/internal/modules/auth/authority"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyEmail  = "user_email"

	// Cookie names used in cookie delivery mode.
	CookieAccessToken  = "accessToken"
	CookieRefreshToken = "refreshToken"
)

// ExtractAccessToken reads the access token from the accessToken cookie or,
// failing that, the Authorization header. Both transport forms are supported
// regardless of the configured delivery mode.
func ExtractAccessToken(c *gin.Context) string {
	if raw, err := c.Cookie(CookieAccessToken); err == nil {
		if token := NormalizeToken(raw); token != "" {
			return token
		}
	}
	return NormalizeToken(c.GetHeader("Authorization"))
}

// ExtractRefreshToken reads the refresh token from the refreshToken cookie.
// In header delivery mode the client sends it in the request body instead.
func ExtractRefreshToken(c *gin.Context) string {
	raw, err := c.Cookie(CookieRefreshToken)
	if err != nil {
		return ""
	}
	return NormalizeToken(raw)
}

// SetIdentity attaches the authenticated identity to the request context.
func SetIdentity(c *gin.Context, id authority.Identity) {
	c.Set(ContextKeyUserID, id.UserID)
	c.Set(ContextKeyEmail, id.Email)
}

// CurrentIdentity extracts the authenticated identity from context.
func CurrentIdentity(c *gin.Context) authority.Identity {
	uid, _ := c.Get(ContextKeyUserID)
	email, _ := c.Get(ContextKeyEmail)
	id := authority.Identity{}
	id.UserID, _ = uid.(string)
	id.Email, _ = email.(string)
	return id
}

// IsAuthenticated returns true if the request has a validated identity.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentIdentity(c).UserID != ""
}

// NormalizeToken trims spaces and strips an optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
