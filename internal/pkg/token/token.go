package token

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token kinds carried in the token_type claim.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Default lifetimes: short-lived access tokens, long-lived refresh tokens.
const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 30 * 24 * time.Hour
)

var (
	// ErrInvalid covers bad signature, bad format, and wrong token kind.
	ErrInvalid = errors.New("invalid token")
	// ErrExpired is returned for structurally valid but expired tokens.
	ErrExpired = errors.New("token expired")
)

// Claims is the JWT payload for both token kinds. Refresh tokens
// additionally carry a unique jti in RegisteredClaims.ID.
type Claims struct {
	UserID    string `json:"uid"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwtlib.RegisteredClaims
}

// SessionID returns the jti embedded in refresh tokens.
func (c *Claims) SessionID() string { return c.ID }

// Config configures the codec. Access and refresh tokens are signed with
// separate secrets so a leaked access secret cannot mint refresh tokens.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Codec signs and verifies access/refresh token pairs (HS256).
type Codec struct {
	cfg Config
}

// NewCodec validates the config and applies default TTLs.
func NewCodec(cfg Config) (*Codec, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("token: access and refresh secrets are required")
	}
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	return &Codec{cfg: cfg}, nil
}

// AccessTTL reports the configured access token lifetime.
func (c *Codec) AccessTTL() time.Duration { return c.cfg.AccessTTL }

// RefreshTTL reports the configured refresh token lifetime.
func (c *Codec) RefreshTTL() time.Duration { return c.cfg.RefreshTTL }

// SignAccess creates a signed access token for the given identity.
func (c *Codec) SignAccess(userID, email string) (string, error) {
	return c.sign(userID, email, TypeAccess, "", c.cfg.AccessTTL, c.cfg.AccessSecret)
}

// SignRefresh creates a signed refresh token with a fresh jti and returns both.
func (c *Codec) SignRefresh(userID, email string) (string, string, error) {
	jti := uuid.New().String()
	signed, err := c.sign(userID, email, TypeRefresh, jti, c.cfg.RefreshTTL, c.cfg.RefreshSecret)
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// VerifyAccess validates an access token and returns its claims.
func (c *Codec) VerifyAccess(tokenStr string) (*Claims, error) {
	return c.verify(tokenStr, TypeAccess, c.cfg.AccessSecret)
}

// VerifyRefresh validates a refresh token and returns its claims.
// A refresh token without a jti is rejected.
func (c *Codec) VerifyRefresh(tokenStr string) (*Claims, error) {
	claims, err := c.verify(tokenStr, TypeRefresh, c.cfg.RefreshSecret)
	if err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, ErrInvalid
	}
	return claims, nil
}

func (c *Codec) sign(userID, email, kind, jti string, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Email:     email,
		TokenType: kind,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (c *Codec) verify(tokenStr, kind, secret string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{},
		func(t *jwtlib.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuedAt(),
	)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalid
	}
	if claims.TokenType != kind {
		return nil, ErrInvalid
	}
	return claims, nil
}
