package auth

import (
	"context"

	"github.com/lingrid/core/internal/modules/auth/authority"
	usermod "github.com/lingrid/core/internal/modules/user"
)

// Service glues the credential and registration flows around the session
// authority. Password hashing and account storage are delegated to the
// user module.
type Service struct {
	users *usermod.Service
	auth  *authority.Authority
}

func NewService(users *usermod.Service, auth *authority.Authority) *Service {
	return &Service{users: users, auth: auth}
}

// Login verifies credentials and issues a fresh session.
// Returns storage.ErrNotFound when the account does not exist and
// user.ErrWrongPassword on a mismatch, so callers can distinguish the two.
func (s *Service) Login(ctx context.Context, email, pass string) (authority.Identity, authority.Pair, error) {
	u, err := s.users.VerifyCredentials(ctx, email, pass)
	if err != nil {
		return authority.Identity{}, authority.Pair{}, err
	}
	pair, err := s.auth.Issue(ctx, u.ID, u.Email)
	if err != nil {
		return authority.Identity{}, authority.Pair{}, err
	}
	return authority.Identity{UserID: u.ID, Email: u.Email}, pair, nil
}

// Register creates an account and issues its first session.
func (s *Service) Register(ctx context.Context, email string, pass, oauthProvider *string) (authority.Identity, authority.Pair, error) {
	u, err := s.users.CreateAccount(ctx, email, pass, oauthProvider)
	if err != nil {
		return authority.Identity{}, authority.Pair{}, err
	}
	pair, err := s.auth.Issue(ctx, u.ID, u.Email)
	if err != nil {
		return authority.Identity{}, authority.Pair{}, err
	}
	return authority.Identity{UserID: u.ID, Email: u.Email}, pair, nil
}

// Refresh rotates a refresh token into a brand-new session.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (authority.Identity, authority.Pair, error) {
	return s.auth.Rotate(ctx, refreshToken)
}

// Logout revokes the session behind the refresh token. It never fails:
// a user must always be able to clear local session state.
func (s *Service) Logout(ctx context.Context, refreshToken string) {
	s.auth.RevokeByToken(ctx, refreshToken)
}
