package user

import (
	"context"
	"errors"

	"github.com/lingrid/core/internal/models"
	"github.com/lingrid/core/internal/pkg/pagination"
	"github.com/lingrid/core/internal/pkg/response"
	"github.com/lingrid/core/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

type Service struct{ users storage.UserStore }

func NewService(users storage.UserStore) *Service { return &Service{users: users} }

// CreateAccount creates a password or OAuth account. Used by both the
// public register flow and the protected addUser procedure.
func (s *Service) CreateAccount(ctx context.Context, email string, pass, oauthProvider *string) (*models.UserModel, error) {
	hasPass := pass != nil && *pass != ""
	hasProvider := oauthProvider != nil && *oauthProvider != ""
	if !hasPass && !hasProvider {
		return nil, ErrMissingCredential
	}

	if _, err := s.users.ByEmail(ctx, email); err == nil {
		return nil, storage.ErrDuplicateEmail
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	u := &models.UserModel{Email: email}
	if hasPass {
		hash, err := bcrypt.GenerateFromPassword([]byte(*pass), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		u.PasswordHash = &hashed
	}
	if hasProvider {
		u.OAuthProvider = oauthProvider
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Search returns accounts whose email contains the given substring.
func (s *Service) Search(ctx context.Context, email string, q pagination.Query) ([]models.UserModel, response.Pagination, error) {
	users, total, err := s.users.Search(ctx, email, q.Offset(), q.Size)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return users, q.Meta(total), nil
}

// Delete removes an account by email and returns the deleted record.
func (s *Service) Delete(ctx context.Context, email string) (*models.UserModel, error) {
	return s.users.DeleteByEmail(ctx, email)
}

// VerifyCredentials checks a plaintext password against the stored hash.
// Accounts without a password hash (OAuth-only) never match.
func (s *Service) VerifyCredentials(ctx context.Context, email, pass string) (*models.UserModel, error) {
	u, err := s.users.ByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u.PasswordHash == nil {
		return nil, ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(pass)); err != nil {
		return nil, ErrWrongPassword
	}
	return u, nil
}

// CheckPass reports whether the password matches. A missing account or an
// OAuth-only account yields false rather than an error.
func (s *Service) CheckPass(ctx context.Context, email, pass string) (bool, error) {
	_, err := s.VerifyCredentials(ctx, email, pass)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, ErrWrongPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
