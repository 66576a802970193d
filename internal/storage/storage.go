package storage

import (
	"context"
	"errors"

	"github.com/lingrid/core/internal/models"
)

var (
	// ErrNotFound is returned when the requested account does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when an account with the same email already exists.
	ErrDuplicateEmail = errors.New("email already taken")
)

// UserStore abstracts the account datastore so services can be tested
// against a fake and the MySQL implementation stays swappable.
type UserStore interface {
	ByEmail(ctx context.Context, email string) (*models.UserModel, error)
	ByID(ctx context.Context, id string) (*models.UserModel, error)
	// Search returns accounts whose email contains the given substring,
	// newest first, plus the total match count for pagination.
	Search(ctx context.Context, email string, offset, limit int) ([]models.UserModel, int64, error)
	Create(ctx context.Context, u *models.UserModel) error
	// DeleteByEmail removes the account and returns the deleted record.
	DeleteByEmail(ctx context.Context, email string) (*models.UserModel, error)
}
