package user

import (
	"errors"
	"time"

	"github.com/lingrid/core/internal/models"
)

type SearchDTO struct {
	Email string `json:"email"`
	Page  int    `json:"page"`
	Size  int    `json:"size"`
}

type AddUserDTO struct {
	Email         string  `json:"email"         binding:"required,email"`
	Pass          *string `json:"pass"          binding:"omitempty,min=6"`
	OAuthProvider *string `json:"oauthProvider"`
}

type DeleteUserDTO struct {
	Email string `json:"email" binding:"required,email"`
}

type CheckPassDTO struct {
	Email string `json:"email" binding:"required,email"`
	Pass  string `json:"pass"  binding:"required"`
}

// View is the account record returned to clients. The password hash never
// leaves the server.
type View struct {
	UID           string    `json:"uid"`
	Email         string    `json:"email"`
	OAuthProvider *string   `json:"oauth_provider,omitempty"`
	Created       time.Time `json:"created"`
}

func toView(u *models.UserModel) View {
	return View{
		UID:           u.ID,
		Email:         u.Email,
		OAuthProvider: u.OAuthProvider,
		Created:       u.CreatedAt,
	}
}

func toViews(users []models.UserModel) []View {
	views := make([]View, len(users))
	for i := range users {
		views[i] = toView(&users[i])
	}
	return views
}

var (
	// ErrMissingCredential is returned when an account is created with
	// neither a password nor an OAuth provider.
	ErrMissingCredential = errors.New("either pass or oauthProvider is required")
	// ErrWrongPassword is returned when a password does not match the stored hash.
	ErrWrongPassword = errors.New("wrong password")
)
