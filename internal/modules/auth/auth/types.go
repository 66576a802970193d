package auth

type HelloDTO struct {
	Name *string `json:"name"`
}

type LoginDTO struct {
	Email string `json:"email" binding:"required,email"`
	Pass  string `json:"pass"  binding:"required"`
}

type RegisterDTO struct {
	Email         string  `json:"email"         binding:"required,email"`
	Pass          *string `json:"pass"          binding:"omitempty,min=6"`
	OAuthProvider *string `json:"oauthProvider"`
}

// RefreshDTO carries the refresh token in header delivery mode; in cookie
// mode the token arrives in the refreshToken cookie instead.
type RefreshDTO struct {
	RefreshToken string `json:"refreshToken"`
}

type LogoutDTO struct {
	RefreshToken string `json:"refreshToken"`
}
