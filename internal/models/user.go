package models

// UserModel represents a learner account.
// Password-based accounts carry a bcrypt hash; OAuth accounts carry the
// provider name instead. At least one of the two is always present.
type UserModel struct {
	Base
	Email         string  `json:"email"          gorm:"uniqueIndex;not null"`
	PasswordHash  *string `json:"-"              gorm:"type:text"`
	OAuthProvider *string `json:"oauth_provider"`
}

func (UserModel) TableName() string { return "users" }
