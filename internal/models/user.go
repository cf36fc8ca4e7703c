package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account in the user directory. Signup, login and
// profile management live in a separate service; this module only reads
// users when validating sharing targets and rendering views.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:text;primaryKey;column:id"`
	Email     string    `json:"email" gorm:"type:text;not null;uniqueIndex;column:email" validate:"required,email"`
	Nickname  string    `json:"nickname" gorm:"type:text;not null;column:nickname" validate:"required"`
	CreatedAt time.Time `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:updated_at"`
}

// NewUser creates a new User with generated UUID and timestamps
func NewUser(email, nickname string) *User {
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Email:     email,
		Nickname:  nickname,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
