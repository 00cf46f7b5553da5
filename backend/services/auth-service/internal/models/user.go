package models

import (
	"time"

	libauth "sitecms/backend/libs/auth"
)

// User is an account allowed into the admin surface.
type User struct {
	ID           int64        `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         libauth.Role `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
}
