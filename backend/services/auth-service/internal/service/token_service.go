package service

import (
	"time"

	libauth "sitecms/backend/libs/auth"
)

// TokenService handles JWT creation and validation.
type TokenService struct {
	secret    []byte
	expiresIn time.Duration
	now       func() time.Time
}

// NewTokenService returns configured token service.
func NewTokenService(secret string, expiresIn time.Duration) *TokenService {
	if expiresIn <= 0 {
		expiresIn = time.Hour
	}
	return &TokenService{secret: []byte(secret), expiresIn: expiresIn, now: time.Now}
}

// GenerateToken issues JWT for given user.
func (t *TokenService) GenerateToken(userID int64, role libauth.Role) (string, error) {
	return libauth.Sign(t.secret, userID, role, t.expiresIn, t.now().UTC())
}

// ValidateToken verifies and decodes JWT.
func (t *TokenService) ValidateToken(tokenString string) (*libauth.Claims, error) {
	return libauth.Parse(t.secret, tokenString)
}

// ExpiresIn is the lifetime of issued tokens.
func (t *TokenService) ExpiresIn() time.Duration {
	return t.expiresIn
}
