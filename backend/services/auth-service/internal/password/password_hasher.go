package password

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// MinLength is the shortest password accepted at signup.
const MinLength = 8

// bcrypt ignores input past 72 bytes.
const maxBytes = 72

// ErrWeakPassword is returned by Validate.
var ErrWeakPassword = errors.New("password: too weak")

// Hasher defines password hashing contract.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// Validate enforces the length policy.
func Validate(password string) error {
	if utf8.RuneCountInString(password) < MinLength {
		return fmt.Errorf("%w: at least %d characters required", ErrWeakPassword, MinLength)
	}
	if len(password) > maxBytes {
		return fmt.Errorf("%w: longer than %d bytes", ErrWeakPassword, maxBytes)
	}
	return nil
}

// BcryptHasher implements Hasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt-backed password hasher.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash converts plain password into hash.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password: empty password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare checks if provided password matches stored hash.
func (h *BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
