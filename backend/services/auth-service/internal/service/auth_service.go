package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	libauth "sitecms/backend/libs/auth"
	"sitecms/backend/services/auth-service/internal/models"
	"sitecms/backend/services/auth-service/internal/password"
	"sitecms/backend/services/auth-service/internal/repository"
)

var (
	// ErrEmailInUse is returned when attempting to register duplicate email.
	ErrEmailInUse = errors.New("auth: email already registered")
	// ErrInvalidCredentials represents login failure.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrInvalidEmail rejects malformed addresses at signup.
	ErrInvalidEmail = errors.New("auth: invalid email")
	// ErrOwnRole stops admins from changing their own role.
	ErrOwnRole = errors.New("auth: cannot change own role")
)

// UserRepository defines storage contract used by the service.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateRole(ctx context.Context, id int64, role libauth.Role) error
}

// AuthService contains registration/login logic.
type AuthService struct {
	repo        UserRepository
	hasher      password.Hasher
	tokenizer   *TokenService
	adminEmails map[string]struct{}
	logger      *zap.Logger
}

// NewAuthService builds AuthService. Accounts registered with one of adminEmails start as admin,
// everyone else starts as viewer.
func NewAuthService(repo UserRepository, hasher password.Hasher, tokenizer *TokenService, adminEmails []string, logger *zap.Logger) *AuthService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		if email = normalizeEmail(email); email != "" {
			admins[email] = struct{}{}
		}
	}
	return &AuthService{
		repo:        repo,
		hasher:      hasher,
		tokenizer:   tokenizer,
		adminEmails: admins,
		logger:      logger,
	}
}

// Signup registers a new user.
func (s *AuthService) Signup(ctx context.Context, email, plain string) (*models.User, error) {
	email = normalizeEmail(email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	if err := password.Validate(plain); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return nil, err
	}

	role := libauth.RoleViewer
	if _, ok := s.adminEmails[email]; ok {
		role = libauth.RoleAdmin
	}
	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}

	s.logger.Info("user signed up", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// Login authenticates a user and produces a JWT.
func (s *AuthService) Login(ctx context.Context, email, plain string) (string, *models.User, error) {
	email = normalizeEmail(email)
	if email == "" || plain == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, plain); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokenizer.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// User returns the account behind id.
func (s *AuthService) User(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// SetRole changes the role of target on behalf of actor.
func (s *AuthService) SetRole(ctx context.Context, actorID, targetID int64, role string) (*models.User, error) {
	parsed, err := libauth.ParseRole(role)
	if err != nil {
		return nil, err
	}
	if actorID == targetID {
		return nil, ErrOwnRole
	}
	if err := s.repo.UpdateRole(ctx, targetID, parsed); err != nil {
		return nil, err
	}
	s.logger.Info("user role changed",
		zap.Int64("actor_id", actorID),
		zap.Int64("user_id", targetID),
		zap.String("role", string(parsed)),
	)
	return s.repo.GetByID(ctx, targetID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
