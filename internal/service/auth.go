// Package service provides the business logic for authentication, song
// merging and related operations, delegating persistence to repositories.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"chordbook/internal/apperr"
	"chordbook/internal/models"
)

// UserRepository defines the persistence operations required by the
// authentication service.
type UserRepository interface {
	// Create inserts a new user record. Returns apperr.ErrConflict if the
	// username is already taken.
	Create(ctx context.Context, user models.User) error
	// GetByUsername returns the user with the given username, or
	// apperr.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// TokenIssuer creates identity tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthService implements registration and login.
type AuthService struct {
	users  UserRepository
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService using the provided repository
// and token issuer.
func NewAuthService(users UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a new account. The raw password is bcrypt-hashed and
// never stored. Returns apperr.ErrValidation if either field is empty and
// apperr.ErrConflict if the username is taken — the username's unique
// constraint, not a prior existence check, is the authority, so concurrent
// registrations of the same name cannot both succeed.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", apperr.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies the credentials and returns a signed identity token.
// An unknown username and a wrong password both return
// apperr.ErrUnauthenticated, so the response does not reveal which part
// was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("bad username or password: %w", apperr.ErrUnauthenticated)
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", fmt.Errorf("bad username or password: %w", apperr.ErrUnauthenticated)
	}

	accessToken, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return accessToken, nil
}
