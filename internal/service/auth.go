// Package service contains the business logic for the Trip Journal API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here; services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/tripjournal/tripjournal-go/internal/domain"
	"github.com/tripjournal/tripjournal-go/internal/repo"
)

// AuthService registers users and exchanges credentials for bearer tokens.
type AuthService struct {
	users  repo.UserRepo
	secret []byte
	ttl    time.Duration
}

// NewAuthService constructs an AuthService. secret signs the issued HS256
// tokens and ttl bounds their lifetime.
func NewAuthService(users repo.UserRepo, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), ttl: ttl}
}

// Register creates a new account and returns a bearer token for it, so a
// fresh user is signed in immediately.
// Returns domain.ErrValidation for an unusable username or password and
// domain.ErrConflict if the username is taken.
func (s *AuthService) Register(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if len(password) < 8 {
		return "", fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("service.AuthService.Register: hash password: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{Username: username, PasswordHash: string(hash)})
	if err != nil {
		return "", fmt.Errorf("service.AuthService.Register: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", fmt.Errorf("service.AuthService.Register: %w", err)
	}
	return token, nil
}

// Login verifies the credentials and returns a bearer token.
// Returns domain.ErrUnauthorized when the username is unknown or the
// password does not match; callers cannot tell the two apart.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("service.AuthService.Login: %w", domain.ErrUnauthorized)
		}
		return "", fmt.Errorf("service.AuthService.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("service.AuthService.Login: %w", domain.ErrUnauthorized)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return token, nil
}

// issueToken signs an HS256 JWT whose subject is the user's numeric ID.
func (s *AuthService) issueToken(user domain.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(user.ID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
