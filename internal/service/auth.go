package service

import (
	"context"
	"errors"
	"strings"

	"github.com/geocoder89/taskhub/internal/apperr"
	"github.com/geocoder89/taskhub/internal/auth"
	"github.com/geocoder89/taskhub/internal/domain/user"
	"github.com/geocoder89/taskhub/internal/security"
)

const (
	minPasswordLen = 6
	// bcrypt rejects input longer than 72 bytes
	maxPasswordLen = 72
)

var (
	errInvalidCredentials = apperr.Auth("invalid_credentials", "Invalid credentials")
	errUnauthorized       = apperr.Auth("unauthorized", "Missing or invalid token")
)

// TokenManager is the part of auth.Manager the service needs.
type TokenManager interface {
	GenerateAccessToken(userID, email string) (string, error)
	VerifyAccessToken(token string) (*auth.Claims, error)
}

// FailureRecorder counts rejected credentials; observability.Prom satisfies it.
type FailureRecorder interface {
	AuthFailed(reason string)
}

type nopRecorder struct{}

func (nopRecorder) AuthFailed(string) {}

type AuthService struct {
	users    user.Store
	tokens   TokenManager
	failures FailureRecorder
}

func NewAuthService(users user.Store, tokens TokenManager, failures FailureRecorder) *AuthService {
	if failures == nil {
		failures = nopRecorder{}
	}
	return &AuthService{users: users, tokens: tokens, failures: failures}
}

// Register creates a user with a bcrypt-hashed password. The returned
// profile never carries the password or its hash.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (user.Profile, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" || email == "" || password == "" {
		return user.Profile{}, apperr.Validation("missing_fields", "Name, email and password are required")
	}

	if !validEmail(email) {
		return user.Profile{}, apperr.Validation("invalid_email", "Email is not valid")
	}

	if len(password) < minPasswordLen {
		return user.Profile{}, apperr.Validation("password_too_short", "Password must be at least 6 characters")
	}

	if len(password) > maxPasswordLen {
		return user.Profile{}, apperr.Validation("password_too_long", "Password must be at most 72 bytes")
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return user.Profile{}, apperr.Internal("Could not create user", err)
	}

	u, err := s.users.Create(ctx, name, email, hash)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.Profile{}, apperr.Conflict("email_taken", "Email is already in use.")
		}
		return user.Profile{}, apperr.Internal("Could not create user", err)
	}

	return u.Profile(), nil
}

// Login returns a session token. An unknown email and a wrong password
// produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)

	if email == "" || password == "" {
		return "", apperr.Validation("missing_fields", "Email and password are required")
	}

	found, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			return "", internal(err)
		}
		security.BurnCompare(password)
		s.failures.AuthFailed("invalid_credentials")
		return "", errInvalidCredentials
	}

	if err := security.CheckPassword(found.PasswordHash, password); err != nil {
		if !security.IsMismatch(err) {
			return "", internal(err)
		}
		s.failures.AuthFailed("invalid_credentials")
		return "", errInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(found.ID, found.Email)
	if err != nil {
		return "", apperr.Internal("Could not generate access token", err)
	}

	return token, nil
}

// VerifyToken yields the user id asserted by a valid, unexpired token.
// Every failure, including an empty token, returns the same error.
func (s *AuthService) VerifyToken(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		s.failures.AuthFailed("missing_token")
		return "", errUnauthorized
	}

	claims, err := s.tokens.VerifyAccessToken(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			s.failures.AuthFailed("expired_token")
		} else {
			s.failures.AuthFailed("invalid_token")
		}
		return "", errUnauthorized
	}

	return claims.UserID, nil
}
