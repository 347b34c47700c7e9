package service

import (
	"context"
	"errors"
	"strings"

	"github.com/geocoder89/taskhub/internal/apperr"
	"github.com/geocoder89/taskhub/internal/domain/user"
)

type ProfileService struct {
	users user.Store
}

func NewProfileService(users user.Store) *ProfileService {
	return &ProfileService{users: users}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (user.Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.Profile{}, s.mapErr(err)
	}
	return u.Profile(), nil
}

// UpdateProfile changes only the provided fields. Password changes are not
// handled here.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, name, email *string) (user.Profile, error) {
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return user.Profile{}, apperr.Validation("name_required", "Name cannot be empty")
		}
		name = &n
	}

	if email != nil {
		e := normalizeEmail(*email)
		if !validEmail(e) {
			return user.Profile{}, apperr.Validation("invalid_email", "Email is not valid")
		}
		email = &e
	}

	if name == nil && email == nil {
		return s.GetProfile(ctx, userID)
	}

	u, err := s.users.UpdateProfile(ctx, userID, name, email)
	if err != nil {
		return user.Profile{}, s.mapErr(err)
	}
	return u.Profile(), nil
}

func (s *ProfileService) mapErr(err error) error {
	switch {
	case errors.Is(err, user.ErrNotFound):
		return apperr.NotFound("user_not_found", "User not found")
	case errors.Is(err, user.ErrEmailTaken):
		return apperr.Conflict("email_taken", "Email is already in use.")
	}
	return internal(err)
}
