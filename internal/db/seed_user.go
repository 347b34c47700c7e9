package db

import (
	"context"
	"errors"
	"strings"

	"github.com/geocoder89/taskhub/internal/config"
	"github.com/geocoder89/taskhub/internal/domain/user"
	"github.com/geocoder89/taskhub/internal/security"
)

// EnsureSeedUser creates the configured demo account if it does not exist yet.
func EnsureSeedUser(ctx context.Context, users user.Store, cfg config.Config) error {
	if cfg.SeedUserEmail == "" || cfg.SeedUserPassword == "" {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.SeedUserEmail))

	// check if the user exists
	_, err := users.GetByEmail(ctx, email)

	if err == nil {
		return nil
	}

	if !errors.Is(err, user.ErrNotFound) {
		return err
	}

	hash, err := security.HashPassword(cfg.SeedUserPassword)

	if err != nil {
		return err
	}

	_, err = users.Create(ctx, cfg.SeedUserName, email, hash)

	// a concurrent start may have won the insert
	if errors.Is(err, user.ErrEmailTaken) {
		return nil
	}
	return err
}
