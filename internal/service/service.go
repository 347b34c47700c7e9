// Package service holds the auth, task and profile operations. Each method
// reports failures as *apperr.Error so the HTTP layer can map them without
// knowing about stores.
package service

import (
	"strings"

	"github.com/geocoder89/taskhub/internal/apperr"
	"github.com/go-playground/validator/v10"
)

const msgServerError = "Server error"

var validate = validator.New()

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	return validate.Var(email, "required,email,max=254") == nil
}

func internal(err error) error {
	return apperr.Internal(msgServerError, err)
}
