package utils

import (
	"strings"

	"github.com/google/uuid"
)

// IsUUID reports whether s is a canonical UUID string.
func IsUUID(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// EscapeLike escapes the LIKE/ILIKE wildcards in s so it matches literally
// with ESCAPE '\'.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
