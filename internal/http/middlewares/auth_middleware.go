package middlewares

import (
	"strings"

	"github.com/geocoder89/taskhub/internal/actorctx"
	"github.com/geocoder89/taskhub/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

// TokenVerifier resolves a bearer token to the user id it was issued for.
// service.AuthService satisfies it.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// ProtectedHandler is a handler that runs only for a verified caller.
type ProtectedHandler func(c *gin.Context, userID string)

type AuthGuard struct {
	verifier TokenVerifier
}

func NewAuthGuard(verifier TokenVerifier) *AuthGuard {
	return &AuthGuard{verifier: verifier}
}

// Protect wraps next so it only runs with a valid bearer token. A missing
// header, a malformed header and a bad token all get the same 401.
func (g *AuthGuard) Protect(next ProtectedHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := g.verifier.VerifyToken(bearerToken(c.GetHeader("Authorization")))
		if err != nil {
			handlers.RespondAppError(c, err)
			return
		}

		c.Request = c.Request.WithContext(actorctx.WithUserID(c.Request.Context(), userID))

		next(c, userID)
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
