package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/strettonotes/strettonotes/internal/domain/user"
)

// Keep these interfaces small so tests can fake them easily.
type TokenVerifier interface {
	VerifyAccessToken(token string) (subject string, err error)
}

type IdentityReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type AuthMiddleware struct {
	jwt   TokenVerifier
	users IdentityReader
}

func NewAuthMiddleware(jwt TokenVerifier, users IdentityReader) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, users: users}
}

// RequireAuth verifies the bearer token, resolves its subject to a hash-free
// user and attaches that identity to the request context. Every failure kind
// (missing header, bad signature, expiry, vanished user) produces the same
// generic response; the concrete cause is only logged.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthenticated(c)
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if raw == "" {
			abortUnauthenticated(c)
			return
		}

		subject, err := m.jwt.VerifyAccessToken(raw)
		if err != nil {
			slog.Default().DebugContext(c.Request.Context(), "token rejected", "cause", err)
			abortUnauthenticated(c)
			return
		}

		// re-resolve on every request so tokens for deleted accounts fail
		identity, err := m.users.GetByEmail(c.Request.Context(), subject)
		if err != nil {
			if !errors.Is(err, user.ErrNotFound) {
				slog.Default().ErrorContext(c.Request.Context(), "identity lookup failed", "err", err)
			}
			abortUnauthenticated(c)
			return
		}

		c.Set(string(CtxIdentity), identity)

		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "unauthenticated",
			"message": "Could not validate credentials",
		},
	})
}

// IdentityFromContext is the only way handlers receive the caller's identity.
func IdentityFromContext(c *gin.Context) (user.User, bool) {
	v, ok := c.Get(string(CtxIdentity))
	if !ok {
		return user.User{}, false
	}
	u, ok := v.(user.User)
	return u, ok
}
