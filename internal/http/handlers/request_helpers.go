package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/strettonotes/strettonotes/internal/domain/user"
	"github.com/strettonotes/strettonotes/internal/http/middlewares"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 500
)

func currentIdentity(ctx *gin.Context) (user.User, bool) {
	identity, ok := middlewares.IdentityFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthenticated", "Could not validate credentials")
		return user.User{}, false
	}

	return identity, true
}

// pathID rejects ids that cannot possibly address a record before any store
// query runs.
func pathID(ctx *gin.Context, label string) (string, bool) {
	id := ctx.Param("id")

	if uuid.Validate(id) != nil {
		RespondBadRequest(ctx, label+" id must be a valid UUID", gin.H{"code": "invalid_id"})
		return "", false
	}

	return id, true
}

func pagination(ctx *gin.Context) (skip, limit int) {
	skip = queryInt(ctx, "skip", 0)
	limit = queryInt(ctx, "limit", defaultPageLimit)

	if skip < 0 {
		skip = 0
	}

	if limit <= 0 {
		limit = defaultPageLimit
	}

	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return skip, limit
}

func queryInt(ctx *gin.Context, key string, fallback int) int {
	v := ctx.Query(key)

	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)

	if err != nil {
		return fallback
	}

	return n
}
