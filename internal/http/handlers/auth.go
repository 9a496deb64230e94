package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/strettonotes/strettonotes/internal/auth"
	"github.com/strettonotes/strettonotes/internal/config"
	"github.com/strettonotes/strettonotes/internal/domain/user"
	"github.com/strettonotes/strettonotes/internal/http/middlewares"
	"github.com/strettonotes/strettonotes/internal/observability"
	"github.com/strettonotes/strettonotes/internal/repo/postgres"
)

// CredentialReader is the only consumer of the with-hash user projection.
type CredentialReader interface {
	GetCredentialByEmail(ctx context.Context, email string) (user.Credential, error)
}

type UserWriter interface {
	Create(ctx context.Context, email, passwordHash, fullName string) (user.User, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Check(hash, plain string) bool
}

type AuthHandler struct {
	credentials CredentialReader
	userWriter  UserWriter
	hasher      PasswordHasher
	jwt         *auth.Manager
	metrics     *observability.Prom
}

func NewAuthHandler(credentials CredentialReader, userWriter UserWriter, hasher PasswordHasher, jwtManager *auth.Manager, metrics *observability.Prom) *AuthHandler {
	return &AuthHandler{
		credentials: credentials,
		userWriter:  userWriter,
		hasher:      hasher,
		jwt:         jwtManager,
		metrics:     metrics,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"omitempty,max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	hash, err := h.hasher.Hash(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	u, err := h.userWriter.Create(cctx, normalizeEmail(req.Email), hash, req.FullName)

	if err != nil {
		if errors.Is(err, postgres.ErrEmailAlreadyUsed) {
			// safe to reveal: it is the caller's own registration attempt
			RespondBadRequest(ctx, "Email is already registered.", gin.H{"code": "email_taken"})
			return
		}

		slog.Default().ErrorContext(ctx.Request.Context(), "registration failed", "err", err)
		RespondInternal(ctx, "Could not create user")
		return
	}

	ctx.JSON(http.StatusCreated, u)
}

// Login exchanges credentials for a bearer token. A missing account and a
// wrong password produce byte-identical responses.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	cred, err := h.credentials.GetCredentialByEmail(cctx, normalizeEmail(req.Email))

	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			slog.Default().ErrorContext(ctx.Request.Context(), "credential lookup failed", "err", err)
			RespondInternal(ctx, "Could not log in")
			return
		}

		h.rejectLogin(ctx)
		return
	}

	if !h.hasher.Check(cred.PasswordHash, req.Password) {
		h.rejectLogin(ctx)
		return
	}

	accessToken, err := h.jwt.IssueAccessToken(cred.Email, h.jwt.AccessTTL())

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	h.countLogin("ok")

	ctx.JSON(http.StatusOK, TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthenticated", "Could not validate credentials")
		return
	}

	ctx.JSON(http.StatusOK, identity)
}

func (h *AuthHandler) rejectLogin(ctx *gin.Context) {
	h.countLogin("rejected")
	RespondUnAuthorized(ctx, "invalid_credentials", "Incorrect email or password")
}

func (h *AuthHandler) countLogin(result string) {
	if h.metrics != nil {
		h.metrics.LoginsTotal.WithLabelValues(result).Inc()
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
