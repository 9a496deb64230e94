package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/strettonotes/strettonotes/internal/config"
	"github.com/strettonotes/strettonotes/internal/domain/session"
)

type SessionsStore interface {
	Create(ctx context.Context, ownerID string, req session.CreateRequest) (session.Session, error)
	List(ctx context.Context, ownerID string, filter session.ListFilter) ([]session.Session, error)
	GetByID(ctx context.Context, ownerID, id string) (session.Session, error)
	Update(ctx context.Context, ownerID, id string, req session.UpdateRequest) (session.Session, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type SessionsHandler struct {
	repo SessionsStore
}

func NewSessionsHandler(repo SessionsStore) *SessionsHandler {
	return &SessionsHandler{repo: repo}
}

func (h *SessionsHandler) Create(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	var req session.CreateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	s, err := h.repo.Create(cctx, identity.ID, req)

	if err != nil {
		RespondInternal(ctx, "Could not create session")
		return
	}

	ctx.JSON(http.StatusCreated, s)
}

func (h *SessionsHandler) List(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	skip, limit := pagination(ctx)

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	sessions, err := h.repo.List(cctx, identity.ID, session.ListFilter{Skip: skip, Limit: limit})

	if err != nil {
		RespondInternal(ctx, "Could not list sessions")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": sessions,
		"count": len(sessions),
	})
}

func (h *SessionsHandler) GetByID(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	id, ok := pathID(ctx, "session")
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	s, err := h.repo.GetByID(cctx, identity.ID, id)

	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			RespondNotFound(ctx, "Session not found")
			return
		}

		RespondInternal(ctx, "Could not fetch session")
		return
	}

	ctx.JSON(http.StatusOK, s)
}

func (h *SessionsHandler) Update(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	id, ok := pathID(ctx, "session")
	if !ok {
		return
	}

	var req session.UpdateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	s, err := h.repo.Update(cctx, identity.ID, id, req)

	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			RespondNotFound(ctx, "Session not found")
			return
		}

		RespondInternal(ctx, "Could not update session")
		return
	}

	ctx.JSON(http.StatusOK, s)
}

func (h *SessionsHandler) Delete(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	id, ok := pathID(ctx, "session")
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, identity.ID, id)

	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			RespondNotFound(ctx, "Session not found")
			return
		}

		RespondInternal(ctx, "Could not delete session")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Session deleted successfully"})
}
