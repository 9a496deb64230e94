package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/strettonotes/strettonotes/internal/config"
	"github.com/strettonotes/strettonotes/internal/domain/journey"
)

type JourneysStore interface {
	Create(ctx context.Context, ownerID string, req journey.CreateRequest) (journey.Journey, error)
	List(ctx context.Context, ownerID string, filter journey.ListFilter) ([]journey.Journey, error)
	GetByID(ctx context.Context, ownerID, id string) (journey.Journey, error)
	Update(ctx context.Context, ownerID, id string, req journey.UpdateRequest) (journey.Journey, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type JourneysHandler struct {
	repo JourneysStore
}

func NewJourneysHandler(repo JourneysStore) *JourneysHandler {
	return &JourneysHandler{repo: repo}
}

func (h *JourneysHandler) Create(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	var req journey.CreateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	j, err := h.repo.Create(cctx, identity.ID, req)

	if err != nil {
		RespondInternal(ctx, "Could not create journey")
		return
	}

	ctx.JSON(http.StatusCreated, j)
}

func (h *JourneysHandler) List(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	skip, limit := pagination(ctx)

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	journeys, err := h.repo.List(cctx, identity.ID, journey.ListFilter{Skip: skip, Limit: limit})

	if err != nil {
		RespondInternal(ctx, "Could not list journeys")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": journeys,
		"count": len(journeys),
	})
}

func (h *JourneysHandler) GetByID(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	id, ok := pathID(ctx, "journey")
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	j, err := h.repo.GetByID(cctx, identity.ID, id)

	if err != nil {
		if errors.Is(err, journey.ErrNotFound) {
			RespondNotFound(ctx, "Journey not found")
			return
		}

		RespondInternal(ctx, "Could not fetch journey")
		return
	}

	ctx.JSON(http.StatusOK, j)
}

func (h *JourneysHandler) Update(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	id, ok := pathID(ctx, "journey")
	if !ok {
		return
	}

	var req journey.UpdateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	j, err := h.repo.Update(cctx, identity.ID, id, req)

	if err != nil {
		if errors.Is(err, journey.ErrNotFound) {
			RespondNotFound(ctx, "Journey not found")
			return
		}

		RespondInternal(ctx, "Could not update journey")
		return
	}

	ctx.JSON(http.StatusOK, j)
}

func (h *JourneysHandler) Delete(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	id, ok := pathID(ctx, "journey")
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, identity.ID, id)

	if err != nil {
		if errors.Is(err, journey.ErrNotFound) {
			RespondNotFound(ctx, "Journey not found")
			return
		}

		RespondInternal(ctx, "Could not delete journey")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Journey deleted successfully"})
}
