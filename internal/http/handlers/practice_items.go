package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/strettonotes/strettonotes/internal/config"
	"github.com/strettonotes/strettonotes/internal/domain/practiceitem"
)

// Every method takes the owner id so the repo can fold ownership into the
// query itself; there is no unscoped accessor to call by mistake.
type PracticeItemsStore interface {
	Create(ctx context.Context, ownerID string, req practiceitem.CreateRequest) (practiceitem.PracticeItem, error)
	List(ctx context.Context, ownerID string, filter practiceitem.ListFilter) ([]practiceitem.PracticeItem, error)
	GetByID(ctx context.Context, ownerID, id string) (practiceitem.PracticeItem, error)
	Update(ctx context.Context, ownerID, id string, req practiceitem.UpdateRequest) (practiceitem.PracticeItem, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type PracticeItemsHandler struct {
	repo PracticeItemsStore
}

func NewPracticeItemsHandler(repo PracticeItemsStore) *PracticeItemsHandler {
	return &PracticeItemsHandler{repo: repo}
}

func (h *PracticeItemsHandler) Create(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	var req practiceitem.CreateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	item, err := h.repo.Create(cctx, identity.ID, req)

	if err != nil {
		RespondInternal(ctx, "Could not create practice item")
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

func (h *PracticeItemsHandler) List(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	skip, limit := pagination(ctx)

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	items, err := h.repo.List(cctx, identity.ID, practiceitem.ListFilter{Skip: skip, Limit: limit})

	if err != nil {
		RespondInternal(ctx, "Could not list practice items")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

func (h *PracticeItemsHandler) GetByID(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	id, ok := pathID(ctx, "practice item")
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	item, err := h.repo.GetByID(cctx, identity.ID, id)

	if err != nil {
		if errors.Is(err, practiceitem.ErrNotFound) {
			RespondNotFound(ctx, "Practice item not found")
			return
		}

		RespondInternal(ctx, "Could not fetch practice item")
		return
	}

	ctx.JSON(http.StatusOK, item)
}

func (h *PracticeItemsHandler) Update(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	id, ok := pathID(ctx, "practice item")
	if !ok {
		return
	}

	var req practiceitem.UpdateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	item, err := h.repo.Update(cctx, identity.ID, id, req)

	if err != nil {
		if errors.Is(err, practiceitem.ErrNotFound) {
			RespondNotFound(ctx, "Practice item not found")
			return
		}

		RespondInternal(ctx, "Could not update practice item")
		return
	}

	ctx.JSON(http.StatusOK, item)
}

func (h *PracticeItemsHandler) Delete(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	id, ok := pathID(ctx, "practice item")
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, identity.ID, id)

	if err != nil {
		if errors.Is(err, practiceitem.ErrNotFound) {
			RespondNotFound(ctx, "Practice item not found")
			return
		}

		RespondInternal(ctx, "Could not delete practice item")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Practice item deleted successfully"})
}
