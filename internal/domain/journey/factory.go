package journey

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(ownerID string, req CreateRequest) Journey {
	now := time.Now().UTC()

	itemIDs := req.PracticeItemIDs

	if itemIDs == nil {
		itemIDs = []string{}
	}

	return Journey{
		ID:              uuid.NewString(),
		UserID:          ownerID,
		Title:           req.Title,
		Goal:            req.Goal,
		PracticeItemIDs: itemIDs,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
