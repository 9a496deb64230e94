package practiceitem

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(ownerID string, req CreateRequest) PracticeItem {
	now := time.Now().UTC()

	tags := req.Tags

	if tags == nil {
		tags = []string{}
	}

	return PracticeItem{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Title:     req.Title,
		Composer:  req.Composer,
		Genre:     req.Genre,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
