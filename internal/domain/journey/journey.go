package journey

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("journey not found")

type Journey struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Title           string    `json:"title"`
	Goal            string    `json:"goal,omitempty"`
	PracticeItemIDs []string  `json:"practice_item_ids"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateRequest struct {
	Title           string   `json:"title" binding:"required,min=1,max=200"`
	Goal            string   `json:"goal" binding:"omitempty,max=2000"`
	PracticeItemIDs []string `json:"practice_item_ids" binding:"omitempty,dive,uuid"`
}

// Pointer fields so unset fields are left untouched on update.
type UpdateRequest struct {
	Title           *string   `json:"title" binding:"omitempty,min=1,max=200"`
	Goal            *string   `json:"goal" binding:"omitempty,max=2000"`
	PracticeItemIDs *[]string `json:"practice_item_ids" binding:"omitempty,dive,uuid"`
}

type ListFilter struct {
	Skip  int
	Limit int
}
