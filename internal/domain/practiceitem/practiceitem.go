package practiceitem

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("practice item not found")

type PracticeItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Composer  string    `json:"composer,omitempty"`
	Genre     string    `json:"genre,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateRequest struct {
	Title    string   `json:"title" binding:"required,min=1,max=200"`
	Composer string   `json:"composer" binding:"omitempty,max=200"`
	Genre    string   `json:"genre" binding:"omitempty,max=100"`
	Tags     []string `json:"tags" binding:"omitempty,dive,max=50"`
}

// Pointer fields so unset fields are left untouched on update.
type UpdateRequest struct {
	Title    *string   `json:"title" binding:"omitempty,min=1,max=200"`
	Composer *string   `json:"composer" binding:"omitempty,max=200"`
	Genre    *string   `json:"genre" binding:"omitempty,max=100"`
	Tags     *[]string `json:"tags" binding:"omitempty,dive,max=50"`
}

type ListFilter struct {
	Skip  int
	Limit int
}
