package session

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Insight is one observation captured during a practice session.
type Insight struct {
	Kind string    `json:"kind"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Suggestion is an assistant-generated followup attached to a session.
type Suggestion struct {
	Kind string    `json:"kind"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

type Session struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	SubjectID      string         `json:"subject_id,omitempty"`
	StartTime      time.Time      `json:"start_time"`
	EndTime        *time.Time     `json:"end_time,omitempty"`
	Insights       []Insight      `json:"insights"`
	AISuggestions  []Suggestion   `json:"ai_suggestions"`
	InsightCounts  map[string]int `json:"insight_counts"`
	SessionSummary string         `json:"session_summary,omitempty"`
	SessionJournal string         `json:"session_journal,omitempty"`
	SessionFocus   string         `json:"session_focus,omitempty"`
	FullTranscript string         `json:"full_transcript,omitempty"`
	IsActive       bool           `json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type CreateRequest struct {
	SubjectID      string         `json:"subject_id" binding:"omitempty,uuid"`
	StartTime      time.Time      `json:"start_time" binding:"required"`
	EndTime        *time.Time     `json:"end_time"`
	Insights       []Insight      `json:"insights"`
	AISuggestions  []Suggestion   `json:"ai_suggestions"`
	InsightCounts  map[string]int `json:"insight_counts"`
	SessionSummary string         `json:"session_summary" binding:"omitempty,max=10000"`
	SessionJournal string         `json:"session_journal" binding:"omitempty,max=50000"`
	SessionFocus   string         `json:"session_focus" binding:"omitempty,max=500"`
	FullTranscript string         `json:"full_transcript"`
	IsActive       bool           `json:"is_active"`
}

// Pointer fields so unset fields are left untouched on update.
type UpdateRequest struct {
	EndTime        *time.Time      `json:"end_time"`
	Insights       *[]Insight      `json:"insights"`
	AISuggestions  *[]Suggestion   `json:"ai_suggestions"`
	InsightCounts  *map[string]int `json:"insight_counts"`
	SessionSummary *string         `json:"session_summary" binding:"omitempty,max=10000"`
	SessionJournal *string         `json:"session_journal" binding:"omitempty,max=50000"`
	SessionFocus   *string         `json:"session_focus" binding:"omitempty,max=500"`
	FullTranscript *string         `json:"full_transcript"`
	IsActive       *bool           `json:"is_active"`
}

type ListFilter struct {
	Skip  int
	Limit int
}
