package session

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(ownerID string, req CreateRequest) Session {
	now := time.Now().UTC()

	insights := req.Insights
	if insights == nil {
		insights = []Insight{}
	}

	suggestions := req.AISuggestions
	if suggestions == nil {
		suggestions = []Suggestion{}
	}

	counts := req.InsightCounts
	if counts == nil {
		counts = map[string]int{}
	}

	return Session{
		ID:             uuid.NewString(),
		UserID:         ownerID,
		SubjectID:      req.SubjectID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Insights:       insights,
		AISuggestions:  suggestions,
		InsightCounts:  counts,
		SessionSummary: req.SessionSummary,
		SessionJournal: req.SessionJournal,
		SessionFocus:   req.SessionFocus,
		FullTranscript: req.FullTranscript,
		IsActive:       req.IsActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
