package events

import (
	"time"

	"github.com/spec-kit/interview-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventInterviewCreated EventType = "interview_created"
	EventInterviewUpdated EventType = "interview_updated"
	EventInterviewDeleted EventType = "interview_deleted"
)

// InterviewEventTypes lists every event that changes the interview store.
func InterviewEventTypes() []EventType {
	return []EventType{EventInterviewCreated, EventInterviewUpdated, EventInterviewDeleted}
}

// Actor identifies who triggered an event. UserID is empty for system actions.
type Actor struct {
	UserID string `json:"user_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	InterviewID int64       `json:"interview_id"`
	Actor       Actor       `json:"actor"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// InterviewChangedPayload describes the interview after a create or update.
type InterviewChangedPayload struct {
	Date       time.Time         `json:"date"`
	Department domain.Department `json:"department"`
	PrevDate   *time.Time        `json:"prev_date,omitempty"`
}
