package events

import (
	"time"

	"github.com/spec-kit/admissions-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventApplicantSubmitted EventType = "applicant_submitted"
	EventApplicantAccepted  EventType = "applicant_accepted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	StudentID string      `json:"student_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ApplicantSubmittedPayload payload.
type ApplicantSubmittedPayload struct {
	Email  string                 `json:"email"`
	Status domain.ApplicantStatus `json:"status"`
}

// ApplicantAcceptedPayload payload.
type ApplicantAcceptedPayload struct {
	PreviouslyKnown bool `json:"previously_known"`
}
