package book

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBookCreated       EventType = "book_created"
	EventBookBorrowed      EventType = "book_borrowed"
	EventBookReturned      EventType = "book_returned"
	EventReturnApproved    EventType = "return_approved"
	EventFeedbackSubmitted EventType = "feedback_submitted"
	EventShareableToggled  EventType = "shareable_toggled"
	EventArchivedToggled   EventType = "archived_toggled"
)

// Event describes a committed transition. It is published after the transaction commits.
type Event struct {
	Type       EventType
	BookID     uuid.UUID
	BookTitle  string
	LoanID     uuid.UUID
	ActorID    uuid.UUID
	OccurredAt time.Time
}
