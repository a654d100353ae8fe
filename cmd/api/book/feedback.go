package book

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	NoteMin = 0.0
	NoteMax = 5.0
)

type Feedback struct {
	ID        uuid.UUID
	Seq       uint64
	LoanID    uuid.UUID
	BookID    uuid.UUID
	AuthorID  uuid.UUID
	Note      float64
	Comment   string
	CreatedAt time.Time
}

type FeedbackRequest struct {
	Note    float64
	Comment string
}

func validateNote(note float64) error {
	if math.IsNaN(note) || note < NoteMin || note > NoteMax {
		return ErrResponseNoteOutOfRange
	}
	return nil
}
