package book

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Book struct {
	ID         uuid.UUID
	Seq        uint64
	Title      string
	AuthorName string
	ISBN       string
	Synopsis   string
	OwnerID    uuid.UUID
	Shareable  bool
	Archived   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

/* A book can be borrowed only when its owner shares it and it is not archived. The active loan check lives in the ledger. */
func (b Book) Lendable() bool {
	return b.Shareable && !b.Archived
}

func (b Book) OwnedBy(actorID uuid.UUID) bool {
	return b.OwnerID == actorID
}

type CreateBookRequest struct {
	Title      string
	AuthorName string
	ISBN       string
	Synopsis   string
	Shareable  bool
}

/* Verifies if all required entry fields are filled and returns a warning message if not. */
func FilledFields(req CreateBookRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return ErrResponseBookEntryBlankFields
	}
	if strings.TrimSpace(req.AuthorName) == "" {
		return ErrResponseBookEntryBlankFields
	}
	if strings.TrimSpace(req.ISBN) == "" {
		return ErrResponseBookEntryBlankFields
	}

	return nil
}

// MaxCoverSize bounds the opaque cover blob accepted for a book.
const MaxCoverSize = 5 << 20
