package book

import (
	"time"

	"github.com/google/uuid"
)

type LoanState int

const (
	LoanActive LoanState = iota + 1
	LoanReturned
	LoanApproved
)

func (s LoanState) String() string {
	switch s {
	case LoanActive:
		return "active"
	case LoanReturned:
		return "returned"
	case LoanApproved:
		return "approved"
	default:
		return "none"
	}
}

type Loan struct {
	ID         uuid.UUID
	Seq        uint64
	BookID     uuid.UUID
	BorrowerID uuid.UUID
	BorrowedAt time.Time
	ReturnedAt *time.Time
	Approved   bool
}

func (l Loan) State() LoanState {
	switch {
	case l.Approved:
		return LoanApproved
	case l.ReturnedAt != nil:
		return LoanReturned
	default:
		return LoanActive
	}
}

/* Moves an active loan to returned. The caller has already checked the state. */
func (l Loan) markReturned(at time.Time) Loan {
	l.ReturnedAt = &at
	return l
}

/* Moves a returned loan to approved, which is terminal. */
func (l Loan) approve() Loan {
	l.Approved = true
	return l
}

// BorrowedBook is a loan together with the book it refers to, as shown on loan listings.
type BorrowedBook struct {
	Loan Loan
	Book Book
}
