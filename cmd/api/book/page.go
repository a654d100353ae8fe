package book

import (
	"math"

	"github.com/google/uuid"
)

const (
	PageSizeMax     = 50
	DefaultPageSize = 10
)

// Page is one slice of a listing. PageCurrent is zero-based.
type Page[T any] struct {
	Results     []T
	PageCurrent int
	PageSize    int
	PageTotal   int
	ItemsTotal  int
}

func (p Page[T]) IsFirst() bool {
	return p.PageTotal > 0 && p.PageCurrent == 0
}

/* An empty listing has no last page: PageTotal is 0 and no index can equal -1. */
func (p Page[T]) IsLast() bool {
	return p.PageTotal > 0 && p.PageCurrent == p.PageTotal-1
}

type PageRequest struct {
	Page int
	Size int
}

func (r PageRequest) validate() error {
	if r.Page < 0 {
		return ErrResponseQueryPageInvalid
	}
	if r.Size < 1 || r.Size > PageSizeMax {
		return ErrResponseQueryPageInvalid
	}
	// Offset must fit an int
	if r.Page > math.MaxInt/r.Size {
		return ErrResponseQueryPageInvalid
	}
	return nil
}

/* Offset of the first item of the requested page. */
func (r PageRequest) Offset() int {
	return r.Page * r.Size
}

/* Up rounded division of the total items by the page size. */
func pagesTotal(itemsTotal, pageSize int) int {
	if itemsTotal == 0 {
		return 0
	}
	return (itemsTotal + pageSize - 1) / pageSize
}

func newPage[T any](req PageRequest, itemsTotal int, results []T) Page[T] {
	if results == nil {
		results = []T{}
	}
	return Page[T]{
		Results:     results,
		PageCurrent: req.Page,
		PageSize:    req.Size,
		PageTotal:   pagesTotal(itemsTotal, req.Size),
		ItemsTotal:  itemsTotal,
	}
}

type BookScope int

const (
	// ScopeCatalog lists books others share: not archived, shareable, not owned by the actor.
	ScopeCatalog BookScope = iota + 1
	// ScopeOwned lists every book of the actor, archived ones included.
	ScopeOwned
)

type BookFilter struct {
	Scope   BookScope
	ActorID uuid.UUID
}

/* Reports whether b belongs to the listing described by the filter. */
func (f BookFilter) Match(b Book) bool {
	switch f.Scope {
	case ScopeCatalog:
		return !b.Archived && b.Shareable && b.OwnerID != f.ActorID
	case ScopeOwned:
		return b.OwnerID == f.ActorID
	default:
		return false
	}
}

type LoanScope int

const (
	// ScopeActiveLoans lists the loans the actor has not returned yet.
	ScopeActiveLoans LoanScope = iota + 1
	// ScopePendingApproval lists returned loans of the actor's books that wait for approval.
	ScopePendingApproval
)

type LoanFilter struct {
	Scope   LoanScope
	ActorID uuid.UUID
}

/* Reports whether the loan (and its book) belongs to the listing described by the filter. */
func (f LoanFilter) Match(l Loan, b Book) bool {
	switch f.Scope {
	case ScopeActiveLoans:
		return l.BorrowerID == f.ActorID && l.State() == LoanActive
	case ScopePendingApproval:
		return b.OwnerID == f.ActorID && l.State() == LoanReturned
	default:
		return false
	}
}
