package book

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

func (s *Service) ListCatalog(ctx context.Context, actorID uuid.UUID, page PageRequest) (Page[Book], error) {
	return s.listBooks(ctx, BookFilter{Scope: ScopeCatalog, ActorID: actorID}, page)
}

func (s *Service) ListOwned(ctx context.Context, actorID uuid.UUID, page PageRequest) (Page[Book], error) {
	return s.listBooks(ctx, BookFilter{Scope: ScopeOwned, ActorID: actorID}, page)
}

func (s *Service) ListActiveLoans(ctx context.Context, actorID uuid.UUID, page PageRequest) (Page[BorrowedBook], error) {
	return s.listLoans(ctx, LoanFilter{Scope: ScopeActiveLoans, ActorID: actorID}, page)
}

func (s *Service) ListPendingApproval(ctx context.Context, actorID uuid.UUID, page PageRequest) (Page[BorrowedBook], error) {
	return s.listLoans(ctx, LoanFilter{Scope: ScopePendingApproval, ActorID: actorID}, page)
}

func (s *Service) ListFeedbacks(ctx context.Context, bookID uuid.UUID, page PageRequest) (Page[Feedback], error) {
	if err := page.validate(); err != nil {
		return Page[Feedback]{}, err
	}

	itemsTotal, err := s.repo.ListFeedbacksTotals(ctx, bookID)
	if err != nil {
		return Page[Feedback]{}, wrapListErr("ListFeedbacksTotals", err)
	}
	if itemsTotal == 0 || page.Offset() >= itemsTotal {
		return newPage[Feedback](page, itemsTotal, nil), nil
	}

	results, err := s.repo.ListFeedbacks(ctx, bookID, page)
	if err != nil {
		return Page[Feedback]{}, wrapListErr("ListFeedbacks", err)
	}
	return newPage(page, itemsTotal, results), nil
}

/* Counts first, then fetches the page only when it can hold anything. */
func (s *Service) listBooks(ctx context.Context, filter BookFilter, page PageRequest) (Page[Book], error) {
	if filter.ActorID == uuid.Nil {
		return Page[Book]{}, ErrResponseActorInvalid
	}
	if err := page.validate(); err != nil {
		return Page[Book]{}, err
	}

	itemsTotal, err := s.repo.ListBooksTotals(ctx, filter)
	if err != nil {
		return Page[Book]{}, wrapListErr("ListBooksTotals", err)
	}
	if itemsTotal == 0 || page.Offset() >= itemsTotal {
		return newPage[Book](page, itemsTotal, nil), nil
	}

	results, err := s.repo.ListBooks(ctx, filter, page)
	if err != nil {
		return Page[Book]{}, wrapListErr("ListBooks", err)
	}
	return newPage(page, itemsTotal, results), nil
}

func (s *Service) listLoans(ctx context.Context, filter LoanFilter, page PageRequest) (Page[BorrowedBook], error) {
	if filter.ActorID == uuid.Nil {
		return Page[BorrowedBook]{}, ErrResponseActorInvalid
	}
	if err := page.validate(); err != nil {
		return Page[BorrowedBook]{}, err
	}

	itemsTotal, err := s.repo.ListLoansTotals(ctx, filter)
	if err != nil {
		return Page[BorrowedBook]{}, wrapListErr("ListLoansTotals", err)
	}
	if itemsTotal == 0 || page.Offset() >= itemsTotal {
		return newPage[BorrowedBook](page, itemsTotal, nil), nil
	}

	results, err := s.repo.ListLoans(ctx, filter, page)
	if err != nil {
		return Page[BorrowedBook]{}, wrapListErr("ListLoans", err)
	}
	return newPage(page, itemsTotal, results), nil
}

func wrapListErr(call string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("timeout on call to %s: %w", call, err)
	}
	return fmt.Errorf("calling %s: %w", call, err)
}
