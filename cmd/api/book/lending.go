package book

import (
	"context"

	"github.com/google/uuid"
)

// ReturnedLoan is the outcome of a return. The return is committed even when FeedbackErr is set.
type ReturnedLoan struct {
	Loan        Loan
	Feedback    *Feedback
	FeedbackErr error
}

func (s *Service) Borrow(ctx context.Context, actorID, bookID uuid.UUID) (Loan, error) {
	if err := s.checkActor(ctx, actorID); err != nil {
		return Loan{}, err
	}

	var (
		created Loan
		title   string
	)
	err := s.exclusive(ctx, bookKey(bookID), func(repo Repository) error {
		b, err := repo.GetBookByID(ctx, bookID)
		if err != nil {
			return err
		}
		if b.OwnedBy(actorID) {
			return ErrResponseOwnBook
		}
		if !b.Lendable() {
			return ErrResponseBookNotShareable
		}

		_, err = repo.GetActiveLoan(ctx, bookID)
		switch {
		case err == nil:
			return ErrResponseBookAlreadyBorrowed
		case KindOf(err) != NotFound:
			return err
		}

		// the borrower's last return has to be approved before borrowing the book again
		latest, err := repo.GetLatestLoan(ctx, bookID, actorID)
		switch {
		case err == nil && latest.State() == LoanReturned:
			return ErrResponseReturnPendingApproval
		case err != nil && KindOf(err) != NotFound:
			return err
		}

		created, err = repo.CreateLoan(ctx, Loan{
			ID:         uuid.New(),
			BookID:     bookID,
			BorrowerID: actorID,
			BorrowedAt: s.now(),
		})
		title = b.Title
		return err
	})
	if err != nil {
		return Loan{}, err
	}

	s.publish(Event{Type: EventBookBorrowed, BookID: bookID, BookTitle: title, LoanID: created.ID, ActorID: actorID})
	return created, nil
}

/*
Marks the borrower's active loan on the book as returned. When feedback is given it is submitted
right after the return commits; a failing feedback is reported in the result and leaves the
return in place.
*/
func (s *Service) ReturnLoan(ctx context.Context, actorID, bookID uuid.UUID, feedback *FeedbackRequest) (ReturnedLoan, error) {
	if actorID == uuid.Nil {
		return ReturnedLoan{}, ErrResponseActorInvalid
	}

	var (
		returned Loan
		title    string
	)
	err := s.exclusive(ctx, bookKey(bookID), func(repo Repository) error {
		b, err := repo.GetBookByID(ctx, bookID)
		if err != nil {
			return err
		}

		l, err := repo.GetLatestLoan(ctx, bookID, actorID)
		if err != nil {
			return err
		}
		switch l.State() {
		case LoanReturned:
			return ErrResponseLoanAlreadyReturned
		case LoanApproved:
			return ErrResponseLoanNotFound
		}

		returned, err = repo.UpdateLoan(ctx, l.markReturned(s.now()))
		title = b.Title
		return err
	})
	if err != nil {
		return ReturnedLoan{}, err
	}

	s.publish(Event{Type: EventBookReturned, BookID: bookID, BookTitle: title, LoanID: returned.ID, ActorID: actorID})

	result := ReturnedLoan{Loan: returned}
	if feedback == nil {
		return result, nil
	}

	f, err := s.SubmitFeedback(ctx, actorID, returned.ID, *feedback)
	if err != nil {
		s.log.Warn().Err(err).
			Str("loan_id", returned.ID.String()).
			Str("actor_id", actorID.String()).
			Msg("book returned without feedback")
		result.FeedbackErr = err
		return result, nil
	}
	result.Feedback = &f
	return result, nil
}

/* Approves the oldest returned loan of the book. Only the owner may approve. */
func (s *Service) ApproveReturn(ctx context.Context, actorID, bookID uuid.UUID) (Loan, error) {
	if actorID == uuid.Nil {
		return Loan{}, ErrResponseActorInvalid
	}

	var (
		approved Loan
		title    string
	)
	err := s.exclusive(ctx, bookKey(bookID), func(repo Repository) error {
		b, err := repo.GetBookByID(ctx, bookID)
		if err != nil {
			return err
		}
		if !b.OwnedBy(actorID) {
			return ErrResponseNotBookOwner
		}

		l, err := repo.GetOldestReturnedLoan(ctx, bookID)
		if err != nil {
			if KindOf(err) == NotFound {
				return ErrResponseReturnNotPending
			}
			return err
		}

		approved, err = repo.UpdateLoan(ctx, l.approve())
		title = b.Title
		return err
	})
	if err != nil {
		return Loan{}, err
	}

	s.publish(Event{Type: EventReturnApproved, BookID: bookID, BookTitle: title, LoanID: approved.ID, ActorID: actorID})
	return approved, nil
}

func (s *Service) SubmitFeedback(ctx context.Context, actorID, loanID uuid.UUID, req FeedbackRequest) (Feedback, error) {
	if actorID == uuid.Nil {
		return Feedback{}, ErrResponseActorInvalid
	}
	if err := validateNote(req.Note); err != nil {
		return Feedback{}, err
	}

	var created Feedback
	err := s.exclusive(ctx, loanKey(loanID), func(repo Repository) error {
		l, err := repo.GetLoanByID(ctx, loanID)
		if err != nil {
			return err
		}
		if l.BorrowerID != actorID {
			return ErrResponseNotLoanBorrower
		}
		if l.State() == LoanActive {
			return ErrResponseLoanNotReturned
		}

		_, err = repo.GetFeedbackByLoanID(ctx, loanID)
		switch {
		case err == nil:
			return ErrResponseFeedbackAlreadyGiven
		case KindOf(err) != NotFound:
			return err
		}

		created, err = repo.CreateFeedback(ctx, Feedback{
			ID:        uuid.New(),
			LoanID:    loanID,
			BookID:    l.BookID,
			AuthorID:  actorID,
			Note:      req.Note,
			Comment:   req.Comment,
			CreatedAt: s.now(),
		})
		return err
	})
	if err != nil {
		return Feedback{}, err
	}

	s.publish(Event{Type: EventFeedbackSubmitted, BookID: created.BookID, LoanID: loanID, ActorID: actorID})
	return created, nil
}
