package book_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/book-network/cmd/api/book"
	bookmock "github.com/book-network/cmd/api/book/mocks"
	"github.com/book-network/cmd/api/inmemory"
	"github.com/google/uuid"
	"github.com/matryer/is"
	gomock "go.uber.org/mock/gomock"
)

var ctx context.Context = context.Background()

var notificationsTimeout = 1 * time.Second

func newService(t *testing.T, opts ...book.Option) *book.Service {
	t.Helper()
	store, err := inmemory.NewInMemoryStore()
	if err != nil {
		t.Fatalf("creating in memory store: %v", err)
	}
	opts = append([]book.Option{book.WithRetryOptions(book.WithBaseDelay(time.Millisecond))}, opts...)
	return book.NewService(store, nil, notificationsTimeout, opts...)
}

func createBook(t *testing.T, s *book.Service, owner uuid.UUID, title string, shareable bool) book.Book {
	t.Helper()
	b, err := s.CreateBook(ctx, owner, book.CreateBookRequest{
		Title:      title,
		AuthorName: "Octavia E. Butler",
		ISBN:       "978-0807083697",
		Shareable:  shareable,
	})
	if err != nil {
		t.Fatalf("creating book %q: %v", title, err)
	}
	return b
}

func TestCreateBook(t *testing.T) {
	owner := uuid.New()

	t.Run("creates a book without errors", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)

		reqBook := book.CreateBookRequest{
			Title:      "Parable of the Sower",
			AuthorName: "Octavia E. Butler",
			ISBN:       "978-1538732182",
			Synopsis:   "A walk north.",
			Shareable:  true,
		}

		createdBook, err := s.CreateBook(ctx, owner, reqBook)
		is.NoErr(err)
		is.True(createdBook.ID != uuid.Nil)
		is.Equal(createdBook.Title, reqBook.Title)
		is.Equal(createdBook.OwnerID, owner)
		is.True(createdBook.Shareable)
		is.True(!createdBook.Archived)
		is.True(createdBook.CreatedAt.Compare(time.Now().Round(time.Millisecond)) <= 0)

		gotBook, err := s.GetBook(ctx, owner, createdBook.ID)
		is.NoErr(err)
		is.Equal(gotBook.ID, createdBook.ID)
	})

	t.Run("expected blank fields error", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)

		_, err := s.CreateBook(ctx, owner, book.CreateBookRequest{Title: "  ", AuthorName: "someone", ISBN: "1"})
		is.True(errors.Is(err, book.ErrResponseBookEntryBlankFields))
	})

	t.Run("expected invalid actor error", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)

		_, err := s.CreateBook(ctx, uuid.Nil, book.CreateBookRequest{Title: "t", AuthorName: "a", ISBN: "1"})
		is.True(errors.Is(err, book.ErrResponseActorInvalid))
	})

	t.Run("expected unknown actor error", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		identity := bookmock.NewMockIdentity(ctrl)
		s := newService(t, book.WithIdentity(identity))

		identity.EXPECT().Exists(gomock.Any(), owner).Return(false, nil)

		_, err := s.CreateBook(ctx, owner, book.CreateBookRequest{Title: "t", AuthorName: "a", ISBN: "1"})
		is.True(errors.Is(err, book.ErrResponseActorNotFound))
		is.True(errors.Is(err, book.NotFound))
	})

	t.Run("expected error when the identity lookup fails", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		identity := bookmock.NewMockIdentity(ctrl)
		s := newService(t, book.WithIdentity(identity))

		lookupErr := errors.New("identity provider down")
		identity.EXPECT().Exists(gomock.Any(), owner).Return(false, lookupErr)

		_, err := s.CreateBook(ctx, owner, book.CreateBookRequest{Title: "t", AuthorName: "a", ISBN: "1"})
		is.True(errors.Is(err, lookupErr))
		is.Equal(book.KindOf(err), book.Kind(""))
	})
}

func TestGetBook(t *testing.T) {
	owner, borrower, stranger := uuid.New(), uuid.New(), uuid.New()

	t.Run("expected not found for a missing book", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)

		_, err := s.GetBook(ctx, stranger, uuid.New())
		is.True(errors.Is(err, book.ErrResponseBookNotFound))
	})

	t.Run("expected invalid actor error", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)
		b := createBook(t, s, owner, "Parable of the Sower", true)

		_, err := s.GetBook(ctx, uuid.Nil, b.ID)
		is.True(errors.Is(err, book.ErrResponseActorInvalid))
	})

	t.Run("a shared book is visible to anyone", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)
		b := createBook(t, s, owner, "Parable of the Sower", true)

		got, err := s.GetBook(ctx, stranger, b.ID)
		is.NoErr(err)
		is.Equal(got.ID, b.ID)
	})

	t.Run("hides unshared and archived books from strangers", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)
		unshared := createBook(t, s, owner, "Parable of the Talents", false)
		archived := createBook(t, s, owner, "Parable of the Sower", true)
		_, err := s.ToggleArchived(ctx, owner, archived.ID)
		is.NoErr(err)

		for _, id := range []uuid.UUID{unshared.ID, archived.ID} {
			_, err = s.GetBook(ctx, stranger, id)
			is.True(errors.Is(err, book.ErrResponseBookNotFound))

			got, err := s.GetBook(ctx, owner, id)
			is.NoErr(err)
			is.Equal(got.ID, id)
		}
	})

	t.Run("a former borrower still sees a book that is no longer shared", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)
		b := createBook(t, s, owner, "Parable of the Sower", true)

		_, err := s.Borrow(ctx, borrower, b.ID)
		is.NoErr(err)
		_, err = s.ReturnLoan(ctx, borrower, b.ID, nil)
		is.NoErr(err)
		_, err = s.ToggleShareable(ctx, owner, b.ID)
		is.NoErr(err)

		got, err := s.GetBook(ctx, borrower, b.ID)
		is.NoErr(err)
		is.True(!got.Shareable)

		_, err = s.GetBook(ctx, stranger, b.ID)
		is.True(errors.Is(err, book.ErrResponseBookNotFound))
	})
}

func TestToggles(t *testing.T) {
	owner, borrower := uuid.New(), uuid.New()

	t.Run("toggles shareable and archived", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)
		b := createBook(t, s, owner, "Kindred", false)

		updated, err := s.ToggleShareable(ctx, owner, b.ID)
		is.NoErr(err)
		is.True(updated.Shareable)

		updated, err = s.ToggleArchived(ctx, owner, b.ID)
		is.NoErr(err)
		is.True(updated.Archived)
		is.True(updated.Shareable)

		updated, err = s.ToggleArchived(ctx, owner, b.ID)
		is.NoErr(err)
		is.True(!updated.Archived)
	})

	t.Run("expected forbidden for anybody but the owner", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)
		b := createBook(t, s, owner, "Kindred", true)

		_, err := s.ToggleShareable(ctx, borrower, b.ID)
		is.True(errors.Is(err, book.ErrResponseNotBookOwner))
		is.True(errors.Is(err, book.Forbidden))

		stored, err := s.GetBook(ctx, owner, b.ID)
		is.NoErr(err)
		is.True(stored.Shareable)
	})

	t.Run("expected conflict while the book is lent out", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)
		b := createBook(t, s, owner, "Kindred", true)

		_, err := s.Borrow(ctx, borrower, b.ID)
		is.NoErr(err)

		_, err = s.ToggleArchived(ctx, owner, b.ID)
		is.True(errors.Is(err, book.ErrResponseBookLentOut))

		_, err = s.ToggleShareable(ctx, owner, b.ID)
		is.True(errors.Is(err, book.ErrResponseBookLentOut))
	})

	t.Run("expected not found for a missing book", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)

		_, err := s.ToggleArchived(ctx, owner, uuid.New())
		is.True(errors.Is(err, book.ErrResponseBookNotFound))
	})
}

func TestLendingLifecycle(t *testing.T) {
	is := is.New(t)
	s := newService(t)
	owner, borrower, other := uuid.New(), uuid.New(), uuid.New()
	b := createBook(t, s, owner, "Dawn", true)

	_, err := s.ApproveReturn(ctx, owner, b.ID)
	is.True(errors.Is(err, book.ErrResponseReturnNotPending)) // nothing was ever lent

	_, err = s.Borrow(ctx, owner, b.ID)
	is.True(errors.Is(err, book.ErrResponseOwnBook))

	loan, err := s.Borrow(ctx, borrower, b.ID)
	is.NoErr(err)
	is.Equal(loan.State(), book.LoanActive)
	is.Equal(loan.BorrowerID, borrower)
	is.Equal(loan.BookID, b.ID)

	_, err = s.Borrow(ctx, other, b.ID)
	is.True(errors.Is(err, book.ErrResponseBookAlreadyBorrowed))
	is.True(errors.Is(err, book.Conflict))

	_, err = s.Borrow(ctx, borrower, b.ID)
	is.True(errors.Is(err, book.ErrResponseBookAlreadyBorrowed))

	_, err = s.ApproveReturn(ctx, owner, b.ID)
	is.True(errors.Is(err, book.ErrResponseReturnNotPending)) // still active

	_, err = s.ReturnLoan(ctx, other, b.ID, nil)
	is.True(errors.Is(err, book.ErrResponseLoanNotFound))

	active, err := s.ListActiveLoans(ctx, borrower, book.PageRequest{Page: 0, Size: 10})
	is.NoErr(err)
	is.Equal(active.ItemsTotal, 1)
	is.Equal(active.Results[0].Loan.ID, loan.ID)
	is.Equal(active.Results[0].Book.Title, "Dawn")

	returned, err := s.ReturnLoan(ctx, borrower, b.ID, nil)
	is.NoErr(err)
	is.Equal(returned.Loan.ID, loan.ID)
	is.Equal(returned.Loan.State(), book.LoanReturned)
	is.Equal(returned.Feedback, nil)
	is.NoErr(returned.FeedbackErr)

	_, err = s.ReturnLoan(ctx, borrower, b.ID, nil)
	is.True(errors.Is(err, book.ErrResponseLoanAlreadyReturned))

	_, err = s.Borrow(ctx, other, b.ID)
	is.NoErr(err) // a returned book is lendable again before the approval

	active, err = s.ListActiveLoans(ctx, borrower, book.PageRequest{Page: 0, Size: 10})
	is.NoErr(err)
	is.Equal(active.ItemsTotal, 0)

	pending, err := s.ListPendingApproval(ctx, owner, book.PageRequest{Page: 0, Size: 10})
	is.NoErr(err)
	is.Equal(pending.ItemsTotal, 1)
	is.Equal(pending.Results[0].Loan.ID, loan.ID)

	_, err = s.ApproveReturn(ctx, borrower, b.ID)
	is.True(errors.Is(err, book.ErrResponseNotBookOwner))

	approved, err := s.ApproveReturn(ctx, owner, b.ID)
	is.NoErr(err)
	is.Equal(approved.ID, loan.ID)
	is.Equal(approved.State(), book.LoanApproved)

	_, err = s.ApproveReturn(ctx, owner, b.ID)
	is.True(errors.Is(err, book.ErrResponseReturnNotPending))

	pending, err = s.ListPendingApproval(ctx, owner, book.PageRequest{Page: 0, Size: 10})
	is.NoErr(err)
	is.Equal(pending.ItemsTotal, 0)
	is.Equal(len(pending.Results), 0)
}

func TestBorrowAgainAfterReturn(t *testing.T) {
	is := is.New(t)
	s := newService(t)
	owner, borrower, other := uuid.New(), uuid.New(), uuid.New()
	b := createBook(t, s, owner, "Dusk", true)

	first, err := s.Borrow(ctx, borrower, b.ID)
	is.NoErr(err)
	_, err = s.ReturnLoan(ctx, borrower, b.ID, nil)
	is.NoErr(err)

	_, err = s.Borrow(ctx, borrower, b.ID)
	is.True(errors.Is(err, book.ErrResponseReturnPendingApproval))
	is.True(errors.Is(err, book.Conflict))

	active, err := s.ListActiveLoans(ctx, borrower, book.PageRequest{Page: 0, Size: 10})
	is.NoErr(err)
	is.Equal(active.ItemsTotal, 0) // the refused borrow left nothing behind

	// other borrowers are not held back by someone else's pending return
	lent, err := s.Borrow(ctx, other, b.ID)
	is.NoErr(err)
	_, err = s.ReturnLoan(ctx, other, b.ID, nil)
	is.NoErr(err)

	approvedIDs := map[uuid.UUID]bool{}
	for i := 0; i < 2; i++ {
		approved, err := s.ApproveReturn(ctx, owner, b.ID)
		is.NoErr(err)
		approvedIDs[approved.ID] = true
	}
	is.True(approvedIDs[first.ID])
	is.True(approvedIDs[lent.ID])

	again, err := s.Borrow(ctx, borrower, b.ID)
	is.NoErr(err)
	is.True(again.ID != first.ID)
	is.Equal(again.State(), book.LoanActive)
}

func TestBorrowUnavailableBook(t *testing.T) {
	owner, borrower := uuid.New(), uuid.New()

	t.Run("expected error for a book that is not shareable", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)
		b := createBook(t, s, owner, "Wild Seed", false)

		_, err := s.Borrow(ctx, borrower, b.ID)
		is.True(errors.Is(err, book.ErrResponseBookNotShareable))
	})

	t.Run("expected error for an archived book", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)
		b := createBook(t, s, owner, "Wild Seed", true)

		_, err := s.ToggleArchived(ctx, owner, b.ID)
		is.NoErr(err)

		_, err = s.Borrow(ctx, borrower, b.ID)
		is.True(errors.Is(err, book.ErrResponseBookNotShareable))
	})

	t.Run("expected not found for a missing book", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)

		_, err := s.Borrow(ctx, borrower, uuid.New())
		is.True(errors.Is(err, book.ErrResponseBookNotFound))
	})
}

func TestConcurrentBorrow(t *testing.T) {
	is := is.New(t)
	s := newService(t, book.WithLockWait(5*time.Second))
	owner := uuid.New()
	b := createBook(t, s, owner, "Fledgling", true)

	const borrowers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < borrowers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Borrow(ctx, uuid.New(), b.ID)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, book.Conflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	is.Equal(succeeded, 1)
	is.Equal(conflicts, borrowers-1)
}

func TestFeedback(t *testing.T) {
	owner, borrower := uuid.New(), uuid.New()

	t.Run("returns a book with feedback", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)
		b := createBook(t, s, owner, "Lilith's Brood", true)

		_, err := s.Borrow(ctx, borrower, b.ID)
		is.NoErr(err)

		returned, err := s.ReturnLoan(ctx, borrower, b.ID, &book.FeedbackRequest{Note: 4.5, Comment: "great"})
		is.NoErr(err)
		is.NoErr(returned.FeedbackErr)
		is.True(returned.Feedback != nil)
		is.Equal(returned.Feedback.Note, 4.5)
		is.Equal(returned.Feedback.LoanID, returned.Loan.ID)
		is.Equal(returned.Feedback.BookID, b.ID)
		is.Equal(returned.Feedback.AuthorID, borrower)

		_, err = s.SubmitFeedback(ctx, borrower, returned.Loan.ID, book.FeedbackRequest{Note: 1})
		is.True(errors.Is(err, book.ErrResponseFeedbackAlreadyGiven))

		feedbacks, err := s.ListFeedbacks(ctx, b.ID, book.PageRequest{Page: 0, Size: 10})
		is.NoErr(err)
		is.Equal(feedbacks.ItemsTotal, 1)
		is.Equal(feedbacks.Results[0].Comment, "great")
	})

	t.Run("a rejected feedback keeps the return", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)
		b := createBook(t, s, owner, "Lilith's Brood", true)

		_, err := s.Borrow(ctx, borrower, b.ID)
		is.NoErr(err)

		returned, err := s.ReturnLoan(ctx, borrower, b.ID, &book.FeedbackRequest{Note: 6})
		is.NoErr(err)
		is.Equal(returned.Loan.State(), book.LoanReturned)
		is.Equal(returned.Feedback, nil)
		is.True(errors.Is(returned.FeedbackErr, book.ErrResponseNoteOutOfRange))

		f, err := s.SubmitFeedback(ctx, borrower, returned.Loan.ID, book.FeedbackRequest{Note: 0})
		is.NoErr(err)
		is.Equal(f.Note, 0.0)
	})

	t.Run("expected errors before the return and for strangers", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)
		b := createBook(t, s, owner, "Lilith's Brood", true)

		loan, err := s.Borrow(ctx, borrower, b.ID)
		is.NoErr(err)

		_, err = s.SubmitFeedback(ctx, borrower, loan.ID, book.FeedbackRequest{Note: 3})
		is.True(errors.Is(err, book.ErrResponseLoanNotReturned))

		_, err = s.SubmitFeedback(ctx, owner, loan.ID, book.FeedbackRequest{Note: 3})
		is.True(errors.Is(err, book.ErrResponseNotLoanBorrower))

		_, err = s.SubmitFeedback(ctx, borrower, uuid.New(), book.FeedbackRequest{Note: 3})
		is.True(errors.Is(err, book.ErrResponseLoanNotFound))

		_, err = s.SubmitFeedback(ctx, borrower, loan.ID, book.FeedbackRequest{Note: -0.5})
		is.True(errors.Is(err, book.ErrResponseNoteOutOfRange))
	})

	t.Run("feedback is accepted after the approval", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)
		b := createBook(t, s, owner, "Lilith's Brood", true)

		_, err := s.Borrow(ctx, borrower, b.ID)
		is.NoErr(err)
		returned, err := s.ReturnLoan(ctx, borrower, b.ID, nil)
		is.NoErr(err)
		_, err = s.ApproveReturn(ctx, owner, b.ID)
		is.NoErr(err)

		_, err = s.SubmitFeedback(ctx, borrower, returned.Loan.ID, book.FeedbackRequest{Note: 5})
		is.NoErr(err)
	})
}

func TestListBooks(t *testing.T) {
	owner, reader := uuid.New(), uuid.New()

	t.Run("pages through the catalog in creation order", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)

		for i := 0; i < 11; i++ {
			createBook(t, s, owner, fmt.Sprintf("book %02d", i), true)
		}
		createBook(t, s, owner, "private", false)
		createBook(t, s, reader, "mine", true)

		var titles []string
		for page := 0; page < 3; page++ {
			p, err := s.ListCatalog(ctx, reader, book.PageRequest{Page: page, Size: 5})
			is.NoErr(err)
			is.Equal(p.ItemsTotal, 11)
			is.Equal(p.PageTotal, 3)
			is.Equal(p.PageCurrent, page)
			is.Equal(p.IsFirst(), page == 0)
			is.Equal(p.IsLast(), page == 2)
			for _, b := range p.Results {
				titles = append(titles, b.Title)
			}
		}
		is.Equal(len(titles), 11)
		for i, title := range titles {
			is.Equal(title, fmt.Sprintf("book %02d", i))
		}

		beyond, err := s.ListCatalog(ctx, reader, book.PageRequest{Page: 3, Size: 5})
		is.NoErr(err)
		is.Equal(len(beyond.Results), 0)
		is.Equal(beyond.ItemsTotal, 11)
		is.True(!beyond.IsLast())
	})

	t.Run("owned listing includes archived books", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)

		b := createBook(t, s, owner, "archived", true)
		createBook(t, s, owner, "kept", false)
		_, err := s.ToggleArchived(ctx, owner, b.ID)
		is.NoErr(err)

		owned, err := s.ListOwned(ctx, owner, book.PageRequest{Page: 0, Size: 10})
		is.NoErr(err)
		is.Equal(owned.ItemsTotal, 2)

		catalog, err := s.ListCatalog(ctx, reader, book.PageRequest{Page: 0, Size: 10})
		is.NoErr(err)
		is.Equal(catalog.ItemsTotal, 0)
	})

	t.Run("an empty listing has no first or last page", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)

		p, err := s.ListOwned(ctx, owner, book.PageRequest{Page: 0, Size: 10})
		is.NoErr(err)
		is.Equal(p.PageTotal, 0)
		is.Equal(len(p.Results), 0)
		is.True(!p.IsFirst())
		is.True(!p.IsLast())
	})

	t.Run("expected invalid page errors", func(t *testing.T) {
		is := is.New(t)
		s := newService(t)

		for _, req := range []book.PageRequest{{Page: -1, Size: 10}, {Page: 0, Size: 0}, {Page: 0, Size: 51}, {Page: 1 << 61, Size: 8}} {
			_, err := s.ListCatalog(ctx, reader, req)
			is.True(errors.Is(err, book.ErrResponseQueryPageInvalid))

			_, err = s.ListFeedbacks(ctx, uuid.New(), req)
			is.True(errors.Is(err, book.ErrResponseQueryPageInvalid))
		}
	})
}

func TestCover(t *testing.T) {
	is := is.New(t)
	s := newService(t)
	owner, reader := uuid.New(), uuid.New()
	b := createBook(t, s, owner, "Bloodchild", true)

	_, err := s.GetCover(ctx, owner, b.ID)
	is.True(errors.Is(err, book.ErrResponseCoverNotFound))

	err = s.UploadCover(ctx, uuid.New(), b.ID, []byte("cover"))
	is.True(errors.Is(err, book.ErrResponseNotBookOwner))

	err = s.UploadCover(ctx, owner, b.ID, nil)
	is.True(errors.Is(err, book.ErrResponseCoverEmpty))

	err = s.UploadCover(ctx, owner, b.ID, make([]byte, book.MaxCoverSize+1))
	is.True(errors.Is(err, book.ErrResponseCoverTooLarge))

	is.NoErr(s.UploadCover(ctx, owner, b.ID, []byte("first")))
	is.NoErr(s.UploadCover(ctx, owner, b.ID, []byte("second")))

	cover, err := s.GetCover(ctx, reader, b.ID)
	is.NoErr(err)
	is.Equal(string(cover), "second")

	_, err = s.GetCover(ctx, reader, uuid.New())
	is.True(errors.Is(err, book.ErrResponseBookNotFound))

	_, err = s.ToggleShareable(ctx, owner, b.ID)
	is.NoErr(err)
	_, err = s.GetCover(ctx, reader, b.ID)
	is.True(errors.Is(err, book.ErrResponseBookNotFound)) // no longer shared

	cover, err = s.GetCover(ctx, owner, b.ID)
	is.NoErr(err)
	is.Equal(string(cover), "second")
}

func TestNotifications(t *testing.T) {

	t.Run("publishes committed transitions", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		ntfy := bookmock.NewMockNotifier(ctrl)
		store, err := inmemory.NewInMemoryStore()
		is.NoErr(err)
		s := book.NewService(store, ntfy, notificationsTimeout)

		events := make(chan book.Event, 8)
		var wg sync.WaitGroup
		wg.Add(4)
		ntfy.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(4).DoAndReturn(func(_ context.Context, e book.Event) error {
			defer wg.Done()
			events <- e
			return nil
		})

		owner, borrower := uuid.New(), uuid.New()
		b := createBook(t, s, owner, "Survivor", true)
		_, err = s.Borrow(ctx, borrower, b.ID)
		is.NoErr(err)
		_, err = s.ReturnLoan(ctx, borrower, b.ID, nil)
		is.NoErr(err)
		_, err = s.ApproveReturn(ctx, owner, b.ID)
		is.NoErr(err)

		wg.Wait()
		close(events)

		seen := map[book.EventType]book.Event{}
		for e := range events {
			seen[e.Type] = e
		}
		is.Equal(len(seen), 4)
		is.Equal(seen[book.EventBookBorrowed].ActorID, borrower)
		is.Equal(seen[book.EventBookBorrowed].BookTitle, "Survivor")
		is.Equal(seen[book.EventReturnApproved].ActorID, owner)
		is.True(!seen[book.EventBookCreated].OccurredAt.IsZero())
	})

	t.Run("a failed delivery does not fail the operation", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		ntfy := bookmock.NewMockNotifier(ctrl)
		store, err := inmemory.NewInMemoryStore()
		is.NoErr(err)
		s := book.NewService(store, ntfy, notificationsTimeout)

		var wg sync.WaitGroup
		wg.Add(1)
		ntfy.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ book.Event) error {
			defer wg.Done()
			return errors.New("ntfy unavailable")
		})

		_, err = s.CreateBook(ctx, uuid.New(), book.CreateBookRequest{Title: "t", AuthorName: "a", ISBN: "1"})
		is.NoErr(err)
		wg.Wait()
	})

	t.Run("nothing is published when the operation fails", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		ntfy := bookmock.NewMockNotifier(ctrl)
		store, err := inmemory.NewInMemoryStore()
		is.NoErr(err)
		s := book.NewService(store, ntfy, notificationsTimeout)

		_, err = s.Borrow(ctx, uuid.New(), uuid.New())
		is.True(errors.Is(err, book.ErrResponseBookNotFound))
	})
}

type fakeTx struct {
	mu        sync.Mutex
	commits   int
	rollbacks int
}

func (tx *fakeTx) Commit() error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	tx.commits++
	return nil
}

func (tx *fakeTx) Rollback() error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	tx.rollbacks++
	return nil
}

func TestRepositoryErrors(t *testing.T) {
	actor, bookID := uuid.New(), uuid.New()

	t.Run("retries a lost race and then reports a conflict", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		s := book.NewService(mockRepo, nil, notificationsTimeout,
			book.WithRetryOptions(book.WithMaxAttempts(3), book.WithBaseDelay(0)))

		tx := &fakeTx{}
		mockRepo.EXPECT().BeginTx(gomock.Any(), gomock.Any()).Times(3).Return(mockRepo, tx, nil)
		mockRepo.EXPECT().GetBookByID(gomock.Any(), bookID).Times(3).Return(book.Book{ID: bookID, OwnerID: uuid.New(), Shareable: true}, nil)
		mockRepo.EXPECT().GetActiveLoan(gomock.Any(), bookID).Times(3).Return(book.Loan{}, book.ErrResponseLoanNotFound)
		mockRepo.EXPECT().GetLatestLoan(gomock.Any(), bookID, actor).Times(3).Return(book.Loan{}, book.ErrResponseLoanNotFound)
		mockRepo.EXPECT().CreateLoan(gomock.Any(), gomock.Any()).Times(3).Return(book.Loan{}, fmt.Errorf("inserting loan: %w", book.ErrConcurrencyConflict))

		_, err := s.Borrow(ctx, actor, bookID)
		is.True(errors.Is(err, book.ErrResponseConcurrentModification))
		is.True(errors.Is(err, book.Conflict))
		is.Equal(tx.rollbacks, 3)
		is.Equal(tx.commits, 0)
	})

	t.Run("succeeds when a retry wins", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		s := book.NewService(mockRepo, nil, notificationsTimeout,
			book.WithRetryOptions(book.WithBaseDelay(0)))

		tx := &fakeTx{}
		mockRepo.EXPECT().BeginTx(gomock.Any(), gomock.Any()).Times(2).Return(mockRepo, tx, nil)
		mockRepo.EXPECT().GetBookByID(gomock.Any(), bookID).Times(2).Return(book.Book{ID: bookID, OwnerID: uuid.New(), Shareable: true}, nil)
		mockRepo.EXPECT().GetActiveLoan(gomock.Any(), bookID).Times(2).Return(book.Loan{}, book.ErrResponseLoanNotFound)
		mockRepo.EXPECT().GetLatestLoan(gomock.Any(), bookID, actor).Times(2).Return(book.Loan{}, book.ErrResponseLoanNotFound)
		gomock.InOrder(
			mockRepo.EXPECT().CreateLoan(gomock.Any(), gomock.Any()).Return(book.Loan{}, book.ErrConcurrencyConflict),
			mockRepo.EXPECT().CreateLoan(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l book.Loan) (book.Loan, error) {
				return l, nil
			}),
		)

		loan, err := s.Borrow(ctx, actor, bookID)
		is.NoErr(err)
		is.Equal(loan.BorrowerID, actor)
		is.Equal(tx.rollbacks, 1)
		is.Equal(tx.commits, 1)
	})

	t.Run("expected error when the borrower's last loan cannot be read", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		s := book.NewService(mockRepo, nil, notificationsTimeout)

		storageErr := errors.New("connection reset")
		tx := &fakeTx{}
		mockRepo.EXPECT().BeginTx(gomock.Any(), gomock.Any()).Return(mockRepo, tx, nil)
		mockRepo.EXPECT().GetBookByID(gomock.Any(), bookID).Return(book.Book{ID: bookID, OwnerID: uuid.New(), Shareable: true}, nil)
		mockRepo.EXPECT().GetActiveLoan(gomock.Any(), bookID).Return(book.Loan{}, book.ErrResponseLoanNotFound)
		mockRepo.EXPECT().GetLatestLoan(gomock.Any(), bookID, actor).Return(book.Loan{}, storageErr)

		_, err := s.Borrow(ctx, actor, bookID)
		is.True(errors.Is(err, storageErr))
		is.Equal(tx.rollbacks, 1)
		is.Equal(tx.commits, 0)
	})

	t.Run("does not retry other storage errors", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		s := book.NewService(mockRepo, nil, notificationsTimeout)

		storageErr := errors.New("disk full")
		tx := &fakeTx{}
		mockRepo.EXPECT().BeginTx(gomock.Any(), gomock.Any()).Return(mockRepo, tx, nil)
		mockRepo.EXPECT().GetBookByID(gomock.Any(), bookID).Return(book.Book{}, storageErr)

		_, err := s.ToggleShareable(ctx, actor, bookID)
		is.True(errors.Is(err, storageErr))
		is.Equal(tx.rollbacks, 1)
	})

	t.Run("expected error when a transaction cannot begin", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		s := book.NewService(mockRepo, nil, notificationsTimeout)

		beginErr := errors.New("too many connections")
		mockRepo.EXPECT().BeginTx(gomock.Any(), gomock.Any()).Return(nil, nil, beginErr)

		_, err := s.ApproveReturn(ctx, actor, bookID)
		is.True(errors.Is(err, beginErr))
	})

	t.Run("expected timeout error from a listing", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		s := book.NewService(mockRepo, nil, notificationsTimeout)

		mockRepo.EXPECT().ListBooksTotals(gomock.Any(), book.BookFilter{Scope: book.ScopeCatalog, ActorID: actor}).Return(0, context.DeadlineExceeded)

		_, err := s.ListCatalog(ctx, actor, book.PageRequest{Page: 0, Size: 10})
		is.True(errors.Is(err, context.DeadlineExceeded))
	})

	t.Run("skips the fetch for a page past the end", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		s := book.NewService(mockRepo, nil, notificationsTimeout)

		mockRepo.EXPECT().ListLoansTotals(gomock.Any(), gomock.Any()).Return(4, nil)

		p, err := s.ListActiveLoans(ctx, actor, book.PageRequest{Page: 1, Size: 5})
		is.NoErr(err)
		is.Equal(p.ItemsTotal, 4)
		is.Equal(p.PageTotal, 1)
		is.Equal(len(p.Results), 0)
	})
}

func TestOwnerBorrowerScenario(t *testing.T) {
	is := is.New(t)
	s := newService(t)
	a, c, d := uuid.New(), uuid.New(), uuid.New()

	b := createBook(t, s, a, "Mind of My Mind", true)

	loan, err := s.Borrow(ctx, c, b.ID)
	is.NoErr(err)
	is.Equal(loan.State(), book.LoanActive)

	_, err = s.Borrow(ctx, d, b.ID)
	is.True(errors.Is(err, book.Conflict))

	_, err = s.ToggleArchived(ctx, c, b.ID)
	is.True(errors.Is(err, book.Forbidden))

	returned, err := s.ReturnLoan(ctx, c, b.ID, &book.FeedbackRequest{Note: 4, Comment: "good"})
	is.NoErr(err)
	is.True(returned.Loan.ReturnedAt != nil)
	is.True(returned.Feedback != nil)

	feedbacks, err := s.ListFeedbacks(ctx, b.ID, book.PageRequest{Page: 0, Size: 5})
	is.NoErr(err)
	is.Equal(feedbacks.ItemsTotal, 1)

	approved, err := s.ApproveReturn(ctx, a, b.ID)
	is.NoErr(err)
	is.Equal(approved.State(), book.LoanApproved)

	_, err = s.ApproveReturn(ctx, a, b.ID)
	is.True(errors.Is(err, book.Conflict))
}
