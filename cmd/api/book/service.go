package book

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/book-network/cmd/api/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

//go:generate mockgen -source=service.go -destination=../http/mocks/mock_service.go -package=mocks ServiceAPI
//go:generate mockgen -source=service.go -destination=mocks/mock_repository.go -package=mocks Repository,Notifier,Identity

type ServiceAPI interface {
	GetBook(ctx context.Context, actorID, id uuid.UUID) (Book, error)
	CreateBook(ctx context.Context, actorID uuid.UUID, req CreateBookRequest) (Book, error)
	ToggleShareable(ctx context.Context, actorID, bookID uuid.UUID) (Book, error)
	ToggleArchived(ctx context.Context, actorID, bookID uuid.UUID) (Book, error)
	UploadCover(ctx context.Context, actorID, bookID uuid.UUID, cover []byte) error
	GetCover(ctx context.Context, actorID, bookID uuid.UUID) ([]byte, error)

	Borrow(ctx context.Context, actorID, bookID uuid.UUID) (Loan, error)
	ReturnLoan(ctx context.Context, actorID, bookID uuid.UUID, feedback *FeedbackRequest) (ReturnedLoan, error)
	ApproveReturn(ctx context.Context, actorID, bookID uuid.UUID) (Loan, error)
	SubmitFeedback(ctx context.Context, actorID, loanID uuid.UUID, req FeedbackRequest) (Feedback, error)

	ListCatalog(ctx context.Context, actorID uuid.UUID, page PageRequest) (Page[Book], error)
	ListOwned(ctx context.Context, actorID uuid.UUID, page PageRequest) (Page[Book], error)
	ListActiveLoans(ctx context.Context, actorID uuid.UUID, page PageRequest) (Page[BorrowedBook], error)
	ListPendingApproval(ctx context.Context, actorID uuid.UUID, page PageRequest) (Page[BorrowedBook], error)
	ListFeedbacks(ctx context.Context, bookID uuid.UUID, page PageRequest) (Page[Feedback], error)
}

type Repository interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (Repository, driver.Tx, error)

	CreateBook(ctx context.Context, bookEntry Book) (Book, error)
	GetBookByID(ctx context.Context, id uuid.UUID) (Book, error)
	UpdateBookFlags(ctx context.Context, bookEntry Book) (Book, error)
	ListBooks(ctx context.Context, filter BookFilter, page PageRequest) ([]Book, error)
	ListBooksTotals(ctx context.Context, filter BookFilter) (int, error)
	SaveCover(ctx context.Context, bookID uuid.UUID, cover []byte) error
	GetCover(ctx context.Context, bookID uuid.UUID) ([]byte, error)

	CreateLoan(ctx context.Context, l Loan) (Loan, error)
	UpdateLoan(ctx context.Context, l Loan) (Loan, error)
	GetLoanByID(ctx context.Context, id uuid.UUID) (Loan, error)
	GetActiveLoan(ctx context.Context, bookID uuid.UUID) (Loan, error)
	GetLatestLoan(ctx context.Context, bookID, borrowerID uuid.UUID) (Loan, error)
	GetOldestReturnedLoan(ctx context.Context, bookID uuid.UUID) (Loan, error)
	ListLoans(ctx context.Context, filter LoanFilter, page PageRequest) ([]BorrowedBook, error)
	ListLoansTotals(ctx context.Context, filter LoanFilter) (int, error)

	CreateFeedback(ctx context.Context, f Feedback) (Feedback, error)
	GetFeedbackByLoanID(ctx context.Context, loanID uuid.UUID) (Feedback, error)
	ListFeedbacks(ctx context.Context, bookID uuid.UUID, page PageRequest) ([]Feedback, error)
	ListFeedbacksTotals(ctx context.Context, bookID uuid.UUID) (int, error)
}

type Notifier interface {
	Publish(ctx context.Context, event Event) error
}

// Identity answers whether an authenticated actor id is known. Issuing identities is not our job.
type Identity interface {
	Exists(ctx context.Context, actorID uuid.UUID) (bool, error)
}

// AnyIdentity trusts every non-nil actor id handed over by the identity gateway.
type AnyIdentity struct{}

func (AnyIdentity) Exists(_ context.Context, actorID uuid.UUID) (bool, error) {
	return actorID != uuid.Nil, nil
}

type Service struct {
	repo                 Repository
	ntfy                 Notifier
	notificationsTimeout time.Duration
	identity             Identity
	locks                *Locker
	retryOptions         []RetryOption
	now                  func() time.Time
	log                  zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

func WithIdentity(identity Identity) Option {
	return func(s *Service) {
		s.identity = identity
	}
}

// WithLockWait bounds how long an operation waits for the lock of a busy book or loan.
func WithLockWait(wait time.Duration) Option {
	return func(s *Service) {
		s.locks = NewLocker(wait)
	}
}

func WithRetryOptions(opts ...RetryOption) Option {
	return func(s *Service) {
		s.retryOptions = opts
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

/* A nil notifier disables notifications. */
func NewService(repo Repository, ntfy Notifier, notificationsTimeout time.Duration, opts ...Option) *Service {
	s := &Service{
		repo:                 repo,
		ntfy:                 ntfy,
		notificationsTimeout: notificationsTimeout,
		identity:             AnyIdentity{},
		locks:                NewLocker(defaultLockWait),
		now:                  func() time.Time { return time.Now().UTC().Round(time.Millisecond) },
		log:                  logger.Get(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

/*
Runs fn in a single transaction while holding the lock for key. The whole read-validate-write
sequence is retried when storage reports a lost race.
*/
func (s *Service) exclusive(ctx context.Context, key string, fn func(repo Repository) error) error {
	unlock, err := s.locks.Lock(ctx, key)
	if err != nil {
		return err
	}
	defer unlock()

	return RetryWithExponentialBackoff(ctx, func(ctx context.Context) error {
		return s.inTx(ctx, fn)
	}, s.retryOptions...)
}

func (s *Service) inTx(ctx context.Context, fn func(repo Repository) error) (err error) {
	txRepo, tx, err := s.repo.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("committing transaction: %w", cErr)
		}
	}()

	return fn(txRepo)
}

func (s *Service) checkActor(ctx context.Context, actorID uuid.UUID) error {
	if actorID == uuid.Nil {
		return ErrResponseActorInvalid
	}
	ok, err := s.identity.Exists(ctx, actorID)
	if err != nil {
		return fmt.Errorf("checking user: %w", err)
	}
	if !ok {
		return ErrResponseActorNotFound
	}
	return nil
}

/* Delivers the event in the background. Delivery failures are logged, the transition already happened. */
func (s *Service) publish(event Event) {
	if s.ntfy == nil {
		return
	}
	event.OccurredAt = s.now()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.notificationsTimeout)
		defer cancel()

		if err := s.ntfy.Publish(ctx, event); err != nil {
			s.log.Warn().Err(err).
				Str("event", string(event.Type)).
				Str("book_id", event.BookID.String()).
				Msg("notification not delivered")
		}
	}()
}
