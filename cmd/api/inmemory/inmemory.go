package inmemory

import (
	"bytes"
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/book-network/cmd/api/book"
	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
)

const (
	tableBook     = "book"
	tableLoan     = "loan"
	tableFeedback = "feedback"
	tableCover    = "cover"
)

type InMemoryStore struct {
	db  *memdb.MemDB
	seq *atomic.Uint64
	exc *memdb.Txn // only set on stores returned by BeginTx
}

func NewInMemoryStore() (*InMemoryStore, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableBook: {
				Name: tableBook,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					"seq": {
						Name:    "seq",
						Unique:  true,
						Indexer: &memdb.UintFieldIndex{Field: "Seq"},
					},
					"owner_id": {
						Name:    "owner_id",
						Indexer: &memdb.StringFieldIndex{Field: "OwnerID"},
					},
				},
			},
			tableLoan: {
				Name: tableLoan,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					"seq": {
						Name:    "seq",
						Unique:  true,
						Indexer: &memdb.UintFieldIndex{Field: "Seq"},
					},
					"book_id": {
						Name:    "book_id",
						Indexer: &memdb.StringFieldIndex{Field: "BookID"},
					},
					"book_borrower": { // Composite index for the loans of one borrower on one book.
						Name: "book_borrower",
						Indexer: &memdb.CompoundIndex{
							Indexes: []memdb.Indexer{
								&memdb.StringFieldIndex{Field: "BookID"},
								&memdb.StringFieldIndex{Field: "BorrowerID"},
							},
						},
					},
				},
			},
			tableFeedback: {
				Name: tableFeedback,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					"seq": {
						Name:    "seq",
						Unique:  true,
						Indexer: &memdb.UintFieldIndex{Field: "Seq"},
					},
					"loan_id": {
						Name:    "loan_id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "LoanID"},
					},
					"book_id": {
						Name:    "book_id",
						Indexer: &memdb.StringFieldIndex{Field: "BookID"},
					},
				},
			},
			tableCover: {
				Name: tableCover,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "BookID"},
					},
				},
			},
		},
	}

	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("validating in-memory schema: %w", err)
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize in-memory database: %w", err)
	}
	return &InMemoryStore{db: db, seq: new(atomic.Uint64)}, nil
}

/* Returns the transaction bound to the store, or a new one that done releases. */
func (store *InMemoryStore) txn(write bool) (txn *memdb.Txn, done func()) {
	if store.exc != nil {
		return store.exc, func() {}
	}
	txn = store.db.Txn(write)
	return txn, txn.Abort
}

/* Commits txn unless it belongs to a larger transaction, which commits on its own. */
func (store *InMemoryStore) commit(txn *memdb.Txn) {
	if store.exc == nil {
		txn.Commit()
	}
}

func (store *InMemoryStore) nextSeq() uint64 {
	return store.seq.Add(1)
}

// -- Books --

type AdaptedBook struct {
	ID         string
	Seq        uint64
	Title      string
	AuthorName string
	ISBN       string
	Synopsis   string
	OwnerID    string
	Shareable  bool
	Archived   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func adaptBookIdToString(b book.Book) AdaptedBook {
	return AdaptedBook{
		ID:         b.ID.String(),
		Seq:        b.Seq,
		Title:      b.Title,
		AuthorName: b.AuthorName,
		ISBN:       b.ISBN,
		Synopsis:   b.Synopsis,
		OwnerID:    b.OwnerID.String(),
		Shareable:  b.Shareable,
		Archived:   b.Archived,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func adaptBookIdToUUID(b AdaptedBook) book.Book {
	return book.Book{
		ID:         uuid.MustParse(b.ID),
		Seq:        b.Seq,
		Title:      b.Title,
		AuthorName: b.AuthorName,
		ISBN:       b.ISBN,
		Synopsis:   b.Synopsis,
		OwnerID:    uuid.MustParse(b.OwnerID),
		Shareable:  b.Shareable,
		Archived:   b.Archived,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func (store *InMemoryStore) CreateBook(ctx context.Context, bookEntry book.Book) (book.Book, error) {
	txn, done := store.txn(true)
	defer done()

	bookEntry.Seq = store.nextSeq()
	if err := txn.Insert(tableBook, adaptBookIdToString(bookEntry)); err != nil {
		return book.Book{}, fmt.Errorf("storing book on db: %w", err)
	}

	store.commit(txn)
	return bookEntry, nil
}

func (store *InMemoryStore) GetBookByID(ctx context.Context, id uuid.UUID) (book.Book, error) {
	txn, done := store.txn(false)
	defer done()

	b, err := getBook(txn, id.String())
	if err != nil {
		return book.Book{}, fmt.Errorf("searching by ID: %w", err)
	}
	return adaptBookIdToUUID(b), nil
}

func getBook(txn *memdb.Txn, id string) (AdaptedBook, error) {
	raw, err := txn.First(tableBook, "id", id)
	if err != nil {
		return AdaptedBook{}, err
	}
	if raw == nil {
		return AdaptedBook{}, book.ErrResponseBookNotFound
	}
	return raw.(AdaptedBook), nil
}

/* Only the shareable and archived flags (and updated_at) change; everything else is kept. */
func (store *InMemoryStore) UpdateBookFlags(ctx context.Context, bookEntry book.Book) (book.Book, error) {
	txn, done := store.txn(true)
	defer done()

	stored, err := getBook(txn, bookEntry.ID.String())
	if err != nil {
		return book.Book{}, fmt.Errorf("updating book flags on db: %w", err)
	}

	stored.Shareable = bookEntry.Shareable
	stored.Archived = bookEntry.Archived
	stored.UpdatedAt = bookEntry.UpdatedAt

	if err := txn.Insert(tableBook, stored); err != nil {
		return book.Book{}, fmt.Errorf("updating book flags on db: %w", err)
	}

	store.commit(txn)
	return adaptBookIdToUUID(stored), nil
}

func (store *InMemoryStore) ListBooks(ctx context.Context, filter book.BookFilter, page book.PageRequest) ([]book.Book, error) {
	txn, done := store.txn(false)
	defer done()

	it, err := txn.Get(tableBook, "seq")
	if err != nil {
		return nil, fmt.Errorf("listing books from db: %w", err)
	}

	books := []book.Book{}
	skipped := 0
	for obj := it.Next(); obj != nil && len(books) < page.Size; obj = it.Next() {
		b := adaptBookIdToUUID(obj.(AdaptedBook))
		if !filter.Match(b) {
			continue
		}
		if skipped < page.Offset() {
			skipped++
			continue
		}
		books = append(books, b)
	}

	return books, nil
}

func (store *InMemoryStore) ListBooksTotals(ctx context.Context, filter book.BookFilter) (int, error) {
	txn, done := store.txn(false)
	defer done()

	it, err := txn.Get(tableBook, "seq")
	if err != nil {
		return 0, fmt.Errorf("counting books from db: %w", err)
	}

	count := 0
	for obj := it.Next(); obj != nil; obj = it.Next() {
		if filter.Match(adaptBookIdToUUID(obj.(AdaptedBook))) {
			count++
		}
	}
	return count, nil
}

// -- Covers --

type AdaptedCover struct {
	BookID string
	Data   []byte
}

func (store *InMemoryStore) SaveCover(ctx context.Context, bookID uuid.UUID, cover []byte) error {
	txn, done := store.txn(true)
	defer done()

	if err := txn.Insert(tableCover, AdaptedCover{BookID: bookID.String(), Data: bytes.Clone(cover)}); err != nil {
		return fmt.Errorf("storing cover on db: %w", err)
	}

	store.commit(txn)
	return nil
}

func (store *InMemoryStore) GetCover(ctx context.Context, bookID uuid.UUID) ([]byte, error) {
	txn, done := store.txn(false)
	defer done()

	raw, err := txn.First(tableCover, "id", bookID.String())
	if err != nil {
		return nil, fmt.Errorf("getting cover from db: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("getting cover from db: %w", book.ErrResponseCoverNotFound)
	}
	return bytes.Clone(raw.(AdaptedCover).Data), nil
}

// -- Loans --

type AdaptedLoan struct {
	ID         string
	Seq        uint64
	BookID     string
	BorrowerID string
	BorrowedAt time.Time
	ReturnedAt *time.Time
	Approved   bool
}

func adaptLoanIdToString(l book.Loan) AdaptedLoan {
	return AdaptedLoan{
		ID:         l.ID.String(),
		Seq:        l.Seq,
		BookID:     l.BookID.String(),
		BorrowerID: l.BorrowerID.String(),
		BorrowedAt: l.BorrowedAt,
		ReturnedAt: l.ReturnedAt,
		Approved:   l.Approved,
	}
}

func adaptLoanIdToUUID(l AdaptedLoan) book.Loan {
	return book.Loan{
		ID:         uuid.MustParse(l.ID),
		Seq:        l.Seq,
		BookID:     uuid.MustParse(l.BookID),
		BorrowerID: uuid.MustParse(l.BorrowerID),
		BorrowedAt: l.BorrowedAt,
		ReturnedAt: l.ReturnedAt,
		Approved:   l.Approved,
	}
}

/* Refuses a second active loan on the same book, like the partial unique index of the sql schema. */
func (store *InMemoryStore) CreateLoan(ctx context.Context, l book.Loan) (book.Loan, error) {
	txn, done := store.txn(true)
	defer done()

	active, err := activeLoan(txn, l.BookID.String())
	if err != nil {
		return book.Loan{}, fmt.Errorf("storing loan on db: %w", err)
	}
	if active != nil {
		return book.Loan{}, fmt.Errorf("storing loan on db: %w", book.ErrResponseBookAlreadyBorrowed)
	}

	l.Seq = store.nextSeq()
	if err := txn.Insert(tableLoan, adaptLoanIdToString(l)); err != nil {
		return book.Loan{}, fmt.Errorf("storing loan on db: %w", err)
	}

	store.commit(txn)
	return l, nil
}

/* Only the return date and the approval flag can change on a loan. */
func (store *InMemoryStore) UpdateLoan(ctx context.Context, l book.Loan) (book.Loan, error) {
	txn, done := store.txn(true)
	defer done()

	raw, err := txn.First(tableLoan, "id", l.ID.String())
	if err != nil {
		return book.Loan{}, fmt.Errorf("updating loan on db: %w", err)
	}
	if raw == nil {
		return book.Loan{}, fmt.Errorf("updating loan on db: %w", book.ErrResponseLoanNotFound)
	}

	stored := raw.(AdaptedLoan)
	stored.ReturnedAt = l.ReturnedAt
	stored.Approved = l.Approved

	if err := txn.Insert(tableLoan, stored); err != nil {
		return book.Loan{}, fmt.Errorf("updating loan on db: %w", err)
	}

	store.commit(txn)
	return adaptLoanIdToUUID(stored), nil
}

func (store *InMemoryStore) GetLoanByID(ctx context.Context, id uuid.UUID) (book.Loan, error) {
	txn, done := store.txn(false)
	defer done()

	raw, err := txn.First(tableLoan, "id", id.String())
	if err != nil {
		return book.Loan{}, fmt.Errorf("searching loan by ID: %w", err)
	}
	if raw == nil {
		return book.Loan{}, fmt.Errorf("searching loan by ID: %w", book.ErrResponseLoanNotFound)
	}
	return adaptLoanIdToUUID(raw.(AdaptedLoan)), nil
}

func (store *InMemoryStore) GetActiveLoan(ctx context.Context, bookID uuid.UUID) (book.Loan, error) {
	txn, done := store.txn(false)
	defer done()

	active, err := activeLoan(txn, bookID.String())
	if err != nil {
		return book.Loan{}, fmt.Errorf("searching active loan: %w", err)
	}
	if active == nil {
		return book.Loan{}, fmt.Errorf("searching active loan: %w", book.ErrResponseLoanNotFound)
	}
	return adaptLoanIdToUUID(*active), nil
}

func activeLoan(txn *memdb.Txn, bookID string) (*AdaptedLoan, error) {
	it, err := txn.Get(tableLoan, "book_id", bookID)
	if err != nil {
		return nil, err
	}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		l := obj.(AdaptedLoan)
		if l.ReturnedAt == nil {
			return &l, nil
		}
	}
	return nil, nil
}

func (store *InMemoryStore) GetLatestLoan(ctx context.Context, bookID, borrowerID uuid.UUID) (book.Loan, error) {
	txn, done := store.txn(false)
	defer done()

	it, err := txn.Get(tableLoan, "book_borrower", bookID.String(), borrowerID.String())
	if err != nil {
		return book.Loan{}, fmt.Errorf("searching latest loan: %w", err)
	}

	var latest *AdaptedLoan
	for obj := it.Next(); obj != nil; obj = it.Next() {
		l := obj.(AdaptedLoan)
		if latest == nil || l.Seq > latest.Seq {
			latest = &l
		}
	}
	if latest == nil {
		return book.Loan{}, fmt.Errorf("searching latest loan: %w", book.ErrResponseLoanNotFound)
	}
	return adaptLoanIdToUUID(*latest), nil
}

func (store *InMemoryStore) GetOldestReturnedLoan(ctx context.Context, bookID uuid.UUID) (book.Loan, error) {
	txn, done := store.txn(false)
	defer done()

	it, err := txn.Get(tableLoan, "book_id", bookID.String())
	if err != nil {
		return book.Loan{}, fmt.Errorf("searching returned loan: %w", err)
	}

	var oldest *AdaptedLoan
	for obj := it.Next(); obj != nil; obj = it.Next() {
		l := obj.(AdaptedLoan)
		if l.ReturnedAt == nil || l.Approved {
			continue
		}
		if oldest == nil || l.Seq < oldest.Seq {
			oldest = &l
		}
	}
	if oldest == nil {
		return book.Loan{}, fmt.Errorf("searching returned loan: %w", book.ErrResponseLoanNotFound)
	}
	return adaptLoanIdToUUID(*oldest), nil
}

func (store *InMemoryStore) ListLoans(ctx context.Context, filter book.LoanFilter, page book.PageRequest) ([]book.BorrowedBook, error) {
	txn, done := store.txn(false)
	defer done()

	results := []book.BorrowedBook{}
	skipped := 0
	err := eachBorrowedBook(txn, filter, func(bb book.BorrowedBook) bool {
		if skipped < page.Offset() {
			skipped++
			return true
		}
		results = append(results, bb)
		return len(results) < page.Size
	})
	if err != nil {
		return nil, fmt.Errorf("listing loans from db: %w", err)
	}
	return results, nil
}

func (store *InMemoryStore) ListLoansTotals(ctx context.Context, filter book.LoanFilter) (int, error) {
	txn, done := store.txn(false)
	defer done()

	count := 0
	err := eachBorrowedBook(txn, filter, func(book.BorrowedBook) bool {
		count++
		return true
	})
	if err != nil {
		return 0, fmt.Errorf("counting loans from db: %w", err)
	}
	return count, nil
}

/* Walks the loans in creation order, joined with their book, calling fn for each match until it returns false. */
func eachBorrowedBook(txn *memdb.Txn, filter book.LoanFilter, fn func(book.BorrowedBook) bool) error {
	it, err := txn.Get(tableLoan, "seq")
	if err != nil {
		return err
	}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		l := adaptLoanIdToUUID(obj.(AdaptedLoan))
		b, err := getBook(txn, l.BookID.String())
		if err != nil {
			return err
		}
		bb := book.BorrowedBook{Loan: l, Book: adaptBookIdToUUID(b)}
		if !filter.Match(bb.Loan, bb.Book) {
			continue
		}
		if !fn(bb) {
			return nil
		}
	}
	return nil
}

// -- Feedbacks --

type AdaptedFeedback struct {
	ID        string
	Seq       uint64
	LoanID    string
	BookID    string
	AuthorID  string
	Note      float64
	Comment   string
	CreatedAt time.Time
}

func adaptFeedbackIdToString(f book.Feedback) AdaptedFeedback {
	return AdaptedFeedback{
		ID:        f.ID.String(),
		Seq:       f.Seq,
		LoanID:    f.LoanID.String(),
		BookID:    f.BookID.String(),
		AuthorID:  f.AuthorID.String(),
		Note:      f.Note,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
	}
}

func adaptFeedbackIdToUUID(f AdaptedFeedback) book.Feedback {
	return book.Feedback{
		ID:        uuid.MustParse(f.ID),
		Seq:       f.Seq,
		LoanID:    uuid.MustParse(f.LoanID),
		BookID:    uuid.MustParse(f.BookID),
		AuthorID:  uuid.MustParse(f.AuthorID),
		Note:      f.Note,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
	}
}

/* memdb does not enforce unique secondary indexes, so the one-feedback-per-loan rule is checked here. */
func (store *InMemoryStore) CreateFeedback(ctx context.Context, f book.Feedback) (book.Feedback, error) {
	txn, done := store.txn(true)
	defer done()

	raw, err := txn.First(tableFeedback, "loan_id", f.LoanID.String())
	if err != nil {
		return book.Feedback{}, fmt.Errorf("storing feedback on db: %w", err)
	}
	if raw != nil {
		return book.Feedback{}, fmt.Errorf("storing feedback on db: %w", book.ErrResponseFeedbackAlreadyGiven)
	}

	f.Seq = store.nextSeq()
	if err := txn.Insert(tableFeedback, adaptFeedbackIdToString(f)); err != nil {
		return book.Feedback{}, fmt.Errorf("storing feedback on db: %w", err)
	}

	store.commit(txn)
	return f, nil
}

func (store *InMemoryStore) GetFeedbackByLoanID(ctx context.Context, loanID uuid.UUID) (book.Feedback, error) {
	txn, done := store.txn(false)
	defer done()

	raw, err := txn.First(tableFeedback, "loan_id", loanID.String())
	if err != nil {
		return book.Feedback{}, fmt.Errorf("searching feedback by loan: %w", err)
	}
	if raw == nil {
		return book.Feedback{}, fmt.Errorf("searching feedback by loan: %w", book.ErrResponseFeedbackNotFound)
	}
	return adaptFeedbackIdToUUID(raw.(AdaptedFeedback)), nil
}

func (store *InMemoryStore) ListFeedbacks(ctx context.Context, bookID uuid.UUID, page book.PageRequest) ([]book.Feedback, error) {
	txn, done := store.txn(false)
	defer done()

	it, err := txn.Get(tableFeedback, "seq")
	if err != nil {
		return nil, fmt.Errorf("listing feedbacks from db: %w", err)
	}

	feedbacks := []book.Feedback{}
	skipped := 0
	for obj := it.Next(); obj != nil && len(feedbacks) < page.Size; obj = it.Next() {
		f := obj.(AdaptedFeedback)
		if f.BookID != bookID.String() {
			continue
		}
		if skipped < page.Offset() {
			skipped++
			continue
		}
		feedbacks = append(feedbacks, adaptFeedbackIdToUUID(f))
	}
	return feedbacks, nil
}

func (store *InMemoryStore) ListFeedbacksTotals(ctx context.Context, bookID uuid.UUID) (int, error) {
	txn, done := store.txn(false)
	defer done()

	it, err := txn.Get(tableFeedback, "book_id", bookID.String())
	if err != nil {
		return 0, fmt.Errorf("counting feedbacks from db: %w", err)
	}

	count := 0
	for obj := it.Next(); obj != nil; obj = it.Next() {
		count++
	}
	return count, nil
}

// -- Transactions --

// BeginTx opens a memdb write transaction. memdb has a single writer lock, so write transactions
// on different books run one after the other.
func (store *InMemoryStore) BeginTx(ctx context.Context, opts *sql.TxOptions) (book.Repository, driver.Tx, error) {
	txn := store.db.Txn(true)
	if txn == nil {
		return nil, nil, fmt.Errorf("failed to create transaction")
	}

	txStore := &InMemoryStore{
		db:  store.db,
		seq: store.seq,
		exc: txn,
	}
	return txStore, &TxWrapper{txn: txn}, nil
}

type TxWrapper struct {
	txn *memdb.Txn
}

func (tx *TxWrapper) Commit() error {
	tx.txn.Commit()
	return nil
}

func (tx *TxWrapper) Rollback() error {
	tx.txn.Abort()
	return nil
}
