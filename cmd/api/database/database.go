package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/book-network/cmd/api/book"
	"github.com/book-network/cmd/api/logger"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	_ "github.com/golang-migrate/migrate/v4/source/file"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

const (
	DriverPQ  = "postgres"
	DriverPGX = "pgx"

	tableBooks     = "books"
	tableLoans     = "loans"
	tableFeedbacks = "feedbacks"
	tableCovers    = "book_covers"

	constraintActiveLoan     = "loans_active_book_idx"
	constraintFeedbackOnLoan = "feedbacks_loan_id_key"
)

var dialect = goqu.Dialect("postgres")

var (
	bookColumns     = []any{"id", "seq", "title", "author_name", "isbn", "synopsis", "owner_id", "shareable", "archived", "created_at", "updated_at"}
	loanColumns     = []any{"id", "seq", "book_id", "borrower_id", "borrowed_at", "returned_at", "approved"}
	feedbackColumns = []any{"id", "seq", "loan_id", "book_id", "author_id", "note", "comment", "created_at"}
)

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

type Store struct {
	db  *sqlx.DB
	exc DBTX
	tx  bool
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db:  db,
		exc: db,
	}
}

func (store *Store) BeginTx(ctx context.Context, opts *sql.TxOptions) (book.Repository, driver.Tx, error) {
	tx, err := store.db.BeginTxx(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("beginning transaction: %w", mapErr(err))
	}

	txRepo := &Store{db: store.db, exc: tx, tx: true}
	return txRepo, &TxWrapper{tx: tx}, nil
}

/* Commit errors carry the same meaning as statement errors: a serialization failure is a lost race. */
type TxWrapper struct {
	tx *sqlx.Tx
}

func (w *TxWrapper) Commit() error {
	return mapErr(w.tx.Commit())
}

func (w *TxWrapper) Rollback() error {
	return w.tx.Rollback()
}

/* Connects to the database through a connection string and returns a pooled, pinged *sqlx.DB. */
func ConnectDb(ctx context.Context, driverName, connStr string) (*sqlx.DB, error) {
	if driverName == "" {
		driverName = DriverPQ
	}

	db, err := sqlx.Open(driverName, connStr)
	if err != nil {
		return nil, fmt.Errorf("connecting to db, opening: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to db, pinging: %w", err)
	}

	logger.Get().Info().Str("driver", driverName).Msg("connected to database")
	return db, nil
}

/* Applies every pending migration found under path. migrate.ErrNoChange is not an error. */
func MigrationUp(store *Store, path string) error {
	driver, err := postgres.WithInstance(store.db.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migrating up: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", path),
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("migrating up: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrating up: %w", err)
	}
	return nil
}

// -- Books --

type bookRow struct {
	ID         uuid.UUID `db:"id"`
	Seq        uint64    `db:"seq"`
	Title      string    `db:"title"`
	AuthorName string    `db:"author_name"`
	ISBN       string    `db:"isbn"`
	Synopsis   string    `db:"synopsis"`
	OwnerID    uuid.UUID `db:"owner_id"`
	Shareable  bool      `db:"shareable"`
	Archived   bool      `db:"archived"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r bookRow) toBook() book.Book {
	return book.Book{
		ID:         r.ID,
		Seq:        r.Seq,
		Title:      r.Title,
		AuthorName: r.AuthorName,
		ISBN:       r.ISBN,
		Synopsis:   r.Synopsis,
		OwnerID:    r.OwnerID,
		Shareable:  r.Shareable,
		Archived:   r.Archived,
		CreatedAt:  r.CreatedAt.UTC(),
		UpdatedAt:  r.UpdatedAt.UTC(),
	}
}

/* Stores the book into the database and returns it with its sequence number. */
func (store *Store) CreateBook(ctx context.Context, bookEntry book.Book) (book.Book, error) {
	query, args, err := dialect.Insert(tableBooks).Prepared(true).
		Rows(goqu.Record{
			"id":          bookEntry.ID,
			"title":       bookEntry.Title,
			"author_name": bookEntry.AuthorName,
			"isbn":        bookEntry.ISBN,
			"synopsis":    bookEntry.Synopsis,
			"owner_id":    bookEntry.OwnerID,
			"shareable":   bookEntry.Shareable,
			"archived":    bookEntry.Archived,
			"created_at":  bookEntry.CreatedAt,
			"updated_at":  bookEntry.UpdatedAt,
		}).
		Returning(bookColumns...).
		ToSQL()
	if err != nil {
		return book.Book{}, fmt.Errorf("building book insert: %w", err)
	}

	var row bookRow
	if err := store.exc.GetContext(ctx, &row, query, args...); err != nil {
		return book.Book{}, fmt.Errorf("storing book on db: %w", mapErr(err))
	}
	return row.toBook(), nil
}

/* Inside a transaction the row stays locked until commit. */
func (store *Store) GetBookByID(ctx context.Context, id uuid.UUID) (book.Book, error) {
	ds := dialect.From(tableBooks).Prepared(true).
		Select(bookColumns...).
		Where(goqu.C("id").Eq(id))
	if store.tx {
		ds = ds.ForUpdate(exp.Wait)
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return book.Book{}, fmt.Errorf("building book select: %w", err)
	}

	var row bookRow
	if err := store.exc.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return book.Book{}, fmt.Errorf("searching by ID: %w", book.ErrResponseBookNotFound)
		}
		return book.Book{}, fmt.Errorf("searching by ID: %w", mapErr(err))
	}
	return row.toBook(), nil
}

func (store *Store) UpdateBookFlags(ctx context.Context, bookEntry book.Book) (book.Book, error) {
	query, args, err := dialect.Update(tableBooks).Prepared(true).
		Set(goqu.Record{
			"shareable":  bookEntry.Shareable,
			"archived":   bookEntry.Archived,
			"updated_at": bookEntry.UpdatedAt,
		}).
		Where(goqu.C("id").Eq(bookEntry.ID)).
		Returning(bookColumns...).
		ToSQL()
	if err != nil {
		return book.Book{}, fmt.Errorf("building book update: %w", err)
	}

	var row bookRow
	if err := store.exc.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return book.Book{}, fmt.Errorf("updating book flags on db: %w", book.ErrResponseBookNotFound)
		}
		return book.Book{}, fmt.Errorf("updating book flags on db: %w", mapErr(err))
	}
	return row.toBook(), nil
}

func bookFilterExpression(filter book.BookFilter) exp.Expression {
	switch filter.Scope {
	case book.ScopeCatalog:
		return goqu.And(
			goqu.C("archived").IsFalse(),
			goqu.C("shareable").IsTrue(),
			goqu.C("owner_id").Neq(filter.ActorID),
		)
	case book.ScopeOwned:
		return goqu.C("owner_id").Eq(filter.ActorID)
	default:
		return goqu.L("FALSE")
	}
}

/* Returns one page of the books matching the filter, in creation order. */
func (store *Store) ListBooks(ctx context.Context, filter book.BookFilter, page book.PageRequest) ([]book.Book, error) {
	query, args, err := dialect.From(tableBooks).Prepared(true).
		Select(bookColumns...).
		Where(bookFilterExpression(filter)).
		Order(goqu.C("seq").Asc()).
		Limit(uint(page.Size)).
		Offset(uint(page.Offset())).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("building book list: %w", err)
	}

	var rows []bookRow
	if err := store.exc.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("listing books from db: %w", mapErr(err))
	}

	books := make([]book.Book, 0, len(rows))
	for _, r := range rows {
		books = append(books, r.toBook())
	}
	return books, nil
}

/* Counts how many rows in db fit the filter. */
func (store *Store) ListBooksTotals(ctx context.Context, filter book.BookFilter) (int, error) {
	query, args, err := dialect.From(tableBooks).Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(bookFilterExpression(filter)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("building book count: %w", err)
	}

	var count int
	if err := store.exc.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("counting books from db: %w", mapErr(err))
	}
	return count, nil
}

// -- Covers --

func (store *Store) SaveCover(ctx context.Context, bookID uuid.UUID, cover []byte) error {
	query, args, err := dialect.Insert(tableCovers).Prepared(true).
		Rows(goqu.Record{"book_id": bookID, "data": cover}).
		OnConflict(goqu.DoUpdate("book_id", goqu.Record{"data": goqu.L("EXCLUDED.data")})).
		ToSQL()
	if err != nil {
		return fmt.Errorf("building cover upsert: %w", err)
	}

	if _, err := store.exc.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("storing cover on db: %w", mapErr(err))
	}
	return nil
}

func (store *Store) GetCover(ctx context.Context, bookID uuid.UUID) ([]byte, error) {
	query, args, err := dialect.From(tableCovers).Prepared(true).
		Select("data").
		Where(goqu.C("book_id").Eq(bookID)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("building cover select: %w", err)
	}

	var data []byte
	if err := store.exc.GetContext(ctx, &data, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("getting cover from db: %w", book.ErrResponseCoverNotFound)
		}
		return nil, fmt.Errorf("getting cover from db: %w", mapErr(err))
	}
	return data, nil
}

// -- Loans --

type loanRow struct {
	ID         uuid.UUID  `db:"id"`
	Seq        uint64     `db:"seq"`
	BookID     uuid.UUID  `db:"book_id"`
	BorrowerID uuid.UUID  `db:"borrower_id"`
	BorrowedAt time.Time  `db:"borrowed_at"`
	ReturnedAt *time.Time `db:"returned_at"`
	Approved   bool       `db:"approved"`
}

func (r loanRow) toLoan() book.Loan {
	l := book.Loan{
		ID:         r.ID,
		Seq:        r.Seq,
		BookID:     r.BookID,
		BorrowerID: r.BorrowerID,
		BorrowedAt: r.BorrowedAt.UTC(),
		Approved:   r.Approved,
	}
	if r.ReturnedAt != nil {
		returnedAt := r.ReturnedAt.UTC()
		l.ReturnedAt = &returnedAt
	}
	return l
}

/* A second active loan on the book violates loans_active_book_idx and is reported as a lost race. */
func (store *Store) CreateLoan(ctx context.Context, l book.Loan) (book.Loan, error) {
	query, args, err := dialect.Insert(tableLoans).Prepared(true).
		Rows(goqu.Record{
			"id":          l.ID,
			"book_id":     l.BookID,
			"borrower_id": l.BorrowerID,
			"borrowed_at": l.BorrowedAt,
			"approved":    l.Approved,
		}).
		Returning(loanColumns...).
		ToSQL()
	if err != nil {
		return book.Loan{}, fmt.Errorf("building loan insert: %w", err)
	}

	var row loanRow
	if err := store.exc.GetContext(ctx, &row, query, args...); err != nil {
		return book.Loan{}, fmt.Errorf("storing loan on db: %w", mapErr(err))
	}
	return row.toLoan(), nil
}

func (store *Store) UpdateLoan(ctx context.Context, l book.Loan) (book.Loan, error) {
	var returnedAt any
	if l.ReturnedAt != nil {
		returnedAt = *l.ReturnedAt
	}

	query, args, err := dialect.Update(tableLoans).Prepared(true).
		Set(goqu.Record{
			"returned_at": returnedAt,
			"approved":    l.Approved,
		}).
		Where(goqu.C("id").Eq(l.ID)).
		Returning(loanColumns...).
		ToSQL()
	if err != nil {
		return book.Loan{}, fmt.Errorf("building loan update: %w", err)
	}

	var row loanRow
	if err := store.exc.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return book.Loan{}, fmt.Errorf("updating loan on db: %w", book.ErrResponseLoanNotFound)
		}
		return book.Loan{}, fmt.Errorf("updating loan on db: %w", mapErr(err))
	}
	return row.toLoan(), nil
}

func (store *Store) getLoan(ctx context.Context, call string, where exp.Expression, order exp.OrderedExpression) (book.Loan, error) {
	ds := dialect.From(tableLoans).Prepared(true).
		Select(loanColumns...).
		Where(where).
		Limit(1)
	if order != nil {
		ds = ds.Order(order)
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return book.Loan{}, fmt.Errorf("building loan select: %w", err)
	}

	var row loanRow
	if err := store.exc.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return book.Loan{}, fmt.Errorf("%s: %w", call, book.ErrResponseLoanNotFound)
		}
		return book.Loan{}, fmt.Errorf("%s: %w", call, mapErr(err))
	}
	return row.toLoan(), nil
}

func (store *Store) GetLoanByID(ctx context.Context, id uuid.UUID) (book.Loan, error) {
	return store.getLoan(ctx, "searching loan by ID", goqu.C("id").Eq(id), nil)
}

func (store *Store) GetActiveLoan(ctx context.Context, bookID uuid.UUID) (book.Loan, error) {
	return store.getLoan(ctx, "searching active loan",
		goqu.And(goqu.C("book_id").Eq(bookID), goqu.C("returned_at").IsNull()),
		nil)
}

func (store *Store) GetLatestLoan(ctx context.Context, bookID, borrowerID uuid.UUID) (book.Loan, error) {
	return store.getLoan(ctx, "searching latest loan",
		goqu.And(goqu.C("book_id").Eq(bookID), goqu.C("borrower_id").Eq(borrowerID)),
		goqu.C("seq").Desc())
}

func (store *Store) GetOldestReturnedLoan(ctx context.Context, bookID uuid.UUID) (book.Loan, error) {
	return store.getLoan(ctx, "searching returned loan",
		goqu.And(
			goqu.C("book_id").Eq(bookID),
			goqu.C("returned_at").IsNotNull(),
			goqu.C("approved").IsFalse(),
		),
		goqu.C("seq").Asc())
}

type borrowedBookRow struct {
	LoanID        uuid.UUID  `db:"loan_id"`
	LoanSeq       uint64     `db:"loan_seq"`
	BorrowerID    uuid.UUID  `db:"borrower_id"`
	BorrowedAt    time.Time  `db:"borrowed_at"`
	ReturnedAt    *time.Time `db:"returned_at"`
	Approved      bool       `db:"approved"`
	BookID        uuid.UUID  `db:"book_id"`
	BookSeq       uint64     `db:"book_seq"`
	Title         string     `db:"title"`
	AuthorName    string     `db:"author_name"`
	ISBN          string     `db:"isbn"`
	Synopsis      string     `db:"synopsis"`
	OwnerID       uuid.UUID  `db:"owner_id"`
	Shareable     bool       `db:"shareable"`
	Archived      bool       `db:"archived"`
	BookCreatedAt time.Time  `db:"book_created_at"`
	BookUpdatedAt time.Time  `db:"book_updated_at"`
}

func (r borrowedBookRow) toBorrowedBook() book.BorrowedBook {
	loan := loanRow{
		ID:         r.LoanID,
		Seq:        r.LoanSeq,
		BookID:     r.BookID,
		BorrowerID: r.BorrowerID,
		BorrowedAt: r.BorrowedAt,
		ReturnedAt: r.ReturnedAt,
		Approved:   r.Approved,
	}
	b := bookRow{
		ID:         r.BookID,
		Seq:        r.BookSeq,
		Title:      r.Title,
		AuthorName: r.AuthorName,
		ISBN:       r.ISBN,
		Synopsis:   r.Synopsis,
		OwnerID:    r.OwnerID,
		Shareable:  r.Shareable,
		Archived:   r.Archived,
		CreatedAt:  r.BookCreatedAt,
		UpdatedAt:  r.BookUpdatedAt,
	}
	return book.BorrowedBook{Loan: loan.toLoan(), Book: b.toBook()}
}

func loanFilterExpression(filter book.LoanFilter) exp.Expression {
	l, b := goqu.T(tableLoans), goqu.T(tableBooks)
	switch filter.Scope {
	case book.ScopeActiveLoans:
		return goqu.And(
			l.Col("borrower_id").Eq(filter.ActorID),
			l.Col("returned_at").IsNull(),
		)
	case book.ScopePendingApproval:
		return goqu.And(
			b.Col("owner_id").Eq(filter.ActorID),
			l.Col("returned_at").IsNotNull(),
			l.Col("approved").IsFalse(),
		)
	default:
		return goqu.L("FALSE")
	}
}

func (store *Store) ListLoans(ctx context.Context, filter book.LoanFilter, page book.PageRequest) ([]book.BorrowedBook, error) {
	l, b := goqu.T(tableLoans), goqu.T(tableBooks)

	query, args, err := dialect.From(l).Prepared(true).
		Join(b, goqu.On(l.Col("book_id").Eq(b.Col("id")))).
		Select(
			l.Col("id").As("loan_id"),
			l.Col("seq").As("loan_seq"),
			l.Col("borrower_id"),
			l.Col("borrowed_at"),
			l.Col("returned_at"),
			l.Col("approved"),
			b.Col("id").As("book_id"),
			b.Col("seq").As("book_seq"),
			b.Col("title"),
			b.Col("author_name"),
			b.Col("isbn"),
			b.Col("synopsis"),
			b.Col("owner_id"),
			b.Col("shareable"),
			b.Col("archived"),
			b.Col("created_at").As("book_created_at"),
			b.Col("updated_at").As("book_updated_at"),
		).
		Where(loanFilterExpression(filter)).
		Order(l.Col("seq").Asc()).
		Limit(uint(page.Size)).
		Offset(uint(page.Offset())).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("building loan list: %w", err)
	}

	var rows []borrowedBookRow
	if err := store.exc.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("listing loans from db: %w", mapErr(err))
	}

	results := make([]book.BorrowedBook, 0, len(rows))
	for _, r := range rows {
		results = append(results, r.toBorrowedBook())
	}
	return results, nil
}

func (store *Store) ListLoansTotals(ctx context.Context, filter book.LoanFilter) (int, error) {
	l, b := goqu.T(tableLoans), goqu.T(tableBooks)

	query, args, err := dialect.From(l).Prepared(true).
		Join(b, goqu.On(l.Col("book_id").Eq(b.Col("id")))).
		Select(goqu.COUNT(goqu.Star())).
		Where(loanFilterExpression(filter)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("building loan count: %w", err)
	}

	var count int
	if err := store.exc.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("counting loans from db: %w", mapErr(err))
	}
	return count, nil
}

// -- Feedbacks --

type feedbackRow struct {
	ID        uuid.UUID `db:"id"`
	Seq       uint64    `db:"seq"`
	LoanID    uuid.UUID `db:"loan_id"`
	BookID    uuid.UUID `db:"book_id"`
	AuthorID  uuid.UUID `db:"author_id"`
	Note      float64   `db:"note"`
	Comment   string    `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
}

func (r feedbackRow) toFeedback() book.Feedback {
	return book.Feedback{
		ID:        r.ID,
		Seq:       r.Seq,
		LoanID:    r.LoanID,
		BookID:    r.BookID,
		AuthorID:  r.AuthorID,
		Note:      r.Note,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

func (store *Store) CreateFeedback(ctx context.Context, f book.Feedback) (book.Feedback, error) {
	query, args, err := dialect.Insert(tableFeedbacks).Prepared(true).
		Rows(goqu.Record{
			"id":         f.ID,
			"loan_id":    f.LoanID,
			"book_id":    f.BookID,
			"author_id":  f.AuthorID,
			"note":       f.Note,
			"comment":    f.Comment,
			"created_at": f.CreatedAt,
		}).
		Returning(feedbackColumns...).
		ToSQL()
	if err != nil {
		return book.Feedback{}, fmt.Errorf("building feedback insert: %w", err)
	}

	var row feedbackRow
	if err := store.exc.GetContext(ctx, &row, query, args...); err != nil {
		return book.Feedback{}, fmt.Errorf("storing feedback on db: %w", mapErr(err))
	}
	return row.toFeedback(), nil
}

func (store *Store) GetFeedbackByLoanID(ctx context.Context, loanID uuid.UUID) (book.Feedback, error) {
	query, args, err := dialect.From(tableFeedbacks).Prepared(true).
		Select(feedbackColumns...).
		Where(goqu.C("loan_id").Eq(loanID)).
		ToSQL()
	if err != nil {
		return book.Feedback{}, fmt.Errorf("building feedback select: %w", err)
	}

	var row feedbackRow
	if err := store.exc.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return book.Feedback{}, fmt.Errorf("searching feedback by loan: %w", book.ErrResponseFeedbackNotFound)
		}
		return book.Feedback{}, fmt.Errorf("searching feedback by loan: %w", mapErr(err))
	}
	return row.toFeedback(), nil
}

func (store *Store) ListFeedbacks(ctx context.Context, bookID uuid.UUID, page book.PageRequest) ([]book.Feedback, error) {
	query, args, err := dialect.From(tableFeedbacks).Prepared(true).
		Select(feedbackColumns...).
		Where(goqu.C("book_id").Eq(bookID)).
		Order(goqu.C("seq").Asc()).
		Limit(uint(page.Size)).
		Offset(uint(page.Offset())).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("building feedback list: %w", err)
	}

	var rows []feedbackRow
	if err := store.exc.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("listing feedbacks from db: %w", mapErr(err))
	}

	feedbacks := make([]book.Feedback, 0, len(rows))
	for _, r := range rows {
		feedbacks = append(feedbacks, r.toFeedback())
	}
	return feedbacks, nil
}

func (store *Store) ListFeedbacksTotals(ctx context.Context, bookID uuid.UUID) (int, error) {
	query, args, err := dialect.From(tableFeedbacks).Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C("book_id").Eq(bookID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("building feedback count: %w", err)
	}

	var count int
	if err := store.exc.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("counting feedbacks from db: %w", mapErr(err))
	}
	return count, nil
}
