package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/book-network/cmd/api/book"
	"github.com/book-network/cmd/api/logger"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const actorHeader = "X-User-ID"

// Upper bound of a JSON request body.
const maxJSONBody = 64 << 10

/* Reads the caller identity set by the gateway. Answers 401 when it is missing or malformed. */
func (h *BookHandler) actor(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	actorID, err := uuid.Parse(r.Header.Get(actorHeader))
	if err != nil || actorID == uuid.Nil {
		responseJSON(w, http.StatusUnauthorized, book.ErrResponseActorInvalid)
		return uuid.Nil, false
	}
	return actorID, true
}

/* Isolates the ID from the URL. */
func isolateId(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		responseJSON(w, http.StatusBadRequest, book.ErrResponseIdInvalidFormat)
		return uuid.Nil, false
	}
	return id, true
}

/* Reads at most maxJSONBody bytes of the request body. Answers 413 past that. */
func (h *BookHandler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if r.Body == nil {
		return nil, true
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			responseJSON(w, http.StatusRequestEntityTooLarge, book.ErrResponseBodyTooLarge)
			return nil, false
		}
		h.responseError(w, r, err)
		return nil, false
	}
	return body, true
}

func (h *BookHandler) decodeJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	body, ok := h.readBody(w, r)
	if !ok {
		return false
	}
	if err := json.Unmarshal(body, dest); err != nil {
		h.log.Debug().Err(err).Str("path", r.URL.Path).Msg("invalid json request")
		responseJSON(w, http.StatusBadRequest, invalidJSON(err))
		return false
	}
	return true
}

func invalidJSON(err error) book.ErrResponse {
	return book.ErrResponse{
		Code:    book.ErrResponseEntryInvalidJSON.Code,
		Message: book.ErrResponseEntryInvalidJSON.Message + err.Error(),
		Kind:    book.InvalidArgument,
	}
}

/*
Writes the error answer. Domain errors are mapped by kind, context errors become 504 and
anything else is logged and answered with a bare 500.
*/
func (h *BookHandler) responseError(w http.ResponseWriter, r *http.Request, err error) {
	var errR book.ErrResponse
	if errors.As(err, &errR) {
		if status, ok := statusOf(errR.Kind); ok {
			responseJSON(w, status, errR)
			return
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		h.log.Warn().Err(err).Str("path", r.URL.Path).Msg("request context ended")
		responseJSON(w, http.StatusGatewayTimeout, book.ErrResponse{
			Code:    book.ErrResponseRequestTimeout.Code,
			Message: book.ErrResponseRequestTimeout.Message + contextErr(err).Error(),
		})
		return
	}

	h.log.Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")
	w.WriteHeader(http.StatusInternalServerError)
}

func statusOf(kind book.Kind) (int, bool) {
	switch kind {
	case book.NotFound:
		return http.StatusNotFound, true
	case book.Forbidden:
		return http.StatusForbidden, true
	case book.Conflict:
		return http.StatusConflict, true
	case book.InvalidArgument:
		return http.StatusBadRequest, true
	default:
		return 0, false
	}
}

func contextErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return context.DeadlineExceeded
	}
	return context.Canceled
}

/*Writes a JSON response into a http.ResponseWriter. */
func responseJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Get().Error().Err(err).Msg("encoding json response")
	}
}

/* Validates and prepares the paging parameters of the query. Range checks belong to the service. */
func extractPageParams(query url.Values) (book.PageRequest, bool) {
	page := book.PageRequest{Page: 0, Size: book.DefaultPageSize}

	var err error
	if pageStr := query.Get("page"); pageStr != "" {
		page.Page, err = strconv.Atoi(pageStr)
		if err != nil {
			return book.PageRequest{}, false
		}
	}
	if sizeStr := query.Get("size"); sizeStr != "" {
		page.Size, err = strconv.Atoi(sizeStr)
		if err != nil {
			return book.PageRequest{}, false
		}
	}
	return page, true
}

type BookResponse struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	AuthorName string    `json:"author_name"`
	ISBN       string    `json:"isbn"`
	Synopsis   string    `json:"synopsis"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Shareable  bool      `json:"shareable"`
	Archived   bool      `json:"archived"`
}

/*Copy the fields of a book object to an http layer struct with json tags*/
func bookToResponse(b book.Book) BookResponse {
	return BookResponse{
		ID:         b.ID,
		Title:      b.Title,
		AuthorName: b.AuthorName,
		ISBN:       b.ISBN,
		Synopsis:   b.Synopsis,
		OwnerID:    b.OwnerID,
		Shareable:  b.Shareable,
		Archived:   b.Archived,
	}
}

type LoanResponse struct {
	ID         uuid.UUID  `json:"id"`
	BookID     uuid.UUID  `json:"book_id"`
	BorrowerID uuid.UUID  `json:"borrower_id"`
	State      string     `json:"state"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	Approved   bool       `json:"approved"`
}

func loanToResponse(l book.Loan) LoanResponse {
	return LoanResponse{
		ID:         l.ID,
		BookID:     l.BookID,
		BorrowerID: l.BorrowerID,
		State:      l.State().String(),
		BorrowedAt: l.BorrowedAt,
		ReturnedAt: l.ReturnedAt,
		Approved:   l.Approved,
	}
}

type BorrowedBookResponse struct {
	Loan LoanResponse `json:"loan"`
	Book BookResponse `json:"book"`
}

func borrowedBookToResponse(bb book.BorrowedBook) BorrowedBookResponse {
	return BorrowedBookResponse{
		Loan: loanToResponse(bb.Loan),
		Book: bookToResponse(bb.Book),
	}
}

type FeedbackResponse struct {
	ID        uuid.UUID `json:"id"`
	LoanID    uuid.UUID `json:"loan_id"`
	BookID    uuid.UUID `json:"book_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Note      float64   `json:"note"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func feedbackToResponse(f book.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        f.ID,
		LoanID:    f.LoanID,
		BookID:    f.BookID,
		AuthorID:  f.AuthorID,
		Note:      f.Note,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
	}
}

type ReturnedLoanResponse struct {
	Loan          LoanResponse      `json:"loan"`
	Feedback      *FeedbackResponse `json:"feedback,omitempty"`
	FeedbackError *book.ErrResponse `json:"feedback_error,omitempty"`
}

/* A failed feedback does not undo the return, it travels next to the returned loan. */
func returnedLoanToResponse(rl book.ReturnedLoan) ReturnedLoanResponse {
	resp := ReturnedLoanResponse{Loan: loanToResponse(rl.Loan)}
	if rl.Feedback != nil {
		f := feedbackToResponse(*rl.Feedback)
		resp.Feedback = &f
	}
	if rl.FeedbackErr != nil {
		var errR book.ErrResponse
		if !errors.As(rl.FeedbackErr, &errR) {
			errR = book.ErrResponse{Message: "feedback could not be stored"}
		}
		resp.FeedbackError = &errR
	}
	return resp
}

type PageResponse[R any] struct {
	PageCurrent int  `json:"page_current"`
	PageTotal   int  `json:"page_total"`
	PageSize    int  `json:"page_size"`
	ItemsTotal  int  `json:"items_total"`
	First       bool `json:"first"`
	Last        bool `json:"last"`
	Results     []R  `json:"results"`
}

/*Copy the fields of a page to an http layer struct with json tags*/
func pageToResponse[T, R any](page book.Page[T], conv func(T) R) PageResponse[R] {
	results := make([]R, 0, len(page.Results))
	for _, item := range page.Results {
		results = append(results, conv(item))
	}

	return PageResponse[R]{
		PageCurrent: page.PageCurrent,
		PageTotal:   page.PageTotal,
		PageSize:    page.PageSize,
		ItemsTotal:  page.ItemsTotal,
		First:       page.IsFirst(),
		Last:        page.IsLast(),
		Results:     results,
	}
}
