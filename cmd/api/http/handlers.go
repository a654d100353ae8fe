package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/book-network/cmd/api/book"
	"github.com/book-network/cmd/api/logger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type BookHandler struct {
	bookService book.ServiceAPI
	valid       *validator.Validate
	log         zerolog.Logger
}

func NewBookHandler(bookService book.ServiceAPI) *BookHandler {
	return &BookHandler{
		bookService: bookService,
		valid:       validator.New(validator.WithRequiredStructEnabled()),
		log:         logger.Get(),
	}
}

/* Addresses a call to "/books" according to the requested action.  */
func (h *BookHandler) books(w http.ResponseWriter, r *http.Request) {
	method := r.Method
	switch method {
	case http.MethodGet:
		h.listCatalog(w, r)
		return
	case http.MethodPost:
		h.createBook(w, r)
		return
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
}

/* Addresses a call to "/books/{id}".  */
func (h *BookHandler) bookById(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	h.getBookById(w, r)
}

func (h *BookHandler) ownedBooks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	h.listOwned(w, r)
}

func (h *BookHandler) borrowedBooks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	h.listActiveLoans(w, r)
}

func (h *BookHandler) returnedBooks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	h.listPendingApproval(w, r)
}

func (h *BookHandler) bookShareable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	h.toggle(w, r, h.bookService.ToggleShareable)
}

func (h *BookHandler) bookArchived(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	h.toggle(w, r, h.bookService.ToggleArchived)
}

func (h *BookHandler) bookBorrow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	h.borrow(w, r)
}

func (h *BookHandler) bookReturn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	h.returnBook(w, r)
}

func (h *BookHandler) bookApprove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	h.approveReturn(w, r)
}

func (h *BookHandler) bookFeedbacks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	h.listFeedbacks(w, r)
}

/* Addresses a call to "/books/{id}/cover" according to the requested action.  */
func (h *BookHandler) bookCover(w http.ResponseWriter, r *http.Request) {
	method := r.Method
	switch method {
	case http.MethodGet:
		h.getCover(w, r)
		return
	case http.MethodPut:
		h.uploadCover(w, r)
		return
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
}

func (h *BookHandler) loanFeedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	h.submitFeedback(w, r)
}

type BookEntry struct {
	Title      string `json:"title" validate:"required,max=255"`
	AuthorName string `json:"author_name" validate:"required,max=255"`
	ISBN       string `json:"isbn" validate:"required,max=32"`
	Synopsis   string `json:"synopsis" validate:"max=4000"`
	Shareable  bool   `json:"shareable"`
}

/* Validates the entry, then stores the entry as a new book owned by the caller. */
func (h *BookHandler) createBook(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	var bookEntry BookEntry
	if !h.decodeJSON(w, r, &bookEntry) {
		return
	}
	if err := h.valid.Struct(bookEntry); err != nil {
		responseJSON(w, http.StatusBadRequest, book.ErrResponseBookEntryBlankFields)
		return
	}

	req := book.CreateBookRequest{
		Title:      bookEntry.Title,
		AuthorName: bookEntry.AuthorName,
		ISBN:       bookEntry.ISBN,
		Synopsis:   bookEntry.Synopsis,
		Shareable:  bookEntry.Shareable,
	}
	if err := book.FilledFields(req); err != nil {
		responseJSON(w, http.StatusBadRequest, err)
		return
	}

	storedBook, err := h.bookService.CreateBook(r.Context(), actorID, req)
	if err != nil {
		h.responseError(w, r, err)
		return
	}

	responseJSON(w, http.StatusCreated, bookToResponse(storedBook))
}

/* Returns the book with that specific ID. */
func (h *BookHandler) getBookById(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := isolateId(w, r)
	if !ok {
		return
	}

	returnedBook, err := h.bookService.GetBook(r.Context(), actorID, id)
	if err != nil {
		h.responseError(w, r, err)
		return
	}

	responseJSON(w, http.StatusOK, bookToResponse(returnedBook))
}

func (h *BookHandler) toggle(w http.ResponseWriter, r *http.Request, toggleFn func(ctx context.Context, actorID, bookID uuid.UUID) (book.Book, error)) {
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := isolateId(w, r)
	if !ok {
		return
	}

	updated, err := toggleFn(r.Context(), actorID, id)
	if err != nil {
		h.responseError(w, r, err)
		return
	}

	responseJSON(w, http.StatusOK, bookToResponse(updated))
}

func (h *BookHandler) borrow(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := isolateId(w, r)
	if !ok {
		return
	}

	loan, err := h.bookService.Borrow(r.Context(), actorID, id)
	if err != nil {
		h.responseError(w, r, err)
		return
	}

	responseJSON(w, http.StatusCreated, loanToResponse(loan))
}

type FeedbackEntry struct {
	Note    *float64 `json:"note" validate:"required"`
	Comment string   `json:"comment"`
}

/* The body is optional: an empty body returns the book without feedback. */
func (h *BookHandler) returnBook(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := isolateId(w, r)
	if !ok {
		return
	}

	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	var feedback *book.FeedbackRequest
	if len(bytes.TrimSpace(body)) > 0 {
		var entry FeedbackEntry
		if err := json.Unmarshal(body, &entry); err != nil {
			responseJSON(w, http.StatusBadRequest, invalidJSON(err))
			return
		}
		if err := h.valid.Struct(entry); err != nil {
			responseJSON(w, http.StatusBadRequest, book.ErrResponseNoteOutOfRange)
			return
		}
		feedback = &book.FeedbackRequest{Note: *entry.Note, Comment: entry.Comment}
	}

	returned, err := h.bookService.ReturnLoan(r.Context(), actorID, id, feedback)
	if err != nil {
		h.responseError(w, r, err)
		return
	}

	responseJSON(w, http.StatusOK, returnedLoanToResponse(returned))
}

func (h *BookHandler) approveReturn(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := isolateId(w, r)
	if !ok {
		return
	}

	loan, err := h.bookService.ApproveReturn(r.Context(), actorID, id)
	if err != nil {
		h.responseError(w, r, err)
		return
	}

	responseJSON(w, http.StatusOK, loanToResponse(loan))
}

func (h *BookHandler) submitFeedback(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}
	loanID, ok := isolateId(w, r)
	if !ok {
		return
	}

	var entry FeedbackEntry
	if !h.decodeJSON(w, r, &entry) {
		return
	}
	if err := h.valid.Struct(entry); err != nil {
		responseJSON(w, http.StatusBadRequest, book.ErrResponseNoteOutOfRange)
		return
	}

	created, err := h.bookService.SubmitFeedback(r.Context(), actorID, loanID, book.FeedbackRequest{Note: *entry.Note, Comment: entry.Comment})
	if err != nil {
		h.responseError(w, r, err)
		return
	}

	responseJSON(w, http.StatusCreated, feedbackToResponse(created))
}

func (h *BookHandler) uploadCover(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := isolateId(w, r)
	if !ok {
		return
	}

	cover, err := io.ReadAll(http.MaxBytesReader(w, r.Body, book.MaxCoverSize+1))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			responseJSON(w, http.StatusRequestEntityTooLarge, book.ErrResponseCoverTooLarge)
			return
		}
		h.responseError(w, r, err)
		return
	}

	if err := h.bookService.UploadCover(r.Context(), actorID, id, cover); err != nil {
		h.responseError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *BookHandler) getCover(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := isolateId(w, r)
	if !ok {
		return
	}

	cover, err := h.bookService.GetCover(r.Context(), actorID, id)
	if err != nil {
		h.responseError(w, r, err)
		return
	}

	w.Header().Set("content-type", http.DetectContentType(cover))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(cover); err != nil {
		h.log.Error().Err(err).Str("book_id", id.String()).Msg("writing cover")
	}
}

func (h *BookHandler) listCatalog(w http.ResponseWriter, r *http.Request) {
	listPage(h, w, r, h.bookService.ListCatalog, bookToResponse)
}

func (h *BookHandler) listOwned(w http.ResponseWriter, r *http.Request) {
	listPage(h, w, r, h.bookService.ListOwned, bookToResponse)
}

func (h *BookHandler) listActiveLoans(w http.ResponseWriter, r *http.Request) {
	listPage(h, w, r, h.bookService.ListActiveLoans, borrowedBookToResponse)
}

func (h *BookHandler) listPendingApproval(w http.ResponseWriter, r *http.Request) {
	listPage(h, w, r, h.bookService.ListPendingApproval, borrowedBookToResponse)
}

/* Feedbacks are public: no caller identity is needed to read them. */
func (h *BookHandler) listFeedbacks(w http.ResponseWriter, r *http.Request) {
	id, ok := isolateId(w, r)
	if !ok {
		return
	}
	page, ok := extractPageParams(r.URL.Query())
	if !ok {
		responseJSON(w, http.StatusBadRequest, book.ErrResponseQueryPageInvalid)
		return
	}

	feedbacks, err := h.bookService.ListFeedbacks(r.Context(), id, page)
	if err != nil {
		h.responseError(w, r, err)
		return
	}

	responseJSON(w, http.StatusOK, pageToResponse(feedbacks, feedbackToResponse))
}

/* Runs one of the caller scoped listings and writes the page. */
func listPage[T, R any](h *BookHandler, w http.ResponseWriter, r *http.Request, list func(ctx context.Context, actorID uuid.UUID, page book.PageRequest) (book.Page[T], error), conv func(T) R) {
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}
	page, ok := extractPageParams(r.URL.Query())
	if !ok {
		responseJSON(w, http.StatusBadRequest, book.ErrResponseQueryPageInvalid)
		return
	}

	result, err := list(r.Context(), actorID, page)
	if err != nil {
		h.responseError(w, r, err)
		return
	}

	responseJSON(w, http.StatusOK, pageToResponse(result, conv))
}
