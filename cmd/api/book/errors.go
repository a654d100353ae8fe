package book

import (
	"errors"
)

// Kind classifies a domain error so callers can branch on it without matching codes.
type Kind string

const (
	NotFound        Kind = "not found"
	Forbidden       Kind = "forbidden"
	Conflict        Kind = "conflict"
	InvalidArgument Kind = "invalid argument"
)

func (k Kind) Error() string {
	return string(k)
}

type ErrResponse struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_message"`
	Kind    Kind   `json:"-"`
}

func (e ErrResponse) Error() string {
	return e.Message
}

/* Lets errors.Is(err, book.Conflict) match any ErrResponse of that kind. */
func (e ErrResponse) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && e.Kind == k
}

/* Returns the Kind of the first ErrResponse found in the chain, or "" for infrastructure errors. */
func KindOf(err error) Kind {
	var errR ErrResponse
	if errors.As(err, &errR) {
		return errR.Kind
	}
	return ""
}

// Entry validation.
var ErrResponseBookEntryBlankFields = ErrResponse{100, "all the fields - title, author_name and isbn - must be filled correctly.", InvalidArgument}
var ErrResponseEntryInvalidJSON = ErrResponse{102, "invalid json request.", InvalidArgument}
var ErrResponseIdInvalidFormat = ErrResponse{103, "the endpoint is not a valid format ID. Must be a uuid", InvalidArgument}
var ErrResponseQueryPageInvalid = ErrResponse{106, "query parameter 'page' must be an int starting in 0. 'size' must be an int between 1 and 50.", InvalidArgument}
var ErrResponseActorInvalid = ErrResponse{108, "the X-User-ID header must carry a valid user uuid", InvalidArgument}
var ErrResponseCoverTooLarge = ErrResponse{109, "cover picture must not exceed 5 MiB", InvalidArgument}
var ErrResponseCoverEmpty = ErrResponse{110, "cover picture must not be empty", InvalidArgument}
var ErrResponseBodyTooLarge = ErrResponse{115, "request body must not exceed 64 KiB", InvalidArgument}

// Transport. These carry no Kind: they are not caused by the request content.
var ErrResponseRequestTimeout = ErrResponse{Code: 107, Message: "error from context:"}

// Catalog.
var ErrResponseBookNotFound = ErrResponse{101, "book not found", NotFound}
var ErrResponseActorNotFound = ErrResponse{111, "user not found", NotFound}
var ErrResponseCoverNotFound = ErrResponse{112, "book has no cover picture", NotFound}
var ErrResponseNotBookOwner = ErrResponse{113, "only the owner of the book can do this", Forbidden}
var ErrResponseBookLentOut = ErrResponse{114, "book is currently lent out, its status cannot change", Conflict}

// Lending.
var ErrResponseLoanNotFound = ErrResponse{200, "loan not found", NotFound}
var ErrResponseOwnBook = ErrResponse{201, "you cannot borrow a book you own", Forbidden}
var ErrResponseBookNotShareable = ErrResponse{202, "book is archived or not shareable", Forbidden}
var ErrResponseBookAlreadyBorrowed = ErrResponse{203, "book is already borrowed", Conflict}
var ErrResponseLoanAlreadyReturned = ErrResponse{204, "loan is already returned and waiting for approval", Conflict}
var ErrResponseReturnNotPending = ErrResponse{205, "book has no returned loan waiting for approval", Conflict}
var ErrResponseBookBusy = ErrResponse{206, "book is being modified by another request, try again", Conflict}
var ErrResponseConcurrentModification = ErrResponse{207, "concurrent modification, try again", Conflict}
var ErrResponseReturnPendingApproval = ErrResponse{208, "your previous loan of this book is waiting for the owner's approval", Conflict}

// Feedback.
var ErrResponseNoteOutOfRange = ErrResponse{300, "note must be a number between 0 and 5", InvalidArgument}
var ErrResponseNotLoanBorrower = ErrResponse{301, "only the borrower of the loan can give feedback", Forbidden}
var ErrResponseLoanNotReturned = ErrResponse{302, "feedback can only be given after the book is returned", Conflict}
var ErrResponseFeedbackAlreadyGiven = ErrResponse{303, "feedback already given for this loan", Conflict}
var ErrResponseFeedbackNotFound = ErrResponse{304, "feedback not found", NotFound}

// ErrConcurrencyConflict is returned by storage when a write lost a race; the service retries it.
var ErrConcurrencyConflict = errors.New("concurrency conflict")
