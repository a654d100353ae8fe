package http

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type ServerConfig struct {
	Host           string
	Port           int
	RequestTimeout time.Duration
}

func NewServer(config ServerConfig, h *BookHandler) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", ping)

	mux.HandleFunc("/books", h.books)
	mux.HandleFunc("/books/owner", h.ownedBooks)
	mux.HandleFunc("/books/borrowed", h.borrowedBooks)
	mux.HandleFunc("/books/returned", h.returnedBooks)
	mux.HandleFunc("/books/{id}", h.bookById)
	mux.HandleFunc("/books/{id}/shareable", h.bookShareable)
	mux.HandleFunc("/books/{id}/archived", h.bookArchived)
	mux.HandleFunc("/books/{id}/borrow", h.bookBorrow)
	mux.HandleFunc("/books/{id}/return", h.bookReturn)
	mux.HandleFunc("/books/{id}/approve", h.bookApprove)
	mux.HandleFunc("/books/{id}/feedbacks", h.bookFeedbacks)
	mux.HandleFunc("/books/{id}/cover", h.bookCover)
	mux.HandleFunc("/loans/{id}/feedback", h.loanFeedback)

	server := http.Server{
		Addr:              fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:           requestTimeout(config.RequestTimeout, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return &server
}

/* Bounds every request with a deadline; a zero timeout leaves requests unbounded. */
func requestTimeout(timeout time.Duration, next http.Handler) http.Handler {
	if timeout <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

/* Tests the http server connection.  */
func ping(w http.ResponseWriter, r *http.Request) {
	method := r.Method
	if method == http.MethodGet {
		w.WriteHeader(http.StatusNoContent)
		return
	} else {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
}
