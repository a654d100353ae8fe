package database

import (
	"errors"
	"fmt"

	"github.com/book-network/cmd/api/book"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

/* Extracts the SQLSTATE code and the violated constraint, whichever driver produced the error. */
func pgError(err error) (code, constraint string, ok bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint, true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName, true
	}
	return "", "", false
}

/*
Translates database errors into domain errors. Lost races (a concurrent active loan, serialization
failures, deadlocks) become book.ErrConcurrencyConflict so the service can retry them.
*/
func mapErr(err error) error {
	if err == nil {
		return nil
	}

	code, constraint, ok := pgError(err)
	if !ok {
		return err
	}

	switch code {
	case pgerrcode.UniqueViolation:
		switch constraint {
		case constraintActiveLoan:
			return fmt.Errorf("%w: %w", book.ErrConcurrencyConflict, err)
		case constraintFeedbackOnLoan:
			return book.ErrResponseFeedbackAlreadyGiven
		}
	case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
		return fmt.Errorf("%w: %w", book.ErrConcurrencyConflict, err)
	}
	return err
}
