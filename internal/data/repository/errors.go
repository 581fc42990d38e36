package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrSeatTaken is returned by Commit when the conditional seat update
	// matched no row: at least one requested seat was booked by an earlier
	// commit, or the show would exceed capacity.
	ErrSeatTaken = errors.New("seats already taken")

	// ErrTxConflict marks a serialization or deadlock failure. Safe to retry.
	ErrTxConflict = errors.New("transaction conflict")

	// ErrNotCancellable is returned when a cancel matched no confirmed booking.
	ErrNotCancellable = errors.New("booking not in a cancellable state")
)

// translatePgError maps retryable postgres failure codes onto ErrTxConflict
// so callers can retry without inspecting driver internals.
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return ErrTxConflict
		}
	}
	return err
}
