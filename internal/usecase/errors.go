package usecase

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrShowNotFound    = errors.New("show not found")
	ErrOrderNotFound   = errors.New("payment order not found")
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAmountMismatch means the order amount does not equal the price
	// recomputed from the show's ticket price and the ordered seat count.
	// The client-supplied amount is never trusted.
	ErrAmountMismatch = errors.New("paid amount does not match recomputed price")

	// ErrOrderMismatch means the callback's seats or caller do not match
	// what the payment order was created for.
	ErrOrderMismatch = errors.New("request does not match payment order")

	ErrNotCancellable = errors.New("booking cannot be cancelled")
)

// SeatUnavailableError is the advisory pre-payment failure: the requested
// seats clash with the current snapshot and the caller should re-select.
type SeatUnavailableError struct {
	Seats []string
}

func (e *SeatUnavailableError) Error() string {
	if len(e.Seats) == 0 {
		return "not enough seats left"
	}
	return fmt.Sprintf("seats unavailable: %s", strings.Join(e.Seats, ", "))
}

// SeatConflictError is the hard post-payment failure: payment succeeded but
// another commit won the seats. Money has moved; the caller must refund out
// of band, which is why this is distinct from SeatUnavailableError.
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	if len(e.Seats) == 0 {
		return "seat conflict: seats were booked by another payment"
	}
	return fmt.Sprintf("seat conflict on %s: booked by another payment", strings.Join(e.Seats, ", "))
}
