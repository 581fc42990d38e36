package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is the ledger record of one paid seat set. TransactionID is the
// gateway payment id and doubles as the idempotency key: at most one booking
// exists per transaction id, enforced by a unique constraint.
type Booking struct {
	Base
	Code           string        `db:"code"`
	ShowID         uuid.UUID     `db:"show_id"`
	UserID         uuid.UUID     `db:"user_id"`
	Seats          []string      `db:"seats"`
	TransactionID  string        `db:"transaction_id"`
	OrderID        string        `db:"order_id"`
	Amount         float64       `db:"amount"`
	ConvenienceFee float64       `db:"convenience_fee"`
	Status         BookingStatus `db:"status"`
}
