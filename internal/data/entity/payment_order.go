package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentOrderStatus string

const (
	PaymentOrderStatusPending  PaymentOrderStatus = "pending"
	PaymentOrderStatusConsumed PaymentOrderStatus = "consumed"
)

// PaymentOrder correlates a gateway order with the seats it was priced for.
// Amount is in minor units (what the gateway charges), created pending and
// consumed exactly once when the matching payment commits.
type PaymentOrder struct {
	OrderID    string             `db:"order_id"`
	ShowID     uuid.UUID          `db:"show_id"`
	UserID     uuid.UUID          `db:"user_id"`
	Seats      []string           `db:"seats"`
	Amount     int64              `db:"amount"`
	Currency   string             `db:"currency"`
	ReceiptRef string             `db:"receipt_ref"`
	Status     PaymentOrderStatus `db:"status"`
	CreatedAt  time.Time          `db:"created_at"`
	UpdatedAt  time.Time          `db:"updated_at"`
}
