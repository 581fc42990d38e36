// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published after a booking commits. It carries
// enough for downstream consumers (ticket email, history views) to act
// without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID      string   `json:"booking_id"`
	BookingCode    string   `json:"booking_code"`
	ShowID         string   `json:"show_id"`
	UserID         string   `json:"user_id"`
	Seats          []string `json:"seats"`
	Amount         float64  `json:"amount"`
	ConvenienceFee float64  `json:"convenience_fee"`
	TransactionID  string   `json:"transaction_id"`
	ConfirmedAt    string   `json:"confirmed_at"`
}
