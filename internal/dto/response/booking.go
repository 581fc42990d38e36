package response

import (
	"time"

	"show-booking/internal/data/entity"
)

type AvailabilityResponse struct {
	Available        bool     `json:"available"`
	ConflictingSeats []string `json:"conflicting_seats,omitempty"`
	SeatsLeft        int      `json:"seats_left"`
}

// PaymentOrderResponse is returned from order creation; Amount is in minor
// units (what the gateway will charge), the breakdown fields are in currency
// units for display.
type PaymentOrderResponse struct {
	OrderID        string  `json:"order_id"`
	Amount         int64   `json:"amount"`
	Currency       string  `json:"currency"`
	ReceiptRef     string  `json:"receipt_ref"`
	TicketAmount   float64 `json:"ticket_amount"`
	ConvenienceFee float64 `json:"convenience_fee"`
	Tax            float64 `json:"tax"`
	TotalAmount    float64 `json:"total_amount"`
}

type BookingResponse struct {
	ID             string               `json:"id"`
	Code           string               `json:"code"`
	ShowID         string               `json:"show_id"`
	UserID         string               `json:"user_id"`
	Seats          []string             `json:"seats"`
	TransactionID  string               `json:"transaction_id"`
	OrderID        string               `json:"order_id"`
	Amount         float64              `json:"amount"`
	ConvenienceFee float64              `json:"convenience_fee"`
	Status         entity.BookingStatus `json:"status"`
	CreatedAt      time.Time            `json:"created_at"`
}

type ShowResponse struct {
	ID             string   `json:"id"`
	TicketPrice    float64  `json:"ticket_price"`
	TotalSeatCount int      `json:"total_seat_count"`
	BookedSeats    []string `json:"booked_seats"`
	SeatsLeft      int      `json:"seats_left"`
}

// Helper converters

func BookingToResponse(booking *entity.Booking) *BookingResponse {
	return &BookingResponse{
		ID:             booking.ID.String(),
		Code:           booking.Code,
		ShowID:         booking.ShowID.String(),
		UserID:         booking.UserID.String(),
		Seats:          booking.Seats,
		TransactionID:  booking.TransactionID,
		OrderID:        booking.OrderID,
		Amount:         booking.Amount,
		ConvenienceFee: booking.ConvenienceFee,
		Status:         booking.Status,
		CreatedAt:      booking.CreatedAt,
	}
}

func ShowToResponse(show *entity.Show) *ShowResponse {
	return &ShowResponse{
		ID:             show.ID.String(),
		TicketPrice:    show.TicketPrice,
		TotalSeatCount: show.TotalSeatCount,
		BookedSeats:    show.BookedSeats,
		SeatsLeft:      show.SeatsLeft(),
	}
}
