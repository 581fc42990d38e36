package request

type CheckAvailabilityRequest struct {
	Seats []string `json:"seats" validate:"required,min=1,max=10,unique,dive,seat_id"`
}

type CreateOrderRequest struct {
	ShowID string   `json:"show_id" validate:"required,uuid4"`
	Seats  []string `json:"seats" validate:"required,min=1,max=10,unique,dive,seat_id"`
}

// ConfirmBookingRequest is the verified-payment callback relayed after the
// gateway checkout completes. Signature is the hex HMAC the gateway computed
// over order id and transaction id.
type ConfirmBookingRequest struct {
	OrderID       string   `json:"order_id" validate:"required"`
	TransactionID string   `json:"transaction_id" validate:"required"`
	Signature     string   `json:"signature" validate:"required,len=64,hexadecimal"`
	Seats         []string `json:"seats" validate:"required,min=1,max=10,unique,dive,seat_id"`
}

type CreateShowRequest struct {
	TicketPrice    float64 `json:"ticket_price" validate:"required,gt=0"`
	TotalSeatCount int     `json:"total_seat_count" validate:"required,min=1,max=1000"`
}
