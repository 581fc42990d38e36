package usecase

import (
	"math"

	"show-booking/pkg/utils"
)

// PriceQuote is the server-side breakdown of what a seat set costs. All
// fields are in currency units rounded to two decimals.
type PriceQuote struct {
	TicketAmount   float64
	ConvenienceFee float64
	Tax            float64
	TotalAmount    float64
	Currency       string
}

// TotalMinorUnits is the integer amount sent to and cross-checked against
// the payment gateway.
func (q PriceQuote) TotalMinorUnits() int64 {
	return int64(math.Round(q.TotalAmount * 100))
}

// QuotePrice derives the chargeable amount from ticket price and seat count.
// Pure and deterministic: the same inputs always produce the same quote, so
// the amount can be re-derived at verification time and compared against
// what the order was created for.
func QuotePrice(ticketPrice float64, seatCount int, cfg utils.PricingConfig) PriceQuote {
	ticketAmount := round2(ticketPrice * float64(seatCount))
	fee := round2(cfg.FeePerSeat * float64(seatCount))
	tax := round2(fee * cfg.TaxPercent / 100)

	return PriceQuote{
		TicketAmount:   ticketAmount,
		ConvenienceFee: fee,
		Tax:            tax,
		TotalAmount:    round2(ticketAmount + fee + tax),
		Currency:       cfg.Currency,
	}
}

// round2 rounds to two decimal places, half up.
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
