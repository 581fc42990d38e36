package usecase_test

import (
	"testing"

	"show-booking/internal/usecase"
	"show-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
)

func pricingConfig() utils.PricingConfig {
	return utils.PricingConfig{
		Currency:      "INR",
		FeePerSeat:    30.0,
		TaxPercent:    18.0,
		MaxSeatsPerTx: 10,
	}
}

func TestQuotePrice_Breakdown(t *testing.T) {
	quote := usecase.QuotePrice(250.0, 2, pricingConfig())

	assert.Equal(t, 500.0, quote.TicketAmount)
	assert.Equal(t, 60.0, quote.ConvenienceFee)
	assert.Equal(t, 10.80, quote.Tax)
	assert.Equal(t, 570.80, quote.TotalAmount)
	assert.Equal(t, "INR", quote.Currency)
	assert.Equal(t, int64(57080), quote.TotalMinorUnits())
}

func TestQuotePrice_SingleSeat(t *testing.T) {
	quote := usecase.QuotePrice(100.0, 1, pricingConfig())

	assert.Equal(t, 100.0, quote.TicketAmount)
	assert.Equal(t, 30.0, quote.ConvenienceFee)
	assert.Equal(t, 5.40, quote.Tax)
	assert.Equal(t, 135.40, quote.TotalAmount)
	assert.Equal(t, int64(13540), quote.TotalMinorUnits())
}

func TestQuotePrice_RoundsToTwoDecimals(t *testing.T) {
	quote := usecase.QuotePrice(99.99, 2, pricingConfig())

	assert.Equal(t, 199.98, quote.TicketAmount)
	assert.Equal(t, 60.0, quote.ConvenienceFee)
	assert.Equal(t, 10.80, quote.Tax)
	assert.Equal(t, 270.78, quote.TotalAmount)
	assert.Equal(t, int64(27078), quote.TotalMinorUnits())
}

func TestQuotePrice_Deterministic(t *testing.T) {
	cfg := pricingConfig()

	first := usecase.QuotePrice(123.45, 4, cfg)
	second := usecase.QuotePrice(123.45, 4, cfg)

	assert.Equal(t, first, second)
}
