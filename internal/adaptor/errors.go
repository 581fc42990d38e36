package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"show-booking/internal/usecase"
	"show-booking/pkg/gateway"
	"show-booking/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps the service error taxonomy onto HTTP responses
// with a machine-readable kind, so clients can tell "pick different seats"
// apart from "contact support for a refund".
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var seatUnavailable *usecase.SeatUnavailableError
	var seatConflict *usecase.SeatConflictError

	switch {
	case errors.As(err, &seatUnavailable):
		log.Warn(operation+" failed - seats unavailable",
			zap.Strings("conflicts", seatUnavailable.Seats))
		utils.ResponseConflict(w, err.Error(), map[string]any{
			"kind":              "seat_unavailable",
			"conflicting_seats": seatUnavailable.Seats,
		})

	case errors.As(err, &seatConflict):
		// Payment already succeeded; the caller owns the refund.
		log.Warn(operation+" failed - seat conflict after payment",
			zap.Strings("conflicts", seatConflict.Seats))
		utils.ResponseConflict(w, err.Error(), map[string]any{
			"kind":              "seat_conflict",
			"conflicting_seats": seatConflict.Seats,
			"refund_required":   true,
		})

	case errors.Is(err, gateway.ErrSignatureInvalid):
		log.Warn(operation + " failed - payment signature invalid")
		utils.ResponseUnauthorized(w, "Payment signature invalid")

	case errors.Is(err, gateway.ErrUnavailable):
		log.Error(operation+" failed - gateway unavailable", zap.Error(err))
		utils.ResponseBadGateway(w, "Payment gateway unavailable, try again later")

	case errors.Is(err, gateway.ErrOrderRejected):
		log.Warn(operation+" failed - order rejected", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error())

	case errors.Is(err, usecase.ErrAmountMismatch),
		errors.Is(err, usecase.ErrOrderMismatch):
		log.Warn(operation+" failed - order mismatch", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error())

	case errors.Is(err, usecase.ErrShowNotFound),
		errors.Is(err, usecase.ErrOrderNotFound),
		errors.Is(err, usecase.ErrBookingNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrNotCancellable):
		log.Warn(operation+" failed - not cancellable", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"):
		log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
