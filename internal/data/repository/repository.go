package repository

import (
	"show-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Show         ShowRepository
	Booking      BookingRepository
	PaymentOrder PaymentOrderRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Show:         NewShowRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		PaymentOrder: NewPaymentOrderRepository(db, log),
	}
}
