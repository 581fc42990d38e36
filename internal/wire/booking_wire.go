package wire

import (
	"show-booking/internal/adaptor"
	"show-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, log *zap.Logger) {
	// ==================== IDENTIFIED ROUTES ====================
	// Caller identity comes from the upstream auth layer.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(log))

		// POST /api/booking/order - open a payment order for selected seats
		r.Post("/api/booking/order", bookingHandler.CreatePaymentOrder)

		// POST /api/booking/confirm - verified payment callback, commits the booking
		r.Post("/api/booking/confirm", bookingHandler.ConfirmBooking)

		// GET /api/user/bookings - booking history
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Identity(log))

		// GET /api/admin/bookings/{id} - view any booking
		r.Get("/bookings/{id}", bookingHandler.GetBookingByID)

		// PUT /api/admin/bookings/{id}/cancel - cancel a confirmed booking
		r.Put("/bookings/{id}/cancel", bookingHandler.CancelBooking)

		// GET /api/admin/shows/{id}/bookings - all bookings of one show
		r.Get("/shows/{id}/bookings", bookingHandler.GetShowBookings)
	})
}
