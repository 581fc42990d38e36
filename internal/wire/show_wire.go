package wire

import (
	"show-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireShow(r chi.Router, showHandler *adaptor.ShowHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/shows/{id} - inventory snapshot
	r.Get("/api/shows/{id}", showHandler.GetShow)

	// POST /api/shows/{id}/availability - advisory seat check
	r.Post("/api/shows/{id}/availability", showHandler.CheckAvailability)

	// ==================== ADMIN ROUTES ====================
	// POST /api/admin/shows - ingestion point for the external scheduler
	r.Post("/api/admin/shows", showHandler.IngestShow)
}
