package adaptor

import (
	"encoding/json"
	"net/http"

	"show-booking/internal/dto/request"
	"show-booking/internal/usecase"
	"show-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ShowHandler struct {
	shows        usecase.ShowService
	availability usecase.AvailabilityService
	log          *zap.Logger
}

func NewShowHandler(shows usecase.ShowService, availability usecase.AvailabilityService, log *zap.Logger) *ShowHandler {
	return &ShowHandler{
		shows:        shows,
		availability: availability,
		log:          log.With(zap.String("handler", "show")),
	}
}

// CheckAvailability handles POST /api/shows/{id}/availability (public).
// Advisory only; the result carries no reservation.
func (h *ShowHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "id")
	if showID == "" {
		utils.ResponseBadRequest(w, "Show ID is required", nil)
		return
	}

	var req request.CheckAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.availability.Check(r.Context(), showID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// GetShow handles GET /api/shows/{id} (public)
func (h *ShowHandler) GetShow(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "id")
	if showID == "" {
		utils.ResponseBadRequest(w, "Show ID is required", nil)
		return
	}

	show, err := h.shows.GetShow(r.Context(), showID)
	if err != nil {
		handleServiceError(w, h.log, err, "get show")
		return
	}

	utils.ResponseSuccess(w, "success", show)
}

// ==================== ADMIN METHODS ====================

// IngestShow handles POST /api/admin/shows. Shows are scheduled by an
// external system; this is its ingestion point into the inventory.
func (h *ShowHandler) IngestShow(w http.ResponseWriter, r *http.Request) {
	var req request.CreateShowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	show, err := h.shows.IngestShow(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "ingest show")
		return
	}

	utils.ResponseCreated(w, "success", show)
}
