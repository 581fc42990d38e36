package usecase

import (
	"context"
	"fmt"
	"time"

	"show-booking/internal/data/entity"
	"show-booking/internal/data/repository"
	"show-booking/internal/dto/request"
	"show-booking/internal/dto/response"
	"show-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ShowService is the ingestion surface for the external scheduler that owns
// show metadata, plus the read side of the inventory.
type ShowService interface {
	IngestShow(ctx context.Context, req *request.CreateShowRequest) (*response.ShowResponse, error)
	GetShow(ctx context.Context, showID string) (*response.ShowResponse, error)
}

type showService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewShowService(repo *repository.Repository, log *zap.Logger) ShowService {
	return &showService{
		repo: repo,
		log:  log.With(zap.String("service", "show")),
	}
}

func (s *showService) IngestShow(ctx context.Context, req *request.CreateShowRequest) (*response.ShowResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Ingest show validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	show := &entity.Show{
		ID:             uuid.New(),
		TicketPrice:    req.TicketPrice,
		TotalSeatCount: req.TotalSeatCount,
		BookedSeats:    []string{},
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Show.Create(ctx, show); err != nil {
		return nil, fmt.Errorf("ingest show: %w", err)
	}

	s.log.Info("Show ingested",
		zap.String("show_id", show.ID.String()),
		zap.Float64("ticket_price", show.TicketPrice),
		zap.Int("total_seat_count", show.TotalSeatCount),
	)

	return response.ShowToResponse(show), nil
}

func (s *showService) GetShow(ctx context.Context, showID string) (*response.ShowResponse, error) {
	showUUID, err := utils.ParseUUID(showID)
	if err != nil {
		return nil, fmt.Errorf("invalid show ID format %s: %w", showID, err)
	}

	show, err := s.repo.Show.FindByID(ctx, showUUID)
	if err != nil {
		return nil, fmt.Errorf("get show %s: %w", showID, err)
	}
	if show == nil {
		return nil, ErrShowNotFound
	}

	return response.ShowToResponse(show), nil
}
