package usecase

import (
	"context"
	"fmt"

	"show-booking/internal/data/repository"
	"show-booking/internal/dto/request"
	"show-booking/internal/dto/response"
	"show-booking/pkg/cache"
	"show-booking/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityService interface {
	// Check validates a candidate seat set against the last-known snapshot.
	// Advisory only: it fails fast for the UI but the binding check happens
	// inside the commit transaction.
	Check(ctx context.Context, showID string, req *request.CheckAvailabilityRequest) (*response.AvailabilityResponse, error)
}

type availabilityService struct {
	repo      *repository.Repository
	seatCache *cache.SeatCache
	log       *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, seatCache *cache.SeatCache, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:      repo,
		seatCache: seatCache,
		log:       log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) Check(ctx context.Context, showID string, req *request.CheckAvailabilityRequest) (*response.AvailabilityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	showUUID, err := utils.ParseUUID(showID)
	if err != nil {
		return nil, fmt.Errorf("invalid show ID format %s: %w", showID, err)
	}

	snap, ok := s.seatCache.GetSnapshot(ctx, showID)
	if !ok {
		show, err := s.repo.Show.FindByID(ctx, showUUID)
		if err != nil {
			return nil, fmt.Errorf("load show %s: %w", showID, err)
		}
		if show == nil {
			return nil, ErrShowNotFound
		}

		snap = &cache.SeatSnapshot{
			TotalSeatCount: show.TotalSeatCount,
			BookedSeats:    show.BookedSeats,
		}
		s.seatCache.SetSnapshot(ctx, showID, *snap)
	}

	conflicts := conflictingSeats(snap.BookedSeats, req.Seats)
	seatsLeft := snap.TotalSeatCount - len(snap.BookedSeats)
	available := len(conflicts) == 0 && len(req.Seats) <= seatsLeft

	s.log.Debug("Availability checked",
		zap.String("show_id", showID),
		zap.Strings("seats", req.Seats),
		zap.Bool("available", available),
		zap.Strings("conflicts", conflicts),
	)

	return &response.AvailabilityResponse{
		Available:        available,
		ConflictingSeats: conflicts,
		SeatsLeft:        seatsLeft,
	}, nil
}

func conflictingSeats(booked, requested []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, seat := range booked {
		taken[seat] = struct{}{}
	}

	var conflicts []string
	for _, seat := range requested {
		if _, ok := taken[seat]; ok {
			conflicts = append(conflicts, seat)
		}
	}
	return conflicts
}
