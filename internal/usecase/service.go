package usecase

import (
	"show-booking/internal/data/repository"
	"show-booking/internal/queue"
	"show-booking/pkg/cache"
	"show-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Availability AvailabilityService
	Booking      BookingService
	Show         ShowService
}

func NewService(
	repo *repository.Repository,
	orderCreator OrderCreator,
	seatCache *cache.SeatCache,
	publisher *queue.Publisher,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Availability: NewAvailabilityService(repo, seatCache, log),
		Booking:      NewBookingService(repo, orderCreator, seatCache, publisher, config, log),
		Show:         NewShowService(repo, log),
	}
}
