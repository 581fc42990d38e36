package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"show-booking/internal/data/entity"
	"show-booking/internal/data/repository"
	"show-booking/internal/dto/request"
	"show-booking/internal/dto/response"
	"show-booking/internal/queue"
	"show-booking/pkg/cache"
	"show-booking/pkg/gateway"
	"show-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderCreator is the slice of the gateway client the booking flow needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, amount int64, currency, receiptRef string) (*gateway.Order, error)
}

type BookingService interface {
	// Checkout flow
	CreatePaymentOrder(ctx context.Context, userID string, req *request.CreateOrderRequest) (*response.PaymentOrderResponse, error)
	ConfirmBooking(ctx context.Context, userID string, req *request.ConfirmBookingRequest) (*response.BookingResponse, error)

	// Ledger queries
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetShowBookings(ctx context.Context, showID string) ([]*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)

	// Admin
	CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
}

type bookingService struct {
	repo      *repository.Repository
	gateway   OrderCreator
	seatCache *cache.SeatCache
	publisher *queue.Publisher
	config    *utils.Config
	log       *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	orderCreator OrderCreator,
	seatCache *cache.SeatCache,
	publisher *queue.Publisher,
	config *utils.Config,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:      repo,
		gateway:   orderCreator,
		seatCache: seatCache,
		publisher: publisher,
		config:    config,
		log:       log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreatePaymentOrder(ctx context.Context, userID string, req *request.CreateOrderRequest) (*response.PaymentOrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create order validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	showUUID, err := utils.ParseUUID(req.ShowID)
	if err != nil {
		return nil, fmt.Errorf("invalid show ID format %s: %w", req.ShowID, err)
	}

	show, err := s.repo.Show.FindByID(ctx, showUUID)
	if err != nil {
		return nil, fmt.Errorf("load show %s: %w", req.ShowID, err)
	}
	if show == nil {
		return nil, ErrShowNotFound
	}

	// Advisory fail-fast before money moves. Non-binding: the commit
	// transaction re-checks authoritatively.
	if conflicts := show.ConflictingSeats(req.Seats); len(conflicts) > 0 {
		return nil, &SeatUnavailableError{Seats: conflicts}
	}
	if len(req.Seats) > show.SeatsLeft() {
		return nil, &SeatUnavailableError{}
	}

	quote := QuotePrice(show.TicketPrice, len(req.Seats), s.config.Pricing)
	receiptRef := utils.GenerateReceiptRef()

	order, err := s.gateway.CreateOrder(ctx, quote.TotalMinorUnits(), quote.Currency, receiptRef)
	if err != nil {
		s.log.Error("Gateway order creation failed",
			zap.Error(err),
			zap.String("show_id", req.ShowID),
			zap.Int64("amount", quote.TotalMinorUnits()),
		)
		return nil, fmt.Errorf("create gateway order: %w", err)
	}

	now := time.Now()
	paymentOrder := &entity.PaymentOrder{
		OrderID:    order.ID,
		ShowID:     showUUID,
		UserID:     userUUID,
		Seats:      req.Seats,
		Amount:     quote.TotalMinorUnits(),
		Currency:   quote.Currency,
		ReceiptRef: receiptRef,
		Status:     entity.PaymentOrderStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.PaymentOrder.Create(ctx, paymentOrder); err != nil {
		return nil, fmt.Errorf("persist payment order %s: %w", order.ID, err)
	}

	s.log.Info("Payment order created",
		zap.String("order_id", order.ID),
		zap.String("show_id", req.ShowID),
		zap.String("user_id", userID),
		zap.Int("seat_count", len(req.Seats)),
		zap.Int64("amount", quote.TotalMinorUnits()),
		zap.String("receipt_ref", receiptRef),
	)

	return &response.PaymentOrderResponse{
		OrderID:        order.ID,
		Amount:         quote.TotalMinorUnits(),
		Currency:       quote.Currency,
		ReceiptRef:     receiptRef,
		TicketAmount:   quote.TicketAmount,
		ConvenienceFee: quote.ConvenienceFee,
		Tax:            quote.Tax,
		TotalAmount:    quote.TotalAmount,
	}, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, userID string, req *request.ConfirmBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Confirm booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	// Signature gate. Runs before any state is read or written; a forged
	// callback never gets further than this.
	if err := gateway.VerifySignature(s.config.Gateway.Secret, req.OrderID, req.TransactionID, req.Signature); err != nil {
		s.log.Warn("Payment signature rejected",
			zap.String("order_id", req.OrderID),
			zap.String("transaction_id", req.TransactionID),
		)
		return nil, err
	}

	order, err := s.repo.PaymentOrder.FindByOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("load payment order %s: %w", req.OrderID, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if order.UserID != userUUID || !sameSeatSet(order.Seats, req.Seats) {
		s.log.Warn("Confirm request does not match order",
			zap.String("order_id", req.OrderID),
			zap.String("user_id", userID),
		)
		return nil, ErrOrderMismatch
	}

	show, err := s.repo.Show.FindByID(ctx, order.ShowID)
	if err != nil {
		return nil, fmt.Errorf("load show %s: %w", order.ShowID.String(), err)
	}
	if show == nil {
		return nil, ErrShowNotFound
	}

	// Re-derive the expected amount from stored inputs. The order was
	// created from the same quote, so anything else means the order was
	// issued for different seats or tampered with.
	quote := QuotePrice(show.TicketPrice, len(order.Seats), s.config.Pricing)
	if quote.TotalMinorUnits() != order.Amount {
		s.log.Warn("Order amount does not match recomputed quote",
			zap.String("order_id", req.OrderID),
			zap.Int64("order_amount", order.Amount),
			zap.Int64("expected_amount", quote.TotalMinorUnits()),
		)
		return nil, ErrAmountMismatch
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Code:           utils.GenerateBookingCode(),
		ShowID:         order.ShowID,
		UserID:         userUUID,
		Seats:          order.Seats,
		TransactionID:  req.TransactionID,
		OrderID:        order.OrderID,
		Amount:         quote.TotalAmount,
		ConvenienceFee: quote.ConvenienceFee,
		Status:         entity.BookingStatusConfirmed,
	}

	committed, created, err := s.commitWithRetry(ctx, booking)
	if err != nil {
		if errors.Is(err, repository.ErrSeatTaken) {
			return nil, s.seatConflict(ctx, order)
		}
		return nil, fmt.Errorf("commit booking for transaction %s: %w", req.TransactionID, err)
	}

	if created {
		s.seatCache.Invalidate(ctx, order.ShowID.String())
		s.publishConfirmed(ctx, committed)

		s.log.Info("Booking confirmed",
			zap.String("booking_id", committed.ID.String()),
			zap.String("booking_code", committed.Code),
			zap.String("transaction_id", committed.TransactionID),
			zap.String("show_id", committed.ShowID.String()),
			zap.Strings("seats", committed.Seats),
			zap.Float64("amount", committed.Amount),
		)
	}

	return response.BookingToResponse(committed), nil
}

// commitWithRetry retries only on serialization conflicts, a bounded number
// of times, so hot-seat contention cannot spin forever.
func (s *bookingService) commitWithRetry(ctx context.Context, booking *entity.Booking) (*entity.Booking, bool, error) {
	retries := s.config.Booking.CommitRetries
	if retries < 1 {
		retries = 1
	}

	backoff := 50 * time.Millisecond
	var lastErr error

	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, false, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		committed, created, err := s.repo.Booking.Commit(ctx, booking)
		if err == nil {
			return committed, created, nil
		}
		if !errors.Is(err, repository.ErrTxConflict) {
			return nil, false, err
		}

		lastErr = err
		s.log.Warn("Commit conflicted, retrying",
			zap.Int("attempt", attempt+1),
			zap.String("transaction_id", booking.TransactionID),
		)
	}

	return nil, false, lastErr
}

// seatConflict names the losing seats when it can; the list is best-effort
// diagnostics on top of an already-terminal failure.
func (s *bookingService) seatConflict(ctx context.Context, order *entity.PaymentOrder) error {
	conflict := &SeatConflictError{}
	if show, err := s.repo.Show.FindByID(ctx, order.ShowID); err == nil && show != nil {
		conflict.Seats = show.ConflictingSeats(order.Seats)
	}

	s.log.Warn("Booking lost seat race after successful payment",
		zap.String("order_id", order.OrderID),
		zap.String("show_id", order.ShowID.String()),
		zap.Strings("seats", order.Seats),
		zap.Strings("conflicts", conflict.Seats),
	)
	return conflict
}

func (s *bookingService) publishConfirmed(ctx context.Context, booking *entity.Booking) {
	event := queue.BookingConfirmedEvent{
		BookingID:      booking.ID.String(),
		BookingCode:    booking.Code,
		ShowID:         booking.ShowID.String(),
		UserID:         booking.UserID.String(),
		Seats:          booking.Seats,
		Amount:         booking.Amount,
		ConvenienceFee: booking.ConvenienceFee,
		TransactionID:  booking.TransactionID,
		ConfirmedAt:    booking.CreatedAt.UTC().Format(time.RFC3339),
	}

	// Best-effort: the booking is already durable.
	if err := s.publisher.PublishBookingConfirmed(ctx, event); err != nil {
		s.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("booking_code", booking.Code),
		)
	}
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = *response.BookingToResponse(booking)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetShowBookings(ctx context.Context, showID string) ([]*response.BookingResponse, error) {
	showUUID, err := utils.ParseUUID(showID)
	if err != nil {
		return nil, fmt.Errorf("invalid show ID format %s: %w", showID, err)
	}

	bookings, err := s.repo.Booking.FindByShowID(ctx, showUUID)
	if err != nil {
		s.log.Error("Failed to get show bookings",
			zap.Error(err),
			zap.String("show_id", showID),
		)
		return nil, fmt.Errorf("get show bookings: %w", err)
	}

	bookingResponses := make([]*response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking)
	}

	return bookingResponses, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := utils.ParseUUID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	return response.BookingToResponse(booking), nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := utils.ParseUUID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.CancelAndRelease(ctx, id)
	if errors.Is(err, repository.ErrNotCancellable) {
		return nil, ErrNotCancellable
	}
	if err != nil {
		s.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}

	s.seatCache.Invalidate(ctx, booking.ShowID.String())

	return response.BookingToResponse(booking), nil
}

// sameSeatSet compares seat sets ignoring order. Seat sets are validated to
// be duplicate-free before this runs.
func sameSeatSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	seen := make(map[string]struct{}, len(a))
	for _, seat := range a {
		seen[seat] = struct{}{}
	}
	for _, seat := range b {
		if _, ok := seen[seat]; !ok {
			return false
		}
	}
	return true
}
