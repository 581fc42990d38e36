package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"show-booking/internal/data/entity"
	"show-booking/internal/data/repository"
	"show-booking/pkg/gateway"

	"github.com/google/uuid"
)

// fakeState is shared in-memory storage behind the fake repositories. One
// mutex covers all tables so Commit and CancelAndRelease observe the same
// atomicity the real transactions provide.
type fakeState struct {
	mu            sync.Mutex
	shows         map[uuid.UUID]*entity.Show
	bookingsByTxn map[string]*entity.Booking
	bookingsByID  map[uuid.UUID]*entity.Booking
	orders        map[string]*entity.PaymentOrder
}

func newFakeState() *fakeState {
	return &fakeState{
		shows:         make(map[uuid.UUID]*entity.Show),
		bookingsByTxn: make(map[string]*entity.Booking),
		bookingsByID:  make(map[uuid.UUID]*entity.Booking),
		orders:        make(map[string]*entity.PaymentOrder),
	}
}

func (st *fakeState) newRepository() *repository.Repository {
	return &repository.Repository{
		Show:         &fakeShowRepo{st: st},
		Booking:      &fakeBookingRepo{st: st},
		PaymentOrder: &fakeOrderRepo{st: st},
	}
}

func (st *fakeState) addShow(ticketPrice float64, totalSeats int, booked ...string) uuid.UUID {
	st.mu.Lock()
	defer st.mu.Unlock()

	show := &entity.Show{
		ID:             uuid.New(),
		TicketPrice:    ticketPrice,
		TotalSeatCount: totalSeats,
		BookedSeats:    append([]string{}, booked...),
		Version:        1,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	st.shows[show.ID] = show
	return show.ID
}

func (st *fakeState) bookedSeats(showID uuid.UUID) []string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return append([]string{}, st.shows[showID].BookedSeats...)
}

func cloneBooking(b *entity.Booking) *entity.Booking {
	clone := *b
	clone.Seats = append([]string{}, b.Seats...)
	return &clone
}

type fakeShowRepo struct {
	st *fakeState
}

func (r *fakeShowRepo) Create(ctx context.Context, show *entity.Show) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.shows[show.ID] = show
	return nil
}

func (r *fakeShowRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Show, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	show, ok := r.st.shows[id]
	if !ok {
		return nil, nil
	}
	clone := *show
	clone.BookedSeats = append([]string{}, show.BookedSeats...)
	return &clone, nil
}

type fakeBookingRepo struct {
	st *fakeState
}

func (r *fakeBookingRepo) Commit(ctx context.Context, booking *entity.Booking) (*entity.Booking, bool, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if existing, ok := r.st.bookingsByTxn[booking.TransactionID]; ok {
		return cloneBooking(existing), false, nil
	}

	show, ok := r.st.shows[booking.ShowID]
	if !ok {
		return nil, false, fmt.Errorf("show %s not found", booking.ShowID)
	}

	taken := make(map[string]struct{}, len(show.BookedSeats))
	for _, seat := range show.BookedSeats {
		taken[seat] = struct{}{}
	}
	for _, seat := range booking.Seats {
		if _, clash := taken[seat]; clash {
			return nil, false, repository.ErrSeatTaken
		}
	}
	if len(show.BookedSeats)+len(booking.Seats) > show.TotalSeatCount {
		return nil, false, repository.ErrSeatTaken
	}

	show.BookedSeats = append(show.BookedSeats, booking.Seats...)
	show.Version++

	stored := cloneBooking(booking)
	r.st.bookingsByTxn[stored.TransactionID] = stored
	r.st.bookingsByID[stored.ID] = stored

	if order, ok := r.st.orders[booking.OrderID]; ok {
		order.Status = entity.PaymentOrderStatusConsumed
	}

	return cloneBooking(stored), true, nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	booking, ok := r.st.bookingsByID[id]
	if !ok {
		return nil, nil
	}
	return cloneBooking(booking), nil
}

func (r *fakeBookingRepo) FindByTransactionID(ctx context.Context, transactionID string) (*entity.Booking, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	booking, ok := r.st.bookingsByTxn[transactionID]
	if !ok {
		return nil, nil
	}
	return cloneBooking(booking), nil
}

func (r *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	var bookings []*entity.Booking
	for _, booking := range r.st.bookingsByID {
		if booking.UserID == userID {
			bookings = append(bookings, cloneBooking(booking))
		}
	}
	return bookings, nil
}

func (r *fakeBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	var count int64
	for _, booking := range r.st.bookingsByID {
		if booking.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) FindByShowID(ctx context.Context, showID uuid.UUID) ([]*entity.Booking, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	var bookings []*entity.Booking
	for _, booking := range r.st.bookingsByID {
		if booking.ShowID == showID {
			bookings = append(bookings, cloneBooking(booking))
		}
	}
	return bookings, nil
}

func (r *fakeBookingRepo) CancelAndRelease(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	booking, ok := r.st.bookingsByID[id]
	if !ok || booking.Status != entity.BookingStatusConfirmed {
		return nil, repository.ErrNotCancellable
	}

	booking.Status = entity.BookingStatusCancelled
	booking.UpdatedAt = time.Now()

	if show, ok := r.st.shows[booking.ShowID]; ok {
		released := make(map[string]struct{}, len(booking.Seats))
		for _, seat := range booking.Seats {
			released[seat] = struct{}{}
		}
		kept := show.BookedSeats[:0]
		for _, seat := range show.BookedSeats {
			if _, gone := released[seat]; !gone {
				kept = append(kept, seat)
			}
		}
		show.BookedSeats = kept
		show.Version++
	}

	return cloneBooking(booking), nil
}

type fakeOrderRepo struct {
	st *fakeState
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.PaymentOrder) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.orders[order.OrderID] = order
	return nil
}

func (r *fakeOrderRepo) FindByOrderID(ctx context.Context, orderID string) (*entity.PaymentOrder, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	order, ok := r.st.orders[orderID]
	if !ok {
		return nil, nil
	}
	clone := *order
	clone.Seats = append([]string{}, order.Seats...)
	return &clone, nil
}

// fakeGateway hands out sequential order IDs and records nothing else.
type fakeGateway struct {
	mu  sync.Mutex
	n   int
	err error
}

func (g *fakeGateway) CreateOrder(ctx context.Context, amount int64, currency, receiptRef string) (*gateway.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.err != nil {
		return nil, g.err
	}

	g.n++
	return &gateway.Order{
		ID:         fmt.Sprintf("order_%d", g.n),
		Amount:     amount,
		Currency:   currency,
		ReceiptRef: receiptRef,
	}, nil
}
