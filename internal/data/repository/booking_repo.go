package repository

import (
	"context"
	"errors"
	"fmt"

	"show-booking/internal/data/entity"
	"show-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// Commit inserts the booking and marks its seats booked as one
	// transaction. The bool reports whether a new booking was created;
	// false means a booking with the same transaction ID already existed
	// and that booking is returned instead (idempotent replay).
	Commit(ctx context.Context, booking *entity.Booking) (*entity.Booking, bool, error)

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindByShowID(ctx context.Context, showID uuid.UUID) ([]*entity.Booking, error)

	// CancelAndRelease flips a confirmed booking to cancelled and removes its
	// seats from the show inventory in the same transaction. The status
	// predicate makes the seat release exactly-once.
	CancelAndRelease(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, code, show_id, user_id, seats, transaction_id, order_id, amount, convenience_fee, status, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.Code,
		&booking.ShowID,
		&booking.UserID,
		&booking.Seats,
		&booking.TransactionID,
		&booking.OrderID,
		&booking.Amount,
		&booking.ConvenienceFee,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Commit(ctx context.Context, booking *entity.Booking) (*entity.Booking, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("begin commit transaction: %w", translatePgError(err))
	}
	defer tx.Rollback(ctx)

	// Idempotency gate. The unique constraint on transaction_id decides the
	// race between concurrent deliveries of the same payment; no prior
	// SELECT is involved.
	insert := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (transaction_id) DO NOTHING
	`

	tag, err := tx.Exec(ctx, insert,
		booking.ID,
		booking.Code,
		booking.ShowID,
		booking.UserID,
		booking.Seats,
		booking.TransactionID,
		booking.OrderID,
		booking.Amount,
		booking.ConvenienceFee,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("transaction_id", booking.TransactionID),
		)
		return nil, false, fmt.Errorf("insert booking %s: %w", booking.Code, translatePgError(err))
	}

	if tag.RowsAffected() == 0 {
		existing, err := scanBooking(tx.QueryRow(ctx,
			`SELECT `+bookingColumns+` FROM bookings WHERE transaction_id = $1`,
			booking.TransactionID,
		))
		if err != nil {
			return nil, false, fmt.Errorf("load existing booking for transaction %s: %w", booking.TransactionID, translatePgError(err))
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, false, fmt.Errorf("commit replay read: %w", translatePgError(err))
		}

		r.log.Info("Duplicate transaction replayed",
			zap.String("transaction_id", booking.TransactionID),
			zap.String("booking_code", existing.Code),
		)
		return existing, false, nil
	}

	// Authoritative seat check and inventory update in one statement: only
	// succeeds when the requested seats are disjoint from booked_seats and
	// capacity holds. Zero rows means another commit already won.
	cas := `
		UPDATE shows
		SET booked_seats = booked_seats || $2::text[],
		    version = version + 1,
		    updated_at = NOW()
		WHERE id = $1
		  AND NOT (booked_seats && $2::text[])
		  AND cardinality(booked_seats) + cardinality($2::text[]) <= total_seat_count
	`

	tag, err = tx.Exec(ctx, cas, booking.ShowID, booking.Seats)
	if err != nil {
		r.log.Error("Failed to update show inventory",
			zap.Error(err),
			zap.String("show_id", booking.ShowID.String()),
		)
		return nil, false, fmt.Errorf("update show %s inventory: %w", booking.ShowID.String(), translatePgError(err))
	}

	if tag.RowsAffected() == 0 {
		r.log.Warn("Seat conflict at commit",
			zap.String("show_id", booking.ShowID.String()),
			zap.Strings("seats", booking.Seats),
			zap.String("transaction_id", booking.TransactionID),
		)
		return nil, false, ErrSeatTaken
	}

	consume := `
		UPDATE payment_orders
		SET status = 'consumed', updated_at = NOW()
		WHERE order_id = $1 AND status = 'pending'
	`
	if _, err := tx.Exec(ctx, consume, booking.OrderID); err != nil {
		return nil, false, fmt.Errorf("consume payment order %s: %w", booking.OrderID, translatePgError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("commit booking %s: %w", booking.Code, translatePgError(err))
	}

	return booking, true, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, err := scanBooking(r.db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByTransactionID(ctx context.Context, transactionID string) (*entity.Booking, error) {
	booking, err := scanBooking(r.db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE transaction_id = $1`, transactionID))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by transaction ID",
			zap.Error(err),
			zap.String("transaction_id", transactionID),
		)
		return nil, fmt.Errorf("find booking by transaction ID %s: %w", transactionID, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindByShowID(ctx context.Context, showID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE show_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, showID)
	if err != nil {
		r.log.Error("Failed to find bookings by show ID",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
		return nil, fmt.Errorf("find bookings by show ID %s: %w", showID.String(), err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) CancelAndRelease(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin cancel transaction: %w", translatePgError(err))
	}
	defer tx.Rollback(ctx)

	cancel := `
		UPDATE bookings
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status = 'confirmed'
		RETURNING ` + bookingColumns

	booking, err := scanBooking(tx.QueryRow(ctx, cancel, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotCancellable
	}
	if err != nil {
		r.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("cancel booking %s: %w", id.String(), translatePgError(err))
	}

	release := `
		UPDATE shows
		SET booked_seats = (
			SELECT COALESCE(array_agg(s), '{}')
			FROM unnest(booked_seats) AS s
			WHERE s <> ALL($2::text[])
		),
		    version = version + 1,
		    updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, release, booking.ShowID, booking.Seats); err != nil {
		r.log.Error("Failed to release seats",
			zap.Error(err),
			zap.String("show_id", booking.ShowID.String()),
			zap.Strings("seats", booking.Seats),
		)
		return nil, fmt.Errorf("release seats for booking %s: %w", id.String(), translatePgError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit cancel of booking %s: %w", id.String(), translatePgError(err))
	}

	r.log.Info("Booking cancelled and seats released",
		zap.String("booking_id", id.String()),
		zap.String("booking_code", booking.Code),
		zap.Strings("seats", booking.Seats),
	)

	return booking, nil
}

func collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}
