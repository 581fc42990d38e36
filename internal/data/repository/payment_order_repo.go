package repository

import (
	"context"
	"errors"
	"fmt"

	"show-booking/internal/data/entity"
	"show-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PaymentOrderRepository interface {
	Create(ctx context.Context, order *entity.PaymentOrder) error
	FindByOrderID(ctx context.Context, orderID string) (*entity.PaymentOrder, error)
}

type paymentOrderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentOrderRepository(db database.PgxIface, log *zap.Logger) PaymentOrderRepository {
	return &paymentOrderRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment_order")),
	}
}

func (r *paymentOrderRepository) Create(ctx context.Context, order *entity.PaymentOrder) error {
	query := `
		INSERT INTO payment_orders (order_id, show_id, user_id, seats, amount, currency, receipt_ref, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		order.OrderID,
		order.ShowID,
		order.UserID,
		order.Seats,
		order.Amount,
		order.Currency,
		order.ReceiptRef,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment order",
			zap.Error(err),
			zap.String("order_id", order.OrderID),
			zap.String("show_id", order.ShowID.String()),
		)
		return fmt.Errorf("create payment order %s: %w", order.OrderID, err)
	}

	return nil
}

func (r *paymentOrderRepository) FindByOrderID(ctx context.Context, orderID string) (*entity.PaymentOrder, error) {
	query := `
		SELECT order_id, show_id, user_id, seats, amount, currency, receipt_ref, status, created_at, updated_at
		FROM payment_orders
		WHERE order_id = $1
	`

	var order entity.PaymentOrder
	err := r.db.QueryRow(ctx, query, orderID).Scan(
		&order.OrderID,
		&order.ShowID,
		&order.UserID,
		&order.Seats,
		&order.Amount,
		&order.Currency,
		&order.ReceiptRef,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment order",
			zap.Error(err),
			zap.String("order_id", orderID),
		)
		return nil, fmt.Errorf("find payment order %s: %w", orderID, err)
	}

	return &order, nil
}
