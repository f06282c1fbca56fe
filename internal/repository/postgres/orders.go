package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/harshava123/powderlegacy/internal/domain"
	"github.com/harshava123/powderlegacy/pkg/errors"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert writes the order, merging into an existing row when the order_id is
// already present. A duplicate confirmation callback therefore never
// duplicates the record; it fills in fields the first write may have missed.
func (r *orderRepository) Upsert(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (
			order_id, payment_id, user_id, items, totals,
			shipping_address, delivery_info, payment_method, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (order_id) DO UPDATE SET
			payment_id       = COALESCE(NULLIF(EXCLUDED.payment_id, ''), orders.payment_id),
			user_id          = COALESCE(NULLIF(EXCLUDED.user_id, ''), orders.user_id),
			items            = EXCLUDED.items,
			totals           = EXCLUDED.totals,
			shipping_address = EXCLUDED.shipping_address,
			delivery_info    = EXCLUDED.delivery_info,
			payment_method   = EXCLUDED.payment_method
	`

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}
	totalsJSON, err := json.Marshal(order.Totals)
	if err != nil {
		return err
	}
	addressJSON, err := json.Marshal(order.Address)
	if err != nil {
		return err
	}
	deliveryJSON, err := json.Marshal(order.Delivery)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		order.OrderID,
		order.PaymentID,
		order.UserID,
		itemsJSON,
		totalsJSON,
		addressJSON,
		deliveryJSON,
		order.PaymentMethod,
		order.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to upsert order", zap.Error(err), zap.String("order_id", order.OrderID))
		return err
	}

	return nil
}

func (r *orderRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `
		SELECT order_id, payment_id, user_id, items, totals,
			shipping_address, delivery_info, payment_method, created_at
		FROM orders
		WHERE order_id = $1
	`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, orderID))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: orderID}
	}
	if err != nil {
		r.logger.Error("Failed to get order", zap.Error(err), zap.String("order_id", orderID))
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context, limit, offset int) ([]*domain.Order, error) {
	query := `
		SELECT order_id, payment_id, user_id, items, totals,
			shipping_address, delivery_info, payment_method, created_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	return r.listByQuery(ctx, query, limit, offset)
}

func (r *orderRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, error) {
	query := `
		SELECT order_id, payment_id, user_id, items, totals,
			shipping_address, delivery_info, payment_method, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.listByQuery(ctx, query, userID, limit, offset)
}

func (r *orderRepository) listByQuery(ctx context.Context, query string, args ...interface{}) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var paymentID sql.NullString
	var userID sql.NullString
	var itemsJSON, totalsJSON, addressJSON, deliveryJSON []byte

	err := row.Scan(
		&order.OrderID,
		&paymentID,
		&userID,
		&itemsJSON,
		&totalsJSON,
		&addressJSON,
		&deliveryJSON,
		&order.PaymentMethod,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.PaymentID = paymentID.String
	order.UserID = userID.String
	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(totalsJSON, &order.Totals); err != nil {
		return nil, err
	}
	if len(addressJSON) > 0 {
		if err := json.Unmarshal(addressJSON, &order.Address); err != nil {
			return nil, err
		}
	}
	if len(deliveryJSON) > 0 {
		if err := json.Unmarshal(deliveryJSON, &order.Delivery); err != nil {
			return nil, err
		}
	}
	return &order, nil
}
