package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/pkg/errors"
)

const orderColumns = `
	id, customer_email, customer_name, customer_phone, items, total_amount, status,
	payment_intent_id, collection_method, shipping_cost, shipping_address, notes, created_at
`

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

// Create inserts the order. An order with the same ID is left untouched.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO NOTHING
	`

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	// JSONB columns are bound as text; lib/pq would send []byte as bytea.
	var address sql.NullString
	if order.ShippingAddress != nil {
		raw, err := json.Marshal(order.ShippingAddress)
		if err != nil {
			return fmt.Errorf("failed to marshal shipping address: %w", err)
		}
		address = sql.NullString{String: string(raw), Valid: true}
	}

	var shippingCost sql.NullInt64
	if order.ShippingCost != nil {
		shippingCost = sql.NullInt64{Int64: *order.ShippingCost, Valid: true}
	}

	_, err = r.db.ExecContext(ctx, query,
		order.ID,
		order.CustomerEmail,
		order.CustomerName,
		order.CustomerPhone,
		string(items),
		order.TotalAmount,
		order.Status,
		order.PaymentIntentID,
		order.CollectionMethod,
		shippingCost,
		address,
		order.Notes,
		order.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create order", zap.String("order_id", order.ID), zap.Error(err))
		return err
	}

	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id}
	}
	if err != nil {
		r.logger.Error("Failed to get order by ID", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}

	return order, nil
}

// List returns orders newest first, optionally restricted to one status
func (r *orderRepository) List(ctx context.Context, status *domain.OrderStatus) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []interface{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

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
			r.logger.Error("Failed to scan order", zap.Error(err))
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	query := `UPDATE orders SET status = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		r.logger.Error("Failed to update order status", zap.String("order_id", id), zap.Error(err))
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &errors.ErrNotFound{Resource: "order", ID: id}
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		order        domain.Order
		items        []byte
		address      []byte
		shippingCost sql.NullInt64
	)

	err := row.Scan(
		&order.ID,
		&order.CustomerEmail,
		&order.CustomerName,
		&order.CustomerPhone,
		&items,
		&order.TotalAmount,
		&order.Status,
		&order.PaymentIntentID,
		&order.CollectionMethod,
		&shippingCost,
		&address,
		&order.Notes,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(items) > 0 {
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, fmt.Errorf("failed to decode order items: %w", err)
		}
	}
	if len(address) > 0 {
		order.ShippingAddress = &domain.Address{}
		if err := json.Unmarshal(address, order.ShippingAddress); err != nil {
			return nil, fmt.Errorf("failed to decode shipping address: %w", err)
		}
	}
	if shippingCost.Valid {
		cost := shippingCost.Int64
		order.ShippingCost = &cost
	}

	return &order, nil
}
