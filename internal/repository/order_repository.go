package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nitiprint/nitiprint-api/internal/models"
)

// OrderRepository handles confirmed-order persistence.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository constructs the repository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Insert stores a confirmed order. The order id is caller-supplied and
// unique; a duplicate insert fails on the primary key.
func (r *OrderRepository) Insert(ctx context.Context, order *models.Order) error {
	if order.TransactionTime.IsZero() {
		order.TransactionTime = time.Now().UTC()
	}
	const query = `INSERT INTO orders
	(order_id, customer_name, customer_phone, transaction_time, payment_method, status, gross_amount,
	 color_pages, bw_pages, copies, color_page_range, bw_page_range, original_name, file_path, proof_path,
	 pickup_location, print_mode)
	VALUES (:order_id, :customer_name, :customer_phone, :transaction_time, :payment_method, :status, :gross_amount,
	 :color_pages, :bw_pages, :copies, :color_page_range, :bw_page_range, :original_name, :file_path, :proof_path,
	 :pickup_location, :print_mode)`
	if _, err := r.db.NamedExecContext(ctx, query, order); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID retrieves one order row.
func (r *OrderRepository) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	const query = `SELECT order_id, customer_name, customer_phone, transaction_time, payment_method, status,
	 gross_amount, color_pages, bw_pages, copies, color_page_range, bw_page_range, original_name,
	 file_path, proof_path, pickup_location, print_mode
	FROM orders WHERE order_id = $1`
	var order models.Order
	if err := r.db.GetContext(ctx, &order, query, orderID); err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns orders newest-first, optionally filtered by pickup location.
func (r *OrderRepository) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	query := `SELECT order_id, customer_name, customer_phone, transaction_time, payment_method, status,
	 gross_amount, color_pages, bw_pages, copies, color_page_range, bw_page_range, original_name,
	 file_path, proof_path, pickup_location, print_mode
	FROM orders`
	args := make([]interface{}, 0, 1)
	if filter.PickupLocation != "" {
		query += " WHERE pickup_location = $1"
		args = append(args, filter.PickupLocation)
	}
	query += " ORDER BY transaction_time DESC"

	var orders []models.Order
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus mutates the single status field of one order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	const query = `UPDATE orders SET status = $2 WHERE order_id = $1`
	res, err := r.db.ExecContext(ctx, query, orderID, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check status update rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetFilesByIDs returns file/proof paths for the given orders, used for
// best-effort filesystem cleanup ahead of record deletion.
func (r *OrderRepository) GetFilesByIDs(ctx context.Context, orderIDs []string) ([]models.OrderFiles, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT order_id, file_path, proof_path FROM orders WHERE order_id IN (?)`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("build order files query: %w", err)
	}
	query = r.db.Rebind(query)
	var files []models.OrderFiles
	if err := r.db.SelectContext(ctx, &files, query, args...); err != nil {
		return nil, fmt.Errorf("select order files: %w", err)
	}
	return files, nil
}

// DeleteByIDs removes order records in one batched statement and returns the
// number of rows deleted.
func (r *OrderRepository) DeleteByIDs(ctx context.Context, orderIDs []string) (int64, error) {
	if len(orderIDs) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(`DELETE FROM orders WHERE order_id IN (?)`, orderIDs)
	if err != nil {
		return 0, fmt.Errorf("build order delete query: %w", err)
	}
	query = r.db.Rebind(query)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete orders: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check deleted rows: %w", err)
	}
	return affected, nil
}
