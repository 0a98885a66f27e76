package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kruathong/pos_ledger_backend/internal/apperrors"
	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
	portsrepo "github.com/kruathong/pos_ledger_backend/internal/core/ports/repositories"
	"github.com/kruathong/pos_ledger_backend/internal/models"
	"github.com/kruathong/pos_ledger_backend/internal/utils/mapping"
)

// PgxOrderRepository owns Order and OrderItem persistence. Completion posts
// the linked INCOME ledger entry through the ledger repository inside the
// same transaction as the status flip.
type PgxOrderRepository struct {
	BaseRepository
	ledgerRepo portsrepo.TransactionTxSupport
}

// newPgxOrderRepository creates a new repository for order data.
func newPgxOrderRepository(pool *pgxpool.Pool, ledgerRepo portsrepo.TransactionTxSupport) portsrepo.OrderRepositoryFacade {
	return &PgxOrderRepository{
		BaseRepository: BaseRepository{Pool: pool},
		ledgerRepo:     ledgerRepo,
	}
}

// Ensure PgxOrderRepository implements portsrepo.OrderRepositoryFacade
var _ portsrepo.OrderRepositoryFacade = (*PgxOrderRepository)(nil)

const orderColumns = `order_id, customer_name, total_amount, discount_amount, payment_method, status, created_at, last_updated_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var m models.Order
	err := row.Scan(
		&m.OrderID,
		&m.CustomerName,
		&m.TotalAmount,
		&m.DiscountAmount,
		&m.PaymentMethod,
		&m.Status,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveOrder persists a new PENDING order and its line-item snapshots in one
// atomic unit.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order, items []domain.OrderItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelOrder(order)
	_, err = tx.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`, m.OrderID, m.CustomerName, m.TotalAmount, m.DiscountAmount, m.PaymentMethod, m.Status, m.CreatedAt, m.LastUpdatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert order "+m.OrderID, err)
	}

	batch := &pgx.Batch{}
	for _, item := range items {
		mi := mapping.ToModelOrderItem(item)
		batch.Queue(`
			INSERT INTO order_items (order_item_id, order_id, product_id, product_name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6);
		`, mi.OrderItemID, mi.OrderID, mi.ProductID, mi.ProductName, mi.Quantity, mi.UnitPrice)
	}
	br := tx.SendBatch(ctx, batch)
	for range items {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return apperrors.NewAppError(500, "failed to insert order items for order "+m.OrderID, err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close order item batch for order "+m.OrderID, err)
	}

	return r.Commit(ctx, tx)
}

// CompleteOrder flips a PENDING order to COMPLETED and posts its INCOME entry
// atomically. The row lock serializes racing completion and cancellation
// attempts; the loser sees a terminal status and gets ErrAlreadyHandled.
func (r *PgxOrderRepository) CompleteOrder(ctx context.Context, orderID string, incomeTransactionID string, now time.Time) (*domain.Order, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m, err := r.lockOrder(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if m.Status != models.OrderPending {
		return nil, fmt.Errorf("%w: order %s is %s", apperrors.ErrAlreadyHandled, orderID, m.Status)
	}

	_, err = tx.Exec(ctx, `
		UPDATE orders SET status = $2, last_updated_at = $3 WHERE order_id = $1;
	`, orderID, models.OrderCompleted, now)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update order "+orderID, err)
	}

	income := domain.Transaction{
		TransactionID: incomeTransactionID,
		Kind:          domain.Income,
		Amount:        m.TotalAmount,
		Category:      domain.CategorySales,
		Description:   fmt.Sprintf("Order: %s", m.CustomerName),
		OrderID:       &m.OrderID,
		CreatedAt:     now,
	}
	if err := r.ledgerRepo.InsertTransactionInTx(ctx, tx, income); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	m.Status = models.OrderCompleted
	m.LastUpdatedAt = now
	updated := mapping.ToDomainOrder(*m)
	return &updated, nil
}

// CancelOrder flips a PENDING order to CANCELLED. No ledger entry is written;
// a cancelled order never produced revenue.
func (r *PgxOrderRepository) CancelOrder(ctx context.Context, orderID string, now time.Time) (*domain.Order, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m, err := r.lockOrder(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if m.Status != models.OrderPending {
		return nil, fmt.Errorf("%w: order %s is %s", apperrors.ErrAlreadyHandled, orderID, m.Status)
	}

	_, err = tx.Exec(ctx, `
		UPDATE orders SET status = $2, last_updated_at = $3 WHERE order_id = $1;
	`, orderID, models.OrderCancelled, now)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update order "+orderID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	m.Status = models.OrderCancelled
	m.LastUpdatedAt = now
	updated := mapping.ToDomainOrder(*m)
	return &updated, nil
}

func (r *PgxOrderRepository) lockOrder(ctx context.Context, tx pgx.Tx, orderID string) (*models.Order, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE order_id = $1 FOR UPDATE;`, orderID)
	m, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock order "+orderID, err)
	}
	return m, nil
}

// FindOrderByID retrieves an order with its line-item snapshots.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE order_id = $1;`, orderID)
	m, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find order "+orderID, err)
	}

	items, err := r.findOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order := mapping.ToDomainOrder(*m)
	order.Items = items
	return &order, nil
}

// ListOrders retrieves the most recent orders with their items, newest first.
func (r *PgxOrderRepository) ListOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, order_id DESC LIMIT $1;`, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query orders", err)
	}
	defer rows.Close()

	ms := []models.Order{}
	for rows.Next() {
		m, err := scanOrder(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan order row", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating order rows", err)
	}

	orders := mapping.ToDomainOrderSlice(ms)
	for i := range orders {
		items, err := r.findOrderItems(ctx, orders[i].OrderID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

// FindCompletedOrdersWithoutIncome retrieves COMPLETED orders that have no
// linked INCOME ledger entry, oldest first so reconciliation posts income in
// original completion order.
func (r *PgxOrderRepository) FindCompletedOrdersWithoutIncome(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		WHERE o.status = $1
		  AND NOT EXISTS (
			SELECT 1 FROM transactions t
			WHERE t.order_id = o.order_id AND t.kind = $2
		  )
		ORDER BY o.created_at ASC;
	`, models.OrderCompleted, models.Income)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query completed orders without income", err)
	}
	defer rows.Close()

	ms := []models.Order{}
	for rows.Next() {
		m, err := scanOrder(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan order row", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating order rows", err)
	}

	return mapping.ToDomainOrderSlice(ms), nil
}

func (r *PgxOrderRepository) findOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT order_item_id, order_id, product_id, product_name, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY order_item_id ASC;
	`, orderID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query order items for order "+orderID, err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var i models.OrderItem
		if err := rows.Scan(&i.OrderItemID, &i.OrderID, &i.ProductID, &i.ProductName, &i.Quantity, &i.UnitPrice); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan order item row", err)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating order item rows", err)
	}

	return mapping.ToDomainOrderItemSlice(items), nil
}
