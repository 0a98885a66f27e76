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
	"github.com/kruathong/pos_ledger_backend/internal/utils/costing"
	"github.com/kruathong/pos_ledger_backend/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

// PgxStockRepository owns StockItem and StockLog persistence. Acquisition
// operations recompute the weighted-average unit cost while holding the item
// row lock, and post their EXPENSE entry through the ledger repository inside
// the same transaction.
type PgxStockRepository struct {
	BaseRepository
	ledgerRepo portsrepo.TransactionTxSupport
}

// newPgxStockRepository creates a new repository for stock data.
func newPgxStockRepository(pool *pgxpool.Pool, ledgerRepo portsrepo.TransactionTxSupport) portsrepo.StockRepositoryFacade {
	return &PgxStockRepository{
		BaseRepository: BaseRepository{Pool: pool},
		ledgerRepo:     ledgerRepo,
	}
}

// Ensure PgxStockRepository implements portsrepo.StockRepositoryFacade
var _ portsrepo.StockRepositoryFacade = (*PgxStockRepository)(nil)

const stockItemColumns = `stock_item_id, name, category, unit, quantity, cost_per_unit, low_stock_threshold, supplier, expiry_date, created_at, last_updated_at`

const insertStockLogQuery = `
	INSERT INTO stock_logs (stock_log_id, stock_item_id, kind, amount, cost_at_time, reason, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

func scanStockItem(row pgx.Row) (*models.StockItem, error) {
	var m models.StockItem
	err := row.Scan(
		&m.StockItemID,
		&m.Name,
		&m.Category,
		&m.Unit,
		&m.Quantity,
		&m.CostPerUnit,
		&m.LowStockThreshold,
		&m.Supplier,
		&m.ExpiryDate,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// lockStockItem selects an item row FOR UPDATE, serializing concurrent
// read-modify-write cycles on the same item without blocking other items.
func (r *PgxStockRepository) lockStockItem(ctx context.Context, tx pgx.Tx, stockItemID string) (*models.StockItem, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+stockItemColumns+` FROM stock_items WHERE stock_item_id = $1 FOR UPDATE;`,
		stockItemID)
	m, err := scanStockItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock stock item "+stockItemID, err)
	}
	return m, nil
}

// SaveStockItem persists a new item, its initial RESTOCK log and, when
// expense is non-nil, the acquisition EXPENSE entry as one atomic unit.
func (r *PgxStockRepository) SaveStockItem(ctx context.Context, item domain.StockItem, log domain.StockLog, expense *domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelStockItem(item)
	_, err = tx.Exec(ctx, `
		INSERT INTO stock_items (`+stockItemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`,
		m.StockItemID, m.Name, m.Category, m.Unit, m.Quantity, m.CostPerUnit,
		m.LowStockThreshold, m.Supplier, m.ExpiryDate, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert stock item "+m.StockItemID, err)
	}

	ml := mapping.ToModelStockLog(log)
	_, err = tx.Exec(ctx, insertStockLogQuery,
		ml.StockLogID, ml.StockItemID, ml.Kind, ml.Amount, ml.CostAtTime, ml.Reason, ml.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert stock log for item "+m.StockItemID, err)
	}

	if expense != nil {
		if err := r.ledgerRepo.InsertTransactionInTx(ctx, tx, *expense); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// ApplyRestock recomputes the weighted-average unit cost from the new batch
// and posts the batch EXPENSE, all under the item's row lock.
func (r *PgxStockRepository) ApplyRestock(ctx context.Context, stockItemID string, addedQuantity, batchCost decimal.Decimal, supplier *string, logID, transactionID string, now time.Time) (*domain.StockItem, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m, err := r.lockStockItem(ctx, tx, stockItemID)
	if err != nil {
		return nil, err
	}

	newCost := costing.WeightedAverageUnitCost(m.Quantity, m.CostPerUnit, addedQuantity, batchCost)
	newQuantity := m.Quantity.Add(addedQuantity)
	if supplier != nil {
		m.Supplier = supplier
	}

	_, err = tx.Exec(ctx, `
		UPDATE stock_items
		SET quantity = $2, cost_per_unit = $3, supplier = $4, last_updated_at = $5
		WHERE stock_item_id = $1;
	`, stockItemID, newQuantity, newCost, m.Supplier, now)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update stock item "+stockItemID, err)
	}

	_, err = tx.Exec(ctx, insertStockLogQuery,
		logID, stockItemID, models.StockLogRestock, addedQuantity, newCost, "Restock", now)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert restock log for item "+stockItemID, err)
	}

	expense := domain.Transaction{
		TransactionID: transactionID,
		Kind:          domain.Expense,
		Amount:        batchCost,
		Category:      domain.CategoryStockPurchase,
		Description:   fmt.Sprintf("Restock: %s (%s %s)", m.Name, addedQuantity.String(), m.Unit),
		StockItemID:   &m.StockItemID,
		CreatedAt:     now,
	}
	if err := r.ledgerRepo.InsertTransactionInTx(ctx, tx, expense); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	m.Quantity = newQuantity
	m.CostPerUnit = newCost
	m.LastUpdatedAt = now
	updated := mapping.ToDomainStockItem(*m)
	return &updated, nil
}

// ApplyDeduction decrements the item's quantity under its row lock. The unit
// cost is not recomputed; only acquisition events change cost. No ledger
// entry: the cash event was recognized at purchase time.
func (r *PgxStockRepository) ApplyDeduction(ctx context.Context, stockItemID string, amount decimal.Decimal, kind domain.StockLogKind, reason string, logID string, now time.Time) (*domain.StockItem, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m, err := r.lockStockItem(ctx, tx, stockItemID)
	if err != nil {
		return nil, err
	}

	if amount.GreaterThan(m.Quantity) {
		return nil, fmt.Errorf("%w: cannot deduct %s from %s on hand", apperrors.ErrInsufficientStock, amount.String(), m.Quantity.String())
	}
	newQuantity := m.Quantity.Sub(amount)

	_, err = tx.Exec(ctx, `
		UPDATE stock_items SET quantity = $2, last_updated_at = $3 WHERE stock_item_id = $1;
	`, stockItemID, newQuantity, now)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update stock item "+stockItemID, err)
	}

	_, err = tx.Exec(ctx, insertStockLogQuery,
		logID, stockItemID, models.StockLogKind(kind), amount.Neg(), m.CostPerUnit, reason, now)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert deduction log for item "+stockItemID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	m.Quantity = newQuantity
	m.LastUpdatedAt = now
	updated := mapping.ToDomainStockItem(*m)
	return &updated, nil
}

// RemoveStockItem deletes an item after reversing the expense for its
// remaining value, keeping total ledger expense aligned with the capital
// still committed to inventory. Stock logs are retained for audit.
func (r *PgxStockRepository) RemoveStockItem(ctx context.Context, stockItemID string, adjustmentTransactionID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m, err := r.lockStockItem(ctx, tx, stockItemID)
	if err != nil {
		return err
	}

	totalValue := m.Quantity.Mul(m.CostPerUnit)
	if !totalValue.IsZero() {
		adjustment := domain.Transaction{
			TransactionID: adjustmentTransactionID,
			Kind:          domain.Expense,
			Amount:        totalValue.Neg(),
			Category:      domain.CategoryStockAdjustment,
			Description:   fmt.Sprintf("Removed stock item: %s", m.Name),
			StockItemID:   &m.StockItemID,
			CreatedAt:     now,
		}
		if err := r.ledgerRepo.InsertTransactionInTx(ctx, tx, adjustment); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM stock_items WHERE stock_item_id = $1;`, stockItemID); err != nil {
		return apperrors.NewAppError(500, "failed to delete stock item "+stockItemID, err)
	}

	return r.Commit(ctx, tx)
}

// FindStockItemByID retrieves a stock item by its ID.
func (r *PgxStockRepository) FindStockItemByID(ctx context.Context, stockItemID string) (*domain.StockItem, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+stockItemColumns+` FROM stock_items WHERE stock_item_id = $1;`, stockItemID)
	m, err := scanStockItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find stock item "+stockItemID, err)
	}
	item := mapping.ToDomainStockItem(*m)
	return &item, nil
}

// ListStockItems retrieves all stock items ordered by name.
func (r *PgxStockRepository) ListStockItems(ctx context.Context) ([]domain.StockItem, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+stockItemColumns+` FROM stock_items ORDER BY name ASC;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query stock items", err)
	}
	defer rows.Close()

	items := []models.StockItem{}
	for rows.Next() {
		m, err := scanStockItem(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan stock item row", err)
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating stock item rows", err)
	}

	return mapping.ToDomainStockItemSlice(items), nil
}

// FindStockLogsByItemID retrieves the most recent logs for an item, newest first.
func (r *PgxStockRepository) FindStockLogsByItemID(ctx context.Context, stockItemID string, limit int) ([]domain.StockLog, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT stock_log_id, stock_item_id, kind, amount, cost_at_time, reason, created_at
		FROM stock_logs
		WHERE stock_item_id = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`, stockItemID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query stock logs for item "+stockItemID, err)
	}
	defer rows.Close()

	logs := []models.StockLog{}
	for rows.Next() {
		var l models.StockLog
		if err := rows.Scan(
			&l.StockLogID,
			&l.StockItemID,
			&l.Kind,
			&l.Amount,
			&l.CostAtTime,
			&l.Reason,
			&l.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan stock log row", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating stock log rows", err)
	}

	return mapping.ToDomainStockLogSlice(logs), nil
}
