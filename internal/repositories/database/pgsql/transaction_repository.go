package pgsql

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kruathong/pos_ledger_backend/internal/apperrors"
	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
	portsrepo "github.com/kruathong/pos_ledger_backend/internal/core/ports/repositories"
	"github.com/kruathong/pos_ledger_backend/internal/models"
	"github.com/kruathong/pos_ledger_backend/internal/utils/mapping"
)

// PgxTransactionRepository persists the append-only financial ledger.
type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger entries.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const insertTransactionQuery = `
	INSERT INTO transactions (transaction_id, kind, amount, category, description, order_id, stock_item_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT DO NOTHING;
`

// InsertTransactionInTx appends a ledger entry within the caller's transaction.
// The partial unique index on (order_id) WHERE kind = 'INCOME' makes a second
// income posting for the same order a conflict; callers that must detect the
// skip check RowsAffected.
func (r *PgxTransactionRepository) InsertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	ct, err := tx.Exec(ctx, insertTransactionQuery,
		m.TransactionID,
		m.Kind,
		m.Amount,
		m.Category,
		m.Description,
		m.OrderID,
		m.StockItemID,
		m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrDuplicate
	}
	return nil
}

// SaveTransaction appends a single ledger entry.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.InsertTransactionInTx(ctx, tx, txn); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveTransactions appends a batch of ledger entries in one atomic unit.
// Entries that collide with the at-most-once income index are skipped; the
// returned count is the number of rows actually inserted.
func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) (int, error) {
	if len(txns) == 0 {
		return 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, txn := range txns {
		m := mapping.ToModelTransaction(txn)
		batch.Queue(insertTransactionQuery,
			m.TransactionID, m.Kind, m.Amount, m.Category, m.Description, m.OrderID, m.StockItemID, m.CreatedAt)
	}

	br := tx.SendBatch(ctx, batch)
	inserted := 0
	for range txns {
		ct, execErr := br.Exec()
		if execErr != nil {
			br.Close()
			return 0, apperrors.NewAppError(500, "failed to execute transaction insert batch", execErr)
		}
		inserted += int(ct.RowsAffected())
	}
	if err := br.Close(); err != nil {
		return 0, apperrors.NewAppError(500, "failed to close transaction insert batch", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return inserted, nil
}

// RebuildStockPurchaseExpenses atomically replaces the derived Stock Purchase
// expense set. The delete and the rebuild commit together, so a failure
// leaves the previous set intact.
func (r *PgxTransactionRepository) RebuildStockPurchaseExpenses(ctx context.Context, txns []domain.Transaction) (int, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	ct, err := tx.Exec(ctx,
		`DELETE FROM transactions WHERE kind = $1 AND category = $2;`,
		models.Expense, domain.CategoryStockPurchase)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete stock purchase expenses", err)
	}
	removed := int(ct.RowsAffected())

	batch := &pgx.Batch{}
	for _, txn := range txns {
		m := mapping.ToModelTransaction(txn)
		batch.Queue(insertTransactionQuery,
			m.TransactionID, m.Kind, m.Amount, m.Category, m.Description, m.OrderID, m.StockItemID, m.CreatedAt)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return 0, apperrors.NewAppError(500, "failed to rebuild stock purchase expenses", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return removed, nil
}

// ListTransactions retrieves ledger entries matching the filter, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, kind, amount, category, description, order_id, stock_item_id, created_at
		FROM transactions
	`
	clauses := ""
	args := []interface{}{}

	addClause := func(cond string) {
		if clauses == "" {
			clauses = " WHERE " + cond
		} else {
			clauses += " AND " + cond
		}
	}

	if filter.From != nil {
		args = append(args, *filter.From)
		addClause("created_at >= $" + strconv.Itoa(len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		addClause("created_at <= $" + strconv.Itoa(len(args)))
	}
	if filter.Kind != nil {
		args = append(args, string(*filter.Kind))
		addClause("kind = $" + strconv.Itoa(len(args)))
	}

	query += clauses + " ORDER BY created_at DESC, transaction_id DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(
			&t.TransactionID,
			&t.Kind,
			&t.Amount,
			&t.Category,
			&t.Description,
			&t.OrderID,
			&t.StockItemID,
			&t.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	return mapping.ToDomainTransactionSlice(transactions), nil
}

// SumTransactions folds income and expense totals over the date range in SQL.
func (r *PgxTransactionRepository) SumTransactions(ctx context.Context, dateRange domain.DateRange) (domain.LedgerTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE kind = 'INCOME'), 0),
			COALESCE(SUM(amount) FILTER (WHERE kind = 'EXPENSE'), 0)
		FROM transactions
	`
	clauses := ""
	args := []interface{}{}
	if dateRange.From != nil {
		args = append(args, *dateRange.From)
		clauses = " WHERE created_at >= $" + strconv.Itoa(len(args))
	}
	if dateRange.To != nil {
		args = append(args, *dateRange.To)
		if clauses == "" {
			clauses = " WHERE created_at <= $" + strconv.Itoa(len(args))
		} else {
			clauses += " AND created_at <= $" + strconv.Itoa(len(args))
		}
	}
	query += clauses + ";"

	var totals domain.LedgerTotals
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&totals.TotalIncome, &totals.TotalExpense); err != nil {
		return domain.LedgerTotals{}, apperrors.NewAppError(500, "failed to sum transactions", err)
	}
	return totals, nil
}
