package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind indicates whether a ledger entry is income or expense.
type TransactionKind string

const (
	Income  TransactionKind = "INCOME"
	Expense TransactionKind = "EXPENSE"
)

// Well-known ledger categories written by the core itself. Manual entries may
// carry arbitrary categories.
const (
	CategorySales           = "Sales"
	CategoryStockPurchase   = "Stock Purchase"
	CategoryStockAdjustment = "Stock Adjustment"
)

// Transaction is one append-only entry in the financial ledger. Entries are
// never mutated or deleted through normal operation; only the reconciliation
// rebuild removes derived Stock Purchase expenses.
//
// Amount is positive except for Stock Adjustment reversals, which carry an
// explicit signed amount. OrderID and StockItemID are weak back-references
// used for reconciliation lookups only.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	Kind          TransactionKind `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	OrderID       *string         `json:"orderID,omitempty"`
	StockItemID   *string         `json:"stockItemID,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// TransactionFilter narrows ledger queries. Nil fields match everything.
type TransactionFilter struct {
	From *time.Time
	To   *time.Time
	Kind *TransactionKind
}

// LedgerTotals is the result of folding income and expense over a date range.
type LedgerTotals struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
}
