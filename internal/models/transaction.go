package models

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

// Transaction mirrors the transactions table. Rows are append-only; only the
// reconciliation rebuild deletes derived Stock Purchase expenses.
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
