package dto

import (
	"time"

	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is a manual ledger entry. CreatedAt may be set to
// backdate synced or historical entries; it defaults to now.
type CreateTransactionRequest struct {
	Kind        string          `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
}

// TransactionResponse is one ledger entry.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	OrderID       *string         `json:"orderID,omitempty"`
	StockItemID   *string         `json:"stockItemID,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ListTransactionsResponse carries matching entries plus their fold.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalIncome  decimal.Decimal       `json:"totalIncome"`
	TotalExpense decimal.Decimal       `json:"totalExpense"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Kind:          string(txn.Kind),
		Amount:        txn.Amount,
		Category:      txn.Category,
		Description:   txn.Description,
		OrderID:       txn.OrderID,
		StockItemID:   txn.StockItemID,
		CreatedAt:     txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
