package mapping

import (
	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
	"github.com/kruathong/pos_ledger_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		Kind:          models.TransactionKind(d.Kind),
		Amount:        d.Amount,
		Category:      d.Category,
		Description:   d.Description,
		OrderID:       d.OrderID,
		StockItemID:   d.StockItemID,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		Kind:          domain.TransactionKind(m.Kind),
		Amount:        m.Amount,
		Category:      m.Category,
		Description:   m.Description,
		OrderID:       m.OrderID,
		StockItemID:   m.StockItemID,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
