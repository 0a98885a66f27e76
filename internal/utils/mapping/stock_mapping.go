package mapping

import (
	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
	"github.com/kruathong/pos_ledger_backend/internal/models"
)

// ToModelStockItem converts a domain StockItem to a model StockItem
func ToModelStockItem(d domain.StockItem) models.StockItem {
	return models.StockItem{
		StockItemID:       d.StockItemID,
		Name:              d.Name,
		Category:          d.Category,
		Unit:              d.Unit,
		Quantity:          d.Quantity,
		CostPerUnit:       d.CostPerUnit,
		LowStockThreshold: d.LowStockThreshold,
		Supplier:          d.Supplier,
		ExpiryDate:        d.ExpiryDate,
		CreatedAt:         d.CreatedAt,
		LastUpdatedAt:     d.LastUpdatedAt,
	}
}

// ToDomainStockItem converts a model StockItem to a domain StockItem
func ToDomainStockItem(m models.StockItem) domain.StockItem {
	return domain.StockItem{
		StockItemID:       m.StockItemID,
		Name:              m.Name,
		Category:          m.Category,
		Unit:              m.Unit,
		Quantity:          m.Quantity,
		CostPerUnit:       m.CostPerUnit,
		LowStockThreshold: m.LowStockThreshold,
		Supplier:          m.Supplier,
		ExpiryDate:        m.ExpiryDate,
		CreatedAt:         m.CreatedAt,
		LastUpdatedAt:     m.LastUpdatedAt,
	}
}

// ToDomainStockItemSlice converts a slice of model StockItems to domain StockItems
func ToDomainStockItemSlice(ms []models.StockItem) []domain.StockItem {
	ds := make([]domain.StockItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStockItem(m)
	}
	return ds
}

// ToModelStockLog converts a domain StockLog to a model StockLog
func ToModelStockLog(d domain.StockLog) models.StockLog {
	return models.StockLog{
		StockLogID:  d.StockLogID,
		StockItemID: d.StockItemID,
		Kind:        models.StockLogKind(d.Kind),
		Amount:      d.Amount,
		CostAtTime:  d.CostAtTime,
		Reason:      d.Reason,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainStockLog converts a model StockLog to a domain StockLog
func ToDomainStockLog(m models.StockLog) domain.StockLog {
	return domain.StockLog{
		StockLogID:  m.StockLogID,
		StockItemID: m.StockItemID,
		Kind:        domain.StockLogKind(m.Kind),
		Amount:      m.Amount,
		CostAtTime:  m.CostAtTime,
		Reason:      m.Reason,
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomainStockLogSlice converts a slice of model StockLogs to domain StockLogs
func ToDomainStockLogSlice(ms []models.StockLog) []domain.StockLog {
	ds := make([]domain.StockLog, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStockLog(m)
	}
	return ds
}
