package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLogKind classifies a stock movement.
type StockLogKind string

const (
	StockLogRestock StockLogKind = "RESTOCK"
	StockLogUse     StockLogKind = "USE"
	StockLogWaste   StockLogKind = "WASTE"
)

// StockItem is a raw-material inventory record. Quantity is never negative
// and CostPerUnit is the weighted-average unit cost, recomputed only by
// acquisition operations (create/restock).
type StockItem struct {
	StockItemID       string          `json:"stockItemID"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Unit              string          `json:"unit"` // display label, e.g. "kg", "bottle"
	Quantity          decimal.Decimal `json:"quantity"`
	CostPerUnit       decimal.Decimal `json:"costPerUnit"`
	LowStockThreshold decimal.Decimal `json:"lowStockThreshold"`
	Supplier          *string         `json:"supplier,omitempty"`
	ExpiryDate        *time.Time      `json:"expiryDate,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	LastUpdatedAt     time.Time       `json:"lastUpdatedAt"`
}

// TotalValue is the capital currently committed to this item.
func (s StockItem) TotalValue() decimal.Decimal {
	return s.Quantity.Mul(s.CostPerUnit)
}

// IsLowStock reports whether the on-hand quantity has reached the threshold.
func (s StockItem) IsLowStock() bool {
	return s.Quantity.LessThanOrEqual(s.LowStockThreshold)
}

// StockLog is an immutable record of a single quantity change. Amount is
// positive for RESTOCK and negative for USE/WASTE; CostAtTime captures the
// item's weighted-average unit cost at the moment of the event.
type StockLog struct {
	StockLogID  string          `json:"stockLogID"`
	StockItemID string          `json:"stockItemID"`
	Kind        StockLogKind    `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	CostAtTime  decimal.Decimal `json:"costAtTime"`
	Reason      string          `json:"reason"`
	CreatedAt   time.Time       `json:"createdAt"`
}
