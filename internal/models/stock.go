package models

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

// StockItem mirrors the stock_items table.
type StockItem struct {
	StockItemID       string          `json:"stockItemID"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Unit              string          `json:"unit"`
	Quantity          decimal.Decimal `json:"quantity"`
	CostPerUnit       decimal.Decimal `json:"costPerUnit"`
	LowStockThreshold decimal.Decimal `json:"lowStockThreshold"`
	Supplier          *string         `json:"supplier,omitempty"`
	ExpiryDate        *time.Time      `json:"expiryDate,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	LastUpdatedAt     time.Time       `json:"lastUpdatedAt"`
}

// StockLog mirrors the stock_logs table. Rows are append-only.
type StockLog struct {
	StockLogID  string          `json:"stockLogID"`
	StockItemID string          `json:"stockItemID"`
	Kind        StockLogKind    `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	CostAtTime  decimal.Decimal `json:"costAtTime"`
	Reason      string          `json:"reason"`
	CreatedAt   time.Time       `json:"createdAt"`
}
