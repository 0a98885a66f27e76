package dto

import (
	"time"

	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateStockItemRequest is the payload for creating a stock item. TotalCost
// is the acquisition cost of the whole initial batch, not a unit price.
type CreateStockItemRequest struct {
	Name              string           `json:"name" binding:"required"`
	Category          string           `json:"category"`
	Unit              string           `json:"unit" binding:"required"`
	Quantity          decimal.Decimal  `json:"quantity" binding:"dgte0"`
	TotalCost         decimal.Decimal  `json:"totalCost" binding:"dgte0"`
	LowStockThreshold *decimal.Decimal `json:"lowStockThreshold,omitempty"`
	Supplier          *string          `json:"supplier,omitempty"`
	ExpiryDate        *time.Time       `json:"expiryDate,omitempty"`
}

// RestockRequest adds a priced batch to an existing item.
type RestockRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Cost     decimal.Decimal `json:"cost" binding:"dgte0"`
	Supplier *string         `json:"supplier,omitempty"`
}

// DeductStockRequest cuts stock for usage or waste.
type DeductStockRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Kind   string          `json:"kind" binding:"omitempty,oneof=USE WASTE"`
	Reason string          `json:"reason"`
}

// StockItemResponse is a stock item as served to dashboards, with the
// derived total value and low-stock flag.
type StockItemResponse struct {
	StockItemID       string          `json:"stockItemID"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Unit              string          `json:"unit"`
	Quantity          decimal.Decimal `json:"quantity"`
	CostPerUnit       decimal.Decimal `json:"costPerUnit"`
	TotalValue        decimal.Decimal `json:"totalValue"`
	LowStockThreshold decimal.Decimal `json:"lowStockThreshold"`
	LowStock          bool            `json:"lowStock"`
	Supplier          *string         `json:"supplier,omitempty"`
	ExpiryDate        *time.Time      `json:"expiryDate,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// StockOverviewResponse is the item list plus the shop-wide stock value.
type StockOverviewResponse struct {
	Items      []StockItemResponse `json:"items"`
	TotalValue decimal.Decimal     `json:"totalValue"`
}

// StockLogResponse is one movement log entry.
type StockLogResponse struct {
	StockLogID string          `json:"stockLogID"`
	Kind       string          `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	CostAtTime decimal.Decimal `json:"costAtTime"`
	Reason     string          `json:"reason"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ToStockItemResponse converts a domain.StockItem to StockItemResponse DTO.
func ToStockItemResponse(item *domain.StockItem) StockItemResponse {
	return StockItemResponse{
		StockItemID:       item.StockItemID,
		Name:              item.Name,
		Category:          item.Category,
		Unit:              item.Unit,
		Quantity:          item.Quantity,
		CostPerUnit:       item.CostPerUnit,
		TotalValue:        item.TotalValue(),
		LowStockThreshold: item.LowStockThreshold,
		LowStock:          item.IsLowStock(),
		Supplier:          item.Supplier,
		ExpiryDate:        item.ExpiryDate,
		CreatedAt:         item.CreatedAt,
	}
}

// ToStockOverviewResponse converts a domain.StockOverview to its DTO.
func ToStockOverviewResponse(overview *domain.StockOverview) StockOverviewResponse {
	items := make([]StockItemResponse, len(overview.Items))
	for i := range overview.Items {
		items[i] = ToStockItemResponse(&overview.Items[i])
	}
	return StockOverviewResponse{Items: items, TotalValue: overview.TotalValue}
}

// ToStockLogResponses converts a slice of domain.StockLog to DTOs.
func ToStockLogResponses(logs []domain.StockLog) []StockLogResponse {
	responses := make([]StockLogResponse, len(logs))
	for i, l := range logs {
		responses[i] = StockLogResponse{
			StockLogID: l.StockLogID,
			Kind:       string(l.Kind),
			Amount:     l.Amount,
			CostAtTime: l.CostAtTime,
			Reason:     l.Reason,
			CreatedAt:  l.CreatedAt,
		}
	}
	return responses
}
