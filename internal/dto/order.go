package dto

import (
	"time"

	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one line item of an incoming order. Name and unit price
// are snapshots captured by the intake caller, not catalog lookups.
type OrderItemRequest struct {
	ProductID string          `json:"productID" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"dgte0"`
}

// CreateOrderRequest is the order-intake payload. DiscountAmount is a
// first-class numeric field; TotalAmount is the post-discount amount charged.
type CreateOrderRequest struct {
	CustomerName   string             `json:"customerName"`
	Items          []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	TotalAmount    decimal.Decimal    `json:"totalAmount" binding:"required"`
	DiscountAmount decimal.Decimal    `json:"discountAmount" binding:"dgte0"`
	PaymentMethod  string             `json:"paymentMethod"`
}

// OrderItemResponse is one persisted line-item snapshot.
type OrderItemResponse struct {
	OrderItemID string          `json:"orderItemID"`
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// OrderResponse is an order with its status and line items.
type OrderResponse struct {
	OrderID        string              `json:"orderID"`
	CustomerName   string              `json:"customerName"`
	Items          []OrderItemResponse `json:"items,omitempty"`
	TotalAmount    decimal.Decimal     `json:"totalAmount"`
	DiscountAmount decimal.Decimal     `json:"discountAmount"`
	PaymentMethod  string              `json:"paymentMethod"`
	Status         string              `json:"status"`
	CreatedAt      time.Time           `json:"createdAt"`
	LastUpdatedAt  time.Time           `json:"lastUpdatedAt"`
}

// ToOrderResponse converts a domain.Order to OrderResponse DTO.
func ToOrderResponse(order *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			OrderItemID: item.OrderItemID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	return OrderResponse{
		OrderID:        order.OrderID,
		CustomerName:   order.CustomerName,
		Items:          items,
		TotalAmount:    order.TotalAmount,
		DiscountAmount: order.DiscountAmount,
		PaymentMethod:  order.PaymentMethod,
		Status:         string(order.Status),
		CreatedAt:      order.CreatedAt,
		LastUpdatedAt:  order.LastUpdatedAt,
	}
}

// ToOrderResponses converts a slice of domain.Order to DTOs.
func ToOrderResponses(orders []domain.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
