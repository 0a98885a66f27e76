package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order. PENDING is the only
// non-terminal state; COMPLETED and CANCELLED admit no further transitions.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// IsTerminal reports whether no further status transition is legal.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// Order is a sales order created by order intake. The core owns only the
// status field after creation; line items are immutable snapshots.
//
// TotalAmount is the post-discount amount actually charged; completing the
// order posts exactly one INCOME transaction for this amount.
type Order struct {
	OrderID        string          `json:"orderID"`
	CustomerName   string          `json:"customerName"`
	Items          []OrderItem     `json:"items,omitempty"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	PaymentMethod  string          `json:"paymentMethod"`
	Status         OrderStatus     `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"` // time of last status change
}

// OrderItem is a line-item snapshot captured at order time. ProductID is an
// opaque catalog reference; name and price are frozen copies, not live joins.
type OrderItem struct {
	OrderItemID string          `json:"orderItemID"`
	OrderID     string          `json:"orderID"`
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}
