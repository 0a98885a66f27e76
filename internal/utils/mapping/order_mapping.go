package mapping

import (
	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
	"github.com/kruathong/pos_ledger_backend/internal/models"
)

// ToModelOrder converts a domain Order to a model Order (without items)
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:        d.OrderID,
		CustomerName:   d.CustomerName,
		TotalAmount:    d.TotalAmount,
		DiscountAmount: d.DiscountAmount,
		PaymentMethod:  d.PaymentMethod,
		Status:         models.OrderStatus(d.Status),
		CreatedAt:      d.CreatedAt,
		LastUpdatedAt:  d.LastUpdatedAt,
	}
}

// ToDomainOrder converts a model Order to a domain Order (without items)
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:        m.OrderID,
		CustomerName:   m.CustomerName,
		TotalAmount:    m.TotalAmount,
		DiscountAmount: m.DiscountAmount,
		PaymentMethod:  m.PaymentMethod,
		Status:         domain.OrderStatus(m.Status),
		CreatedAt:      m.CreatedAt,
		LastUpdatedAt:  m.LastUpdatedAt,
	}
}

// ToDomainOrderSlice converts a slice of model Orders to domain Orders
func ToDomainOrderSlice(ms []models.Order) []domain.Order {
	ds := make([]domain.Order, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrder(m)
	}
	return ds
}

// ToModelOrderItem converts a domain OrderItem to a model OrderItem
func ToModelOrderItem(d domain.OrderItem) models.OrderItem {
	return models.OrderItem{
		OrderItemID: d.OrderItemID,
		OrderID:     d.OrderID,
		ProductID:   d.ProductID,
		ProductName: d.ProductName,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
	}
}

// ToDomainOrderItem converts a model OrderItem to a domain OrderItem
func ToDomainOrderItem(m models.OrderItem) domain.OrderItem {
	return domain.OrderItem{
		OrderItemID: m.OrderItemID,
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
	}
}

// ToDomainOrderItemSlice converts a slice of model OrderItems to domain OrderItems
func ToDomainOrderItemSlice(ms []models.OrderItem) []domain.OrderItem {
	ds := make([]domain.OrderItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrderItem(m)
	}
	return ds
}
