package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/kruathong/pos_ledger_backend/internal/apperrors"
	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
	portssvc "github.com/kruathong/pos_ledger_backend/internal/core/ports/services"
	"github.com/kruathong/pos_ledger_backend/internal/core/services"
	"github.com/kruathong/pos_ledger_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock OrderRepository ---
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) SaveOrder(ctx context.Context, order domain.Order, items []domain.OrderItem) error {
	args := m.Called(ctx, order, items)
	return args.Error(0)
}

func (m *MockOrderRepository) CompleteOrder(ctx context.Context, orderID string, incomeTransactionID string, now time.Time) (*domain.Order, error) {
	args := m.Called(ctx, orderID, incomeTransactionID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) CancelOrder(ctx context.Context, orderID string, now time.Time) (*domain.Order, error) {
	args := m.Called(ctx, orderID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindCompletedOrdersWithoutIncome(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

// --- Test Suite ---
type OrderServiceTestSuite struct {
	suite.Suite
	mockRepo *MockOrderRepository
	service  portssvc.OrderSvcFacade
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockOrderRepository)
	suite.service = services.NewOrderService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *OrderServiceTestSuite) TestCreateOrder_Success() {
	ctx := context.Background()
	req := dto.CreateOrderRequest{
		CustomerName: "Table 4",
		Items: []dto.OrderItemRequest{
			{ProductID: "p-1", Name: "Pad Thai", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(60)},
			{ProductID: "p-2", Name: "Thai Tea", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(30)},
		},
		TotalAmount:    decimal.NewFromInt(140),
		DiscountAmount: decimal.NewFromInt(10),
		PaymentMethod:  "cash",
	}

	suite.mockRepo.On("SaveOrder", ctx,
		mock.MatchedBy(func(order domain.Order) bool {
			return order.Status == domain.OrderPending &&
				order.TotalAmount.Equal(decimal.NewFromInt(140)) &&
				order.DiscountAmount.Equal(decimal.NewFromInt(10))
		}),
		mock.MatchedBy(func(items []domain.OrderItem) bool {
			return len(items) == 2 && items[0].ProductName == "Pad Thai"
		}),
	).Return(nil).Once()

	order, err := suite.service.CreateOrder(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(order)
	suite.Equal(domain.OrderPending, order.Status)
	suite.Len(order.Items, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_NoItems() {
	ctx := context.Background()
	req := dto.CreateOrderRequest{TotalAmount: decimal.NewFromInt(100)}

	order, err := suite.service.CreateOrder(ctx, req)

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveOrder")
}

func (suite *OrderServiceTestSuite) TestCreateOrder_NonPositiveItemQuantity() {
	ctx := context.Background()
	req := dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: "p-1", Name: "Pad Thai", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(60)},
		},
		TotalAmount: decimal.NewFromInt(60),
	}

	order, err := suite.service.CreateOrder(ctx, req)

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrInvalidQuantity)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveOrder")
}

func (suite *OrderServiceTestSuite) TestCompleteOrder_Success() {
	ctx := context.Background()
	orderID := "order-1"
	completed := &domain.Order{
		OrderID:     orderID,
		Status:      domain.OrderCompleted,
		TotalAmount: decimal.NewFromInt(140),
	}

	suite.mockRepo.On("CompleteOrder", ctx, orderID,
		mock.AnythingOfType("string"), mock.AnythingOfType("time.Time"),
	).Return(completed, nil).Once()

	order, err := suite.service.CompleteOrder(ctx, orderID)

	suite.Require().NoError(err)
	suite.Equal(domain.OrderCompleted, order.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCompleteOrder_AlreadyHandled() {
	ctx := context.Background()
	orderID := "order-1"

	suite.mockRepo.On("CompleteOrder", ctx, orderID,
		mock.AnythingOfType("string"), mock.AnythingOfType("time.Time"),
	).Return(nil, apperrors.ErrAlreadyHandled).Once()

	order, err := suite.service.CompleteOrder(ctx, orderID)

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrAlreadyHandled)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCancelOrder_Success() {
	ctx := context.Background()
	orderID := "order-1"
	cancelled := &domain.Order{OrderID: orderID, Status: domain.OrderCancelled}

	suite.mockRepo.On("CancelOrder", ctx, orderID, mock.AnythingOfType("time.Time")).
		Return(cancelled, nil).Once()

	order, err := suite.service.CancelOrder(ctx, orderID)

	suite.Require().NoError(err)
	suite.Equal(domain.OrderCancelled, order.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCancelOrder_NotFound() {
	ctx := context.Background()
	orderID := "missing"

	suite.mockRepo.On("CancelOrder", ctx, orderID, mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound).Once()

	order, err := suite.service.CancelOrder(ctx, orderID)

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestListOrders_DefaultLimit() {
	ctx := context.Background()

	suite.mockRepo.On("ListOrders", ctx, 50).Return([]domain.Order{}, nil).Once()

	orders, err := suite.service.ListOrders(ctx, 0)

	suite.Require().NoError(err)
	suite.Empty(orders)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
