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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock StockRepository ---
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) SaveStockItem(ctx context.Context, item domain.StockItem, log domain.StockLog, expense *domain.Transaction) error {
	args := m.Called(ctx, item, log, expense)
	return args.Error(0)
}

func (m *MockStockRepository) ApplyRestock(ctx context.Context, stockItemID string, addedQuantity, batchCost decimal.Decimal, supplier *string, logID, transactionID string, now time.Time) (*domain.StockItem, error) {
	args := m.Called(ctx, stockItemID, addedQuantity, batchCost, supplier, logID, transactionID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockItem), args.Error(1)
}

func (m *MockStockRepository) ApplyDeduction(ctx context.Context, stockItemID string, amount decimal.Decimal, kind domain.StockLogKind, reason string, logID string, now time.Time) (*domain.StockItem, error) {
	args := m.Called(ctx, stockItemID, amount, kind, reason, logID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockItem), args.Error(1)
}

func (m *MockStockRepository) RemoveStockItem(ctx context.Context, stockItemID string, adjustmentTransactionID string, now time.Time) error {
	args := m.Called(ctx, stockItemID, adjustmentTransactionID, now)
	return args.Error(0)
}

func (m *MockStockRepository) FindStockItemByID(ctx context.Context, stockItemID string) (*domain.StockItem, error) {
	args := m.Called(ctx, stockItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockItem), args.Error(1)
}

func (m *MockStockRepository) ListStockItems(ctx context.Context) ([]domain.StockItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockItem), args.Error(1)
}

func (m *MockStockRepository) FindStockLogsByItemID(ctx context.Context, stockItemID string, limit int) ([]domain.StockLog, error) {
	args := m.Called(ctx, stockItemID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockLog), args.Error(1)
}

// --- Test Suite ---
type StockServiceTestSuite struct {
	suite.Suite
	mockRepo *MockStockRepository
	service  portssvc.StockSvcFacade
}

func (suite *StockServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockStockRepository)
	suite.service = services.NewStockService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *StockServiceTestSuite) TestCreateStockItem_Success() {
	ctx := context.Background()
	req := dto.CreateStockItemRequest{
		Name:      "Jasmine Rice",
		Category:  "Dry Goods",
		Unit:      "kg",
		Quantity:  decimal.NewFromInt(100),
		TotalCost: decimal.NewFromInt(1000),
	}

	suite.mockRepo.On("SaveStockItem", ctx,
		mock.MatchedBy(func(item domain.StockItem) bool {
			return item.Name == req.Name &&
				item.Quantity.Equal(decimal.NewFromInt(100)) &&
				item.CostPerUnit.Equal(decimal.NewFromInt(10)) &&
				item.LowStockThreshold.Equal(decimal.NewFromInt(5))
		}),
		mock.MatchedBy(func(log domain.StockLog) bool {
			return log.Kind == domain.StockLogRestock &&
				log.Amount.Equal(decimal.NewFromInt(100)) &&
				log.CostAtTime.Equal(decimal.NewFromInt(10))
		}),
		mock.MatchedBy(func(expense *domain.Transaction) bool {
			return expense != nil &&
				expense.Kind == domain.Expense &&
				expense.Amount.Equal(decimal.NewFromInt(1000)) &&
				expense.Category == domain.CategoryStockPurchase &&
				expense.StockItemID != nil
		}),
	).Return(nil).Once()

	item, err := suite.service.CreateStockItem(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(item)
	suite.True(item.CostPerUnit.Equal(decimal.NewFromInt(10)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestCreateStockItem_ZeroQuantityZeroCost() {
	ctx := context.Background()
	req := dto.CreateStockItemRequest{
		Name:     "Napkins",
		Unit:     "pack",
		Quantity: decimal.Zero,
	}

	suite.mockRepo.On("SaveStockItem", ctx,
		mock.MatchedBy(func(item domain.StockItem) bool {
			return item.Quantity.IsZero() && item.CostPerUnit.IsZero()
		}),
		mock.AnythingOfType("domain.StockLog"),
		(*domain.Transaction)(nil),
	).Return(nil).Once()

	item, err := suite.service.CreateStockItem(ctx, req)

	suite.Require().NoError(err)
	suite.True(item.CostPerUnit.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestCreateStockItem_NegativeQuantity() {
	ctx := context.Background()
	req := dto.CreateStockItemRequest{
		Name:     "Bad Item",
		Unit:     "kg",
		Quantity: decimal.NewFromInt(-1),
	}

	item, err := suite.service.CreateStockItem(ctx, req)

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrInvalidQuantity)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveStockItem")
}

func (suite *StockServiceTestSuite) TestRestock_Success() {
	ctx := context.Background()
	stockItemID := "item-1"
	req := dto.RestockRequest{
		Quantity: decimal.NewFromInt(50),
		Cost:     decimal.NewFromInt(600),
	}
	// 100 kg at 10 plus a 50 kg batch for 600 => 1600 / 150
	updated := &domain.StockItem{
		StockItemID: stockItemID,
		Quantity:    decimal.NewFromInt(150),
		CostPerUnit: decimal.NewFromInt(1600).Div(decimal.NewFromInt(150)),
	}

	suite.mockRepo.On("ApplyRestock", ctx, stockItemID,
		req.Quantity, req.Cost, (*string)(nil),
		mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time"),
	).Return(updated, nil).Once()

	item, err := suite.service.Restock(ctx, stockItemID, req)

	suite.Require().NoError(err)
	suite.True(item.Quantity.Equal(decimal.NewFromInt(150)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestRestock_NonPositiveQuantity() {
	ctx := context.Background()
	req := dto.RestockRequest{Quantity: decimal.Zero, Cost: decimal.NewFromInt(10)}

	item, err := suite.service.Restock(ctx, "item-1", req)

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrInvalidQuantity)
	suite.mockRepo.AssertNotCalled(suite.T(), "ApplyRestock")
}

func (suite *StockServiceTestSuite) TestDeduct_DefaultsToUse() {
	ctx := context.Background()
	stockItemID := "item-1"
	req := dto.DeductStockRequest{Amount: decimal.NewFromInt(3)}
	updated := &domain.StockItem{StockItemID: stockItemID, Quantity: decimal.NewFromInt(7)}

	suite.mockRepo.On("ApplyDeduction", ctx, stockItemID,
		req.Amount, domain.StockLogUse, "Used in kitchen",
		mock.AnythingOfType("string"), mock.AnythingOfType("time.Time"),
	).Return(updated, nil).Once()

	item, err := suite.service.Deduct(ctx, stockItemID, req)

	suite.Require().NoError(err)
	suite.True(item.Quantity.Equal(decimal.NewFromInt(7)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestDeduct_InsufficientStock() {
	ctx := context.Background()
	stockItemID := "item-1"
	req := dto.DeductStockRequest{Amount: decimal.NewFromInt(99), Kind: "WASTE", Reason: "Spoiled"}

	suite.mockRepo.On("ApplyDeduction", ctx, stockItemID,
		req.Amount, domain.StockLogWaste, "Spoiled",
		mock.AnythingOfType("string"), mock.AnythingOfType("time.Time"),
	).Return(nil, apperrors.ErrInsufficientStock).Once()

	item, err := suite.service.Deduct(ctx, stockItemID, req)

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestDeduct_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.DeductStockRequest{Amount: decimal.NewFromInt(-2)}

	item, err := suite.service.Deduct(ctx, "item-1", req)

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrInvalidQuantity)
	suite.mockRepo.AssertNotCalled(suite.T(), "ApplyDeduction")
}

func (suite *StockServiceTestSuite) TestOverview_SumsItemValues() {
	ctx := context.Background()
	items := []domain.StockItem{
		{StockItemID: "a", Quantity: decimal.NewFromInt(10), CostPerUnit: decimal.NewFromInt(5)},
		{StockItemID: "b", Quantity: decimal.NewFromInt(2), CostPerUnit: decimal.NewFromFloat(2.5)},
	}

	suite.mockRepo.On("ListStockItems", ctx).Return(items, nil).Once()

	overview, err := suite.service.Overview(ctx)

	suite.Require().NoError(err)
	suite.Len(overview.Items, 2)
	suite.True(overview.TotalValue.Equal(decimal.NewFromInt(55)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestHistory_ClampsLimit() {
	ctx := context.Background()
	stockItemID := "item-1"
	item := &domain.StockItem{StockItemID: stockItemID}

	suite.mockRepo.On("FindStockItemByID", ctx, stockItemID).Return(item, nil).Twice()
	suite.mockRepo.On("FindStockLogsByItemID", ctx, stockItemID, 20).Return([]domain.StockLog{}, nil).Twice()

	_, err := suite.service.History(ctx, stockItemID, 0)
	suite.Require().NoError(err)

	_, err = suite.service.History(ctx, stockItemID, 500)
	suite.Require().NoError(err)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestHistory_ItemNotFound() {
	ctx := context.Background()
	stockItemID := "missing"

	suite.mockRepo.On("FindStockItemByID", ctx, stockItemID).Return(nil, apperrors.ErrNotFound).Once()

	logs, err := suite.service.History(ctx, stockItemID, 10)

	suite.Require().Error(err)
	suite.Nil(logs)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindStockLogsByItemID")
}

func (suite *StockServiceTestSuite) TestRemoveStockItem_PropagatesRepoError() {
	ctx := context.Background()
	stockItemID := "item-1"
	expectedErr := assert.AnError

	suite.mockRepo.On("RemoveStockItem", ctx, stockItemID,
		mock.AnythingOfType("string"), mock.AnythingOfType("time.Time"),
	).Return(expectedErr).Once()

	err := suite.service.RemoveStockItem(ctx, stockItemID)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestStockServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StockServiceTestSuite))
}
