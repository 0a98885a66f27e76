package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
	portssvc "github.com/kruathong/pos_ledger_backend/internal/core/ports/services"
	"github.com/kruathong/pos_ledger_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SumTransactions(ctx context.Context, dateRange domain.DateRange) (domain.LedgerTotals, error) {
	args := m.Called(ctx, dateRange)
	return args.Get(0).(domain.LedgerTotals), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) (int, error) {
	args := m.Called(ctx, txns)
	return args.Int(0), args.Error(1)
}

func (m *MockTransactionRepository) RebuildStockPurchaseExpenses(ctx context.Context, txns []domain.Transaction) (int, error) {
	args := m.Called(ctx, txns)
	return args.Int(0), args.Error(1)
}

func (m *MockTransactionRepository) InsertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

// --- Test Suite ---
type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockOrderRepo *MockOrderRepository
	mockStockRepo *MockStockRepository
	mockTxnRepo   *MockTransactionRepository
	service       portssvc.ReconciliationSvcFacade
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockStockRepo = new(MockStockRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewReconciliationService(
		suite.mockOrderRepo,
		suite.mockStockRepo,
		suite.mockTxnRepo,
		nil,
		time.Second,
	)
}

// --- Test Cases ---

func (suite *ReconciliationServiceTestSuite) TestSyncIncome_CreatesMissingEntries() {
	ctx := context.Background()
	completedAt := time.Date(2025, time.March, 10, 12, 30, 0, 0, time.UTC)
	orders := []domain.Order{
		{OrderID: "o-1", CustomerName: "Table 1", TotalAmount: decimal.NewFromInt(120), Status: domain.OrderCompleted, LastUpdatedAt: completedAt},
		{OrderID: "o-2", CustomerName: "Table 2", TotalAmount: decimal.NewFromInt(80), Status: domain.OrderCompleted, LastUpdatedAt: completedAt.Add(time.Hour)},
	}

	suite.mockOrderRepo.On("FindCompletedOrdersWithoutIncome", ctx).Return(orders, nil).Once()
	suite.mockTxnRepo.On("SaveTransactions", ctx, mock.MatchedBy(func(txns []domain.Transaction) bool {
		if len(txns) != 2 {
			return false
		}
		first := txns[0]
		return first.Kind == domain.Income &&
			first.Category == domain.CategorySales &&
			first.Amount.Equal(decimal.NewFromInt(120)) &&
			first.OrderID != nil && *first.OrderID == "o-1" &&
			first.CreatedAt.Equal(completedAt)
	})).Return(2, nil).Once()

	created, err := suite.service.SyncIncome(ctx)

	suite.Require().NoError(err)
	suite.Equal(2, created)
	suite.mockOrderRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestSyncIncome_NothingToDo() {
	ctx := context.Background()

	suite.mockOrderRepo.On("FindCompletedOrdersWithoutIncome", ctx).Return([]domain.Order{}, nil).Once()

	created, err := suite.service.SyncIncome(ctx)

	suite.Require().NoError(err)
	suite.Zero(created)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransactions")
}

func (suite *ReconciliationServiceTestSuite) TestSyncIncome_SecondRunCreatesNothing() {
	ctx := context.Background()
	orders := []domain.Order{
		{OrderID: "o-1", TotalAmount: decimal.NewFromInt(120), Status: domain.OrderCompleted, LastUpdatedAt: time.Now()},
	}

	// First run finds the drifted order; after repair the predicate is empty.
	suite.mockOrderRepo.On("FindCompletedOrdersWithoutIncome", ctx).Return(orders, nil).Once()
	suite.mockTxnRepo.On("SaveTransactions", ctx, mock.AnythingOfType("[]domain.Transaction")).Return(1, nil).Once()

	created, err := suite.service.SyncIncome(ctx)
	suite.Require().NoError(err)
	suite.Equal(1, created)

	suite.mockOrderRepo.On("FindCompletedOrdersWithoutIncome", ctx).Return([]domain.Order{}, nil).Once()

	created, err = suite.service.SyncIncome(ctx)
	suite.Require().NoError(err)
	suite.Zero(created)

	suite.mockOrderRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestSyncExpense_RebuildsFromStock() {
	ctx := context.Background()
	createdAt := time.Date(2025, time.January, 5, 9, 0, 0, 0, time.UTC)
	items := []domain.StockItem{
		{StockItemID: "s-1", Name: "Rice", Unit: "kg", Quantity: decimal.NewFromInt(100), CostPerUnit: decimal.NewFromInt(10), CreatedAt: createdAt},
		{StockItemID: "s-2", Name: "Empty", Unit: "kg", Quantity: decimal.Zero, CostPerUnit: decimal.Zero, CreatedAt: createdAt},
	}

	suite.mockStockRepo.On("ListStockItems", ctx).Return(items, nil).Once()
	suite.mockTxnRepo.On("RebuildStockPurchaseExpenses", ctx, mock.MatchedBy(func(txns []domain.Transaction) bool {
		// Zero-value items are skipped.
		if len(txns) != 1 {
			return false
		}
		txn := txns[0]
		return txn.Kind == domain.Expense &&
			txn.Category == domain.CategoryStockPurchase &&
			txn.Amount.Equal(decimal.NewFromInt(1000)) &&
			txn.StockItemID != nil && *txn.StockItemID == "s-1" &&
			txn.CreatedAt.Equal(createdAt)
	})).Return(3, nil).Once()

	removed, recreated, err := suite.service.SyncExpense(ctx)

	suite.Require().NoError(err)
	suite.Equal(3, removed)
	suite.Equal(1, recreated)
	suite.mockStockRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestSyncAll_CombinesCounts() {
	ctx := context.Background()
	orders := []domain.Order{
		{OrderID: "o-1", TotalAmount: decimal.NewFromInt(50), Status: domain.OrderCompleted, LastUpdatedAt: time.Now()},
	}
	items := []domain.StockItem{
		{StockItemID: "s-1", Name: "Rice", Unit: "kg", Quantity: decimal.NewFromInt(4), CostPerUnit: decimal.NewFromInt(25), CreatedAt: time.Now()},
	}

	suite.mockOrderRepo.On("FindCompletedOrdersWithoutIncome", ctx).Return(orders, nil).Once()
	suite.mockTxnRepo.On("SaveTransactions", ctx, mock.AnythingOfType("[]domain.Transaction")).Return(1, nil).Once()
	suite.mockStockRepo.On("ListStockItems", ctx).Return(items, nil).Once()
	suite.mockTxnRepo.On("RebuildStockPurchaseExpenses", ctx, mock.AnythingOfType("[]domain.Transaction")).Return(2, nil).Once()

	report, err := suite.service.SyncAll(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, report.IncomesCreated)
	suite.Equal(2, report.ExpensesRemoved)
	suite.Equal(1, report.ExpensesRecreated)
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
