package services_test

import (
	"context"
	"testing"

	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
	portssvc "github.com/kruathong/pos_ledger_backend/internal/core/ports/services"
	"github.com/kruathong/pos_ledger_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockTxnRepo *MockTransactionRepository
	service     portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	ledger := services.NewLedgerService(suite.mockTxnRepo)
	suite.service = services.NewReportingService(ledger)
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestSummarize_ProfitableWindow() {
	ctx := context.Background()
	dateRange := domain.DateRange{}

	suite.mockTxnRepo.On("SumTransactions", ctx, dateRange).Return(domain.LedgerTotals{
		TotalIncome:  decimal.NewFromInt(10000),
		TotalExpense: decimal.NewFromInt(6000),
	}, nil).Once()

	summary, err := suite.service.Summarize(ctx, dateRange)

	suite.Require().NoError(err)
	suite.True(summary.NetProfit.Equal(decimal.NewFromInt(4000)))
	suite.Require().NotNil(summary.Distribution)

	dist := summary.Distribution
	suite.True(dist.RetainedEarnings.Equal(decimal.NewFromInt(2000)))
	suite.True(dist.DividendPool.Equal(decimal.NewFromInt(2000)))

	// retained + pool covers net profit exactly
	suite.True(dist.RetainedEarnings.Add(dist.DividendPool).Equal(summary.NetProfit))

	suite.Require().Len(dist.Shares, 3)
	suite.True(dist.Shares[0].Amount.Equal(decimal.NewFromInt(1000)))
	suite.True(dist.Shares[1].Amount.Equal(decimal.NewFromInt(500)))
	suite.True(dist.Shares[2].Amount.Equal(decimal.NewFromInt(500)))

	// shares sum back to the pool
	shareSum := decimal.Zero
	for _, share := range dist.Shares {
		shareSum = shareSum.Add(share.Amount)
	}
	suite.True(shareSum.Equal(dist.DividendPool))
}

func (suite *ReportingServiceTestSuite) TestSummarize_LossHasNoDistribution() {
	ctx := context.Background()
	dateRange := domain.DateRange{}

	suite.mockTxnRepo.On("SumTransactions", ctx, dateRange).Return(domain.LedgerTotals{
		TotalIncome:  decimal.NewFromInt(3000),
		TotalExpense: decimal.NewFromInt(4500),
	}, nil).Once()

	summary, err := suite.service.Summarize(ctx, dateRange)

	suite.Require().NoError(err)
	suite.True(summary.NetProfit.Equal(decimal.NewFromInt(-1500)))
	suite.Nil(summary.Distribution)
}

func (suite *ReportingServiceTestSuite) TestSummarize_BreakEvenHasNoDistribution() {
	ctx := context.Background()
	dateRange := domain.DateRange{}

	suite.mockTxnRepo.On("SumTransactions", ctx, dateRange).Return(domain.LedgerTotals{
		TotalIncome:  decimal.NewFromInt(5000),
		TotalExpense: decimal.NewFromInt(5000),
	}, nil).Once()

	summary, err := suite.service.Summarize(ctx, dateRange)

	suite.Require().NoError(err)
	suite.True(summary.NetProfit.IsZero())
	suite.Nil(summary.Distribution)
}

func (suite *ReportingServiceTestSuite) TestSummarize_OddAmountPreservesOrderOfOperations() {
	ctx := context.Background()
	dateRange := domain.DateRange{}

	suite.mockTxnRepo.On("SumTransactions", ctx, dateRange).Return(domain.LedgerTotals{
		TotalIncome:  decimal.NewFromFloat(100.01),
		TotalExpense: decimal.Zero,
	}, nil).Once()

	summary, err := suite.service.Summarize(ctx, dateRange)

	suite.Require().NoError(err)
	dist := summary.Distribution
	suite.Require().NotNil(dist)
	// pool is net minus retained, so the two always rebuild the net exactly
	suite.True(dist.RetainedEarnings.Add(dist.DividendPool).Equal(summary.NetProfit))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
