package services

import (
	"context"

	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
	portssvc "github.com/kruathong/pos_ledger_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// partnerSplit defines one partner's percentage of the dividend pool. The
// slice order is the payout order.
type partnerSplit struct {
	Partner string
	Percent int64
}

var defaultPartnerSplits = []partnerSplit{
	{Partner: "Partner A", Percent: 50},
	{Partner: "Partner B", Percent: 25},
	{Partner: "Partner C", Percent: 25},
}

var (
	half    = decimal.NewFromFloat(0.5)
	hundred = decimal.NewFromInt(100)
)

// reportingService computes time-windowed summaries over the ledger. It is
// strictly read-only and built purely on ledger aggregation.
type reportingService struct {
	BaseService
	ledgerSvc portssvc.LedgerReaderSvc
	splits    []partnerSplit
}

// NewReportingService creates a new ReportingService.
func NewReportingService(ledgerSvc portssvc.LedgerReaderSvc) portssvc.ReportingSvcFacade {
	return &reportingService{
		ledgerSvc: ledgerSvc,
		splits:    defaultPartnerSplits,
	}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// Summarize folds the window's ledger totals into income, expense and net
// profit, then applies the profit split. The split order matters: net profit
// first, then the retained/dividend halves, then the per-partner cuts, so
// rounding lands the same way every run.
func (s *reportingService) Summarize(ctx context.Context, dateRange domain.DateRange) (*domain.FinancialSummary, error) {
	totals, err := s.ledgerSvc.Sum(ctx, dateRange)
	if err != nil {
		s.LogError(ctx, err, "failed to sum ledger for summary")
		return nil, err
	}

	netProfit := totals.TotalIncome.Sub(totals.TotalExpense)
	summary := &domain.FinancialSummary{
		TotalIncome:  totals.TotalIncome,
		TotalExpense: totals.TotalExpense,
		NetProfit:    netProfit,
	}

	if netProfit.IsPositive() {
		summary.Distribution = s.distribute(netProfit)
	}
	return summary, nil
}

// distribute splits a positive net profit 50/50 into retained earnings and
// the dividend pool, then cuts the pool across the partners.
func (s *reportingService) distribute(netProfit decimal.Decimal) *domain.ProfitDistribution {
	retained := netProfit.Mul(half)
	pool := netProfit.Sub(retained)

	shares := make([]domain.PartnerShare, len(s.splits))
	for i, split := range s.splits {
		percent := decimal.NewFromInt(split.Percent)
		shares[i] = domain.PartnerShare{
			Partner: split.Partner,
			Percent: percent,
			Amount:  pool.Mul(percent).Div(hundred),
		}
	}

	return &domain.ProfitDistribution{
		RetainedEarnings: retained,
		DividendPool:     pool,
		Shares:           shares,
	}
}
