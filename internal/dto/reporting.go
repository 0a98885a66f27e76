package dto

import (
	"fmt"
	"time"

	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateRangeQuery is the query-string filter shared by ledger and report
// endpoints. An explicit startDate/endDate pair wins over month/year; a bare
// year covers the calendar year.
type DateRangeQuery struct {
	StartDate string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Month     int    `form:"month" binding:"omitempty,min=1,max=12"`
	Year      int    `form:"year" binding:"omitempty,min=1"`
}

// normalizeYear converts Buddhist-era years to the common era. Thai clients
// routinely submit years like 2568.
func normalizeYear(year int) int {
	if year > 2400 {
		return year - 543
	}
	return year
}

// ToDateRange resolves the query into a domain.DateRange.
func (q DateRangeQuery) ToDateRange() (domain.DateRange, error) {
	if q.StartDate != "" && q.EndDate != "" {
		start, err := time.Parse("2006-01-02", q.StartDate)
		if err != nil {
			return domain.DateRange{}, fmt.Errorf("invalid startDate: %w", err)
		}
		end, err := time.Parse("2006-01-02", q.EndDate)
		if err != nil {
			return domain.DateRange{}, fmt.Errorf("invalid endDate: %w", err)
		}
		end = end.Add(24*time.Hour - time.Second)
		return domain.DateRange{From: &start, To: &end}, nil
	}

	if q.Year != 0 {
		year := normalizeYear(q.Year)
		if q.Month != 0 {
			start := time.Date(year, time.Month(q.Month), 1, 0, 0, 0, 0, time.UTC)
			end := start.AddDate(0, 1, 0).Add(-time.Second)
			return domain.DateRange{From: &start, To: &end}, nil
		}
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
		return domain.DateRange{From: &start, To: &end}, nil
	}

	return domain.DateRange{}, nil
}

// PartnerShareResponse is one partner's cut of the dividend pool.
type PartnerShareResponse struct {
	Partner string          `json:"partner"`
	Percent decimal.Decimal `json:"percent"`
	Amount  decimal.Decimal `json:"amount"`
}

// ProfitDistributionResponse is the profit split; omitted entirely when the
// window shows no profit.
type ProfitDistributionResponse struct {
	RetainedEarnings decimal.Decimal        `json:"retainedEarnings"`
	DividendPool     decimal.Decimal        `json:"dividendPool"`
	Shares           []PartnerShareResponse `json:"shares"`
}

// FinancialSummaryResponse is the windowed report over the ledger.
type FinancialSummaryResponse struct {
	TotalIncome  decimal.Decimal             `json:"totalIncome"`
	TotalExpense decimal.Decimal             `json:"totalExpense"`
	NetProfit    decimal.Decimal             `json:"netProfit"`
	Distribution *ProfitDistributionResponse `json:"distribution,omitempty"`
}

// SyncResponse reports what a reconciliation run changed.
type SyncResponse struct {
	IncomesCreated    int `json:"incomesCreated"`
	ExpensesRemoved   int `json:"expensesRemoved"`
	ExpensesRecreated int `json:"expensesRecreated"`
}

// ToFinancialSummaryResponse converts a domain.FinancialSummary to its DTO.
func ToFinancialSummaryResponse(summary *domain.FinancialSummary) FinancialSummaryResponse {
	resp := FinancialSummaryResponse{
		TotalIncome:  summary.TotalIncome,
		TotalExpense: summary.TotalExpense,
		NetProfit:    summary.NetProfit,
	}
	if summary.Distribution != nil {
		shares := make([]PartnerShareResponse, len(summary.Distribution.Shares))
		for i, s := range summary.Distribution.Shares {
			shares[i] = PartnerShareResponse{Partner: s.Partner, Percent: s.Percent, Amount: s.Amount}
		}
		resp.Distribution = &ProfitDistributionResponse{
			RetainedEarnings: summary.Distribution.RetainedEarnings,
			DividendPool:     summary.Distribution.DividendPool,
			Shares:           shares,
		}
	}
	return resp
}
