package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRange bounds a report window. Nil fields leave that side open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// PartnerShare is one partner's cut of the dividend pool.
type PartnerShare struct {
	Partner string          `json:"partner"`
	Percent decimal.Decimal `json:"percent"`
	Amount  decimal.Decimal `json:"amount"`
}

// ProfitDistribution is the deterministic split of a positive net profit:
// 50% retained, 50% to the dividend pool, pool split 50/25/25 across the
// configured partners. The order of operations matters under rounding.
type ProfitDistribution struct {
	RetainedEarnings decimal.Decimal `json:"retainedEarnings"`
	DividendPool     decimal.Decimal `json:"dividendPool"`
	Shares           []PartnerShare  `json:"shares"`
}

// FinancialSummary is the time-windowed report over the ledger.
// Distribution is nil when NetProfit is zero or negative.
type FinancialSummary struct {
	TotalIncome  decimal.Decimal     `json:"totalIncome"`
	TotalExpense decimal.Decimal     `json:"totalExpense"`
	NetProfit    decimal.Decimal     `json:"netProfit"`
	Distribution *ProfitDistribution `json:"distribution,omitempty"`
}

// StockOverview pairs the full item list with its aggregate value, as served
// to dashboards.
type StockOverview struct {
	Items      []StockItem     `json:"items"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// SyncReport summarizes one reconciliation run.
type SyncReport struct {
	IncomesCreated    int `json:"incomesCreated"`
	ExpensesRemoved   int `json:"expensesRemoved"`
	ExpensesRecreated int `json:"expensesRecreated"`
}
