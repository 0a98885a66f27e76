package services

import (
	"context"

	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
)

// ReportingSvcFacade computes time-windowed summaries over the ledger. It is
// strictly read-only.
type ReportingSvcFacade interface {
	// Summarize returns income, expense, net profit and — when the window is
	// profitable — the deterministic profit distribution.
	Summarize(ctx context.Context, dateRange domain.DateRange) (*domain.FinancialSummary, error)
}
