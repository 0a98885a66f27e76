package services

import (
	"github.com/bsm/redislock"
	portsrepo "github.com/kruathong/pos_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/kruathong/pos_ledger_backend/internal/core/ports/services"
	"github.com/kruathong/pos_ledger_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// locker may be nil when Redis is not configured.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, locker *redislock.Client) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Stock = NewStockService(repos.StockRepo)
	container.Ledger = NewLedgerService(repos.TransactionRepo)
	container.Order = NewOrderService(repos.OrderRepo)
	container.Reconciliation = NewReconciliationService(
		repos.OrderRepo,
		repos.StockRepo,
		repos.TransactionRepo,
		locker,
		cfg.SyncLockTTL,
	)
	container.Reporting = NewReportingService(container.Ledger)

	return container
}
