package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kruathong/pos_ledger_backend/internal/apperrors"
	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
	portsrepo "github.com/kruathong/pos_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/kruathong/pos_ledger_backend/internal/core/ports/services"
	"github.com/kruathong/pos_ledger_backend/internal/dto"
	"github.com/kruathong/pos_ledger_backend/internal/utils/costing"
	"github.com/shopspring/decimal"
)

const (
	// defaultLowStockThreshold applies when a create request omits the threshold.
	defaultLowStockThreshold = 5

	// maxHistoryLimit caps the movement log feed per item.
	maxHistoryLimit = 20
)

// stockService provides the stock-ledger operations: item CRUD, priced
// acquisitions and quantity deductions, each one atomic with its movement log
// and ledger posting.
type stockService struct {
	BaseService
	stockRepo portsrepo.StockRepositoryFacade
}

// NewStockService creates a new StockService.
func NewStockService(stockRepo portsrepo.StockRepositoryFacade) portssvc.StockSvcFacade {
	return &stockService{stockRepo: stockRepo}
}

// Ensure stockService implements the portssvc.StockSvcFacade interface
var _ portssvc.StockSvcFacade = (*stockService)(nil)

// CreateStockItem creates an item with a weighted-average unit cost derived
// from the initial batch. A zero-quantity item gets zero cost, the divide
// never happens.
func (s *stockService) CreateStockItem(ctx context.Context, req dto.CreateStockItemRequest) (*domain.StockItem, error) {
	if req.Quantity.IsNegative() {
		return nil, fmt.Errorf("%w: quantity must not be negative", apperrors.ErrInvalidQuantity)
	}
	if req.TotalCost.IsNegative() {
		return nil, fmt.Errorf("%w: total cost must not be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	threshold := decimal.NewFromInt(defaultLowStockThreshold)
	if req.LowStockThreshold != nil {
		threshold = *req.LowStockThreshold
	}

	item := domain.StockItem{
		StockItemID:       uuid.NewString(),
		Name:              req.Name,
		Category:          req.Category,
		Unit:              req.Unit,
		Quantity:          req.Quantity,
		CostPerUnit:       costing.UnitCost(req.TotalCost, req.Quantity),
		LowStockThreshold: threshold,
		Supplier:          req.Supplier,
		ExpiryDate:        req.ExpiryDate,
		CreatedAt:         now,
		LastUpdatedAt:     now,
	}

	log := domain.StockLog{
		StockLogID:  uuid.NewString(),
		StockItemID: item.StockItemID,
		Kind:        domain.StockLogRestock,
		Amount:      req.Quantity,
		CostAtTime:  item.CostPerUnit,
		Reason:      "Initial stock",
		CreatedAt:   now,
	}

	var expense *domain.Transaction
	if req.TotalCost.IsPositive() {
		expense = &domain.Transaction{
			TransactionID: uuid.NewString(),
			Kind:          domain.Expense,
			Amount:        req.TotalCost,
			Category:      domain.CategoryStockPurchase,
			Description:   fmt.Sprintf("New stock: %s (%s %s)", item.Name, req.Quantity.String(), item.Unit),
			StockItemID:   &item.StockItemID,
			CreatedAt:     now,
		}
	}

	if err := s.stockRepo.SaveStockItem(ctx, item, log, expense); err != nil {
		s.LogError(ctx, err, "failed to create stock item", slog.String("name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "stock item created",
		slog.String("stock_item_id", item.StockItemID),
		slog.String("name", item.Name))
	return &item, nil
}

// Restock adds a priced batch. The new weighted-average unit cost and the
// Stock Purchase expense are computed and committed by the repository under
// the item's row lock.
func (s *stockService) Restock(ctx context.Context, stockItemID string, req dto.RestockRequest) (*domain.StockItem, error) {
	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: restock quantity must be positive", apperrors.ErrInvalidQuantity)
	}
	if req.Cost.IsNegative() {
		return nil, fmt.Errorf("%w: restock cost must not be negative", apperrors.ErrValidation)
	}

	item, err := s.stockRepo.ApplyRestock(ctx, stockItemID, req.Quantity, req.Cost, req.Supplier,
		uuid.NewString(), uuid.NewString(), time.Now())
	if err != nil {
		s.LogError(ctx, err, "failed to restock item", slog.String("stock_item_id", stockItemID))
		return nil, err
	}

	s.LogInfo(ctx, "stock item restocked",
		slog.String("stock_item_id", stockItemID),
		slog.String("quantity", req.Quantity.String()),
		slog.String("new_cost_per_unit", item.CostPerUnit.String()))
	return item, nil
}

// Deduct cuts stock for usage or waste. No ledger entry is posted, the cash
// event was already recognized when the stock was purchased.
func (s *stockService) Deduct(ctx context.Context, stockItemID string, req dto.DeductStockRequest) (*domain.StockItem, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: deduction amount must be positive", apperrors.ErrInvalidQuantity)
	}

	kind := domain.StockLogUse
	if req.Kind == string(domain.StockLogWaste) {
		kind = domain.StockLogWaste
	}
	reason := req.Reason
	if reason == "" {
		if kind == domain.StockLogWaste {
			reason = "Waste"
		} else {
			reason = "Used in kitchen"
		}
	}

	item, err := s.stockRepo.ApplyDeduction(ctx, stockItemID, req.Amount, kind, reason, uuid.NewString(), time.Now())
	if err != nil {
		s.LogError(ctx, err, "failed to deduct stock", slog.String("stock_item_id", stockItemID))
		return nil, err
	}

	s.LogInfo(ctx, "stock deducted",
		slog.String("stock_item_id", stockItemID),
		slog.String("kind", string(kind)),
		slog.String("amount", req.Amount.String()))
	return item, nil
}

// RemoveStockItem deletes an item, reversing the expense for any remaining
// stock value first so the ledger no longer counts capital that is gone.
func (s *stockService) RemoveStockItem(ctx context.Context, stockItemID string) error {
	if err := s.stockRepo.RemoveStockItem(ctx, stockItemID, uuid.NewString(), time.Now()); err != nil {
		s.LogError(ctx, err, "failed to remove stock item", slog.String("stock_item_id", stockItemID))
		return err
	}

	s.LogInfo(ctx, "stock item removed", slog.String("stock_item_id", stockItemID))
	return nil
}

// Overview returns every item with the shop-wide stock value; the aggregate
// equals the sum of the per-item totals.
func (s *stockService) Overview(ctx context.Context) (*domain.StockOverview, error) {
	items, err := s.stockRepo.ListStockItems(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to list stock items")
		return nil, err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalValue())
	}

	return &domain.StockOverview{Items: items, TotalValue: total}, nil
}

// GetStockItemByID retrieves a single item.
func (s *stockService) GetStockItemByID(ctx context.Context, stockItemID string) (*domain.StockItem, error) {
	item, err := s.stockRepo.FindStockItemByID(ctx, stockItemID)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// History returns the most recent movement logs for an item, newest first.
// The limit defaults to and is capped at maxHistoryLimit.
func (s *stockService) History(ctx context.Context, stockItemID string, limit int) ([]domain.StockLog, error) {
	if limit <= 0 || limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	// Confirm the item exists so a bad ID reads as 404 rather than an empty feed.
	if _, err := s.stockRepo.FindStockItemByID(ctx, stockItemID); err != nil {
		return nil, err
	}

	logs, err := s.stockRepo.FindStockLogsByItemID(ctx, stockItemID, limit)
	if err != nil {
		s.LogError(ctx, err, "failed to list stock logs", slog.String("stock_item_id", stockItemID))
		return nil, err
	}
	return logs, nil
}
