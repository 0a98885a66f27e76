package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kruathong/pos_ledger_backend/internal/apperrors"
	portssvc "github.com/kruathong/pos_ledger_backend/internal/core/ports/services"
	"github.com/kruathong/pos_ledger_backend/internal/dto"
	"github.com/kruathong/pos_ledger_backend/internal/middleware"
)

// reconciliationHandler exposes the corrective sync operations. These are
// maintenance endpoints, grouped under /admin and rate limited.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

// newReconciliationHandler creates a new reconciliationHandler.
func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: rs}
}

// registerReconciliationRoutes registers the admin sync routes.
func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	rg.POST("/sync", h.syncAll)
	rg.POST("/sync/income", h.syncIncome)
	rg.POST("/sync/expense", h.syncExpense)
}

// syncAll godoc
// @Summary Run full ledger reconciliation
// @Description Posts missing order income, then rebuilds stock purchase expenses
// @Tags admin
// @Produce json
// @Success 200 {object} dto.SyncResponse
// @Failure 409 {object} map[string]string "Reconciliation already in progress"
// @Failure 500 {object} map[string]string "Reconciliation failed"
// @Router /admin/sync [post]
func (h *reconciliationHandler) syncAll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reconciliationService.SyncAll(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrSyncInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Reconciliation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reconciliation failed"})
		return
	}

	c.JSON(http.StatusOK, dto.SyncResponse{
		IncomesCreated:    report.IncomesCreated,
		ExpensesRemoved:   report.ExpensesRemoved,
		ExpensesRecreated: report.ExpensesRecreated,
	})
}

// syncIncome godoc
// @Summary Post missing order income
// @Description One INCOME entry per COMPLETED order lacking one, dated at completion time
// @Tags admin
// @Produce json
// @Success 200 {object} dto.SyncResponse
// @Failure 500 {object} map[string]string "Income reconciliation failed"
// @Router /admin/sync/income [post]
func (h *reconciliationHandler) syncIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	created, err := h.reconciliationService.SyncIncome(c.Request.Context())
	if err != nil {
		logger.Error("Income reconciliation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Income reconciliation failed"})
		return
	}

	c.JSON(http.StatusOK, dto.SyncResponse{IncomesCreated: created})
}

// syncExpense godoc
// @Summary Rebuild stock purchase expenses
// @Description Deletes all Stock Purchase expenses and re-derives one per stock item
// @Tags admin
// @Produce json
// @Success 200 {object} dto.SyncResponse
// @Failure 409 {object} map[string]string "Reconciliation already in progress"
// @Failure 500 {object} map[string]string "Expense reconciliation failed"
// @Router /admin/sync/expense [post]
func (h *reconciliationHandler) syncExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	removed, recreated, err := h.reconciliationService.SyncExpense(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrSyncInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Expense reconciliation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Expense reconciliation failed"})
		return
	}

	c.JSON(http.StatusOK, dto.SyncResponse{ExpensesRemoved: removed, ExpensesRecreated: recreated})
}
