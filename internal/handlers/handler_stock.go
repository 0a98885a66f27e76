package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kruathong/pos_ledger_backend/internal/apperrors"
	portssvc "github.com/kruathong/pos_ledger_backend/internal/core/ports/services"
	"github.com/kruathong/pos_ledger_backend/internal/dto"
	"github.com/kruathong/pos_ledger_backend/internal/middleware"
)

// stockHandler handles HTTP requests related to stock items.
type stockHandler struct {
	stockService portssvc.StockSvcFacade
}

// newStockHandler creates a new stockHandler.
func newStockHandler(ss portssvc.StockSvcFacade) *stockHandler {
	return &stockHandler{stockService: ss}
}

// registerStockRoutes registers routes related to stock items.
func registerStockRoutes(rg *gin.RouterGroup, stockService portssvc.StockSvcFacade) {
	h := newStockHandler(stockService)

	stocks := rg.Group("/stocks")
	{
		stocks.GET("", h.listStockItems)
		stocks.POST("", h.createStockItem)
		stocks.GET("/:stockItemID", h.getStockItem)
		stocks.DELETE("/:stockItemID", h.removeStockItem)
		stocks.POST("/:stockItemID/restock", h.restock)
		stocks.POST("/:stockItemID/deduct", h.deduct)
		stocks.GET("/:stockItemID/history", h.history)
	}
}

// listStockItems godoc
// @Summary List stock items
// @Description Lists all stock items with per-item and shop-wide stock value
// @Tags stocks
// @Produce json
// @Success 200 {object} dto.StockOverviewResponse
// @Failure 500 {object} map[string]string "Failed to list stock items"
// @Router /stocks [get]
func (h *stockHandler) listStockItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	overview, err := h.stockService.Overview(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list stock items", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stock items"})
		return
	}

	c.JSON(http.StatusOK, dto.ToStockOverviewResponse(overview))
}

// createStockItem godoc
// @Summary Create a stock item
// @Description Creates a stock item with its initial batch; a priced batch also posts the purchase expense
// @Tags stocks
// @Accept json
// @Produce json
// @Param stockItem body dto.CreateStockItemRequest true "Stock item details"
// @Success 201 {object} dto.StockItemResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to create stock item"
// @Router /stocks [post]
func (h *stockHandler) createStockItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateStockItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	item, err := h.stockService.CreateStockItem(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrInvalidQuantity) {
			logger.Warn("Validation error creating stock item", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create stock item in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create stock item"})
		}
		return
	}

	logger.Info("Stock item created successfully", slog.String("stock_item_id", item.StockItemID))
	c.JSON(http.StatusCreated, dto.ToStockItemResponse(item))
}

// getStockItem godoc
// @Summary Get a stock item by ID
// @Tags stocks
// @Produce json
// @Param stockItemID path string true "Stock Item ID"
// @Success 200 {object} dto.StockItemResponse
// @Failure 404 {object} map[string]string "Stock item not found"
// @Failure 500 {object} map[string]string "Failed to retrieve stock item"
// @Router /stocks/{stockItemID} [get]
func (h *stockHandler) getStockItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stockItemID := c.Param("stockItemID")

	item, err := h.stockService.GetStockItemByID(c.Request.Context(), stockItemID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stock item not found"})
		} else {
			logger.Error("Failed to get stock item", slog.String("stock_item_id", stockItemID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stock item"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStockItemResponse(item))
}

// restock godoc
// @Summary Restock an item
// @Description Adds a priced batch, recomputes the weighted-average unit cost and posts the purchase expense
// @Tags stocks
// @Accept json
// @Produce json
// @Param stockItemID path string true "Stock Item ID"
// @Param restock body dto.RestockRequest true "Restock batch"
// @Success 200 {object} dto.StockItemResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Stock item not found"
// @Failure 500 {object} map[string]string "Failed to restock item"
// @Router /stocks/{stockItemID}/restock [post]
func (h *stockHandler) restock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stockItemID := c.Param("stockItemID")
	var req dto.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Restock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	item, err := h.stockService.Restock(c.Request.Context(), stockItemID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Stock item not found"})
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to restock item", slog.String("stock_item_id", stockItemID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restock item"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStockItemResponse(item))
}

// deduct godoc
// @Summary Deduct stock
// @Description Cuts stock for usage or waste; no ledger entry is posted
// @Tags stocks
// @Accept json
// @Produce json
// @Param stockItemID path string true "Stock Item ID"
// @Param deduction body dto.DeductStockRequest true "Deduction details"
// @Success 200 {object} dto.StockItemResponse
// @Failure 400 {object} map[string]string "Invalid input or insufficient stock"
// @Failure 404 {object} map[string]string "Stock item not found"
// @Failure 500 {object} map[string]string "Failed to deduct stock"
// @Router /stocks/{stockItemID}/deduct [post]
func (h *stockHandler) deduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stockItemID := c.Param("stockItemID")
	var req dto.DeductStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Deduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	item, err := h.stockService.Deduct(c.Request.Context(), stockItemID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Stock item not found"})
		case errors.Is(err, apperrors.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to deduct stock", slog.String("stock_item_id", stockItemID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deduct stock"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStockItemResponse(item))
}

// removeStockItem godoc
// @Summary Remove a stock item
// @Description Deletes an item, reversing the expense for its remaining value
// @Tags stocks
// @Produce json
// @Param stockItemID path string true "Stock Item ID"
// @Success 204 "Removed"
// @Failure 404 {object} map[string]string "Stock item not found"
// @Failure 500 {object} map[string]string "Failed to remove stock item"
// @Router /stocks/{stockItemID} [delete]
func (h *stockHandler) removeStockItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stockItemID := c.Param("stockItemID")

	if err := h.stockService.RemoveStockItem(c.Request.Context(), stockItemID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stock item not found"})
		} else {
			logger.Error("Failed to remove stock item", slog.String("stock_item_id", stockItemID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove stock item"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// history godoc
// @Summary Get the movement history of a stock item
// @Description Returns the most recent movement logs, newest first, capped at 20
// @Tags stocks
// @Produce json
// @Param stockItemID path string true "Stock Item ID"
// @Param limit query int false "Maximum number of entries (default and cap 20)"
// @Success 200 {array} dto.StockLogResponse
// @Failure 404 {object} map[string]string "Stock item not found"
// @Failure 500 {object} map[string]string "Failed to retrieve stock history"
// @Router /stocks/{stockItemID}/history [get]
func (h *stockHandler) history(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stockItemID := c.Param("stockItemID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	logs, err := h.stockService.History(c.Request.Context(), stockItemID, limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stock item not found"})
		} else {
			logger.Error("Failed to get stock history", slog.String("stock_item_id", stockItemID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stock history"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStockLogResponses(logs))
}
