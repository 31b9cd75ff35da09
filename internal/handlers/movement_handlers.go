package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tradewisearg/servitec-web/internal/models"
	"github.com/tradewisearg/servitec-web/internal/services"

	"github.com/gin-gonic/gin"
)

// MovementHandler exposes read access to the stock ledger.
type MovementHandler struct {
	inventoryService services.InventoryService
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(inventoryService services.InventoryService) *MovementHandler {
	return &MovementHandler{inventoryService: inventoryService}
}

// GetMovements handles GET /movements. Supported query parameters:
// product_name, type, origin, start_date, end_date (YYYY-MM-DD), page,
// page_size.
func (h *MovementHandler) GetMovements(c *gin.Context) {
	filters := models.MovementFilters{
		Page:     1,
		PageSize: 50,
	}

	if v := c.Query("product_name"); v != "" {
		filters.ProductName = &v
	}
	if v := c.Query("type"); v != "" {
		if !models.IsValidMovementType(v) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movement type: " + v})
			return
		}
		filters.Type = &v
	}
	if v := c.Query("origin"); v != "" {
		filters.Origin = &v
	}
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date, expected YYYY-MM-DD"})
			return
		}
		filters.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date, expected YYYY-MM-DD"})
			return
		}
		// inclusive end of day
		t = t.Add(24*time.Hour - time.Nanosecond)
		filters.EndDate = &t
	}
	if v := c.Query("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page > 0 {
			filters.Page = page
		}
	}
	if v := c.Query("page_size"); v != "" {
		if size, err := strconv.Atoi(v); err == nil && size > 0 && size <= 500 {
			filters.PageSize = size
		}
	}

	movements, total, err := h.inventoryService.GetMovements(filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"movements": movements,
		"total":     total,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}
