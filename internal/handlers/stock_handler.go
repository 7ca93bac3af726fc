package handlers

import (
	"net/http"

	"fruitstore/internal/cache"
	"fruitstore/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StockHandler struct {
	stockService services.StockService
	views        services.ViewInvalidator
}

func NewStockHandler(stockService services.StockService, views services.ViewInvalidator) *StockHandler {
	return &StockHandler{stockService: stockService, views: views}
}

type AddStockRequest struct {
	FruitID     uuid.UUID `json:"fruit_id" binding:"required"`
	Quantity    int       `json:"quantity" binding:"required,min=1"`
	Description string    `json:"description"`
}

// AddStock is the admin restock action.
func (h *StockHandler) AddStock(c *gin.Context) {
	var req AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.stockService.AddStock(req.FruitID, req.Quantity, req.Description); err != nil {
		respondError(c, err)
		return
	}

	h.views.Invalidate(cache.ViewInventory)
	c.JSON(http.StatusOK, gin.H{"status": "stock updated"})
}

func (h *StockHandler) GetStockHistory(c *gin.Context) {
	fruitID, err := uuid.Parse(c.Param("fruitId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fruit ID"})
		return
	}

	history, err := h.stockService.HistoryFor(fruitID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}
