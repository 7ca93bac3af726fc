package handlers

import (
	"net/http"
	"time"

	"fruitstore/internal/cache"
	"fruitstore/internal/models"
	"fruitstore/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FruitHandler struct {
	fruitService services.FruitService
	cache        *cache.Client
	cacheTTL     time.Duration
}

func NewFruitHandler(fruitService services.FruitService, cacheClient *cache.Client, cacheTTL time.Duration) *FruitHandler {
	return &FruitHandler{fruitService: fruitService, cache: cacheClient, cacheTTL: cacheTTL}
}

// GetFruits serves the catalog, preferring the cached inventory view. The
// cache is repopulated on miss and dropped by the stock and order workflows.
func (h *FruitHandler) GetFruits(c *gin.Context) {
	var cached []models.Fruit
	if err := h.cache.GetView(cache.ViewInventory, &cached); err == nil {
		c.JSON(http.StatusOK, gin.H{"fruits": cached})
		return
	}

	fruits, err := h.fruitService.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.cache.SetView(cache.ViewInventory, fruits, h.cacheTTL); err != nil {
		// Cache being down never blocks reads.
		c.JSON(http.StatusOK, gin.H{"fruits": fruits})
		return
	}

	c.JSON(http.StatusOK, gin.H{"fruits": fruits})
}

func (h *FruitHandler) GetFruit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fruit ID"})
		return
	}

	fruit, err := h.fruitService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fruit": fruit})
}

func (h *FruitHandler) CreateFruit(c *gin.Context) {
	var input services.FruitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	fruit, err := h.fruitService.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}

	h.cache.Invalidate(cache.ViewInventory)
	c.JSON(http.StatusCreated, gin.H{"fruit": fruit})
}

func (h *FruitHandler) UpdateFruit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fruit ID"})
		return
	}

	var input services.FruitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	fruit, err := h.fruitService.Update(id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	h.cache.Invalidate(cache.ViewInventory)
	c.JSON(http.StatusOK, gin.H{"fruit": fruit})
}
