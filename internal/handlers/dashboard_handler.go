package handlers

import (
	"net/http"
	"time"

	"fruitstore/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	analyticsService services.AnalyticsService
	customerService  services.CustomerService
}

func NewDashboardHandler(analyticsService services.AnalyticsService, customerService services.CustomerService) *DashboardHandler {
	return &DashboardHandler{analyticsService: analyticsService, customerService: customerService}
}

// GetAnalytics returns the per-day sales aggregates for the requested range,
// defaulting to the last 30 days.
func (h *DashboardHandler) GetAnalytics(c *gin.Context) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -30)

	if s := c.Query("start"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date, expected YYYY-MM-DD"})
			return
		}
		startDate = parsed
	}
	if e := c.Query("end"); e != "" {
		parsed, err := time.Parse("2006-01-02", e)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date, expected YYYY-MM-DD"})
			return
		}
		endDate = parsed
	}

	rows, err := h.analyticsService.GetByDateRange(startDate, endDate)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"analytics": rows})
}

func (h *DashboardHandler) GetCustomers(c *gin.Context) {
	customers, err := h.customerService.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": customers})
}
