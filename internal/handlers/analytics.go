// internal/handlers/analytics.go
package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spicekart/backoffice/internal/services"
	"github.com/spicekart/backoffice/internal/utils"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GET /api/:storeId/analytics/dashboard
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}

	stats, err := h.analyticsService.Dashboard(store.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"dashboard": stats})
}

// GET /api/:storeId/analytics/revenue?year=2026
func (h *AnalyticsHandler) GetMonthlyRevenue(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}

	year := time.Now().Year()
	if yearStr := c.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil || parsed < 2000 || parsed > 2200 {
			utils.BadRequestResponse(c, "Invalid year", nil)
			return
		}
		year = parsed
	}

	revenue, err := h.analyticsService.MonthlyRevenue(store.ID, year)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"year":    year,
		"revenue": revenue,
	})
}
