package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventplanner-api/middleware"
	"eventplanner-api/models"
	"eventplanner-api/services"
	"eventplanner-api/utils"
)

type AnalyticsHandler struct {
	Service *services.AnalyticsService
}

// GetAnalytics returns the derived statistics for the authenticated user,
// filtered by ?period=week|month|year (default month) and an optional
// ?status= event-status filter. The display block carries the screen-ready
// strings: percentages rounded up to one decimal, amounts with grouped
// thousands.
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period := models.ParsePeriodFilter(c.Query("period"))

	statusFilter := models.EventStatus(c.Query("status"))
	if statusFilter != "" && !statusFilter.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}

	result, err := h.Service.Snapshot(c.Request.Context(), userID, period, statusFilter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"period":    period,
		"analytics": result,
		"display": gin.H{
			"rsvp_rate":            utils.FormatPercent(result.RSVPRate),
			"task_completion_rate": utils.FormatPercent(result.TaskCompletionRate),
			"budget_utilization":   utils.FormatPercent(result.BudgetUtilization),
			"total_budget":         utils.FormatAmount(result.TotalBudget),
			"total_spent":          utils.FormatAmount(result.TotalSpent),
			"remaining_budget":     utils.FormatAmount(result.RemainingBudget),
		},
	})
}
