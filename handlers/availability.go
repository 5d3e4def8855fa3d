package handlers

import (
	"net/http"
	"strconv"
	"time"

	"padelwatch/services/query"
	"padelwatch/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler serves the on-demand availability query surface.
type AvailabilityHandler struct {
	Query query.Service
}

func NewAvailabilityHandler(querySvc query.Service) *AvailabilityHandler {
	return &AvailabilityHandler{Query: querySvc}
}

// CheckAvailabilityHandler handles GET /api/availability. Query parameters:
// date (default today), min_time (default "20:00"), min_duration in minutes
// (default 90). Invalid input is rejected here and never reaches the monitor
// core.
func (h *AvailabilityHandler) CheckAvailabilityHandler(c *gin.Context) {
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	minTime := c.DefaultQuery("min_time", "20:00")
	minDurationStr := c.DefaultQuery("min_duration", "90")

	if _, err := time.Parse("2006-01-02", date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", "date must be in YYYY-MM-DD format")
		return
	}
	if _, err := time.Parse("15:04", minTime); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid min_time", "min_time must be in HH:MM format")
		return
	}
	minDuration, err := strconv.Atoi(minDurationStr)
	if err != nil || minDuration <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid min_duration", "min_duration must be a positive whole number of minutes")
		return
	}

	result, err := h.Query.CheckAvailability(c.Request.Context(), query.Request{
		Date:        date,
		MinTime:     minTime,
		MinDuration: minDuration,
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to check availability", err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}
