package handlers

import (
	"net/http"

	"padelwatch/services/monitor"
	"padelwatch/utils"

	"github.com/gin-gonic/gin"
)

// MonitorHandler exposes a manual trigger for the monitor cycle, for
// operations and debugging alongside the scheduled runs.
type MonitorHandler struct {
	Monitor monitor.Service
}

func NewMonitorHandler(monitorSvc monitor.Service) *MonitorHandler {
	return &MonitorHandler{Monitor: monitorSvc}
}

// RunMonitorHandler handles POST /api/monitor/run.
func (h *MonitorHandler) RunMonitorHandler(c *gin.Context) {
	if err := h.Monitor.RunCycle(c.Request.Context()); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "monitor cycle failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}
