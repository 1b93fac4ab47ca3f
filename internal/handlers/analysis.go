package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/nutrisense/backend/internal/service"
)

// AnalysisHandler handles history analysis requests
type AnalysisHandler struct {
	analysisService service.AnalysisService
	now             Clock
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService service.AnalysisService, now Clock) *AnalysisHandler {
	if now == nil {
		now = time.Now
	}
	return &AnalysisHandler{analysisService: analysisService, now: now}
}

// GetAnalysis returns the statistics report over recent history
// GET /api/v1/analysis?days=&at=
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	// 0 lets the engine pick its configured window
	days, ok := intQuery(c, "days", 0, 1, service.MaxHistoryDays)
	if !ok {
		return
	}
	at, ok := atQuery(c, h.now)
	if !ok {
		return
	}

	report, err := h.analysisService.Analyze(c.Request.Context(), userID, days, at)
	if err != nil {
		writeServiceError(c, err, "analysis", userID)
		return
	}

	c.JSON(http.StatusOK, report)
}
