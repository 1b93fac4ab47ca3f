package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/nutrisense/backend/internal/service"
)

// MaxAdviceLimit caps the limit query parameter
const MaxAdviceLimit = 50

// AdviceHandler handles advice requests
type AdviceHandler struct {
	adviceService service.AdviceService
	now           Clock
}

// NewAdviceHandler creates a new advice handler
func NewAdviceHandler(adviceService service.AdviceService, now Clock) *AdviceHandler {
	if now == nil {
		now = time.Now
	}
	return &AdviceHandler{adviceService: adviceService, now: now}
}

// GetAdvice returns ranked advice for the authenticated user
// GET /api/v1/advice?limit=&at=
func (h *AdviceHandler) GetAdvice(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit", 0, 1, MaxAdviceLimit)
	if !ok {
		return
	}
	at, ok := atQuery(c, h.now)
	if !ok {
		return
	}

	resp, err := h.adviceService.GetAdvice(c.Request.Context(), userID, at, limit)
	if err != nil {
		writeServiceError(c, err, "advice", userID)
		return
	}

	c.JSON(http.StatusOK, resp)
}
