package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/nutrisense/backend/internal/apierror"
	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/internal/service"
)

// DefaultHistoryDays is the day list length when ?days= is absent
const DefaultHistoryDays = 30

// DayHandler handles day history requests
type DayHandler struct {
	dayService service.DayService
	now        Clock
}

// NewDayHandler creates a new day handler
func NewDayHandler(dayService service.DayService, now Clock) *DayHandler {
	if now == nil {
		now = time.Now
	}
	return &DayHandler{dayService: dayService, now: now}
}

// GetDays returns recent day records, most recent first
// GET /api/v1/days?days=&at=
func (h *DayHandler) GetDays(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	n, ok := intQuery(c, "days", DefaultHistoryDays, 1, service.MaxHistoryDays)
	if !ok {
		return
	}
	at, ok := atQuery(c, h.now)
	if !ok {
		return
	}

	days, err := h.dayService.GetDays(c.Request.Context(), userID, n, at)
	if err != nil {
		writeServiceError(c, err, "days", userID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days, "count": len(days)})
}

// PutDay stores the full record for one date
// PUT /api/v1/days/:date
func (h *DayHandler) PutDay(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	date := c.Param("date")
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		apierror.WriteProblem(c, apierror.NewInvalidDateError(apierror.GetRequestID(c), "date", date, "YYYY-MM-DD"))
		return
	}

	var day models.DayRecord
	if err := c.ShouldBindJSON(&day); err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c), err.Error(), "Invalid JSON format"))
		return
	}
	// The path is authoritative for the date
	day.Date = date

	saved, err := h.dayService.PutDay(c.Request.Context(), userID, &day)
	if err != nil {
		writeServiceError(c, err, "day", date)
		return
	}

	c.JSON(http.StatusOK, saved)
}

// DeleteDay removes the record for one date
// DELETE /api/v1/days/:date
func (h *DayHandler) DeleteDay(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	date := c.Param("date")
	if err := h.dayService.DeleteDay(c.Request.Context(), userID, date); err != nil {
		writeServiceError(c, err, "day", date)
		return
	}

	c.Status(http.StatusNoContent)
}
