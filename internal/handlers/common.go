package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/nutrisense/backend/internal/apierror"
	"github.com/JonnyWalker81/nutrisense/backend/internal/logger"
	"github.com/JonnyWalker81/nutrisense/backend/internal/repository"
	"github.com/JonnyWalker81/nutrisense/backend/internal/service"
	"github.com/JonnyWalker81/nutrisense/backend/pkg/supabase"
)

// Clock returns the current time; handlers take it so tests can pin "now"
type Clock func() time.Time

// requireUser returns the authenticated user id, writing a 401 when absent
func requireUser(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return "", false
	}
	return userID, true
}

// intQuery parses an optional integer query parameter within [min, max].
// An absent parameter yields def.
func intQuery(c *gin.Context, name string, def, min, max int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min || v > max {
		expected := "an integer from " + strconv.Itoa(min) + " to " + strconv.Itoa(max)
		apierror.WriteProblem(c, apierror.NewInvalidQueryError(apierror.GetRequestID(c), name, raw, expected))
		return 0, false
	}
	return v, true
}

// atQuery parses the optional RFC 3339 "at" parameter, defaulting to now
func atQuery(c *gin.Context, now Clock) (time.Time, bool) {
	raw := c.Query("at")
	if raw == "" {
		return now(), true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		apierror.WriteProblem(c, apierror.NewInvalidDateError(apierror.GetRequestID(c), "at", raw, "RFC 3339"))
		return time.Time{}, false
	}
	return t, true
}

// writeServiceError maps a service error to a problem response
func writeServiceError(c *gin.Context, err error, resource, key string) {
	requestID := apierror.GetRequestID(c)

	var upstream *supabase.Error
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: resource, Message: err.Error(), Code: "invalid"},
		}))
	case errors.Is(err, repository.ErrNotFound):
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, resource, key))
	case errors.As(err, &upstream) && upstream.StatusCode >= http.StatusInternalServerError:
		logger.Ctx(c.Request.Context()).Error("backing store failed", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewServiceUnavailableError(requestID, 30))
	default:
		logger.Ctx(c.Request.Context()).Error("request failed", logger.Err(err), logger.String("resource", resource))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
	}
}
