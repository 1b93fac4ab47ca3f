package apierror

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the MIME type for RFC 9457 Problem Details.
const ContentTypeProblemJSON = "application/problem+json"

// WriteProblem writes a ProblemDetails response and aborts the chain.
// If RetryAfter is set, the Retry-After header is set too.
func WriteProblem(c *gin.Context, problem *ProblemDetails) {
	c.Header("Content-Type", ContentTypeProblemJSON)

	if problem.RetryAfter != nil {
		c.Header("Retry-After", strconv.Itoa(*problem.RetryAfter))
	}

	if problem.Instance == "" && c.Request != nil {
		problem.Instance = c.Request.URL.Path
	}

	c.AbortWithStatusJSON(problem.Status, problem)
}

// GetRequestID extracts the request ID from the gin context.
// Returns empty string if not found.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return c.GetHeader("X-Request-ID")
}

// NewValidationError creates a 400 response listing every failed field.
func NewValidationError(requestID string, errors []FieldError) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeValidation,
		Title:       TitleValidation,
		Status:      http.StatusBadRequest,
		Detail:      "One or more fields failed validation",
		RequestID:   requestID,
		UserMessage: "Please check your input and try again",
		Errors:      errors,
	}
}

// NewNotFoundError creates a 404 Not Found response.
func NewNotFoundError(requestID, resource, key string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeNotFound,
		Title:       TitleNotFound,
		Status:      http.StatusNotFound,
		Detail:      fmt.Sprintf("%s '%s' was not found", resource, key),
		RequestID:   requestID,
		UserMessage: fmt.Sprintf("The requested %s could not be found", resource),
	}
}

// NewInvalidDateError creates a 400 response for a date that does not parse.
func NewInvalidDateError(requestID, field, value, layout string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInvalidDate,
		Title:       TitleInvalidDate,
		Status:      http.StatusBadRequest,
		Detail:      fmt.Sprintf("Field '%s' has value '%s', expected format %s", field, value, layout),
		RequestID:   requestID,
		UserMessage: "The date is not valid",
		Errors: []FieldError{
			{Field: field, Message: "must be formatted as " + layout, Code: "invalid_date"},
		},
	}
}

// NewInvalidQueryError creates a 400 response for a query parameter that is out of range.
func NewInvalidQueryError(requestID, param, value, expected string) *ProblemDetails {
	return &ProblemDetails{
		Type:      TypeInvalidQuery,
		Title:     TitleInvalidQuery,
		Status:    http.StatusBadRequest,
		Detail:    fmt.Sprintf("Query parameter '%s' has value '%s', expected %s", param, value, expected),
		RequestID: requestID,
		Errors: []FieldError{
			{Field: param, Message: "expected " + expected, Code: "invalid_query"},
		},
	}
}

// NewRateLimitError creates a 429 Too Many Requests response.
func NewRateLimitError(requestID string, retryAfter int) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeRateLimit,
		Title:       TitleRateLimit,
		Status:      http.StatusTooManyRequests,
		Detail:      fmt.Sprintf("Rate limit exceeded. Please retry after %d seconds", retryAfter),
		RequestID:   requestID,
		UserMessage: "Too many requests. Please wait before trying again.",
		RetryAfter:  &retryAfter,
	}
}

// NewInternalError creates a 500 response. It hides internal details from
// the client; the cause is logged server-side.
func NewInternalError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInternal,
		Title:       TitleInternal,
		Status:      http.StatusInternalServerError,
		Detail:      "An unexpected error occurred",
		RequestID:   requestID,
		UserMessage: "Something went wrong. Please try again later.",
	}
}

// NewBadRequestError creates a 400 Bad Request response for malformed requests.
func NewBadRequestError(requestID, detail, userMessage string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeBadRequest,
		Title:       TitleBadRequest,
		Status:      http.StatusBadRequest,
		Detail:      detail,
		RequestID:   requestID,
		UserMessage: userMessage,
	}
}

// NewUnauthorizedError creates a 401 Unauthorized response.
func NewUnauthorizedError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeUnauthorized,
		Title:       TitleUnauthorized,
		Status:      http.StatusUnauthorized,
		Detail:      "Authentication is required to access this resource",
		RequestID:   requestID,
		UserMessage: "Please sign in to continue",
		Action:      "authenticate",
	}
}

// NewServiceUnavailableError creates a 503 response.
func NewServiceUnavailableError(requestID string, retryAfter int) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeUnavailable,
		Title:       TitleUnavailable,
		Status:      http.StatusServiceUnavailable,
		Detail:      "A backing store is temporarily unavailable",
		RequestID:   requestID,
		UserMessage: "Your data could not be loaded right now. Please try again shortly.",
		RetryAfter:  &retryAfter,
	}
}
