package apierror

// Error type URIs following the urn:nutrisense:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request body validation failed (400)
	TypeValidation = "urn:nutrisense:error:validation"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "urn:nutrisense:error:not_found"

	// TypeRateLimit indicates too many requests (429)
	TypeRateLimit = "urn:nutrisense:error:rate_limit"

	// TypeUnauthorized indicates missing or invalid authentication (401)
	TypeUnauthorized = "urn:nutrisense:error:unauthorized"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:nutrisense:error:internal"

	// TypeUnavailable indicates a backing store could not be reached (503)
	TypeUnavailable = "urn:nutrisense:error:unavailable"

	// TypeInvalidDate indicates a date or timestamp that does not parse (400)
	TypeInvalidDate = "urn:nutrisense:error:invalid_date"

	// TypeInvalidQuery indicates an out-of-range query parameter (400)
	TypeInvalidQuery = "urn:nutrisense:error:invalid_query"

	// TypeBadRequest indicates a malformed request (400)
	TypeBadRequest = "urn:nutrisense:error:bad_request"
)

// Titles for each error type
const (
	TitleValidation   = "Validation Error"
	TitleNotFound     = "Resource Not Found"
	TitleRateLimit    = "Rate Limit Exceeded"
	TitleUnauthorized = "Authentication Required"
	TitleInternal     = "Internal Server Error"
	TitleUnavailable  = "Service Unavailable"
	TitleInvalidDate  = "Invalid Date"
	TitleInvalidQuery = "Invalid Query Parameter"
	TitleBadRequest   = "Bad Request"
)
