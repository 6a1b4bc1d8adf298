package dto

import "net/http"

// Error codes surfaced by the API. Handlers pass domain error codes
// through unchanged, so the constants here mirror the codes the domain
// layer raises plus the transport-only ones (auth, rate limiting).

// General error codes
const (
	ErrCodeUnknown  = "UNKNOWN"
	ErrCodeInternal = "INTERNAL_ERROR"
)

// Input error codes
const (
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "INVALID_TOKEN"
	ErrCodeTokenRevoked = "TOKEN_REVOKED"
)

// Resource error codes
const (
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeConflict            = "CONFLICT"
	ErrCodeDuplicateSubmission = "DUPLICATE_SUBMISSION"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for the
	// current lifecycle state (dispatching twice, verifying before delivery)
	ErrCodeInvalidState = "INVALID_STATE"
	// ErrCodeAmbiguityUnresolved is used when a quick-order review still
	// has lines that need a product selection
	ErrCodeAmbiguityUnresolved = "AMBIGUITY_UNRESOLVED"
	// ErrCodeAccountRestricted is used when outstanding invoices block checkout
	ErrCodeAccountRestricted = "ACCOUNT_RESTRICTED"
)

// Upstream and availability error codes
const (
	// ErrCodeUpstreamParse is used when the parsing model returned
	// nothing usable
	ErrCodeUpstreamParse = "UPSTREAM_PARSE_FAILED"
	// ErrCodeStorageDisabled is used when object storage is not configured
	ErrCodeStorageDisabled = "STORAGE_DISABLED"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "RATE_LIMIT_EXCEEDED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	"INVALID_UNIT":         http.StatusBadRequest,
	"INVALID_QUANTITY":     http.StatusBadRequest,
	"INVALID_PRICE":        http.StatusBadRequest,
	"INVALID_PRODUCT":      http.StatusBadRequest,
	"INVALID_PRODUCT_NAME": http.StatusBadRequest,
	"INVALID_CART_LINE":    http.StatusBadRequest,
	"INVALID_DELIVERY":     http.StatusBadRequest,
	"INVALID_ORDER":        http.StatusBadRequest,
	"INVALID_ORDER_NUMBER": http.StatusBadRequest,
	"INVALID_STATUS":       http.StatusBadRequest,
	"INVALID_METRIC":       http.StatusBadRequest,
	"INVALID_BUYER":        http.StatusBadRequest,
	"INVALID_BUYER_NAME":   http.StatusBadRequest,
	"INVALID_EMAIL":        http.StatusBadRequest,
	"INVALID_WHOLESALER":   http.StatusBadRequest,
	"INVALID_CONTENT_TYPE": http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeTokenRevoked: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeDuplicateSubmission: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:        http.StatusUnprocessableEntity,
	ErrCodeAmbiguityUnresolved: http.StatusUnprocessableEntity,
	ErrCodeAccountRestricted:   http.StatusUnprocessableEntity,

	// Upstream and availability
	ErrCodeUpstreamParse:   http.StatusBadGateway,
	ErrCodeStorageDisabled: http.StatusServiceUnavailable,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
