package dto

import "net/http"

// Error codes returned by the API
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInvalidState = "INVALID_STATE"
	ErrCodeNoProducts   = "NO_PRODUCTS"
	ErrCodeNoAnchorItem = "NO_ANCHOR_ITEM"
	ErrCodeUpstream     = "UPSTREAM_ERROR"
	ErrCodeUnavailable  = "UPSTREAM_UNAVAILABLE"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// statusByCode maps API error codes to HTTP status codes
var statusByCode = map[string]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	"INVALID_INPUT":     http.StatusBadRequest,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeInvalidState: http.StatusConflict,
	ErrCodeNoProducts:   http.StatusUnprocessableEntity,
	ErrCodeNoAnchorItem: http.StatusUnprocessableEntity,
	ErrCodeUpstream:     http.StatusBadGateway,
	ErrCodeUnavailable:  http.StatusBadGateway,
	ErrCodeInternal:     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an API error code,
// defaulting to 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
