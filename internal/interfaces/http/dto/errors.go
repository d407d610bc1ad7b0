package dto

import (
	"net/http"

	"github.com/billfold/backend/internal/domain/shared"
)

// Error codes produced by the HTTP layer itself
const (
	ErrCodeBadRequest     = "BAD_REQUEST"
	ErrCodeMissingAccount = "MISSING_ACCOUNT"
	ErrCodeInternal       = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	shared.CodeValidation:        http.StatusBadRequest,
	shared.CodeNotFound:          http.StatusNotFound,
	shared.CodeAlreadyExists:     http.StatusConflict,
	shared.CodeConflict:          http.StatusConflict,
	shared.CodeInvalidState:      http.StatusUnprocessableEntity,
	shared.CodeInvalidTransition: http.StatusUnprocessableEntity,
	shared.CodeCollaborator:      http.StatusBadGateway,
	ErrCodeBadRequest:            http.StatusBadRequest,
	ErrCodeMissingAccount:        http.StatusUnauthorized,
	ErrCodeInternal:              http.StatusInternalServerError,
}

// HTTPStatusForCode returns the HTTP status for an error code,
// defaulting to 500 for unknown codes.
func HTTPStatusForCode(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
