package types

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ERR_VALIDATION ErrorCode = "validation_error"
	ERR_CONFLICT   ErrorCode = "conflict"
	ERR_NOT_FOUND  ErrorCode = "not_found"
	ERR_STATE      ErrorCode = "state_error"
)

// DomainError carries a stable code so callers can branch without string
// matching. The reconciler never returns these for unmatched narratives.
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(format string, args ...any) *DomainError {
	return &DomainError{Code: ERR_VALIDATION, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...any) *DomainError {
	return &DomainError{Code: ERR_CONFLICT, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) *DomainError {
	return &DomainError{Code: ERR_NOT_FOUND, Message: fmt.Sprintf(format, args...)}
}

func NewStateError(format string, args ...any) *DomainError {
	return &DomainError{Code: ERR_STATE, Message: fmt.Sprintf(format, args...)}
}

func CodeOf(err error) (ErrorCode, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code, true
	}
	return "", false
}

// HTTPStatus maps a domain error to its transport status. Anything that is
// not a DomainError is treated as a server-side failure.
func HTTPStatus(err error) int {
	code, ok := CodeOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch code {
	case ERR_VALIDATION:
		return http.StatusBadRequest
	case ERR_CONFLICT:
		return http.StatusConflict
	case ERR_NOT_FOUND:
		return http.StatusNotFound
	case ERR_STATE:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
