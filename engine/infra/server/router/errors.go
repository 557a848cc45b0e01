package router

import (
	"errors"
	"fmt"
	"net/http"
)

// Common sentinel errors
var (
	ErrInternal       = errors.New("internal server error")
	ErrInvalidAddress = errors.New("invalid address")
	ErrBindError      = errors.New("server bind error")
)

// Error codes
const (
	ErrInternalCode       = "INTERNAL_ERROR"
	ErrBadRequestCode     = "BAD_REQUEST"
	ErrUnauthorizedCode   = "UNAUTHORIZED"
	ErrForbiddenCode      = "FORBIDDEN"
	ErrNotFoundCode       = "NOT_FOUND"
	ErrConflictCode       = "CONFLICT"
	ErrRequestTimeoutCode = "REQUEST_TIMEOUT"
)

// RequestError represents errors that can occur during request handling
type RequestError struct {
	WorkflowID string
	Reason     string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.WorkflowID != "" {
		return fmt.Sprintf("Workflow %s failed: %s", e.WorkflowID, e.Reason)
	}
	return e.Reason
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewRequestError creates a new RequestError
func NewRequestError(statusCode int, reason string, err error) *RequestError {
	return &RequestError{
		StatusCode: statusCode,
		Reason:     reason,
		Err:        err,
	}
}

// WorkflowExecutionError creates a new workflow execution error
func WorkflowExecutionError(workflowID, reason string, err error) *RequestError {
	return &RequestError{
		StatusCode: http.StatusInternalServerError,
		WorkflowID: workflowID,
		Reason:     reason,
		Err:        err,
	}
}

// IsRequestError checks if the given error is a RequestError
func IsRequestError(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// GetErrorInfo extracts error information for the standardized response
func (e *RequestError) GetErrorInfo() *ErrorInfo {
	var details string
	if e.Err != nil {
		details = e.Err.Error()
	}
	code := ErrInternalCode
	switch e.StatusCode {
	case http.StatusBadRequest:
		code = ErrBadRequestCode
	case http.StatusNotFound:
		code = ErrNotFoundCode
	case http.StatusUnauthorized:
		code = ErrUnauthorizedCode
	case http.StatusForbidden:
		code = ErrForbiddenCode
	case http.StatusConflict:
		code = ErrConflictCode
	case http.StatusRequestTimeout:
		code = ErrRequestTimeoutCode
	}
	return &ErrorInfo{
		Code:    code,
		Message: e.Reason,
		Details: details,
	}
}
