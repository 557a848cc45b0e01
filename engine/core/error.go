package core

import "fmt"

// Error is the structured error shape carried on wire payloads.
type Error struct {
	Message string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func NewError(err error, code string, details map[string]any) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: err.Error(),
		Code:    code,
		Details: details,
	}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}
