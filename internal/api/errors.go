package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx response from the AgentScope API. The access layer
// never translates these; callers branch on StatusCode.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Detail, e.StatusCode)
	}
	return fmt.Sprintf("api: request failed with status %d", e.StatusCode)
}

// IsUnauthorized reports whether err is an API error with status 401.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// IsNotFound reports whether err is an API error with status 404.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// IsStatus reports whether err is an API error with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// errorBody is the FastAPI error envelope. Detail is a string for plain
// errors and structured data for validation errors, so it is kept raw and
// stringified as needed.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

func newError(statusCode int, body []byte) *Error {
	e := &Error{StatusCode: statusCode}
	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return e
	}
	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		e.Detail = s
	} else {
		e.Detail = string(envelope.Detail)
	}
	return e
}
