package api

import "errors"

// Error codes attached to typed API errors.
const (
	CodeParseError = "PARSE_ERROR"
	CodeAPIError   = "API_ERROR"
)

// Error is the typed error raised for failed marketplace API calls. It
// carries the HTTP status, an optional backend error code, and the raw
// response body for diagnostics.
type Error struct {
	Message string
	Code    string
	Details []byte
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// IsClientError reports whether the error is a 4xx response, which is never
// retried.
func (e *Error) IsClientError() bool {
	return e.Status >= 400 && e.Status < 500
}

// IsServerError reports whether the error is a 5xx response.
func (e *Error) IsServerError() bool {
	return e.Status >= 500
}

// IsNotFound reports whether the error is a 404 response.
func (e *Error) IsNotFound() bool {
	return e.Status == 404
}

// NewError creates a typed API error.
func NewError(message string, status int, code string, details []byte) *Error {
	return &Error{
		Message: message,
		Status:  status,
		Code:    code,
		Details: details,
	}
}

// AsError extracts a typed API error from an error chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
