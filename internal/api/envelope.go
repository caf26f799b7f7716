package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Response is the single-resource envelope returned by the backend.
type Response[T any] struct {
	Data    T        `json:"data"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Success bool     `json:"success"`
}

// Pagination describes the collection envelope's paging block.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

// Paginated is the collection envelope returned by the backend.
type Paginated[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// DecodeResponse unwraps a single-resource envelope, surfacing success=false
// as a typed error.
func DecodeResponse[T any](body []byte) (T, error) {
	var envelope Response[T]
	if err := json.Unmarshal(body, &envelope); err != nil {
		var zero T
		return zero, NewError(fmt.Sprintf("failed to parse response: %v", err), 0, CodeParseError, body)
	}

	if !envelope.Success {
		message := envelope.Message
		if message == "" {
			message = "API request failed"
		}
		if len(envelope.Errors) > 0 {
			message = fmt.Sprintf("%s: %s", message, strings.Join(envelope.Errors, "; "))
		}
		var zero T
		return zero, NewError(message, 0, CodeAPIError, body)
	}

	return envelope.Data, nil
}

// DecodePaginated unwraps a collection envelope.
func DecodePaginated[T any](body []byte) (*Paginated[T], error) {
	var envelope Paginated[T]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, NewError(fmt.Sprintf("failed to parse response: %v", err), 0, CodeParseError, body)
	}
	return &envelope, nil
}
