package notion

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by APIError.Is.
var (
	ErrNotFound     = errors.New("object not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("rate limited")
)

// APIError is an error response from the API.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("Notion API error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("Notion API error (%d): %s - %s", e.Status, e.Code, e.Message)
}

// Is maps API error codes onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == "object_not_found" || e.Status == 404
	case ErrUnauthorized:
		return e.Code == "unauthorized" || e.Status == 401
	case ErrRateLimited:
		return e.Code == "rate_limited" || e.Status == 429
	}
	return false
}
