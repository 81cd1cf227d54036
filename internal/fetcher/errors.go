package fetcher

import (
	"fmt"
	"strings"
)

// UpstreamError reports a non-success status from the provider for one meal.
type UpstreamError struct {
	MealType   string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API failed: %d", capitalize(e.MealType), e.StatusCode)
}

// DataShapeError reports a response body missing the expected week structure.
type DataShapeError struct {
	MealType string
	Err      error
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("invalid %s menu data structure received from API: %v", e.MealType, e.Err)
}

func (e *DataShapeError) Unwrap() error { return e.Err }

// NetworkError reports a transport-level failure for one meal request.
type NetworkError struct {
	MealType string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.MealType, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// MenuUnavailableError is the single user-facing failure wrapping whichever
// lower fault prevented the menu from being fetched.
type MenuUnavailableError struct {
	Err error
}

func (e *MenuUnavailableError) Error() string {
	return fmt.Sprintf("Unable to fetch menu data: %v", e.Err)
}

func (e *MenuUnavailableError) Unwrap() error { return e.Err }

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
