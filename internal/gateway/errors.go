package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Operation  string `json:"operation"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("backend error during %s (%d): %s - %s", e.Operation, e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("backend error during %s (%d): %s", e.Operation, e.StatusCode, e.Message)
}

// newAPIError builds an APIError from a response body. The backend answers
// errors with {"error": "...", "message": "..."}; anything else is kept raw.
func newAPIError(operation string, statusCode int, body errorBody, raw []byte) *APIError {
	apiErr := &APIError{
		Operation:  operation,
		StatusCode: statusCode,
		Message:    body.Error,
		Details:    body.Message,
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(statusCode)
	}
	if apiErr.Details == "" && body.Error == "" {
		apiErr.Details = strings.TrimSpace(string(raw))
	}
	return apiErr
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NetworkError is a transport failure: the request never got an HTTP answer.
type NetworkError struct {
	Operation string `json:"operation"`
	URL       string `json:"url"`
	Err       error  `json:"error"`
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s to %s: %v", e.Operation, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError is raised locally when an outgoing body breaks the
// backend contract. No request is sent.
type ValidationError struct {
	Operation string   `json:"operation"`
	Problems  []string `json:"problems"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s request: %s", e.Operation, strings.Join(e.Problems, "; "))
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsValidation reports whether err was raised before sending.
func IsValidation(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
