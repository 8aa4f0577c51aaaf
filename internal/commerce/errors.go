package commerce

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a commerce backend failure mapped to a stable shape. Callers
// get a typed result instead of a swallowed error; whether and how to retry
// is left to them (the storefront itself never retries).
type APIError struct {
	StatusCode int    `json:"status"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("commerce backend: %s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// ClientStatus maps an upstream failure to the status the storefront should
// answer with. Client-caused statuses pass through; everything else is a bad
// gateway.
func (e *APIError) ClientStatus() int {
	switch e.StatusCode {
	case http.StatusBadRequest,
		http.StatusNotFound,
		http.StatusConflict,
		http.StatusUnprocessableEntity,
		http.StatusTooManyRequests:
		return e.StatusCode
	default:
		return http.StatusBadGateway
	}
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type upstreamErrorBody struct {
	Code    string `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func parseErrorResponse(statusCode int, body []byte) error {
	var parsed upstreamErrorBody
	json.Unmarshal(body, &parsed) // best effort

	code := parsed.Code
	if code == "" {
		code = parsed.Type
	}
	if code == "" {
		switch statusCode {
		case http.StatusNotFound:
			code = "not_found"
		case http.StatusUnauthorized, http.StatusForbidden:
			code = "unauthorized"
		case http.StatusTooManyRequests:
			code = "rate_limited"
		default:
			code = "upstream_error"
		}
	}

	message := parsed.Message
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return &APIError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}
