package woo

import "fmt"

// ErrorKind classifies request failures into the closed set exposed to MCP callers.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation_error"
	KindAuth       ErrorKind = "auth_error"
	KindNotFound   ErrorKind = "not_found"
	KindTransient  ErrorKind = "transient_error"
)

// APIError is a classified WooCommerce request failure. Status is 0 when the
// request never produced an HTTP response (network failure, cancellation).
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// classifyStatus maps a non-2xx HTTP status to an error kind.
func classifyStatus(status int) ErrorKind {
	switch {
	case status == 401 || status == 403:
		return KindAuth
	case status == 404:
		return KindNotFound
	case status >= 500:
		return KindTransient
	case status >= 400:
		return KindValidation
	default:
		return KindTransient
	}
}

// validationError builds a local validation failure that never reached the store.
func validationError(format string, args ...any) *APIError {
	return &APIError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}
