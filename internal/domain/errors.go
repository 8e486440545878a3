package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrSecretNotFound  = errors.New("secret not found")
	ErrNoResponse      = errors.New("no response from server")
)

type ErrorKind string

const (
	KindNetwork        ErrorKind = "network"
	KindAuthentication ErrorKind = "authentication"
	KindSessionExpired ErrorKind = "session_expired"
	KindValidation     ErrorKind = "validation"
	KindNotFound       ErrorKind = "not_found"
	KindRateLimited    ErrorKind = "rate_limited"
	KindServer         ErrorKind = "server"
	KindUnknown        ErrorKind = "unknown"
)

// Kind sentinels let callers match with errors.Is(err, domain.ErrValidation).
var (
	ErrNetwork        = &APIError{Kind: KindNetwork}
	ErrAuthentication = &APIError{Kind: KindAuthentication}
	ErrSessionExpired = &APIError{Kind: KindSessionExpired}
	ErrValidation     = &APIError{Kind: KindValidation}
	ErrNotFound       = &APIError{Kind: KindNotFound}
	ErrRateLimited    = &APIError{Kind: KindRateLimited}
	ErrServer         = &APIError{Kind: KindServer}
	ErrUnknown        = &APIError{Kind: KindUnknown}
)

// APIError is the single failure record produced by the request pipeline.
type APIError struct {
	Kind              ErrorKind
	Message           string
	HTTPStatus        int
	RetryAfterSeconds int
	FieldErrors       map[string][]string
	// Resource names what was not found ("product", "order") when known.
	Resource string
	Err      error
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Resource != "" {
		b.WriteString(" (" + e.Resource + ")")
	}
	if e.HTTPStatus != 0 {
		fmt.Fprintf(&b, ": status %d", e.HTTPStatus)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is matches any APIError of the same kind.
func (e *APIError) Is(target error) bool {
	var other *APIError
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

// WithResource returns a copy specialised for a resource lookup.
func (e *APIError) WithResource(resource string) *APIError {
	clone := *e
	clone.Resource = resource
	return &clone
}

// KindOf reports the kind of an API error, or KindUnknown for anything else.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// AsAPIError extracts the API error from err, wrapping foreign errors as
// KindUnknown. It returns nil for a nil error.
func AsAPIError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &APIError{Kind: KindUnknown, Message: err.Error(), Err: err}
}

// IsAuthFailure reports whether err means the credentials are no longer valid.
func IsAuthFailure(err error) bool {
	switch KindOf(err) {
	case KindAuthentication, KindSessionExpired:
		return true
	default:
		return false
	}
}
