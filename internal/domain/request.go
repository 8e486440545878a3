package domain

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Request describes one call against the backend. Path is resolved against
// the configured base URL.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Headers map[string]string

	// Anonymous requests carry no bearer token and a 401 on them is never
	// answered with a refresh. Credential endpoints set it.
	Anonymous bool
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r Response) OK() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

func (r Response) DecodeJSON(v any) error {
	if v == nil || len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
