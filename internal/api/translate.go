package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/bnema/shopscript-cli/internal/domain"
)

var genericMessages = map[domain.ErrorKind]string{
	domain.KindNetwork:        "unable to reach the server",
	domain.KindAuthentication: "authentication required",
	domain.KindSessionExpired: "session expired, please sign in again",
	domain.KindValidation:     "the request was rejected as invalid",
	domain.KindNotFound:       "the requested resource was not found",
	domain.KindRateLimited:    "too many requests",
	domain.KindServer:         "the server failed to process the request",
	domain.KindUnknown:        "unexpected response from server",
}

// Translate maps a failed exchange to an API error. A non-nil transportErr
// means no response was received and resp is ignored. The result depends
// only on the inputs.
func Translate(resp domain.Response, transportErr error) *domain.APIError {
	if transportErr != nil {
		return &domain.APIError{
			Kind:    domain.KindNetwork,
			Message: genericMessages[domain.KindNetwork],
			Err:     transportErr,
		}
	}

	kind := kindForStatus(resp.StatusCode)
	body := parseErrorBody(resp.Body)

	apiErr := &domain.APIError{
		Kind:       kind,
		HTTPStatus: resp.StatusCode,
		Message:    body.message(kind),
	}

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		apiErr.FieldErrors = body.fieldErrors()
	case http.StatusTooManyRequests:
		apiErr.RetryAfterSeconds = parseRetryAfter(resp.Header.Get("Retry-After"))
	}

	return apiErr
}

func kindForStatus(status int) domain.ErrorKind {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.KindValidation
	case http.StatusUnauthorized:
		return domain.KindAuthentication
	case http.StatusNotFound:
		return domain.KindNotFound
	case http.StatusTooManyRequests:
		return domain.KindRateLimited
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return domain.KindServer
	default:
		return domain.KindUnknown
	}
}

type errorBody map[string]json.RawMessage

func parseErrorBody(raw []byte) errorBody {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}
	return body
}

func (b errorBody) message(kind domain.ErrorKind) string {
	for _, key := range []string{"message", "error"} {
		if text := stringField(b[key]); text != "" {
			return text
		}
	}
	return genericMessages[kind]
}

// fieldErrors accepts both {"field": "msg"} and {"field": ["msg", ...]}.
func (b errorBody) fieldErrors() map[string][]string {
	raw, ok := b["errors"]
	if !ok {
		return nil
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	fields := make(map[string][]string, len(entries))
	for field, value := range entries {
		var messages []string
		if err := json.Unmarshal(value, &messages); err == nil {
			fields[field] = messages
			continue
		}
		if text := stringField(value); text != "" {
			fields[field] = []string{text}
		}
	}
	if len(fields) == 0 {
		return nil
	}

	return fields
}

func stringField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// parseRetryAfter reads the delay-seconds form of Retry-After. HTTP-date
// values yield 0.
func parseRetryAfter(value string) int {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}
