package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/shopscript-cli/internal/domain"
	"github.com/bnema/shopscript-cli/internal/ports"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	maxResponseBytes = 8 << 20
	requestIDHeader  = "X-Request-ID"
	jsonContentType  = "application/json"
)

// Transport sends JSON requests to one backend origin.
type Transport struct {
	baseURL        *url.URL
	headers        map[string]string
	client         *http.Client
	requestTimeout time.Duration
	logger         zerolog.Logger
}

var _ ports.Transport = (*Transport)(nil)

// New builds a transport for profile. A nil client gets one whose dialer and
// response-header timeouts follow the profile's connect and receive timeouts.
func New(profile domain.Profile, client *http.Client, logger zerolog.Logger) (*Transport, error) {
	profile = profile.WithDefaults()

	baseURL, err := parseBaseURL(profile.BaseURL)
	if err != nil {
		return nil, err
	}
	if client == nil {
		client = newHTTPClient(profile.ConnectTimeout, profile.ReceiveTimeout)
	}

	headers := make(map[string]string, len(profile.Headers))
	for key, value := range profile.Headers {
		headers[key] = value
	}

	return &Transport{
		baseURL:        baseURL,
		headers:        headers,
		client:         client,
		requestTimeout: profile.ConnectTimeout + profile.ReceiveTimeout,
		logger:         logger.With().Str("component", "transport").Logger(),
	}, nil
}

func (t *Transport) Do(ctx context.Context, req domain.Request) (domain.Response, error) {
	endpoint, err := t.resolve(req.Path, req.Query)
	if err != nil {
		return domain.Response{}, err
	}

	body, err := encodeBody(req.Body)
	if err != nil {
		return domain.Response{}, err
	}

	requestCtx, cancel := t.requestContext(ctx)
	defer cancel()

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(requestCtx, method, endpoint, body)
	if err != nil {
		return domain.Response{}, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", jsonContentType)
	httpReq.Header.Set("Accept", jsonContentType)
	for key, value := range t.headers {
		httpReq.Header.Set(key, value)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	httpReq.Header.Set(requestIDHeader, requestID)

	t.logger.Trace().Str("request_id", requestID).Str("method", method).Str("url", endpoint).Msg("sending request")

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return domain.Response{}, fmt.Errorf("%w: %s %s: %w", domain.ErrNoResponse, method, req.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.Response{}, fmt.Errorf("%w: read response: %w", domain.ErrNoResponse, err)
	}

	t.logger.Trace().Str("request_id", requestID).Int("status", resp.StatusCode).Msg("received response")

	return domain.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// resolve joins a relative path onto the base URL, keeping the base path
// prefix. Absolute http(s) URLs are accepted only on the base URL's origin.
func (t *Transport) resolve(path string, query url.Values) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("request path is required")
	}

	var endpoint *url.URL
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		parsed, err := url.Parse(path)
		if err != nil {
			return "", fmt.Errorf("parse request url: %w", err)
		}
		if !strings.EqualFold(parsed.Scheme, t.baseURL.Scheme) || !strings.EqualFold(parsed.Host, t.baseURL.Host) {
			return "", fmt.Errorf("request url %s://%s is outside %s://%s", parsed.Scheme, parsed.Host, t.baseURL.Scheme, t.baseURL.Host)
		}
		endpoint = parsed
	} else {
		relative, err := url.Parse(strings.TrimLeft(path, "/"))
		if err != nil {
			return "", fmt.Errorf("parse request path: %w", err)
		}
		joined := *t.baseURL
		joined.Path = strings.TrimRight(t.baseURL.Path, "/") + "/" + relative.Path
		joined.RawQuery = relative.RawQuery
		endpoint = &joined
	}

	if len(query) > 0 {
		values := endpoint.Query()
		for key, items := range query {
			for _, item := range items {
				values.Add(key, item)
			}
		}
		endpoint.RawQuery = values.Encode()
	}

	return endpoint.String(), nil
}

func (t *Transport) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, t.requestTimeout)
}

func encodeBody(body any) (io.Reader, error) {
	switch value := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(value), nil
	case json.RawMessage:
		return bytes.NewReader(value), nil
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		return bytes.NewReader(data), nil
	}
}

func newHTTPClient(connectTimeout, receiveTimeout time.Duration) *http.Client {
	dialer := &net.Dialer{Timeout: connectTimeout, KeepAlive: 30 * time.Second}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	transport.TLSHandshakeTimeout = connectTimeout
	transport.ResponseHeaderTimeout = receiveTimeout

	return &http.Client{Transport: transport}
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	if baseURL == "" {
		return nil, errors.New("api base url is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return nil, errors.New("api base url host is required")
	}

	return parsed, nil
}
