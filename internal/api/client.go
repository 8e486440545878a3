// Package api is the authenticated request pipeline: every backend call goes
// through Client.Do, which injects the bearer token, refreshes the session
// once on 401 and translates failures into *domain.APIError.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/shopscript-cli/internal/domain"
	"github.com/bnema/shopscript-cli/internal/ports"
	"github.com/rs/zerolog"
)

const authorizationHeader = "Authorization"

type Config struct {
	Profile   domain.Profile
	Transport ports.Transport
	Store     ports.SecretStore
	Logger    zerolog.Logger
	// Metrics may be nil.
	Metrics *Metrics
}

type Client struct {
	transport ports.Transport
	session   *SessionManager
	logger    zerolog.Logger
	metrics   *Metrics
}

var _ ports.Requester = (*Client)(nil)

// New builds the pipeline and its session manager for one profile. The
// session starts empty; call Session().Restore to load persisted tokens.
func New(cfg Config) (*Client, error) {
	if err := cfg.Profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	if cfg.Transport == nil {
		return nil, errors.New("transport is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("secret store is required")
	}

	logger := cfg.Logger.With().Str("profile", cfg.Profile.Name).Logger()

	return &Client{
		transport: cfg.Transport,
		session:   NewSessionManager(cfg.Store, cfg.Transport, cfg.Profile, cfg.Logger, cfg.Metrics),
		logger:    logger,
		metrics:   cfg.Metrics,
	}, nil
}

func (c *Client) Session() *SessionManager {
	return c.session
}

// Do sends req and returns the 2xx response, or an error. A 401 triggers at
// most one session refresh followed by one replay of req.
func (c *Client) Do(ctx context.Context, req domain.Request) (domain.Response, error) {
	return c.do(ctx, req, false)
}

// DoJSON is Do followed by decoding the response body into out.
func (c *Client) DoJSON(ctx context.Context, req domain.Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	return resp.DecodeJSON(out)
}

func (c *Client) do(ctx context.Context, req domain.Request, replayed bool) (domain.Response, error) {
	token := c.session.AccessToken()
	started := time.Now()

	resp, err := c.transport.Do(ctx, authorize(req, token))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Response{}, ctxErr
		}
		apiErr := Translate(domain.Response{}, err)
		c.observe(req, 0, started, apiErr)
		return domain.Response{}, apiErr
	}

	if resp.OK() {
		c.observe(req, resp.StatusCode, started, nil)
		return resp, nil
	}

	if resp.StatusCode == http.StatusUnauthorized && !replayed && c.canRecover(req, token) {
		c.logger.Debug().Str("path", req.Path).Msg("access token rejected")

		if _, err := c.session.Refresh(ctx, token); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return domain.Response{}, ctxErr
			}
			c.observe(req, resp.StatusCode, started, err)
			return domain.Response{}, err
		}

		return c.do(ctx, req, true)
	}

	apiErr := Translate(resp, nil)
	c.observe(req, resp.StatusCode, started, apiErr)
	return domain.Response{}, apiErr
}

// canRecover reports whether a 401 for a request sent with token should go
// through Refresh. A token that has since been rotated or cleared by another
// caller counts too: Refresh then returns the new token or SessionExpired.
func (c *Client) canRecover(req domain.Request, token string) bool {
	if req.Anonymous {
		return false
	}
	if c.session.HasRefreshToken() {
		return true
	}
	return strings.TrimSpace(token) != "" && c.session.AccessToken() != token
}

// authorize replaces any caller supplied Authorization header with the
// bearer token, or drops it when no token is held or the request is
// anonymous.
func authorize(req domain.Request, token string) domain.Request {
	headers := make(map[string]string, len(req.Headers)+1)
	for key, value := range req.Headers {
		if !strings.EqualFold(key, authorizationHeader) {
			headers[key] = value
		}
	}
	if !req.Anonymous && strings.TrimSpace(token) != "" {
		headers[authorizationHeader] = "Bearer " + token
	}

	req.Headers = headers
	return req
}

func (c *Client) observe(req domain.Request, status int, started time.Time, err error) {
	outcome := outcomeOK
	if err != nil {
		outcome = string(domain.KindOf(err))
	}
	c.metrics.observeRequest(req.Method, outcome)

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", status).
		Str("outcome", outcome).
		Dur("elapsed", time.Since(started)).
		Msg("request completed")
}
