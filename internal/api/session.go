package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bnema/shopscript-cli/internal/domain"
	"github.com/bnema/shopscript-cli/internal/ports"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
	refreshPath     = "/api/auth/refresh"
	refreshFlight   = "refresh"
)

// SessionManager owns the token pair of one profile. It is safe for
// concurrent use; at most one network refresh runs at a time.
type SessionManager struct {
	store          ports.SecretStore
	transport      ports.Transport
	accessKey      string
	refreshKey     string
	refreshTimeout time.Duration
	logger         zerolog.Logger
	metrics        *Metrics

	mu        sync.RWMutex
	session   domain.Session
	listeners []func(domain.Session)

	flight singleflight.Group
}

var (
	_ ports.Session         = (*SessionManager)(nil)
	_ ports.SessionNotifier = (*SessionManager)(nil)
)

func NewSessionManager(store ports.SecretStore, transport ports.Transport, profile domain.Profile, logger zerolog.Logger, metrics *Metrics) *SessionManager {
	profile = profile.WithDefaults()

	return &SessionManager{
		store:          store,
		transport:      transport,
		accessKey:      profile.SecretKey(accessTokenKey),
		refreshKey:     profile.SecretKey(refreshTokenKey),
		refreshTimeout: profile.ConnectTimeout + profile.ReceiveTimeout,
		logger:         logger.With().Str("component", "session").Str("profile", profile.Name).Logger(),
		metrics:        metrics,
		session:        domain.Session{BaseURL: profile.BaseURL},
	}
}

// Restore loads persisted tokens into memory. Missing or unreadable tokens
// leave the session empty.
func (m *SessionManager) Restore(ctx context.Context) {
	access := m.readToken(ctx, m.accessKey)
	refresh := m.readToken(ctx, m.refreshKey)

	m.mu.Lock()
	m.session.AccessToken = access
	m.session.RefreshToken = refresh
	m.mu.Unlock()

	m.notify()
}

// OnChange registers fn to receive the session after every restore, store,
// refresh and clear. fn runs on the goroutine that changed the session and
// must not call back into the manager's mutating methods.
func (m *SessionManager) OnChange(fn func(domain.Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listeners = append(m.listeners, fn)
}

// Store persists tokens and then makes them current. An empty refresh token
// keeps the one already held.
func (m *SessionManager) Store(ctx context.Context, tokens domain.Tokens) error {
	if strings.TrimSpace(tokens.AccessToken) == "" {
		return errors.New("access token is empty")
	}
	if err := m.persist(ctx, tokens); err != nil {
		return err
	}

	m.setTokens(tokens)
	return nil
}

func (m *SessionManager) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.session.AccessToken = ""
	m.session.RefreshToken = ""
	m.mu.Unlock()

	m.notify()

	var errs error
	if err := m.store.Delete(ctx, m.accessKey); err != nil {
		errs = errors.Join(errs, fmt.Errorf("delete access token: %w", err))
	}
	if err := m.store.Delete(ctx, m.refreshKey); err != nil {
		errs = errors.Join(errs, fmt.Errorf("delete refresh token: %w", err))
	}

	return errs
}

func (m *SessionManager) Snapshot() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.session
}

func (m *SessionManager) IsAuthenticated() bool {
	return m.Snapshot().IsAuthenticated()
}

func (m *SessionManager) HasRefreshToken() bool {
	return m.Snapshot().HasRefreshToken()
}

func (m *SessionManager) AccessToken() string {
	return m.Snapshot().AccessToken
}

// Refresh exchanges the refresh token for a new access token. staleToken is
// the access token the caller was rejected with; if it has already been
// replaced the current token is returned without a network call.
//
// Concurrent callers share one in-flight refresh. The refresh is detached
// from ctx: a caller that gives up stops waiting but does not cancel it.
func (m *SessionManager) Refresh(ctx context.Context, staleToken string) (string, error) {
	current := m.Snapshot()
	if current.IsAuthenticated() && current.AccessToken != staleToken {
		return current.AccessToken, nil
	}
	if !current.HasRefreshToken() {
		return "", sessionExpired(0, errors.New("no refresh token"))
	}

	results := m.flight.DoChan(refreshFlight, func() (any, error) {
		return m.refresh(context.WithoutCancel(ctx), staleToken)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case result := <-results:
		if result.Err != nil {
			return "", result.Err
		}
		return result.Val.(string), nil
	}
}

func (m *SessionManager) refresh(ctx context.Context, staleToken string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.refreshTimeout)
	defer cancel()

	current := m.Snapshot()
	if current.IsAuthenticated() && current.AccessToken != staleToken {
		return current.AccessToken, nil
	}
	if !current.HasRefreshToken() {
		return "", sessionExpired(0, errors.New("no refresh token"))
	}

	m.logger.Debug().Msg("refreshing access token")

	resp, err := m.transport.Do(ctx, domain.Request{
		Method: http.MethodPost,
		Path:   refreshPath,
		Body:   map[string]string{"refresh_token": current.RefreshToken},
	})
	if err != nil {
		return "", m.fail(ctx, 0, fmt.Errorf("refresh request: %w", err))
	}
	if !resp.OK() {
		return "", m.fail(ctx, resp.StatusCode, Translate(resp, nil))
	}

	var tokens domain.Tokens
	if err := resp.DecodeJSON(&tokens); err != nil {
		return "", m.fail(ctx, resp.StatusCode, err)
	}
	if strings.TrimSpace(tokens.AccessToken) == "" {
		return "", m.fail(ctx, resp.StatusCode, errors.New("refresh response missing access token"))
	}

	m.setTokens(tokens)
	if err := m.persist(ctx, tokens); err != nil {
		m.logger.Warn().Err(err).Msg("refreshed tokens kept in memory only")
	}

	m.metrics.observeRefresh("success")
	m.logger.Debug().Msg("access token refreshed")

	return tokens.AccessToken, nil
}

func (m *SessionManager) fail(ctx context.Context, status int, cause error) error {
	m.metrics.observeRefresh("failure")
	m.logger.Info().Err(cause).Msg("token refresh failed, clearing session")

	if err := m.Clear(ctx); err != nil {
		m.logger.Warn().Err(err).Msg("clear session after failed refresh")
	}

	return sessionExpired(status, cause)
}

func (m *SessionManager) setTokens(tokens domain.Tokens) {
	m.mu.Lock()
	m.session.AccessToken = tokens.AccessToken
	if tokens.RefreshToken != "" {
		m.session.RefreshToken = tokens.RefreshToken
	}
	m.mu.Unlock()

	m.notify()
}

func (m *SessionManager) notify() {
	m.mu.RLock()
	session := m.session
	listeners := append(([]func(domain.Session))(nil), m.listeners...)
	m.mu.RUnlock()

	for _, fn := range listeners {
		fn(session)
	}
}

func (m *SessionManager) persist(ctx context.Context, tokens domain.Tokens) error {
	if err := m.store.Put(ctx, m.accessKey, tokens.AccessToken); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}
	if tokens.RefreshToken == "" {
		return nil
	}
	if err := m.store.Put(ctx, m.refreshKey, tokens.RefreshToken); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

func (m *SessionManager) readToken(ctx context.Context, key string) string {
	value, err := m.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrSecretNotFound) {
			m.logger.Warn().Err(err).Str("key", key).Msg("read stored token")
		}
		return ""
	}
	return value
}

func sessionExpired(status int, cause error) *domain.APIError {
	return &domain.APIError{
		Kind:       domain.KindSessionExpired,
		Message:    genericMessages[domain.KindSessionExpired],
		HTTPStatus: status,
		Err:        cause,
	}
}

type SessionStatus struct {
	Authenticated   bool
	HasRefreshToken bool
	ExpiresAt       time.Time
	Expired         bool
}

// Status describes the held session as of now. ExpiresAt is zero when the
// access token is not a JWT carrying an exp claim.
func (m *SessionManager) Status(now time.Time) SessionStatus {
	session := m.Snapshot()
	status := SessionStatus{
		Authenticated:   session.IsAuthenticated(),
		HasRefreshToken: session.HasRefreshToken(),
	}

	if expiresAt, ok := TokenExpiry(session.AccessToken); ok {
		status.ExpiresAt = expiresAt
		status.Expired = !now.Before(expiresAt)
	}

	return status
}

// TokenExpiry reads the exp claim of a JWT without verifying its signature;
// the backend remains the authority on validity.
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}

	return claims.ExpiresAt.Time, true
}
