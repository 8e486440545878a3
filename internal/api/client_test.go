package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/shopscript-cli/internal/adapters/httptransport"
	filestore "github.com/bnema/shopscript-cli/internal/adapters/secrets/file"
	"github.com/bnema/shopscript-cli/internal/domain"
	"github.com/bnema/shopscript-cli/internal/ports/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// tokenBackend accepts exactly one access token at a time and rotates it on
// every refresh.
type tokenBackend struct {
	mu         sync.Mutex
	valid      string
	lastAuth   string
	lastHeader string

	refreshes atomic.Int32
	calls     atomic.Int32

	refreshStatus  int
	alwaysReject   bool
	refreshStarted chan struct{}
	refreshGate    chan struct{}
	startOnce      sync.Once

	// rejectBarrier holds every 401 until the expected number of requests
	// has arrived.
	rejectBarrier *sync.WaitGroup
}

func (b *tokenBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == refreshPath {
		b.serveRefresh(w, r)
		return
	}

	b.calls.Add(1)

	b.mu.Lock()
	b.lastAuth = r.Header.Get("Authorization")
	b.lastHeader = r.Header.Get("X-Trace")
	valid := b.valid
	b.mu.Unlock()

	switch r.URL.Path {
	case "/api/busy":
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		return
	case "/api/public":
		writeJSON(w, http.StatusOK, map[string]string{"status": "public"})
		return
	}

	if b.alwaysReject || r.Header.Get("Authorization") != "Bearer "+valid {
		if b.rejectBarrier != nil {
			b.rejectBarrier.Done()
			b.rejectBarrier.Wait()
		}
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "token rejected"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (b *tokenBackend) serveRefresh(w http.ResponseWriter, r *http.Request) {
	n := b.refreshes.Add(1)

	if b.refreshStarted != nil {
		b.startOnce.Do(func() { close(b.refreshStarted) })
	}
	if b.refreshGate != nil {
		<-b.refreshGate
	} else {
		time.Sleep(20 * time.Millisecond)
	}

	if b.refreshStatus != 0 {
		writeJSON(w, b.refreshStatus, map[string]string{"message": "refresh rejected"})
		return
	}

	var body map[string]string
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body["refresh_token"] == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "missing refresh token"})
		return
	}

	access := fmt.Sprintf("access-%d", n)
	b.mu.Lock()
	b.valid = access
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, domain.Tokens{AccessToken: access, RefreshToken: fmt.Sprintf("refresh-%d", n)})
}

func (b *tokenBackend) seen() (string, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastAuth, b.lastHeader
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type pipelineFixture struct {
	client  *Client
	store   *filestore.Store
	metrics *Metrics
	profile domain.Profile
}

func newPipeline(t *testing.T, baseURL string) pipelineFixture {
	t.Helper()

	profile := domain.Profile{Name: "test", BaseURL: baseURL}
	transport, err := httptransport.New(profile, nil, zerolog.Nop())
	require.NoError(t, err)

	store := filestore.NewStore(t.TempDir())
	metrics := NewMetrics(prometheus.NewRegistry())

	client, err := New(Config{
		Profile:   profile,
		Transport: transport,
		Store:     store,
		Logger:    zerolog.Nop(),
		Metrics:   metrics,
	})
	require.NoError(t, err)

	return pipelineFixture{client: client, store: store, metrics: metrics, profile: profile}
}

func startBackend(t *testing.T, backend *tokenBackend) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewRejectsIncompleteConfig(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Profile: domain.Profile{Name: "x", BaseURL: "ftp://shop"}})
	require.Error(t, err)

	_, err = New(Config{Profile: domain.Profile{Name: "x", BaseURL: "https://shop.test"}})
	require.ErrorContains(t, err, "transport")
}

func TestClientAttachesBearerTokenAndStripsCallerAuthorization(t *testing.T) {
	t.Parallel()

	backend := &tokenBackend{valid: "A1"}
	srv := startBackend(t, backend)
	fx := newPipeline(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, fx.client.Session().Store(ctx, domain.Tokens{AccessToken: "A1", RefreshToken: "R1"}))

	var out map[string]string
	err := fx.client.DoJSON(ctx, domain.Request{
		Method:  http.MethodGet,
		Path:    "/api/me",
		Headers: map[string]string{"authorization": "Basic c2VjcmV0", "X-Trace": "abc"},
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out["status"])

	auth, trace := backend.seen()
	assert.Equal(t, "Bearer A1", auth)
	assert.Equal(t, "abc", trace)
	assert.Equal(t, 1.0, testutil.ToFloat64(fx.metrics.requests.WithLabelValues(http.MethodGet, outcomeOK)))
}

func TestClientSendsNoAuthorizationWithoutSession(t *testing.T) {
	t.Parallel()

	backend := &tokenBackend{}
	srv := startBackend(t, backend)
	fx := newPipeline(t, srv.URL)

	_, err := fx.client.Do(context.Background(), domain.Request{
		Path:    "/api/public",
		Headers: map[string]string{"Authorization": "Bearer forged"},
	})
	require.NoError(t, err)

	auth, _ := backend.seen()
	assert.Empty(t, auth)
}

func TestClientRefreshesTransparentlyOnUnauthorized(t *testing.T) {
	t.Parallel()

	backend := &tokenBackend{valid: "not-yet-issued"}
	srv := startBackend(t, backend)
	fx := newPipeline(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, fx.client.Session().Store(ctx, domain.Tokens{AccessToken: "stale", RefreshToken: "R0"}))

	resp, err := fx.client.Do(ctx, domain.Request{Path: "/api/cart"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.EqualValues(t, 1, backend.refreshes.Load())
	assert.EqualValues(t, 2, backend.calls.Load())
	assert.Equal(t, "access-1", fx.client.Session().AccessToken())

	persisted, err := fx.store.Get(ctx, fx.profile.SecretKey(accessTokenKey))
	require.NoError(t, err)
	assert.Equal(t, "access-1", persisted)
	persisted, err = fx.store.Get(ctx, fx.profile.SecretKey(refreshTokenKey))
	require.NoError(t, err)
	assert.Equal(t, "refresh-1", persisted)

	assert.Equal(t, 1.0, testutil.ToFloat64(fx.metrics.refreshes.WithLabelValues("success")))
}

func TestClientConcurrentUnauthorizedShareOneRefresh(t *testing.T) {
	t.Parallel()

	backend := &tokenBackend{valid: "not-yet-issued"}
	srv := startBackend(t, backend)
	fx := newPipeline(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, fx.client.Session().Store(ctx, domain.Tokens{AccessToken: "stale", RefreshToken: "R0"}))

	const callers = 10
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = fx.client.Do(ctx, domain.Request{Path: "/api/orders"})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "caller %d", i)
	}
	assert.EqualValues(t, 1, backend.refreshes.Load())
	assert.Equal(t, "access-1", fx.client.Session().AccessToken())
}

func TestClientReplaysAtMostOnce(t *testing.T) {
	t.Parallel()

	backend := &tokenBackend{alwaysReject: true}
	srv := startBackend(t, backend)
	fx := newPipeline(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, fx.client.Session().Store(ctx, domain.Tokens{AccessToken: "stale", RefreshToken: "R0"}))

	_, err := fx.client.Do(ctx, domain.Request{Path: "/api/cart"})
	require.ErrorIs(t, err, domain.ErrAuthentication)

	assert.EqualValues(t, 1, backend.refreshes.Load())
	assert.EqualValues(t, 2, backend.calls.Load())
	assert.True(t, fx.client.Session().IsAuthenticated())
}

func TestClientWithoutRefreshTokenReportsAuthentication(t *testing.T) {
	t.Parallel()

	backend := &tokenBackend{valid: "other"}
	srv := startBackend(t, backend)
	fx := newPipeline(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, fx.client.Session().Store(ctx, domain.Tokens{AccessToken: "stale"}))

	_, err := fx.client.Do(ctx, domain.Request{Path: "/api/cart"})
	require.ErrorIs(t, err, domain.ErrAuthentication)
	assert.Equal(t, "token rejected", domain.AsAPIError(err).Message)
	assert.Zero(t, backend.refreshes.Load())
}

func TestClientRefreshFailureClearsSession(t *testing.T) {
	t.Parallel()

	backend := &tokenBackend{valid: "not-yet-issued", refreshStatus: http.StatusUnauthorized}
	srv := startBackend(t, backend)
	fx := newPipeline(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, fx.client.Session().Store(ctx, domain.Tokens{AccessToken: "stale", RefreshToken: "R0"}))

	_, err := fx.client.Do(ctx, domain.Request{Path: "/api/cart"})
	require.ErrorIs(t, err, domain.ErrSessionExpired)

	session := fx.client.Session()
	assert.False(t, session.IsAuthenticated())
	assert.False(t, session.HasRefreshToken())

	_, err = fx.store.Get(ctx, fx.profile.SecretKey(accessTokenKey))
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
	_, err = fx.store.Get(ctx, fx.profile.SecretKey(refreshTokenKey))
	require.ErrorIs(t, err, domain.ErrSecretNotFound)

	assert.Equal(t, 1.0, testutil.ToFloat64(fx.metrics.refreshes.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(fx.metrics.requests.WithLabelValues(http.MethodGet, string(domain.KindSessionExpired))))
}

func TestClientUnauthorizedAfterConcurrentClearReportsSessionExpired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	transport := mocks.NewMockTransport(t)
	client, err := New(Config{
		Profile:   domain.Profile{Name: "test", BaseURL: "https://shop.test"},
		Transport: transport,
		Store:     filestore.NewStore(t.TempDir()),
		Logger:    zerolog.Nop(),
	})
	require.NoError(t, err)
	require.NoError(t, client.Session().Store(ctx, domain.Tokens{AccessToken: "stale", RefreshToken: "R0"}))

	// Another caller's refresh fails and clears the session while this
	// request is still waiting for its own 401.
	transport.EXPECT().Do(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, req domain.Request) (domain.Response, error) {
			assert.Equal(t, "Bearer stale", req.Headers[authorizationHeader])
			require.NoError(t, client.Session().Clear(ctx))
			return domain.Response{StatusCode: http.StatusUnauthorized}, nil
		}).Once()

	_, err = client.Do(ctx, domain.Request{Path: "/api/orders"})
	require.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.False(t, client.Session().IsAuthenticated())
}

func TestClientConcurrentUnauthorizedAllExpireWhenRefreshFails(t *testing.T) {
	t.Parallel()

	const callers = 8

	barrier := &sync.WaitGroup{}
	barrier.Add(callers)
	backend := &tokenBackend{valid: "not-yet-issued", refreshStatus: http.StatusUnauthorized, rejectBarrier: barrier}
	srv := startBackend(t, backend)
	fx := newPipeline(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, fx.client.Session().Store(ctx, domain.Tokens{AccessToken: "stale", RefreshToken: "R0"}))

	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = fx.client.Do(ctx, domain.Request{Path: "/api/cart"})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.ErrorIs(t, err, domain.ErrSessionExpired, "caller %d", i)
	}
	assert.EqualValues(t, 1, backend.refreshes.Load())
}

func TestClientAnonymousRequestKeepsSessionOnUnauthorized(t *testing.T) {
	t.Parallel()

	backend := &tokenBackend{valid: "old"}
	srv := startBackend(t, backend)
	fx := newPipeline(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, fx.client.Session().Store(ctx, domain.Tokens{AccessToken: "old", RefreshToken: "R"}))

	_, err := fx.client.Do(ctx, domain.Request{
		Method:    http.MethodPost,
		Path:      "/api/auth/login",
		Body:      domain.Credentials{Email: "a@b.c", Password: "wrong"},
		Anonymous: true,
	})
	require.ErrorIs(t, err, domain.ErrAuthentication)

	auth, _ := backend.seen()
	assert.Empty(t, auth)
	assert.Zero(t, backend.refreshes.Load())

	session := fx.client.Session().Snapshot()
	assert.Equal(t, "old", session.AccessToken)
	assert.Equal(t, "R", session.RefreshToken)

	stored, err := fx.store.Get(ctx, fx.profile.SecretKey(accessTokenKey))
	require.NoError(t, err)
	assert.Equal(t, "old", stored)
}

func TestAuthorizeSkipsBlankToken(t *testing.T) {
	t.Parallel()

	req := authorize(domain.Request{Path: "/api/cart", Headers: map[string]string{"X-Trace": "1"}}, "   ")
	assert.Equal(t, map[string]string{"X-Trace": "1"}, req.Headers)

	req = authorize(domain.Request{Path: "/api/cart"}, "A1")
	assert.Equal(t, "Bearer A1", req.Headers[authorizationHeader])
}

func TestClientCallerCancellationDoesNotCancelSharedRefresh(t *testing.T) {
	t.Parallel()

	backend := &tokenBackend{
		valid:          "not-yet-issued",
		refreshStarted: make(chan struct{}),
		refreshGate:    make(chan struct{}),
	}
	srv := startBackend(t, backend)
	fx := newPipeline(t, srv.URL)

	require.NoError(t, fx.client.Session().Store(context.Background(), domain.Tokens{AccessToken: "stale", RefreshToken: "R0"}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := fx.client.Do(ctx, domain.Request{Path: "/api/cart"})
		done <- err
	}()

	select {
	case <-backend.refreshStarted:
	case <-time.After(5 * time.Second):
		t.Fatal("refresh never started")
	}
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled caller still waiting")
	}

	close(backend.refreshGate)

	require.Eventually(t, func() bool {
		return fx.client.Session().AccessToken() == "access-1"
	}, 5*time.Second, 10*time.Millisecond)
	assert.Zero(t, testutil.ToFloat64(fx.metrics.requests.WithLabelValues(http.MethodGet, string(domain.KindUnknown))))
}

func TestClientTranslatesRateLimit(t *testing.T) {
	t.Parallel()

	srv := startBackend(t, &tokenBackend{})
	fx := newPipeline(t, srv.URL)

	_, err := fx.client.Do(context.Background(), domain.Request{Path: "/api/busy"})
	require.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Equal(t, 30, domain.AsAPIError(err).RetryAfterSeconds)
	assert.Equal(t, 1.0, testutil.ToFloat64(fx.metrics.requests.WithLabelValues(http.MethodGet, string(domain.KindRateLimited))))
}

func TestClientReportsUnreachableServerAsNetwork(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	fx := newPipeline(t, baseURL)

	_, err := fx.client.Do(context.Background(), domain.Request{Path: "/api/products"})
	require.ErrorIs(t, err, domain.ErrNetwork)
	assert.ErrorIs(t, err, domain.ErrNoResponse)
	assert.Zero(t, domain.AsAPIError(err).HTTPStatus)
}

func TestClientReturnsContextErrorWhenCancelledBeforeSend(t *testing.T) {
	t.Parallel()

	backend := &tokenBackend{}
	srv := startBackend(t, backend)
	fx := newPipeline(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fx.client.Do(ctx, domain.Request{Path: "/api/public"})
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrNetwork)
}
