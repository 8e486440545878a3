package api

import (
	"context"
	"errors"
	"testing"
	"time"

	filestore "github.com/bnema/shopscript-cli/internal/adapters/secrets/file"
	"github.com/bnema/shopscript-cli/internal/domain"
	"github.com/bnema/shopscript-cli/internal/ports/mocks"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var sessionProfile = domain.Profile{Name: "shop", BaseURL: "https://shop.test"}

func newSessionForTest(t *testing.T) (*SessionManager, *filestore.Store) {
	t.Helper()

	store := filestore.NewStore(t.TempDir())
	transport := mocks.NewMockTransport(t)
	return NewSessionManager(store, transport, sessionProfile, zerolog.Nop(), nil), store
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "customer-7",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}).SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return token
}

func TestSessionStoreRestoreAndClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	session, store := newSessionForTest(t)

	require.NoError(t, session.Store(ctx, domain.Tokens{AccessToken: "A1", RefreshToken: "R1"}))
	assert.True(t, session.IsAuthenticated())
	assert.True(t, session.HasRefreshToken())
	assert.Equal(t, "https://shop.test", session.Snapshot().BaseURL)

	restored := NewSessionManager(store, mocks.NewMockTransport(t), sessionProfile, zerolog.Nop(), nil)
	assert.False(t, restored.IsAuthenticated())
	restored.Restore(ctx)
	assert.Equal(t, "A1", restored.AccessToken())
	assert.Equal(t, "R1", restored.Snapshot().RefreshToken)

	require.NoError(t, restored.Clear(ctx))
	assert.False(t, restored.IsAuthenticated())

	_, err := store.Get(ctx, sessionProfile.SecretKey(accessTokenKey))
	require.ErrorIs(t, err, domain.ErrSecretNotFound)

	// clearing an empty session is harmless
	require.NoError(t, restored.Clear(ctx))
}

func TestSessionStoreKeepsRefreshTokenWhenOmitted(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	session, _ := newSessionForTest(t)

	require.NoError(t, session.Store(ctx, domain.Tokens{AccessToken: "A1", RefreshToken: "R1"}))
	require.NoError(t, session.Store(ctx, domain.Tokens{AccessToken: "A2"}))

	snapshot := session.Snapshot()
	assert.Equal(t, "A2", snapshot.AccessToken)
	assert.Equal(t, "R1", snapshot.RefreshToken)
}

func TestSessionStoreRejectsEmptyAccessToken(t *testing.T) {
	t.Parallel()

	session, _ := newSessionForTest(t)
	require.Error(t, session.Store(context.Background(), domain.Tokens{RefreshToken: "R1"}))
	assert.False(t, session.HasRefreshToken())
}

func TestSessionStoreLeavesMemoryUntouchedWhenPersistFails(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockSecretStore(t)
	store.EXPECT().Put(mock.Anything, sessionProfile.SecretKey(accessTokenKey), "A1").Return(errors.New("disk full"))

	session := NewSessionManager(store, mocks.NewMockTransport(t), sessionProfile, zerolog.Nop(), nil)

	err := session.Store(context.Background(), domain.Tokens{AccessToken: "A1", RefreshToken: "R1"})
	require.ErrorContains(t, err, "disk full")
	assert.False(t, session.IsAuthenticated())
}

func TestSessionRestoreToleratesUnreadableStore(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockSecretStore(t)
	store.EXPECT().Get(mock.Anything, sessionProfile.SecretKey(accessTokenKey)).Return("", errors.New("gpg agent locked"))
	store.EXPECT().Get(mock.Anything, sessionProfile.SecretKey(refreshTokenKey)).Return("R1", nil)

	session := NewSessionManager(store, mocks.NewMockTransport(t), sessionProfile, zerolog.Nop(), nil)
	session.Restore(context.Background())

	assert.False(t, session.IsAuthenticated())
	assert.True(t, session.HasRefreshToken())
}

func TestSessionRefreshSkipsNetworkWhenTokenAlreadyRotated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	session, _ := newSessionForTest(t)
	require.NoError(t, session.Store(ctx, domain.Tokens{AccessToken: "A2", RefreshToken: "R2"}))

	token, err := session.Refresh(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, "A2", token)
}

func TestSessionRefreshWithoutRefreshTokenExpires(t *testing.T) {
	t.Parallel()

	session, _ := newSessionForTest(t)

	_, err := session.Refresh(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestSessionRefreshRejectsResponseWithoutAccessToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := filestore.NewStore(t.TempDir())
	transport := mocks.NewMockTransport(t)
	transport.EXPECT().Do(mock.Anything, mock.MatchedBy(func(req domain.Request) bool {
		return req.Path == refreshPath
	})).Return(domain.Response{StatusCode: 200, Body: []byte(`{"refresh_token":"R2"}`)}, nil).Once()

	session := NewSessionManager(store, transport, sessionProfile, zerolog.Nop(), nil)
	require.NoError(t, session.Store(ctx, domain.Tokens{AccessToken: "A1", RefreshToken: "R1"}))

	_, err := session.Refresh(ctx, "A1")
	require.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.False(t, session.IsAuthenticated())
}

func TestSessionStatusFollowsTokenExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	expiresAt := clock.Now().Add(15 * time.Minute)

	session, _ := newSessionForTest(t)
	require.NoError(t, session.Store(ctx, domain.Tokens{AccessToken: signedToken(t, expiresAt), RefreshToken: "R1"}))

	status := session.Status(clock.Now())
	assert.True(t, status.Authenticated)
	assert.True(t, status.HasRefreshToken)
	assert.True(t, status.ExpiresAt.Equal(expiresAt))
	assert.False(t, status.Expired)

	clock.Advance(15 * time.Minute)
	assert.True(t, session.Status(clock.Now()).Expired)
}

func TestSessionStatusWithOpaqueToken(t *testing.T) {
	t.Parallel()

	session, _ := newSessionForTest(t)
	require.NoError(t, session.Store(context.Background(), domain.Tokens{AccessToken: "opaque"}))

	status := session.Status(time.Now())
	assert.True(t, status.Authenticated)
	assert.False(t, status.HasRefreshToken)
	assert.True(t, status.ExpiresAt.IsZero())
	assert.False(t, status.Expired)
}

func TestTokenExpiry(t *testing.T) {
	t.Parallel()

	expiresAt := time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

	got, ok := TokenExpiry(signedToken(t, expiresAt))
	require.True(t, ok)
	assert.True(t, got.Equal(expiresAt))

	_, ok = TokenExpiry("")
	assert.False(t, ok)
	_, ok = TokenExpiry("not.a.jwt")
	assert.False(t, ok)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "x"}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, ok = TokenExpiry(noExp)
	assert.False(t, ok)
}

func TestSessionStoreRejectsBlankAccessToken(t *testing.T) {
	t.Parallel()

	session, store := newSessionForTest(t)
	require.Error(t, session.Store(context.Background(), domain.Tokens{AccessToken: "   ", RefreshToken: "R1"}))
	assert.False(t, session.IsAuthenticated())

	_, err := store.Get(context.Background(), sessionProfile.SecretKey(accessTokenKey))
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestSessionOnChangeReportsEveryTransition(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	session, _ := newSessionForTest(t)

	var seen []bool
	session.OnChange(func(s domain.Session) {
		seen = append(seen, s.IsAuthenticated())
	})

	require.NoError(t, session.Store(ctx, domain.Tokens{AccessToken: "A1", RefreshToken: "R1"}))
	require.NoError(t, session.Clear(ctx))
	session.Restore(ctx)

	assert.Equal(t, []bool{true, false, false}, seen)
}

func TestSessionOnChangeReportsClearAfterFailedRefresh(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	transport := mocks.NewMockTransport(t)
	transport.EXPECT().Do(mock.Anything, mock.Anything).
		Return(domain.Response{StatusCode: 401, Body: []byte(`{"message":"refresh token revoked"}`)}, nil).Once()

	session := NewSessionManager(filestore.NewStore(t.TempDir()), transport, sessionProfile, zerolog.Nop(), nil)
	require.NoError(t, session.Store(ctx, domain.Tokens{AccessToken: "A1", RefreshToken: "R1"}))

	var last domain.Session
	session.OnChange(func(s domain.Session) { last = s })

	_, err := session.Refresh(ctx, "A1")
	require.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.False(t, last.IsAuthenticated())
	assert.False(t, last.HasRefreshToken())
}
