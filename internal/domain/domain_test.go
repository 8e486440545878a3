package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorMatchesKindSentinels(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("load cart: %w", &APIError{Kind: KindNetwork, Message: "unable to reach the server", Err: cause})

	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrServer)
	assert.Equal(t, KindNetwork, KindOf(err))
	assert.Equal(t, KindUnknown, KindOf(cause))
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{Kind: KindNotFound, HTTPStatus: http.StatusNotFound, Message: "no such product"}
	assert.Equal(t, "not_found: status 404: no such product", err.Error())

	specialised := err.WithResource("product")
	assert.Equal(t, "not_found (product): status 404: no such product", specialised.Error())
	assert.Empty(t, err.Resource)
}

func TestAsAPIError(t *testing.T) {
	assert.Nil(t, AsAPIError(nil))

	original := &APIError{Kind: KindServer}
	assert.Same(t, original, AsAPIError(fmt.Errorf("wrapped: %w", original)))

	foreign := AsAPIError(errors.New("boom"))
	assert.Equal(t, KindUnknown, foreign.Kind)
	assert.Equal(t, "boom", foreign.Message)
}

func TestIsAuthFailure(t *testing.T) {
	assert.True(t, IsAuthFailure(&APIError{Kind: KindAuthentication}))
	assert.True(t, IsAuthFailure(fmt.Errorf("x: %w", &APIError{Kind: KindSessionExpired})))
	assert.False(t, IsAuthFailure(&APIError{Kind: KindServer}))
	assert.False(t, IsAuthFailure(errors.New("plain")))
}

func TestProfileValidate(t *testing.T) {
	testCases := []struct {
		name    string
		profile Profile
		wantErr string
	}{
		{name: "valid", profile: Profile{Name: "prod", BaseURL: "https://shop.example.com/store"}},
		{name: "missing name", profile: Profile{BaseURL: "https://shop.test"}, wantErr: "name is required"},
		{name: "path in name", profile: Profile{Name: "../x", BaseURL: "https://shop.test"}, wantErr: "invalid profile name"},
		{name: "missing url", profile: Profile{Name: "p"}, wantErr: "base url is required"},
		{name: "bad scheme", profile: Profile{Name: "p", BaseURL: "ftp://shop.test"}, wantErr: "http or https"},
		{name: "no host", profile: Profile{Name: "p", BaseURL: "http:///api"}, wantErr: "host is required"},
		{name: "negative timeout", profile: Profile{Name: "p", BaseURL: "http://shop.test", ReceiveTimeout: -time.Second}, wantErr: "negative"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.profile.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestProfileDefaultsAndSecretKey(t *testing.T) {
	profile := Profile{Name: "staging", ConnectTimeout: 5 * time.Second}.WithDefaults()

	assert.Equal(t, 5*time.Second, profile.ConnectTimeout)
	assert.Equal(t, DefaultTimeout, profile.ReceiveTimeout)
	assert.Equal(t, "shopscript/staging/access_token", profile.SecretKey("access_token"))
}

func TestSessionFlags(t *testing.T) {
	assert.False(t, Session{AccessToken: "  "}.IsAuthenticated())
	assert.True(t, Session{AccessToken: "A1"}.IsAuthenticated())
	assert.False(t, Session{AccessToken: "A1"}.HasRefreshToken())
	assert.True(t, Session{RefreshToken: "R1"}.HasRefreshToken())
}

func TestCartHelpers(t *testing.T) {
	cart := Cart{Items: []CartItem{{ID: "i1", ProductID: 123, Quantity: 2}}}

	assert.False(t, cart.IsEmpty())
	item, ok := cart.FindProduct(123)
	require.True(t, ok)
	assert.Equal(t, "i1", item.ID)

	_, ok = cart.FindProduct(7)
	assert.False(t, ok)
	assert.True(t, Cart{}.IsEmpty())
}

func TestCustomerDisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Customer{FirstName: "Ada", LastName: "Lovelace", Email: "a@b.c"}.DisplayName())
	assert.Equal(t, "Ada", Customer{FirstName: "Ada", Email: "a@b.c"}.DisplayName())
	assert.Equal(t, "a@b.c", Customer{Email: "a@b.c"}.DisplayName())
}

func TestResponseDecodeJSON(t *testing.T) {
	var out struct {
		ID int `json:"id"`
	}

	require.NoError(t, Response{StatusCode: 200, Body: []byte(`{"id":4}`)}.DecodeJSON(&out))
	assert.Equal(t, 4, out.ID)

	require.NoError(t, Response{StatusCode: 204}.DecodeJSON(&out))
	require.ErrorContains(t, Response{Body: []byte(`{`)}.DecodeJSON(&out), "decode response body")

	assert.True(t, Response{StatusCode: 201}.OK())
	assert.False(t, Response{StatusCode: 302}.OK())
}
