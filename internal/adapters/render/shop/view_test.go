package shop

import (
	"testing"
	"time"

	"github.com/bnema/shopscript-cli/internal/api"
	"github.com/bnema/shopscript-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCartWithCoupon(t *testing.T) {
	output, err := RenderCart(&domain.Cart{
		Items: []domain.CartItem{
			{ID: "i-1", ProductID: 123, Name: "Espresso Beans", Quantity: 2, Price: 9.5, Total: 19},
		},
		Subtotal:   19,
		Discount:   1.9,
		Total:      17.1,
		ItemCount:  2,
		CouponCode: "SAVE10",
		Currency:   "EUR",
	})

	require.NoError(t, err)
	assert.Contains(t, output, "items: 2")
	assert.Contains(t, output, "Espresso Beans")
	assert.Contains(t, output, "x2")
	assert.Contains(t, output, "19.00 EUR")
	assert.Contains(t, output, "coupon SAVE10")
	assert.Contains(t, output, "total: 17.10 EUR")
}

func TestRenderEmptyCart(t *testing.T) {
	for _, cart := range []*domain.Cart{nil, {}} {
		output, err := RenderCart(cart)
		require.NoError(t, err)
		assert.Contains(t, output, "Your cart is empty.")
	}
}

func TestRenderSessionStates(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	output, err := RenderSession("dev", api.SessionStatus{}, now)
	require.NoError(t, err)
	assert.Contains(t, output, "profile: dev")
	assert.Contains(t, output, "Not signed in.")

	output, err = RenderSession("dev", api.SessionStatus{
		Authenticated:   true,
		HasRefreshToken: true,
		ExpiresAt:       now.Add(14*time.Minute + 30*time.Second),
	}, now)
	require.NoError(t, err)
	assert.Contains(t, output, "expires in 15 minutes")
	assert.Contains(t, output, "refresh token: present")

	output, err = RenderSession("dev", api.SessionStatus{
		Authenticated: true,
		ExpiresAt:     now.Add(-2 * time.Hour),
		Expired:       true,
	}, now)
	require.NoError(t, err)
	assert.Contains(t, output, "expired 2 hours ago")
	assert.Contains(t, output, "refresh token: missing")
}

func TestRenderProductsPaging(t *testing.T) {
	output, err := RenderProducts(domain.ProductPage{
		Products: []domain.Product{
			{ID: 1, Name: "Mug", Price: 12, Currency: "EUR", InStock: true},
			{ID: 2, Name: "Grinder", Price: 89.9, Currency: "EUR"},
		},
		Page:    2,
		PerPage: 2,
		Total:   5,
	})

	require.NoError(t, err)
	assert.Contains(t, output, "page 2 of 3 (5 products)")
	assert.Contains(t, output, "#1 Mug 12.00 EUR")
	assert.Contains(t, output, "[out of stock]")
}

func TestRenderProfilesMarksActive(t *testing.T) {
	output, err := RenderProfiles([]domain.Profile{
		{Name: "prod", BaseURL: "https://shop.test"},
		{Name: "dev", BaseURL: "http://localhost:8080"},
	}, "prod")

	require.NoError(t, err)
	assert.Contains(t, output, "* prod")
	assert.Contains(t, output, "  dev")
}

func TestRenderErrorCopy(t *testing.T) {
	output, err := RenderError(&domain.APIError{Kind: domain.KindRateLimited, RetryAfterSeconds: 30})
	require.NoError(t, err)
	assert.Contains(t, output, "Too many requests.")
	assert.Contains(t, output, "try again in 30 seconds")

	output, err = RenderError(&domain.APIError{
		Kind:        domain.KindValidation,
		Message:     "The given data was invalid.",
		FieldErrors: map[string][]string{"email": {"is required"}, "password": {"too short", "needs a digit"}},
	})
	require.NoError(t, err)
	assert.Contains(t, output, "The given data was invalid.")
	assert.Contains(t, output, "email: is required")
	assert.Contains(t, output, "password: too short, needs a digit")

	output, err = RenderError(domain.ErrNotFound.WithResource("product"))
	require.NoError(t, err)
	assert.Contains(t, output, "Product not found.")
}

func TestRenderCheckoutAwaitingPayment(t *testing.T) {
	output, err := RenderCheckout(domain.CheckoutResult{
		Order:      domain.Order{ID: 42, Number: "SS-1042", Total: 31.5, Currency: "EUR"},
		PaymentURL: "https://pay.test/abc",
	})

	require.NoError(t, err)
	assert.Contains(t, output, "Order SS-1042")
	assert.Contains(t, output, "awaiting payment")
	assert.Contains(t, output, "pay at: https://pay.test/abc")
}
