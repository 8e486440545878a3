package endpoints

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bnema/shopscript-cli/internal/domain"
	"github.com/bnema/shopscript-cli/internal/ports"
)

const cartPath = "/api/cart"

type Cart struct {
	requester ports.Requester
}

var _ ports.CartAPI = (*Cart)(nil)

func NewCart(requester ports.Requester) *Cart {
	return &Cart{requester: requester}
}

func (c *Cart) Get(ctx context.Context) (domain.Cart, error) {
	return c.cartCall(ctx, http.MethodGet, cartPath, nil)
}

func (c *Cart) AddItem(ctx context.Context, productID domain.ProductID, quantity int) (domain.Cart, error) {
	return c.cartCall(ctx, http.MethodPost, cartPath+"/items", map[string]any{
		"product_id": productID,
		"quantity":   quantity,
	})
}

func (c *Cart) UpdateItem(ctx context.Context, itemID string, quantity int) (domain.Cart, error) {
	return c.cartCall(ctx, http.MethodPut, itemPath(itemID), map[string]any{
		"quantity": quantity,
	})
}

func (c *Cart) RemoveItem(ctx context.Context, itemID string) (domain.Cart, error) {
	return c.cartCall(ctx, http.MethodDelete, itemPath(itemID), nil)
}

func (c *Cart) ApplyCoupon(ctx context.Context, code string) (domain.Cart, error) {
	return c.cartCall(ctx, http.MethodPost, cartPath+"/coupon", map[string]string{
		"code": code,
	})
}

func (c *Cart) RemoveCoupon(ctx context.Context) (domain.Cart, error) {
	return c.cartCall(ctx, http.MethodDelete, cartPath+"/coupon", nil)
}

func (c *Cart) Clear(ctx context.Context) error {
	_, err := c.requester.Do(ctx, domain.Request{
		Method: http.MethodDelete,
		Path:   cartPath,
	})
	return err
}

func (c *Cart) cartCall(ctx context.Context, method, path string, body any) (domain.Cart, error) {
	var cart domain.Cart
	err := c.requester.DoJSON(ctx, domain.Request{
		Method: method,
		Path:   path,
		Body:   body,
	}, &cart)
	return cart, err
}

func itemPath(itemID string) string {
	return cartPath + "/items/" + url.PathEscape(itemID)
}
