package domain

type ProductID int64

type CartItem struct {
	ID        string    `json:"id"`
	ProductID ProductID `json:"product_id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku,omitempty"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Total     float64   `json:"total"`
}

// Cart is always the server's authoritative snapshot; totals are never
// recomputed client side.
type Cart struct {
	ID         string     `json:"id"`
	Items      []CartItem `json:"items"`
	Subtotal   float64    `json:"subtotal"`
	Discount   float64    `json:"discount"`
	Total      float64    `json:"total"`
	ItemCount  int        `json:"item_count"`
	CouponCode string     `json:"coupon_code,omitempty"`
	Currency   string     `json:"currency,omitempty"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) FindProduct(id ProductID) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ProductID == id {
			return item, true
		}
	}
	return CartItem{}, false
}
