package domain

import "time"

type Product struct {
	ID          ProductID `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku,omitempty"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency,omitempty"`
	InStock     bool      `json:"in_stock"`
}

type ProductPage struct {
	Products []Product `json:"products"`
	Page     int       `json:"page"`
	PerPage  int       `json:"per_page"`
	Total    int       `json:"total"`
}

type ProductQuery struct {
	Search     string
	CategoryID int64
	Page       int
	PerPage    int
}

type OrderID int64

type Order struct {
	ID        OrderID    `json:"id"`
	Number    string     `json:"number"`
	Status    string     `json:"status"`
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	Currency  string     `json:"currency,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type CheckoutRequest struct {
	ShippingMethod string `json:"shipping_method"`
	PaymentMethod  string `json:"payment_method"`
	Comment        string `json:"comment,omitempty"`
}

type CheckoutResult struct {
	Order      Order  `json:"order"`
	PaymentURL string `json:"payment_url,omitempty"`
	Confirmed  bool   `json:"confirmed"`
}
