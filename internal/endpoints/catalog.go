package endpoints

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bnema/shopscript-cli/internal/domain"
	"github.com/bnema/shopscript-cli/internal/ports"
)

type Products struct {
	requester ports.Requester
}

func NewProducts(requester ports.Requester) *Products {
	return &Products{requester: requester}
}

func (p *Products) List(ctx context.Context, query domain.ProductQuery) (domain.ProductPage, error) {
	values := url.Values{}
	if query.Search != "" {
		values.Set("search", query.Search)
	}
	if query.CategoryID > 0 {
		values.Set("category_id", strconv.FormatInt(query.CategoryID, 10))
	}
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if query.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(query.PerPage))
	}

	var page domain.ProductPage
	err := p.requester.DoJSON(ctx, domain.Request{
		Method: http.MethodGet,
		Path:   "/api/products",
		Query:  values,
	}, &page)
	return page, err
}

func (p *Products) Get(ctx context.Context, id domain.ProductID) (domain.Product, error) {
	var product domain.Product
	err := p.requester.DoJSON(ctx, domain.Request{
		Method: http.MethodGet,
		Path:   "/api/products/" + strconv.FormatInt(int64(id), 10),
	}, &product)
	return product, specialiseNotFound(err, "product")
}

type Orders struct {
	requester ports.Requester
}

func NewOrders(requester ports.Requester) *Orders {
	return &Orders{requester: requester}
}

func (o *Orders) List(ctx context.Context) ([]domain.Order, error) {
	var envelope struct {
		Orders []domain.Order `json:"orders"`
	}
	err := o.requester.DoJSON(ctx, domain.Request{
		Method: http.MethodGet,
		Path:   "/api/orders",
	}, &envelope)
	return envelope.Orders, err
}

func (o *Orders) Get(ctx context.Context, id domain.OrderID) (domain.Order, error) {
	var order domain.Order
	err := o.requester.DoJSON(ctx, domain.Request{
		Method: http.MethodGet,
		Path:   "/api/orders/" + strconv.FormatInt(int64(id), 10),
	}, &order)
	return order, specialiseNotFound(err, "order")
}

func (o *Orders) Create(ctx context.Context, request domain.CheckoutRequest) (domain.Order, error) {
	var order domain.Order
	err := o.requester.DoJSON(ctx, domain.Request{
		Method: http.MethodPost,
		Path:   "/api/orders",
		Body:   request,
	}, &order)
	return order, err
}

type Checkout struct {
	requester ports.Requester
}

func NewCheckout(requester ports.Requester) *Checkout {
	return &Checkout{requester: requester}
}

func (c *Checkout) Submit(ctx context.Context, request domain.CheckoutRequest) (domain.CheckoutResult, error) {
	var result domain.CheckoutResult
	err := c.requester.DoJSON(ctx, domain.Request{
		Method: http.MethodPost,
		Path:   "/api/checkout",
		Body:   request,
	}, &result)
	return result, err
}

func specialiseNotFound(err error, resource string) error {
	if err == nil || domain.KindOf(err) != domain.KindNotFound {
		return err
	}
	return domain.AsAPIError(err).WithResource(resource)
}
