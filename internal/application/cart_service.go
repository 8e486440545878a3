package application

import (
	"context"

	"github.com/bnema/shopscript-cli/internal/domain"
	"github.com/bnema/shopscript-cli/internal/ports"
	"github.com/rs/zerolog"
)

type CartState struct {
	Cart      *domain.Cart
	IsLoading bool
	LastError *domain.APIError
}

// CartService publishes the server's cart. Every successful call replaces
// the whole snapshot; failed calls leave it as it was.
type CartService struct {
	api      ports.CartAPI
	state    *Observable[CartState]
	logger   zerolog.Logger
	inFlight int
}

func NewCartService(api ports.CartAPI, logger zerolog.Logger) *CartService {
	return &CartService{
		api:    api,
		state:  NewObservable(CartState{}),
		logger: logger.With().Str("component", "cart_service").Logger(),
	}
}

func (s *CartService) State() CartState {
	return s.state.Get()
}

func (s *CartService) Subscribe() (<-chan CartState, func()) {
	return s.state.Subscribe()
}

func (s *CartService) Load(ctx context.Context) (domain.Cart, error) {
	return s.replace(ctx, "load", s.api.Get)
}

func (s *CartService) AddToCart(ctx context.Context, productID domain.ProductID, quantity int) (domain.Cart, error) {
	if err := validateQuantity(quantity); err != nil {
		return domain.Cart{}, s.reject(err)
	}

	return s.replace(ctx, "add", func(ctx context.Context) (domain.Cart, error) {
		return s.api.AddItem(ctx, productID, quantity)
	})
}

func (s *CartService) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) (domain.Cart, error) {
	if err := validateQuantity(quantity); err != nil {
		return domain.Cart{}, s.reject(err)
	}

	return s.replace(ctx, "update", func(ctx context.Context) (domain.Cart, error) {
		return s.api.UpdateItem(ctx, itemID, quantity)
	})
}

func (s *CartService) RemoveItem(ctx context.Context, itemID string) (domain.Cart, error) {
	return s.replace(ctx, "remove", func(ctx context.Context) (domain.Cart, error) {
		return s.api.RemoveItem(ctx, itemID)
	})
}

func (s *CartService) ApplyCoupon(ctx context.Context, code string) (domain.Cart, error) {
	return s.replace(ctx, "apply_coupon", func(ctx context.Context) (domain.Cart, error) {
		return s.api.ApplyCoupon(ctx, code)
	})
}

func (s *CartService) RemoveCoupon(ctx context.Context) (domain.Cart, error) {
	return s.replace(ctx, "remove_coupon", s.api.RemoveCoupon)
}

// ClearCart empties the remote cart and drops the local snapshot.
func (s *CartService) ClearCart(ctx context.Context) error {
	s.begin()

	if err := s.api.Clear(ctx); err != nil {
		s.fail("clear", err)
		return err
	}

	s.state.Update(func(state *CartState) {
		s.end(state)
		state.Cart = nil
		state.LastError = nil
	})

	return nil
}

// Reset forgets the local snapshot without calling the backend.
func (s *CartService) Reset() {
	s.state.Update(func(state *CartState) {
		state.Cart = nil
		state.LastError = nil
	})
}

func (s *CartService) replace(ctx context.Context, op string, call func(context.Context) (domain.Cart, error)) (domain.Cart, error) {
	s.begin()

	cart, err := call(ctx)
	if err != nil {
		s.fail(op, err)
		return domain.Cart{}, err
	}

	snapshot := cart
	s.state.Update(func(state *CartState) {
		s.end(state)
		state.Cart = &snapshot
		state.LastError = nil
	})

	return cart, nil
}

func (s *CartService) begin() {
	s.state.Update(func(state *CartState) {
		s.inFlight++
		state.IsLoading = true
	})
}

func (s *CartService) end(state *CartState) {
	s.inFlight--
	state.IsLoading = s.inFlight > 0
}

func (s *CartService) fail(op string, err error) {
	s.logger.Debug().Err(err).Str("op", op).Msg("cart operation failed")

	apiErr, record := recordedError(err)
	s.state.Update(func(state *CartState) {
		s.end(state)
		if record {
			state.LastError = apiErr
		}
	})
}

// reject records a request refused before reaching the backend.
func (s *CartService) reject(err *domain.APIError) error {
	s.state.Update(func(state *CartState) {
		state.LastError = err
	})
	return err
}

func validateQuantity(quantity int) *domain.APIError {
	if quantity > 0 {
		return nil
	}
	return &domain.APIError{
		Kind:        domain.KindValidation,
		Message:     "quantity must be at least 1",
		FieldErrors: map[string][]string{"quantity": {"must be at least 1"}},
	}
}
