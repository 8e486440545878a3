package ports

import (
	"context"

	"github.com/bnema/shopscript-cli/internal/domain"
)

type AuthAPI interface {
	Login(ctx context.Context, credentials domain.Credentials) (domain.AuthResult, error)
	Register(ctx context.Context, registration domain.Registration) (domain.Customer, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (domain.Customer, error)
}

type CartAPI interface {
	Get(ctx context.Context) (domain.Cart, error)
	AddItem(ctx context.Context, productID domain.ProductID, quantity int) (domain.Cart, error)
	UpdateItem(ctx context.Context, itemID string, quantity int) (domain.Cart, error)
	RemoveItem(ctx context.Context, itemID string) (domain.Cart, error)
	ApplyCoupon(ctx context.Context, code string) (domain.Cart, error)
	RemoveCoupon(ctx context.Context) (domain.Cart, error)
	Clear(ctx context.Context) error
}

// Session is the slice of the session manager the domain services may touch.
type Session interface {
	Restore(ctx context.Context)
	Store(ctx context.Context, tokens domain.Tokens) error
	Clear(ctx context.Context) error
	IsAuthenticated() bool
}

// SessionNotifier is implemented by sessions that report token changes made
// outside the caller, such as a failed refresh clearing the session.
type SessionNotifier interface {
	OnChange(fn func(domain.Session))
}
