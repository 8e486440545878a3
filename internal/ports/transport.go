package ports

import (
	"context"

	"github.com/bnema/shopscript-cli/internal/domain"
)

// Transport executes a request and returns whatever response came back,
// whatever its status. Failures without a response wrap domain.ErrNoResponse.
type Transport interface {
	Do(ctx context.Context, req domain.Request) (domain.Response, error)
}

// Requester is the authenticated request pipeline used by endpoint modules.
type Requester interface {
	Do(ctx context.Context, req domain.Request) (domain.Response, error)
	DoJSON(ctx context.Context, req domain.Request, out any) error
}
