package application

import (
	"context"
	"errors"

	"github.com/bnema/shopscript-cli/internal/domain"
)

// recordedError is what a failed operation leaves in published state.
// Caller cancellation is not a service failure and records nothing.
func recordedError(err error) (*domain.APIError, bool) {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, false
	}
	return domain.AsAPIError(err), true
}
