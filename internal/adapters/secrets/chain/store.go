// Package chain layers two secret stores: tokens go to the primary backend
// when it works and to the fallback otherwise.
package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/shopscript-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/shopscript-cli/internal/adapters/secrets/pass"
	"github.com/bnema/shopscript-cli/internal/domain"
	"github.com/bnema/shopscript-cli/internal/ports"
)

type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore) (*Store, error) {
	if primary == nil {
		return nil, errors.New("primary secret store is nil")
	}
	if fallback == nil {
		return nil, errors.New("fallback secret store is nil")
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

func NewPassWithFileFallback(fileRoot string) (*Store, error) {
	return NewStore(passstore.NewStore(), filestore.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil || isContextError(err) {
		return err
	}

	fallbackErr := s.fallback.Put(ctx, key, value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("put %q: primary: %w; fallback: %w", key, err, fallbackErr)
}

// Get reports domain.ErrSecretNotFound only when neither backend holds key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if isContextError(err) {
		return "", err
	}

	value, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return value, nil
	}

	if isMissing(err) && errors.Is(fallbackErr, domain.ErrSecretNotFound) {
		return "", fmt.Errorf("%w: %s", domain.ErrSecretNotFound, key)
	}

	return "", fmt.Errorf("get %q: primary: %w; fallback: %w", key, err, fallbackErr)
}

// Delete removes key from both backends, since a fallback write may have
// left a copy behind.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if isContextError(err) {
		return err
	}
	if errors.Is(err, passstore.ErrUnavailable) {
		err = nil
	}

	fallbackErr := s.fallback.Delete(ctx, key)

	switch {
	case err != nil && fallbackErr != nil:
		return fmt.Errorf("delete %q: primary: %w; fallback: %w", key, err, fallbackErr)
	case err != nil:
		return fmt.Errorf("delete %q: primary: %w", key, err)
	case fallbackErr != nil:
		return fmt.Errorf("delete %q: fallback: %w", key, fallbackErr)
	}

	return nil
}

// isMissing treats an unusable primary as not holding the key.
func isMissing(err error) bool {
	return errors.Is(err, domain.ErrSecretNotFound) || errors.Is(err, passstore.ErrUnavailable)
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
