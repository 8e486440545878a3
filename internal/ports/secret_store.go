package ports

import "context"

// SecretStore is durable, private key-value storage for session tokens.
// Get wraps domain.ErrSecretNotFound when the key does not exist.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
