package ports

import (
	"context"

	"github.com/bnema/shopscript-cli/internal/domain"
)

type ProfileRepository interface {
	GetByName(ctx context.Context, name string) (domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	Save(ctx context.Context, profile domain.Profile) error
	Active(ctx context.Context) (string, error)
	SetActive(ctx context.Context, name string) error
}
