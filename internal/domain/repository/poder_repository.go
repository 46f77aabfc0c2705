package repository

import (
	"context"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
)

// PoderRepository persistencia de poderes fuera de registro y sus participantes.
type PoderRepository interface {
	Create(ctx context.Context, p *entity.Poder) error
	GetByID(ctx context.Context, id string) (*entity.Poder, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Poder, int, error)
	Update(ctx context.Context, p *entity.Poder) error
	Delete(ctx context.Context, id string) error
}
