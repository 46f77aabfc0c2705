package repository

import (
	"context"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
)

// CartaRepository persistencia de cartas notariales.
type CartaRepository interface {
	Create(ctx context.Context, c *entity.Carta) error
	GetByID(ctx context.Context, id string) (*entity.Carta, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Carta, int, error)
	Update(ctx context.Context, c *entity.Carta) error
	Delete(ctx context.Context, id string) error
}
