package repository

import (
	"context"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
)

// ClienteRepository define el puerto de persistencia para Cliente.
type ClienteRepository interface {
	Create(ctx context.Context, c *entity.Cliente) error
	GetByID(ctx context.Context, id string) (*entity.Cliente, error)
	GetByDocumento(ctx context.Context, tipo, numero string) (*entity.Cliente, error)
	// GetByIDs devuelve los clientes encontrados indexados por id.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Cliente, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Cliente, int, error)
	Update(ctx context.Context, c *entity.Cliente) error
	Delete(ctx context.Context, id string) error
}
