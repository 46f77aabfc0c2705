package repository

import (
	"context"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
)

// PermisoViajeRepository persistencia de permisos de viaje y sus participantes.
type PermisoViajeRepository interface {
	Create(ctx context.Context, p *entity.PermisoViaje) error
	// GetByID carga participantes con su cliente.
	GetByID(ctx context.Context, id string) (*entity.PermisoViaje, error)
	List(ctx context.Context, f ListFilter) ([]*entity.PermisoViaje, int, error)
	// Update reemplaza también la lista de participantes.
	Update(ctx context.Context, p *entity.PermisoViaje) error
	Delete(ctx context.Context, id string) error
}
