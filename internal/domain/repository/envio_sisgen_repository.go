package repository

import (
	"context"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
)

// EnvioSISGENRepository historial de envíos a SISGEN.
type EnvioSISGENRepository interface {
	Create(ctx context.Context, e *entity.EnvioSISGEN) error
	// ListByKardex historial más reciente primero; kardexID vacío lista todos.
	ListByKardex(ctx context.Context, kardexID string, limit, offset int) ([]*entity.EnvioSISGEN, error)
	// LastAceptado último envío ACEPTADO del kardex; nil, nil si no hay.
	LastAceptado(ctx context.Context, kardexID string) (*entity.EnvioSISGEN, error)
}
