package repository

import (
	"context"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
)

// CatalogoRepository catálogos de condiciones y tipos de acto.
type CatalogoRepository interface {
	ListCondiciones(ctx context.Context) ([]*entity.Condicion, error)
	GetCondicion(ctx context.Context, codigo string) (*entity.Condicion, error)
	// ListTiposActo filtra por tipo de kardex si no está vacío.
	ListTiposActo(ctx context.Context, tipoKardex string) ([]*entity.TipoActo, error)
	GetTipoActo(ctx context.Context, codigo string) (*entity.TipoActo, error)
	CreateTipoActo(ctx context.Context, t *entity.TipoActo) error
	UpdateTipoActo(ctx context.Context, t *entity.TipoActo) error
}
