package repository

import (
	"context"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
)

// DocumentoRepository registro de documentos generados.
type DocumentoRepository interface {
	Create(ctx context.Context, d *entity.DocumentoGenerado) error
	GetByID(ctx context.Context, id string) (*entity.DocumentoGenerado, error)
	List(ctx context.Context, f DocumentoFilter) ([]*entity.DocumentoGenerado, int, error)
}
