package repository

import (
	"context"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
)

// NotariaRepository persistencia de los datos de la notaría (fila única).
type NotariaRepository interface {
	// Get devuelve nil, nil si aún no se registraron los datos.
	Get(ctx context.Context) (*entity.Notaria, error)
	Save(ctx context.Context, n *entity.Notaria) error
}
