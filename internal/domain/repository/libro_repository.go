package repository

import (
	"context"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
)

// LibroRepository persistencia de legalizaciones de libros.
type LibroRepository interface {
	Create(ctx context.Context, l *entity.Libro) error
	GetByID(ctx context.Context, id string) (*entity.Libro, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Libro, int, error)
	Update(ctx context.Context, l *entity.Libro) error
	Delete(ctx context.Context, id string) error
}
