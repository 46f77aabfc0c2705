package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

var _ repository.NotariaRepository = (*NotariaRepo)(nil)

// NotariaRepo datos de la notaría (una sola fila).
type NotariaRepo struct {
	q Querier
}

// NewNotariaRepository construye el adaptador.
func NewNotariaRepository(q Querier) *NotariaRepo {
	return &NotariaRepo{q: q}
}

// Get devuelve la fila única; nil, nil si aún no se registró.
func (r *NotariaRepo) Get(ctx context.Context) (*entity.Notaria, error) {
	query := `
		SELECT id, nombre, notario, colegiatura, ruc, direccion, distrito, provincia, departamento,
		       telefono, email, codigo_sisgen, created_at, updated_at
		FROM notaria ORDER BY created_at LIMIT 1`
	var n entity.Notaria
	err := r.q.QueryRow(ctx, query).Scan(
		&n.ID, &n.Nombre, &n.Notario, &n.Colegiatura, &n.RUC, &n.Direccion, &n.Distrito, &n.Provincia,
		&n.Departamento, &n.Telefono, &n.Email, &n.CodigoSISGEN, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notaria: %w", err)
	}
	return &n, nil
}

// Save inserta o actualiza la fila por id.
func (r *NotariaRepo) Save(ctx context.Context, n *entity.Notaria) error {
	query := `
		INSERT INTO notaria (id, nombre, notario, colegiatura, ruc, direccion, distrito, provincia,
		                     departamento, telefono, email, codigo_sisgen, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			nombre = EXCLUDED.nombre, notario = EXCLUDED.notario, colegiatura = EXCLUDED.colegiatura,
			ruc = EXCLUDED.ruc, direccion = EXCLUDED.direccion, distrito = EXCLUDED.distrito,
			provincia = EXCLUDED.provincia, departamento = EXCLUDED.departamento,
			telefono = EXCLUDED.telefono, email = EXCLUDED.email, codigo_sisgen = EXCLUDED.codigo_sisgen,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		n.ID, n.Nombre, n.Notario, n.Colegiatura, n.RUC, n.Direccion, n.Distrito, n.Provincia,
		n.Departamento, n.Telefono, n.Email, n.CodigoSISGEN, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save notaria: %w", err)
	}
	return nil
}
