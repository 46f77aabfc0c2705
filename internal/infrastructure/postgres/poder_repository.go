package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

var _ repository.PoderRepository = (*PoderRepo)(nil)

// PoderRepo poderes fuera de registro con sus participantes.
type PoderRepo struct {
	q Querier
}

// NewPoderRepository construye el adaptador.
func NewPoderRepository(q Querier) *PoderRepo {
	return &PoderRepo{q: q}
}

const poderColumns = `id, numero, serie, anio, secuencia, tipo, fecha_ingreso, facultades, vigencia_hasta,
	observaciones, created_at, updated_at`

func scanPoder(row pgx.Row) (*entity.Poder, error) {
	var p entity.Poder
	err := row.Scan(&p.ID, &p.Numero, &p.Serie, &p.Anio, &p.Secuencia, &p.Tipo, &p.FechaIngreso, &p.Facultades,
		&p.VigenciaHasta, &p.Observaciones, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserta el poder y sus participantes.
func (r *PoderRepo) Create(ctx context.Context, p *entity.Poder) error {
	query := `INSERT INTO poderes (` + poderColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query, p.ID, p.Numero, p.Serie, p.Anio, p.Secuencia, p.Tipo, p.FechaIngreso,
		p.Facultades, dateOrNil(p.VigenciaHasta), p.Observaciones, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return mapWriteErr(err, "insert poder")
	}
	return participantesPoder.replace(ctx, r.q, p.ID, p.Participantes)
}

// GetByID obtiene el poder con sus participantes.
func (r *PoderRepo) GetByID(ctx context.Context, id string) (*entity.Poder, error) {
	p, err := scanPoder(r.q.QueryRow(ctx, `SELECT `+poderColumns+` FROM poderes WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get poder: %w", err)
	}
	if p.Participantes, err = participantesPoder.load(ctx, r.q, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// List lista poderes; q busca por número, tipo o nombre de participante.
func (r *PoderRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Poder, int, error) {
	limit, offset := page(f.Limit, f.Offset)
	where, args := "", []any{}
	if p := likePattern(f.Q); p != "" {
		where = ` WHERE (upper(numero || ' ' || tipo) LIKE $1 OR EXISTS (
			SELECT 1 FROM poder_participantes pp JOIN clientes cl ON cl.id = pp.cliente_id
			WHERE pp.poder_id = poderes.id AND cl.busqueda LIKE $1))`
		args = append(args, p)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM poderes`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count poderes: %w", err)
	}
	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM poderes%s ORDER BY anio DESC, secuencia DESC LIMIT $%d OFFSET $%d`,
		poderColumns, where, n+1, n+2)
	rows, err := r.q.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list poderes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Poder
	for rows.Next() {
		p, err := scanPoder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan poder: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Update actualiza el poder y reemplaza sus participantes.
func (r *PoderRepo) Update(ctx context.Context, p *entity.Poder) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE poderes SET tipo = $2, fecha_ingreso = $3, facultades = $4, vigencia_hasta = $5,
			observaciones = $6, updated_at = $7
		WHERE id = $1`,
		p.ID, p.Tipo, p.FechaIngreso, p.Facultades, dateOrNil(p.VigenciaHasta), p.Observaciones, p.UpdatedAt)
	if err != nil {
		return mapWriteErr(err, "update poder")
	}
	if err := mustAffect(tag); err != nil {
		return err
	}
	return participantesPoder.replace(ctx, r.q, p.ID, p.Participantes)
}

// Delete elimina el poder.
func (r *PoderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM poderes WHERE id = $1`, id)
	if err != nil {
		return mapWriteErr(err, "delete poder")
	}
	return mustAffect(tag)
}
