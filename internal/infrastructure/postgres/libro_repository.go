package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

var _ repository.LibroRepository = (*LibroRepo)(nil)

// LibroRepo legalizaciones de libros.
type LibroRepo struct {
	q Querier
}

// NewLibroRepository construye el adaptador.
func NewLibroRepository(q Querier) *LibroRepo {
	return &LibroRepo{q: q}
}

const libroColumns = `l.id, l.numero, l.serie, l.anio, l.secuencia, l.cliente_id, l.tipo_libro, l.numero_libro,
	l.folios, l.tipo_legalizacion, l.fecha_ingreso, l.fecha_legalizacion, l.observaciones, l.created_at, l.updated_at`

func scanLibro(row pgx.Row) (*entity.Libro, error) {
	var l entity.Libro
	err := row.Scan(&l.ID, &l.Numero, &l.Serie, &l.Anio, &l.Secuencia, &l.ClienteID, &l.TipoLibro, &l.NumeroLibro,
		&l.Folios, &l.TipoLegalizacion, &l.FechaIngreso, &l.FechaLegalizacion, &l.Observaciones, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserta una legalización.
func (r *LibroRepo) Create(ctx context.Context, l *entity.Libro) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO libros (id, numero, serie, anio, secuencia, cliente_id, tipo_libro, numero_libro, folios,
			tipo_legalizacion, fecha_ingreso, fecha_legalizacion, observaciones, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		l.ID, l.Numero, l.Serie, l.Anio, l.Secuencia, l.ClienteID, l.TipoLibro, l.NumeroLibro, l.Folios,
		l.TipoLegalizacion, l.FechaIngreso, dateOrNil(l.FechaLegalizacion), l.Observaciones, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return mapWriteErr(err, "insert libro")
	}
	return nil
}

// GetByID obtiene una legalización por ID.
func (r *LibroRepo) GetByID(ctx context.Context, id string) (*entity.Libro, error) {
	l, err := scanLibro(r.q.QueryRow(ctx, `SELECT `+libroColumns+` FROM libros l WHERE l.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get libro: %w", err)
	}
	return l, nil
}

// List lista legalizaciones; q busca por número, tipo de libro o cliente.
func (r *LibroRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Libro, int, error) {
	limit, offset := page(f.Limit, f.Offset)
	from := ` FROM libros l JOIN clientes cl ON cl.id = l.cliente_id`
	where, args := "", []any{}
	if p := likePattern(f.Q); p != "" {
		where = ` WHERE (upper(l.numero || ' ' || l.tipo_libro) LIKE $1 OR cl.busqueda LIKE $1)`
		args = append(args, p)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+from+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count libros: %w", err)
	}
	n := len(args)
	query := fmt.Sprintf(`SELECT %s%s%s ORDER BY l.anio DESC, l.secuencia DESC LIMIT $%d OFFSET $%d`,
		libroColumns, from, where, n+1, n+2)
	rows, err := r.q.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list libros: %w", err)
	}
	defer rows.Close()
	var list []*entity.Libro
	for rows.Next() {
		l, err := scanLibro(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan libro: %w", err)
		}
		list = append(list, l)
	}
	return list, total, rows.Err()
}

// Update actualiza una legalización.
func (r *LibroRepo) Update(ctx context.Context, l *entity.Libro) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE libros SET cliente_id = $2, tipo_libro = $3, numero_libro = $4, folios = $5,
			tipo_legalizacion = $6, fecha_ingreso = $7, fecha_legalizacion = $8, observaciones = $9, updated_at = $10
		WHERE id = $1`,
		l.ID, l.ClienteID, l.TipoLibro, l.NumeroLibro, l.Folios, l.TipoLegalizacion, l.FechaIngreso,
		dateOrNil(l.FechaLegalizacion), l.Observaciones, l.UpdatedAt)
	if err != nil {
		return mapWriteErr(err, "update libro")
	}
	return mustAffect(tag)
}

// Delete elimina una legalización.
func (r *LibroRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM libros WHERE id = $1`, id)
	if err != nil {
		return mapWriteErr(err, "delete libro")
	}
	return mustAffect(tag)
}
