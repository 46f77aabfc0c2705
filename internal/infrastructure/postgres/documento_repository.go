package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

var _ repository.DocumentoRepository = (*DocumentoRepo)(nil)

// DocumentoRepo registro de documentos generados.
type DocumentoRepo struct {
	q Querier
}

// NewDocumentoRepository construye el adaptador.
func NewDocumentoRepository(q Querier) *DocumentoRepo {
	return &DocumentoRepo{q: q}
}

const documentoColumns = `id, tipo, referencia_id, plantilla, storage_key, filename, size, faltantes,
	COALESCE(generado_por::text, ''), created_at`

func scanDocumento(row pgx.Row) (*entity.DocumentoGenerado, error) {
	var d entity.DocumentoGenerado
	err := row.Scan(&d.ID, &d.Tipo, &d.ReferenciaID, &d.Plantilla, &d.StorageKey, &d.Filename, &d.Size,
		&d.Faltantes, &d.GeneradoPor, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create registra un documento generado.
func (r *DocumentoRepo) Create(ctx context.Context, d *entity.DocumentoGenerado) error {
	faltantes := d.Faltantes
	if faltantes == nil {
		faltantes = []string{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO documentos_generados (id, tipo, referencia_id, plantilla, storage_key, filename, size,
			faltantes, generado_por, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		d.ID, d.Tipo, d.ReferenciaID, d.Plantilla, d.StorageKey, d.Filename, d.Size, faltantes,
		nullIfEmpty(d.GeneradoPor), d.CreatedAt)
	if err != nil {
		return mapWriteErr(err, "insert documento")
	}
	return nil
}

// GetByID obtiene un documento por ID.
func (r *DocumentoRepo) GetByID(ctx context.Context, id string) (*entity.DocumentoGenerado, error) {
	d, err := scanDocumento(r.q.QueryRow(ctx, `SELECT `+documentoColumns+` FROM documentos_generados WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get documento: %w", err)
	}
	return d, nil
}

// List lista documentos, más recientes primero.
func (r *DocumentoRepo) List(ctx context.Context, f repository.DocumentoFilter) ([]*entity.DocumentoGenerado, int, error) {
	limit, offset := page(f.Limit, f.Offset)
	where := ` WHERE ($1::text = '' OR tipo = $1) AND ($2::text = '' OR referencia_id::text = $2)`
	args := []any{f.Tipo, f.ReferenciaID}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM documentos_generados`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count documentos: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+documentoColumns+` FROM documentos_generados`+where+
		` ORDER BY created_at DESC LIMIT $3 OFFSET $4`, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list documentos: %w", err)
	}
	defer rows.Close()
	var list []*entity.DocumentoGenerado
	for rows.Next() {
		d, err := scanDocumento(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan documento: %w", err)
		}
		list = append(list, d)
	}
	return list, total, rows.Err()
}
