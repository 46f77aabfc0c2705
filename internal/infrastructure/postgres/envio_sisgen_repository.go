package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

var _ repository.EnvioSISGENRepository = (*EnvioSISGENRepo)(nil)

// EnvioSISGENRepo historial de envíos a SISGEN.
type EnvioSISGENRepo struct {
	q Querier
}

// NewEnvioSISGENRepository construye el adaptador.
func NewEnvioSISGENRepository(q Querier) *EnvioSISGENRepo {
	return &EnvioSISGENRepo{q: q}
}

const envioColumns = `id, kardex_id, estado, codigo, mensaje, numero_registro, observaciones, digest, xml,
	COALESCE(usuario_id::text, ''), fecha`

func scanEnvio(row pgx.Row) (*entity.EnvioSISGEN, error) {
	var e entity.EnvioSISGEN
	err := row.Scan(&e.ID, &e.KardexID, &e.Estado, &e.Codigo, &e.Mensaje, &e.NumeroRegistro, &e.Observaciones,
		&e.Digest, &e.XML, &e.UsuarioID, &e.Fecha)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create registra un envío.
func (r *EnvioSISGENRepo) Create(ctx context.Context, e *entity.EnvioSISGEN) error {
	obs := e.Observaciones
	if obs == nil {
		obs = []string{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO envios_sisgen (id, kardex_id, estado, codigo, mensaje, numero_registro, observaciones,
			digest, xml, usuario_id, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.KardexID, e.Estado, e.Codigo, e.Mensaje, e.NumeroRegistro, obs, e.Digest, e.XML,
		nullIfEmpty(e.UsuarioID), e.Fecha)
	if err != nil {
		return mapWriteErr(err, "insert envio_sisgen")
	}
	return nil
}

// ListByKardex historial, más reciente primero; kardexID vacío lista todos.
func (r *EnvioSISGENRepo) ListByKardex(ctx context.Context, kardexID string, limit, offset int) ([]*entity.EnvioSISGEN, error) {
	limit, offset = page(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+envioColumns+` FROM envios_sisgen
		WHERE ($1::text = '' OR kardex_id::text = $1)
		ORDER BY fecha DESC LIMIT $2 OFFSET $3`, kardexID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list envios_sisgen: %w", err)
	}
	defer rows.Close()
	var list []*entity.EnvioSISGEN
	for rows.Next() {
		e, err := scanEnvio(rows)
		if err != nil {
			return nil, fmt.Errorf("scan envio_sisgen: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// LastAceptado último envío ACEPTADO del kardex; nil, nil si no hay.
func (r *EnvioSISGENRepo) LastAceptado(ctx context.Context, kardexID string) (*entity.EnvioSISGEN, error) {
	e, err := scanEnvio(r.q.QueryRow(ctx, `SELECT `+envioColumns+` FROM envios_sisgen
		WHERE kardex_id = $1 AND estado = $2 ORDER BY fecha DESC LIMIT 1`, kardexID, entity.EnvioAceptado))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("last envio aceptado: %w", err)
	}
	return e, nil
}
