package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

var _ repository.CatalogoRepository = (*CatalogoRepo)(nil)

// CatalogoRepo condiciones de intervención y tipos de acto.
type CatalogoRepo struct {
	q Querier
}

// NewCatalogoRepository construye el adaptador.
func NewCatalogoRepository(q Querier) *CatalogoRepo {
	return &CatalogoRepo{q: q}
}

const (
	condicionColumns = `codigo, masculino, femenino, plural_masculino, plural_femenino, lado, codigo_sisgen`
	tipoActoColumns  = `codigo, descripcion, tipo_kardex, codigo_sisgen, plantilla, activo`
)

func scanCondicion(row pgx.Row) (*entity.Condicion, error) {
	var c entity.Condicion
	if err := row.Scan(&c.Codigo, &c.Masculino, &c.Femenino, &c.PluralMasculino, &c.PluralFemenino, &c.Lado, &c.CodigoSISGEN); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanTipoActo(row pgx.Row) (*entity.TipoActo, error) {
	var t entity.TipoActo
	if err := row.Scan(&t.Codigo, &t.Descripcion, &t.TipoKardex, &t.CodigoSISGEN, &t.Plantilla, &t.Activo); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListCondiciones todas las condiciones ordenadas por código.
func (r *CatalogoRepo) ListCondiciones(ctx context.Context) ([]*entity.Condicion, error) {
	rows, err := r.q.Query(ctx, `SELECT `+condicionColumns+` FROM condiciones ORDER BY codigo`)
	if err != nil {
		return nil, fmt.Errorf("list condiciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Condicion
	for rows.Next() {
		c, err := scanCondicion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan condicion: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// GetCondicion obtiene una condición; nil, nil si no existe.
func (r *CatalogoRepo) GetCondicion(ctx context.Context, codigo string) (*entity.Condicion, error) {
	c, err := scanCondicion(r.q.QueryRow(ctx, `SELECT `+condicionColumns+` FROM condiciones WHERE codigo = $1`, codigo))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get condicion: %w", err)
	}
	return c, nil
}

// ListTiposActo lista tipos de acto, filtrando por tipo de kardex si se indica.
func (r *CatalogoRepo) ListTiposActo(ctx context.Context, tipoKardex string) ([]*entity.TipoActo, error) {
	query := `SELECT ` + tipoActoColumns + ` FROM tipos_acto WHERE ($1::text = '' OR tipo_kardex = $1) ORDER BY tipo_kardex, descripcion`
	rows, err := r.q.Query(ctx, query, tipoKardex)
	if err != nil {
		return nil, fmt.Errorf("list tipos_acto: %w", err)
	}
	defer rows.Close()
	var list []*entity.TipoActo
	for rows.Next() {
		t, err := scanTipoActo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tipo_acto: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetTipoActo obtiene un tipo de acto; nil, nil si no existe.
func (r *CatalogoRepo) GetTipoActo(ctx context.Context, codigo string) (*entity.TipoActo, error) {
	t, err := scanTipoActo(r.q.QueryRow(ctx, `SELECT `+tipoActoColumns+` FROM tipos_acto WHERE codigo = $1`, codigo))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tipo_acto: %w", err)
	}
	return t, nil
}

// CreateTipoActo inserta un tipo de acto.
func (r *CatalogoRepo) CreateTipoActo(ctx context.Context, t *entity.TipoActo) error {
	_, err := r.q.Exec(ctx, `INSERT INTO tipos_acto (`+tipoActoColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		t.Codigo, t.Descripcion, t.TipoKardex, t.CodigoSISGEN, t.Plantilla, t.Activo)
	if err != nil {
		return mapWriteErr(err, "insert tipo_acto")
	}
	return nil
}

// UpdateTipoActo actualiza un tipo de acto por código.
func (r *CatalogoRepo) UpdateTipoActo(ctx context.Context, t *entity.TipoActo) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE tipos_acto SET descripcion = $2, tipo_kardex = $3, codigo_sisgen = $4, plantilla = $5, activo = $6
		WHERE codigo = $1`,
		t.Codigo, t.Descripcion, t.TipoKardex, t.CodigoSISGEN, t.Plantilla, t.Activo)
	if err != nil {
		return mapWriteErr(err, "update tipo_acto")
	}
	return mustAffect(tag)
}
