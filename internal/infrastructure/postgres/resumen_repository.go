package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

var _ repository.ResumenRepository = (*ResumenRepo)(nil)

// ResumenRepo consultas de solo lectura para el resumen de actividad de la notaría.
type ResumenRepo struct {
	q Querier
}

// NewResumenRepository construye el adaptador.
func NewResumenRepository(q Querier) *ResumenRepo {
	return &ResumenRepo{q: q}
}

// KardexPorTipo agrupa por tipo de kardex según fecha_ingreso (rango cerrado).
func (r *ResumenRepo) KardexPorTipo(ctx context.Context, desde, hasta time.Time) ([]repository.KardexPorTipo, error) {
	const query = `
	SELECT
	    tipo_kardex,
	    COUNT(*)                                                   AS cantidad,
	    COALESCE(SUM(importe) FILTER (WHERE moneda = 'PEN'), 0)    AS cuantia_pen,
	    COALESCE(SUM(importe) FILTER (WHERE moneda = 'USD'), 0)    AS cuantia_usd
	FROM kardex
	WHERE fecha_ingreso BETWEEN $1 AND $2
	  AND estado <> 'ANULADO'
	GROUP BY tipo_kardex
	ORDER BY tipo_kardex`

	rows, err := r.q.Query(ctx, query, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("resumen.KardexPorTipo: %w", err)
	}
	defer rows.Close()

	var out []repository.KardexPorTipo
	for rows.Next() {
		var row repository.KardexPorTipo
		if err := rows.Scan(&row.TipoKardex, &row.Cantidad, &row.CuantiaPEN, &row.CuantiaUSD); err != nil {
			return nil, fmt.Errorf("resumen.KardexPorTipo scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Extraprotocolares cuenta los registros de cada libro extraprotocolar en el rango.
func (r *ResumenRepo) Extraprotocolares(ctx context.Context, desde, hasta time.Time) (repository.ConteoExtraprotocolar, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM permisos_viaje WHERE fecha_ingreso BETWEEN $1 AND $2),
	    (SELECT COUNT(*) FROM poderes        WHERE fecha_ingreso BETWEEN $1 AND $2),
	    (SELECT COUNT(*) FROM cartas         WHERE fecha_ingreso BETWEEN $1 AND $2),
	    (SELECT COUNT(*) FROM libros         WHERE fecha_ingreso BETWEEN $1 AND $2)`

	var c repository.ConteoExtraprotocolar
	if err := r.q.QueryRow(ctx, query, desde, hasta).Scan(&c.PermisosViaje, &c.Poderes, &c.Cartas, &c.Libros); err != nil {
		return c, fmt.Errorf("resumen.Extraprotocolares: %w", err)
	}
	return c, nil
}

// EstadoSISGEN kardex con escritura (número y fecha) agrupados por estado SISGEN no aceptado.
func (r *ResumenRepo) EstadoSISGEN(ctx context.Context) (repository.ConteoSISGEN, error) {
	const query = `
	SELECT
	    COUNT(*) FILTER (WHERE sisgen_estado = 'NO_ENVIADO'),
	    COUNT(*) FILTER (WHERE sisgen_estado = 'OBSERVADO'),
	    COUNT(*) FILTER (WHERE sisgen_estado = 'ERROR')
	FROM kardex
	WHERE numero_escritura <> ''
	  AND fecha_escritura IS NOT NULL
	  AND estado <> 'ANULADO'`

	var c repository.ConteoSISGEN
	if err := r.q.QueryRow(ctx, query).Scan(&c.Pendientes, &c.Observados, &c.ConError); err != nil {
		return c, fmt.Errorf("resumen.EstadoSISGEN: %w", err)
	}
	return c, nil
}
