package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

var _ repository.CorrelativoRepository = (*CorrelativoRepo)(nil)

// tablas con columnas (serie, anio, secuencia). El nombre se interpola en el SQL: solo estas.
var correlativoTablas = map[string]bool{
	repository.TablaKardex:   true,
	repository.TablaPermisos: true,
	repository.TablaPoderes:  true,
	repository.TablaCartas:   true,
	repository.TablaLibros:   true,
}

// CorrelativoRepo asigna secuencias MAX+1 por (serie, año) bajo un advisory lock de transacción.
type CorrelativoRepo struct {
	q Querier
}

// NewCorrelativoRepository construye el adaptador; q debe ser una pgx.Tx para que el lock
// cubra el INSERT posterior.
func NewCorrelativoRepository(q Querier) *CorrelativoRepo {
	return &CorrelativoRepo{q: q}
}

// Next bloquea la serie del año y devuelve la siguiente secuencia.
func (r *CorrelativoRepo) Next(ctx context.Context, tabla, serie string, anio int) (int, error) {
	if !correlativoTablas[tabla] {
		return 0, fmt.Errorf("correlativo: tabla no soportada %q", tabla)
	}
	key := fmt.Sprintf("%s:%s:%d", tabla, serie, anio)
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return 0, fmt.Errorf("correlativo lock: %w", err)
	}
	var next int
	query := `SELECT COALESCE(MAX(secuencia), 0) + 1 FROM ` + tabla + ` WHERE serie = $1 AND anio = $2`
	if err := r.q.QueryRow(ctx, query, serie, anio).Scan(&next); err != nil {
		return 0, fmt.Errorf("correlativo max: %w", err)
	}
	return next, nil
}
