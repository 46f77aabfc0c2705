package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

var _ repository.PermisoViajeRepository = (*PermisoViajeRepo)(nil)

// PermisoViajeRepo permisos de viaje con sus participantes. Create y Update escriben varias
// tablas: usar dentro de TxRunner.
type PermisoViajeRepo struct {
	q Querier
}

// NewPermisoViajeRepository construye el adaptador.
func NewPermisoViajeRepository(q Querier) *PermisoViajeRepo {
	return &PermisoViajeRepo{q: q}
}

const permisoColumns = `id, numero, serie, anio, secuencia, tipo, fecha_ingreso, destino, medio_transporte,
	fecha_salida, fecha_retorno, motivo, observaciones, created_at, updated_at`

func scanPermiso(row pgx.Row) (*entity.PermisoViaje, error) {
	var p entity.PermisoViaje
	err := row.Scan(&p.ID, &p.Numero, &p.Serie, &p.Anio, &p.Secuencia, &p.Tipo, &p.FechaIngreso, &p.Destino,
		&p.MedioTransporte, &p.FechaSalida, &p.FechaRetorno, &p.Motivo, &p.Observaciones, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserta el permiso y sus participantes.
func (r *PermisoViajeRepo) Create(ctx context.Context, p *entity.PermisoViaje) error {
	query := `INSERT INTO permisos_viaje (` + permisoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Numero, p.Serie, p.Anio, p.Secuencia, p.Tipo, p.FechaIngreso, p.Destino, p.MedioTransporte,
		dateOrNil(p.FechaSalida), dateOrNil(p.FechaRetorno), p.Motivo, p.Observaciones, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return mapWriteErr(err, "insert permiso_viaje")
	}
	return participantesPermiso.replace(ctx, r.q, p.ID, p.Participantes)
}

// GetByID obtiene el permiso con participantes y sus clientes.
func (r *PermisoViajeRepo) GetByID(ctx context.Context, id string) (*entity.PermisoViaje, error) {
	p, err := scanPermiso(r.q.QueryRow(ctx, `SELECT `+permisoColumns+` FROM permisos_viaje WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get permiso_viaje: %w", err)
	}
	if p.Participantes, err = participantesPermiso.load(ctx, r.q, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// List lista permisos (sin participantes); q busca por número, destino o nombre de participante.
func (r *PermisoViajeRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.PermisoViaje, int, error) {
	limit, offset := page(f.Limit, f.Offset)
	where, args := "", []any{}
	if p := likePattern(f.Q); p != "" {
		where = ` WHERE (upper(numero || ' ' || destino) LIKE $1 OR EXISTS (
			SELECT 1 FROM permiso_participantes pp JOIN clientes cl ON cl.id = pp.cliente_id
			WHERE pp.permiso_id = permisos_viaje.id AND cl.busqueda LIKE $1))`
		args = append(args, p)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM permisos_viaje`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count permisos_viaje: %w", err)
	}
	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM permisos_viaje%s ORDER BY anio DESC, secuencia DESC LIMIT $%d OFFSET $%d`,
		permisoColumns, where, n+1, n+2)
	rows, err := r.q.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list permisos_viaje: %w", err)
	}
	defer rows.Close()
	var list []*entity.PermisoViaje
	for rows.Next() {
		p, err := scanPermiso(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan permiso_viaje: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Update actualiza el permiso y reemplaza sus participantes.
func (r *PermisoViajeRepo) Update(ctx context.Context, p *entity.PermisoViaje) error {
	query := `
		UPDATE permisos_viaje SET tipo = $2, fecha_ingreso = $3, destino = $4, medio_transporte = $5,
			fecha_salida = $6, fecha_retorno = $7, motivo = $8, observaciones = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.Tipo, p.FechaIngreso, p.Destino, p.MedioTransporte,
		dateOrNil(p.FechaSalida), dateOrNil(p.FechaRetorno), p.Motivo, p.Observaciones, p.UpdatedAt)
	if err != nil {
		return mapWriteErr(err, "update permiso_viaje")
	}
	if err := mustAffect(tag); err != nil {
		return err
	}
	return participantesPermiso.replace(ctx, r.q, p.ID, p.Participantes)
}

// Delete elimina el permiso (los participantes caen en cascada).
func (r *PermisoViajeRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM permisos_viaje WHERE id = $1`, id)
	if err != nil {
		return mapWriteErr(err, "delete permiso_viaje")
	}
	return mustAffect(tag)
}
