package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
)

// tablas de participantes (permisos y poderes) con su columna padre.
type participantesTabla struct {
	tabla string
	fk    string
}

var (
	participantesPermiso = participantesTabla{tabla: "permiso_participantes", fk: "permiso_id"}
	participantesPoder   = participantesTabla{tabla: "poder_participantes", fk: "poder_id"}
)

// replace borra y reinserta los participantes conservando el orden recibido.
func (t participantesTabla) replace(ctx context.Context, q Querier, parentID string, ps []entity.Participante) error {
	if _, err := q.Exec(ctx, `DELETE FROM `+t.tabla+` WHERE `+t.fk+` = $1`, parentID); err != nil {
		return mapWriteErr(err, "delete "+t.tabla)
	}
	query := `INSERT INTO ` + t.tabla + ` (` + t.fk + `, cliente_id, rol, orden) VALUES ($1, $2, $3, $4)`
	for i, p := range ps {
		if _, err := q.Exec(ctx, query, parentID, p.ClienteID, p.Rol, i); err != nil {
			return mapWriteErr(err, "insert "+t.tabla)
		}
	}
	return nil
}

// load participantes con su cliente, en orden.
func (t participantesTabla) load(ctx context.Context, q Querier, parentID string) ([]entity.Participante, error) {
	query := `SELECT p.rol, ` + prefixed("cl", clienteColumns) + `
		FROM ` + t.tabla + ` p JOIN clientes cl ON cl.id = p.cliente_id
		WHERE p.` + t.fk + ` = $1 ORDER BY p.orden`
	rows, err := q.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.tabla, err)
	}
	defer rows.Close()
	var out []entity.Participante
	for rows.Next() {
		var rol string
		var cl entity.Cliente
		err := rows.Scan(&rol,
			&cl.ID, &cl.TipoPersona, &cl.TipoDocumento, &cl.NumeroDocumento, &cl.ApellidoPaterno, &cl.ApellidoMaterno,
			&cl.Nombres, &cl.RazonSocial, &cl.Sexo, &cl.EstadoCivil, &cl.Nacionalidad, &cl.Profesion, &cl.Direccion,
			&cl.Ubigeo, &cl.Distrito, &cl.Provincia, &cl.Departamento, &cl.Telefono, &cl.Email, &cl.FechaNacimiento,
			&cl.CreatedAt, &cl.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.tabla, err)
		}
		c := cl
		out = append(out, entity.Participante{ClienteID: c.ID, Rol: rol, Cliente: &c})
	}
	return out, rows.Err()
}
