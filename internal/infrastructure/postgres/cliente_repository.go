package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/gramatica"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación de ClienteRepository (usable con pool o tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

const clienteColumns = `id, tipo_persona, tipo_documento, numero_documento, apellido_paterno, apellido_materno,
	nombres, razon_social, sexo, estado_civil, nacionalidad, profesion, direccion, ubigeo, distrito,
	provincia, departamento, telefono, email, fecha_nacimiento, created_at, updated_at`

// busqueda texto normalizado (sin tildes, mayúsculas) para el filtro q.
func busqueda(c *entity.Cliente) string {
	return gramatica.Normalizar(strings.Join([]string{
		c.Nombres, c.ApellidoPaterno, c.ApellidoMaterno, c.RazonSocial, c.NumeroDocumento,
	}, " "))
}

func scanCliente(row pgx.Row) (*entity.Cliente, error) {
	var c entity.Cliente
	err := row.Scan(
		&c.ID, &c.TipoPersona, &c.TipoDocumento, &c.NumeroDocumento, &c.ApellidoPaterno, &c.ApellidoMaterno,
		&c.Nombres, &c.RazonSocial, &c.Sexo, &c.EstadoCivil, &c.Nacionalidad, &c.Profesion, &c.Direccion,
		&c.Ubigeo, &c.Distrito, &c.Provincia, &c.Departamento, &c.Telefono, &c.Email, &c.FechaNacimiento,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *ClienteRepo) Create(ctx context.Context, c *entity.Cliente) error {
	query := `
		INSERT INTO clientes (` + clienteColumns + `, busqueda)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.TipoPersona, c.TipoDocumento, c.NumeroDocumento, c.ApellidoPaterno, c.ApellidoMaterno,
		c.Nombres, c.RazonSocial, c.Sexo, c.EstadoCivil, c.Nacionalidad, c.Profesion, c.Direccion,
		c.Ubigeo, c.Distrito, c.Provincia, c.Departamento, c.Telefono, c.Email, dateOrNil(c.FechaNacimiento),
		c.CreatedAt, c.UpdatedAt, busqueda(c),
	)
	if err != nil {
		return mapWriteErr(err, "insert cliente")
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClienteRepo) GetByID(ctx context.Context, id string) (*entity.Cliente, error) {
	c, err := scanCliente(r.q.QueryRow(ctx, `SELECT `+clienteColumns+` FROM clientes WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return c, nil
}

// GetByDocumento obtiene un cliente por tipo y número de documento.
func (r *ClienteRepo) GetByDocumento(ctx context.Context, tipo, numero string) (*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE tipo_documento = $1 AND numero_documento = $2`
	c, err := scanCliente(r.q.QueryRow(ctx, query, tipo, numero))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente by documento: %w", err)
	}
	return c, nil
}

// GetByIDs devuelve los clientes existentes indexados por id.
func (r *ClienteRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Cliente, error) {
	out := make(map[string]*entity.Cliente, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+clienteColumns+` FROM clientes WHERE id::text = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("get clientes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		out[c.ID] = c
	}
	return out, rows.Err()
}

// List lista clientes con búsqueda insensible a tildes y mayúsculas.
func (r *ClienteRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Cliente, int, error) {
	limit, offset := page(f.Limit, f.Offset)
	where, args := "", []any{}
	if p := likePattern(f.Q); p != "" {
		where = ` WHERE busqueda LIKE $1`
		args = append(args, p)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM clientes`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clientes: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM clientes%s
		ORDER BY apellido_paterno, apellido_materno, nombres, razon_social LIMIT $%d OFFSET $%d`,
		clienteColumns, where, n+1, n+2)
	rows, err := r.q.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// Update actualiza un cliente.
func (r *ClienteRepo) Update(ctx context.Context, c *entity.Cliente) error {
	query := `
		UPDATE clientes SET tipo_persona = $2, tipo_documento = $3, numero_documento = $4,
			apellido_paterno = $5, apellido_materno = $6, nombres = $7, razon_social = $8, sexo = $9,
			estado_civil = $10, nacionalidad = $11, profesion = $12, direccion = $13, ubigeo = $14,
			distrito = $15, provincia = $16, departamento = $17, telefono = $18, email = $19,
			fecha_nacimiento = $20, updated_at = $21, busqueda = $22
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.TipoPersona, c.TipoDocumento, c.NumeroDocumento, c.ApellidoPaterno, c.ApellidoMaterno,
		c.Nombres, c.RazonSocial, c.Sexo, c.EstadoCivil, c.Nacionalidad, c.Profesion, c.Direccion,
		c.Ubigeo, c.Distrito, c.Provincia, c.Departamento, c.Telefono, c.Email, dateOrNil(c.FechaNacimiento),
		c.UpdatedAt, busqueda(c),
	)
	if err != nil {
		return mapWriteErr(err, "update cliente")
	}
	return mustAffect(tag)
}

// Delete elimina un cliente; ErrConflict si interviene en algún instrumento.
func (r *ClienteRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return mapWriteErr(err, "delete cliente")
	}
	return mustAffect(tag)
}
