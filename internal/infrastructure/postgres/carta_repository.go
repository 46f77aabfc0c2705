package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

var _ repository.CartaRepository = (*CartaRepo)(nil)

// CartaRepo cartas notariales.
type CartaRepo struct {
	q Querier
}

// NewCartaRepository construye el adaptador.
func NewCartaRepository(q Querier) *CartaRepo {
	return &CartaRepo{q: q}
}

const cartaColumns = `id, numero, serie, anio, secuencia, fecha_ingreso, remitente_nombre, remitente_documento,
	remitente_direccion, destinatario_nombre, destinatario_direccion, destinatario_distrito, contenido,
	fecha_diligencia, diligenciador, resultado, costo, created_at, updated_at`

func scanCarta(row pgx.Row) (*entity.Carta, error) {
	var c entity.Carta
	err := row.Scan(&c.ID, &c.Numero, &c.Serie, &c.Anio, &c.Secuencia, &c.FechaIngreso, &c.RemitenteNombre,
		&c.RemitenteDocumento, &c.RemitenteDireccion, &c.DestinatarioNombre, &c.DestinatarioDireccion,
		&c.DestinatarioDistrito, &c.Contenido, &c.FechaDiligencia, &c.Diligenciador, &c.Resultado, &c.Costo,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserta una carta.
func (r *CartaRepo) Create(ctx context.Context, c *entity.Carta) error {
	query := `INSERT INTO cartas (` + cartaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Numero, c.Serie, c.Anio, c.Secuencia, c.FechaIngreso, c.RemitenteNombre,
		c.RemitenteDocumento, c.RemitenteDireccion, c.DestinatarioNombre, c.DestinatarioDireccion,
		c.DestinatarioDistrito, c.Contenido, dateOrNil(c.FechaDiligencia), c.Diligenciador, c.Resultado, c.Costo,
		c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return mapWriteErr(err, "insert carta")
	}
	return nil
}

// GetByID obtiene una carta por ID.
func (r *CartaRepo) GetByID(ctx context.Context, id string) (*entity.Carta, error) {
	c, err := scanCarta(r.q.QueryRow(ctx, `SELECT `+cartaColumns+` FROM cartas WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get carta: %w", err)
	}
	return c, nil
}

// List lista cartas; q busca por número, remitente o destinatario.
func (r *CartaRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Carta, int, error) {
	limit, offset := page(f.Limit, f.Offset)
	where, args := "", []any{}
	if p := likePattern(f.Q); p != "" {
		where = ` WHERE upper(numero || ' ' || remitente_nombre || ' ' || destinatario_nombre) LIKE $1`
		args = append(args, p)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM cartas`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count cartas: %w", err)
	}
	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM cartas%s ORDER BY anio DESC, secuencia DESC LIMIT $%d OFFSET $%d`,
		cartaColumns, where, n+1, n+2)
	rows, err := r.q.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list cartas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Carta
	for rows.Next() {
		c, err := scanCarta(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan carta: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// Update actualiza una carta (incluida la diligencia).
func (r *CartaRepo) Update(ctx context.Context, c *entity.Carta) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE cartas SET fecha_ingreso = $2, remitente_nombre = $3, remitente_documento = $4,
			remitente_direccion = $5, destinatario_nombre = $6, destinatario_direccion = $7,
			destinatario_distrito = $8, contenido = $9, fecha_diligencia = $10, diligenciador = $11,
			resultado = $12, costo = $13, updated_at = $14
		WHERE id = $1`,
		c.ID, c.FechaIngreso, c.RemitenteNombre, c.RemitenteDocumento, c.RemitenteDireccion, c.DestinatarioNombre,
		c.DestinatarioDireccion, c.DestinatarioDistrito, c.Contenido, dateOrNil(c.FechaDiligencia), c.Diligenciador,
		c.Resultado, c.Costo, c.UpdatedAt)
	if err != nil {
		return mapWriteErr(err, "update carta")
	}
	return mustAffect(tag)
}

// Delete elimina una carta.
func (r *CartaRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM cartas WHERE id = $1`, id)
	if err != nil {
		return mapWriteErr(err, "delete carta")
	}
	return mustAffect(tag)
}
