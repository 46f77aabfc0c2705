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

var _ repository.KardexRepository = (*KardexRepo)(nil)

// KardexRepo kardex, contratantes y vehículo (usable con pool o tx).
type KardexRepo struct {
	q Querier
}

// NewKardexRepository construye el adaptador. Pasar pool o tx (Querier).
func NewKardexRepository(q Querier) *KardexRepo {
	return &KardexRepo{q: q}
}

const kardexColumns = `k.id, k.numero, k.serie, k.anio, k.secuencia, k.tipo_kardex, k.acto_codigo, k.contrato,
	k.fecha_ingreso, k.referencia, k.numero_escritura, k.fecha_escritura, k.folio_inicial, k.folio_final,
	k.numero_minuta, k.importe, k.moneda, k.estado, COALESCE(k.responsable_id::text, ''), k.observaciones,
	k.sisgen_estado, k.created_at, k.updated_at`

// kardexBusqueda texto normalizado de número, escritura y contrato para el filtro q.
func kardexBusqueda(k *entity.Kardex) string {
	return gramatica.Normalizar(k.Numero + " " + k.NumeroEscritura + " " + k.Contrato)
}

func scanKardex(row pgx.Row) (*entity.Kardex, error) {
	var k entity.Kardex
	err := row.Scan(
		&k.ID, &k.Numero, &k.Serie, &k.Anio, &k.Secuencia, &k.TipoKardex, &k.ActoCodigo, &k.Contrato,
		&k.FechaIngreso, &k.Referencia, &k.NumeroEscritura, &k.FechaEscritura, &k.FolioInicial, &k.FolioFinal,
		&k.NumeroMinuta, &k.Importe, &k.Moneda, &k.Estado, &k.ResponsableID, &k.Observaciones,
		&k.SISGENEstado, &k.CreatedAt, &k.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *KardexRepo) queryKardex(ctx context.Context, query string, args ...any) ([]*entity.Kardex, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query kardex: %w", err)
	}
	defer rows.Close()
	var list []*entity.Kardex
	for rows.Next() {
		k, err := scanKardex(rows)
		if err != nil {
			return nil, fmt.Errorf("scan kardex: %w", err)
		}
		list = append(list, k)
	}
	return list, rows.Err()
}

// Create persiste un kardex; ErrDuplicate si el número ya existe.
func (r *KardexRepo) Create(ctx context.Context, k *entity.Kardex) error {
	query := `
		INSERT INTO kardex (id, numero, serie, anio, secuencia, tipo_kardex, acto_codigo, contrato,
			fecha_ingreso, referencia, numero_escritura, fecha_escritura, folio_inicial, folio_final,
			numero_minuta, importe, moneda, estado, responsable_id, observaciones, sisgen_estado,
			created_at, updated_at, busqueda)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`
	_, err := r.q.Exec(ctx, query,
		k.ID, k.Numero, k.Serie, k.Anio, k.Secuencia, k.TipoKardex, k.ActoCodigo, k.Contrato,
		k.FechaIngreso, k.Referencia, k.NumeroEscritura, dateOrNil(k.FechaEscritura), k.FolioInicial, k.FolioFinal,
		k.NumeroMinuta, k.Importe, k.Moneda, k.Estado, nullIfEmpty(k.ResponsableID), k.Observaciones,
		k.SISGENEstado, k.CreatedAt, k.UpdatedAt, kardexBusqueda(k),
	)
	if err != nil {
		return mapWriteErr(err, "insert kardex")
	}
	return nil
}

// GetByID obtiene un kardex por ID.
func (r *KardexRepo) GetByID(ctx context.Context, id string) (*entity.Kardex, error) {
	k, err := scanKardex(r.q.QueryRow(ctx, `SELECT `+kardexColumns+` FROM kardex k WHERE k.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get kardex: %w", err)
	}
	return k, nil
}

// List lista kardex con filtros; q busca en número, escritura, contrato y nombres de contratantes.
func (r *KardexRepo) List(ctx context.Context, f repository.KardexFilter) ([]*entity.Kardex, int, error) {
	limit, offset := page(f.Limit, f.Offset)
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.TipoKardex != "" {
		add("k.tipo_kardex = $%d", f.TipoKardex)
	}
	if f.Anio > 0 {
		add("k.anio = $%d", f.Anio)
	}
	if f.Estado != "" {
		add("k.estado = $%d", f.Estado)
	}
	if p := likePattern(f.Q); p != "" {
		args = append(args, p)
		n := len(args)
		conds = append(conds, fmt.Sprintf(`(k.busqueda LIKE $%d
			OR EXISTS (SELECT 1 FROM contratantes c JOIN clientes cl ON cl.id = c.cliente_id
			           WHERE c.kardex_id = k.id AND cl.busqueda LIKE $%d))`, n, n))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM kardex k`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count kardex: %w", err)
	}
	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM kardex k%s ORDER BY k.anio DESC, k.serie, k.secuencia DESC LIMIT $%d OFFSET $%d`,
		kardexColumns, where, n+1, n+2)
	list, err := r.queryKardex(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Update actualiza los datos editables del kardex (el número no cambia).
func (r *KardexRepo) Update(ctx context.Context, k *entity.Kardex) error {
	query := `
		UPDATE kardex SET acto_codigo = $2, contrato = $3, fecha_ingreso = $4, referencia = $5,
			numero_escritura = $6, fecha_escritura = $7, folio_inicial = $8, folio_final = $9,
			numero_minuta = $10, importe = $11, moneda = $12, estado = $13, responsable_id = $14,
			observaciones = $15, updated_at = $16, busqueda = $17
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		k.ID, k.ActoCodigo, k.Contrato, k.FechaIngreso, k.Referencia,
		k.NumeroEscritura, dateOrNil(k.FechaEscritura), k.FolioInicial, k.FolioFinal,
		k.NumeroMinuta, k.Importe, k.Moneda, k.Estado, nullIfEmpty(k.ResponsableID),
		k.Observaciones, k.UpdatedAt, kardexBusqueda(k),
	)
	if err != nil {
		return mapWriteErr(err, "update kardex")
	}
	return mustAffect(tag)
}

// Delete elimina el kardex con sus contratantes, vehículo y envíos.
func (r *KardexRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM kardex WHERE id = $1`, id)
	if err != nil {
		return mapWriteErr(err, "delete kardex")
	}
	return mustAffect(tag)
}

// UpdateSISGENEstado fija el estado SISGEN del kardex.
func (r *KardexRepo) UpdateSISGENEstado(ctx context.Context, id, estado string) error {
	tag, err := r.q.Exec(ctx, `UPDATE kardex SET sisgen_estado = $2, updated_at = now() WHERE id = $1`, id, estado)
	if err != nil {
		return mapWriteErr(err, "update sisgen_estado")
	}
	return mustAffect(tag)
}

// SearchSISGEN kardex con escritura numerada y fechada en el rango, excluyendo anulados.
func (r *KardexRepo) SearchSISGEN(ctx context.Context, s repository.SISGENSearch) ([]*entity.Kardex, error) {
	query := `SELECT ` + kardexColumns + ` FROM kardex k
		WHERE k.fecha_escritura BETWEEN $1 AND $2
		  AND k.numero_escritura <> ''
		  AND k.estado <> 'ANULADO'
		  AND ($3::text = '' OR k.tipo_kardex = $3)
		  AND ($4::text = '' OR k.sisgen_estado = $4)
		ORDER BY k.fecha_escritura, k.numero`
	return r.queryKardex(ctx, query, s.Desde, s.Hasta, s.TipoKardex, s.EstadoSISGEN)
}

// ── Contratantes ──────────────────────────────────────────────────────────────

// AddContratante agrega un contratante; ErrDuplicate si el cliente ya tiene esa condición.
func (r *KardexRepo) AddContratante(ctx context.Context, c *entity.Contratante) error {
	query := `
		INSERT INTO contratantes (id, kardex_id, cliente_id, condicion_codigo, intervencion, representa_a,
			partida_poder, firma, fecha_firma, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.KardexID, c.ClienteID, c.CondicionCodigo, c.Intervencion, nullIfEmpty(c.RepresentaA),
		c.PartidaPoder, c.Firma, dateOrNil(c.FechaFirma), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr(err, "insert contratante")
	}
	return nil
}

// DeleteContratante quita un contratante del kardex.
func (r *KardexRepo) DeleteContratante(ctx context.Context, kardexID, contratanteID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM contratantes WHERE id = $1 AND kardex_id = $2`, contratanteID, kardexID)
	if err != nil {
		return mapWriteErr(err, "delete contratante")
	}
	return mustAffect(tag)
}

// ListContratantes contratantes del kardex con cliente, condición y representado resueltos,
// en el orden en que se agregaron.
func (r *KardexRepo) ListContratantes(ctx context.Context, kardexID string) ([]*entity.ContratanteDetalle, error) {
	query := `
		SELECT c.id, c.kardex_id, c.cliente_id, c.condicion_codigo, c.intervencion,
		       COALESCE(c.representa_a::text, ''), c.partida_poder, c.firma, c.fecha_firma,
		       c.created_at, c.updated_at,
		       ` + prefixed("cl", clienteColumns) + `,
		       ` + prefixed("co", condicionColumns) + `
		FROM contratantes c
		JOIN clientes cl ON cl.id = c.cliente_id
		JOIN condiciones co ON co.codigo = c.condicion_codigo
		WHERE c.kardex_id = $1
		ORDER BY c.created_at, c.id`
	rows, err := r.q.Query(ctx, query, kardexID)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list contratantes: %w", err)
	}
	defer rows.Close()

	var list []*entity.ContratanteDetalle
	var representados []string
	for rows.Next() {
		var d entity.ContratanteDetalle
		cl, co := &d.Cliente, &d.Condicion
		err := rows.Scan(
			&d.ID, &d.KardexID, &d.ClienteID, &d.CondicionCodigo, &d.Intervencion,
			&d.RepresentaA, &d.PartidaPoder, &d.Firma, &d.FechaFirma, &d.CreatedAt, &d.UpdatedAt,
			&cl.ID, &cl.TipoPersona, &cl.TipoDocumento, &cl.NumeroDocumento, &cl.ApellidoPaterno, &cl.ApellidoMaterno,
			&cl.Nombres, &cl.RazonSocial, &cl.Sexo, &cl.EstadoCivil, &cl.Nacionalidad, &cl.Profesion, &cl.Direccion,
			&cl.Ubigeo, &cl.Distrito, &cl.Provincia, &cl.Departamento, &cl.Telefono, &cl.Email, &cl.FechaNacimiento,
			&cl.CreatedAt, &cl.UpdatedAt,
			&co.Codigo, &co.Masculino, &co.Femenino, &co.PluralMasculino, &co.PluralFemenino, &co.Lado, &co.CodigoSISGEN,
		)
		if err != nil {
			return nil, fmt.Errorf("scan contratante: %w", err)
		}
		if d.RepresentaA != "" {
			representados = append(representados, d.RepresentaA)
		}
		list = append(list, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(representados) > 0 {
		byID, err := NewClienteRepository(r.q).GetByIDs(ctx, representados)
		if err != nil {
			return nil, err
		}
		for _, d := range list {
			if d.RepresentaA != "" {
				d.Representado = byID[d.RepresentaA]
			}
		}
	}
	return list, nil
}

// prefixed antepone el alias de tabla a cada columna de la lista.
func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

// ── Vehículo ──────────────────────────────────────────────────────────────────

const vehiculoColumns = `kardex_id, placa, marca, modelo, clase, categoria, carroceria, color, anio_fabricacion,
	numero_serie, numero_motor, combustible, partida_registral, zona_registral, precio, moneda, forma_pago,
	medio_pago, created_at, updated_at`

// GetVehiculo vehículo del kardex; nil, nil si no se registró.
func (r *KardexRepo) GetVehiculo(ctx context.Context, kardexID string) (*entity.Vehiculo, error) {
	var v entity.Vehiculo
	err := r.q.QueryRow(ctx, `SELECT `+vehiculoColumns+` FROM vehiculos WHERE kardex_id = $1`, kardexID).Scan(
		&v.KardexID, &v.Placa, &v.Marca, &v.Modelo, &v.Clase, &v.Categoria, &v.Carroceria, &v.Color,
		&v.AnioFabricacion, &v.NumeroSerie, &v.NumeroMotor, &v.Combustible, &v.PartidaRegistral,
		&v.ZonaRegistral, &v.Precio, &v.Moneda, &v.FormaPago, &v.MedioPago, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehiculo: %w", err)
	}
	return &v, nil
}

// SaveVehiculo inserta o reemplaza el vehículo del kardex.
func (r *KardexRepo) SaveVehiculo(ctx context.Context, v *entity.Vehiculo) error {
	query := `
		INSERT INTO vehiculos (` + vehiculoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (kardex_id) DO UPDATE SET
			placa = EXCLUDED.placa, marca = EXCLUDED.marca, modelo = EXCLUDED.modelo, clase = EXCLUDED.clase,
			categoria = EXCLUDED.categoria, carroceria = EXCLUDED.carroceria, color = EXCLUDED.color,
			anio_fabricacion = EXCLUDED.anio_fabricacion, numero_serie = EXCLUDED.numero_serie,
			numero_motor = EXCLUDED.numero_motor, combustible = EXCLUDED.combustible,
			partida_registral = EXCLUDED.partida_registral, zona_registral = EXCLUDED.zona_registral,
			precio = EXCLUDED.precio, moneda = EXCLUDED.moneda, forma_pago = EXCLUDED.forma_pago,
			medio_pago = EXCLUDED.medio_pago, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		v.KardexID, v.Placa, v.Marca, v.Modelo, v.Clase, v.Categoria, v.Carroceria, v.Color, v.AnioFabricacion,
		v.NumeroSerie, v.NumeroMotor, v.Combustible, v.PartidaRegistral, v.ZonaRegistral, v.Precio, v.Moneda,
		v.FormaPago, v.MedioPago, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr(err, "save vehiculo")
	}
	return nil
}
