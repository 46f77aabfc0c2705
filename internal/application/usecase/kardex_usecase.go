package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/domain"
	"github.com/jhoicas/notaria-api/internal/domain/correlativo"
	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

// CaratulaGenerator genera la carátula PDF del kardex.
type CaratulaGenerator interface {
	GenerateCaratula(ctx context.Context, notaria *entity.Notaria, k *entity.Kardex, acto *entity.TipoActo, contratantes []*entity.ContratanteDetalle) ([]byte, error)
}

// KardexUseCase casos de uso del kardex: alta con correlativo, contratantes, vehículo y carátula.
type KardexUseCase struct {
	repo      repository.KardexRepository
	catalogos repository.CatalogoRepository
	clientes  repository.ClienteRepository
	notaria   repository.NotariaRepository
	tx        repository.TxRunner
	caratula  CaratulaGenerator
	metrics   CorrelativoMetrics
}

// NewKardexUseCase construye el caso de uso.
func NewKardexUseCase(
	repo repository.KardexRepository,
	catalogos repository.CatalogoRepository,
	clientes repository.ClienteRepository,
	notaria repository.NotariaRepository,
	tx repository.TxRunner,
	caratula CaratulaGenerator,
) *KardexUseCase {
	return &KardexUseCase{
		repo:      repo,
		catalogos: catalogos,
		clientes:  clientes,
		notaria:   notaria,
		tx:        tx,
		caratula:  caratula,
		metrics:   nopMetrics{},
	}
}

// WithMetrics registra los correlativos asignados.
func (uc *KardexUseCase) WithMetrics(m CorrelativoMetrics) *KardexUseCase {
	if m != nil {
		uc.metrics = m
	}
	return uc
}

// Create registra un kardex. Sin numero se asigna el siguiente correlativo de la serie
// (tipo de kardex) en el año de fecha_ingreso; con numero se valida y se respeta (importación).
func (uc *KardexUseCase) Create(ctx context.Context, userID string, in dto.KardexRequest) (*dto.KardexResponse, error) {
	ingreso, err := fechaOHoy(in.FechaIngreso)
	if err != nil {
		return nil, err
	}
	k := &entity.Kardex{
		ID:           uuid.New().String(),
		Serie:        in.TipoKardex,
		Anio:         ingreso.Year(),
		TipoKardex:   in.TipoKardex,
		FechaIngreso: ingreso,
		Estado:       entity.KardexEnProceso,
		SISGENEstado: entity.SISGENNoEnviado,
	}
	if err := uc.applyKardex(ctx, k, in); err != nil {
		return nil, err
	}
	if k.ResponsableID == "" {
		k.ResponsableID = userID
	}

	var importado *correlativo.Numero
	if in.Numero != "" {
		n, err := correlativo.Parse(strings.ToUpper(strings.TrimSpace(in.Numero)))
		if err != nil {
			return nil, invalid("numero: %v", err)
		}
		if n.Serie != k.Serie {
			return nil, invalid("numero: la serie %s no corresponde al tipo de kardex %s", n.Serie, k.TipoKardex)
		}
		if n.Anio != k.Anio {
			return nil, invalid("numero: el año %d no corresponde a la fecha de ingreso", n.Anio)
		}
		importado = &n
	}

	now := time.Now()
	k.CreatedAt = now
	k.UpdatedAt = now
	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		if importado != nil {
			k.Secuencia = importado.Secuencia
			k.Numero = importado.String()
		} else {
			seq, numero, err := siguiente(ctx, repos, repository.TablaKardex, k.Serie, k.Anio)
			if err != nil {
				return err
			}
			k.Secuencia = seq
			k.Numero = numero
		}
		return repos.Kardex.Create(ctx, k)
	})
	if err != nil {
		return nil, err
	}
	if importado == nil {
		uc.metrics.IncCorrelativo(k.Serie)
	}
	return toKardexResponse(k), nil
}

// GetByID devuelve el kardex con contratantes y vehículo.
func (uc *KardexUseCase) GetByID(ctx context.Context, id string) (*dto.KardexResponse, error) {
	k, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	res := toKardexResponse(k)
	cs, err := uc.repo.ListContratantes(ctx, k.ID)
	if err != nil {
		return nil, err
	}
	res.Contratantes = make([]dto.ContratanteResponse, 0, len(cs))
	for _, c := range cs {
		res.Contratantes = append(res.Contratantes, toContratanteResponse(c))
	}
	if k.TipoKardex == entity.KardexVehicular {
		v, err := uc.repo.GetVehiculo(ctx, k.ID)
		if err != nil {
			return nil, err
		}
		if v != nil {
			res.Vehiculo = toVehiculoResponse(v)
		}
	}
	return res, nil
}

// List lista kardex con filtros.
func (uc *KardexUseCase) List(ctx context.Context, in dto.KardexListRequest) (*dto.ListResponse[dto.KardexResponse], error) {
	in.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.KardexFilter{
		ListFilter: listFilter(in.PageRequest),
		TipoKardex: in.TipoKardex,
		Anio:       in.Anio,
		Estado:     in.Estado,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.KardexResponse, 0, len(list))
	for _, k := range list {
		items = append(items, *toKardexResponse(k))
	}
	return dto.NewList(items, in.PageRequest, total), nil
}

// Update modifica el kardex. No cambia número ni tipo; un kardex anulado no admite cambios.
func (uc *KardexUseCase) Update(ctx context.Context, id string, in dto.KardexRequest) (*dto.KardexResponse, error) {
	k, err := uc.modificable(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.TipoKardex != k.TipoKardex {
		return nil, invalid("el tipo de kardex no puede cambiar (%s)", k.TipoKardex)
	}
	if in.FechaIngreso != "" {
		ingreso, err := fechaOHoy(in.FechaIngreso)
		if err != nil {
			return nil, err
		}
		if ingreso.Year() != k.Anio {
			return nil, invalid("fecha_ingreso debe ser del año %d", k.Anio)
		}
		k.FechaIngreso = ingreso
	}
	if err := uc.applyKardex(ctx, k, in); err != nil {
		return nil, err
	}
	k.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, k); err != nil {
		return nil, err
	}
	return toKardexResponse(k), nil
}

// Delete elimina el kardex con sus contratantes y vehículo.
func (uc *KardexUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// AddContratante agrega un cliente al kardex con una condición.
func (uc *KardexUseCase) AddContratante(ctx context.Context, kardexID string, in dto.ContratanteRequest) (*dto.ContratanteResponse, error) {
	if _, err := uc.modificable(ctx, kardexID); err != nil {
		return nil, err
	}
	cliente, err := uc.clientes.GetByID(ctx, in.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, invalid("cliente %s no existe", in.ClienteID)
	}
	cond, err := uc.catalogos.GetCondicion(ctx, strings.ToUpper(in.CondicionCodigo))
	if err != nil {
		return nil, err
	}
	if cond == nil {
		return nil, invalid("condición %s no existe", in.CondicionCodigo)
	}
	fechaFirma, err := fechaOpcional("fecha_firma", in.FechaFirma)
	if err != nil {
		return nil, err
	}

	intervencion := in.Intervencion
	if intervencion == "" {
		intervencion = entity.IntervencionPropio
		if in.RepresentaA != "" {
			intervencion = entity.IntervencionRepresentacion
		}
	}
	var representado *entity.Cliente
	if in.RepresentaA != "" {
		if in.RepresentaA == in.ClienteID {
			return nil, invalid("un contratante no puede representarse a sí mismo")
		}
		representado, err = uc.clientes.GetByID(ctx, in.RepresentaA)
		if err != nil {
			return nil, err
		}
		if representado == nil {
			return nil, invalid("cliente representado %s no existe", in.RepresentaA)
		}
	}

	now := time.Now()
	c := entity.Contratante{
		ID:              uuid.New().String(),
		KardexID:        kardexID,
		ClienteID:       cliente.ID,
		CondicionCodigo: cond.Codigo,
		Intervencion:    intervencion,
		RepresentaA:     in.RepresentaA,
		PartidaPoder:    in.PartidaPoder,
		Firma:           in.Firma,
		FechaFirma:      fechaFirma,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.AddContratante(ctx, &c); err != nil {
		return nil, err
	}
	res := toContratanteResponse(&entity.ContratanteDetalle{
		Contratante:  c,
		Cliente:      *cliente,
		Condicion:    *cond,
		Representado: representado,
	})
	return &res, nil
}

// DeleteContratante quita un contratante del kardex.
func (uc *KardexUseCase) DeleteContratante(ctx context.Context, kardexID, contratanteID string) error {
	if _, err := uc.modificable(ctx, kardexID); err != nil {
		return err
	}
	return uc.repo.DeleteContratante(ctx, kardexID, contratanteID)
}

// SaveVehiculo registra o reemplaza el vehículo de un kardex vehicular.
func (uc *KardexUseCase) SaveVehiculo(ctx context.Context, kardexID string, in dto.VehiculoRequest) (*dto.VehiculoResponse, error) {
	k, err := uc.modificable(ctx, kardexID)
	if err != nil {
		return nil, err
	}
	if k.TipoKardex != entity.KardexVehicular {
		return nil, invalid("solo los kardex vehiculares registran vehículo")
	}
	if in.Precio.IsNegative() {
		return nil, invalid("precio no puede ser negativo")
	}
	existing, err := uc.repo.GetVehiculo(ctx, kardexID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	v := &entity.Vehiculo{KardexID: kardexID, CreatedAt: now}
	if existing != nil {
		v.CreatedAt = existing.CreatedAt
	}
	v.Placa = strings.ToUpper(strings.TrimSpace(in.Placa))
	v.Marca = in.Marca
	v.Modelo = in.Modelo
	v.Clase = in.Clase
	v.Categoria = in.Categoria
	v.Carroceria = in.Carroceria
	v.Color = in.Color
	v.AnioFabricacion = in.AnioFabricacion
	v.NumeroSerie = strings.ToUpper(in.NumeroSerie)
	v.NumeroMotor = strings.ToUpper(in.NumeroMotor)
	v.Combustible = in.Combustible
	v.PartidaRegistral = in.PartidaRegistral
	v.ZonaRegistral = in.ZonaRegistral
	v.Precio = in.Precio
	v.Moneda = orDefault(in.Moneda, "PEN")
	v.FormaPago = orDefault(in.FormaPago, entity.FormaPagoContado)
	v.MedioPago = in.MedioPago
	v.UpdatedAt = now
	if err := uc.repo.SaveVehiculo(ctx, v); err != nil {
		return nil, err
	}
	return toVehiculoResponse(v), nil
}

// Caratula genera la carátula PDF; devuelve también el número del kardex para el nombre del archivo.
func (uc *KardexUseCase) Caratula(ctx context.Context, id string) ([]byte, string, error) {
	k, err := uc.get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	notaria, err := uc.notaria.Get(ctx)
	if err != nil {
		return nil, "", err
	}
	if notaria == nil {
		notaria = &entity.Notaria{}
	}
	acto, err := uc.catalogos.GetTipoActo(ctx, k.ActoCodigo)
	if err != nil {
		return nil, "", err
	}
	cs, err := uc.repo.ListContratantes(ctx, k.ID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.caratula.GenerateCaratula(ctx, notaria, k, acto, cs)
	if err != nil {
		return nil, "", err
	}
	return pdf, k.Numero, nil
}

func (uc *KardexUseCase) get(ctx context.Context, id string) (*entity.Kardex, error) {
	k, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, domain.ErrNotFound
	}
	return k, nil
}

// modificable devuelve el kardex si existe y no está anulado.
func (uc *KardexUseCase) modificable(ctx context.Context, id string) (*entity.Kardex, error) {
	k, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if k.EsAnulado() {
		return nil, fmt.Errorf("%w: el kardex %s está anulado", domain.ErrConflict, k.Numero)
	}
	return k, nil
}

// applyKardex copia los campos editables y valida el acto contra el tipo de kardex.
func (uc *KardexUseCase) applyKardex(ctx context.Context, k *entity.Kardex, in dto.KardexRequest) error {
	codigo := strings.ToUpper(in.ActoCodigo)
	acto, err := uc.catalogos.GetTipoActo(ctx, codigo)
	if err != nil {
		return err
	}
	if acto == nil {
		return invalid("acto %s no existe", in.ActoCodigo)
	}
	if acto.TipoKardex != k.TipoKardex {
		return invalid("el acto %s no corresponde al tipo de kardex %s", acto.Codigo, k.TipoKardex)
	}
	if !acto.Activo && acto.Codigo != k.ActoCodigo {
		return invalid("el acto %s está inactivo", acto.Codigo)
	}
	fechaEscritura, err := fechaOpcional("fecha_escritura", in.FechaEscritura)
	if err != nil {
		return err
	}
	if in.Importe.IsNegative() {
		return invalid("importe no puede ser negativo")
	}
	k.ActoCodigo = acto.Codigo
	k.Contrato = orDefault(strings.TrimSpace(in.Contrato), acto.Descripcion)
	k.Referencia = in.Referencia
	k.NumeroEscritura = in.NumeroEscritura
	k.FechaEscritura = fechaEscritura
	k.FolioInicial = in.FolioInicial
	k.FolioFinal = in.FolioFinal
	k.NumeroMinuta = in.NumeroMinuta
	k.Importe = in.Importe
	k.Moneda = orDefault(in.Moneda, "PEN")
	if in.Estado != "" {
		k.Estado = in.Estado
	}
	if in.ResponsableID != "" {
		k.ResponsableID = in.ResponsableID
	}
	k.Observaciones = in.Observaciones
	return nil
}

func toKardexResponse(k *entity.Kardex) *dto.KardexResponse {
	return &dto.KardexResponse{
		ID:              k.ID,
		Numero:          k.Numero,
		TipoKardex:      k.TipoKardex,
		ActoCodigo:      k.ActoCodigo,
		Contrato:        k.Contrato,
		FechaIngreso:    dto.FormatFecha(&k.FechaIngreso),
		Referencia:      k.Referencia,
		NumeroEscritura: k.NumeroEscritura,
		FechaEscritura:  dto.FormatFecha(k.FechaEscritura),
		FolioInicial:    k.FolioInicial,
		FolioFinal:      k.FolioFinal,
		NumeroMinuta:    k.NumeroMinuta,
		Importe:         k.Importe,
		Moneda:          k.Moneda,
		Estado:          k.Estado,
		ResponsableID:   k.ResponsableID,
		Observaciones:   k.Observaciones,
		SISGENEstado:    k.SISGENEstado,
		CreatedAt:       k.CreatedAt,
		UpdatedAt:       k.UpdatedAt,
	}
}

func toContratanteResponse(c *entity.ContratanteDetalle) dto.ContratanteResponse {
	label := c.Condicion.Masculino
	if c.Cliente.EsFemenino() && c.Condicion.Femenino != "" {
		label = c.Condicion.Femenino
	}
	res := dto.ContratanteResponse{
		ID:              c.ID,
		ClienteID:       c.ClienteID,
		Nombre:          c.Cliente.NombreCompleto(),
		TipoDocumento:   c.Cliente.TipoDocumento,
		NumeroDocumento: c.Cliente.NumeroDocumento,
		CondicionCodigo: c.CondicionCodigo,
		Condicion:       label,
		Intervencion:    c.Intervencion,
		RepresentaA:     c.RepresentaA,
		PartidaPoder:    c.PartidaPoder,
		Firma:           c.Firma,
		FechaFirma:      dto.FormatFecha(c.FechaFirma),
	}
	if c.Representado != nil {
		res.Representado = c.Representado.NombreCompleto()
	}
	return res
}

func toVehiculoResponse(v *entity.Vehiculo) *dto.VehiculoResponse {
	return &dto.VehiculoResponse{
		Placa:            v.Placa,
		Marca:            v.Marca,
		Modelo:           v.Modelo,
		Clase:            v.Clase,
		Categoria:        v.Categoria,
		Carroceria:       v.Carroceria,
		Color:            v.Color,
		AnioFabricacion:  v.AnioFabricacion,
		NumeroSerie:      v.NumeroSerie,
		NumeroMotor:      v.NumeroMotor,
		Combustible:      v.Combustible,
		PartidaRegistral: v.PartidaRegistral,
		ZonaRegistral:    v.ZonaRegistral,
		Precio:           v.Precio,
		Moneda:           v.Moneda,
		FormaPago:        v.FormaPago,
		MedioPago:        v.MedioPago,
	}
}
