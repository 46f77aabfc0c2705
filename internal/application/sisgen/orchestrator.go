// Package sisgen orquesta la búsqueda, la validación y el envío de kardex al web service SISGEN:
//
//	búsqueda → validación → XML → digest C14N → SOAP → historial + estado del kardex
package sisgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/domain"
	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
	infrasisgen "github.com/jhoicas/notaria-api/internal/infrastructure/sisgen"
	"github.com/jhoicas/notaria-api/pkg/logger"
)

// XMLBuilder arma el <documentoNotarial> de un kardex.
type XMLBuilder interface {
	Build(bc *infrasisgen.BuildContext) ([]byte, error)
}

// Metrics cuenta los envíos por estado; *metrics.Metrics lo implementa.
type Metrics interface {
	IncEnvioSISGEN(estado string)
}

type nopMetrics struct{}

func (nopMetrics) IncEnvioSISGEN(string) {}

// Config modo de operación.
//   - "dev"  → arma y valida el XML pero NO envía; el envío queda SIMULADO.
//   - "test" → ambiente de pruebas SISGEN.
//   - "prod" → producción.
type Config struct {
	Env         string
	Concurrency int
}

// Orchestrator exporta kardex a SISGEN.
type Orchestrator struct {
	kardexRepo   repository.KardexRepository
	catalogoRepo repository.CatalogoRepository
	notariaRepo  repository.NotariaRepository
	envioRepo    repository.EnvioSISGENRepository
	builder      XMLBuilder
	submitter    infrasisgen.Submitter // nil en dev
	cfg          Config
	metrics      Metrics
	log          *logger.Logger
	now          func() time.Time
}

// NewOrchestrator construye el orquestador. submitter puede ser nil solo con Env "dev".
func NewOrchestrator(
	kardexRepo repository.KardexRepository,
	catalogoRepo repository.CatalogoRepository,
	notariaRepo repository.NotariaRepository,
	envioRepo repository.EnvioSISGENRepository,
	builder XMLBuilder,
	submitter infrasisgen.Submitter,
	cfg Config,
	log *logger.Logger,
) *Orchestrator {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Orchestrator{
		kardexRepo:   kardexRepo,
		catalogoRepo: catalogoRepo,
		notariaRepo:  notariaRepo,
		envioRepo:    envioRepo,
		builder:      builder,
		submitter:    submitter,
		cfg:          cfg,
		metrics:      nopMetrics{},
		log:          log.Component("sisgen"),
		now:          time.Now,
	}
}

// WithMetrics asigna el colector de métricas.
func (o *Orchestrator) WithMetrics(m Metrics) *Orchestrator {
	if m != nil {
		o.metrics = m
	}
	return o
}

func (o *Orchestrator) dev() bool {
	return o.cfg.Env == infrasisgen.EnvDev
}

// preparado datos de un kardex listos para armar el XML.
type preparado struct {
	kardex       *entity.Kardex
	acto         *entity.TipoActo
	contratantes []*entity.ContratanteDetalle
	vehiculo     *entity.Vehiculo
}

func (o *Orchestrator) preparar(ctx context.Context, k *entity.Kardex) (*preparado, error) {
	p := &preparado{kardex: k}
	var err error
	if p.acto, err = o.catalogoRepo.GetTipoActo(ctx, k.ActoCodigo); err != nil {
		return nil, err
	}
	if p.contratantes, err = o.kardexRepo.ListContratantes(ctx, k.ID); err != nil {
		return nil, err
	}
	if k.TipoKardex == entity.KardexVehicular {
		if p.vehiculo, err = o.kardexRepo.GetVehiculo(ctx, k.ID); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// observaciones problemas que impiden exportar el kardex; vacío si está completo.
func (p *preparado) observaciones() []string {
	k := p.kardex
	var obs []string
	switch {
	case p.acto == nil:
		obs = append(obs, fmt.Sprintf("el acto %s no existe en el catálogo", k.ActoCodigo))
	case p.acto.CodigoSISGEN == "":
		obs = append(obs, fmt.Sprintf("el acto %s no tiene código SISGEN", p.acto.Codigo))
	}
	if k.NumeroEscritura == "" || k.FechaEscritura == nil {
		obs = append(obs, "falta número o fecha de escritura")
	}
	if k.FolioInicial <= 0 || k.FolioFinal <= 0 {
		obs = append(obs, "faltan los folios")
	}
	if len(p.contratantes) == 0 {
		obs = append(obs, "el kardex no tiene contratantes")
	}
	for _, c := range p.contratantes {
		nombre := c.Cliente.NombreCompleto()
		if c.Cliente.NumeroDocumento == "" {
			obs = append(obs, fmt.Sprintf("%s no tiene documento de identidad", nombre))
		}
		if !c.Cliente.EsJuridica() && c.Cliente.Sexo == "" {
			obs = append(obs, fmt.Sprintf("%s no tiene sexo registrado", nombre))
		}
		if c.Condicion.CodigoSISGEN == "" {
			obs = append(obs, fmt.Sprintf("la condición %s no tiene código SISGEN", c.CondicionCodigo))
		}
	}
	if k.TipoKardex == entity.KardexVehicular && p.vehiculo == nil {
		obs = append(obs, "el kardex vehicular no tiene vehículo registrado")
	}
	return obs
}

// Search kardex con escritura en el rango y sus observaciones bloqueantes.
func (o *Orchestrator) Search(ctx context.Context, in dto.SISGENBusquedaRequest) ([]dto.SISGENKardexResult, error) {
	desde, err := dto.ParseFecha(in.Desde)
	if err != nil || desde == nil {
		return nil, fmt.Errorf("%w: fecha desde inválida", domain.ErrInvalidInput)
	}
	hasta, err := dto.ParseFecha(in.Hasta)
	if err != nil || hasta == nil {
		return nil, fmt.Errorf("%w: fecha hasta inválida", domain.ErrInvalidInput)
	}
	if hasta.Before(*desde) {
		return nil, fmt.Errorf("%w: la fecha hasta es anterior a desde", domain.ErrInvalidInput)
	}

	list, err := o.kardexRepo.SearchSISGEN(ctx, repository.SISGENSearch{
		Desde:        *desde,
		Hasta:        *hasta,
		TipoKardex:   in.TipoKardex,
		EstadoSISGEN: in.EstadoSISGEN,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.SISGENKardexResult, 0, len(list))
	for _, k := range list {
		p, err := o.preparar(ctx, k)
		if err != nil {
			return nil, err
		}
		obs := p.observaciones()
		if obs == nil {
			obs = []string{}
		}
		out = append(out, dto.SISGENKardexResult{
			KardexID:        k.ID,
			Numero:          k.Numero,
			TipoKardex:      k.TipoKardex,
			ActoCodigo:      k.ActoCodigo,
			NumeroEscritura: k.NumeroEscritura,
			FechaEscritura:  dto.FormatFecha(k.FechaEscritura),
			SISGENEstado:    k.SISGENEstado,
			Exportable:      len(obs) == 0,
			Observaciones:   obs,
		})
	}
	return out, nil
}

// PreviewXML XML que se enviaría para el kardex, aunque tenga observaciones.
func (o *Orchestrator) PreviewXML(ctx context.Context, kardexID string) ([]byte, error) {
	n, err := o.notaria(ctx)
	if err != nil {
		return nil, err
	}
	k, err := o.kardexRepo.GetByID(ctx, kardexID)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, domain.ErrNotFound
	}
	p, err := o.preparar(ctx, k)
	if err != nil {
		return nil, err
	}
	if p.acto == nil {
		return nil, fmt.Errorf("%w: el acto %s no existe en el catálogo", domain.ErrMissingData, k.ActoCodigo)
	}
	return o.builder.Build(p.buildContext(n))
}

func (p *preparado) buildContext(n *entity.Notaria) *infrasisgen.BuildContext {
	return &infrasisgen.BuildContext{
		Notaria:      n,
		Kardex:       p.kardex,
		Acto:         p.acto,
		Contratantes: p.contratantes,
		Vehiculo:     p.vehiculo,
	}
}

func (o *Orchestrator) notaria(ctx context.Context) (*entity.Notaria, error) {
	n, err := o.notariaRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fmt.Errorf("%w: registre los datos de la notaría", domain.ErrMissingData)
	}
	if n.CodigoSISGEN == "" {
		return nil, fmt.Errorf("%w: la notaría no tiene código SISGEN", domain.ErrMissingData)
	}
	return n, nil
}

// Export envía los kardex con concurrencia acotada. Un kardex que falla no detiene a los demás;
// los resultados respetan el orden del request. Si ningún envío llega a SISGEN por fallas de
// transporte devuelve ErrSISGENUnavailable junto con los resultados.
func (o *Orchestrator) Export(ctx context.Context, userID string, in dto.SISGENExportRequest) (*dto.SISGENExportResponse, error) {
	if len(in.KardexIDs) == 0 {
		return nil, fmt.Errorf("%w: kardex_ids vacío", domain.ErrInvalidInput)
	}
	if !o.dev() && o.submitter == nil {
		return nil, fmt.Errorf("%w: cliente SOAP no configurado", domain.ErrSISGENUnavailable)
	}
	n, err := o.notaria(ctx)
	if err != nil {
		return nil, err
	}

	resultados := make([]dto.SISGENExportResult, len(in.KardexIDs))
	transporte := make([]bool, len(in.KardexIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.Concurrency)
	for i, id := range in.KardexIDs {
		i, id := i, id
		g.Go(func() error {
			resultados[i], transporte[i] = o.exportar(gctx, userID, id, n)
			return nil
		})
	}
	_ = g.Wait()

	resp := &dto.SISGENExportResponse{Resultados: resultados}
	fallasTransporte := 0
	for i, r := range resultados {
		switch r.Estado {
		case entity.EnvioAceptado, entity.EnvioSimulado, entity.EnvioSinCambios:
			resp.Enviados++
		default:
			resp.Fallidos++
		}
		if transporte[i] {
			fallasTransporte++
		}
	}
	if fallasTransporte == len(resultados) {
		return resp, fmt.Errorf("%w: %s", domain.ErrSISGENUnavailable, resultados[0].Mensaje)
	}
	return resp, nil
}

// exportar procesa un kardex; el bool indica una falla de transporte hacia SISGEN.
func (o *Orchestrator) exportar(ctx context.Context, userID, kardexID string, n *entity.Notaria) (dto.SISGENExportResult, bool) {
	res := dto.SISGENExportResult{KardexID: kardexID, Estado: entity.EnvioError}
	log := o.log.Zerolog().With().Str("kardex_id", kardexID).Logger()

	k, err := o.kardexRepo.GetByID(ctx, kardexID)
	if err != nil {
		res.Mensaje = err.Error()
		return res, false
	}
	if k == nil {
		res.Mensaje = "kardex no encontrado"
		return res, false
	}
	res.Numero = k.Numero
	if k.EsAnulado() {
		res.Mensaje = "el kardex está anulado"
		return res, false
	}

	p, err := o.preparar(ctx, k)
	if err != nil {
		res.Mensaje = err.Error()
		return res, false
	}
	if obs := p.observaciones(); len(obs) > 0 {
		res.Mensaje = "datos incompletos para SISGEN"
		res.Observaciones = obs
		return res, false
	}

	xmlBytes, err := o.builder.Build(p.buildContext(n))
	if err != nil {
		res.Mensaje = err.Error()
		return res, false
	}
	digest, err := infrasisgen.Digest(xmlBytes)
	if err != nil {
		res.Mensaje = err.Error()
		return res, false
	}
	res.Digest = digest

	last, err := o.envioRepo.LastAceptado(ctx, k.ID)
	if err != nil {
		res.Mensaje = err.Error()
		return res, false
	}
	if last != nil && last.Digest == digest {
		res.Estado = entity.EnvioSinCambios
		res.NumeroRegistro = last.NumeroRegistro
		res.EnvioID = last.ID
		o.metrics.IncEnvioSISGEN(entity.EnvioSinCambios)
		log.Info().Str("numero", k.Numero).Msg("sin cambios desde el último envío aceptado")
		return res, false
	}

	envio := &entity.EnvioSISGEN{
		ID:        uuid.New().String(),
		KardexID:  k.ID,
		Digest:    digest,
		XML:       string(xmlBytes),
		UsuarioID: userID,
		Fecha:     o.now(),
	}
	falloTransporte := false
	if o.dev() {
		envio.Estado = entity.EnvioSimulado
		envio.Mensaje = "SISGEN_ENV=dev: envío no realizado"
	} else {
		sr, err := o.submitter.Submit(ctx, xmlBytes)
		switch {
		case err != nil:
			falloTransporte = true
			envio.Estado = entity.EnvioError
			envio.Mensaje = err.Error()
		case sr.Aceptado:
			envio.Estado = entity.EnvioAceptado
		default:
			envio.Estado = entity.EnvioObservado
		}
		if sr != nil {
			envio.Codigo = sr.Codigo
			envio.Mensaje = sr.Mensaje
			envio.NumeroRegistro = sr.NumeroRegistro
			envio.Observaciones = sr.Observaciones
		}
	}

	if err := o.envioRepo.Create(ctx, envio); err != nil {
		log.Error().Err(err).Msg("no se pudo registrar el envío")
		res.Mensaje = err.Error()
		return res, falloTransporte
	}
	if err := o.kardexRepo.UpdateSISGENEstado(ctx, k.ID, envio.EstadoKardex()); err != nil && !errors.Is(err, domain.ErrNotFound) {
		log.Error().Err(err).Msg("no se pudo actualizar el estado SISGEN del kardex")
	}
	o.metrics.IncEnvioSISGEN(envio.Estado)

	ev := log.Info()
	if envio.Estado != entity.EnvioAceptado && envio.Estado != entity.EnvioSimulado {
		ev = log.Warn()
	}
	ev.Str("numero", k.Numero).Str("estado", envio.Estado).Str("codigo", envio.Codigo).Msg("envío SISGEN")

	res.Estado = envio.Estado
	res.Codigo = envio.Codigo
	res.Mensaje = envio.Mensaje
	res.NumeroRegistro = envio.NumeroRegistro
	res.Observaciones = envio.Observaciones
	res.EnvioID = envio.ID
	return res, falloTransporte
}

// History historial de envíos, más reciente primero; kardexID vacío lista todos.
func (o *Orchestrator) History(ctx context.Context, kardexID string, p dto.PageRequest) ([]dto.EnvioSISGENResponse, error) {
	p.DefaultPage()
	list, err := o.envioRepo.ListByKardex(ctx, kardexID, p.Limit, p.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EnvioSISGENResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.EnvioSISGENResponse{
			ID:             e.ID,
			KardexID:       e.KardexID,
			Estado:         e.Estado,
			Codigo:         e.Codigo,
			Mensaje:        e.Mensaje,
			NumeroRegistro: e.NumeroRegistro,
			Observaciones:  e.Observaciones,
			Digest:         e.Digest,
			UsuarioID:      e.UsuarioID,
			Fecha:          e.Fecha,
		})
	}
	return out, nil
}
