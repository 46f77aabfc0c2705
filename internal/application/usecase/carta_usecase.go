package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/domain"
	"github.com/jhoicas/notaria-api/internal/domain/correlativo"
	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

// CartaUseCase cartas notariales y su diligenciamiento.
type CartaUseCase struct {
	repo    repository.CartaRepository
	tx      repository.TxRunner
	metrics CorrelativoMetrics
}

// NewCartaUseCase construye el caso de uso.
func NewCartaUseCase(repo repository.CartaRepository, tx repository.TxRunner) *CartaUseCase {
	return &CartaUseCase{repo: repo, tx: tx, metrics: nopMetrics{}}
}

// WithMetrics registra los correlativos asignados.
func (uc *CartaUseCase) WithMetrics(m CorrelativoMetrics) *CartaUseCase {
	if m != nil {
		uc.metrics = m
	}
	return uc
}

// Create registra la carta (resultado PENDIENTE) con correlativo CN.
func (uc *CartaUseCase) Create(ctx context.Context, in dto.CartaRequest) (*dto.CartaResponse, error) {
	ingreso, err := fechaOHoy(in.FechaIngreso)
	if err != nil {
		return nil, err
	}
	if in.Costo.IsNegative() {
		return nil, invalid("costo no puede ser negativo")
	}
	now := time.Now()
	c := &entity.Carta{
		ID:           uuid.New().String(),
		Serie:        correlativo.SerieCarta,
		Anio:         ingreso.Year(),
		FechaIngreso: ingreso,
		Resultado:    entity.CartaPendiente,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	applyCarta(c, in)
	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		seq, numero, err := siguiente(ctx, repos, repository.TablaCartas, c.Serie, c.Anio)
		if err != nil {
			return err
		}
		c.Secuencia, c.Numero = seq, numero
		return repos.Cartas.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.IncCorrelativo(c.Serie)
	return toCartaResponse(c), nil
}

// GetByID obtiene una carta.
func (uc *CartaUseCase) GetByID(ctx context.Context, id string) (*dto.CartaResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCartaResponse(c), nil
}

// List lista cartas; q busca por número, remitente o destinatario.
func (uc *CartaUseCase) List(ctx context.Context, pr dto.PageRequest) (*dto.ListResponse[dto.CartaResponse], error) {
	pr.DefaultPage()
	list, total, err := uc.repo.List(ctx, listFilter(pr))
	if err != nil {
		return nil, err
	}
	items := make([]dto.CartaResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCartaResponse(c))
	}
	return dto.NewList(items, pr, total), nil
}

// Update modifica los datos de la carta; la diligencia se registra aparte.
func (uc *CartaUseCase) Update(ctx context.Context, id string, in dto.CartaRequest) (*dto.CartaResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Costo.IsNegative() {
		return nil, invalid("costo no puede ser negativo")
	}
	if in.FechaIngreso != "" {
		ingreso, err := fechaOHoy(in.FechaIngreso)
		if err != nil {
			return nil, err
		}
		if ingreso.Year() != c.Anio {
			return nil, invalid("fecha_ingreso debe ser del año %d", c.Anio)
		}
		c.FechaIngreso = ingreso
	}
	applyCarta(c, in)
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCartaResponse(c), nil
}

// Diligencia registra la entrega de la carta.
func (uc *CartaUseCase) Diligencia(ctx context.Context, id string, in dto.DiligenciaRequest) (*dto.CartaResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	fecha, err := fechaOpcional("fecha_diligencia", in.FechaDiligencia)
	if err != nil {
		return nil, err
	}
	if fecha == nil {
		return nil, invalid("fecha_diligencia es obligatoria")
	}
	if fecha.Before(c.FechaIngreso) {
		return nil, invalid("la diligencia no puede ser anterior al ingreso de la carta")
	}
	c.FechaDiligencia = fecha
	c.Diligenciador = in.Diligenciador
	c.Resultado = in.Resultado
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCartaResponse(c), nil
}

// Delete elimina la carta.
func (uc *CartaUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *CartaUseCase) get(ctx context.Context, id string) (*entity.Carta, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func applyCarta(c *entity.Carta, in dto.CartaRequest) {
	c.RemitenteNombre = in.RemitenteNombre
	c.RemitenteDocumento = in.RemitenteDocumento
	c.RemitenteDireccion = in.RemitenteDireccion
	c.DestinatarioNombre = in.DestinatarioNombre
	c.DestinatarioDireccion = in.DestinatarioDireccion
	c.DestinatarioDistrito = in.DestinatarioDistrito
	c.Contenido = in.Contenido
	c.Costo = in.Costo
}

func toCartaResponse(c *entity.Carta) *dto.CartaResponse {
	return &dto.CartaResponse{
		ID:                    c.ID,
		Numero:                c.Numero,
		FechaIngreso:          dto.FormatFecha(&c.FechaIngreso),
		RemitenteNombre:       c.RemitenteNombre,
		RemitenteDocumento:    c.RemitenteDocumento,
		RemitenteDireccion:    c.RemitenteDireccion,
		DestinatarioNombre:    c.DestinatarioNombre,
		DestinatarioDireccion: c.DestinatarioDireccion,
		DestinatarioDistrito:  c.DestinatarioDistrito,
		Contenido:             c.Contenido,
		FechaDiligencia:       dto.FormatFecha(c.FechaDiligencia),
		Diligenciador:         c.Diligenciador,
		Resultado:             c.Resultado,
		Costo:                 c.Costo,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}
