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

// LibroUseCase legalización de libros.
type LibroUseCase struct {
	repo     repository.LibroRepository
	clientes repository.ClienteRepository
	tx       repository.TxRunner
	metrics  CorrelativoMetrics
}

// NewLibroUseCase construye el caso de uso.
func NewLibroUseCase(repo repository.LibroRepository, clientes repository.ClienteRepository, tx repository.TxRunner) *LibroUseCase {
	return &LibroUseCase{repo: repo, clientes: clientes, tx: tx, metrics: nopMetrics{}}
}

// WithMetrics registra los correlativos asignados.
func (uc *LibroUseCase) WithMetrics(m CorrelativoMetrics) *LibroUseCase {
	if m != nil {
		uc.metrics = m
	}
	return uc
}

// Create registra la legalización con correlativo LB.
func (uc *LibroUseCase) Create(ctx context.Context, in dto.LibroRequest) (*dto.LibroResponse, error) {
	ingreso, err := fechaOHoy(in.FechaIngreso)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	l := &entity.Libro{
		ID:           uuid.New().String(),
		Serie:        correlativo.SerieLibro,
		Anio:         ingreso.Year(),
		FechaIngreso: ingreso,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.apply(ctx, l, in); err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		seq, numero, err := siguiente(ctx, repos, repository.TablaLibros, l.Serie, l.Anio)
		if err != nil {
			return err
		}
		l.Secuencia, l.Numero = seq, numero
		return repos.Libros.Create(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.IncCorrelativo(l.Serie)
	return toLibroResponse(l), nil
}

// GetByID obtiene una legalización.
func (uc *LibroUseCase) GetByID(ctx context.Context, id string) (*dto.LibroResponse, error) {
	l, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	return toLibroResponse(l), nil
}

// List lista legalizaciones; q busca por número, tipo de libro o cliente.
func (uc *LibroUseCase) List(ctx context.Context, pr dto.PageRequest) (*dto.ListResponse[dto.LibroResponse], error) {
	pr.DefaultPage()
	list, total, err := uc.repo.List(ctx, listFilter(pr))
	if err != nil {
		return nil, err
	}
	items := make([]dto.LibroResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLibroResponse(l))
	}
	return dto.NewList(items, pr, total), nil
}

// Update modifica la legalización.
func (uc *LibroUseCase) Update(ctx context.Context, id string, in dto.LibroRequest) (*dto.LibroResponse, error) {
	l, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	if in.FechaIngreso != "" {
		ingreso, err := fechaOHoy(in.FechaIngreso)
		if err != nil {
			return nil, err
		}
		if ingreso.Year() != l.Anio {
			return nil, invalid("fecha_ingreso debe ser del año %d", l.Anio)
		}
		l.FechaIngreso = ingreso
	}
	if err := uc.apply(ctx, l, in); err != nil {
		return nil, err
	}
	l.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return toLibroResponse(l), nil
}

// Delete elimina la legalización.
func (uc *LibroUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *LibroUseCase) apply(ctx context.Context, l *entity.Libro, in dto.LibroRequest) error {
	if in.Folios <= 0 {
		return invalid("folios debe ser mayor a cero")
	}
	cliente, err := uc.clientes.GetByID(ctx, in.ClienteID)
	if err != nil {
		return err
	}
	if cliente == nil {
		return invalid("cliente %s no existe", in.ClienteID)
	}
	legalizacion, err := fechaOpcional("fecha_legalizacion", in.FechaLegalizacion)
	if err != nil {
		return err
	}
	l.ClienteID = cliente.ID
	l.TipoLibro = in.TipoLibro
	l.NumeroLibro = in.NumeroLibro
	if l.NumeroLibro == 0 {
		l.NumeroLibro = 1
	}
	l.Folios = in.Folios
	l.TipoLegalizacion = orDefault(in.TipoLegalizacion, entity.LegalizacionEmpastado)
	l.FechaLegalizacion = legalizacion
	l.Observaciones = in.Observaciones
	return nil
}

func toLibroResponse(l *entity.Libro) *dto.LibroResponse {
	return &dto.LibroResponse{
		ID:                l.ID,
		Numero:            l.Numero,
		ClienteID:         l.ClienteID,
		TipoLibro:         l.TipoLibro,
		NumeroLibro:       l.NumeroLibro,
		Folios:            l.Folios,
		TipoLegalizacion:  l.TipoLegalizacion,
		FechaIngreso:      dto.FormatFecha(&l.FechaIngreso),
		FechaLegalizacion: dto.FormatFecha(l.FechaLegalizacion),
		Observaciones:     l.Observaciones,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}
