package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/domain"
	"github.com/jhoicas/notaria-api/internal/domain/correlativo"
	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

// PoderUseCase poderes fuera de registro.
type PoderUseCase struct {
	repo     repository.PoderRepository
	clientes repository.ClienteRepository
	tx       repository.TxRunner
	metrics  CorrelativoMetrics
}

// NewPoderUseCase construye el caso de uso.
func NewPoderUseCase(repo repository.PoderRepository, clientes repository.ClienteRepository, tx repository.TxRunner) *PoderUseCase {
	return &PoderUseCase{repo: repo, clientes: clientes, tx: tx, metrics: nopMetrics{}}
}

// WithMetrics registra los correlativos asignados.
func (uc *PoderUseCase) WithMetrics(m CorrelativoMetrics) *PoderUseCase {
	if m != nil {
		uc.metrics = m
	}
	return uc
}

// Create registra el poder con correlativo PD del año de ingreso.
func (uc *PoderUseCase) Create(ctx context.Context, in dto.PoderRequest) (*dto.PoderResponse, error) {
	ingreso, err := fechaOHoy(in.FechaIngreso)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Poder{
		ID:           uuid.New().String(),
		Serie:        correlativo.SeriePoder,
		Anio:         ingreso.Year(),
		FechaIngreso: ingreso,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.apply(ctx, p, in); err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		seq, numero, err := siguiente(ctx, repos, repository.TablaPoderes, p.Serie, p.Anio)
		if err != nil {
			return err
		}
		p.Secuencia, p.Numero = seq, numero
		return repos.Poderes.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.IncCorrelativo(p.Serie)
	return toPoderResponse(p), nil
}

// GetByID devuelve el poder con sus participantes.
func (uc *PoderUseCase) GetByID(ctx context.Context, id string) (*dto.PoderResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPoderResponse(p), nil
}

// List lista poderes.
func (uc *PoderUseCase) List(ctx context.Context, pr dto.PageRequest) (*dto.ListResponse[dto.PoderResponse], error) {
	pr.DefaultPage()
	list, total, err := uc.repo.List(ctx, listFilter(pr))
	if err != nil {
		return nil, err
	}
	items := make([]dto.PoderResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPoderResponse(p))
	}
	return dto.NewList(items, pr, total), nil
}

// Update reemplaza datos y participantes.
func (uc *PoderUseCase) Update(ctx context.Context, id string, in dto.PoderRequest) (*dto.PoderResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.FechaIngreso != "" {
		ingreso, err := fechaOHoy(in.FechaIngreso)
		if err != nil {
			return nil, err
		}
		if ingreso.Year() != p.Anio {
			return nil, invalid("fecha_ingreso debe ser del año %d", p.Anio)
		}
		p.FechaIngreso = ingreso
	}
	if err := uc.apply(ctx, p, in); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPoderResponse(p), nil
}

// Delete elimina el poder.
func (uc *PoderUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *PoderUseCase) apply(ctx context.Context, p *entity.Poder, in dto.PoderRequest) error {
	vigencia, err := fechaOpcional("vigencia_hasta", in.VigenciaHasta)
	if err != nil {
		return err
	}
	if vigencia != nil && vigencia.Before(p.FechaIngreso) {
		return invalid("vigencia_hasta es anterior a la fecha de ingreso")
	}
	ps, err := resolverParticipantes(ctx, uc.clientes, in.Participantes, entity.RolPoderdante, entity.RolApoderado)
	if err != nil {
		return err
	}
	if entity.ContarRol(ps, entity.RolPoderdante) == 0 {
		return invalid("el poder requiere al menos un PODERDANTE")
	}
	if entity.ContarRol(ps, entity.RolApoderado) == 0 {
		return invalid("el poder requiere al menos un APODERADO")
	}
	p.Tipo = in.Tipo
	p.Facultades = strings.TrimSpace(in.Facultades)
	p.VigenciaHasta = vigencia
	p.Observaciones = in.Observaciones
	p.Participantes = ps
	return nil
}

func toPoderResponse(p *entity.Poder) *dto.PoderResponse {
	return &dto.PoderResponse{
		ID:            p.ID,
		Numero:        p.Numero,
		Tipo:          p.Tipo,
		FechaIngreso:  dto.FormatFecha(&p.FechaIngreso),
		Facultades:    p.Facultades,
		VigenciaHasta: dto.FormatFecha(p.VigenciaHasta),
		Observaciones: p.Observaciones,
		Participantes: toParticipantesResponse(p.Participantes),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
