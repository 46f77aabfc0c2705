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

// PermisoViajeUseCase permisos notariales de viaje de menores.
type PermisoViajeUseCase struct {
	repo     repository.PermisoViajeRepository
	clientes repository.ClienteRepository
	tx       repository.TxRunner
	metrics  CorrelativoMetrics
}

// NewPermisoViajeUseCase construye el caso de uso.
func NewPermisoViajeUseCase(repo repository.PermisoViajeRepository, clientes repository.ClienteRepository, tx repository.TxRunner) *PermisoViajeUseCase {
	return &PermisoViajeUseCase{repo: repo, clientes: clientes, tx: tx, metrics: nopMetrics{}}
}

// WithMetrics registra los correlativos asignados.
func (uc *PermisoViajeUseCase) WithMetrics(m CorrelativoMetrics) *PermisoViajeUseCase {
	if m != nil {
		uc.metrics = m
	}
	return uc
}

// Create registra el permiso con correlativo PV del año de ingreso.
func (uc *PermisoViajeUseCase) Create(ctx context.Context, in dto.PermisoViajeRequest) (*dto.PermisoViajeResponse, error) {
	ingreso, err := fechaOHoy(in.FechaIngreso)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.PermisoViaje{
		ID:           uuid.New().String(),
		Serie:        correlativo.SeriePermisoViaje,
		Anio:         ingreso.Year(),
		FechaIngreso: ingreso,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.apply(ctx, p, in); err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		seq, numero, err := siguiente(ctx, repos, repository.TablaPermisos, p.Serie, p.Anio)
		if err != nil {
			return err
		}
		p.Secuencia, p.Numero = seq, numero
		return repos.Permisos.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.IncCorrelativo(p.Serie)
	return toPermisoResponse(p), nil
}

// GetByID devuelve el permiso con sus participantes.
func (uc *PermisoViajeUseCase) GetByID(ctx context.Context, id string) (*dto.PermisoViajeResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPermisoResponse(p), nil
}

// List lista permisos; q busca por número, destino o participante.
func (uc *PermisoViajeUseCase) List(ctx context.Context, pr dto.PageRequest) (*dto.ListResponse[dto.PermisoViajeResponse], error) {
	pr.DefaultPage()
	list, total, err := uc.repo.List(ctx, listFilter(pr))
	if err != nil {
		return nil, err
	}
	items := make([]dto.PermisoViajeResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPermisoResponse(p))
	}
	return dto.NewList(items, pr, total), nil
}

// Update reemplaza datos y participantes; el número no cambia.
func (uc *PermisoViajeUseCase) Update(ctx context.Context, id string, in dto.PermisoViajeRequest) (*dto.PermisoViajeResponse, error) {
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
	return toPermisoResponse(p), nil
}

// Delete elimina el permiso.
func (uc *PermisoViajeUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// apply valida: al menos un OTORGANTE y un MENOR; el menor es persona natural; retorno posterior a la salida.
func (uc *PermisoViajeUseCase) apply(ctx context.Context, p *entity.PermisoViaje, in dto.PermisoViajeRequest) error {
	salida, err := fechaOpcional("fecha_salida", in.FechaSalida)
	if err != nil {
		return err
	}
	retorno, err := fechaOpcional("fecha_retorno", in.FechaRetorno)
	if err != nil {
		return err
	}
	if salida != nil && retorno != nil && retorno.Before(*salida) {
		return invalid("fecha_retorno es anterior a fecha_salida")
	}
	ps, err := resolverParticipantes(ctx, uc.clientes, in.Participantes, entity.RolOtorgante, entity.RolMenor, entity.RolAcompanante)
	if err != nil {
		return err
	}
	if entity.ContarRol(ps, entity.RolOtorgante) == 0 {
		return invalid("el permiso requiere al menos un OTORGANTE")
	}
	if entity.ContarRol(ps, entity.RolMenor) == 0 {
		return invalid("el permiso requiere al menos un MENOR")
	}
	for _, x := range ps {
		if x.Rol == entity.RolMenor && x.Cliente.EsJuridica() {
			return invalid("el MENOR %s debe ser persona natural", x.Cliente.NombreCompleto())
		}
	}
	p.Tipo = in.Tipo
	p.Destino = in.Destino
	p.MedioTransporte = in.MedioTransporte
	p.FechaSalida = salida
	p.FechaRetorno = retorno
	p.Motivo = in.Motivo
	p.Observaciones = in.Observaciones
	p.Participantes = ps
	return nil
}

func toPermisoResponse(p *entity.PermisoViaje) *dto.PermisoViajeResponse {
	return &dto.PermisoViajeResponse{
		ID:              p.ID,
		Numero:          p.Numero,
		Tipo:            p.Tipo,
		FechaIngreso:    dto.FormatFecha(&p.FechaIngreso),
		Destino:         p.Destino,
		MedioTransporte: p.MedioTransporte,
		FechaSalida:     dto.FormatFecha(p.FechaSalida),
		FechaRetorno:    dto.FormatFecha(p.FechaRetorno),
		Motivo:          p.Motivo,
		Observaciones:   p.Observaciones,
		Participantes:   toParticipantesResponse(p.Participantes),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
