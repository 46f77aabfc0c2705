package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/domain"
	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
	"github.com/jhoicas/notaria-api/pkg/sisgen"
)

// NotariaUseCase datos de la notaría (una sola fila).
type NotariaUseCase struct {
	repo repository.NotariaRepository
}

// NewNotariaUseCase construye el caso de uso.
func NewNotariaUseCase(repo repository.NotariaRepository) *NotariaUseCase {
	return &NotariaUseCase{repo: repo}
}

// Get devuelve los datos registrados; ErrNotFound si aún no existen.
func (uc *NotariaUseCase) Get(ctx context.Context) (*dto.NotariaResponse, error) {
	n, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	return toNotariaResponse(n), nil
}

// Save crea o reemplaza los datos de la notaría.
func (uc *NotariaUseCase) Save(ctx context.Context, in dto.NotariaRequest) (*dto.NotariaResponse, error) {
	if in.RUC != "" {
		if err := sisgen.ValidateRUC(in.RUC); err != nil {
			return nil, invalid("%v", err)
		}
	}
	n, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if n == nil {
		n = &entity.Notaria{ID: uuid.New().String(), CreatedAt: now}
	}
	n.Nombre = in.Nombre
	n.Notario = in.Notario
	n.Colegiatura = in.Colegiatura
	n.RUC = in.RUC
	n.Direccion = in.Direccion
	n.Distrito = in.Distrito
	n.Provincia = in.Provincia
	n.Departamento = in.Departamento
	n.Telefono = in.Telefono
	n.Email = in.Email
	n.CodigoSISGEN = in.CodigoSISGEN
	n.UpdatedAt = now
	if err := uc.repo.Save(ctx, n); err != nil {
		return nil, err
	}
	return toNotariaResponse(n), nil
}

func toNotariaResponse(n *entity.Notaria) *dto.NotariaResponse {
	return &dto.NotariaResponse{
		ID:           n.ID,
		Nombre:       n.Nombre,
		Notario:      n.Notario,
		Colegiatura:  n.Colegiatura,
		RUC:          n.RUC,
		Direccion:    n.Direccion,
		Distrito:     n.Distrito,
		Provincia:    n.Provincia,
		Departamento: n.Departamento,
		Telefono:     n.Telefono,
		Email:        n.Email,
		CodigoSISGEN: n.CodigoSISGEN,
	}
}
