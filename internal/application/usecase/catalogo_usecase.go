package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/domain"
	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

// CatalogoUseCase condiciones de intervención y tipos de acto.
type CatalogoUseCase struct {
	repo repository.CatalogoRepository
}

// NewCatalogoUseCase construye el caso de uso.
func NewCatalogoUseCase(repo repository.CatalogoRepository) *CatalogoUseCase {
	return &CatalogoUseCase{repo: repo}
}

// ListCondiciones devuelve el catálogo completo de condiciones.
func (uc *CatalogoUseCase) ListCondiciones(ctx context.Context) ([]dto.CondicionResponse, error) {
	list, err := uc.repo.ListCondiciones(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CondicionResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.CondicionResponse{
			Codigo:          c.Codigo,
			Masculino:       c.Masculino,
			Femenino:        c.Femenino,
			PluralMasculino: c.PluralMasculino,
			PluralFemenino:  c.PluralFemenino,
			Lado:            c.Lado,
			CodigoSISGEN:    c.CodigoSISGEN,
		})
	}
	return items, nil
}

// ListTiposActo lista tipos de acto, opcionalmente de un tipo de kardex.
func (uc *CatalogoUseCase) ListTiposActo(ctx context.Context, tipoKardex string) ([]dto.TipoActoResponse, error) {
	list, err := uc.repo.ListTiposActo(ctx, strings.ToUpper(tipoKardex))
	if err != nil {
		return nil, err
	}
	items := make([]dto.TipoActoResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTipoActoResponse(t))
	}
	return items, nil
}

// CreateTipoActo agrega un tipo de acto. domain.ErrDuplicate si el código existe.
func (uc *CatalogoUseCase) CreateTipoActo(ctx context.Context, in dto.TipoActoRequest) (*dto.TipoActoResponse, error) {
	t := &entity.TipoActo{Codigo: strings.ToUpper(in.Codigo), Activo: true}
	existing, err := uc.repo.GetTipoActo(ctx, t.Codigo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	applyTipoActo(t, in)
	if err := uc.repo.CreateTipoActo(ctx, t); err != nil {
		return nil, err
	}
	return toTipoActoResponse(t), nil
}

// UpdateTipoActo actualiza el tipo de acto del código dado (el código no cambia).
func (uc *CatalogoUseCase) UpdateTipoActo(ctx context.Context, codigo string, in dto.TipoActoRequest) (*dto.TipoActoResponse, error) {
	t, err := uc.repo.GetTipoActo(ctx, strings.ToUpper(codigo))
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	applyTipoActo(t, in)
	if err := uc.repo.UpdateTipoActo(ctx, t); err != nil {
		return nil, err
	}
	return toTipoActoResponse(t), nil
}

func applyTipoActo(t *entity.TipoActo, in dto.TipoActoRequest) {
	t.Descripcion = strings.TrimSpace(in.Descripcion)
	t.TipoKardex = in.TipoKardex
	t.CodigoSISGEN = in.CodigoSISGEN
	t.Plantilla = in.Plantilla
	if in.Activo != nil {
		t.Activo = *in.Activo
	}
}

func toTipoActoResponse(t *entity.TipoActo) *dto.TipoActoResponse {
	return &dto.TipoActoResponse{
		Codigo:       t.Codigo,
		Descripcion:  t.Descripcion,
		TipoKardex:   t.TipoKardex,
		CodigoSISGEN: t.CodigoSISGEN,
		Plantilla:    t.Plantilla,
		Activo:       t.Activo,
	}
}
