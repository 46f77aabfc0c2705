package repository

import (
	"context"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
)

// KardexRepository define el puerto de persistencia para Kardex, sus contratantes y su vehículo.
type KardexRepository interface {
	Create(ctx context.Context, k *entity.Kardex) error
	GetByID(ctx context.Context, id string) (*entity.Kardex, error)
	List(ctx context.Context, f KardexFilter) ([]*entity.Kardex, int, error)
	Update(ctx context.Context, k *entity.Kardex) error
	Delete(ctx context.Context, id string) error
	UpdateSISGENEstado(ctx context.Context, id, estado string) error

	// SearchSISGEN kardex con escritura en el rango, excluyendo anulados.
	SearchSISGEN(ctx context.Context, s SISGENSearch) ([]*entity.Kardex, error)

	AddContratante(ctx context.Context, c *entity.Contratante) error
	DeleteContratante(ctx context.Context, kardexID, contratanteID string) error
	// ListContratantes devuelve los contratantes con cliente y condición resueltos.
	ListContratantes(ctx context.Context, kardexID string) ([]*entity.ContratanteDetalle, error)

	GetVehiculo(ctx context.Context, kardexID string) (*entity.Vehiculo, error)
	SaveVehiculo(ctx context.Context, v *entity.Vehiculo) error
}
