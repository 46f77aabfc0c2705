package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// KardexPorTipo kardex ingresados de un tipo en un rango, con la suma de cuantías por moneda.
type KardexPorTipo struct {
	TipoKardex string
	Cantidad   int
	CuantiaPEN decimal.Decimal
	CuantiaUSD decimal.Decimal
}

// ConteoExtraprotocolar registros extraprotocolares ingresados en un rango.
type ConteoExtraprotocolar struct {
	PermisosViaje int
	Poderes       int
	Cartas        int
	Libros        int
}

// ConteoSISGEN kardex con escritura que aún no fueron aceptados por SISGEN.
type ConteoSISGEN struct {
	Pendientes int // NO_ENVIADO
	Observados int
	ConError   int
}

// ResumenRepository consultas de solo lectura para el resumen de actividad.
// Los kardex ANULADO no cuentan.
type ResumenRepository interface {
	KardexPorTipo(ctx context.Context, desde, hasta time.Time) ([]KardexPorTipo, error)
	Extraprotocolares(ctx context.Context, desde, hasta time.Time) (ConteoExtraprotocolar, error)
	EstadoSISGEN(ctx context.Context) (ConteoSISGEN, error)
}
