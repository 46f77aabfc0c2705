package repository

import "context"

// Tablas con correlativo propio.
const (
	TablaKardex   = "kardex"
	TablaPermisos = "permisos_viaje"
	TablaPoderes  = "poderes"
	TablaCartas   = "cartas"
	TablaLibros   = "libros"
)

// CorrelativoRepository asigna la siguiente secuencia de una serie en un año.
// Debe usarse dentro de la misma transacción que inserta el registro.
type CorrelativoRepository interface {
	Next(ctx context.Context, tabla, serie string, anio int) (int, error)
}

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Correlativo CorrelativoRepository
	Kardex      KardexRepository
	Permisos    PermisoViajeRepository
	Poderes     PoderRepository
	Cartas      CartaRepository
	Libros      LibroRepository
}

// TxRunner ejecuta fn en una transacción: commit si fn devuelve nil, rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
