package entity

import "time"

// Tipos de legalización de libros.
const (
	LegalizacionEmpastado    = "EMPASTADO"
	LegalizacionHojasSueltas = "HOJAS_SUELTAS"
)

// Libro legalización de apertura de libro.
type Libro struct {
	ID                string
	Numero            string
	Serie             string
	Anio              int
	Secuencia         int
	ClienteID         string
	TipoLibro         string
	NumeroLibro       int
	Folios            int
	TipoLegalizacion  string
	FechaIngreso      time.Time
	FechaLegalizacion *time.Time
	Observaciones     string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
