package entity

import "time"

// Tipos de poder fuera de registro.
const (
	PoderONP      = "ONP"
	PoderEsSalud  = "ESSALUD"
	PoderBancario = "BANCARIO"
	PoderGeneral  = "GENERAL"
)

// Roles en un poder.
const (
	RolPoderdante = "PODERDANTE"
	RolApoderado  = "APODERADO"
)

// Poder poder extraprotocolar.
type Poder struct {
	ID            string
	Numero        string
	Serie         string
	Anio          int
	Secuencia     int
	Tipo          string
	FechaIngreso  time.Time
	Facultades    string
	VigenciaHasta *time.Time
	Observaciones string
	Participantes []Participante
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
