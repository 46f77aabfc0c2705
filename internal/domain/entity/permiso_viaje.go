package entity

import "time"

// Tipos de permiso de viaje.
const (
	PermisoInterior = "INTERIOR"
	PermisoExterior = "EXTERIOR"
)

// Roles en un permiso de viaje.
const (
	RolOtorgante   = "OTORGANTE"
	RolMenor       = "MENOR"
	RolAcompanante = "ACOMPANANTE"
)

// PermisoViaje permiso notarial de viaje de menores.
type PermisoViaje struct {
	ID              string
	Numero          string
	Serie           string
	Anio            int
	Secuencia       int
	Tipo            string
	FechaIngreso    time.Time
	Destino         string
	MedioTransporte string
	FechaSalida     *time.Time
	FechaRetorno    *time.Time
	Motivo          string
	Observaciones   string
	Participantes   []Participante
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Participante cliente con un rol dentro de un permiso o poder.
type Participante struct {
	ClienteID string
	Rol       string
	Cliente   *Cliente // cargado en lecturas de detalle
}

// ContarRol cuenta los participantes con el rol dado.
func ContarRol(ps []Participante, rol string) int {
	n := 0
	for _, p := range ps {
		if p.Rol == rol {
			n++
		}
	}
	return n
}
