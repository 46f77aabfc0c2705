package entity

import (
	"strings"
	"time"
)

// Tipos de persona.
const (
	PersonaNatural  = "N"
	PersonaJuridica = "J"
)

// Sexo de personas naturales.
const (
	SexoMasculino = "M"
	SexoFemenino  = "F"
)

// Cliente persona natural o jurídica que interviene en los instrumentos.
type Cliente struct {
	ID              string
	TipoPersona     string // N, J
	TipoDocumento   string // DNI, RUC, CE, PAS, CPP
	NumeroDocumento string
	ApellidoPaterno string
	ApellidoMaterno string
	Nombres         string
	RazonSocial     string
	Sexo            string // M, F (solo personas naturales)
	EstadoCivil     string
	Nacionalidad    string
	Profesion       string
	Direccion       string
	Ubigeo          string
	Distrito        string
	Provincia       string
	Departamento    string
	Telefono        string
	Email           string
	FechaNacimiento *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EsJuridica indica si el cliente es una persona jurídica.
func (c *Cliente) EsJuridica() bool {
	return c.TipoPersona == PersonaJuridica
}

// EsFemenino indica si el cliente es una persona natural de sexo femenino.
func (c *Cliente) EsFemenino() bool {
	return c.TipoPersona == PersonaNatural && c.Sexo == SexoFemenino
}

// NombreCompleto "NOMBRES APELLIDO_PATERNO APELLIDO_MATERNO" o la razón social.
func (c *Cliente) NombreCompleto() string {
	if c.EsJuridica() {
		return strings.TrimSpace(c.RazonSocial)
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Nombres, c.ApellidoPaterno, c.ApellidoMaterno} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// EdadEn edad en años cumplidos a la fecha dada; -1 si no se conoce la fecha de nacimiento.
func (c *Cliente) EdadEn(t time.Time) int {
	if c.FechaNacimiento == nil {
		return -1
	}
	b := *c.FechaNacimiento
	age := t.Year() - b.Year()
	if t.Month() < b.Month() || (t.Month() == b.Month() && t.Day() < b.Day()) {
		age--
	}
	return age
}
