package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Resultados de la diligencia de una carta notarial.
const (
	CartaPendiente   = "PENDIENTE"
	CartaEntregada   = "ENTREGADA"
	CartaBajoPuerta  = "BAJO_PUERTA"
	CartaNoEntregada = "NO_ENTREGADA"
)

// Carta carta notarial.
type Carta struct {
	ID                    string
	Numero                string
	Serie                 string
	Anio                  int
	Secuencia             int
	FechaIngreso          time.Time
	RemitenteNombre       string
	RemitenteDocumento    string
	RemitenteDireccion    string
	DestinatarioNombre    string
	DestinatarioDireccion string
	DestinatarioDistrito  string
	Contenido             string
	FechaDiligencia       *time.Time
	Diligenciador         string
	Resultado             string
	Costo                 decimal.Decimal
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
