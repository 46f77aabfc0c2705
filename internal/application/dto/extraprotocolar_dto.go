package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParticipanteRequest cliente con su rol en un permiso o poder.
type ParticipanteRequest struct {
	ClienteID string `json:"cliente_id" validate:"required,uuid"`
	Rol       string `json:"rol" validate:"required"`
}

// ParticipanteResponse participante con datos básicos del cliente.
type ParticipanteResponse struct {
	ClienteID       string `json:"cliente_id"`
	Rol             string `json:"rol"`
	Nombre          string `json:"nombre,omitempty"`
	TipoDocumento   string `json:"tipo_documento,omitempty"`
	NumeroDocumento string `json:"numero_documento,omitempty"`
}

// PermisoViajeRequest body de POST/PUT /api/permisos-viaje.
type PermisoViajeRequest struct {
	Tipo            string                `json:"tipo" validate:"required,oneof=INTERIOR EXTERIOR"`
	FechaIngreso    string                `json:"fecha_ingreso" validate:"omitempty,datetime=2006-01-02"`
	Destino         string                `json:"destino" validate:"required,max=200"`
	MedioTransporte string                `json:"medio_transporte" validate:"omitempty,max=60"`
	FechaSalida     string                `json:"fecha_salida" validate:"omitempty,datetime=2006-01-02"`
	FechaRetorno    string                `json:"fecha_retorno" validate:"omitempty,datetime=2006-01-02"`
	Motivo          string                `json:"motivo" validate:"omitempty,max=300"`
	Observaciones   string                `json:"observaciones"`
	Participantes   []ParticipanteRequest `json:"participantes" validate:"required,min=2,dive"`
}

// PermisoViajeResponse permiso de viaje.
type PermisoViajeResponse struct {
	ID              string                 `json:"id"`
	Numero          string                 `json:"numero"`
	Tipo            string                 `json:"tipo"`
	FechaIngreso    string                 `json:"fecha_ingreso"`
	Destino         string                 `json:"destino"`
	MedioTransporte string                 `json:"medio_transporte,omitempty"`
	FechaSalida     string                 `json:"fecha_salida,omitempty"`
	FechaRetorno    string                 `json:"fecha_retorno,omitempty"`
	Motivo          string                 `json:"motivo,omitempty"`
	Observaciones   string                 `json:"observaciones,omitempty"`
	Participantes   []ParticipanteResponse `json:"participantes,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// PoderRequest body de POST/PUT /api/poderes.
type PoderRequest struct {
	Tipo          string                `json:"tipo" validate:"required,oneof=ONP ESSALUD BANCARIO GENERAL"`
	FechaIngreso  string                `json:"fecha_ingreso" validate:"omitempty,datetime=2006-01-02"`
	Facultades    string                `json:"facultades" validate:"required"`
	VigenciaHasta string                `json:"vigencia_hasta" validate:"omitempty,datetime=2006-01-02"`
	Observaciones string                `json:"observaciones"`
	Participantes []ParticipanteRequest `json:"participantes" validate:"required,min=2,dive"`
}

// PoderResponse poder fuera de registro.
type PoderResponse struct {
	ID            string                 `json:"id"`
	Numero        string                 `json:"numero"`
	Tipo          string                 `json:"tipo"`
	FechaIngreso  string                 `json:"fecha_ingreso"`
	Facultades    string                 `json:"facultades"`
	VigenciaHasta string                 `json:"vigencia_hasta,omitempty"`
	Observaciones string                 `json:"observaciones,omitempty"`
	Participantes []ParticipanteResponse `json:"participantes,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// CartaRequest body de POST/PUT /api/cartas.
type CartaRequest struct {
	FechaIngreso          string          `json:"fecha_ingreso" validate:"omitempty,datetime=2006-01-02"`
	RemitenteNombre       string          `json:"remitente_nombre" validate:"required,max=300"`
	RemitenteDocumento    string          `json:"remitente_documento" validate:"omitempty,max=15"`
	RemitenteDireccion    string          `json:"remitente_direccion" validate:"omitempty,max=300"`
	DestinatarioNombre    string          `json:"destinatario_nombre" validate:"required,max=300"`
	DestinatarioDireccion string          `json:"destinatario_direccion" validate:"required,max=300"`
	DestinatarioDistrito  string          `json:"destinatario_distrito" validate:"omitempty,max=100"`
	Contenido             string          `json:"contenido"`
	Costo                 decimal.Decimal `json:"costo"`
}

// DiligenciaRequest body de PUT /api/cartas/:id/diligencia.
type DiligenciaRequest struct {
	FechaDiligencia string `json:"fecha_diligencia" validate:"required,datetime=2006-01-02"`
	Diligenciador   string `json:"diligenciador" validate:"required,max=200"`
	Resultado       string `json:"resultado" validate:"required,oneof=ENTREGADA BAJO_PUERTA NO_ENTREGADA"`
}

// CartaResponse carta notarial.
type CartaResponse struct {
	ID                    string          `json:"id"`
	Numero                string          `json:"numero"`
	FechaIngreso          string          `json:"fecha_ingreso"`
	RemitenteNombre       string          `json:"remitente_nombre"`
	RemitenteDocumento    string          `json:"remitente_documento,omitempty"`
	RemitenteDireccion    string          `json:"remitente_direccion,omitempty"`
	DestinatarioNombre    string          `json:"destinatario_nombre"`
	DestinatarioDireccion string          `json:"destinatario_direccion"`
	DestinatarioDistrito  string          `json:"destinatario_distrito,omitempty"`
	Contenido             string          `json:"contenido,omitempty"`
	FechaDiligencia       string          `json:"fecha_diligencia,omitempty"`
	Diligenciador         string          `json:"diligenciador,omitempty"`
	Resultado             string          `json:"resultado"`
	Costo                 decimal.Decimal `json:"costo"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// LibroRequest body de POST/PUT /api/libros.
type LibroRequest struct {
	ClienteID         string `json:"cliente_id" validate:"required,uuid"`
	TipoLibro         string `json:"tipo_libro" validate:"required,max=100"`
	NumeroLibro       int    `json:"numero_libro" validate:"omitempty,min=1"`
	Folios            int    `json:"folios" validate:"required,gt=0"`
	TipoLegalizacion  string `json:"tipo_legalizacion" validate:"omitempty,oneof=EMPASTADO HOJAS_SUELTAS"`
	FechaIngreso      string `json:"fecha_ingreso" validate:"omitempty,datetime=2006-01-02"`
	FechaLegalizacion string `json:"fecha_legalizacion" validate:"omitempty,datetime=2006-01-02"`
	Observaciones     string `json:"observaciones"`
}

// LibroResponse legalización de libro.
type LibroResponse struct {
	ID                string    `json:"id"`
	Numero            string    `json:"numero"`
	ClienteID         string    `json:"cliente_id"`
	TipoLibro         string    `json:"tipo_libro"`
	NumeroLibro       int       `json:"numero_libro"`
	Folios            int       `json:"folios"`
	TipoLegalizacion  string    `json:"tipo_legalizacion"`
	FechaIngreso      string    `json:"fecha_ingreso"`
	FechaLegalizacion string    `json:"fecha_legalizacion,omitempty"`
	Observaciones     string    `json:"observaciones,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
