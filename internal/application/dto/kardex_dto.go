package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// KardexListRequest filtros de GET /api/kardex.
type KardexListRequest struct {
	PageRequest
	TipoKardex string `query:"tipo_kardex" validate:"omitempty,oneof=K V N G T"`
	Anio       int    `query:"anio" validate:"omitempty,min=1900,max=9999"`
	Estado     string `query:"estado" validate:"omitempty,oneof=EN_PROCESO FIRMADO CONCLUIDO ANULADO"`
}

// KardexRequest body de POST/PUT /api/kardex. Numero solo se acepta en el alta (importación).
type KardexRequest struct {
	Numero          string          `json:"numero" validate:"omitempty,max=20"`
	TipoKardex      string          `json:"tipo_kardex" validate:"required,oneof=K V N G T"`
	ActoCodigo      string          `json:"acto_codigo" validate:"required,max=10"`
	Contrato        string          `json:"contrato" validate:"omitempty,max=300"`
	FechaIngreso    string          `json:"fecha_ingreso" validate:"omitempty,datetime=2006-01-02"`
	Referencia      string          `json:"referencia" validate:"omitempty,max=300"`
	NumeroEscritura string          `json:"numero_escritura" validate:"omitempty,max=20"`
	FechaEscritura  string          `json:"fecha_escritura" validate:"omitempty,datetime=2006-01-02"`
	FolioInicial    int             `json:"folio_inicial" validate:"min=0"`
	FolioFinal      int             `json:"folio_final" validate:"min=0,gtefield=FolioInicial"`
	NumeroMinuta    string          `json:"numero_minuta" validate:"omitempty,max=20"`
	Importe         decimal.Decimal `json:"importe"`
	Moneda          string          `json:"moneda" validate:"omitempty,oneof=PEN USD"`
	Estado          string          `json:"estado" validate:"omitempty,oneof=EN_PROCESO FIRMADO CONCLUIDO ANULADO"`
	ResponsableID   string          `json:"responsable_id" validate:"omitempty,uuid"`
	Observaciones   string          `json:"observaciones"`
}

// KardexResponse kardex; contratantes y vehículo solo en el detalle.
type KardexResponse struct {
	ID              string                `json:"id"`
	Numero          string                `json:"numero"`
	TipoKardex      string                `json:"tipo_kardex"`
	ActoCodigo      string                `json:"acto_codigo"`
	Contrato        string                `json:"contrato"`
	FechaIngreso    string                `json:"fecha_ingreso"`
	Referencia      string                `json:"referencia,omitempty"`
	NumeroEscritura string                `json:"numero_escritura,omitempty"`
	FechaEscritura  string                `json:"fecha_escritura,omitempty"`
	FolioInicial    int                   `json:"folio_inicial"`
	FolioFinal      int                   `json:"folio_final"`
	NumeroMinuta    string                `json:"numero_minuta,omitempty"`
	Importe         decimal.Decimal       `json:"importe"`
	Moneda          string                `json:"moneda"`
	Estado          string                `json:"estado"`
	ResponsableID   string                `json:"responsable_id,omitempty"`
	Observaciones   string                `json:"observaciones,omitempty"`
	SISGENEstado    string                `json:"sisgen_estado"`
	Contratantes    []ContratanteResponse `json:"contratantes,omitempty"`
	Vehiculo        *VehiculoResponse     `json:"vehiculo,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// ContratanteRequest body de POST /api/kardex/:id/contratantes.
type ContratanteRequest struct {
	ClienteID       string `json:"cliente_id" validate:"required,uuid"`
	CondicionCodigo string `json:"condicion_codigo" validate:"required,max=20"`
	Intervencion    string `json:"intervencion" validate:"omitempty,oneof=PROPIO REPRESENTACION"`
	RepresentaA     string `json:"representa_a" validate:"required_if=Intervencion REPRESENTACION,omitempty,uuid"`
	PartidaPoder    string `json:"partida_poder" validate:"omitempty,max=30"`
	Firma           bool   `json:"firma"`
	FechaFirma      string `json:"fecha_firma" validate:"omitempty,datetime=2006-01-02"`
}

// ContratanteResponse contratante con cliente y condición resueltos.
type ContratanteResponse struct {
	ID              string `json:"id"`
	ClienteID       string `json:"cliente_id"`
	Nombre          string `json:"nombre"`
	TipoDocumento   string `json:"tipo_documento"`
	NumeroDocumento string `json:"numero_documento"`
	CondicionCodigo string `json:"condicion_codigo"`
	Condicion       string `json:"condicion"`
	Intervencion    string `json:"intervencion"`
	RepresentaA     string `json:"representa_a,omitempty"`
	Representado    string `json:"representado,omitempty"`
	PartidaPoder    string `json:"partida_poder,omitempty"`
	Firma           bool   `json:"firma"`
	FechaFirma      string `json:"fecha_firma,omitempty"`
}

// VehiculoRequest body de PUT /api/kardex/:id/vehiculo.
type VehiculoRequest struct {
	Placa            string          `json:"placa" validate:"required,max=10"`
	Marca            string          `json:"marca" validate:"required,max=60"`
	Modelo           string          `json:"modelo" validate:"omitempty,max=60"`
	Clase            string          `json:"clase"`
	Categoria        string          `json:"categoria"`
	Carroceria       string          `json:"carroceria"`
	Color            string          `json:"color"`
	AnioFabricacion  int             `json:"anio_fabricacion" validate:"omitempty,min=1900,max=9999"`
	NumeroSerie      string          `json:"numero_serie" validate:"omitempty,max=30"`
	NumeroMotor      string          `json:"numero_motor" validate:"omitempty,max=30"`
	Combustible      string          `json:"combustible"`
	PartidaRegistral string          `json:"partida_registral" validate:"omitempty,max=20"`
	ZonaRegistral    string          `json:"zona_registral"`
	Precio           decimal.Decimal `json:"precio"`
	Moneda           string          `json:"moneda" validate:"omitempty,oneof=PEN USD"`
	FormaPago        string          `json:"forma_pago" validate:"omitempty,oneof=CONTADO CREDITO"`
	MedioPago        string          `json:"medio_pago" validate:"omitempty,oneof=EFECTIVO DEPOSITO TRANSFERENCIA CHEQUE"`
}

// VehiculoResponse vehículo del kardex.
type VehiculoResponse struct {
	Placa            string          `json:"placa"`
	Marca            string          `json:"marca"`
	Modelo           string          `json:"modelo"`
	Clase            string          `json:"clase,omitempty"`
	Categoria        string          `json:"categoria,omitempty"`
	Carroceria       string          `json:"carroceria,omitempty"`
	Color            string          `json:"color,omitempty"`
	AnioFabricacion  int             `json:"anio_fabricacion,omitempty"`
	NumeroSerie      string          `json:"numero_serie,omitempty"`
	NumeroMotor      string          `json:"numero_motor,omitempty"`
	Combustible      string          `json:"combustible,omitempty"`
	PartidaRegistral string          `json:"partida_registral,omitempty"`
	ZonaRegistral    string          `json:"zona_registral,omitempty"`
	Precio           decimal.Decimal `json:"precio"`
	Moneda           string          `json:"moneda"`
	FormaPago        string          `json:"forma_pago"`
	MedioPago        string          `json:"medio_pago,omitempty"`
}
