package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de kardex (también son la serie del correlativo).
const (
	KardexEscrituras    = "K"
	KardexVehicular     = "V"
	KardexNoContencioso = "N"
	KardexGarantias     = "G"
	KardexTestamentos   = "T"
)

// TiposKardex lista los tipos válidos.
var TiposKardex = []string{KardexEscrituras, KardexVehicular, KardexNoContencioso, KardexGarantias, KardexTestamentos}

// Estados del kardex.
const (
	KardexEnProceso = "EN_PROCESO"
	KardexFirmado   = "FIRMADO"
	KardexConcluido = "CONCLUIDO"
	KardexAnulado   = "ANULADO"
)

// Estado del kardex respecto a SISGEN.
const (
	SISGENNoEnviado = "NO_ENVIADO"
	SISGENEnviado   = "ENVIADO"
	SISGENObservado = "OBSERVADO"
	SISGENError     = "ERROR"
)

// Kardex expediente de un instrumento protocolar.
type Kardex struct {
	ID              string
	Numero          string // correlativo formateado: K000123-2026
	Serie           string
	Anio            int
	Secuencia       int
	TipoKardex      string
	ActoCodigo      string
	Contrato        string
	FechaIngreso    time.Time
	Referencia      string
	NumeroEscritura string
	FechaEscritura  *time.Time
	FolioInicial    int
	FolioFinal      int
	NumeroMinuta    string
	Importe         decimal.Decimal
	Moneda          string
	Estado          string
	ResponsableID   string
	Observaciones   string
	SISGENEstado    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EsAnulado indica si el kardex fue anulado (no admite cambios).
func (k *Kardex) EsAnulado() bool {
	return k.Estado == KardexAnulado
}

// Tipos de intervención de un contratante.
const (
	IntervencionPropio         = "PROPIO"
	IntervencionRepresentacion = "REPRESENTACION"
)

// Contratante participación de un cliente en un kardex con una condición.
type Contratante struct {
	ID              string
	KardexID        string
	ClienteID       string
	CondicionCodigo string
	Intervencion    string
	RepresentaA     string // id del cliente representado (opcional)
	PartidaPoder    string
	Firma           bool
	FechaFirma      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ContratanteDetalle contratante con su cliente y condición ya resueltos (lecturas).
type ContratanteDetalle struct {
	Contratante
	Cliente      Cliente
	Condicion    Condicion
	Representado *Cliente
}

// Formas y medios de pago.
const (
	FormaPagoContado = "CONTADO"
	FormaPagoCredito = "CREDITO"
)

// Vehiculo datos del vehículo de un kardex vehicular (1:1).
type Vehiculo struct {
	KardexID         string
	Placa            string
	Marca            string
	Modelo           string
	Clase            string
	Categoria        string
	Carroceria       string
	Color            string
	AnioFabricacion  int
	NumeroSerie      string
	NumeroMotor      string
	Combustible      string
	PartidaRegistral string
	ZonaRegistral    string
	Precio           decimal.Decimal
	Moneda           string
	FormaPago        string
	MedioPago        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
