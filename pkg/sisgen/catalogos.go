// Package sisgen contiene los catálogos de códigos usados en el intercambio con SISGEN
// y las validaciones de documentos de identidad peruanos.
package sisgen

// =============================================================================
// Tipos de documento de identidad (catálogo 06 SUNAT, usado por SISGEN)
// =============================================================================

const (
	DocDNI = "DNI"
	DocRUC = "RUC"
	DocCE  = "CE"  // Carné de extranjería
	DocPAS = "PAS" // Pasaporte
	DocCPP = "CPP" // Carné de permiso temporal de permanencia
)

// CodigosTipoDocumento traduce el tipo de documento interno al código SISGEN.
var CodigosTipoDocumento = map[string]string{
	DocDNI: "1",
	DocCE:  "4",
	DocRUC: "6",
	DocPAS: "7",
	DocCPP: "F",
}

// DescripcionTipoDocumento texto usado en los documentos notariales.
var DescripcionTipoDocumento = map[string]string{
	DocDNI: "DOCUMENTO NACIONAL DE IDENTIDAD",
	DocCE:  "CARNÉ DE EXTRANJERÍA",
	DocRUC: "REGISTRO ÚNICO DE CONTRIBUYENTE",
	DocPAS: "PASAPORTE",
	DocCPP: "CARNÉ DE PERMISO TEMPORAL DE PERMANENCIA",
}

// =============================================================================
// Estado civil
// =============================================================================

const (
	EstadoCivilSoltero     = "SOLTERO"
	EstadoCivilCasado      = "CASADO"
	EstadoCivilViudo       = "VIUDO"
	EstadoCivilDivorciado  = "DIVORCIADO"
	EstadoCivilConviviente = "CONVIVIENTE"
)

// CodigosEstadoCivil código SISGEN del estado civil.
var CodigosEstadoCivil = map[string]string{
	EstadoCivilSoltero:     "1",
	EstadoCivilCasado:      "2",
	EstadoCivilViudo:       "3",
	EstadoCivilDivorciado:  "4",
	EstadoCivilConviviente: "5",
}

// =============================================================================
// Monedas
// =============================================================================

const (
	MonedaSoles   = "PEN"
	MonedaDolares = "USD"
)

// CodigosMoneda código SISGEN de la moneda de la cuantía.
var CodigosMoneda = map[string]string{
	MonedaSoles:   "1",
	MonedaDolares: "2",
}

// =============================================================================
// Tipos de instrumento (tipo de kardex)
// =============================================================================

// CodigosTipoInstrumento código SISGEN por tipo de kardex.
var CodigosTipoInstrumento = map[string]string{
	"K": "E", // escritura pública
	"V": "V", // transferencia vehicular
	"N": "N", // asunto no contencioso
	"G": "G", // garantía mobiliaria
	"T": "T", // testamento
}

// CodigoOrDefault devuelve catalogo[key] o def si no existe.
func CodigoOrDefault(catalogo map[string]string, key, def string) string {
	if v, ok := catalogo[key]; ok {
		return v
	}
	return def
}
