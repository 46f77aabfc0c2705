package dto

import "github.com/shopspring/decimal"

// ResumenRequest periodo del resumen; vacío = mes en curso.
type ResumenRequest struct {
	Anio int `query:"anio" validate:"omitempty,min=1900,max=9999"`
	Mes  int `query:"mes" validate:"omitempty,min=1,max=12"`
}

// KardexPorTipoResponse kardex del periodo agrupados por tipo.
type KardexPorTipoResponse struct {
	TipoKardex string          `json:"tipo_kardex"`
	Cantidad   int             `json:"cantidad"`
	CuantiaPEN decimal.Decimal `json:"cuantia_pen"`
	CuantiaUSD decimal.Decimal `json:"cuantia_usd"`
}

// ResumenResponse actividad de la notaría en un mes.
type ResumenResponse struct {
	Periodo     string                  `json:"periodo"` // "OCTUBRE 2026"
	Desde       string                  `json:"desde"`
	Hasta       string                  `json:"hasta"`
	KardexHoy   int                     `json:"kardex_hoy"`
	KardexTotal int                     `json:"kardex_total"`
	Kardex      []KardexPorTipoResponse `json:"kardex"`

	PermisosViaje int `json:"permisos_viaje"`
	Poderes       int `json:"poderes"`
	Cartas        int `json:"cartas"`
	Libros        int `json:"libros"`

	SISGENPendientes int `json:"sisgen_pendientes"`
	SISGENObservados int `json:"sisgen_observados"`
	SISGENConError   int `json:"sisgen_con_error"`
}
