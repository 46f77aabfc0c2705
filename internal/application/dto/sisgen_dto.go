package dto

import "time"

// SISGENBusquedaRequest body de POST /api/sisgen/busqueda.
type SISGENBusquedaRequest struct {
	Desde        string `json:"desde" validate:"required,datetime=2006-01-02"`
	Hasta        string `json:"hasta" validate:"required,datetime=2006-01-02"`
	TipoKardex   string `json:"tipo_kardex" validate:"omitempty,oneof=K V N G T"`
	EstadoSISGEN string `json:"estado_sisgen" validate:"omitempty,oneof=NO_ENVIADO ENVIADO OBSERVADO ERROR"`
}

// SISGENKardexResult kardex encontrado y sus observaciones bloqueantes.
type SISGENKardexResult struct {
	KardexID        string   `json:"kardex_id"`
	Numero          string   `json:"numero"`
	TipoKardex      string   `json:"tipo_kardex"`
	ActoCodigo      string   `json:"acto_codigo"`
	NumeroEscritura string   `json:"numero_escritura"`
	FechaEscritura  string   `json:"fecha_escritura"`
	SISGENEstado    string   `json:"sisgen_estado"`
	Exportable      bool     `json:"exportable"`
	Observaciones   []string `json:"observaciones"`
}

// SISGENExportRequest body de POST /api/sisgen/envios.
type SISGENExportRequest struct {
	KardexIDs []string `json:"kardex_ids" validate:"required,min=1,max=200,dive,uuid"`
}

// SISGENExportResult resultado por kardex, en el orden del request.
type SISGENExportResult struct {
	KardexID       string   `json:"kardex_id"`
	Numero         string   `json:"numero,omitempty"`
	Estado         string   `json:"estado"`
	Codigo         string   `json:"codigo,omitempty"`
	Mensaje        string   `json:"mensaje,omitempty"`
	NumeroRegistro string   `json:"numero_registro,omitempty"`
	Observaciones  []string `json:"observaciones,omitempty"`
	Digest         string   `json:"digest,omitempty"`
	EnvioID        string   `json:"envio_id,omitempty"`
}

// SISGENExportResponse resumen del envío por lotes.
type SISGENExportResponse struct {
	Resultados []SISGENExportResult `json:"resultados"`
	Enviados   int                  `json:"enviados"`
	Fallidos   int                  `json:"fallidos"`
}

// SISGENEnvioListRequest filtros de GET /api/sisgen/envios.
type SISGENEnvioListRequest struct {
	PageRequest
	KardexID string `query:"kardex_id" validate:"required,uuid"`
}

// EnvioSISGENResponse registro histórico de un envío.
type EnvioSISGENResponse struct {
	ID             string    `json:"id"`
	KardexID       string    `json:"kardex_id"`
	Estado         string    `json:"estado"`
	Codigo         string    `json:"codigo,omitempty"`
	Mensaje        string    `json:"mensaje,omitempty"`
	NumeroRegistro string    `json:"numero_registro,omitempty"`
	Observaciones  []string  `json:"observaciones,omitempty"`
	Digest         string    `json:"digest"`
	UsuarioID      string    `json:"usuario_id,omitempty"`
	Fecha          time.Time `json:"fecha"`
}
