package dto

import "time"

// DocumentoListRequest filtros de GET /api/documentos.
type DocumentoListRequest struct {
	PageRequest
	Tipo         string `query:"tipo" validate:"omitempty,oneof=vehicular no-contencioso permiso-viaje poder carta libro"`
	ReferenciaID string `query:"referencia_id" validate:"omitempty,uuid"`
}

// DocumentoResponse documento generado.
type DocumentoResponse struct {
	ID           string    `json:"id"`
	Tipo         string    `json:"tipo"`
	ReferenciaID string    `json:"referencia_id"`
	Plantilla    string    `json:"plantilla"`
	Filename     string    `json:"filename"`
	StorageKey   string    `json:"storage_key"`
	Size         int64     `json:"size"`
	Missing      []string  `json:"missing"`
	DownloadURL  string    `json:"download_url,omitempty"`
	GeneradoPor  string    `json:"generado_por,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// PlaceholdersResponse claves que usa una plantilla.
type PlaceholdersResponse struct {
	Plantilla    string   `json:"plantilla"`
	Placeholders []string `json:"placeholders"`
}
