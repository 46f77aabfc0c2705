package entity

import "time"

// Tipos de documento generado.
const (
	DocVehicular     = "vehicular"
	DocNoContencioso = "no-contencioso"
	DocPermisoViaje  = "permiso-viaje"
	DocPoder         = "poder"
	DocCarta         = "carta"
	DocLibro         = "libro"
)

// DocumentoGenerado registro de un .docx generado y almacenado.
type DocumentoGenerado struct {
	ID           string
	Tipo         string
	ReferenciaID string
	Plantilla    string
	StorageKey   string
	Filename     string
	Size         int64
	Faltantes    []string // placeholders sin valor al momento de generar
	GeneradoPor  string
	CreatedAt    time.Time
}
