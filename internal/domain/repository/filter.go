package repository

import "time"

// ListFilter filtro común de listados: texto libre + paginación.
type ListFilter struct {
	Q      string
	Limit  int
	Offset int
}

// KardexFilter filtros del listado de kardex.
type KardexFilter struct {
	ListFilter
	TipoKardex string
	Anio       int
	Estado     string
}

// SISGENSearch criterios de búsqueda de kardex exportables a SISGEN.
type SISGENSearch struct {
	Desde        time.Time
	Hasta        time.Time
	TipoKardex   string
	EstadoSISGEN string
}

// DocumentoFilter filtros del listado de documentos generados.
type DocumentoFilter struct {
	Tipo         string
	ReferenciaID string
	Limit        int
	Offset       int
}
