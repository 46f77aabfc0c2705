package entity

import "time"

// Notaria datos de la notaría (fila única). Alimenta los encabezados de los documentos y SISGEN.
type Notaria struct {
	ID           string
	Nombre       string
	Notario      string // nombre completo del notario
	Colegiatura  string // número de colegiatura CNL
	RUC          string
	Direccion    string
	Distrito     string
	Provincia    string
	Departamento string
	Telefono     string
	Email        string
	CodigoSISGEN string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
