package entity

// Lados de una condición de intervención.
const (
	LadoOtorgante     = "O"
	LadoBeneficiario  = "B"
	LadoInterviniente = "I"
)

// Condicion catálogo de condiciones de intervención (VENDEDOR, COMPRADOR, SOLICITANTE...).
// Las cuatro formas permiten concordar el rótulo con el género y número del grupo.
type Condicion struct {
	Codigo          string
	Masculino       string
	Femenino        string
	PluralMasculino string
	PluralFemenino  string
	Lado            string
	CodigoSISGEN    string
}

// TipoActo catálogo de actos notariales por tipo de kardex.
type TipoActo struct {
	Codigo       string
	Descripcion  string
	TipoKardex   string
	CodigoSISGEN string
	Plantilla    string // nombre de plantilla .docx opcional
	Activo       bool
}
