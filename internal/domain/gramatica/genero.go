// Package gramatica resuelve la concordancia de género y número de los textos legales
// y convierte números, importes y fechas a letras.
package gramatica

// Grupo conjunto de personas que ocupan un mismo rol en un documento.
type Grupo struct {
	Cantidad int
	Femenino bool
}

// NuevoGrupo arma el grupo a partir del género de cada miembro (true = femenino).
// El grupo es femenino solo si todos sus miembros lo son.
func NuevoGrupo(femeninos ...bool) Grupo {
	g := Grupo{Cantidad: len(femeninos), Femenino: len(femeninos) > 0}
	for _, f := range femeninos {
		if !f {
			g.Femenino = false
			break
		}
	}
	return g
}

// Plural indica si el grupo tiene más de un miembro.
func (g Grupo) Plural() bool {
	return g.Cantidad > 1
}

// Forma las cuatro variantes de una palabra: masculino, femenino y sus plurales.
type Forma struct {
	M, F, MP, FP string
}

// Para elige la variante que concuerda con el grupo.
func (f Forma) Para(g Grupo) string {
	switch {
	case g.Plural() && g.Femenino:
		return f.FP
	case g.Plural():
		return f.MP
	case g.Femenino:
		return f.F
	default:
		return f.M
	}
}

// Formas de uso frecuente en los documentos.
var (
	Articulo     = Forma{"EL", "LA", "LOS", "LAS"}
	Del          = Forma{"DEL", "DE LA", "DE LOS", "DE LAS"}
	Al           = Forma{"AL", "A LA", "A LOS", "A LAS"}
	Su           = Forma{"SU", "SU", "SUS", "SUS"}
	TerminacionO = Forma{"O", "A", "OS", "AS"}
	VerboPlural  = Forma{"", "", "N", "N"}
	SustPlural   = Forma{"", "", "S", "S"}
	Tratamiento  = Forma{"DON", "DOÑA", "DON", "DOÑA"}
	Hijo         = Forma{"HIJO", "HIJA", "HIJOS", "HIJAS"}
)
