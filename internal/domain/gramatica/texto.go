package gramatica

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Mayusculas pasa a mayúsculas respetando tildes y Ñ.
func Mayusculas(s string) string {
	// cases.Caser guarda estado: uno por llamada.
	return cases.Upper(language.Spanish).String(strings.TrimSpace(s))
}

// Normalizar clave de búsqueda: mayúsculas, sin tildes ni diéresis, espacios colapsados.
func Normalizar(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(cases.Upper(language.Spanish).String(out)), " ")
}

// Nacionalidad concuerda el gentilicio con el género: PERUANO/PERUANA, ESPAÑOL/ESPAÑOLA,
// ALEMÁN/ALEMANA, FRANCÉS/FRANCESA. Los invariables (ESTADOUNIDENSE, BELGA) no cambian.
func Nacionalidad(nac string, femenino bool) string {
	n := Mayusculas(nac)
	if !femenino || n == "" {
		return n
	}
	switch {
	case strings.HasSuffix(n, "O"):
		return strings.TrimSuffix(n, "O") + "A"
	case strings.HasSuffix(n, "ÁN"):
		return strings.TrimSuffix(n, "ÁN") + "ANA"
	case strings.HasSuffix(n, "ÉS"):
		return strings.TrimSuffix(n, "ÉS") + "ESA"
	case strings.HasSuffix(n, "ÓN"):
		return strings.TrimSuffix(n, "ÓN") + "ONA"
	case strings.HasSuffix(n, "L"):
		return n + "A"
	}
	return n
}
