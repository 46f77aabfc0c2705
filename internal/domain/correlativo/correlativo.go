// Package correlativo formatea y valida los números correlativos de la notaría:
// serie + secuencia con ceros a la izquierda + "-" + año (K000123-2026).
package correlativo

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// Ancho de la secuencia (ceros a la izquierda).
const Ancho = 6

// Series de los registros extraprotocolares. Los kardex usan su tipo (K, V, N, G, T) como serie.
const (
	SeriePermisoViaje = "PV"
	SeriePoder        = "PD"
	SerieCarta        = "CN"
	SerieLibro        = "LB"
)

// ErrFormato número correlativo mal formado.
var ErrFormato = errors.New("correlativo: formato inválido")

var numeroRe = regexp.MustCompile(`^([A-Z]+)(\d+)-(\d{4})$`)

// Numero correlativo descompuesto.
type Numero struct {
	Serie     string
	Secuencia int
	Anio      int
}

// String devuelve el correlativo formateado.
func (n Numero) String() string {
	return Format(n.Serie, n.Secuencia, n.Anio)
}

// Format arma el correlativo: Format("K", 123, 2026) = "K000123-2026".
func Format(serie string, secuencia, anio int) string {
	return fmt.Sprintf("%s%0*d-%04d", serie, Ancho, secuencia, anio)
}

// Parse descompone un correlativo y valida secuencia (>= 1) y año (1900..9999).
func Parse(s string) (Numero, error) {
	m := numeroRe.FindStringSubmatch(s)
	if m == nil {
		return Numero{}, fmt.Errorf("%w: %q", ErrFormato, s)
	}
	sec, err := strconv.Atoi(m[2])
	if err != nil {
		return Numero{}, fmt.Errorf("%w: secuencia %q", ErrFormato, m[2])
	}
	anio, _ := strconv.Atoi(m[3])
	n := Numero{Serie: m[1], Secuencia: sec, Anio: anio}
	if err := n.Validate(); err != nil {
		return Numero{}, err
	}
	return n, nil
}

// Validate verifica los rangos del correlativo.
func (n Numero) Validate() error {
	if n.Serie == "" {
		return fmt.Errorf("%w: serie vacía", ErrFormato)
	}
	if n.Secuencia < 1 {
		return fmt.Errorf("%w: la secuencia debe ser mayor a cero", ErrFormato)
	}
	if n.Anio < 1900 || n.Anio > 9999 {
		return fmt.Errorf("%w: año fuera de rango %d", ErrFormato, n.Anio)
	}
	return nil
}
