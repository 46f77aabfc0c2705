package gramatica

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MaxEnLetras mayor número soportado por EnLetras.
const MaxEnLetras = 999_999_999_999

var unidades = [...]string{
	"CERO", "UNO", "DOS", "TRES", "CUATRO", "CINCO", "SEIS", "SIETE", "OCHO", "NUEVE",
	"DIEZ", "ONCE", "DOCE", "TRECE", "CATORCE", "QUINCE", "DIECISÉIS", "DIECISIETE", "DIECIOCHO", "DIECINUEVE",
	"VEINTE", "VEINTIUNO", "VEINTIDÓS", "VEINTITRÉS", "VEINTICUATRO", "VEINTICINCO", "VEINTISÉIS", "VEINTISIETE", "VEINTIOCHO", "VEINTINUEVE",
}

var decenas = [...]string{"", "", "", "TREINTA", "CUARENTA", "CINCUENTA", "SESENTA", "SETENTA", "OCHENTA", "NOVENTA"}

var centenas = [...]string{"", "CIENTO", "DOSCIENTOS", "TRESCIENTOS", "CUATROCIENTOS", "QUINIENTOS", "SEISCIENTOS", "SETECIENTOS", "OCHOCIENTOS", "NOVECIENTOS"}

// EnLetras convierte 0..999 999 999 999 a letras en mayúsculas.
// Fuera de rango devuelve el número en cifras.
func EnLetras(n int64) string {
	if n < 0 || n > MaxEnLetras {
		return strconv.FormatInt(n, 10)
	}
	if n == 0 {
		return unidades[0]
	}
	millones := int(n / 1_000_000)
	resto := int(n % 1_000_000)

	var parts []string
	switch {
	case millones == 1:
		parts = append(parts, "UN MILLÓN")
	case millones > 1:
		parts = append(parts, miles(millones, true)+" MILLONES")
	}
	if resto > 0 {
		parts = append(parts, miles(resto, false))
	}
	return strings.Join(parts, " ")
}

// miles convierte 1..999 999; apocope acorta UNO a UN cuando sigue un sustantivo (MILLONES).
func miles(n int, apocope bool) string {
	m, r := n/1000, n%1000
	var parts []string
	switch {
	case m == 1:
		parts = append(parts, "MIL")
	case m > 1:
		parts = append(parts, hasta999(m, true)+" MIL")
	}
	if r > 0 {
		parts = append(parts, hasta999(r, apocope))
	}
	return strings.Join(parts, " ")
}

func hasta999(n int, apocope bool) string {
	if n == 100 {
		return "CIEN"
	}
	c, r := n/100, n%100
	var parts []string
	if c > 0 {
		parts = append(parts, centenas[c])
	}
	if r > 0 {
		parts = append(parts, hasta99(r, apocope))
	}
	return strings.Join(parts, " ")
}

func hasta99(n int, apocope bool) string {
	var s string
	if n < 30 {
		s = unidades[n]
	} else {
		d, u := n/10, n%10
		s = decenas[d]
		if u > 0 {
			s += " Y " + unidades[u]
		}
	}
	if apocope {
		switch {
		case s == "VEINTIUNO":
			s = "VEINTIÚN"
		case strings.HasSuffix(s, "UNO"):
			s = strings.TrimSuffix(s, "UNO") + "UN"
		}
	}
	return s
}

// ImporteEnLetras "VEINTE MIL CON 50/100" (parte entera en letras, céntimos en fracción).
func ImporteEnLetras(d decimal.Decimal) string {
	entero, centimos := partes(d)
	return fmt.Sprintf("%s CON %02d/100", EnLetras(entero), centimos)
}

// FormatoMonto "20,000.00": separador de miles y dos decimales.
func FormatoMonto(d decimal.Decimal) string {
	entero, centimos := partes(d)
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + message.NewPrinter(language.English).Sprintf("%d", entero) + fmt.Sprintf(".%02d", centimos)
}

func partes(d decimal.Decimal) (int64, int64) {
	d = d.Abs().Round(2)
	entero := d.IntPart()
	centimos := d.Sub(decimal.NewFromInt(entero)).Mul(decimal.NewFromInt(100)).IntPart()
	return entero, centimos
}

// Monedas soportadas.
const (
	MonedaSoles   = "PEN"
	MonedaDolares = "USD"
)

// MonedaEnLetras nombre de la moneda en los documentos.
func MonedaEnLetras(codigo string) string {
	switch codigo {
	case MonedaDolares:
		return "DÓLARES AMERICANOS"
	case MonedaSoles, "":
		return "SOLES"
	default:
		return codigo
	}
}

// SimboloMoneda S/ o US$.
func SimboloMoneda(codigo string) string {
	switch codigo {
	case MonedaDolares:
		return "US$"
	case MonedaSoles, "":
		return "S/"
	default:
		return codigo
	}
}

var ordinales = [...]string{
	"", "PRIMERO", "SEGUNDO", "TERCERO", "CUARTO", "QUINTO", "SEXTO", "SÉPTIMO", "OCTAVO", "NOVENO", "DÉCIMO",
	"UNDÉCIMO", "DUODÉCIMO", "DECIMOTERCERO", "DECIMOCUARTO", "DECIMOQUINTO", "DECIMOSEXTO", "DECIMOSÉPTIMO",
	"DECIMOCTAVO", "DECIMONOVENO", "VIGÉSIMO",
}

// Ordinal 1..20 en letras; fuera de rango devuelve la cifra.
func Ordinal(n int) string {
	if n >= 1 && n < len(ordinales) {
		return ordinales[n]
	}
	return strconv.Itoa(n)
}
