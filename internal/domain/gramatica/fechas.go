package gramatica

import (
	"fmt"
	"time"
)

var meses = [...]string{
	"", "ENERO", "FEBRERO", "MARZO", "ABRIL", "MAYO", "JUNIO",
	"JULIO", "AGOSTO", "SETIEMBRE", "OCTUBRE", "NOVIEMBRE", "DICIEMBRE",
}

// Mes nombre del mes en mayúsculas (SETIEMBRE, uso peruano).
func Mes(m time.Month) string {
	return meses[m]
}

// DiaEnLetras "PRIMERO" para el día 1; el resto en cardinal.
func DiaEnLetras(d int) string {
	if d == 1 {
		return "PRIMERO"
	}
	return EnLetras(int64(d))
}

// FechaEnLetras "DIECINUEVE DE OCTUBRE DE DOS MIL VEINTISÉIS".
func FechaEnLetras(t time.Time) string {
	return fmt.Sprintf("%s DE %s DE %s", DiaEnLetras(t.Day()), Mes(t.Month()), EnLetras(int64(t.Year())))
}

// FechaLarga "19 DE OCTUBRE DE 2026".
func FechaLarga(t time.Time) string {
	return fmt.Sprintf("%d DE %s DE %d", t.Day(), Mes(t.Month()), t.Year())
}

// FechaCorta "19/10/2026".
func FechaCorta(t time.Time) string {
	return t.Format("02/01/2006")
}
