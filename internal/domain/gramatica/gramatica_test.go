package gramatica

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNuevoGrupo_FemeninoSoloSiTodas(t *testing.T) {
	assert.Equal(t, Grupo{Cantidad: 1, Femenino: true}, NuevoGrupo(true))
	assert.Equal(t, Grupo{Cantidad: 2, Femenino: true}, NuevoGrupo(true, true))
	assert.Equal(t, Grupo{Cantidad: 2, Femenino: false}, NuevoGrupo(true, false))
	assert.Equal(t, Grupo{Cantidad: 0, Femenino: false}, NuevoGrupo())
}

func TestForma_Para(t *testing.T) {
	assert.Equal(t, "EL", Articulo.Para(NuevoGrupo(false)))
	assert.Equal(t, "LA", Articulo.Para(NuevoGrupo(true)))
	assert.Equal(t, "LOS", Articulo.Para(NuevoGrupo(true, false)))
	assert.Equal(t, "LAS", Articulo.Para(NuevoGrupo(true, true)))
	assert.Equal(t, "DE LA", Del.Para(NuevoGrupo(true)))
	assert.Equal(t, "SUS", Su.Para(NuevoGrupo(false, false)))
	assert.Equal(t, "N", VerboPlural.Para(NuevoGrupo(false, false)))
	assert.Equal(t, "", SustPlural.Para(NuevoGrupo(false)))
}

func TestUnir(t *testing.T) {
	assert.Equal(t, "", Unir(nil))
	assert.Equal(t, "ANA", Unir([]string{"ANA"}))
	assert.Equal(t, "ANA Y LUIS", Unir([]string{"ANA", "LUIS"}))
	assert.Equal(t, "ANA, LUIS Y PEDRO", Unir([]string{"ANA", " ", "LUIS", "PEDRO"}))
	assert.Equal(t, "LUIS E ISABEL", Unir([]string{"LUIS", "ISABEL"}))
	assert.Equal(t, "LUIS E HILDA", Unir([]string{"LUIS", "HILDA"}))
	assert.Equal(t, "COBRE Y HIERRO", Unir([]string{"COBRE", "HIERRO"}))
	assert.Equal(t, "LUIS E ÍNGRID", Unir([]string{"LUIS", "ÍNGRID"}))
	assert.Equal(t, "Ana E Íngrid", Unir([]string{"Ana", "Íngrid"}), "respeta las mayúsculas de cada elemento")
}

func TestEnLetras(t *testing.T) {
	casos := map[int64]string{
		0:             "CERO",
		1:             "UNO",
		16:            "DIECISÉIS",
		21:            "VEINTIUNO",
		31:            "TREINTA Y UNO",
		100:           "CIEN",
		101:           "CIENTO UNO",
		115:           "CIENTO QUINCE",
		500:           "QUINIENTOS",
		1000:          "MIL",
		1001:          "MIL UNO",
		2026:          "DOS MIL VEINTISÉIS",
		21000:         "VEINTIÚN MIL",
		31500:         "TREINTA Y UN MIL QUINIENTOS",
		101000:        "CIENTO UN MIL",
		1000000:       "UN MILLÓN",
		2000001:       "DOS MILLONES UNO",
		21000000:      "VEINTIÚN MILLONES",
		1000000000:    "MIL MILLONES",
		1001000000:    "MIL UN MILLONES",
		999999999999:  "NOVECIENTOS NOVENTA Y NUEVE MIL NOVECIENTOS NOVENTA Y NUEVE MILLONES NOVECIENTOS NOVENTA Y NUEVE MIL NOVECIENTOS NOVENTA Y NUEVE",
		1000000000000: "1000000000000",
		-5:            "-5",
	}
	for n, want := range casos {
		assert.Equal(t, want, EnLetras(n), n)
	}
}

func TestImporteEnLetras(t *testing.T) {
	assert.Equal(t, "VEINTE MIL CON 50/100", ImporteEnLetras(decimal.RequireFromString("20000.50")))
	assert.Equal(t, "CIEN CON 00/100", ImporteEnLetras(decimal.NewFromInt(100)))
	assert.Equal(t, "UNO CON 01/100", ImporteEnLetras(decimal.RequireFromString("1.005")))
}

func TestFormatoMonto(t *testing.T) {
	assert.Equal(t, "20,000.00", FormatoMonto(decimal.NewFromInt(20000)))
	assert.Equal(t, "1,234,567.89", FormatoMonto(decimal.RequireFromString("1234567.891")))
	assert.Equal(t, "0.50", FormatoMonto(decimal.RequireFromString("0.5")))
}

func TestMoneda(t *testing.T) {
	assert.Equal(t, "SOLES", MonedaEnLetras("PEN"))
	assert.Equal(t, "DÓLARES AMERICANOS", MonedaEnLetras("USD"))
	assert.Equal(t, "S/", SimboloMoneda(""))
	assert.Equal(t, "US$", SimboloMoneda("USD"))
}

func TestFechaEnLetras(t *testing.T) {
	assert.Equal(t, "DIECINUEVE DE OCTUBRE DE DOS MIL VEINTISÉIS",
		FechaEnLetras(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "PRIMERO DE SETIEMBRE DE DOS MIL VEINTICINCO",
		FechaEnLetras(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "19/10/2026", FechaCorta(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "5 DE MAYO DE 2026", FechaLarga(time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)))
}

func TestOrdinal(t *testing.T) {
	assert.Equal(t, "PRIMERO", Ordinal(1))
	assert.Equal(t, "DÉCIMO", Ordinal(10))
	assert.Equal(t, "VIGÉSIMO", Ordinal(20))
	assert.Equal(t, "21", Ordinal(21))
	assert.Equal(t, "0", Ordinal(0))
}

func TestNacionalidad(t *testing.T) {
	assert.Equal(t, "PERUANO", Nacionalidad("peruano", false))
	assert.Equal(t, "PERUANA", Nacionalidad("Peruano", true))
	assert.Equal(t, "ESPAÑOLA", Nacionalidad("español", true))
	assert.Equal(t, "ALEMANA", Nacionalidad("ALEMÁN", true))
	assert.Equal(t, "FRANCESA", Nacionalidad("francés", true))
	assert.Equal(t, "ESTADOUNIDENSE", Nacionalidad("estadounidense", true))
	assert.Equal(t, "", Nacionalidad("", true))
}

func TestNormalizar(t *testing.T) {
	assert.Equal(t, "JOSE PENA", Normalizar("  José   Peña "))
	assert.Equal(t, "MULLER", Normalizar("Müller"))
}

func TestMayusculas(t *testing.T) {
	assert.Equal(t, "JOSÉ PEÑA", Mayusculas(" josé peña"))
}
