package sisgen

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
)

func buildContextVehicular() *BuildContext {
	fecha := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	vendedor := entity.Cliente{
		ID: "c1", TipoPersona: entity.PersonaNatural, TipoDocumento: "DNI", NumeroDocumento: "45678912",
		Nombres: "ANA MARÍA", ApellidoPaterno: "QUISPE", ApellidoMaterno: "ROJAS", Sexo: "F",
		EstadoCivil: "CASADO", Nacionalidad: "PERUANA", Ubigeo: "150101", Direccion: "JR. LAMPA 123",
	}
	comprador := entity.Cliente{
		ID: "c2", TipoPersona: entity.PersonaJuridica, TipoDocumento: "RUC", NumeroDocumento: "20100070970",
		RazonSocial: "TRANSPORTES ANDINOS S.A.C.",
	}
	return &BuildContext{
		Notaria: &entity.Notaria{CodigoSISGEN: "LIM-045", Notario: "JUAN PÉREZ GARCÍA"},
		Kardex: &entity.Kardex{
			Numero: "V000045-2026", TipoKardex: entity.KardexVehicular, NumeroEscritura: "1234",
			FechaEscritura: &fecha, FolioInicial: 10, FolioFinal: 12,
			Importe: decimal.RequireFromString("20000.5"), Moneda: "USD",
		},
		Acto: &entity.TipoActo{Codigo: "TV", Descripcion: "TRANSFERENCIA VEHICULAR", CodigoSISGEN: "0801"},
		Contratantes: []*entity.ContratanteDetalle{
			{
				Contratante: entity.Contratante{CondicionCodigo: "VENDEDOR", Firma: true, FechaFirma: &fecha},
				Cliente:     vendedor,
				Condicion:   entity.Condicion{Codigo: "VENDEDOR", CodigoSISGEN: "01"},
			},
			{
				Contratante:  entity.Contratante{CondicionCodigo: "COMPRADOR", PartidaPoder: "11002233"},
				Cliente:      comprador,
				Condicion:    entity.Condicion{Codigo: "COMPRADOR"},
				Representado: &entity.Cliente{TipoDocumento: "DNI", NumeroDocumento: "11223344"},
			},
		},
		Vehiculo: &entity.Vehiculo{Placa: "ABC-123", NumeroSerie: "9BWZZZ377VT004251", NumeroMotor: "M123", Marca: "TOYOTA", Modelo: "HILUX", AnioFabricacion: 2020},
	}
}

func TestBuild_DocumentoVehicular(t *testing.T) {
	out, err := NewXMLBuilderService().Build(buildContextVehicular())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	root := doc.SelectElement("documentoNotarial")
	require.NotNil(t, root)
	assert.Equal(t, "1.0", root.SelectAttrValue("version", ""))

	text := func(path string) string {
		el := root.FindElement(path)
		require.NotNil(t, el, path)
		return el.Text()
	}
	assert.Equal(t, "LIM-045", text("notaria/codigo"))
	assert.Equal(t, "V000045-2026", text("kardex"))
	assert.Equal(t, "V", text("tipoInstrumento"))
	assert.Equal(t, "2026-10-19", text("fechaInstrumento"))
	assert.Equal(t, "10", text("folioInicial"))
	assert.Equal(t, "0801", text("acto/codigo"))
	assert.Equal(t, "20000.50", text("acto/cuantia"))
	assert.Equal(t, "2", root.FindElement("acto/cuantia").SelectAttrValue("moneda", ""))

	ints := root.FindElements("intervinientes/interviniente")
	require.Len(t, ints, 2)
	assert.Equal(t, "01", ints[0].FindElement("condicion").Text())
	assert.Equal(t, "1", ints[0].FindElement("tipoDocumento").Text())
	assert.Equal(t, "F", ints[0].FindElement("sexo").Text())
	assert.Equal(t, "2", ints[0].FindElement("estadoCivil").Text())
	assert.Equal(t, "S", ints[0].FindElement("firma").Text())

	// sin código SISGEN se usa el código interno de la condición
	assert.Equal(t, "COMPRADOR", ints[1].FindElement("condicion").Text())
	assert.Equal(t, "6", ints[1].FindElement("tipoDocumento").Text())
	assert.Equal(t, "TRANSPORTES ANDINOS S.A.C.", ints[1].FindElement("razonSocial").Text())
	assert.Nil(t, ints[1].FindElement("sexo"))
	assert.Equal(t, "N", ints[1].FindElement("firma").Text())
	assert.Equal(t, "11223344", ints[1].FindElement("representaA/numeroDocumento").Text())

	assert.Equal(t, "ABC-123", text("vehiculo/placa"))
	assert.Equal(t, "2020", text("vehiculo/anio"))
}

func TestBuild_SinVehiculoNiImporte(t *testing.T) {
	bc := buildContextVehicular()
	bc.Vehiculo = nil
	bc.Kardex.Importe = decimal.Zero
	out, err := NewXMLBuilderService().Build(bc)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	assert.Nil(t, doc.FindElement("//vehiculo"))
	assert.Nil(t, doc.FindElement("//cuantia"))
}

func TestBuild_ContextoIncompleto(t *testing.T) {
	_, err := NewXMLBuilderService().Build(&BuildContext{})
	assert.Error(t, err)
}

func TestDigest_EstableYSensibleAlContenido(t *testing.T) {
	b := NewXMLBuilderService()
	a1, err := b.Build(buildContextVehicular())
	require.NoError(t, err)
	a2, err := b.Build(buildContextVehicular())
	require.NoError(t, err)

	d1, err := Digest(a1)
	require.NoError(t, err)
	d2, err := Digest(a2)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
	assert.Len(t, d1, 64)

	bc := buildContextVehicular()
	bc.Kardex.FolioFinal = 13
	a3, err := b.Build(bc)
	require.NoError(t, err)
	d3, err := Digest(a3)
	require.NoError(t, err)
	assert.NotEqual(t, d1, d3)
}

func TestDigest_IgnoraDeclaracionYOrdenDeAtributos(t *testing.T) {
	d1, err := Digest([]byte(`<?xml version="1.0" encoding="UTF-8"?><a x="1" y="2"><b/></a>`))
	require.NoError(t, err)
	d2, err := Digest([]byte(`<a y='2' x='1'><b></b></a>`))
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}

func TestDigest_XMLInvalido(t *testing.T) {
	_, err := Digest([]byte("<a><b></a>"))
	assert.Error(t, err)
}
