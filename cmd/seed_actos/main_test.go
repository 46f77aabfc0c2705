package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func latin1(t *testing.T, s string) []byte {
	t.Helper()
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return b
}

func TestParseCatalogo_ISO88591(t *testing.T) {
	xml := `<?xml version="1.0" encoding="ISO-8859-1"?>
<catalogo>
  <acto codigo="0102" tipo="K" descripcion="Donación" abreviatura="don"/>
  <acto codigo="0101" tipo="k" descripcion="  Compraventa   de inmueble " abreviatura="CV"/>
  <acto codigo="0501" tipo="V" descripcion="Transferencia vehicular"/>
  <acto codigo="" tipo="K" descripcion="sin código"/>
  <acto codigo="0999" tipo="X" descripcion="tipo desconocido"/>
</catalogo>`

	actos, omitidos, err := parseCatalogo(bytes.NewReader(latin1(t, xml)))
	require.NoError(t, err)
	assert.Equal(t, 2, omitidos)
	require.Len(t, actos, 3)

	assert.Equal(t, acto{codigo: "0501", descripcion: "TRANSFERENCIA VEHICULAR", tipoKardex: "V", codigoSISGEN: "0501"}, actos[0])
	assert.Equal(t, acto{codigo: "CV", descripcion: "COMPRAVENTA DE INMUEBLE", tipoKardex: "K", codigoSISGEN: "0101"}, actos[1])
	assert.Equal(t, acto{codigo: "DON", descripcion: "DONACIÓN", tipoKardex: "K", codigoSISGEN: "0102"}, actos[2])
}

func TestWriteSQL_UpsertEscapado(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, []acto{
		{codigo: "CV", descripcion: "COMPRAVENTA", tipoKardex: "K", codigoSISGEN: "0101"},
		{codigo: "DA", descripcion: "DACIÓN EN PAGO D'ACUERDO", tipoKardex: "K", codigoSISGEN: "0110"},
	}))
	sql := buf.String()

	assert.Contains(t, sql, "('CV', 'COMPRAVENTA', 'K', '0101'),\n")
	assert.Contains(t, sql, "('DA', 'DACIÓN EN PAGO D''ACUERDO', 'K', '0110')\n")
	assert.True(t, strings.HasSuffix(sql, "codigo_sisgen = EXCLUDED.codigo_sisgen;\n"))
}

func TestWriteSQL_Vacio(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, nil))
	assert.Equal(t, "-- catálogo vacío\n", buf.String())
}
