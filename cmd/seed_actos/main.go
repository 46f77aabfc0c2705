// seed_actos genera un script SQL de upsert de tipos_acto a partir del catálogo
// de actos SISGEN (XML en ISO-8859-1).
//
// Uso: go run ./cmd/seed_actos [ruta/actos.xml] [salida.sql]
// Por defecto lee actos.xml y escribe internal/infrastructure/postgres/seeds/tipos_acto.sql.
//
// Formato esperado:
//
//	<catalogo>
//	  <acto codigo="0101" tipo="K" descripcion="Compraventa" abreviatura="CV"/>
//	</catalogo>
package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
)

type catalogo struct {
	Actos []actoXML `xml:"acto"`
}

type actoXML struct {
	Codigo      string `xml:"codigo,attr"`
	Tipo        string `xml:"tipo,attr"`
	Descripcion string `xml:"descripcion,attr"`
	Abreviatura string `xml:"abreviatura,attr"`
}

// acto fila de tipos_acto.
type acto struct {
	codigo       string
	descripcion  string
	tipoKardex   string
	codigoSISGEN string
}

var tiposKardex = map[string]bool{"K": true, "V": true, "N": true, "G": true, "T": true}

func main() {
	xmlPath := "actos.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "seeds", "tipos_acto.sql")
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	actos, omitidos, err := parseCatalogo(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, actos); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d actos (%d omitidos)\n", outPath, len(actos), omitidos)
}

// parseCatalogo decodifica el XML y normaliza los actos; omite los incompletos o con tipo desconocido.
func parseCatalogo(r io.Reader) ([]acto, int, error) {
	var c catalogo
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") || strings.EqualFold(charset, "latin1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&c); err != nil {
		return nil, 0, err
	}

	upper := cases.Upper(language.Spanish)
	porCodigo := make(map[string]acto)
	omitidos := 0
	for _, a := range c.Actos {
		sisgen := strings.TrimSpace(a.Codigo)
		tipo := strings.ToUpper(strings.TrimSpace(a.Tipo))
		desc := strings.Join(strings.Fields(a.Descripcion), " ")
		if sisgen == "" || desc == "" || !tiposKardex[tipo] {
			omitidos++
			continue
		}
		codigo := strings.ToUpper(strings.TrimSpace(a.Abreviatura))
		if codigo == "" {
			codigo = sisgen
		}
		porCodigo[codigo] = acto{
			codigo:       codigo,
			descripcion:  upper.String(desc),
			tipoKardex:   tipo,
			codigoSISGEN: sisgen,
		}
	}

	out := make([]acto, 0, len(porCodigo))
	for _, a := range porCodigo {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].codigo < out[j].codigo })
	return out, omitidos, nil
}

// writeSQL un INSERT ... ON CONFLICT por lote; la plantilla y el estado activo no se tocan.
func writeSQL(w io.Writer, actos []acto) error {
	if len(actos) == 0 {
		_, err := io.WriteString(w, "-- catálogo vacío\n")
		return err
	}
	var b strings.Builder
	b.WriteString("-- Tipos de acto (catálogo SISGEN)\n")
	b.WriteString("-- Generado por cmd/seed_actos\n\n")
	b.WriteString("INSERT INTO tipos_acto (codigo, descripcion, tipo_kardex, codigo_sisgen) VALUES\n")
	for i, a := range actos {
		sep := ","
		if i == len(actos)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s')%s\n",
			escapeSQL(a.codigo), escapeSQL(a.descripcion), a.tipoKardex, escapeSQL(a.codigoSISGEN), sep)
	}
	b.WriteString("ON CONFLICT (codigo) DO UPDATE SET\n")
	b.WriteString("  descripcion = EXCLUDED.descripcion,\n")
	b.WriteString("  tipo_kardex = EXCLUDED.tipo_kardex,\n")
	b.WriteString("  codigo_sisgen = EXCLUDED.codigo_sisgen;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
