// Package pdf genera la carátula del kardex en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Notaría + Notario      │  KARDEX N° + QR           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ACTO / CONTRATO / FECHAS / ESCRITURA / FOLIOS              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Condición | Nombre | Documento | Firma              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/gramatica"
)

// sinDato texto para campos vacíos.
const sinDato = "-"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 90, Green: 20, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// CaratulaGenerator genera la carátula del kardex con Maroto v2.
type CaratulaGenerator struct{}

// NewCaratulaGenerator construye el generador.
func NewCaratulaGenerator() *CaratulaGenerator { return &CaratulaGenerator{} }

// GenerateCaratula genera el PDF y devuelve sus bytes.
func (g *CaratulaGenerator) GenerateCaratula(
	_ context.Context,
	notaria *entity.Notaria,
	k *entity.Kardex,
	acto *entity.TipoActo,
	contratantes []*entity.ContratanteDetalle,
) ([]byte, error) {
	if notaria == nil || k == nil {
		return nil, fmt.Errorf("pdf: faltan notaría o kardex")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex "+k.Numero, true).
		WithAuthor(notaria.Nombre, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(notaria, k))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(datosRows(k, acto)...)
	m.AddRows(line.NewRow(4))
	m.AddRows(tableHeaderRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(contratanteRows(contratantes)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	if k.Observaciones != "" {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("OBSERVACIONES: "+k.Observaciones, props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: notaría y notario (izq), número de kardex y QR (der).
func headerRow(n *entity.Notaria, k *entity.Kardex) core.Row {
	return row.New(30).Add(
		col.New(7).Add(
			text.New(nonEmpty(n.Nombre, "NOTARÍA"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
			text.New("NOTARIO: "+n.Notario, props.Text{Size: 9, Top: 10}),
			text.New(fmt.Sprintf("%s - %s", nonEmpty(n.Direccion, sinDato), nonEmpty(n.Distrito, sinDato)), props.Text{
				Size: 8, Top: 16, Color: colorGray,
			}),
		),
		col.New(3).Add(
			text.New("KARDEX", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 4,
			}),
			text.New(k.Numero, props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Right, Top: 10,
			}),
		),
		col.New(2).Add(code.NewQr(k.Numero, props.Rect{Percent: 90, Center: true})),
	)
}

func datosRows(k *entity.Kardex, acto *entity.TipoActo) []core.Row {
	descActo := k.ActoCodigo
	if acto != nil {
		descActo = acto.Descripcion
	}
	fechaEscritura := sinDato
	if k.FechaEscritura != nil {
		fechaEscritura = gramatica.FechaCorta(*k.FechaEscritura)
	}
	folios := sinDato
	if k.FolioInicial > 0 {
		folios = strconv.Itoa(k.FolioInicial) + " - " + strconv.Itoa(k.FolioFinal)
	}
	return []core.Row{
		dato("ACTO", descActo, "ESTADO", k.Estado),
		dato("CONTRATO", nonEmpty(k.Contrato, sinDato), "FECHA INGRESO", gramatica.FechaCorta(k.FechaIngreso)),
		dato("ESCRITURA N°", nonEmpty(k.NumeroEscritura, sinDato), "FECHA ESCRITURA", fechaEscritura),
		dato("FOLIOS", folios, "MINUTA", nonEmpty(k.NumeroMinuta, sinDato)),
		dato("IMPORTE", gramatica.SimboloMoneda(k.Moneda)+" "+gramatica.FormatoMonto(k.Importe), "REFERENCIA", nonEmpty(k.Referencia, sinDato)),
	}
}

func dato(l1, v1, l2, v2 string) core.Row {
	label := func(s string) core.Component {
		return text.New(s+":", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Color: colorPrimary})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Top: 1})
	}
	return row.New(7).Add(
		col.New(2).Add(label(l1)),
		col.New(4).Add(value(v1)),
		col.New(2).Add(label(l2)),
		col.New(4).Add(value(v2)),
	)
}

// tableHeaderRow: cabecera de la tabla de contratantes.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Condición", 3, align.Left),
		h("Nombre / Razón social", 5, align.Left),
		h("Documento", 3, align.Left),
		h("Firma", 1, align.Center),
	)
}

// contratanteRows: una fila por contratante.
func contratanteRows(cs []*entity.ContratanteDetalle) []core.Row {
	if len(cs) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sin contratantes registrados", props.Text{Size: 8, Top: 1, Color: colorGray, Align: align.Center}),
		))}
	}
	result := make([]core.Row, 0, len(cs))
	for _, c := range cs {
		condicion := nonEmpty(c.Condicion.Masculino, c.CondicionCodigo)
		if c.Cliente.EsFemenino() && c.Condicion.Femenino != "" {
			condicion = c.Condicion.Femenino
		}
		firma := "NO"
		if c.Firma {
			firma = "SÍ"
		}
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(condicion, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(c.Cliente.NombreCompleto(), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(c.Cliente.TipoDocumento+" "+c.Cliente.NumeroDocumento, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(firma, props.Text{Size: 8, Top: 1, Align: align.Center})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
