package sisgen

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
	pkgsisgen "github.com/jhoicas/notaria-api/pkg/sisgen"
)

// VersionEsquema versión del documento notarial enviado.
const VersionEsquema = "1.0"

// XMLBuilderService construye el XML <documentoNotarial> de un kardex.
type XMLBuilderService struct{}

// NewXMLBuilderService crea el servicio.
func NewXMLBuilderService() *XMLBuilderService {
	return &XMLBuilderService{}
}

// Build genera el XML (UTF-8, indentado). Los datos obligatorios deben validarse antes;
// aquí solo se verifica que el contexto esté completo.
func (s *XMLBuilderService) Build(bc *BuildContext) ([]byte, error) {
	if bc == nil || bc.Kardex == nil || bc.Notaria == nil || bc.Acto == nil {
		return nil, fmt.Errorf("sisgen: faltan kardex, notaría o acto en el contexto")
	}
	k := bc.Kardex

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("documentoNotarial")
	root.CreateAttr("version", VersionEsquema)

	notaria := root.CreateElement("notaria")
	addText(notaria, "codigo", bc.Notaria.CodigoSISGEN)
	addText(notaria, "notario", bc.Notaria.Notario)

	addText(root, "kardex", k.Numero)
	addText(root, "tipoInstrumento", pkgsisgen.CodigoOrDefault(pkgsisgen.CodigosTipoInstrumento, k.TipoKardex, k.TipoKardex))
	addText(root, "numeroInstrumento", k.NumeroEscritura)
	if k.FechaEscritura != nil {
		addText(root, "fechaInstrumento", k.FechaEscritura.Format("2006-01-02"))
	}
	addText(root, "folioInicial", strconv.Itoa(k.FolioInicial))
	addText(root, "folioFinal", strconv.Itoa(k.FolioFinal))

	acto := root.CreateElement("acto")
	addText(acto, "codigo", bc.Acto.CodigoSISGEN)
	addText(acto, "descripcion", bc.Acto.Descripcion)
	if !k.Importe.IsZero() {
		c := addText(acto, "cuantia", k.Importe.StringFixed(2))
		c.CreateAttr("moneda", pkgsisgen.CodigoOrDefault(pkgsisgen.CodigosMoneda, k.Moneda, "1"))
	}

	intervinientes := root.CreateElement("intervinientes")
	for _, c := range bc.Contratantes {
		s.writeInterviniente(intervinientes, c)
	}

	if v := bc.Vehiculo; v != nil {
		ve := root.CreateElement("vehiculo")
		addText(ve, "placa", v.Placa)
		addText(ve, "serie", v.NumeroSerie)
		addText(ve, "motor", v.NumeroMotor)
		addText(ve, "marca", v.Marca)
		addText(ve, "modelo", v.Modelo)
		if v.AnioFabricacion > 0 {
			addText(ve, "anio", strconv.Itoa(v.AnioFabricacion))
		}
	}

	doc.Indent(2)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("sisgen: serializar XML: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *XMLBuilderService) writeInterviniente(parent *etree.Element, c *entity.ContratanteDetalle) {
	cl := c.Cliente
	el := parent.CreateElement("interviniente")

	condicion := c.Condicion.CodigoSISGEN
	if condicion == "" {
		condicion = c.CondicionCodigo
	}
	addText(el, "condicion", condicion)
	addText(el, "tipoPersona", cl.TipoPersona)
	addText(el, "tipoDocumento", pkgsisgen.CodigoOrDefault(pkgsisgen.CodigosTipoDocumento, cl.TipoDocumento, "0"))
	addText(el, "numeroDocumento", cl.NumeroDocumento)
	if cl.EsJuridica() {
		addText(el, "razonSocial", cl.RazonSocial)
	} else {
		addText(el, "apellidoPaterno", cl.ApellidoPaterno)
		addText(el, "apellidoMaterno", cl.ApellidoMaterno)
		addText(el, "nombres", cl.Nombres)
		addText(el, "sexo", cl.Sexo)
		addOptional(el, "estadoCivil", pkgsisgen.CodigoOrDefault(pkgsisgen.CodigosEstadoCivil, cl.EstadoCivil, ""))
		addOptional(el, "nacionalidad", cl.Nacionalidad)
	}
	addOptional(el, "ubigeo", cl.Ubigeo)
	addOptional(el, "direccion", cl.Direccion)
	if c.Firma {
		addText(el, "firma", "S")
	} else {
		addText(el, "firma", "N")
	}
	if c.FechaFirma != nil {
		addText(el, "fechaFirma", c.FechaFirma.Format("2006-01-02"))
	}
	if c.Representado != nil {
		rep := el.CreateElement("representaA")
		addText(rep, "tipoDocumento", pkgsisgen.CodigoOrDefault(pkgsisgen.CodigosTipoDocumento, c.Representado.TipoDocumento, "0"))
		addText(rep, "numeroDocumento", c.Representado.NumeroDocumento)
		addOptional(rep, "partidaPoder", c.PartidaPoder)
	}
}

func addText(parent *etree.Element, tag, value string) *etree.Element {
	el := parent.CreateElement(tag)
	el.SetText(value)
	return el
}

func addOptional(parent *etree.Element, tag, value string) {
	if value != "" {
		addText(parent, tag, value)
	}
}
