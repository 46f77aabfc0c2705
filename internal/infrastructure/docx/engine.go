// Package docx reemplaza marcadores {{ CLAVE }} dentro de plantillas Word (.docx).
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// NamespaceW namespace principal de WordprocessingML.
const NamespaceW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// PlaceholderPattern sintaxis de marcadores: {{ CLAVE }} con letras, dígitos, "_" y ".".
var PlaceholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)

// partes del paquete con texto del documento.
var textPartRe = regexp.MustCompile(`^word/(document|header\d*|footer\d*|footnotes|endnotes)\.xml$`)

// Result documento generado y claves usadas en la plantilla sin valor en el contexto.
type Result struct {
	Document []byte
	Missing  []string
}

// Engine motor de plantillas .docx (zip + etree). No guarda estado; es seguro para uso concurrente.
type Engine struct{}

// NewEngine crea el motor.
func NewEngine() *Engine {
	return &Engine{}
}

// Render reemplaza los marcadores de la plantilla con los valores de ctx.
// Las claves ausentes se reemplazan por "" y se informan en Result.Missing (ordenadas, sin repetir).
// Las entradas del zip que no contienen texto se copian sin recomprimir.
func (e *Engine) Render(template []byte, ctx map[string]string) (*Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return nil, fmt.Errorf("docx: abrir plantilla: %w", err)
	}

	missing := map[string]struct{}{}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, f := range zr.File {
		if !textPartRe.MatchString(f.Name) {
			if err := zw.Copy(f); err != nil {
				return nil, fmt.Errorf("docx: copiar %s: %w", f.Name, err)
			}
			continue
		}
		data, err := readEntry(f)
		if err != nil {
			return nil, err
		}
		out, err := renderPart(data, ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("docx: %s: %w", f.Name, err)
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Deflate, Modified: f.Modified})
		if err != nil {
			return nil, fmt.Errorf("docx: escribir %s: %w", f.Name, err)
		}
		if _, err := w.Write(out); err != nil {
			return nil, fmt.Errorf("docx: escribir %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("docx: cerrar archivo: %w", err)
	}

	res := &Result{Document: buf.Bytes(), Missing: make([]string, 0, len(missing))}
	for k := range missing {
		res.Missing = append(res.Missing, k)
	}
	sort.Strings(res.Missing)
	return res, nil
}

// Placeholders lista las claves que usa la plantilla (ordenadas, sin repetir).
func (e *Engine) Placeholders(template []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return nil, fmt.Errorf("docx: abrir plantilla: %w", err)
	}
	seen := map[string]struct{}{}
	for _, f := range zr.File {
		if !textPartRe.MatchString(f.Name) {
			continue
		}
		data, err := readEntry(f)
		if err != nil {
			return nil, err
		}
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(data); err != nil {
			return nil, fmt.Errorf("docx: parsear %s: %w", f.Name, err)
		}
		for _, p := range paragraphs(doc.Root()) {
			text, _ := paragraphText(p)
			for _, m := range PlaceholderPattern.FindAllStringSubmatch(text, -1) {
				seen[m[1]] = struct{}{}
			}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("docx: abrir %s: %w", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("docx: leer %s: %w", f.Name, err)
	}
	return data, nil
}

// renderPart reemplaza los marcadores de una parte XML (document, header, footer...).
func renderPart(data []byte, ctx map[string]string, missing map[string]struct{}) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsear XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return data, nil
	}
	changed := false
	for _, p := range paragraphs(root) {
		if replaceParagraph(p, ctx, missing) {
			changed = true
		}
	}
	if !changed {
		return data, nil
	}
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("serializar XML: %w", err)
	}
	return out.Bytes(), nil
}

// textNode w:t con su desplazamiento dentro del texto concatenado del párrafo.
type textNode struct {
	el    *etree.Element
	start int
	text  string
}

func (n *textNode) end() int { return n.start + len(n.text) }

// replaceParagraph aplica los reemplazos sobre un w:p. Un marcador repartido en varios w:t
// se escribe en el primero y se borra de los siguientes, conservando el formato del run inicial.
func replaceParagraph(p *etree.Element, ctx map[string]string, missing map[string]struct{}) bool {
	text, nodes := paragraphText(p)
	matches := PlaceholderPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return false
	}

	touched := map[*textNode]bool{}
	// de derecha a izquierda: los prefijos de cada nodo no cambian con los reemplazos posteriores
	for mi := len(matches) - 1; mi >= 0; mi-- {
		m := matches[mi]
		s, e := m[0], m[1]
		key := text[m[2]:m[3]]
		value, ok := ctx[key]
		if !ok {
			missing[key] = struct{}{}
		}

		first, last := -1, -1
		for i, n := range nodes {
			if first < 0 && s >= n.start && s < n.end() {
				first = i
			}
			if e > n.start && e <= n.end() {
				last = i
			}
		}
		if first < 0 || last < 0 {
			continue
		}
		fn := nodes[first]
		if first == last {
			fn.el.SetText(currentText(fn)[:s-fn.start] + value + currentText(fn)[e-fn.start:])
			touched[fn] = true
			continue
		}
		fn.el.SetText(currentText(fn)[:s-fn.start] + value)
		touched[fn] = true
		for i := first + 1; i < last; i++ {
			nodes[i].el.SetText("")
			touched[nodes[i]] = true
		}
		ln := nodes[last]
		ln.el.SetText(currentText(ln)[e-ln.start:])
		touched[ln] = true
	}

	for n := range touched {
		n.el.CreateAttr("xml:space", "preserve")
		splitLineBreaks(n.el)
	}
	return true
}

// currentText texto actual del nodo; el desplazamiento original sigue siendo válido
// porque los reemplazos a la derecha solo alteran el final del texto.
func currentText(n *textNode) string {
	return n.el.Text()
}

// splitLineBreaks convierte los "\n" del texto de un w:t en w:br dentro del mismo run.
func splitLineBreaks(t *etree.Element) {
	text := t.Text()
	if !strings.Contains(text, "\n") {
		return
	}
	run := t.Parent()
	if run == nil {
		return
	}
	lines := strings.Split(text, "\n")
	t.SetText(lines[0])
	idx := t.Index() + 1
	for _, line := range lines[1:] {
		run.InsertChildAt(idx, etree.NewElement(t.Space+":br"))
		idx++
		nt := etree.NewElement(t.Space + ":t")
		nt.CreateAttr("xml:space", "preserve")
		nt.SetText(line)
		run.InsertChildAt(idx, nt)
		idx++
	}
}

// paragraphs devuelve todos los w:p del árbol, incluidos los anidados en tablas y cuadros de texto.
func paragraphs(root *etree.Element) []*etree.Element {
	var out []*etree.Element
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		if isW(el, "p") {
			out = append(out, el)
		}
		for _, c := range el.ChildElements() {
			walk(c)
		}
	}
	walk(root)
	return out
}

// paragraphText concatena los w:t propios del párrafo (sin entrar a párrafos anidados).
func paragraphText(p *etree.Element) (string, []*textNode) {
	var sb strings.Builder
	var nodes []*textNode
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, c := range el.ChildElements() {
			switch {
			case isW(c, "p"):
				continue
			case isW(c, "t"):
				nodes = append(nodes, &textNode{el: c, start: sb.Len(), text: c.Text()})
				sb.WriteString(c.Text())
			default:
				walk(c)
			}
		}
	}
	walk(p)
	return sb.String(), nodes
}

func isW(el *etree.Element, local string) bool {
	if el.Tag != local {
		return false
	}
	return el.Space == "w" || el.NamespaceURI() == NamespaceW
}
