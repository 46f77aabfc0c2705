package documentos

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/gramatica"
	"github.com/jhoicas/notaria-api/pkg/sisgen"
)

// contexto valores de los marcadores {{ CLAVE }}.
type contexto map[string]string

func (c contexto) set(key, value string) {
	c[key] = gramatica.Mayusculas(value)
}

// fecha CLAVE ("19 DE OCTUBRE DE 2026") y CLAVE_LETRAS; vacías si t es nil.
func (c contexto) fecha(key string, t *time.Time) {
	if t == nil {
		c[key] = ""
		c[key+"_LETRAS"] = ""
		return
	}
	c[key] = gramatica.FechaLarga(*t)
	c[key+"_LETRAS"] = gramatica.FechaEnLetras(*t)
}

// base claves comunes: datos de la notaría, fecha del documento, año y número.
func (s *Service) base(ctx context.Context, fecha time.Time, numero string) (contexto, error) {
	n, err := s.Notaria.Get(ctx)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, faltan("registre los datos de la notaría antes de generar documentos")
	}
	c := contexto{}
	c.set("NOTARIA", n.Nombre)
	c.set("NOTARIO", n.Notario)
	c.set("COLEGIATURA", n.Colegiatura)
	c.set("RUC_NOTARIA", n.RUC)
	c.set("DIRECCION_NOTARIA", n.Direccion)
	c.set("DISTRITO_NOTARIA", n.Distrito)
	c.set("PROVINCIA_NOTARIA", n.Provincia)
	c.set("DEPARTAMENTO_NOTARIA", n.Departamento)
	c.fecha("FECHA", &fecha)
	c["ANIO"] = strconv.Itoa(fecha.Year())
	c["NUMERO"] = numero
	return c, nil
}

// miembro integrante de un grupo: la parte y, si interviene representada, sus representantes.
type miembro struct {
	parte          *entity.Cliente
	representantes []*entity.Cliente
	partida        string
}

// femenino género gramatical del miembro; la persona jurídica concuerda en femenino (LA EMPRESA).
func (m miembro) femenino() bool {
	return m.parte.EsFemenino() || m.parte.EsJuridica()
}

// bloque agrega las claves del grupo con prefijo p:
// P, P_NOMBRES, P_ART, P_LABEL, P_DEL, P_AL, P_SU, P_O, P_N, P_S, P_CANT.
func (c contexto) bloque(p string, label gramatica.Forma, ms []miembro) gramatica.Grupo {
	fems := make([]bool, 0, len(ms))
	frases := make([]string, 0, len(ms))
	nombres := make([]string, 0, len(ms))
	for _, m := range ms {
		fems = append(fems, m.femenino())
		frases = append(frases, frase(m))
		nombres = append(nombres, gramatica.Mayusculas(m.parte.NombreCompleto()))
	}
	g := gramatica.NuevoGrupo(fems...)
	rotulo := label.Para(g)

	c[p] = gramatica.Unir(frases)
	c[p+"_NOMBRES"] = gramatica.Unir(nombres)
	c[p+"_LABEL"] = rotulo
	c[p+"_CANT"] = strconv.Itoa(len(ms))
	if len(ms) == 0 {
		for _, k := range []string{"_ART", "_DEL", "_AL", "_SU", "_O", "_N", "_S"} {
			c[p+k] = ""
		}
		return g
	}
	c[p+"_ART"] = gramatica.Articulo.Para(g) + " " + rotulo
	c[p+"_DEL"] = gramatica.Del.Para(g)
	c[p+"_AL"] = gramatica.Al.Para(g)
	c[p+"_SU"] = gramatica.Su.Para(g)
	c[p+"_O"] = gramatica.TerminacionO.Para(g)
	c[p+"_N"] = gramatica.VerboPlural.Para(g)
	c[p+"_S"] = gramatica.SustPlural.Para(g)
	return g
}

// frase descripción completa de la parte para el cuerpo del documento.
func frase(m miembro) string {
	cl := m.parte
	if cl.EsJuridica() {
		segs := []string{gramatica.Mayusculas(cl.RazonSocial)}
		if cl.NumeroDocumento != "" {
			segs = append(segs, "CON RUC N° "+cl.NumeroDocumento)
		}
		if d := domicilio(cl); d != "" {
			segs = append(segs, d)
		}
		out := strings.Join(segs, ", ")
		if len(m.representantes) > 0 {
			reps := make([]string, 0, len(m.representantes))
			for _, r := range m.representantes {
				reps = append(reps, personaNatural(r))
			}
			out += ", DEBIDAMENTE REPRESENTADA POR " + gramatica.Unir(reps)
			if m.partida != "" {
				out += " SEGÚN PODER INSCRITO EN LA PARTIDA " + gramatica.Mayusculas(m.partida)
			}
		}
		return out
	}
	out := personaNatural(cl)
	if len(m.representantes) > 0 {
		reps := make([]string, 0, len(m.representantes))
		for _, r := range m.representantes {
			reps = append(reps, personaNatural(r))
		}
		out += ", DEBIDAMENTE REPRESENTAD" + gramatica.TerminacionO.Para(gramatica.NuevoGrupo(cl.EsFemenino())) + " POR " + gramatica.Unir(reps)
		if m.partida != "" {
			out += " SEGÚN PODER INSCRITO EN LA PARTIDA " + gramatica.Mayusculas(m.partida)
		}
	}
	return out
}

// personaNatural DON|DOÑA NOMBRE, DE NACIONALIDAD ..., IDENTIFICADO CON ... (segmentos vacíos se omiten).
func personaNatural(cl *entity.Cliente) string {
	fem := cl.EsFemenino()
	g := gramatica.NuevoGrupo(fem)
	segs := []string{gramatica.Tratamiento.Para(g) + " " + gramatica.Mayusculas(cl.NombreCompleto())}
	if cl.Nacionalidad != "" {
		segs = append(segs, "DE NACIONALIDAD "+gramatica.Nacionalidad(cl.Nacionalidad, fem))
	}
	if cl.NumeroDocumento != "" {
		segs = append(segs, fmt.Sprintf("IDENTIFICAD%s CON %s N° %s", gramatica.TerminacionO.Para(g), descripcionDocumento(cl.TipoDocumento), cl.NumeroDocumento))
	}
	if cl.EstadoCivil != "" {
		segs = append(segs, "DE ESTADO CIVIL "+estadoCivil(cl.EstadoCivil, fem))
	}
	if cl.Profesion != "" {
		segs = append(segs, "DE PROFESIÓN "+gramatica.Mayusculas(cl.Profesion))
	}
	if d := domicilio(cl); d != "" {
		segs = append(segs, d)
	}
	return strings.Join(segs, ", ")
}

// domicilio CON DOMICILIO EN DIR, DISTRITO DE X, PROVINCIA DE Y Y DEPARTAMENTO DE Z.
func domicilio(cl *entity.Cliente) string {
	var locs []string
	if cl.Distrito != "" {
		locs = append(locs, "DISTRITO DE "+gramatica.Mayusculas(cl.Distrito))
	}
	if cl.Provincia != "" {
		locs = append(locs, "PROVINCIA DE "+gramatica.Mayusculas(cl.Provincia))
	}
	if cl.Departamento != "" {
		locs = append(locs, "DEPARTAMENTO DE "+gramatica.Mayusculas(cl.Departamento))
	}
	dir := gramatica.Mayusculas(cl.Direccion)
	switch {
	case dir == "" && len(locs) == 0:
		return ""
	case dir == "":
		return "CON DOMICILIO EN EL " + gramatica.Unir(locs)
	case len(locs) == 0:
		return "CON DOMICILIO EN " + dir
	}
	return "CON DOMICILIO EN " + dir + ", " + gramatica.Unir(locs)
}

func descripcionDocumento(tipo string) string {
	if d, ok := sisgen.DescripcionTipoDocumento[tipo]; ok {
		return d
	}
	return tipo
}

// estadoCivil SOLTERO/SOLTERA, CASADO/CASADA...; CONVIVIENTE no varía.
func estadoCivil(ec string, femenino bool) string {
	ec = gramatica.Mayusculas(ec)
	if femenino && strings.HasSuffix(ec, "O") {
		return strings.TrimSuffix(ec, "O") + "A"
	}
	return ec
}

// agrupar arma los miembros a partir de los contratantes: quien interviene en representación
// se agrega como representante de la parte representada.
func agrupar(cs []*entity.ContratanteDetalle) []miembro {
	var out []miembro
	idx := map[string]int{}
	for _, c := range cs {
		if c.Representado != nil {
			rep := c.Cliente
			if i, ok := idx[c.Representado.ID]; ok {
				out[i].representantes = append(out[i].representantes, &rep)
				continue
			}
			idx[c.Representado.ID] = len(out)
			out = append(out, miembro{parte: c.Representado, representantes: []*entity.Cliente{&rep}, partida: c.PartidaPoder})
			continue
		}
		if _, ok := idx[c.ClienteID]; ok {
			continue
		}
		cl := c.Cliente
		idx[c.ClienteID] = len(out)
		out = append(out, miembro{parte: &cl})
	}
	return out
}

// formaCondicion rótulo concordado de una condición del catálogo.
func formaCondicion(c entity.Condicion) gramatica.Forma {
	return gramatica.Forma{
		M:  gramatica.Mayusculas(c.Masculino),
		F:  gramatica.Mayusculas(c.Femenino),
		MP: gramatica.Mayusculas(c.PluralMasculino),
		FP: gramatica.Mayusculas(c.PluralFemenino),
	}
}

// clave normaliza un código de condición para usarlo como prefijo (CONYUGE, SOLICITANTE...).
func clave(codigo string) string {
	return strings.ReplaceAll(gramatica.Normalizar(codigo), " ", "_")
}
