package documentos

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/domain"
	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/gramatica"
)

// Plantillas de documentos extraprotocolares.
const (
	PlantillaPoder        = "poder.docx"
	PlantillaCarta        = "carta_notarial.docx"
	PlantillaLibro        = "legalizacion_libro.docx"
	prefijoPermisoViaje   = "permiso_viaje_"
	prefijoPlantillaPoder = "poder_"
)

// Rótulos de los grupos de permisos y poderes.
var (
	rotuloOtorgante   = gramatica.Forma{M: "PADRE", F: "MADRE", MP: "PADRES", FP: "MADRES"}
	rotuloMenor       = gramatica.Forma{M: "MENOR", F: "MENOR", MP: "MENORES", FP: "MENORES"}
	rotuloAcompanante = gramatica.Forma{M: "ACOMPAÑANTE", F: "ACOMPAÑANTE", MP: "ACOMPAÑANTES", FP: "ACOMPAÑANTES"}
	rotuloPoderdante  = gramatica.Forma{M: "PODERDANTE", F: "PODERDANTE", MP: "PODERDANTES", FP: "PODERDANTES"}
	rotuloApoderado   = gramatica.Forma{M: "APODERADO", F: "APODERADA", MP: "APODERADOS", FP: "APODERADAS"}
)

func miembrosConRol(ps []entity.Participante, rol string) []miembro {
	var out []miembro
	for _, p := range ps {
		if p.Rol == rol && p.Cliente != nil {
			out = append(out, miembro{parte: p.Cliente})
		}
	}
	return out
}

// PermisoViaje genera el permiso de viaje (interior o exterior).
func (s *Service) PermisoViaje(ctx context.Context, userID, id string) (*dto.DocumentoResponse, error) {
	p, err := s.Permisos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	otorgantes := miembrosConRol(p.Participantes, entity.RolOtorgante)
	menores := miembrosConRol(p.Participantes, entity.RolMenor)
	if len(otorgantes) == 0 || len(menores) == 0 {
		return nil, faltan("el permiso %s requiere otorgante y menor", p.Numero)
	}

	c, err := s.base(ctx, p.FechaIngreso, p.Numero)
	if err != nil {
		return nil, err
	}
	c.bloque("OTORGANTE", rotuloOtorgante, otorgantes)
	gm := c.bloque("MENOR", rotuloMenor, menores)
	c.bloque("ACOMPANANTE", rotuloAcompanante, miembrosConRol(p.Participantes, entity.RolAcompanante))
	c["MENOR_HIJO"] = gramatica.Hijo.Para(gm)

	frases := make([]string, 0, len(menores))
	edades := make([]string, 0, len(menores))
	for _, m := range menores {
		f := personaNatural(m.parte)
		if e := edad(m.parte.EdadEn(p.FechaIngreso)); e != "" {
			f += ", " + e
			edades = append(edades, e)
		}
		frases = append(frases, f)
	}
	c["MENOR"] = gramatica.Unir(frases)
	c["MENOR_EDADES"] = gramatica.Unir(edades)

	c.set("TIPO", p.Tipo)
	c.set("DESTINO", p.Destino)
	c.set("MEDIO_TRANSPORTE", p.MedioTransporte)
	c.set("MOTIVO", p.Motivo)
	c.fecha("FECHA_SALIDA", p.FechaSalida)
	c.fecha("FECHA_RETORNO", p.FechaRetorno)

	return s.generar(ctx, generacion{
		tipo:         entity.DocPermisoViaje,
		referenciaID: p.ID,
		numero:       p.Numero,
		anio:         p.Anio,
		plantillas:   []string{prefijoPermisoViaje + strings.ToLower(p.Tipo) + ".docx"},
		contexto:     c,
		userID:       userID,
	})
}

// edad "DE 10 AÑOS DE EDAD"; vacío si no se conoce la fecha de nacimiento.
func edad(anios int) string {
	switch {
	case anios < 0:
		return ""
	case anios == 1:
		return "DE 1 AÑO DE EDAD"
	}
	return fmt.Sprintf("DE %d AÑOS DE EDAD", anios)
}

// Poder genera el poder fuera de registro.
func (s *Service) Poder(ctx context.Context, userID, id string) (*dto.DocumentoResponse, error) {
	p, err := s.Poderes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	poderdantes := miembrosConRol(p.Participantes, entity.RolPoderdante)
	apoderados := miembrosConRol(p.Participantes, entity.RolApoderado)
	if len(poderdantes) == 0 || len(apoderados) == 0 {
		return nil, faltan("el poder %s requiere poderdante y apoderado", p.Numero)
	}

	c, err := s.base(ctx, p.FechaIngreso, p.Numero)
	if err != nil {
		return nil, err
	}
	c.bloque("PODERDANTE", rotuloPoderdante, poderdantes)
	c.bloque("APODERADO", rotuloApoderado, apoderados)
	c["FACULTADES"] = strings.TrimSpace(p.Facultades)
	c.set("TIPO_PODER", p.Tipo)
	if p.VigenciaHasta != nil {
		c["VIGENCIA"] = "HASTA EL " + gramatica.FechaLarga(*p.VigenciaHasta)
	} else {
		c["VIGENCIA"] = "INDEFINIDA"
	}

	return s.generar(ctx, generacion{
		tipo:         entity.DocPoder,
		referenciaID: p.ID,
		numero:       p.Numero,
		anio:         p.Anio,
		plantillas:   []string{prefijoPlantillaPoder + strings.ToLower(p.Tipo) + ".docx", PlantillaPoder},
		contexto:     c,
		userID:       userID,
	})
}

// Carta genera la carta notarial con su constancia de diligencia.
func (s *Service) Carta(ctx context.Context, userID, id string) (*dto.DocumentoResponse, error) {
	ca, err := s.Cartas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ca == nil {
		return nil, domain.ErrNotFound
	}
	c, err := s.base(ctx, ca.FechaIngreso, ca.Numero)
	if err != nil {
		return nil, err
	}
	c.set("REMITENTE", ca.RemitenteNombre)
	c["REMITENTE_DOCUMENTO"] = ca.RemitenteDocumento
	c.set("REMITENTE_DIRECCION", ca.RemitenteDireccion)
	c.set("DESTINATARIO", ca.DestinatarioNombre)
	c.set("DESTINATARIO_DIRECCION", ca.DestinatarioDireccion)
	c.set("DESTINATARIO_DISTRITO", ca.DestinatarioDistrito)
	// el contenido conserva mayúsculas y saltos de línea
	c["CONTENIDO"] = ca.Contenido
	c.fecha("FECHA_DILIGENCIA", ca.FechaDiligencia)
	c.set("DILIGENCIADOR", ca.Diligenciador)
	c["RESULTADO"] = resultadoCarta(ca.Resultado)

	return s.generar(ctx, generacion{
		tipo:         entity.DocCarta,
		referenciaID: ca.ID,
		numero:       ca.Numero,
		anio:         ca.Anio,
		plantillas:   []string{PlantillaCarta},
		contexto:     c,
		userID:       userID,
	})
}

func resultadoCarta(r string) string {
	switch r {
	case entity.CartaEntregada:
		return "ENTREGADA"
	case entity.CartaBajoPuerta:
		return "DEJADA BAJO PUERTA"
	case entity.CartaNoEntregada:
		return "NO ENTREGADA"
	}
	return "PENDIENTE DE DILIGENCIA"
}

// Libro genera la constancia de legalización de apertura de libro.
func (s *Service) Libro(ctx context.Context, userID, id string) (*dto.DocumentoResponse, error) {
	l, err := s.Libros.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	cl, err := s.Clientes.GetByID(ctx, l.ClienteID)
	if err != nil {
		return nil, err
	}
	if cl == nil {
		return nil, faltan("el cliente del libro %s no existe", l.Numero)
	}
	fecha := l.FechaIngreso
	if l.FechaLegalizacion != nil {
		fecha = *l.FechaLegalizacion
	}
	c, err := s.base(ctx, fecha, l.Numero)
	if err != nil {
		return nil, err
	}
	c.set("RAZON_SOCIAL", cl.NombreCompleto())
	c["DOCUMENTO"] = cl.NumeroDocumento
	c["TIPO_DOCUMENTO"] = cl.TipoDocumento
	if cl.EsJuridica() {
		c["RUC"] = cl.NumeroDocumento
	} else {
		c["RUC"] = ""
	}
	c.set("DOMICILIO", cl.Direccion)
	c.set("TIPO_LIBRO", l.TipoLibro)
	c["NUMERO_LIBRO"] = strconv.Itoa(l.NumeroLibro)
	c["NUMERO_LIBRO_LETRAS"] = gramatica.Ordinal(l.NumeroLibro)
	c["FOLIOS"] = strconv.Itoa(l.Folios)
	c["FOLIOS_LETRAS"] = gramatica.EnLetras(int64(l.Folios))
	c.set("TIPO_LEGALIZACION", strings.ReplaceAll(l.TipoLegalizacion, "_", " "))
	c.fecha("FECHA_LEGALIZACION", l.FechaLegalizacion)

	return s.generar(ctx, generacion{
		tipo:         entity.DocLibro,
		referenciaID: l.ID,
		numero:       l.Numero,
		anio:         l.Anio,
		plantillas:   []string{PlantillaLibro},
		contexto:     c,
		userID:       userID,
	})
}
