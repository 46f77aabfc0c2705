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

// Plantillas de documentos protocolares.
const (
	PlantillaVehicular            = "transferencia_vehicular.docx"
	PlantillaNoContencioso        = "no_contencioso.docx"
	prefijoPlantillaNoContencioso = "no_contencioso_"
)

func (s *Service) kardex(ctx context.Context, id, tipo string) (*entity.Kardex, []*entity.ContratanteDetalle, error) {
	k, err := s.Kardex.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if k == nil {
		return nil, nil, domain.ErrNotFound
	}
	if k.TipoKardex != tipo {
		return nil, nil, fmt.Errorf("%w: el kardex %s no es de tipo %s", domain.ErrInvalidInput, k.Numero, tipo)
	}
	cs, err := s.Kardex.ListContratantes(ctx, k.ID)
	if err != nil {
		return nil, nil, err
	}
	return k, cs, nil
}

// baseKardex claves comunes de los instrumentos protocolares.
func (s *Service) baseKardex(ctx context.Context, k *entity.Kardex) (contexto, error) {
	fecha := k.FechaIngreso
	if k.FechaEscritura != nil {
		fecha = *k.FechaEscritura
	}
	c, err := s.base(ctx, fecha, k.Numero)
	if err != nil {
		return nil, err
	}
	c["KARDEX"] = k.Numero
	c["ESCRITURA"] = k.NumeroEscritura
	if n, err := strconv.Atoi(k.NumeroEscritura); err == nil {
		c["ESCRITURA_LETRAS"] = gramatica.EnLetras(int64(n))
	} else {
		c["ESCRITURA_LETRAS"] = ""
	}
	c.fecha("FECHA_ESCRITURA", k.FechaEscritura)
	c["FOLIO_INICIAL"] = folio(k.FolioInicial)
	c["FOLIO_FINAL"] = folio(k.FolioFinal)
	c["MINUTA"] = k.NumeroMinuta
	c.set("CONTRATO", k.Contrato)
	c.set("REFERENCIA", k.Referencia)
	return c, nil
}

func folio(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// Vehicular genera la transferencia vehicular de un kardex V con su vehículo y ambas partes.
func (s *Service) Vehicular(ctx context.Context, userID, kardexID string) (*dto.DocumentoResponse, error) {
	k, cs, err := s.kardex(ctx, kardexID, entity.KardexVehicular)
	if err != nil {
		return nil, err
	}
	v, err := s.Kardex.GetVehiculo(ctx, k.ID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, faltan("el kardex %s no tiene vehículo registrado", k.Numero)
	}
	var vendedores, compradores []*entity.ContratanteDetalle
	for _, c := range cs {
		switch c.Condicion.Lado {
		case entity.LadoOtorgante:
			vendedores = append(vendedores, c)
		case entity.LadoBeneficiario:
			compradores = append(compradores, c)
		}
	}
	if len(vendedores) == 0 {
		return nil, faltan("el kardex %s no tiene vendedor", k.Numero)
	}
	if len(compradores) == 0 {
		return nil, faltan("el kardex %s no tiene comprador", k.Numero)
	}

	c, err := s.baseKardex(ctx, k)
	if err != nil {
		return nil, err
	}
	plantillas := []string{PlantillaVehicular}
	acto, err := s.Catalogos.GetTipoActo(ctx, k.ActoCodigo)
	if err != nil {
		return nil, err
	}
	if acto != nil {
		c.set("ACTO", acto.Descripcion)
		plantillas = append([]string{acto.Plantilla}, plantillas...)
	}
	c.bloque("VENDEDOR", formaCondicion(vendedores[0].Condicion), agrupar(vendedores))
	c.bloque("COMPRADOR", formaCondicion(compradores[0].Condicion), agrupar(compradores))

	c.set("PLACA", v.Placa)
	c.set("MARCA", v.Marca)
	c.set("MODELO", v.Modelo)
	c.set("CLASE", v.Clase)
	c.set("CATEGORIA", v.Categoria)
	c.set("CARROCERIA", v.Carroceria)
	c.set("COLOR", v.Color)
	if v.AnioFabricacion > 0 {
		c["ANIO_FABRICACION"] = strconv.Itoa(v.AnioFabricacion)
	} else {
		c["ANIO_FABRICACION"] = ""
	}
	c.set("SERIE", v.NumeroSerie)
	c.set("MOTOR", v.NumeroMotor)
	c.set("COMBUSTIBLE", v.Combustible)
	c.set("PARTIDA", v.PartidaRegistral)
	c.set("ZONA_REGISTRAL", v.ZonaRegistral)
	c["PRECIO"] = gramatica.FormatoMonto(v.Precio)
	c["PRECIO_LETRAS"] = gramatica.ImporteEnLetras(v.Precio)
	c["MONEDA"] = gramatica.MonedaEnLetras(v.Moneda)
	c["SIMBOLO_MONEDA"] = gramatica.SimboloMoneda(v.Moneda)
	c.set("FORMA_PAGO", formaPago(v.FormaPago))
	c.set("MEDIO_PAGO", strings.ReplaceAll(v.MedioPago, "_", " "))

	return s.generar(ctx, generacion{
		tipo:         entity.DocVehicular,
		referenciaID: k.ID,
		numero:       k.Numero,
		anio:         k.Anio,
		plantillas:   plantillas,
		contexto:     c,
		userID:       userID,
	})
}

func formaPago(f string) string {
	switch f {
	case entity.FormaPagoContado:
		return "AL CONTADO"
	case entity.FormaPagoCredito:
		return "AL CRÉDITO"
	}
	return f
}

// NoContencioso genera el documento de un asunto no contencioso (kardex N): un grupo por condición.
func (s *Service) NoContencioso(ctx context.Context, userID, kardexID string) (*dto.DocumentoResponse, error) {
	k, cs, err := s.kardex(ctx, kardexID, entity.KardexNoContencioso)
	if err != nil {
		return nil, err
	}
	if len(cs) == 0 {
		return nil, faltan("el kardex %s no tiene intervinientes", k.Numero)
	}
	acto, err := s.Catalogos.GetTipoActo(ctx, k.ActoCodigo)
	if err != nil {
		return nil, err
	}
	if acto == nil {
		return nil, faltan("el acto %s del kardex no existe en el catálogo", k.ActoCodigo)
	}

	c, err := s.baseKardex(ctx, k)
	if err != nil {
		return nil, err
	}
	c.set("ACTO", acto.Descripcion)

	var orden []string
	porCondicion := map[string][]*entity.ContratanteDetalle{}
	for _, x := range cs {
		if _, ok := porCondicion[x.CondicionCodigo]; !ok {
			orden = append(orden, x.CondicionCodigo)
		}
		porCondicion[x.CondicionCodigo] = append(porCondicion[x.CondicionCodigo], x)
	}
	for _, cod := range orden {
		grupo := porCondicion[cod]
		c.bloque(clave(cod), formaCondicion(grupo[0].Condicion), agrupar(grupo))
	}

	plantillas := []string{acto.Plantilla, prefijoPlantillaNoContencioso + strings.ToLower(acto.Codigo) + ".docx", PlantillaNoContencioso}
	return s.generar(ctx, generacion{
		tipo:         entity.DocNoContencioso,
		referenciaID: k.ID,
		numero:       k.Numero,
		anio:         k.Anio,
		plantillas:   plantillas,
		contexto:     c,
		userID:       userID,
	})
}
