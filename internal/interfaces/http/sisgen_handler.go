package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/application/sisgen"
	"github.com/jhoicas/notaria-api/internal/domain"
)

// SISGENHandler búsqueda, exportación e historial de envíos al SISGEN.
type SISGENHandler struct {
	orch *sisgen.Orchestrator
}

// NewSISGENHandler construye el handler.
func NewSISGENHandler(orch *sisgen.Orchestrator) *SISGENHandler {
	return &SISGENHandler{orch: orch}
}

// Search godoc
// @Summary      Buscar kardex exportables
// @Description  Kardex con escritura en el rango de fechas y las observaciones que bloquean su envío.
// @Tags         sisgen
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SISGENBusquedaRequest  true  "rango de fechas y filtros"
// @Success      200   {array}   dto.SISGENKardexResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sisgen/busqueda [post]
func (h *SISGENHandler) Search(c *fiber.Ctx) error {
	var in dto.SISGENBusquedaRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.orch.Search(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Enviar kardex al SISGEN
// @Description  Un resultado por kardex en el orden del request. 502 si ningún envío llegó al servicio.
// @Tags         sisgen
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SISGENExportRequest  true  "kardex a enviar"
// @Success      200   {object}  dto.SISGENExportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.SISGENExportResponse
// @Router       /api/sisgen/envios [post]
func (h *SISGENHandler) Export(c *fiber.Ctx) error {
	var in dto.SISGENExportRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.orch.Export(c.UserContext(), GetUserID(c), in)
	if err != nil {
		// con resultados se devuelve el detalle por kardex aunque el servicio no responda
		if errors.Is(err, domain.ErrSISGENUnavailable) && out != nil {
			return c.Status(fiber.StatusBadGateway).JSON(out)
		}
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de envíos de un kardex
// @Tags         sisgen
// @Security     Bearer
// @Produce      json
// @Param        kardex_id  query  string  true   "ID del kardex"
// @Param        limit      query  int     false  "límite"  default(20)
// @Param        offset     query  int     false  "offset"  default(0)
// @Success      200  {array}   dto.EnvioSISGENResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sisgen/envios [get]
func (h *SISGENHandler) History(c *fiber.Ctx) error {
	var in dto.SISGENEnvioListRequest
	if err := bindQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.orch.History(c.UserContext(), in.KardexID, in.PageRequest)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PreviewXML GET /api/sisgen/kardex/:id/xml
func (h *SISGENHandler) PreviewXML(c *fiber.Ctx) error {
	data, err := h.orch.PreviewXML(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(data)
}
