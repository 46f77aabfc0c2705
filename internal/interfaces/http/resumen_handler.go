package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/application/resumen"
)

// ResumenHandler resumen de actividad de la notaría.
type ResumenHandler struct {
	uc *resumen.UseCase
}

// NewResumenHandler construye el handler.
func NewResumenHandler(uc *resumen.UseCase) *ResumenHandler {
	return &ResumenHandler{uc: uc}
}

// Get godoc
// @Summary      Resumen de actividad del mes
// @Tags         resumen
// @Security     Bearer
// @Produce      json
// @Param        anio  query  int  false  "año (por defecto el actual)"
// @Param        mes   query  int  false  "mes 1-12 (por defecto el actual)"
// @Success      200   {object}  dto.ResumenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/resumen [get]
func (h *ResumenHandler) Get(c *fiber.Ctx) error {
	var in dto.ResumenRequest
	if err := bindQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
