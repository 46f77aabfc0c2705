package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/application/usecase"
)

// NotariaHandler datos de la notaría (registro único).
type NotariaHandler struct {
	uc *usecase.NotariaUseCase
}

// NewNotariaHandler construye el handler.
func NewNotariaHandler(uc *usecase.NotariaUseCase) *NotariaHandler {
	return &NotariaHandler{uc: uc}
}

// Get godoc
// @Summary      Datos de la notaría
// @Tags         notaria
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NotariaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notaria [get]
func (h *NotariaHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar datos de la notaría (admin)
// @Tags         notaria
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NotariaRequest  true  "notaría"
// @Success      200   {object}  dto.NotariaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/notaria [put]
func (h *NotariaHandler) Save(c *fiber.Ctx) error {
	var in dto.NotariaRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Save(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
