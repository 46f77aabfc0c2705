package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/application/usecase"
)

// CatalogoHandler condiciones de intervención y tipos de acto.
type CatalogoHandler struct {
	uc *usecase.CatalogoUseCase
}

// NewCatalogoHandler construye el handler.
func NewCatalogoHandler(uc *usecase.CatalogoUseCase) *CatalogoHandler {
	return &CatalogoHandler{uc: uc}
}

// ListCondiciones godoc
// @Summary      Condiciones de intervención
// @Tags         catalogos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CondicionResponse
// @Router       /api/condiciones [get]
func (h *CatalogoHandler) ListCondiciones(c *fiber.Ctx) error {
	out, err := h.uc.ListCondiciones(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListTiposActo godoc
// @Summary      Tipos de acto
// @Tags         catalogos
// @Security     Bearer
// @Produce      json
// @Param        tipo_kardex  query  string  false  "K, V, N, G, T"
// @Success      200  {array}  dto.TipoActoResponse
// @Router       /api/tipos-acto [get]
func (h *CatalogoHandler) ListTiposActo(c *fiber.Ctx) error {
	out, err := h.uc.ListTiposActo(c.UserContext(), c.Query("tipo_kardex"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateTipoActo godoc
// @Summary      Crear tipo de acto (admin)
// @Tags         catalogos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TipoActoRequest  true  "tipo de acto"
// @Success      201   {object}  dto.TipoActoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tipos-acto [post]
func (h *CatalogoHandler) CreateTipoActo(c *fiber.Ctx) error {
	var in dto.TipoActoRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateTipoActo(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateTipoActo godoc
// @Summary      Actualizar tipo de acto (admin)
// @Tags         catalogos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        codigo  path  string               true  "código del acto"
// @Param        body    body  dto.TipoActoRequest  true  "tipo de acto"
// @Success      200     {object}  dto.TipoActoResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/tipos-acto/{codigo} [put]
func (h *CatalogoHandler) UpdateTipoActo(c *fiber.Ctx) error {
	var in dto.TipoActoRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateTipoActo(c.UserContext(), c.Params("codigo"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
