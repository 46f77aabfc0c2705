package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/application/usecase"
)

// registroUseCase CRUD común de los registros extraprotocolares (permisos, poderes, cartas, libros).
type registroUseCase[Req, Res any] interface {
	Create(ctx context.Context, in Req) (*Res, error)
	GetByID(ctx context.Context, id string) (*Res, error)
	List(ctx context.Context, p dto.PageRequest) (*dto.ListResponse[Res], error)
	Update(ctx context.Context, id string, in Req) (*Res, error)
	Delete(ctx context.Context, id string) error
}

// RegistroHandler handler CRUD genérico sobre un registroUseCase.
type RegistroHandler[Req, Res any] struct {
	uc registroUseCase[Req, Res]
}

// Create POST /api/<recurso>
func (h *RegistroHandler[Req, Res]) Create(c *fiber.Ctx) error {
	var in Req
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/<recurso>?q=&limit=20&offset=0
func (h *RegistroHandler[Req, Res]) List(c *fiber.Ctx) error {
	var p dto.PageRequest
	if err := bindQuery(c, &p); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get GET /api/<recurso>/:id
func (h *RegistroHandler[Req, Res]) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/<recurso>/:id
func (h *RegistroHandler[Req, Res]) Update(c *fiber.Ctx) error {
	var in Req
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/<recurso>/:id
func (h *RegistroHandler[Req, Res]) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// NewPermisoViajeHandler /api/permisos-viaje
func NewPermisoViajeHandler(uc *usecase.PermisoViajeUseCase) *RegistroHandler[dto.PermisoViajeRequest, dto.PermisoViajeResponse] {
	return &RegistroHandler[dto.PermisoViajeRequest, dto.PermisoViajeResponse]{uc: uc}
}

// NewPoderHandler /api/poderes
func NewPoderHandler(uc *usecase.PoderUseCase) *RegistroHandler[dto.PoderRequest, dto.PoderResponse] {
	return &RegistroHandler[dto.PoderRequest, dto.PoderResponse]{uc: uc}
}

// NewLibroHandler /api/libros
func NewLibroHandler(uc *usecase.LibroUseCase) *RegistroHandler[dto.LibroRequest, dto.LibroResponse] {
	return &RegistroHandler[dto.LibroRequest, dto.LibroResponse]{uc: uc}
}

// CartaHandler CRUD de cartas notariales más el registro de la diligencia.
type CartaHandler struct {
	*RegistroHandler[dto.CartaRequest, dto.CartaResponse]
	uc *usecase.CartaUseCase
}

// NewCartaHandler /api/cartas
func NewCartaHandler(uc *usecase.CartaUseCase) *CartaHandler {
	return &CartaHandler{
		RegistroHandler: &RegistroHandler[dto.CartaRequest, dto.CartaResponse]{uc: uc},
		uc:              uc,
	}
}

// Diligencia godoc
// @Summary      Registrar diligencia de la carta
// @Tags         cartas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la carta"
// @Param        body  body  dto.DiligenciaRequest  true  "diligencia"
// @Success      200   {object}  dto.CartaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cartas/{id}/diligencia [put]
func (h *CartaHandler) Diligencia(c *fiber.Ctx) error {
	var in dto.DiligenciaRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Diligencia(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
