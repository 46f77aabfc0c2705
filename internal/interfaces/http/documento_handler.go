package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/notaria-api/internal/application/documentos"
	"github.com/jhoicas/notaria-api/internal/application/dto"
)

// DocumentoHandler generación y descarga de los .docx.
type DocumentoHandler struct {
	svc *documentos.Service
}

// NewDocumentoHandler construye el handler.
func NewDocumentoHandler(svc *documentos.Service) *DocumentoHandler {
	return &DocumentoHandler{svc: svc}
}

type generador func(ctx context.Context, userID, id string) (*dto.DocumentoResponse, error)

func (h *DocumentoHandler) generar(gen generador) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := gen(c.UserContext(), GetUserID(c), c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// Vehicular godoc
// @Summary      Generar transferencia vehicular
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del kardex vehicular"
// @Success      201  {object}  dto.DocumentoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/documentos/vehicular/{id} [post]
func (h *DocumentoHandler) Vehicular(c *fiber.Ctx) error {
	return h.generar(h.svc.Vehicular)(c)
}

// NoContencioso godoc
// @Summary      Generar escritura de asunto no contencioso
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del kardex no contencioso"
// @Success      201  {object}  dto.DocumentoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/documentos/no-contencioso/{id} [post]
func (h *DocumentoHandler) NoContencioso(c *fiber.Ctx) error {
	return h.generar(h.svc.NoContencioso)(c)
}

// PermisoViaje godoc
// @Summary      Generar permiso de viaje
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del permiso"
// @Success      201  {object}  dto.DocumentoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/documentos/permiso-viaje/{id} [post]
func (h *DocumentoHandler) PermisoViaje(c *fiber.Ctx) error {
	return h.generar(h.svc.PermisoViaje)(c)
}

// Poder godoc
// @Summary      Generar poder
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del poder"
// @Success      201  {object}  dto.DocumentoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/documentos/poder/{id} [post]
func (h *DocumentoHandler) Poder(c *fiber.Ctx) error {
	return h.generar(h.svc.Poder)(c)
}

// Carta godoc
// @Summary      Generar carta notarial
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la carta"
// @Success      201  {object}  dto.DocumentoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/documentos/carta/{id} [post]
func (h *DocumentoHandler) Carta(c *fiber.Ctx) error {
	return h.generar(h.svc.Carta)(c)
}

// Libro godoc
// @Summary      Generar constancia de legalización de libro
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del libro"
// @Success      201  {object}  dto.DocumentoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/documentos/libro/{id} [post]
func (h *DocumentoHandler) Libro(c *fiber.Ctx) error {
	return h.generar(h.svc.Libro)(c)
}

// List godoc
// @Summary      Documentos generados
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        tipo           query  string  false  "vehicular, no-contencioso, permiso-viaje, poder, carta, libro"
// @Param        referencia_id  query  string  false  "ID del registro origen"
// @Param        limit          query  int     false  "límite"  default(20)
// @Param        offset         query  int     false  "offset"  default(0)
// @Success      200  {object}  dto.ListResponse[dto.DocumentoResponse]
// @Router       /api/documentos [get]
func (h *DocumentoHandler) List(c *fiber.Ctx) error {
	var in dto.DocumentoListRequest
	if err := bindQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get GET /api/documentos/:id
func (h *DocumentoHandler) Get(c *fiber.Ctx) error {
	out, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Descargar .docx
// @Tags         documentos
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documentos/{id}/descarga [get]
func (h *DocumentoHandler) Download(c *fiber.Ctx) error {
	data, filename, err := h.svc.Download(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, documentos.ContentTypeDocx)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

// Placeholders GET /api/documentos/plantillas/:nombre/placeholders
func (h *DocumentoHandler) Placeholders(c *fiber.Ctx) error {
	out, err := h.svc.Placeholders(c.UserContext(), c.Params("nombre"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
