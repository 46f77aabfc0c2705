package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/application/usecase"
)

// KardexHandler kardex protocolares, sus contratantes, vehículo y carátula.
type KardexHandler struct {
	uc *usecase.KardexUseCase
}

// NewKardexHandler construye el handler.
func NewKardexHandler(uc *usecase.KardexUseCase) *KardexHandler {
	return &KardexHandler{uc: uc}
}

// Create godoc
// @Summary      Crear kardex
// @Description  Asigna el correlativo de la serie (tipo + año) salvo que se importe con número.
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.KardexRequest  true  "kardex"
// @Success      201   {object}  dto.KardexResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/kardex [post]
func (h *KardexHandler) Create(c *fiber.Ctx) error {
	var in dto.KardexRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar kardex
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        q            query  string  false  "número, contrato o referencia"
// @Param        tipo_kardex  query  string  false  "K, V, N, G, T"
// @Param        anio         query  int     false  "año de ingreso"
// @Param        estado       query  string  false  "EN_PROCESO, FIRMADO, CONCLUIDO, ANULADO"
// @Param        limit        query  int     false  "límite"  default(20)
// @Param        offset       query  int     false  "offset"  default(0)
// @Success      200  {object}  dto.ListResponse[dto.KardexResponse]
// @Router       /api/kardex [get]
func (h *KardexHandler) List(c *fiber.Ctx) error {
	var in dto.KardexListRequest
	if err := bindQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener kardex con contratantes y vehículo
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del kardex"
// @Success      200  {object}  dto.KardexResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/kardex/{id} [get]
func (h *KardexHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar kardex
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del kardex"
// @Param        body  body  dto.KardexRequest  true  "kardex"
// @Success      200   {object}  dto.KardexResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/kardex/{id} [put]
func (h *KardexHandler) Update(c *fiber.Ctx) error {
	var in dto.KardexRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/kardex/:id (admin)
func (h *KardexHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddContratante godoc
// @Summary      Agregar contratante
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del kardex"
// @Param        body  body  dto.ContratanteRequest  true  "contratante"
// @Success      201   {object}  dto.ContratanteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/kardex/{id}/contratantes [post]
func (h *KardexHandler) AddContratante(c *fiber.Ctx) error {
	var in dto.ContratanteRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.AddContratante(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteContratante DELETE /api/kardex/:id/contratantes/:contratanteId
func (h *KardexHandler) DeleteContratante(c *fiber.Ctx) error {
	if err := h.uc.DeleteContratante(c.UserContext(), c.Params("id"), c.Params("contratanteId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SaveVehiculo godoc
// @Summary      Registrar vehículo (kardex vehicular)
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del kardex"
// @Param        body  body  dto.VehiculoRequest  true  "vehículo"
// @Success      200   {object}  dto.VehiculoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/kardex/{id}/vehiculo [put]
func (h *KardexHandler) SaveVehiculo(c *fiber.Ctx) error {
	var in dto.VehiculoRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SaveVehiculo(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Caratula godoc
// @Summary      Carátula PDF del kardex
// @Tags         kardex
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del kardex"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/kardex/{id}/caratula [get]
func (h *KardexHandler) Caratula(c *fiber.Ctx) error {
	pdf, numero, err := h.uc.Caratula(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="caratula-%s.pdf"`, numero))
	return c.Send(pdf)
}
