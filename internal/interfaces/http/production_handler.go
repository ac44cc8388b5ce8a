package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/producao-api/internal/application/dto"
	"github.com/jhoicas/producao-api/internal/application/usecase"
)

// ProductionHandler maneja las peticiones HTTP de órdenes de producción.
type ProductionHandler struct {
	uc *usecase.ProductionService
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *usecase.ProductionService) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de producción
// @Description  Genera el código OP-YYYY-NNNN; sin items explícitos los deriva
//               de los porcentajes de la fórmula.
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionOrderRequest  true  "productId, formulaId y quantityPlanned"
// @Success      201  {object}  dto.ProductionOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production [post]
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductionOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// List godoc
// @Summary      Listar órdenes de producción
// @Tags         production
// @Produce      json
// @Success      200  {array}  dto.ProductionOrderResponse
// @Router       /api/production [get]
func (h *ProductionHandler) List(c *fiber.Ctx) error {
	orders, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// GetByID godoc
// @Summary      Obtener orden por id
// @Tags         production
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/{id} [get]
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// Update godoc
// @Summary      Actualizar orden (parcial)
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateProductionOrderRequest  true  "campos a actualizar"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/{id} [put]
func (h *ProductionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductionOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la orden
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "draft | planned | in_progress | finished | cancelled"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/{id}/status [patch]
func (h *ProductionHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// Delete godoc
// @Summary      Eliminar orden (cascada)
// @Description  Borra los movimientos de stock de la orden, sus items y la
//               orden en una sola transacción.
// @Tags         production
// @Param        id  path  string  true  "ID de la orden"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/{id} [delete]
func (h *ProductionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
