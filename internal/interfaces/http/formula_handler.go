package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/producao-api/internal/application/dto"
	"github.com/jhoicas/producao-api/internal/application/usecase"
)

// FormulaHandler maneja las peticiones HTTP de fórmulas.
type FormulaHandler struct {
	uc *usecase.FormulaService
}

// NewFormulaHandler construye el handler.
func NewFormulaHandler(uc *usecase.FormulaService) *FormulaHandler {
	return &FormulaHandler{uc: uc}
}

// Create godoc
// @Summary      Crear fórmula
// @Tags         formulas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFormulaRequest  true  "productId, version, batchSize e items"
// @Success      201  {object}  dto.FormulaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/formulas [post]
func (h *FormulaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFormulaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	formula, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(formula)
}

// List godoc
// @Summary      Listar fórmulas
// @Tags         formulas
// @Produce      json
// @Success      200  {array}  dto.FormulaResponse
// @Router       /api/formulas [get]
func (h *FormulaHandler) List(c *fiber.Ctx) error {
	formulas, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(formulas)
}

// GetByID godoc
// @Summary      Obtener fórmula por id
// @Tags         formulas
// @Produce      json
// @Param        id  path  string  true  "ID de la fórmula"
// @Success      200  {object}  dto.FormulaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/formulas/{id} [get]
func (h *FormulaHandler) GetByID(c *fiber.Ctx) error {
	formula, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(formula)
}

// Update godoc
// @Summary      Actualizar fórmula (items atómicos)
// @Tags         formulas
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la fórmula"
// @Param        body  body  dto.UpdateFormulaRequest  true  "campos a actualizar; items reemplaza todo"
// @Success      200  {object}  dto.FormulaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/formulas/{id} [put]
func (h *FormulaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFormulaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	formula, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(formula)
}

// Delete godoc
// @Summary      Eliminar fórmula
// @Tags         formulas
// @Param        id  path  string  true  "ID de la fórmula"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/formulas/{id} [delete]
func (h *FormulaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
