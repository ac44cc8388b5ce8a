package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/producao-api/internal/application/dto"
	"github.com/jhoicas/producao-api/internal/application/inventory"
	"github.com/jhoicas/producao-api/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP del motor de inventario:
// lotes, movimientos, niveles de stock y ajustes.
type InventoryHandler struct {
	uc *inventory.Service
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.Service) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

func movementFilters(c *fiber.Ctx) repository.MovementFilters {
	return repository.MovementFilters{
		StartDate: parseTimeQuery(c, "startDate"),
		EndDate:   parseTimeQuery(c, "endDate"),
		Type:      c.Query("type"),
		ProductID: c.Query("productId"),
	}
}

// CreateLot godoc
// @Summary      Crear lote
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLotRequest  true  "code, productId y quantityInitial"
// @Success      201  {object}  dto.LotResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/lots [post]
func (h *InventoryHandler) CreateLot(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	lot, err := h.uc.CreateLot(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lot)
}

// ListLots godoc
// @Summary      Listar lotes
// @Tags         inventory
// @Produce      json
// @Param        productId  query  string  false  "Filtrar por producto"
// @Success      200  {array}  dto.LotResponse
// @Router       /api/inventory/lots [get]
func (h *InventoryHandler) ListLots(c *fiber.Ctx) error {
	lots, err := h.uc.ListLots(c.Context(), c.Query("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lots)
}

// GetLot godoc
// @Summary      Obtener lote por id
// @Tags         inventory
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {object}  dto.LotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/lots/{id} [get]
func (h *InventoryHandler) GetLot(c *fiber.Ctx) error {
	lot, err := h.uc.GetLot(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lot)
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Inserta en el libro de movimientos, aplica el delta al lote
//               indicado y recalcula el costo promedio en entradas con costo.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "productId, type y quantity; lotId, cost, reference opcionales"
// @Success      201  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	movement, err := h.uc.RecordMovement(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movement)
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Tags         inventory
// @Produce      json
// @Param        startDate  query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        endDate    query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Param        type       query  string  false  "in | out | loss | production_in | production_out"
// @Param        productId  query  string  false  "Filtrar por producto"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/reports/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	movements, err := h.uc.MovementHistory(c.Context(), movementFilters(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movements)
}

// GetStock godoc
// @Summary      Nivel de stock de un producto
// @Tags         inventory
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockLevelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{productId} [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	level, err := h.uc.StockLevel(c.Context(), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(level)
}

// Adjust godoc
// @Summary      Ajustar stock
// @Description  Aplica un ajuste con signo al lote indicado o al lote sintético
//               ADJ- del producto. Queda registrado en el libro de movimientos.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "productId, quantityAdjustment (con signo) y reason"
// @Success      201  {object}  dto.AdjustStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	result, err := h.uc.Adjust(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// AdjustmentHistory godoc
// @Summary      Historial de ajustes
// @Description  Reconstruye el stock previo de cada ajuste por replay de los
//               movimientos anteriores del producto.
// @Tags         inventory
// @Produce      json
// @Param        startDate  query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        endDate    query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Param        productId  query  string  false  "Filtrar por producto"
// @Success      200  {array}  dto.AdjustmentHistoryEntry
// @Router       /api/inventory/adjustments [get]
func (h *InventoryHandler) AdjustmentHistory(c *fiber.Ctx) error {
	entries, err := h.uc.AdjustmentHistory(c.Context(), movementFilters(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}
