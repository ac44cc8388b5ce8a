package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/producao-api/internal/application/usecase"
)

// StatisticsHandler maneja las peticiones HTTP del dashboard.
type StatisticsHandler struct {
	uc *usecase.StatisticsService
}

// NewStatisticsHandler construye el handler.
func NewStatisticsHandler(uc *usecase.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{uc: uc}
}

// KPIs godoc
// @Summary      Indicadores del dashboard
// @Tags         statistics
// @Produce      json
// @Success      200  {object}  dto.KPIResponse
// @Router       /api/statistics/kpis [get]
func (h *StatisticsHandler) KPIs(c *fiber.Ctx) error {
	kpis, err := h.uc.KPIs(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(kpis)
}

// ProductionByMonth godoc
// @Summary      Producción planificada por mes (últimos 6 meses)
// @Tags         statistics
// @Produce      json
// @Success      200  {array}  dto.MonthlyProduction
// @Router       /api/statistics/production-by-month [get]
func (h *StatisticsHandler) ProductionByMonth(c *fiber.Ctx) error {
	data, err := h.uc.ProductionByMonth(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(data)
}

// StockTrend godoc
// @Summary      Tendencia diaria de stock (últimos 7 días)
// @Tags         statistics
// @Produce      json
// @Success      200  {array}  dto.StockTrendPoint
// @Router       /api/statistics/stock-trend [get]
func (h *StatisticsHandler) StockTrend(c *fiber.Ctx) error {
	data, err := h.uc.StockTrend(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(data)
}
