package http

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/producao-api/internal/application/dto"
	"github.com/jhoicas/producao-api/internal/application/inventory"
)

// StockReportPDFGenerator genera el PDF del reporte de stock.
type StockReportPDFGenerator interface {
	GenerateStockReportPDF(ctx context.Context, rows []dto.StockReportRow) ([]byte, error)
}

// ReportHandler maneja las peticiones HTTP de reportes de inventario.
type ReportHandler struct {
	uc  *inventory.Service
	pdf StockReportPDFGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *inventory.Service, pdf StockReportPDFGenerator) *ReportHandler {
	return &ReportHandler{uc: uc, pdf: pdf}
}

// StockReport godoc
// @Summary      Reporte de stock
// @Description  Stock agregado por producto con valorización y estado low/ok
//               contra el stock mínimo (umbral inclusivo).
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dto.StockReportRow
// @Router       /api/inventory/reports/stock [get]
func (h *ReportHandler) StockReport(c *fiber.Ctx) error {
	rows, err := h.uc.StockReport(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// StockCountReport godoc
// @Summary      Reporte de conteo de stock
// @Description  Stock por producto con desglose por lote, para conteo físico.
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dto.StockCountRow
// @Router       /api/inventory/reports/stock-count [get]
func (h *ReportHandler) StockCountReport(c *fiber.Ctx) error {
	rows, err := h.uc.StockCountReport(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// LowStockReport godoc
// @Summary      Productos con stock bajo
// @Description  Filas del reporte de stock en estado low, para reposición.
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dto.StockReportRow
// @Router       /api/inventory/reports/low-stock [get]
func (h *ReportHandler) LowStockReport(c *fiber.Ctx) error {
	rows, err := h.uc.LowStockProducts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// ExpirationReport godoc
// @Summary      Lotes próximos a vencer
// @Tags         reports
// @Produce      json
// @Param        days  query  int  false  "Ventana en días (default 30)"
// @Success      200  {array}  dto.ExpirationEntry
// @Router       /api/inventory/reports/expiration [get]
func (h *ReportHandler) ExpirationReport(c *fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "30"))
	entries, err := h.uc.ExpirationReport(c.Context(), days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}

// StockReportPDF godoc
// @Summary      Reporte de stock en PDF
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/inventory/reports/stock/pdf [get]
func (h *ReportHandler) StockReportPDF(c *fiber.Ctx) error {
	rows, err := h.uc.StockReport(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	pdfBytes, err := h.pdf.GenerateStockReportPDF(c.Context(), rows)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-stock.pdf"`)
	return c.Send(pdfBytes)
}
