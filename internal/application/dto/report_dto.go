package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del reporte de stock.
const (
	StockStatusLow = "low"
	StockStatusOK  = "ok"
)

// StockReportRow una fila del reporte de stock por producto.
type StockReportRow struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"` // sku o barcode, lo que exista
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	MinStock     decimal.Decimal `json:"minStock"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	CurrentCost  decimal.Decimal `json:"currentCost"`
	TotalValue   decimal.Decimal `json:"totalValue"`
	Status       string          `json:"status"` // low | ok
}

// LotCountDetail detalle de un lote en el reporte de conteo.
type LotCountDetail struct {
	LotCode        string          `json:"lotCode"`
	Quantity       decimal.Decimal `json:"quantity"`
	ExpirationDate *time.Time      `json:"expirationDate,omitempty"`
	Status         string          `json:"status"`
}

// StockCountRow fila del reporte de conteo: stock por producto con desglose por lote.
type StockCountRow struct {
	ID           string           `json:"id"`
	SKU          string           `json:"sku,omitempty"`
	Barcode      string           `json:"barcode,omitempty"`
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	Unit         string           `json:"unit"`
	MinStock     decimal.Decimal  `json:"minStock"`
	CurrentStock decimal.Decimal  `json:"currentStock"`
	CurrentCost  decimal.Decimal  `json:"currentCost"`
	TotalValue   decimal.Decimal  `json:"totalValue"`
	Lots         []LotCountDetail `json:"lots"`
	Status       string           `json:"status"`
}

// ExpirationEntry lote próximo a vencer, con datos del producto para el listado.
type ExpirationEntry struct {
	LotResponse
	ProductName string `json:"productName"`
	ProductUnit string `json:"productUnit"`
}

// CostCalculation desglose del cálculo de costo promedio (auditoría).
type CostCalculation struct {
	PreviousStock decimal.Decimal `json:"previousStock"`
	NewQuantity   decimal.Decimal `json:"newQuantity"`
	TotalStock    decimal.Decimal `json:"totalStock"`
	PreviousValue decimal.Decimal `json:"previousValue"`
	NewValue      decimal.Decimal `json:"newValue"`
	TotalValue    decimal.Decimal `json:"totalValue"`
}

// UpdateCostRequest body para PATCH /api/products/:id/update-cost.
type UpdateCostRequest struct {
	NewCost  decimal.Decimal `json:"newCost"`
	Quantity decimal.Decimal `json:"quantity"`
}

// CostUpdateResponse resultado del recálculo de costo promedio ponderado.
type CostUpdateResponse struct {
	ProductID      string          `json:"productId"`
	PreviousCost   decimal.Decimal `json:"previousCost"`
	NewAverageCost decimal.Decimal `json:"newAverageCost"`
	Calculation    CostCalculation `json:"calculation"`
}
