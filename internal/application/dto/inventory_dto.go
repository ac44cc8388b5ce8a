package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Los nombres JSON son camelCase: el contrato lo fija el dashboard React que
// consume esta API.

// CreateLotRequest body para POST /api/inventory/lots.
type CreateLotRequest struct {
	Code            string          `json:"code"`
	ProductID       string          `json:"productId"`
	QuantityInitial decimal.Decimal `json:"quantityInitial"`
	ManufactureDate *time.Time      `json:"manufactureDate,omitempty"`
	ExpirationDate  *time.Time      `json:"expirationDate,omitempty"`
	Status          string          `json:"status,omitempty"`
}

// LotResponse representación de un lote en respuestas.
type LotResponse struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	ProductID       string          `json:"productId"`
	QuantityInitial decimal.Decimal `json:"quantityInitial"`
	QuantityCurrent decimal.Decimal `json:"quantityCurrent"`
	ManufactureDate *time.Time      `json:"manufactureDate,omitempty"`
	ExpirationDate  *time.Time      `json:"expirationDate,omitempty"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// RecordMovementRequest body para POST /api/inventory/movements.
// Quantity es la magnitud sin signo; el signo lo implica Type.
type RecordMovementRequest struct {
	ProductID         string          `json:"productId"`
	LotID             string          `json:"lotId,omitempty"`
	Type              string          `json:"type"`
	Quantity          decimal.Decimal `json:"quantity"`
	Cost              decimal.Decimal `json:"cost,omitempty"`
	Reference         string          `json:"reference,omitempty"`
	ProductionOrderID string          `json:"productionOrderId,omitempty"`
}

// MovementResponse representación de un movimiento en respuestas.
type MovementResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"productId"`
	LotID             *string         `json:"lotId,omitempty"`
	Type              string          `json:"type"`
	Quantity          decimal.Decimal `json:"quantity"`
	Cost              decimal.Decimal `json:"cost"`
	Reference         string          `json:"reference,omitempty"`
	ProductionOrderID *string         `json:"productionOrderId,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// StockLevelResponse stock agregado de un producto (suma de lotes positivos).
type StockLevelResponse struct {
	ProductID  string          `json:"productId"`
	TotalStock decimal.Decimal `json:"totalStock"`
	Lots       []LotResponse   `json:"lots"`
}

// AdjustStockRequest body para POST /api/inventory/adjustments.
// QuantityAdjustment lleva signo: positivo agrega stock, negativo lo quita.
type AdjustStockRequest struct {
	ProductID          string          `json:"productId"`
	QuantityAdjustment decimal.Decimal `json:"quantityAdjustment"`
	Reason             string          `json:"reason"`
	LotID              string          `json:"lotId,omitempty"`
	Reference          string          `json:"reference,omitempty"`
}

// AdjustStockResponse resultado de un ajuste de stock.
type AdjustStockResponse struct {
	Movement      MovementResponse `json:"movement"`
	PreviousStock decimal.Decimal  `json:"previousStock"`
	Adjustment    decimal.Decimal  `json:"adjustment"`
	NewStock      decimal.Decimal  `json:"newStock"`
}

// AdjustmentHistoryEntry una fila del historial de ajustes, con el stock previo
// reconstruido por replay de los movimientos anteriores.
type AdjustmentHistoryEntry struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	PreviousStock decimal.Decimal `json:"previousStock"`
	Adjustment    decimal.Decimal `json:"adjustment"`
	NewStock      decimal.Decimal `json:"newStock"`
	Reason        string          `json:"reason"`
	LotID         *string         `json:"lotId,omitempty"`
}
