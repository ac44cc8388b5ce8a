package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionItemRequest un ingrediente planificado de la orden.
type ProductionItemRequest struct {
	IngredientID    string          `json:"ingredientId"`
	QuantityPlanned decimal.Decimal `json:"quantityPlanned"`
}

// CreateProductionOrderRequest body para POST /api/production.
// Si Items viene vacío, se calculan desde los porcentajes de la fórmula.
type CreateProductionOrderRequest struct {
	ProductID       string                  `json:"productId"`
	FormulaID       string                  `json:"formulaId"`
	QuantityPlanned decimal.Decimal         `json:"quantityPlanned"`
	Unit            string                  `json:"unit,omitempty"`
	StartDate       *time.Time              `json:"startDate,omitempty"`
	LotNumber       string                  `json:"lotNumber,omitempty"`
	Notes           string                  `json:"notes,omitempty"`
	Items           []ProductionItemRequest `json:"items,omitempty"`
}

// UpdateProductionOrderRequest body para PUT /api/production/:id.
// Si Items viene, se reemplazan; si cambia la fórmula sin items, se recalculan.
type UpdateProductionOrderRequest struct {
	FormulaID       *string                 `json:"formulaId,omitempty"`
	QuantityPlanned *decimal.Decimal        `json:"quantityPlanned,omitempty"`
	QuantityReal    *decimal.Decimal        `json:"quantityReal,omitempty"`
	Unit            *string                 `json:"unit,omitempty"`
	StartDate       *time.Time              `json:"startDate,omitempty"`
	EndDate         *time.Time              `json:"endDate,omitempty"`
	LotNumber       *string                 `json:"lotNumber,omitempty"`
	Notes           *string                 `json:"notes,omitempty"`
	Items           []ProductionItemRequest `json:"items,omitempty"`
}

// UpdateOrderStatusRequest body para PATCH /api/production/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// ProductionItemResponse un ingrediente de la orden en respuestas.
type ProductionItemResponse struct {
	ID                string          `json:"id"`
	ProductionOrderID string          `json:"productionOrderId"`
	IngredientID      string          `json:"ingredientId"`
	QuantityPlanned   decimal.Decimal `json:"quantityPlanned"`
	QuantityReal      decimal.Decimal `json:"quantityReal"`
	LotUsedID         *string         `json:"lotUsedId,omitempty"`
}

// ProductionOrderResponse representación de una orden en respuestas.
type ProductionOrderResponse struct {
	ID              string                   `json:"id"`
	Code            string                   `json:"code"`
	ProductID       string                   `json:"productId"`
	FormulaID       string                   `json:"formulaId"`
	QuantityPlanned decimal.Decimal          `json:"quantityPlanned"`
	QuantityReal    decimal.Decimal          `json:"quantityReal"`
	Unit            string                   `json:"unit,omitempty"`
	Status          string                   `json:"status"`
	StartDate       *time.Time               `json:"startDate,omitempty"`
	EndDate         *time.Time               `json:"endDate,omitempty"`
	LotNumber       string                   `json:"lotNumber,omitempty"`
	Notes           string                   `json:"notes,omitempty"`
	Items           []ProductionItemResponse `json:"items"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}
