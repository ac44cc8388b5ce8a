package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de producción.
const (
	OrderStatusDraft      = "draft"
	OrderStatusPlanned    = "planned"
	OrderStatusInProgress = "in_progress"
	OrderStatusFinished   = "finished"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatus indica si el estado pertenece al catálogo conocido.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusDraft, OrderStatusPlanned, OrderStatusInProgress, OrderStatusFinished, OrderStatusCancelled:
		return true
	}
	return false
}

// ProductionOrder es una orden de fabricación de un producto terminado a partir
// de una fórmula. Los movimientos production_in/production_out se registran
// explícitamente vía el libro de movimientos referenciando esta orden; el cambio
// de estado no los dispara automáticamente.
type ProductionOrder struct {
	ID              string
	Code            string // OP-YYYY-NNNN, secuencial por año
	ProductID       string
	FormulaID       string
	QuantityPlanned decimal.Decimal
	QuantityReal    decimal.Decimal
	Unit            string
	Status          string // draft, planned, in_progress, finished, cancelled
	StartDate       *time.Time
	EndDate         *time.Time
	LotNumber       string
	Notes           string
	Items           []ProductionOrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProductionOrderItem un ingrediente planificado de la orden.
type ProductionOrderItem struct {
	ID                string
	ProductionOrderID string
	IngredientID      string
	QuantityPlanned   decimal.Decimal
	QuantityReal      decimal.Decimal
	LotUsedID         *string
}
