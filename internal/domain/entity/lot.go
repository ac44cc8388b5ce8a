package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un lote.
const (
	LotStatusActive  = "active"
	LotStatusExpired = "expired"
	LotStatusBlocked = "blocked"
)

// AdjustmentLotPrefix prefijo del código de los lotes sintéticos de ajuste
// (uno por producto, absorbe ajustes que no apuntan a un lote físico).
const AdjustmentLotPrefix = "ADJ-"

// Lot representa un lote físico de un producto con cantidad de ciclo de vida.
// Invariante: QuantityCurrent = QuantityInitial ± todos los movimientos aplicados
// contra el lote. No se bloquea que la cantidad quede negativa: la política es
// permisiva y los consumidores deciden deltas coherentes con el tipo de movimiento.
type Lot struct {
	ID              string
	Code            string // único por convención, sin constraint
	ProductID       string
	QuantityInitial decimal.Decimal
	QuantityCurrent decimal.Decimal
	ManufactureDate *time.Time
	ExpirationDate  *time.Time
	Status          string // active, expired, blocked
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdjustment indica si el lote es el lote sintético de ajustes del producto.
func (l *Lot) IsAdjustment() bool {
	return len(l.Code) >= len(AdjustmentLotPrefix) && l.Code[:len(AdjustmentLotPrefix)] == AdjustmentLotPrefix
}
