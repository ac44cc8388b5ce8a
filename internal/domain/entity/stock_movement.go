package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock. La cantidad siempre se guarda como magnitud
// positiva; el signo lo implica el tipo.
const (
	MovementTypeIn            = "in"
	MovementTypeOut           = "out"
	MovementTypeLoss          = "loss"
	MovementTypeProductionIn  = "production_in"
	MovementTypeProductionOut = "production_out"
)

// ValidMovementType indica si el tipo pertenece al catálogo conocido.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeLoss, MovementTypeProductionIn, MovementTypeProductionOut:
		return true
	}
	return false
}

// InboundMovement indica si el tipo suma stock (in, production_in).
func InboundMovement(t string) bool {
	return t == MovementTypeIn || t == MovementTypeProductionIn
}

// MovementDelta devuelve la cantidad con el signo que implica el tipo:
// positivo para in/production_in, negativo para out/loss/production_out.
func MovementDelta(t string, quantity decimal.Decimal) decimal.Decimal {
	if InboundMovement(t) {
		return quantity
	}
	return quantity.Neg()
}

// StockMovement es una entrada inmutable del libro de movimientos (append-only).
// Es la fuente de verdad del historial de cantidades; nunca se edita y solo se
// borra en cascada al eliminar una orden de producción.
type StockMovement struct {
	ID                string
	ProductID         string
	LotID             *string
	Type              string
	Quantity          decimal.Decimal // magnitud sin signo
	Cost              decimal.Decimal // costo unitario al momento; solo relevante en entradas
	Reference         string          // procedencia libre: factura, motivo de ajuste, etc.
	ProductionOrderID *string
	CreatedAt         time.Time
}
