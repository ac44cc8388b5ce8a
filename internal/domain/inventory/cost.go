// Package inventory contiene los servicios de dominio puros del motor de
// inventario (sin persistencia ni transporte).
package inventory

import "github.com/shopspring/decimal"

// CostBreakdown desglose numérico del cálculo de costo promedio para auditoría.
type CostBreakdown struct {
	PreviousStock decimal.Decimal
	NewQuantity   decimal.Decimal
	TotalStock    decimal.Decimal
	PreviousValue decimal.Decimal
	NewValue      decimal.Decimal
	TotalValue    decimal.Decimal
}

// WeightedAverageCost calcula el costo promedio ponderado de un producto:
//
//	promedio = (StockActual*CostoActual + CantEntrada*CostoEntrada) / (StockActual + CantEntrada)
//
// Si la cantidad total es cero o negativa, el promedio cae al costo de entrada
// (nunca NaN ni división por cero).
func WeightedAverageCost(currentStock, currentCost, incomingQty, incomingCost decimal.Decimal) (decimal.Decimal, CostBreakdown) {
	previousValue := currentCost.Mul(currentStock)
	newValue := incomingCost.Mul(incomingQty)
	totalStock := currentStock.Add(incomingQty)

	breakdown := CostBreakdown{
		PreviousStock: currentStock,
		NewQuantity:   incomingQty,
		TotalStock:    totalStock,
		PreviousValue: previousValue,
		NewValue:      newValue,
		TotalValue:    previousValue.Add(newValue),
	}

	if totalStock.LessThanOrEqual(decimal.Zero) {
		return incomingCost, breakdown
	}
	return breakdown.TotalValue.Div(totalStock), breakdown
}
