package usecase

import (
	"context"

	"github.com/jhoicas/producao-api/internal/domain/repository"
)

// ProductionTxRunner unidad de trabajo para las escrituras de producción que
// tocan órdenes, movimientos y fórmulas en una sola transacción.
type ProductionTxRunner interface {
	RunProduction(ctx context.Context, fn func(
		orderRepo repository.ProductionOrderRepository,
		movRepo repository.StockMovementRepository,
		formulaRepo repository.FormulaRepository,
	) error) error
}

// FormulaTxRunner unidad de trabajo para actualizar cabecera e items de una
// fórmula de forma atómica.
type FormulaTxRunner interface {
	RunFormula(ctx context.Context, fn func(formulaRepo repository.FormulaRepository) error) error
}
