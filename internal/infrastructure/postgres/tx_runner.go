package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/producao-api/internal/application/inventory"
	"github.com/jhoicas/producao-api/internal/application/usecase"
	"github.com/jhoicas/producao-api/internal/domain/repository"
)

// Ensure TxRunner implements the application unit-of-work ports.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ usecase.ProductionTxRunner = (*TxRunner)(nil)
var _ usecase.FormulaTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	lotRepo repository.LotRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewStockMovementRepository(tx)
	lotRepo := NewLotRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(movRepo, lotRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunProduction inicia una transacción con repos de producción (órdenes + movimientos + fórmulas).
func (r *TxRunner) RunProduction(ctx context.Context, fn func(
	orderRepo repository.ProductionOrderRepository,
	movRepo repository.StockMovementRepository,
	formulaRepo repository.FormulaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewProductionOrderRepository(tx)
	movRepo := NewStockMovementRepository(tx)
	formulaRepo := NewFormulaRepository(tx)

	if err := fn(orderRepo, movRepo, formulaRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunFormula inicia una transacción con el repo de fórmulas (cabecera + items atómicos).
func (r *TxRunner) RunFormula(ctx context.Context, fn func(formulaRepo repository.FormulaRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewFormulaRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
