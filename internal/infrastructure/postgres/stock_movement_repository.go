package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/producao-api/internal/domain/entity"
	"github.com/jhoicas/producao-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de StockMovementRepository sobre PostgreSQL
// (usable con pool o tx). El libro es append-only: no hay UPDATE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `
	id, product_id, lot_id, type, quantity, cost, reference,
	production_order_id, created_at`

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(
		&m.ID, &m.ProductID, &m.LotID, &m.Type, &m.Quantity, &m.Cost,
		&m.Reference, &m.ProductionOrderID, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserta un movimiento en el libro.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (
			id, product_id, lot_id, type, quantity, cost, reference,
			production_order_id, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductID, movement.LotID, movement.Type,
		movement.Quantity, movement.Cost, movement.Reference,
		movement.ProductionOrderID, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// List devuelve los movimientos que cumplen todos los filtros, más reciente primero.
func (r *StockMovementRepo) List(ctx context.Context, filters repository.MovementFilters) ([]*entity.StockMovement, error) {
	var (
		conditions []string
		args       []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}
	if filters.StartDate != nil {
		add("created_at >= $%d", *filters.StartDate)
	}
	if filters.EndDate != nil {
		add("created_at <= $%d", *filters.EndDate)
	}
	if filters.Type != "" {
		add("type = $%d", filters.Type)
	}
	if filters.ProductID != "" {
		add("product_id = $%d", filters.ProductID)
	}

	query := `SELECT` + movementColumns + ` FROM stock_movements`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	return r.queryMovements(ctx, query, args...)
}

// ListBefore devuelve los movimientos de un producto estrictamente anteriores
// a before, en orden cronológico.
func (r *StockMovementRepo) ListBefore(ctx context.Context, productID string, before time.Time) ([]*entity.StockMovement, error) {
	query := `SELECT` + movementColumns + `
		FROM stock_movements
		WHERE product_id = $1 AND created_at < $2
		ORDER BY created_at`
	return r.queryMovements(ctx, query, productID, before)
}

// ListSince devuelve los movimientos desde una fecha, en orden cronológico.
func (r *StockMovementRepo) ListSince(ctx context.Context, since time.Time) ([]*entity.StockMovement, error) {
	query := `SELECT` + movementColumns + `
		FROM stock_movements
		WHERE created_at >= $1
		ORDER BY created_at`
	return r.queryMovements(ctx, query, since)
}

// DeleteByProductionOrder borra los movimientos de una orden (cascada del
// borrado de órdenes, único camino de borrado del libro).
func (r *StockMovementRepo) DeleteByProductionOrder(ctx context.Context, productionOrderID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE production_order_id = $1`, productionOrderID)
	if err != nil {
		return fmt.Errorf("delete movements by production order: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) queryMovements(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stock movements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}
