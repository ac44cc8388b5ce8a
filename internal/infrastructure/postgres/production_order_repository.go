package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/producao-api/internal/domain"
	"github.com/jhoicas/producao-api/internal/domain/entity"
	"github.com/jhoicas/producao-api/internal/domain/repository"
)

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

// ProductionOrderRepo implementación de ProductionOrderRepository sobre
// PostgreSQL (usable con pool o tx).
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador de órdenes. Pasar pool o tx (Querier).
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

const orderColumns = `
	id, code, product_id, formula_id, quantity_planned, quantity_real, unit,
	status, start_date, end_date, lot_number, notes, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.ProductionOrder, error) {
	var o entity.ProductionOrder
	err := row.Scan(
		&o.ID, &o.Code, &o.ProductID, &o.FormulaID, &o.QuantityPlanned,
		&o.QuantityReal, &o.Unit, &o.Status, &o.StartDate, &o.EndDate,
		&o.LotNumber, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserta la orden con sus items. Un código repetido produce domain.ErrDuplicate.
func (r *ProductionOrderRepo) Create(ctx context.Context, order *entity.ProductionOrder) error {
	query := `
		INSERT INTO production_orders (
			id, code, product_id, formula_id, quantity_planned, quantity_real, unit,
			status, start_date, end_date, lot_number, notes, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.Code, order.ProductID, order.FormulaID, order.QuantityPlanned,
		order.QuantityReal, order.Unit, order.Status, order.StartDate, order.EndDate,
		order.LotNumber, order.Notes, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: code %q", domain.ErrDuplicate, order.Code)
		}
		return fmt.Errorf("insert production order: %w", err)
	}
	return r.insertItems(ctx, order.Items)
}

// GetByID busca una orden con sus items. Devuelve (nil, nil) si no existe.
func (r *ProductionOrderRepo) GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	query := `SELECT` + orderColumns + ` FROM production_orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}

	items, err := r.listItems(ctx, `WHERE production_order_id = $1`, id)
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

// List devuelve todas las órdenes con sus items, más reciente primero.
func (r *ProductionOrderRepo) List(ctx context.Context) ([]*entity.ProductionOrder, error) {
	query := `SELECT` + orderColumns + ` FROM production_orders ORDER BY created_at DESC`
	orders, err := r.queryOrders(ctx, query)
	if err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, ``)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		o.Items = items[o.ID]
	}
	return orders, nil
}

// Update persiste la cabecera de la orden (los items van por ReplaceItems).
func (r *ProductionOrderRepo) Update(ctx context.Context, order *entity.ProductionOrder) error {
	query := `
		UPDATE production_orders SET
			formula_id = $2, quantity_planned = $3, quantity_real = $4, unit = $5,
			status = $6, start_date = $7, end_date = $8, lot_number = $9,
			notes = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		order.ID, order.FormulaID, order.QuantityPlanned, order.QuantityReal,
		order.Unit, order.Status, order.StartDate, order.EndDate, order.LotNumber,
		order.Notes, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update production order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductionNotFound
	}
	return nil
}

// ReplaceItems borra y recrea los items de la orden.
func (r *ProductionOrderRepo) ReplaceItems(ctx context.Context, orderID string, items []entity.ProductionOrderItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM production_order_items WHERE production_order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete production order items: %w", err)
	}
	return r.insertItems(ctx, items)
}

// UpdateStatus cambia solo el estado de la orden.
func (r *ProductionOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE production_orders SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update production order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductionNotFound
	}
	return nil
}

// Delete elimina la orden con sus items.
func (r *ProductionOrderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM production_order_items WHERE production_order_id = $1`, id); err != nil {
		return fmt.Errorf("delete production order items: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM production_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete production order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductionNotFound
	}
	return nil
}

// LatestCodeWithPrefix devuelve el mayor código con el prefijo ("" si no hay).
// Con el sufijo NNNN de ancho fijo, el orden lexicográfico es el numérico.
func (r *ProductionOrderRepo) LatestCodeWithPrefix(ctx context.Context, prefix string) (string, error) {
	query := `
		SELECT code FROM production_orders
		WHERE code LIKE $1 || '%'
		ORDER BY code DESC LIMIT 1`
	var code string
	err := r.q.QueryRow(ctx, query, prefix).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("latest order code: %w", err)
	}
	return code, nil
}

// CountByStatuses cuenta órdenes en cualquiera de los estados dados.
func (r *ProductionOrderRepo) CountByStatuses(ctx context.Context, statuses []string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM production_orders WHERE status = ANY($1)`, statuses).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count production orders: %w", err)
	}
	return count, nil
}

// ListCreatedSince devuelve órdenes creadas desde una fecha, opcionalmente
// filtradas por estado, en orden cronológico y sin items (agregación).
func (r *ProductionOrderRepo) ListCreatedSince(ctx context.Context, since time.Time, statuses []string) ([]*entity.ProductionOrder, error) {
	if len(statuses) == 0 {
		query := `SELECT` + orderColumns + `
			FROM production_orders WHERE created_at >= $1 ORDER BY created_at`
		return r.queryOrders(ctx, query, since)
	}
	query := `SELECT` + orderColumns + `
		FROM production_orders
		WHERE created_at >= $1 AND status = ANY($2)
		ORDER BY created_at`
	return r.queryOrders(ctx, query, since, statuses)
}

func (r *ProductionOrderRepo) queryOrders(ctx context.Context, query string, args ...any) ([]*entity.ProductionOrder, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query production orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.ProductionOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *ProductionOrderRepo) insertItems(ctx context.Context, items []entity.ProductionOrderItem) error {
	query := `
		INSERT INTO production_order_items (
			id, production_order_id, ingredient_id, quantity_planned, quantity_real, lot_used_id
		) VALUES ($1,$2,$3,$4,$5,$6)`
	for _, it := range items {
		_, err := r.q.Exec(ctx, query,
			it.ID, it.ProductionOrderID, it.IngredientID, it.QuantityPlanned,
			it.QuantityReal, it.LotUsedID,
		)
		if err != nil {
			return fmt.Errorf("insert production order item: %w", err)
		}
	}
	return nil
}

// listItems carga items (opcionalmente filtrados) agrupados por orden.
func (r *ProductionOrderRepo) listItems(ctx context.Context, where string, args ...any) (map[string][]entity.ProductionOrderItem, error) {
	query := `
		SELECT id, production_order_id, ingredient_id, quantity_planned, quantity_real, lot_used_id
		FROM production_order_items ` + where + ` ORDER BY id`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list production order items: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]entity.ProductionOrderItem)
	for rows.Next() {
		var it entity.ProductionOrderItem
		if err := rows.Scan(&it.ID, &it.ProductionOrderID, &it.IngredientID, &it.QuantityPlanned, &it.QuantityReal, &it.LotUsedID); err != nil {
			return nil, fmt.Errorf("scan production order item: %w", err)
		}
		grouped[it.ProductionOrderID] = append(grouped[it.ProductionOrderID], it)
	}
	return grouped, rows.Err()
}
