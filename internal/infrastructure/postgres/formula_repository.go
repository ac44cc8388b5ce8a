package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/producao-api/internal/domain"
	"github.com/jhoicas/producao-api/internal/domain/entity"
	"github.com/jhoicas/producao-api/internal/domain/repository"
)

var _ repository.FormulaRepository = (*FormulaRepo)(nil)

// FormulaRepo implementación de FormulaRepository sobre PostgreSQL (usable con pool o tx).
type FormulaRepo struct {
	q Querier
}

// NewFormulaRepository construye el adaptador de fórmulas. Pasar pool o tx (Querier).
func NewFormulaRepository(q Querier) *FormulaRepo {
	return &FormulaRepo{q: q}
}

const formulaColumns = `
	id, product_id, version, description, status, batch_size, created_at, updated_at`

func scanFormula(row pgx.Row) (*entity.Formula, error) {
	var f entity.Formula
	err := row.Scan(
		&f.ID, &f.ProductID, &f.Version, &f.Description, &f.Status,
		&f.BatchSize, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserta la fórmula con sus items.
func (r *FormulaRepo) Create(ctx context.Context, formula *entity.Formula) error {
	query := `
		INSERT INTO formulas (
			id, product_id, version, description, status, batch_size, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.q.Exec(ctx, query,
		formula.ID, formula.ProductID, formula.Version, formula.Description,
		formula.Status, formula.BatchSize, formula.CreatedAt, formula.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert formula: %w", err)
	}
	return r.insertItems(ctx, formula.Items)
}

// GetByID busca una fórmula con sus items. Devuelve (nil, nil) si no existe.
func (r *FormulaRepo) GetByID(ctx context.Context, id string) (*entity.Formula, error) {
	query := `SELECT` + formulaColumns + ` FROM formulas WHERE id = $1`
	f, err := scanFormula(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get formula: %w", err)
	}

	items, err := r.listItems(ctx, `WHERE formula_id = $1`, id)
	if err != nil {
		return nil, err
	}
	f.Items = items[f.ID]
	return f, nil
}

// List devuelve todas las fórmulas con sus items, más reciente primero.
func (r *FormulaRepo) List(ctx context.Context) ([]*entity.Formula, error) {
	query := `SELECT` + formulaColumns + ` FROM formulas ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list formulas: %w", err)
	}
	defer rows.Close()

	var formulas []*entity.Formula
	for rows.Next() {
		f, err := scanFormula(rows)
		if err != nil {
			return nil, fmt.Errorf("scan formula: %w", err)
		}
		formulas = append(formulas, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, ``)
	if err != nil {
		return nil, err
	}
	for _, f := range formulas {
		f.Items = items[f.ID]
	}
	return formulas, nil
}

// Update persiste la cabecera de la fórmula (los items van por ReplaceItems).
func (r *FormulaRepo) Update(ctx context.Context, formula *entity.Formula) error {
	query := `
		UPDATE formulas SET
			version = $2, description = $3, status = $4, batch_size = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		formula.ID, formula.Version, formula.Description, formula.Status,
		formula.BatchSize, formula.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update formula: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFormulaNotFound
	}
	return nil
}

// ReplaceItems borra y recrea los items de la fórmula.
func (r *FormulaRepo) ReplaceItems(ctx context.Context, formulaID string, items []entity.FormulaItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM formula_items WHERE formula_id = $1`, formulaID); err != nil {
		return fmt.Errorf("delete formula items: %w", err)
	}
	return r.insertItems(ctx, items)
}

// Delete elimina la fórmula con sus items.
func (r *FormulaRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM formula_items WHERE formula_id = $1`, id); err != nil {
		return fmt.Errorf("delete formula items: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM formulas WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrFormulaInUse
		}
		return fmt.Errorf("delete formula: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFormulaNotFound
	}
	return nil
}

// CountByStatus cuenta fórmulas en un estado.
func (r *FormulaRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM formulas WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count formulas: %w", err)
	}
	return count, nil
}

func (r *FormulaRepo) insertItems(ctx context.Context, items []entity.FormulaItem) error {
	query := `
		INSERT INTO formula_items (id, formula_id, ingredient_id, percentage, unit, phase, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`
	for _, it := range items {
		_, err := r.q.Exec(ctx, query,
			it.ID, it.FormulaID, it.IngredientID, it.Percentage, it.Unit, it.Phase, it.Notes,
		)
		if err != nil {
			return fmt.Errorf("insert formula item: %w", err)
		}
	}
	return nil
}

// listItems carga items (opcionalmente filtrados) agrupados por formula_id.
func (r *FormulaRepo) listItems(ctx context.Context, where string, args ...any) (map[string][]entity.FormulaItem, error) {
	query := `
		SELECT id, formula_id, ingredient_id, percentage, unit, phase, notes
		FROM formula_items ` + where + ` ORDER BY phase, id`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list formula items: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]entity.FormulaItem)
	for rows.Next() {
		var it entity.FormulaItem
		if err := rows.Scan(&it.ID, &it.FormulaID, &it.IngredientID, &it.Percentage, &it.Unit, &it.Phase, &it.Notes); err != nil {
			return nil, fmt.Errorf("scan formula item: %w", err)
		}
		grouped[it.FormulaID] = append(grouped[it.FormulaID], it)
	}
	return grouped, rows.Err()
}
