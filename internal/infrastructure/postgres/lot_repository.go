package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/producao-api/internal/domain"
	"github.com/jhoicas/producao-api/internal/domain/entity"
	"github.com/jhoicas/producao-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

const lotColumns = `
	id, code, product_id, quantity_initial, quantity_current,
	manufacture_date, expiration_date, status, created_at, updated_at`

func scanLot(row pgx.Row) (*entity.Lot, error) {
	var l entity.Lot
	err := row.Scan(
		&l.ID, &l.Code, &l.ProductID, &l.QuantityInitial, &l.QuantityCurrent,
		&l.ManufactureDate, &l.ExpirationDate, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserta un lote.
func (r *LotRepo) Create(ctx context.Context, lot *entity.Lot) error {
	query := `
		INSERT INTO lots (
			id, code, product_id, quantity_initial, quantity_current,
			manufacture_date, expiration_date, status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err := r.q.Exec(ctx, query,
		lot.ID, lot.Code, lot.ProductID, lot.QuantityInitial, lot.QuantityCurrent,
		lot.ManufactureDate, lot.ExpirationDate, lot.Status, lot.CreatedAt, lot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID busca un lote por id. Devuelve (nil, nil) si no existe.
func (r *LotRepo) GetByID(ctx context.Context, id string) (*entity.Lot, error) {
	query := `SELECT` + lotColumns + ` FROM lots WHERE id = $1`
	l, err := scanLot(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return l, nil
}

// GetByIDForUpdate busca un lote y bloquea la fila (SELECT FOR UPDATE).
func (r *LotRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Lot, error) {
	query := `SELECT` + lotColumns + ` FROM lots WHERE id = $1 FOR UPDATE`
	l, err := scanLot(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot for update: %w", err)
	}
	return l, nil
}

// List devuelve todos los lotes, más reciente primero.
func (r *LotRepo) List(ctx context.Context) ([]*entity.Lot, error) {
	query := `SELECT` + lotColumns + ` FROM lots ORDER BY created_at DESC`
	return r.queryLots(ctx, query)
}

// ListByProduct devuelve los lotes de un producto, más reciente primero.
func (r *LotRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Lot, error) {
	query := `SELECT` + lotColumns + ` FROM lots WHERE product_id = $1 ORDER BY created_at DESC`
	return r.queryLots(ctx, query, productID)
}

// ApplyDelta suma delta (con signo) a la cantidad actual del lote.
func (r *LotRepo) ApplyDelta(ctx context.Context, lotID string, delta decimal.Decimal) error {
	query := `
		UPDATE lots
		SET quantity_current = quantity_current + $2, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, lotID, delta)
	if err != nil {
		return fmt.Errorf("apply lot delta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLotNotFound
	}
	return nil
}

// ApplyAdjustment suma deltaCurrent a la cantidad actual y deltaInitial a la
// inicial en una sola escritura.
func (r *LotRepo) ApplyAdjustment(ctx context.Context, lotID string, deltaCurrent, deltaInitial decimal.Decimal) error {
	query := `
		UPDATE lots
		SET quantity_current = quantity_current + $2,
		    quantity_initial = quantity_initial + $3,
		    updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, lotID, deltaCurrent, deltaInitial)
	if err != nil {
		return fmt.Errorf("apply lot adjustment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLotNotFound
	}
	return nil
}

// FindAdjustmentLot busca el lote sintético ADJ- del producto. (nil, nil) si no existe.
func (r *LotRepo) FindAdjustmentLot(ctx context.Context, productID string) (*entity.Lot, error) {
	query := `SELECT` + lotColumns + `
		FROM lots WHERE product_id = $1 AND code LIKE 'ADJ-%'
		ORDER BY created_at LIMIT 1`
	l, err := scanLot(r.q.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find adjustment lot: %w", err)
	}
	return l, nil
}

// ListExpiring devuelve lotes con cantidad positiva que vencen hasta la fecha
// dada, ordenados por vencimiento ascendente.
func (r *LotRepo) ListExpiring(ctx context.Context, before time.Time) ([]*entity.Lot, error) {
	query := `SELECT` + lotColumns + `
		FROM lots
		WHERE quantity_current > 0
		  AND expiration_date IS NOT NULL
		  AND expiration_date <= $1
		ORDER BY expiration_date`
	return r.queryLots(ctx, query, before)
}

func (r *LotRepo) queryLots(ctx context.Context, query string, args ...any) ([]*entity.Lot, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lots: %w", err)
	}
	defer rows.Close()

	var lots []*entity.Lot
	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		lots = append(lots, l)
	}
	return lots, rows.Err()
}
