package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/producao-api/internal/domain/entity"
)

// LotRepository define el puerto de persistencia para lotes.
// GetByID/FindAdjustmentLot devuelven (nil, nil) si no existe.
type LotRepository interface {
	Create(ctx context.Context, lot *entity.Lot) error
	GetByID(ctx context.Context, id string) (*entity.Lot, error)
	// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE) para evitar
	// lost updates bajo escrituras concurrentes sobre el mismo lote.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Lot, error)
	List(ctx context.Context) ([]*entity.Lot, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Lot, error)
	// ApplyDelta suma delta (con signo) a quantity_current.
	// Devuelve domain.ErrLotNotFound si el lote no existe.
	ApplyDelta(ctx context.Context, lotID string, delta decimal.Decimal) error
	// ApplyAdjustment suma deltaCurrent a quantity_current y deltaInitial a
	// quantity_initial en una sola escritura (contabilidad del lote de ajuste).
	ApplyAdjustment(ctx context.Context, lotID string, deltaCurrent, deltaInitial decimal.Decimal) error
	// FindAdjustmentLot busca el lote con código ADJ- del producto.
	FindAdjustmentLot(ctx context.Context, productID string) (*entity.Lot, error)
	// ListExpiring lotes con cantidad positiva y vencimiento <= before,
	// ordenados por vencimiento ascendente.
	ListExpiring(ctx context.Context, before time.Time) ([]*entity.Lot, error)
}
