package repository

import (
	"context"
	"time"

	"github.com/jhoicas/producao-api/internal/domain/entity"
)

// MovementFilters filtros conjuntivos (AND) para el historial de movimientos.
type MovementFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	Type      string
	ProductID string
}

// StockMovementRepository define el puerto de persistencia para el libro de
// movimientos. Los movimientos son append-only: no hay Update; Delete existe
// solo como cascada del borrado de órdenes de producción.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// List devuelve movimientos que cumplen todos los filtros, más reciente primero.
	List(ctx context.Context, filters MovementFilters) ([]*entity.StockMovement, error)
	// ListBefore movimientos de un producto estrictamente anteriores a before,
	// para la reconstrucción histórica de ajustes.
	ListBefore(ctx context.Context, productID string, before time.Time) ([]*entity.StockMovement, error)
	// ListSince movimientos desde una fecha (tendencia de stock del dashboard).
	ListSince(ctx context.Context, since time.Time) ([]*entity.StockMovement, error)
	DeleteByProductionOrder(ctx context.Context, productionOrderID string) error
}
