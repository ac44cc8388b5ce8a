package repository

import (
	"context"
	"time"

	"github.com/jhoicas/producao-api/internal/domain/entity"
)

// ProductionOrderRepository define el puerto de persistencia para órdenes de
// producción y sus items. GetByID devuelve (nil, nil) si no existe.
type ProductionOrderRepository interface {
	Create(ctx context.Context, order *entity.ProductionOrder) error
	GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error)
	List(ctx context.Context) ([]*entity.ProductionOrder, error)
	Update(ctx context.Context, order *entity.ProductionOrder) error
	ReplaceItems(ctx context.Context, orderID string, items []entity.ProductionOrderItem) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	// LatestCodeWithPrefix devuelve el mayor código con el prefijo dado
	// ("" si no hay ninguno); alimenta la secuencia OP-YYYY-NNNN.
	LatestCodeWithPrefix(ctx context.Context, prefix string) (string, error)
	CountByStatuses(ctx context.Context, statuses []string) (int, error)
	ListCreatedSince(ctx context.Context, since time.Time, statuses []string) ([]*entity.ProductionOrder, error)
}
