package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/producao-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateCost actualiza solo el costo promedio (usado por el motor de costos).
	UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error
	List(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
	CountByTypes(ctx context.Context, types []string) (int, error)
}
