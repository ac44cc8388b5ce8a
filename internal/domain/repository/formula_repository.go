package repository

import (
	"context"

	"github.com/jhoicas/producao-api/internal/domain/entity"
)

// FormulaRepository define el puerto de persistencia para fórmulas y sus items.
// GetByID devuelve (nil, nil) si no existe; las lecturas incluyen los items.
type FormulaRepository interface {
	Create(ctx context.Context, formula *entity.Formula) error
	GetByID(ctx context.Context, id string) (*entity.Formula, error)
	List(ctx context.Context) ([]*entity.Formula, error)
	Update(ctx context.Context, formula *entity.Formula) error
	// ReplaceItems borra y recrea los items de la fórmula.
	ReplaceItems(ctx context.Context, formulaID string, items []entity.FormulaItem) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status string) (int, error)
}
