package inventory

import (
	"context"

	"github.com/jhoicas/producao-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la unidad de trabajo del motor de
// inventario: commit o rollback exactamente una vez en el borde exterior.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		lotRepo repository.LotRepository,
		productRepo repository.ProductRepository,
	) error) error
}
