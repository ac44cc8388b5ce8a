package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/producao-api/internal/application/dto"
	"github.com/jhoicas/producao-api/internal/domain"
	"github.com/jhoicas/producao-api/internal/domain/inventory"
	"github.com/jhoicas/producao-api/internal/domain/repository"
)

// UpdateWeightedAverageCost recalcula el costo promedio ponderado de un
// producto ante una compra: mezcla el stock activo actual (a costo actual)
// con la cantidad que entra (a costo nuevo) y persiste el promedio.
// Cantidad cero es válida: fija el costo sin agregar stock (si el producto
// no tiene stock, el promedio pasa a ser exactamente el costo nuevo).
// Devuelve el desglose completo del cálculo para auditoría.
func (s *Service) UpdateWeightedAverageCost(ctx context.Context, productID string, req dto.UpdateCostRequest) (*dto.CostUpdateResponse, error) {
	if req.Quantity.IsNegative() {
		return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}
	if req.NewCost.IsNegative() {
		return nil, fmt.Errorf("%w: el costo no puede ser negativo", domain.ErrInvalidInput)
	}

	var resp *dto.CostUpdateResponse

	err := s.tx.Run(ctx, func(
		_ repository.StockMovementRepository,
		lotRepo repository.LotRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetByID(ctx, productID)
		if err != nil {
			return fmt.Errorf("buscar producto: %w", err)
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		productLots, err := lotRepo.ListByProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("listar lotes del producto: %w", err)
		}

		avg, breakdown := inventory.WeightedAverageCost(
			activeStock(productLots), product.CurrentCost, req.Quantity, req.NewCost,
		)
		if err := productRepo.UpdateCost(ctx, productID, avg); err != nil {
			return fmt.Errorf("actualizar costo promedio: %w", err)
		}

		resp = &dto.CostUpdateResponse{
			ProductID:      productID,
			PreviousCost:   product.CurrentCost,
			NewAverageCost: avg,
			Calculation: dto.CostCalculation{
				PreviousStock: breakdown.PreviousStock,
				NewQuantity:   breakdown.NewQuantity,
				TotalStock:    breakdown.TotalStock,
				PreviousValue: breakdown.PreviousValue,
				NewValue:      breakdown.NewValue,
				TotalValue:    breakdown.TotalValue,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("product_id", productID).
		Str("previous_cost", resp.PreviousCost.String()).
		Str("new_average_cost", resp.NewAverageCost.String()).
		Msg("costo promedio actualizado")

	return resp, nil
}
