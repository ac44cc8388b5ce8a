package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/producao-api/internal/application/dto"
	"github.com/jhoicas/producao-api/internal/domain"
	"github.com/jhoicas/producao-api/internal/domain/entity"
	"github.com/jhoicas/producao-api/internal/domain/inventory"
	"github.com/jhoicas/producao-api/internal/domain/repository"
)

// RecordMovement registra un movimiento de stock de forma atómica:
// inserta la entrada en el libro, aplica el delta al lote (si se indicó) y,
// para entradas con costo, recalcula el costo promedio ponderado del producto.
// Si el lote no existe, nada queda persistido.
func (s *Service) RecordMovement(ctx context.Context, req dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	if req.ProductID == "" {
		return nil, fmt.Errorf("%w: productId es obligatorio", domain.ErrInvalidInput)
	}
	if !entity.ValidMovementType(req.Type) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMovementType, req.Type)
	}
	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if req.Cost.IsNegative() {
		return nil, fmt.Errorf("%w: el costo no puede ser negativo", domain.ErrInvalidInput)
	}

	movement := &entity.StockMovement{
		ID:        uuid.NewString(),
		ProductID: req.ProductID,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Cost:      req.Cost,
		Reference: req.Reference,
		CreatedAt: time.Now().UTC(),
	}
	if req.LotID != "" {
		lotID := req.LotID
		movement.LotID = &lotID
	}
	if req.ProductionOrderID != "" {
		orderID := req.ProductionOrderID
		movement.ProductionOrderID = &orderID
	}

	err := s.tx.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		lotRepo repository.LotRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetByID(ctx, req.ProductID)
		if err != nil {
			return fmt.Errorf("verificar producto: %w", err)
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		// El costo promedio se recalcula ANTES de aplicar el delta: el stock
		// previo debe excluir la cantidad que entra en este movimiento.
		if entity.InboundMovement(req.Type) && req.Cost.IsPositive() {
			productLots, err := lotRepo.ListByProduct(ctx, req.ProductID)
			if err != nil {
				return fmt.Errorf("listar lotes del producto: %w", err)
			}
			avg, _ := inventory.WeightedAverageCost(
				activeStock(productLots), product.CurrentCost, req.Quantity, req.Cost,
			)
			if err := productRepo.UpdateCost(ctx, req.ProductID, avg); err != nil {
				return fmt.Errorf("actualizar costo promedio: %w", err)
			}
		}

		if movement.LotID != nil {
			lot, err := lotRepo.GetByIDForUpdate(ctx, *movement.LotID)
			if err != nil {
				return fmt.Errorf("bloquear lote: %w", err)
			}
			if lot == nil {
				return domain.ErrLotNotFound
			}
			delta := entity.MovementDelta(req.Type, req.Quantity)
			if err := lotRepo.ApplyDelta(ctx, lot.ID, delta); err != nil {
				return fmt.Errorf("aplicar delta al lote: %w", err)
			}
		}

		if err := movRepo.Create(ctx, movement); err != nil {
			return fmt.Errorf("registrar movimiento: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("movement_id", movement.ID).
		Str("product_id", movement.ProductID).
		Str("type", movement.Type).
		Str("quantity", movement.Quantity.String()).
		Msg("movimiento de stock registrado")

	resp := dto.MovementFromEntity(movement)
	return &resp, nil
}

// MovementHistory devuelve los movimientos que cumplen los filtros,
// más reciente primero.
func (s *Service) MovementHistory(ctx context.Context, filters repository.MovementFilters) ([]dto.MovementResponse, error) {
	movements, err := s.movements.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}

	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementFromEntity(m))
	}
	return out, nil
}
