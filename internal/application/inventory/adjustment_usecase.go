package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/producao-api/internal/application/dto"
	"github.com/jhoicas/producao-api/internal/domain"
	"github.com/jhoicas/producao-api/internal/domain/entity"
	"github.com/jhoicas/producao-api/internal/domain/repository"
)

// Adjust aplica un ajuste de stock con signo: positivo agrega, negativo quita.
// Si se indica un lote, el delta se aplica ahí; si no, va al lote sintético de
// ajustes del producto (código ADJ-, se crea si no existe). El ajuste queda en
// el libro como movimiento in/out con costo cero y la razón como referencia.
func (s *Service) Adjust(ctx context.Context, req dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	if req.ProductID == "" {
		return nil, fmt.Errorf("%w: productId es obligatorio", domain.ErrInvalidInput)
	}
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: reason es obligatorio", domain.ErrInvalidInput)
	}
	if req.QuantityAdjustment.IsZero() {
		return nil, fmt.Errorf("%w: el ajuste no puede ser cero", domain.ErrInvalidInput)
	}

	movementType := entity.MovementTypeIn
	if req.QuantityAdjustment.IsNegative() {
		movementType = entity.MovementTypeOut
	}

	reference := req.Reason
	if req.Reference != "" {
		reference = req.Reason + " - " + req.Reference
	}

	movement := &entity.StockMovement{
		ID:        uuid.NewString(),
		ProductID: req.ProductID,
		Type:      movementType,
		Quantity:  req.QuantityAdjustment.Abs(),
		Cost:      decimal.Zero,
		Reference: reference,
		CreatedAt: time.Now().UTC(),
	}

	var previousStock decimal.Decimal

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

		productLots, err := lotRepo.ListByProduct(ctx, req.ProductID)
		if err != nil {
			return fmt.Errorf("listar lotes del producto: %w", err)
		}
		previousStock = positiveStock(productLots)

		if req.LotID != "" {
			lot, err := lotRepo.GetByIDForUpdate(ctx, req.LotID)
			if err != nil {
				return fmt.Errorf("bloquear lote: %w", err)
			}
			if lot == nil {
				return domain.ErrLotNotFound
			}
			movement.LotID = &lot.ID
			if err := lotRepo.ApplyDelta(ctx, lot.ID, req.QuantityAdjustment); err != nil {
				return fmt.Errorf("aplicar ajuste al lote: %w", err)
			}
		} else {
			lotID, err := s.applyToAdjustmentLot(ctx, lotRepo, req.ProductID, req.QuantityAdjustment)
			if err != nil {
				return err
			}
			movement.LotID = &lotID
		}

		if err := movRepo.Create(ctx, movement); err != nil {
			return fmt.Errorf("registrar movimiento de ajuste: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("product_id", req.ProductID).
		Str("adjustment", req.QuantityAdjustment.String()).
		Str("reason", req.Reason).
		Msg("ajuste de stock aplicado")

	return &dto.AdjustStockResponse{
		Movement:      dto.MovementFromEntity(movement),
		PreviousStock: previousStock,
		Adjustment:    req.QuantityAdjustment,
		NewStock:      previousStock.Add(req.QuantityAdjustment),
	}, nil
}

// applyToAdjustmentLot aplica el delta al lote ADJ- del producto, creándolo
// si no existe. La cantidad inicial solo crece con ajustes positivos: los
// negativos dejan la inicial intacta y la actual puede quedar bajo cero.
func (s *Service) applyToAdjustmentLot(
	ctx context.Context,
	lotRepo repository.LotRepository,
	productID string,
	adjustment decimal.Decimal,
) (string, error) {
	deltaInitial := decimal.Zero
	if adjustment.IsPositive() {
		deltaInitial = adjustment
	}

	adjLot, err := lotRepo.FindAdjustmentLot(ctx, productID)
	if err != nil {
		return "", fmt.Errorf("buscar lote de ajuste: %w", err)
	}
	if adjLot != nil {
		if err := lotRepo.ApplyAdjustment(ctx, adjLot.ID, adjustment, deltaInitial); err != nil {
			return "", fmt.Errorf("aplicar ajuste al lote ADJ: %w", err)
		}
		return adjLot.ID, nil
	}

	shortID := productID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	now := time.Now().UTC()
	adjLot = &entity.Lot{
		ID:              uuid.NewString(),
		Code:            entity.AdjustmentLotPrefix + shortID,
		ProductID:       productID,
		QuantityInitial: deltaInitial,
		QuantityCurrent: adjustment,
		Status:          entity.LotStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := lotRepo.Create(ctx, adjLot); err != nil {
		return "", fmt.Errorf("crear lote de ajuste: %w", err)
	}
	return adjLot.ID, nil
}

// AdjustmentHistory reconstruye el historial de ajustes: para cada movimiento
// con referencia, el stock previo se recalcula por replay de todos los
// movimientos anteriores del producto.
func (s *Service) AdjustmentHistory(ctx context.Context, filters repository.MovementFilters) ([]dto.AdjustmentHistoryEntry, error) {
	movements, err := s.movements.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}

	productNames := make(map[string]string)
	entries := make([]dto.AdjustmentHistoryEntry, 0, len(movements))
	for _, m := range movements {
		if m.Reference == "" {
			continue
		}

		name, ok := productNames[m.ProductID]
		if !ok {
			product, err := s.products.GetByID(ctx, m.ProductID)
			if err != nil {
				return nil, fmt.Errorf("buscar producto del ajuste: %w", err)
			}
			if product != nil {
				name = product.Name
			}
			productNames[m.ProductID] = name
		}

		prior, err := s.movements.ListBefore(ctx, m.ProductID, m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("reconstruir stock previo: %w", err)
		}
		previousStock := decimal.Zero
		for _, p := range prior {
			previousStock = previousStock.Add(entity.MovementDelta(p.Type, p.Quantity))
		}

		adjustment := entity.MovementDelta(m.Type, m.Quantity)
		entries = append(entries, dto.AdjustmentHistoryEntry{
			ID:            m.ID,
			Date:          m.CreatedAt,
			ProductID:     m.ProductID,
			ProductName:   name,
			PreviousStock: previousStock,
			Adjustment:    adjustment,
			NewStock:      previousStock.Add(adjustment),
			Reason:        m.Reference,
			LotID:         m.LotID,
		})
	}
	return entries, nil
}
