package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/producao-api/internal/application/dto"
	"github.com/jhoicas/producao-api/internal/domain"
	"github.com/jhoicas/producao-api/internal/domain/entity"
	"github.com/jhoicas/producao-api/internal/domain/repository"
	"github.com/jhoicas/producao-api/pkg/logger"
)

var oneHundred = decimal.NewFromInt(100)

// ProductionService casos de uso de órdenes de producción.
type ProductionService struct {
	tx       ProductionTxRunner
	orders   repository.ProductionOrderRepository
	formulas repository.FormulaRepository
	products repository.ProductRepository
	log      *logger.Logger
}

// NewProductionService crea el servicio de producción.
func NewProductionService(
	tx ProductionTxRunner,
	orders repository.ProductionOrderRepository,
	formulas repository.FormulaRepository,
	products repository.ProductRepository,
	log *logger.Logger,
) *ProductionService {
	return &ProductionService{tx: tx, orders: orders, formulas: formulas, products: products, log: log}
}

// Create registra una orden de producción. El código se genera secuencial por
// año (OP-YYYY-NNNN). Si no vienen items explícitos, se derivan de los
// porcentajes de la fórmula sobre la cantidad planificada.
func (s *ProductionService) Create(ctx context.Context, req dto.CreateProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	if req.ProductID == "" || req.FormulaID == "" {
		return nil, fmt.Errorf("%w: productId y formulaId son obligatorios", domain.ErrInvalidInput)
	}
	if !req.QuantityPlanned.IsPositive() {
		return nil, fmt.Errorf("%w: quantityPlanned debe ser mayor que cero", domain.ErrInvalidInput)
	}

	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("verificar producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	var order *entity.ProductionOrder

	err = s.tx.RunProduction(ctx, func(
		orderRepo repository.ProductionOrderRepository,
		_ repository.StockMovementRepository,
		formulaRepo repository.FormulaRepository,
	) error {
		formula, err := formulaRepo.GetByID(ctx, req.FormulaID)
		if err != nil {
			return fmt.Errorf("buscar fórmula: %w", err)
		}
		if formula == nil {
			return domain.ErrFormulaNotFound
		}

		code, err := s.nextOrderCode(ctx, orderRepo)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		order = &entity.ProductionOrder{
			ID:              uuid.NewString(),
			Code:            code,
			ProductID:       req.ProductID,
			FormulaID:       req.FormulaID,
			QuantityPlanned: req.QuantityPlanned,
			Unit:            req.Unit,
			Status:          entity.OrderStatusPlanned,
			StartDate:       req.StartDate,
			LotNumber:       req.LotNumber,
			Notes:           req.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if len(req.Items) > 0 {
			order.Items = buildOrderItems(order.ID, req.Items)
		} else {
			order.Items = deriveOrderItems(order.ID, req.QuantityPlanned, formula)
		}

		if err := orderRepo.Create(ctx, order); err != nil {
			return fmt.Errorf("crear orden de producción: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("order_id", order.ID).
		Str("code", order.Code).
		Str("product_id", order.ProductID).
		Msg("orden de producción creada")

	resp := dto.ProductionOrderFromEntity(order)
	return &resp, nil
}

// nextOrderCode genera el siguiente código OP-YYYY-NNNN del año en curso.
func (s *ProductionService) nextOrderCode(ctx context.Context, orderRepo repository.ProductionOrderRepository) (string, error) {
	year := time.Now().UTC().Year()
	prefix := fmt.Sprintf("OP-%d-", year)

	latest, err := orderRepo.LatestCodeWithPrefix(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("buscar último código de orden: %w", err)
	}

	next := 1
	if latest != "" {
		if n, err := strconv.Atoi(strings.TrimPrefix(latest, prefix)); err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s%04d", prefix, next), nil
}

// GetByID devuelve una orden con sus items.
func (s *ProductionService) GetByID(ctx context.Context, id string) (*dto.ProductionOrderResponse, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar orden: %w", err)
	}
	if order == nil {
		return nil, domain.ErrProductionNotFound
	}
	resp := dto.ProductionOrderFromEntity(order)
	return &resp, nil
}

// List devuelve todas las órdenes con sus items.
func (s *ProductionService) List(ctx context.Context) ([]dto.ProductionOrderResponse, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar órdenes: %w", err)
	}
	out := make([]dto.ProductionOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.ProductionOrderFromEntity(o))
	}
	return out, nil
}

// Update aplica un parche parcial sobre una orden. Si vienen items se
// reemplazan; si cambia la fórmula (o la cantidad) sin items explícitos,
// se recalculan desde los porcentajes.
func (s *ProductionService) Update(ctx context.Context, id string, req dto.UpdateProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	var resp *dto.ProductionOrderResponse

	err := s.tx.RunProduction(ctx, func(
		orderRepo repository.ProductionOrderRepository,
		_ repository.StockMovementRepository,
		formulaRepo repository.FormulaRepository,
	) error {
		order, err := orderRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("buscar orden: %w", err)
		}
		if order == nil {
			return domain.ErrProductionNotFound
		}

		recalc := false
		if req.FormulaID != nil && *req.FormulaID != order.FormulaID {
			order.FormulaID = *req.FormulaID
			recalc = true
		}
		if req.QuantityPlanned != nil {
			if !req.QuantityPlanned.IsPositive() {
				return fmt.Errorf("%w: quantityPlanned debe ser mayor que cero", domain.ErrInvalidInput)
			}
			if !req.QuantityPlanned.Equal(order.QuantityPlanned) {
				order.QuantityPlanned = *req.QuantityPlanned
				recalc = true
			}
		}
		if req.QuantityReal != nil {
			order.QuantityReal = *req.QuantityReal
		}
		if req.Unit != nil {
			order.Unit = *req.Unit
		}
		if req.StartDate != nil {
			order.StartDate = req.StartDate
		}
		if req.EndDate != nil {
			order.EndDate = req.EndDate
		}
		if req.LotNumber != nil {
			order.LotNumber = *req.LotNumber
		}
		if req.Notes != nil {
			order.Notes = *req.Notes
		}
		order.UpdatedAt = time.Now().UTC()

		if err := orderRepo.Update(ctx, order); err != nil {
			return fmt.Errorf("actualizar orden: %w", err)
		}

		switch {
		case len(req.Items) > 0:
			order.Items = buildOrderItems(order.ID, req.Items)
		case recalc:
			formula, err := formulaRepo.GetByID(ctx, order.FormulaID)
			if err != nil {
				return fmt.Errorf("buscar fórmula: %w", err)
			}
			if formula == nil {
				return domain.ErrFormulaNotFound
			}
			order.Items = deriveOrderItems(order.ID, order.QuantityPlanned, formula)
		default:
			r := dto.ProductionOrderFromEntity(order)
			resp = &r
			return nil
		}

		if err := orderRepo.ReplaceItems(ctx, order.ID, order.Items); err != nil {
			return fmt.Errorf("reemplazar items de la orden: %w", err)
		}
		r := dto.ProductionOrderFromEntity(order)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// UpdateStatus cambia el estado de la orden. El cambio no registra movimientos
// de stock: las entradas y consumos de producción se registran explícitamente
// en el libro de movimientos referenciando la orden.
func (s *ProductionService) UpdateStatus(ctx context.Context, id, status string) (*dto.ProductionOrderResponse, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidOrderStatus, status)
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar orden: %w", err)
	}
	if order == nil {
		return nil, domain.ErrProductionNotFound
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("actualizar estado de la orden: %w", err)
	}
	order.Status = status
	order.UpdatedAt = time.Now().UTC()

	s.log.Info().Str("order_id", id).Str("status", status).Msg("estado de orden actualizado")

	resp := dto.ProductionOrderFromEntity(order)
	return &resp, nil
}

// Delete elimina una orden en cascada: primero sus movimientos de stock,
// luego items y orden, todo en una transacción.
func (s *ProductionService) Delete(ctx context.Context, id string) error {
	err := s.tx.RunProduction(ctx, func(
		orderRepo repository.ProductionOrderRepository,
		movRepo repository.StockMovementRepository,
		_ repository.FormulaRepository,
	) error {
		order, err := orderRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("buscar orden: %w", err)
		}
		if order == nil {
			return domain.ErrProductionNotFound
		}
		if err := movRepo.DeleteByProductionOrder(ctx, id); err != nil {
			return fmt.Errorf("eliminar movimientos de la orden: %w", err)
		}
		if err := orderRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("eliminar orden: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("order_id", id).Msg("orden de producción eliminada")
	return nil
}

func buildOrderItems(orderID string, reqs []dto.ProductionItemRequest) []entity.ProductionOrderItem {
	items := make([]entity.ProductionOrderItem, 0, len(reqs))
	for _, it := range reqs {
		items = append(items, entity.ProductionOrderItem{
			ID:                uuid.NewString(),
			ProductionOrderID: orderID,
			IngredientID:      it.IngredientID,
			QuantityPlanned:   it.QuantityPlanned,
		})
	}
	return items
}

// deriveOrderItems calcula los ingredientes planificados desde la fórmula:
// cantidad = planificada * porcentaje / 100.
func deriveOrderItems(orderID string, quantityPlanned decimal.Decimal, formula *entity.Formula) []entity.ProductionOrderItem {
	items := make([]entity.ProductionOrderItem, 0, len(formula.Items))
	for _, fi := range formula.Items {
		items = append(items, entity.ProductionOrderItem{
			ID:                uuid.NewString(),
			ProductionOrderID: orderID,
			IngredientID:      fi.IngredientID,
			QuantityPlanned:   quantityPlanned.Mul(fi.Percentage).Div(oneHundred),
		})
	}
	return items
}
