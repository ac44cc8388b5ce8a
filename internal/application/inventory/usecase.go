// Package inventory implementa los casos de uso del motor de inventario:
// lotes, movimientos, ajustes, costo promedio y reportes.
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
	"github.com/jhoicas/producao-api/pkg/logger"
)

// Service orquesta las operaciones del motor de inventario. Las lecturas usan
// los repositorios directos; las escrituras que tocan más de una tabla pasan
// por el TxRunner.
type Service struct {
	tx        TxRunner
	products  repository.ProductRepository
	lots      repository.LotRepository
	movements repository.StockMovementRepository
	log       *logger.Logger
}

// NewService crea el servicio de inventario con sus dependencias.
func NewService(
	tx TxRunner,
	products repository.ProductRepository,
	lots repository.LotRepository,
	movements repository.StockMovementRepository,
	log *logger.Logger,
) *Service {
	return &Service{
		tx:        tx,
		products:  products,
		lots:      lots,
		movements: movements,
		log:       log,
	}
}

// CreateLot registra un lote nuevo. La cantidad actual nace igual a la inicial
// y el estado por defecto es active.
func (s *Service) CreateLot(ctx context.Context, req dto.CreateLotRequest) (*dto.LotResponse, error) {
	if req.Code == "" || req.ProductID == "" {
		return nil, fmt.Errorf("%w: code y productId son obligatorios", domain.ErrInvalidInput)
	}
	if req.QuantityInitial.IsNegative() {
		return nil, fmt.Errorf("%w: la cantidad inicial no puede ser negativa", domain.ErrInvalidInput)
	}

	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("verificar producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	status := req.Status
	if status == "" {
		status = entity.LotStatusActive
	}

	now := time.Now().UTC()
	lot := &entity.Lot{
		ID:              uuid.NewString(),
		Code:            req.Code,
		ProductID:       req.ProductID,
		QuantityInitial: req.QuantityInitial,
		QuantityCurrent: req.QuantityInitial,
		ManufactureDate: req.ManufactureDate,
		ExpirationDate:  req.ExpirationDate,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.lots.Create(ctx, lot); err != nil {
		return nil, fmt.Errorf("crear lote: %w", err)
	}

	s.log.Info().
		Str("lot_id", lot.ID).
		Str("code", lot.Code).
		Str("product_id", lot.ProductID).
		Msg("lote creado")

	resp := dto.LotFromEntity(lot)
	return &resp, nil
}

// ListLots devuelve todos los lotes, o solo los de un producto si productID no es vacío.
func (s *Service) ListLots(ctx context.Context, productID string) ([]dto.LotResponse, error) {
	var (
		lots []*entity.Lot
		err  error
	)
	if productID != "" {
		lots, err = s.lots.ListByProduct(ctx, productID)
	} else {
		lots, err = s.lots.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("listar lotes: %w", err)
	}

	out := make([]dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, dto.LotFromEntity(l))
	}
	return out, nil
}

// GetLot devuelve un lote por id.
func (s *Service) GetLot(ctx context.Context, id string) (*dto.LotResponse, error) {
	lot, err := s.lots.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar lote: %w", err)
	}
	if lot == nil {
		return nil, domain.ErrLotNotFound
	}
	resp := dto.LotFromEntity(lot)
	return &resp, nil
}

// StockLevel devuelve el stock agregado de un producto: suma de las cantidades
// actuales de los lotes con cantidad positiva, con el detalle de esos lotes.
func (s *Service) StockLevel(ctx context.Context, productID string) (*dto.StockLevelResponse, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("verificar producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	lots, err := s.lots.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("listar lotes del producto: %w", err)
	}

	total := decimal.Zero
	detail := make([]dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		if l.QuantityCurrent.IsPositive() {
			total = total.Add(l.QuantityCurrent)
			detail = append(detail, dto.LotFromEntity(l))
		}
	}

	return &dto.StockLevelResponse{
		ProductID:  productID,
		TotalStock: total,
		Lots:       detail,
	}, nil
}

// positiveStock suma las cantidades actuales positivas de los lotes de un producto.
func positiveStock(lots []*entity.Lot) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lots {
		if l.QuantityCurrent.IsPositive() {
			total = total.Add(l.QuantityCurrent)
		}
	}
	return total
}

// activeStock suma las cantidades actuales de los lotes activos (incluye
// negativas del lote de ajuste; es la base del costo promedio).
func activeStock(lots []*entity.Lot) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lots {
		if l.Status == entity.LotStatusActive {
			total = total.Add(l.QuantityCurrent)
		}
	}
	return total
}
