// Package usecase implementa los casos de uso de catálogo, fórmulas,
// producción y estadísticas.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/producao-api/internal/application/dto"
	"github.com/jhoicas/producao-api/internal/domain"
	"github.com/jhoicas/producao-api/internal/domain/entity"
	"github.com/jhoicas/producao-api/internal/domain/repository"
	"github.com/jhoicas/producao-api/pkg/logger"
)

// ProductService casos de uso del catálogo de productos.
type ProductService struct {
	products repository.ProductRepository
	log      *logger.Logger
}

// NewProductService crea el servicio de productos.
func NewProductService(products repository.ProductRepository, log *logger.Logger) *ProductService {
	return &ProductService{products: products, log: log}
}

// Create registra un producto nuevo del catálogo.
func (s *ProductService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if !entity.ValidProductType(req.Type) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidProductType, req.Type)
	}
	if req.Unit == "" {
		return nil, fmt.Errorf("%w: unit es obligatorio", domain.ErrInvalidInput)
	}
	if req.MinStock.IsNegative() || req.CurrentCost.IsNegative() {
		return nil, fmt.Errorf("%w: minStock y currentCost no pueden ser negativos", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:                uuid.NewString(),
		Name:              req.Name,
		Description:       req.Description,
		SKU:               req.SKU,
		Barcode:           req.Barcode,
		SupplierCode:      req.SupplierCode,
		DumCode:           req.DumCode,
		Type:              req.Type,
		Density:           req.Density,
		NetWeight:         req.NetWeight,
		Unit:              req.Unit,
		CurrentCost:       req.CurrentCost,
		MinStock:          req.MinStock,
		ManufacturingMode: req.ManufacturingMode,
		PH:                req.PH,
		Viscosity:         req.Viscosity,
		Odor:              req.Odor,
		Aspect:            req.Aspect,
		Color:             req.Color,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("crear producto: %w", err)
	}

	s.log.Info().Str("product_id", product.ID).Str("name", product.Name).Msg("producto creado")

	resp := dto.ProductFromEntity(product)
	return &resp, nil
}

// GetByID devuelve un producto por id.
func (s *ProductService) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	resp := dto.ProductFromEntity(product)
	return &resp, nil
}

// List devuelve el catálogo ordenado por nombre.
func (s *ProductService) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductFromEntity(p))
	}
	return out, nil
}

// Update aplica un parche parcial sobre un producto. El costo promedio no se
// toca por aquí: lo administra el motor de costos.
func (s *ProductService) Update(ctx context.Context, id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	if req.Type != nil && !entity.ValidProductType(*req.Type) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidProductType, *req.Type)
	}
	if req.MinStock != nil && req.MinStock.IsNegative() {
		return nil, fmt.Errorf("%w: minStock no puede ser negativo", domain.ErrInvalidInput)
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&product.Name, req.Name)
	applyString(&product.Description, req.Description)
	applyString(&product.SKU, req.SKU)
	applyString(&product.Barcode, req.Barcode)
	applyString(&product.SupplierCode, req.SupplierCode)
	applyString(&product.DumCode, req.DumCode)
	applyString(&product.Type, req.Type)
	applyString(&product.Unit, req.Unit)
	applyString(&product.ManufacturingMode, req.ManufacturingMode)
	applyString(&product.PH, req.PH)
	applyString(&product.Viscosity, req.Viscosity)
	applyString(&product.Odor, req.Odor)
	applyString(&product.Aspect, req.Aspect)
	applyString(&product.Color, req.Color)
	if req.Density != nil {
		product.Density = *req.Density
	}
	if req.NetWeight != nil {
		product.NetWeight = *req.NetWeight
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("actualizar producto: %w", err)
	}

	resp := dto.ProductFromEntity(product)
	return &resp, nil
}

// Delete elimina un producto del catálogo.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("buscar producto: %w", err)
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar producto: %w", err)
	}
	s.log.Info().Str("product_id", id).Msg("producto eliminado")
	return nil
}
