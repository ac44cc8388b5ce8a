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

// FormulaService casos de uso de fórmulas (recetas de fabricación).
type FormulaService struct {
	tx       FormulaTxRunner
	formulas repository.FormulaRepository
	products repository.ProductRepository
	log      *logger.Logger
}

// NewFormulaService crea el servicio de fórmulas.
func NewFormulaService(
	tx FormulaTxRunner,
	formulas repository.FormulaRepository,
	products repository.ProductRepository,
	log *logger.Logger,
) *FormulaService {
	return &FormulaService{tx: tx, formulas: formulas, products: products, log: log}
}

// Create registra una fórmula nueva con sus ingredientes.
func (s *FormulaService) Create(ctx context.Context, req dto.CreateFormulaRequest) (*dto.FormulaResponse, error) {
	if req.ProductID == "" || req.Version == "" {
		return nil, fmt.Errorf("%w: productId y version son obligatorios", domain.ErrInvalidInput)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: la fórmula necesita al menos un ingrediente", domain.ErrInvalidInput)
	}
	if !req.BatchSize.IsPositive() {
		return nil, fmt.Errorf("%w: batchSize debe ser mayor que cero", domain.ErrInvalidInput)
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
		status = entity.FormulaStatusDraft
	}

	now := time.Now().UTC()
	formula := &entity.Formula{
		ID:          uuid.NewString(),
		ProductID:   req.ProductID,
		Version:     req.Version,
		Description: req.Description,
		Status:      status,
		BatchSize:   req.BatchSize,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	items, err := buildFormulaItems(formula.ID, req.Items)
	if err != nil {
		return nil, err
	}
	formula.Items = items

	if err := s.formulas.Create(ctx, formula); err != nil {
		return nil, fmt.Errorf("crear fórmula: %w", err)
	}

	s.log.Info().
		Str("formula_id", formula.ID).
		Str("product_id", formula.ProductID).
		Str("version", formula.Version).
		Msg("fórmula creada")

	resp := dto.FormulaFromEntity(formula)
	return &resp, nil
}

// GetByID devuelve una fórmula con sus items.
func (s *FormulaService) GetByID(ctx context.Context, id string) (*dto.FormulaResponse, error) {
	formula, err := s.formulas.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar fórmula: %w", err)
	}
	if formula == nil {
		return nil, domain.ErrFormulaNotFound
	}
	resp := dto.FormulaFromEntity(formula)
	return &resp, nil
}

// List devuelve todas las fórmulas con sus items.
func (s *FormulaService) List(ctx context.Context) ([]dto.FormulaResponse, error) {
	formulas, err := s.formulas.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar fórmulas: %w", err)
	}
	out := make([]dto.FormulaResponse, 0, len(formulas))
	for _, f := range formulas {
		out = append(out, dto.FormulaFromEntity(f))
	}
	return out, nil
}

// Update actualiza la cabecera de una fórmula y, si vienen items, los
// reemplaza completos en la misma transacción.
func (s *FormulaService) Update(ctx context.Context, id string, req dto.UpdateFormulaRequest) (*dto.FormulaResponse, error) {
	var resp *dto.FormulaResponse

	err := s.tx.RunFormula(ctx, func(formulaRepo repository.FormulaRepository) error {
		formula, err := formulaRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("buscar fórmula: %w", err)
		}
		if formula == nil {
			return domain.ErrFormulaNotFound
		}

		if req.Version != nil {
			formula.Version = *req.Version
		}
		if req.Description != nil {
			formula.Description = *req.Description
		}
		if req.Status != nil {
			formula.Status = *req.Status
		}
		if req.BatchSize != nil {
			if !req.BatchSize.IsPositive() {
				return fmt.Errorf("%w: batchSize debe ser mayor que cero", domain.ErrInvalidInput)
			}
			formula.BatchSize = *req.BatchSize
		}
		formula.UpdatedAt = time.Now().UTC()

		if err := formulaRepo.Update(ctx, formula); err != nil {
			return fmt.Errorf("actualizar fórmula: %w", err)
		}

		if len(req.Items) > 0 {
			items, err := buildFormulaItems(formula.ID, req.Items)
			if err != nil {
				return err
			}
			if err := formulaRepo.ReplaceItems(ctx, formula.ID, items); err != nil {
				return fmt.Errorf("reemplazar items de la fórmula: %w", err)
			}
			formula.Items = items
		}

		r := dto.FormulaFromEntity(formula)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Delete elimina una fórmula con sus items.
func (s *FormulaService) Delete(ctx context.Context, id string) error {
	formula, err := s.formulas.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("buscar fórmula: %w", err)
	}
	if formula == nil {
		return domain.ErrFormulaNotFound
	}
	if err := s.formulas.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar fórmula: %w", err)
	}
	s.log.Info().Str("formula_id", id).Msg("fórmula eliminada")
	return nil
}

func buildFormulaItems(formulaID string, reqs []dto.FormulaItemRequest) ([]entity.FormulaItem, error) {
	items := make([]entity.FormulaItem, 0, len(reqs))
	for _, it := range reqs {
		if it.IngredientID == "" {
			return nil, fmt.Errorf("%w: ingredientId es obligatorio en cada item", domain.ErrInvalidInput)
		}
		if !it.Percentage.IsPositive() {
			return nil, fmt.Errorf("%w: percentage debe ser mayor que cero", domain.ErrInvalidInput)
		}
		items = append(items, entity.FormulaItem{
			ID:           uuid.NewString(),
			FormulaID:    formulaID,
			IngredientID: it.IngredientID,
			Percentage:   it.Percentage,
			Unit:         it.Unit,
			Phase:        it.Phase,
			Notes:        it.Notes,
		})
	}
	return items, nil
}
