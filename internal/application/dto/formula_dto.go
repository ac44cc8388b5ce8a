package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FormulaItemRequest un ingrediente en la creación/actualización de fórmulas.
type FormulaItemRequest struct {
	IngredientID string          `json:"ingredientId"`
	Percentage   decimal.Decimal `json:"percentage"`
	Unit         string          `json:"unit,omitempty"`
	Phase        int             `json:"phase,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// CreateFormulaRequest body para POST /api/formulas.
type CreateFormulaRequest struct {
	ProductID   string               `json:"productId"`
	Version     string               `json:"version"`
	Description string               `json:"description,omitempty"`
	Status      string               `json:"status,omitempty"`
	BatchSize   decimal.Decimal      `json:"batchSize"`
	Items       []FormulaItemRequest `json:"items"`
}

// UpdateFormulaRequest body para PUT /api/formulas/:id.
// Si Items viene, se reemplazan todos los items en una transacción.
type UpdateFormulaRequest struct {
	Version     *string              `json:"version,omitempty"`
	Description *string              `json:"description,omitempty"`
	Status      *string              `json:"status,omitempty"`
	BatchSize   *decimal.Decimal     `json:"batchSize,omitempty"`
	Items       []FormulaItemRequest `json:"items,omitempty"`
}

// FormulaItemResponse un ingrediente de la fórmula en respuestas.
type FormulaItemResponse struct {
	ID           string          `json:"id"`
	FormulaID    string          `json:"formulaId"`
	IngredientID string          `json:"ingredientId"`
	Percentage   decimal.Decimal `json:"percentage"`
	Unit         string          `json:"unit,omitempty"`
	Phase        int             `json:"phase,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// FormulaResponse representación de una fórmula en respuestas.
type FormulaResponse struct {
	ID          string                `json:"id"`
	ProductID   string                `json:"productId"`
	Version     string                `json:"version"`
	Description string                `json:"description,omitempty"`
	Status      string                `json:"status"`
	BatchSize   decimal.Decimal       `json:"batchSize"`
	Items       []FormulaItemResponse `json:"items"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}
