package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una fórmula.
const (
	FormulaStatusDraft    = "draft"
	FormulaStatusApproved = "approved"
	FormulaStatusArchived = "archived"
)

// Formula es la receta (bill of materials) de un producto terminado:
// ingredientes expresados como porcentaje del batch.
type Formula struct {
	ID          string
	ProductID   string
	Version     string
	Description string
	Status      string // draft, approved, archived
	BatchSize   decimal.Decimal
	Items       []FormulaItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FormulaItem un ingrediente de la fórmula con su porcentaje sobre el batch (0-100).
type FormulaItem struct {
	ID           string
	FormulaID    string
	IngredientID string
	Percentage   decimal.Decimal
	Unit         string
	Phase        int
	Notes        string
}
