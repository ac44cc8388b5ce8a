package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	SKU               string          `json:"sku,omitempty"`
	Barcode           string          `json:"barcode,omitempty"`
	SupplierCode      string          `json:"supplierCode,omitempty"`
	DumCode           string          `json:"dumCode,omitempty"`
	Type              string          `json:"type"`
	Density           decimal.Decimal `json:"density,omitempty"`
	NetWeight         decimal.Decimal `json:"netWeight,omitempty"`
	Unit              string          `json:"unit"`
	CurrentCost       decimal.Decimal `json:"currentCost,omitempty"`
	MinStock          decimal.Decimal `json:"minStock,omitempty"`
	ManufacturingMode string          `json:"manufacturingMode,omitempty"`
	PH                string          `json:"ph,omitempty"`
	Viscosity         string          `json:"viscosity,omitempty"`
	Odor              string          `json:"odor,omitempty"`
	Aspect            string          `json:"aspect,omitempty"`
	Color             string          `json:"color,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
// CurrentCost no se actualiza por aquí: lo administra el motor de costos.
type UpdateProductRequest struct {
	Name              *string          `json:"name,omitempty"`
	Description       *string          `json:"description,omitempty"`
	SKU               *string          `json:"sku,omitempty"`
	Barcode           *string          `json:"barcode,omitempty"`
	SupplierCode      *string          `json:"supplierCode,omitempty"`
	DumCode           *string          `json:"dumCode,omitempty"`
	Type              *string          `json:"type,omitempty"`
	Density           *decimal.Decimal `json:"density,omitempty"`
	NetWeight         *decimal.Decimal `json:"netWeight,omitempty"`
	Unit              *string          `json:"unit,omitempty"`
	MinStock          *decimal.Decimal `json:"minStock,omitempty"`
	ManufacturingMode *string          `json:"manufacturingMode,omitempty"`
	PH                *string          `json:"ph,omitempty"`
	Viscosity         *string          `json:"viscosity,omitempty"`
	Odor              *string          `json:"odor,omitempty"`
	Aspect            *string          `json:"aspect,omitempty"`
	Color             *string          `json:"color,omitempty"`
}

// ProductResponse representación de un producto en respuestas.
type ProductResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	SKU               string          `json:"sku,omitempty"`
	Barcode           string          `json:"barcode,omitempty"`
	SupplierCode      string          `json:"supplierCode,omitempty"`
	DumCode           string          `json:"dumCode,omitempty"`
	Type              string          `json:"type"`
	Density           decimal.Decimal `json:"density"`
	NetWeight         decimal.Decimal `json:"netWeight"`
	Unit              string          `json:"unit"`
	CurrentCost       decimal.Decimal `json:"currentCost"`
	MinStock          decimal.Decimal `json:"minStock"`
	ManufacturingMode string          `json:"manufacturingMode,omitempty"`
	PH                string          `json:"ph,omitempty"`
	Viscosity         string          `json:"viscosity,omitempty"`
	Odor              string          `json:"odor,omitempty"`
	Aspect            string          `json:"aspect,omitempty"`
	Color             string          `json:"color,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}
