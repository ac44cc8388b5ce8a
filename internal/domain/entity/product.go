package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto del catálogo.
const (
	ProductTypeRawMaterial  = "raw_material"
	ProductTypeFinished     = "finished"
	ProductTypePackaging    = "packaging"
	ProductTypeIntermediate = "intermediate"
)

// ValidProductType indica si el tipo pertenece al catálogo conocido.
func ValidProductType(t string) bool {
	switch t {
	case ProductTypeRawMaterial, ProductTypeFinished, ProductTypePackaging, ProductTypeIntermediate:
		return true
	}
	return false
}

// Product representa cualquier ítem rastreable: materia prima, producto terminado,
// envase o intermedio. CurrentCost es el costo promedio ponderado y solo lo muta
// el motor de costos; el stock vive en los lotes, nunca aquí.
type Product struct {
	ID                string
	Name              string
	Description       string
	SKU               string
	Barcode           string
	SupplierCode      string
	DumCode           string
	Type              string          // raw_material, finished, packaging, intermediate
	Density           decimal.Decimal // g/mL, relevante para cosmética líquida
	NetWeight         decimal.Decimal
	Unit              string // kg, L, un, etc.
	CurrentCost       decimal.Decimal // costo promedio ponderado
	MinStock          decimal.Decimal // umbral de reposición
	ManufacturingMode string
	PH                string
	Viscosity         string
	Odor              string
	Aspect            string
	Color             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
