package dto

import "github.com/jhoicas/producao-api/internal/domain/entity"

// Conversores entidad -> DTO de respuesta.

// ProductFromEntity convierte una entidad Product a su representación HTTP.
func ProductFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		SKU:               p.SKU,
		Barcode:           p.Barcode,
		SupplierCode:      p.SupplierCode,
		DumCode:           p.DumCode,
		Type:              p.Type,
		Density:           p.Density,
		NetWeight:         p.NetWeight,
		Unit:              p.Unit,
		CurrentCost:       p.CurrentCost,
		MinStock:          p.MinStock,
		ManufacturingMode: p.ManufacturingMode,
		PH:                p.PH,
		Viscosity:         p.Viscosity,
		Odor:              p.Odor,
		Aspect:            p.Aspect,
		Color:             p.Color,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// LotFromEntity convierte una entidad Lot a su representación HTTP.
func LotFromEntity(l *entity.Lot) LotResponse {
	return LotResponse{
		ID:              l.ID,
		Code:            l.Code,
		ProductID:       l.ProductID,
		QuantityInitial: l.QuantityInitial,
		QuantityCurrent: l.QuantityCurrent,
		ManufactureDate: l.ManufactureDate,
		ExpirationDate:  l.ExpirationDate,
		Status:          l.Status,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

// MovementFromEntity convierte una entidad StockMovement a su representación HTTP.
func MovementFromEntity(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:                m.ID,
		ProductID:         m.ProductID,
		LotID:             m.LotID,
		Type:              m.Type,
		Quantity:          m.Quantity,
		Cost:              m.Cost,
		Reference:         m.Reference,
		ProductionOrderID: m.ProductionOrderID,
		CreatedAt:         m.CreatedAt,
	}
}

// FormulaFromEntity convierte una entidad Formula (con items) a su representación HTTP.
func FormulaFromEntity(f *entity.Formula) FormulaResponse {
	items := make([]FormulaItemResponse, 0, len(f.Items))
	for _, it := range f.Items {
		items = append(items, FormulaItemResponse{
			ID:           it.ID,
			FormulaID:    it.FormulaID,
			IngredientID: it.IngredientID,
			Percentage:   it.Percentage,
			Unit:         it.Unit,
			Phase:        it.Phase,
			Notes:        it.Notes,
		})
	}
	return FormulaResponse{
		ID:          f.ID,
		ProductID:   f.ProductID,
		Version:     f.Version,
		Description: f.Description,
		Status:      f.Status,
		BatchSize:   f.BatchSize,
		Items:       items,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// ProductionOrderFromEntity convierte una entidad ProductionOrder (con items) a su representación HTTP.
func ProductionOrderFromEntity(o *entity.ProductionOrder) ProductionOrderResponse {
	items := make([]ProductionItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ProductionItemResponse{
			ID:                it.ID,
			ProductionOrderID: it.ProductionOrderID,
			IngredientID:      it.IngredientID,
			QuantityPlanned:   it.QuantityPlanned,
			QuantityReal:      it.QuantityReal,
			LotUsedID:         it.LotUsedID,
		})
	}
	return ProductionOrderResponse{
		ID:              o.ID,
		Code:            o.Code,
		ProductID:       o.ProductID,
		FormulaID:       o.FormulaID,
		QuantityPlanned: o.QuantityPlanned,
		QuantityReal:    o.QuantityReal,
		Unit:            o.Unit,
		Status:          o.Status,
		StartDate:       o.StartDate,
		EndDate:         o.EndDate,
		LotNumber:       o.LotNumber,
		Notes:           o.Notes,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
