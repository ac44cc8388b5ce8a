package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/producao-api/internal/application/dto"
	"github.com/jhoicas/producao-api/internal/domain/entity"
)

// Los reportes son proyecciones de solo lectura: se recomputan en cada llamada
// a partir de productos y lotes, nunca se materializan.

// StockReport devuelve el stock agregado por producto con valorización y el
// estado low/ok contra el stock mínimo. El umbral es inclusivo: stock igual
// al mínimo ya es low.
func (s *Service) StockReport(ctx context.Context) ([]dto.StockReportRow, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	lotsByProduct, err := s.lotsByProduct(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.StockReportRow, 0, len(products))
	for _, p := range products {
		stock := positiveStock(lotsByProduct[p.ID])

		code := p.SKU
		if code == "" {
			code = p.Barcode
		}

		rows = append(rows, dto.StockReportRow{
			ID:           p.ID,
			Code:         code,
			Name:         p.Name,
			Unit:         p.Unit,
			MinStock:     p.MinStock,
			CurrentStock: stock,
			CurrentCost:  p.CurrentCost,
			TotalValue:   stock.Mul(p.CurrentCost),
			Status:       stockStatus(stock, p.MinStock),
		})
	}
	return rows, nil
}

// StockCountReport devuelve el stock por producto con el desglose por lote,
// pensado para conteo físico de inventario.
func (s *Service) StockCountReport(ctx context.Context) ([]dto.StockCountRow, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	lotsByProduct, err := s.lotsByProduct(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.StockCountRow, 0, len(products))
	for _, p := range products {
		productLots := lotsByProduct[p.ID]
		stock := positiveStock(productLots)

		// Al conteo físico solo van los lotes con existencias.
		detail := make([]dto.LotCountDetail, 0, len(productLots))
		for _, l := range productLots {
			if !l.QuantityCurrent.IsPositive() {
				continue
			}
			detail = append(detail, dto.LotCountDetail{
				LotCode:        l.Code,
				Quantity:       l.QuantityCurrent,
				ExpirationDate: l.ExpirationDate,
				Status:         l.Status,
			})
		}

		rows = append(rows, dto.StockCountRow{
			ID:           p.ID,
			SKU:          p.SKU,
			Barcode:      p.Barcode,
			Name:         p.Name,
			Type:         p.Type,
			Unit:         p.Unit,
			MinStock:     p.MinStock,
			CurrentStock: stock,
			CurrentCost:  p.CurrentCost,
			TotalValue:   stock.Mul(p.CurrentCost),
			Lots:         detail,
			Status:       stockStatus(stock, p.MinStock),
		})
	}
	return rows, nil
}

// ExpirationReport devuelve los lotes con stock positivo que vencen dentro de
// la ventana de días indicada, ordenados por vencimiento ascendente.
func (s *Service) ExpirationReport(ctx context.Context, days int) ([]dto.ExpirationEntry, error) {
	if days <= 0 {
		days = 30
	}
	before := time.Now().UTC().AddDate(0, 0, days)

	expiring, err := s.lots.ListExpiring(ctx, before)
	if err != nil {
		return nil, fmt.Errorf("listar lotes por vencer: %w", err)
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	entries := make([]dto.ExpirationEntry, 0, len(expiring))
	for _, l := range expiring {
		entry := dto.ExpirationEntry{LotResponse: dto.LotFromEntity(l)}
		if p, ok := byID[l.ProductID]; ok {
			entry.ProductName = p.Name
			entry.ProductUnit = p.Unit
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		ei, ej := entries[i].ExpirationDate, entries[j].ExpirationDate
		if ei == nil || ej == nil {
			return ej == nil && ei != nil
		}
		return ei.Before(*ej)
	})
	return entries, nil
}

// LowStockProducts devuelve solo las filas del reporte de stock en estado low,
// para el listado de reposición de compras.
func (s *Service) LowStockProducts(ctx context.Context) ([]dto.StockReportRow, error) {
	rows, err := s.StockReport(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]dto.StockReportRow, 0)
	for _, r := range rows {
		if r.Status == dto.StockStatusLow {
			low = append(low, r)
		}
	}
	return low, nil
}

// LowStockCount cuenta los productos en estado low (para el dashboard).
func (s *Service) LowStockCount(ctx context.Context) (int, error) {
	rows, err := s.LowStockProducts(ctx)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (s *Service) lotsByProduct(ctx context.Context) (map[string][]*entity.Lot, error) {
	lots, err := s.lots.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar lotes: %w", err)
	}
	grouped := make(map[string][]*entity.Lot)
	for _, l := range lots {
		grouped[l.ProductID] = append(grouped[l.ProductID], l)
	}
	return grouped, nil
}

func stockStatus(stock, minStock decimal.Decimal) string {
	if stock.LessThanOrEqual(minStock) {
		return dto.StockStatusLow
	}
	return dto.StockStatusOK
}
