package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/producao-api/internal/application/dto"
	appinventory "github.com/jhoicas/producao-api/internal/application/inventory"
	"github.com/jhoicas/producao-api/internal/domain/entity"
	"github.com/jhoicas/producao-api/internal/domain/repository"
	"github.com/jhoicas/producao-api/pkg/logger"
)

// Abreviaturas de mes del dashboard (pt-BR), indexadas por time.Month-1.
var monthNames = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// StatisticsService agrega los indicadores del dashboard a partir de órdenes,
// fórmulas, movimientos y el reporte de stock.
type StatisticsService struct {
	orders    repository.ProductionOrderRepository
	formulas  repository.FormulaRepository
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	inventory *appinventory.Service
	log       *logger.Logger
}

// NewStatisticsService crea el servicio de estadísticas.
func NewStatisticsService(
	orders repository.ProductionOrderRepository,
	formulas repository.FormulaRepository,
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	inv *appinventory.Service,
	log *logger.Logger,
) *StatisticsService {
	return &StatisticsService{
		orders:    orders,
		formulas:  formulas,
		products:  products,
		movements: movements,
		inventory: inv,
		log:       log,
	}
}

// KPIs devuelve los indicadores del dashboard. Los conteos de stock salen del
// reporte real, no de contadores materializados.
func (s *StatisticsService) KPIs(ctx context.Context) (*dto.KPIResponse, error) {
	totalProducts, err := s.products.CountByTypes(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("contar productos: %w", err)
	}

	activeOrders, err := s.orders.CountByStatuses(ctx, []string{
		entity.OrderStatusPlanned, entity.OrderStatusInProgress,
	})
	if err != nil {
		return nil, fmt.Errorf("contar órdenes activas: %w", err)
	}

	pendingFormulas, err := s.formulas.CountByStatus(ctx, entity.FormulaStatusDraft)
	if err != nil {
		return nil, fmt.Errorf("contar fórmulas pendientes: %w", err)
	}

	stockRows, err := s.inventory.StockReport(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte de stock: %w", err)
	}
	productsInStock, lowStock := 0, 0
	for _, r := range stockRows {
		if r.CurrentStock.IsPositive() {
			productsInStock++
		}
		if r.Status == dto.StockStatusLow {
			lowStock++
		}
	}

	return &dto.KPIResponse{
		TotalProducts:   totalProducts,
		ActiveOrders:    activeOrders,
		ProductsInStock: productsInStock,
		LowStockItems:   lowStock,
		PendingFormulas: pendingFormulas,
	}, nil
}

// ProductionByMonth agrega la cantidad planificada de los últimos seis meses
// (mes actual incluido), un punto por mes aunque no haya órdenes.
func (s *StatisticsService) ProductionByMonth(ctx context.Context) ([]dto.MonthlyProduction, error) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)

	orders, err := s.orders.ListCreatedSince(ctx, start, nil)
	if err != nil {
		return nil, fmt.Errorf("listar órdenes del período: %w", err)
	}

	totals := make(map[string]decimal.Decimal, 6)
	for _, o := range orders {
		key := o.CreatedAt.UTC().Format("2006-01")
		totals[key] = totals[key].Add(o.QuantityPlanned)
	}

	out := make([]dto.MonthlyProduction, 0, 6)
	for i := 0; i < 6; i++ {
		month := start.AddDate(0, i, 0)
		out = append(out, dto.MonthlyProduction{
			Name:  monthNames[month.Month()-1],
			Value: totals[month.Format("2006-01")],
		})
	}
	return out, nil
}

// StockTrend devuelve el neto diario de movimientos de los últimos siete días,
// un punto por día aunque no haya movimientos.
func (s *StatisticsService) StockTrend(ctx context.Context) ([]dto.StockTrendPoint, error) {
	now := time.Now().UTC()
	start := now.AddDate(0, 0, -6).Truncate(24 * time.Hour)

	movements, err := s.movements.ListSince(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos del período: %w", err)
	}

	type bucket struct{ in, out decimal.Decimal }
	byDay := make(map[string]bucket, 7)
	for _, m := range movements {
		key := m.CreatedAt.UTC().Format("2006-01-02")
		b := byDay[key]
		if entity.InboundMovement(m.Type) {
			b.in = b.in.Add(m.Quantity)
		} else {
			b.out = b.out.Add(m.Quantity)
		}
		byDay[key] = b
	}

	out := make([]dto.StockTrendPoint, 0, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		b := byDay[day.Format("2006-01-02")]
		out = append(out, dto.StockTrendPoint{
			Date: day,
			In:   b.in,
			Out:  b.out,
			Net:  b.in.Sub(b.out),
		})
	}
	return out, nil
}
