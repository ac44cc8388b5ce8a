package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/producao-api/internal/application/inventory"
	"github.com/jhoicas/producao-api/internal/application/usecase"
	"github.com/jhoicas/producao-api/internal/domain/entity"
	"github.com/jhoicas/producao-api/pkg/logger"
)

type statisticsEnv struct {
	svc       *usecase.StatisticsService
	orders    *fakeOrderRepo
	formulas  *fakeFormulaRepo
	products  *fakeProductRepo
	lots      *fakeLotRepo
	movements *fakeMovementRepo
}

func newStatisticsEnv() *statisticsEnv {
	orders := newFakeOrderRepo()
	formulas := newFakeFormulaRepo()
	products := newFakeProductRepo()
	lots := newFakeLotRepo()
	movements := newFakeMovementRepo()
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	invTx := &fakeInventoryTxRunner{products: products, lots: lots, movements: movements}
	inv := appinventory.NewService(invTx, products, lots, movements, log)

	return &statisticsEnv{
		svc:       usecase.NewStatisticsService(orders, formulas, products, movements, inv, log),
		orders:    orders,
		formulas:  formulas,
		products:  products,
		lots:      lots,
		movements: movements,
	}
}

func TestKPIs(t *testing.T) {
	env := newStatisticsEnv()
	now := time.Now().UTC()

	// Dos productos: uno con stock justo en el mínimo (low) y otro holgado.
	env.products.products["p1"] = &entity.Product{ID: "p1", Name: "Bajo", Type: entity.ProductTypeRawMaterial, MinStock: d("10")}
	env.lots.lots["l1"] = &entity.Lot{ID: "l1", Code: "L-1", ProductID: "p1", QuantityCurrent: d("10"), Status: entity.LotStatusActive}
	env.products.products["p2"] = &entity.Product{ID: "p2", Name: "Ok", Type: entity.ProductTypeFinished, MinStock: d("10")}
	env.lots.lots["l2"] = &entity.Lot{ID: "l2", Code: "L-2", ProductID: "p2", QuantityCurrent: d("50"), Status: entity.LotStatusActive}

	env.orders.orders["o1"] = &entity.ProductionOrder{ID: "o1", Code: "OP-2026-0001", Status: entity.OrderStatusPlanned, CreatedAt: now}
	env.orders.orders["o2"] = &entity.ProductionOrder{ID: "o2", Code: "OP-2026-0002", Status: entity.OrderStatusInProgress, CreatedAt: now}
	env.orders.orders["o3"] = &entity.ProductionOrder{ID: "o3", Code: "OP-2026-0003", Status: entity.OrderStatusFinished, CreatedAt: now}

	env.formulas.formulas["f1"] = &entity.Formula{ID: "f1", Status: entity.FormulaStatusDraft}
	env.formulas.formulas["f2"] = &entity.Formula{ID: "f2", Status: entity.FormulaStatusApproved}

	kpis, err := env.svc.KPIs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, kpis.TotalProducts)
	assert.Equal(t, 2, kpis.ActiveOrders, "planned e in_progress cuentan, finished no")
	assert.Equal(t, 2, kpis.ProductsInStock)
	assert.Equal(t, 1, kpis.LowStockItems)
	assert.Equal(t, 1, kpis.PendingFormulas)
}

func TestProductionByMonth_SeisPuntosConMesesVacios(t *testing.T) {
	env := newStatisticsEnv()
	now := time.Now().UTC()

	env.orders.orders["o1"] = &entity.ProductionOrder{
		ID: "o1", Code: "OP-2026-0001", QuantityPlanned: d("10"), CreatedAt: now,
	}
	env.orders.orders["o2"] = &entity.ProductionOrder{
		ID: "o2", Code: "OP-2026-0002", QuantityPlanned: d("5"), CreatedAt: now,
	}
	// Fuera de la ventana de seis meses.
	env.orders.orders["o0"] = &entity.ProductionOrder{
		ID: "o0", Code: "OP-2025-0009", QuantityPlanned: d("99"), CreatedAt: now.AddDate(0, -7, 0),
	}

	points, err := env.svc.ProductionByMonth(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 6)

	last := points[5]
	assert.True(t, last.Value.Equal(d("15")), "el mes actual suma ambas órdenes")
	for _, p := range points[:5] {
		assert.True(t, p.Value.IsZero(), "mes %s sin órdenes", p.Name)
	}
	assert.NotEmpty(t, last.Name)
}

func TestStockTrend_SietePuntosConNetoDiario(t *testing.T) {
	env := newStatisticsEnv()
	now := time.Now().UTC()
	ctx := context.Background()

	require.NoError(t, env.movements.Create(ctx, &entity.StockMovement{
		ID: "m1", ProductID: "p1", Type: entity.MovementTypeIn, Quantity: d("5"), CreatedAt: now,
	}))
	require.NoError(t, env.movements.Create(ctx, &entity.StockMovement{
		ID: "m2", ProductID: "p1", Type: entity.MovementTypeOut, Quantity: d("2"), CreatedAt: now,
	}))
	// Fuera de la ventana de siete días.
	require.NoError(t, env.movements.Create(ctx, &entity.StockMovement{
		ID: "m0", ProductID: "p1", Type: entity.MovementTypeIn, Quantity: d("100"), CreatedAt: now.AddDate(0, 0, -10),
	}))

	points, err := env.svc.StockTrend(ctx)
	require.NoError(t, err)
	require.Len(t, points, 7)

	today := points[6]
	assert.True(t, today.In.Equal(d("5")))
	assert.True(t, today.Out.Equal(d("2")))
	assert.True(t, today.Net.Equal(d("3")))

	for _, p := range points[:6] {
		assert.True(t, p.Net.IsZero())
	}
}
