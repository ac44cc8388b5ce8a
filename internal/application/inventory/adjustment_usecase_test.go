package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/producao-api/internal/application/dto"
	"github.com/jhoicas/producao-api/internal/domain"
	"github.com/jhoicas/producao-api/internal/domain/entity"
	"github.com/jhoicas/producao-api/internal/domain/repository"
)

func TestAdjust_PositivoCreaLoteDeAjuste(t *testing.T) {
	env := newTestEnv()
	env.seedProduct(t, "prod-12345678-x", "Esencia", "5", "0")

	resp, err := env.svc.Adjust(context.Background(), dto.AdjustStockRequest{
		ProductID:          "prod-12345678-x",
		QuantityAdjustment: d("5"),
		Reason:             "conteo físico",
	})
	require.NoError(t, err)

	assert.True(t, resp.PreviousStock.Equal(d("0")))
	assert.True(t, resp.NewStock.Equal(d("5")))
	assert.Equal(t, entity.MovementTypeIn, resp.Movement.Type)
	assert.True(t, resp.Movement.Cost.IsZero(), "los ajustes nunca llevan costo")

	adj, _ := env.lots.FindAdjustmentLot(context.Background(), "prod-12345678-x")
	require.NotNil(t, adj)
	assert.Equal(t, "ADJ-prod-123", adj.Code)
	assert.True(t, adj.QuantityInitial.Equal(d("5")))
	assert.True(t, adj.QuantityCurrent.Equal(d("5")))
}

func TestAdjust_NegativoDejaLoteDeAjusteBajoCero(t *testing.T) {
	env := newTestEnv()
	env.seedProduct(t, "p1", "Esencia", "5", "0")

	resp, err := env.svc.Adjust(context.Background(), dto.AdjustStockRequest{
		ProductID:          "p1",
		QuantityAdjustment: d("-5"),
		Reason:             "merma",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MovementTypeOut, resp.Movement.Type)
	assert.True(t, resp.Movement.Quantity.Equal(d("5")), "el libro guarda la magnitud sin signo")
	assert.True(t, resp.NewStock.Equal(d("-5")))

	// La cantidad inicial solo crece con ajustes positivos.
	adj, _ := env.lots.FindAdjustmentLot(context.Background(), "p1")
	require.NotNil(t, adj)
	assert.True(t, adj.QuantityInitial.IsZero())
	assert.True(t, adj.QuantityCurrent.Equal(d("-5")))
}

func TestAdjust_ReutilizaElLoteDeAjuste(t *testing.T) {
	env := newTestEnv()
	env.seedProduct(t, "p1", "Esencia", "5", "0")
	ctx := context.Background()

	_, err := env.svc.Adjust(ctx, dto.AdjustStockRequest{ProductID: "p1", QuantityAdjustment: d("7"), Reason: "conteo"})
	require.NoError(t, err)
	_, err = env.svc.Adjust(ctx, dto.AdjustStockRequest{ProductID: "p1", QuantityAdjustment: d("-7"), Reason: "corrección"})
	require.NoError(t, err)

	lots, _ := env.lots.ListByProduct(ctx, "p1")
	require.Len(t, lots, 1, "los ajustes comparten un solo lote ADJ por producto")
	assert.True(t, lots[0].QuantityCurrent.IsZero())
	assert.True(t, lots[0].QuantityInitial.Equal(d("7")))
}

func TestAdjust_SobreLoteFisico(t *testing.T) {
	env := newTestEnv()
	env.seedProduct(t, "p1", "Esencia", "5", "0")
	env.seedLot(t, "l1", "L-1", "p1", "10")

	resp, err := env.svc.Adjust(context.Background(), dto.AdjustStockRequest{
		ProductID:          "p1",
		QuantityAdjustment: d("-4"),
		Reason:             "rotura",
		LotID:              "l1",
	})
	require.NoError(t, err)

	assert.True(t, resp.PreviousStock.Equal(d("10")))
	assert.True(t, resp.NewStock.Equal(d("6")))

	lot, _ := env.lots.GetByID(context.Background(), "l1")
	assert.True(t, lot.QuantityCurrent.Equal(d("6")))
	// El ajuste dirigido a un lote físico no toca la cantidad inicial.
	assert.True(t, lot.QuantityInitial.Equal(d("10")))
}

func TestAdjust_LoteInexistente(t *testing.T) {
	env := newTestEnv()
	env.seedProduct(t, "p1", "Esencia", "5", "0")

	_, err := env.svc.Adjust(context.Background(), dto.AdjustStockRequest{
		ProductID:          "p1",
		QuantityAdjustment: d("1"),
		Reason:             "conteo",
		LotID:              "no-existe",
	})
	require.ErrorIs(t, err, domain.ErrLotNotFound)
	assert.Empty(t, env.movements.movements)
}

func TestAdjust_ReferenciaCombinada(t *testing.T) {
	env := newTestEnv()
	env.seedProduct(t, "p1", "Esencia", "5", "0")

	resp, err := env.svc.Adjust(context.Background(), dto.AdjustStockRequest{
		ProductID:          "p1",
		QuantityAdjustment: d("2"),
		Reason:             "conteo físico",
		Reference:          "INV-2026-07",
	})
	require.NoError(t, err)
	assert.Equal(t, "conteo físico - INV-2026-07", resp.Movement.Reference)
}

func TestAdjust_Validaciones(t *testing.T) {
	env := newTestEnv()
	env.seedProduct(t, "p1", "Esencia", "5", "0")
	ctx := context.Background()

	_, err := env.svc.Adjust(ctx, dto.AdjustStockRequest{ProductID: "p1", QuantityAdjustment: d("0"), Reason: "x"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.svc.Adjust(ctx, dto.AdjustStockRequest{ProductID: "p1", QuantityAdjustment: d("1")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.svc.Adjust(ctx, dto.AdjustStockRequest{ProductID: "nope", QuantityAdjustment: d("1"), Reason: "x"})
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestAdjustmentHistory_ReconstruyeElStockPrevio(t *testing.T) {
	env := newTestEnv()
	env.seedProduct(t, "p1", "Esencia", "5", "0")
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	seed := []*entity.StockMovement{
		{ID: "m1", ProductID: "p1", Type: entity.MovementTypeIn, Quantity: d("10"), Reference: "compra", CreatedAt: base},
		{ID: "m2", ProductID: "p1", Type: entity.MovementTypeOut, Quantity: d("3"), Reference: "merma - conteo", CreatedAt: base.Add(10 * time.Minute)},
		{ID: "m3", ProductID: "p1", Type: entity.MovementTypeOut, Quantity: d("2"), CreatedAt: base.Add(20 * time.Minute)},
	}
	for _, m := range seed {
		require.NoError(t, env.movements.Create(ctx, m))
	}

	entries, err := env.svc.AdjustmentHistory(ctx, repository.MovementFilters{ProductID: "p1"})
	require.NoError(t, err)

	// m3 no tiene referencia: no es un ajuste y queda fuera.
	require.Len(t, entries, 2)

	// Más reciente primero: entries[0] es m2.
	assert.Equal(t, "m2", entries[0].ID)
	assert.True(t, entries[0].PreviousStock.Equal(d("10")), "replay de los movimientos anteriores")
	assert.True(t, entries[0].Adjustment.Equal(d("-3")))
	assert.True(t, entries[0].NewStock.Equal(d("7")))
	assert.Equal(t, "Esencia", entries[0].ProductName)

	assert.Equal(t, "m1", entries[1].ID)
	assert.True(t, entries[1].PreviousStock.IsZero())
}
