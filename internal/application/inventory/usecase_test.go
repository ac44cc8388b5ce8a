package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/producao-api/internal/application/dto"
	"github.com/jhoicas/producao-api/internal/application/inventory"
	"github.com/jhoicas/producao-api/internal/domain"
	"github.com/jhoicas/producao-api/internal/domain/entity"
	"github.com/jhoicas/producao-api/internal/domain/repository"
	"github.com/jhoicas/producao-api/pkg/logger"
)

func repositoryFilters(typ string) repository.MovementFilters {
	return repository.MovementFilters{Type: typ}
}

type testEnv struct {
	svc       *inventory.Service
	products  *fakeProductRepo
	lots      *fakeLotRepo
	movements *fakeMovementRepo
}

func newTestEnv() *testEnv {
	products := newFakeProductRepo()
	lots := newFakeLotRepo()
	movements := newFakeMovementRepo()
	tx := &fakeTxRunner{products: products, lots: lots, movements: movements}
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	return &testEnv{
		svc:       inventory.NewService(tx, products, lots, movements, log),
		products:  products,
		lots:      lots,
		movements: movements,
	}
}

func (e *testEnv) seedProduct(t *testing.T, id, name string, cost, minStock string) {
	t.Helper()
	now := time.Now().UTC()
	e.products.products[id] = &entity.Product{
		ID:          id,
		Name:        name,
		Type:        entity.ProductTypeRawMaterial,
		Unit:        "kg",
		CurrentCost: d(cost),
		MinStock:    d(minStock),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (e *testEnv) seedLot(t *testing.T, id, code, productID string, qty string) {
	t.Helper()
	now := time.Now().UTC()
	e.lots.lots[id] = &entity.Lot{
		ID:              id,
		Code:            code,
		ProductID:       productID,
		QuantityInitial: d(qty),
		QuantityCurrent: d(qty),
		Status:          entity.LotStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCreateLot_CantidadActualNaceIgualALaInicial(t *testing.T) {
	env := newTestEnv()
	env.seedProduct(t, "p1", "Glicerina", "10", "0")

	lot, err := env.svc.CreateLot(context.Background(), dto.CreateLotRequest{
		Code:            "L-2026-001",
		ProductID:       "p1",
		QuantityInitial: d("40"),
	})
	require.NoError(t, err)

	assert.True(t, lot.QuantityCurrent.Equal(d("40")))
	assert.True(t, lot.QuantityInitial.Equal(d("40")))
	assert.Equal(t, entity.LotStatusActive, lot.Status)
}

func TestCreateLot_ProductoInexistente(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.CreateLot(context.Background(), dto.CreateLotRequest{
		Code:            "L-1",
		ProductID:       "nope",
		QuantityInitial: d("1"),
	})
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestStockLevel_SumaSoloLotesPositivos(t *testing.T) {
	env := newTestEnv()
	env.seedProduct(t, "p1", "Glicerina", "10", "0")
	env.seedLot(t, "l1", "L-1", "p1", "10")
	env.seedLot(t, "l2", "L-2", "p1", "5")
	env.seedLot(t, "l3", "ADJ-p1", "p1", "-3")

	level, err := env.svc.StockLevel(context.Background(), "p1")
	require.NoError(t, err)

	assert.True(t, level.TotalStock.Equal(d("15")), "los lotes negativos no suman al stock disponible")
	assert.Len(t, level.Lots, 2)
}

func TestRecordMovement_EntradaActualizaLoteYPromedio(t *testing.T) {
	env := newTestEnv()
	env.seedProduct(t, "p1", "Glicerina", "10", "0")
	env.seedLot(t, "l1", "L-1", "p1", "10")

	mov, err := env.svc.RecordMovement(context.Background(), dto.RecordMovementRequest{
		ProductID: "p1",
		LotID:     "l1",
		Type:      entity.MovementTypeIn,
		Quantity:  d("20"),
		Cost:      d("15"),
		Reference: "compra OC-100",
	})
	require.NoError(t, err)
	require.NotNil(t, mov.LotID)

	lot, _ := env.lots.GetByID(context.Background(), "l1")
	assert.True(t, lot.QuantityCurrent.Equal(d("30")))

	product, _ := env.products.GetByID(context.Background(), "p1")
	expected := d("400").Div(d("30"))
	assert.True(t, product.CurrentCost.Equal(expected), "promedio ponderado: esperado %s, obtenido %s", expected, product.CurrentCost)

	assert.Len(t, env.movements.movements, 1)
}

func TestRecordMovement_SalidaNoTocaElCosto(t *testing.T) {
	env := newTestEnv()
	env.seedProduct(t, "p1", "Glicerina", "10", "0")
	env.seedLot(t, "l1", "L-1", "p1", "10")

	_, err := env.svc.RecordMovement(context.Background(), dto.RecordMovementRequest{
		ProductID: "p1",
		LotID:     "l1",
		Type:      entity.MovementTypeOut,
		Quantity:  d("4"),
	})
	require.NoError(t, err)

	lot, _ := env.lots.GetByID(context.Background(), "l1")
	assert.True(t, lot.QuantityCurrent.Equal(d("6")))

	product, _ := env.products.GetByID(context.Background(), "p1")
	assert.True(t, product.CurrentCost.Equal(d("10")))
}

func TestRecordMovement_LoteInexistenteNoDejaRastro(t *testing.T) {
	env := newTestEnv()
	env.seedProduct(t, "p1", "Glicerina", "10", "0")

	_, err := env.svc.RecordMovement(context.Background(), dto.RecordMovementRequest{
		ProductID: "p1",
		LotID:     "no-existe",
		Type:      entity.MovementTypeIn,
		Quantity:  d("20"),
		Cost:      d("15"),
	})
	require.ErrorIs(t, err, domain.ErrLotNotFound)

	// Rollback completo: ni movimiento ni costo actualizado.
	assert.Empty(t, env.movements.movements)
	product, _ := env.products.GetByID(context.Background(), "p1")
	assert.True(t, product.CurrentCost.Equal(d("10")))
}

func TestRecordMovement_TipoInvalido(t *testing.T) {
	env := newTestEnv()
	env.seedProduct(t, "p1", "Glicerina", "10", "0")

	_, err := env.svc.RecordMovement(context.Background(), dto.RecordMovementRequest{
		ProductID: "p1",
		Type:      "transfer",
		Quantity:  d("1"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidMovementType)
}

func TestRecordMovement_CantidadDebeSerPositiva(t *testing.T) {
	env := newTestEnv()
	env.seedProduct(t, "p1", "Glicerina", "10", "0")

	_, err := env.svc.RecordMovement(context.Background(), dto.RecordMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeIn,
		Quantity:  d("-5"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovementHistory_FiltraPorTipo(t *testing.T) {
	env := newTestEnv()
	env.seedProduct(t, "p1", "Glicerina", "10", "0")
	env.seedLot(t, "l1", "L-1", "p1", "100")

	ctx := context.Background()
	for _, typ := range []string{entity.MovementTypeIn, entity.MovementTypeOut, entity.MovementTypeOut} {
		_, err := env.svc.RecordMovement(ctx, dto.RecordMovementRequest{
			ProductID: "p1", LotID: "l1", Type: typ, Quantity: d("1"),
		})
		require.NoError(t, err)
	}

	history, err := env.svc.MovementHistory(ctx, repositoryFilters(entity.MovementTypeOut))
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
