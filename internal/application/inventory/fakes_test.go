package inventory_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/producao-api/internal/domain"
	"github.com/jhoicas/producao-api/internal/domain/entity"
	"github.com/jhoicas/producao-api/internal/domain/repository"
)

// Fakes en memoria de los repositorios del motor de inventario. El fakeTxRunner
// toma un snapshot antes de cada callback y lo restaura si fn falla, imitando
// el rollback de la transacción real.

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateCost(_ context.Context, productID string, cost decimal.Decimal) error {
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.CurrentCost = cost
	return nil
}

func (r *fakeProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) CountByTypes(_ context.Context, types []string) (int, error) {
	if len(types) == 0 {
		return len(r.products), nil
	}
	count := 0
	for _, p := range r.products {
		for _, t := range types {
			if p.Type == t {
				count++
				break
			}
		}
	}
	return count, nil
}

type fakeLotRepo struct {
	lots map[string]*entity.Lot
}

func newFakeLotRepo() *fakeLotRepo {
	return &fakeLotRepo{lots: make(map[string]*entity.Lot)}
}

func (r *fakeLotRepo) Create(_ context.Context, l *entity.Lot) error {
	cp := *l
	r.lots[l.ID] = &cp
	return nil
}

func (r *fakeLotRepo) GetByID(_ context.Context, id string) (*entity.Lot, error) {
	l, ok := r.lots[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLotRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Lot, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeLotRepo) List(_ context.Context) ([]*entity.Lot, error) {
	out := make([]*entity.Lot, 0, len(r.lots))
	for _, l := range r.lots {
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeLotRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Lot, error) {
	var out []*entity.Lot
	for _, l := range r.lots {
		if l.ProductID == productID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeLotRepo) ApplyDelta(_ context.Context, lotID string, delta decimal.Decimal) error {
	l, ok := r.lots[lotID]
	if !ok {
		return domain.ErrLotNotFound
	}
	l.QuantityCurrent = l.QuantityCurrent.Add(delta)
	return nil
}

func (r *fakeLotRepo) ApplyAdjustment(_ context.Context, lotID string, deltaCurrent, deltaInitial decimal.Decimal) error {
	l, ok := r.lots[lotID]
	if !ok {
		return domain.ErrLotNotFound
	}
	l.QuantityCurrent = l.QuantityCurrent.Add(deltaCurrent)
	l.QuantityInitial = l.QuantityInitial.Add(deltaInitial)
	return nil
}

func (r *fakeLotRepo) FindAdjustmentLot(_ context.Context, productID string) (*entity.Lot, error) {
	for _, l := range r.lots {
		if l.ProductID == productID && strings.HasPrefix(l.Code, entity.AdjustmentLotPrefix) {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeLotRepo) ListExpiring(_ context.Context, before time.Time) ([]*entity.Lot, error) {
	var out []*entity.Lot
	for _, l := range r.lots {
		if l.QuantityCurrent.IsPositive() && l.ExpirationDate != nil && !l.ExpirationDate.After(before) {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpirationDate.Before(*out[j].ExpirationDate) })
	return out, nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func newFakeMovementRepo() *fakeMovementRepo { return &fakeMovementRepo{} }

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) List(_ context.Context, filters repository.MovementFilters) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if filters.StartDate != nil && m.CreatedAt.Before(*filters.StartDate) {
			continue
		}
		if filters.EndDate != nil && m.CreatedAt.After(*filters.EndDate) {
			continue
		}
		if filters.Type != "" && m.Type != filters.Type {
			continue
		}
		if filters.ProductID != "" && m.ProductID != filters.ProductID {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeMovementRepo) ListBefore(_ context.Context, productID string, before time.Time) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID && m.CreatedAt.Before(before) {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeMovementRepo) ListSince(_ context.Context, since time.Time) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if !m.CreatedAt.Before(since) {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeMovementRepo) DeleteByProductionOrder(_ context.Context, productionOrderID string) error {
	var kept []*entity.StockMovement
	for _, m := range r.movements {
		if m.ProductionOrderID == nil || *m.ProductionOrderID != productionOrderID {
			kept = append(kept, m)
		}
	}
	r.movements = kept
	return nil
}

// fakeTxRunner imita la atomicidad de la transacción real: snapshot antes del
// callback y restauración completa si fn devuelve error.
type fakeTxRunner struct {
	products  *fakeProductRepo
	lots      *fakeLotRepo
	movements *fakeMovementRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	lotRepo repository.LotRepository,
	productRepo repository.ProductRepository,
) error) error {
	productsSnap := snapshotMap(r.products.products)
	lotsSnap := snapshotMap(r.lots.lots)
	movementsSnap := snapshotSlice(r.movements.movements)

	if err := fn(r.movements, r.lots, r.products); err != nil {
		r.products.products = productsSnap
		r.lots.lots = lotsSnap
		r.movements.movements = movementsSnap
		return err
	}
	return nil
}

func snapshotMap[T any](src map[string]*T) map[string]*T {
	out := make(map[string]*T, len(src))
	for k, v := range src {
		cp := *v
		out[k] = &cp
	}
	return out
}

func snapshotSlice[T any](src []*T) []*T {
	out := make([]*T, 0, len(src))
	for _, v := range src {
		cp := *v
		out = append(out, &cp)
	}
	return out
}
