package usecase_test

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

// Fakes en memoria de los repositorios. Los runners de transacción son de paso
// directo: los casos de uso de este paquete no dependen del rollback para sus
// aserciones.

type fakeTxRunner struct {
	orders    *fakeOrderRepo
	movements *fakeMovementRepo
	formulas  *fakeFormulaRepo
}

func (r *fakeTxRunner) RunProduction(_ context.Context, fn func(
	orderRepo repository.ProductionOrderRepository,
	movRepo repository.StockMovementRepository,
	formulaRepo repository.FormulaRepository,
) error) error {
	return fn(r.orders, r.movements, r.formulas)
}

func (r *fakeTxRunner) RunFormula(_ context.Context, fn func(formulaRepo repository.FormulaRepository) error) error {
	return fn(r.formulas)
}

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

type fakeFormulaRepo struct {
	formulas map[string]*entity.Formula
}

func newFakeFormulaRepo() *fakeFormulaRepo {
	return &fakeFormulaRepo{formulas: make(map[string]*entity.Formula)}
}

func (r *fakeFormulaRepo) Create(_ context.Context, f *entity.Formula) error {
	cp := *f
	cp.Items = append([]entity.FormulaItem(nil), f.Items...)
	r.formulas[f.ID] = &cp
	return nil
}

func (r *fakeFormulaRepo) GetByID(_ context.Context, id string) (*entity.Formula, error) {
	f, ok := r.formulas[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	cp.Items = append([]entity.FormulaItem(nil), f.Items...)
	return &cp, nil
}

func (r *fakeFormulaRepo) List(_ context.Context) ([]*entity.Formula, error) {
	out := make([]*entity.Formula, 0, len(r.formulas))
	for _, f := range r.formulas {
		cp := *f
		cp.Items = append([]entity.FormulaItem(nil), f.Items...)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeFormulaRepo) Update(_ context.Context, f *entity.Formula) error {
	existing, ok := r.formulas[f.ID]
	if !ok {
		return domain.ErrFormulaNotFound
	}
	cp := *f
	cp.Items = existing.Items
	r.formulas[f.ID] = &cp
	return nil
}

func (r *fakeFormulaRepo) ReplaceItems(_ context.Context, formulaID string, items []entity.FormulaItem) error {
	f, ok := r.formulas[formulaID]
	if !ok {
		return domain.ErrFormulaNotFound
	}
	f.Items = append([]entity.FormulaItem(nil), items...)
	return nil
}

func (r *fakeFormulaRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.formulas[id]; !ok {
		return domain.ErrFormulaNotFound
	}
	delete(r.formulas, id)
	return nil
}

func (r *fakeFormulaRepo) CountByStatus(_ context.Context, status string) (int, error) {
	count := 0
	for _, f := range r.formulas {
		if f.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.ProductionOrder
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.ProductionOrder)}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.ProductionOrder) error {
	cp := *o
	cp.Items = append([]entity.ProductionOrderItem(nil), o.Items...)
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.ProductionOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Items = append([]entity.ProductionOrderItem(nil), o.Items...)
	return &cp, nil
}

func (r *fakeOrderRepo) List(_ context.Context) ([]*entity.ProductionOrder, error) {
	out := make([]*entity.ProductionOrder, 0, len(r.orders))
	for _, o := range r.orders {
		cp := *o
		cp.Items = append([]entity.ProductionOrderItem(nil), o.Items...)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o *entity.ProductionOrder) error {
	existing, ok := r.orders[o.ID]
	if !ok {
		return domain.ErrProductionNotFound
	}
	cp := *o
	cp.Items = existing.Items
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) ReplaceItems(_ context.Context, orderID string, items []entity.ProductionOrderItem) error {
	o, ok := r.orders[orderID]
	if !ok {
		return domain.ErrProductionNotFound
	}
	o.Items = append([]entity.ProductionOrderItem(nil), items...)
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrProductionNotFound
	}
	o.Status = status
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return domain.ErrProductionNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) LatestCodeWithPrefix(_ context.Context, prefix string) (string, error) {
	latest := ""
	for _, o := range r.orders {
		if strings.HasPrefix(o.Code, prefix) && o.Code > latest {
			latest = o.Code
		}
	}
	return latest, nil
}

func (r *fakeOrderRepo) CountByStatuses(_ context.Context, statuses []string) (int, error) {
	count := 0
	for _, o := range r.orders {
		for _, s := range statuses {
			if o.Status == s {
				count++
				break
			}
		}
	}
	return count, nil
}

func (r *fakeOrderRepo) ListCreatedSince(_ context.Context, since time.Time, statuses []string) ([]*entity.ProductionOrder, error) {
	var out []*entity.ProductionOrder
	for _, o := range r.orders {
		if o.CreatedAt.Before(since) {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, s := range statuses {
				if o.Status == s {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		cp := *o
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
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
		if filters.ProductID != "" && m.ProductID != filters.ProductID {
			continue
		}
		if filters.Type != "" && m.Type != filters.Type {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
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
	return out, nil
}

type fakeInventoryTxRunner struct {
	products  *fakeProductRepo
	lots      *fakeLotRepo
	movements *fakeMovementRepo
}

func (r *fakeInventoryTxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	lotRepo repository.LotRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(r.movements, r.lots, r.products)
}
