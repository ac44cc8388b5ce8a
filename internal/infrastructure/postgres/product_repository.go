package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/producao-api/internal/domain"
	"github.com/jhoicas/producao-api/internal/domain/entity"
	"github.com/jhoicas/producao-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `
	id, name, description, sku, barcode, supplier_code, dum_code, type,
	density, net_weight, unit, current_cost, min_stock, manufacturing_mode,
	ph, viscosity, odor, aspect, color, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.SKU, &p.Barcode, &p.SupplierCode,
		&p.DumCode, &p.Type, &p.Density, &p.NetWeight, &p.Unit, &p.CurrentCost,
		&p.MinStock, &p.ManufacturingMode, &p.PH, &p.Viscosity, &p.Odor,
		&p.Aspect, &p.Color, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserta un producto. Un SKU repetido produce domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (
			id, name, description, sku, barcode, supplier_code, dum_code, type,
			density, net_weight, unit, current_cost, min_stock, manufacturing_mode,
			ph, viscosity, odor, aspect, color, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.SKU, product.Barcode,
		product.SupplierCode, product.DumCode, product.Type, product.Density,
		product.NetWeight, product.Unit, product.CurrentCost, product.MinStock,
		product.ManufacturingMode, product.PH, product.Viscosity, product.Odor,
		product.Aspect, product.Color, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sku %q", domain.ErrDuplicate, product.SKU)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID busca un producto por id. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update persiste todos los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET
			name = $2, description = $3, sku = $4, barcode = $5, supplier_code = $6,
			dum_code = $7, type = $8, density = $9, net_weight = $10, unit = $11,
			min_stock = $12, manufacturing_mode = $13, ph = $14, viscosity = $15,
			odor = $16, aspect = $17, color = $18, updated_at = $19
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.SKU, product.Barcode,
		product.SupplierCode, product.DumCode, product.Type, product.Density,
		product.NetWeight, product.Unit, product.MinStock, product.ManufacturingMode,
		product.PH, product.Viscosity, product.Odor, product.Aspect, product.Color,
		product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sku %q", domain.ErrDuplicate, product.SKU)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// UpdateCost actualiza solo el costo promedio del producto.
func (r *ProductRepo) UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error {
	query := `UPDATE products SET current_cost = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, productID, cost)
	if err != nil {
		return fmt.Errorf("update product cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// List devuelve el catálogo ordenado por nombre.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT` + productColumns + ` FROM products ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Delete elimina un producto. Si lotes, fórmulas, órdenes o movimientos lo
// referencian devuelve domain.ErrProductInUse.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductInUse
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// CountByTypes cuenta productos por tipo; con types vacío cuenta todos.
func (r *ProductRepo) CountByTypes(ctx context.Context, types []string) (int, error) {
	var (
		count int
		err   error
	)
	if len(types) == 0 {
		err = r.q.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&count)
	} else {
		err = r.q.QueryRow(ctx, `SELECT count(*) FROM products WHERE type = ANY($1)`, types).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}
