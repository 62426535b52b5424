package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto nuevo. El SKU tiene constraint único.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, category, price, cost, unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.SKU, p.Name, nullIfEmpty(p.Description), p.Category,
		p.Price, p.Cost, p.Unit, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Nil sin error si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, sku, name, COALESCE(description, ''), category, price, cost, unit, created_at, updated_at
		FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetBySKU obtiene un producto por SKU. Nil sin error si no existe.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	query := `
		SELECT id, sku, name, COALESCE(description, ''), category, price, cost, unit, created_at, updated_at
		FROM products WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku), "get product by sku")
}

// Update persiste los campos mutables del producto.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, category = $4, price = $5, cost = $6, unit = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, nullIfEmpty(p.Description), p.Category, p.Price, p.Cost, p.Unit, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista productos con filtros opcionales de categoría y texto (SKU o nombre).
func (r *ProductRepo) List(category, search string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, sku, name, COALESCE(description, ''), category, price, cost, unit, created_at, updated_at
		FROM products WHERE 1=1`
	args := []any{}
	i := 1
	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", i)
		args = append(args, category)
		i++
	}
	if search != "" {
		query += fmt.Sprintf(" AND (sku ILIKE $%d OR name ILIKE $%d)", i, i)
		args = append(args, "%"+search+"%")
		i++
	}
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category,
			&p.Price, &p.Cost, &p.Unit, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// CreatePriceChange persiste una entrada del historial de precios.
func (r *ProductRepo) CreatePriceChange(c *entity.PriceChange) error {
	query := `
		INSERT INTO price_changes (id, product_id, old_price, new_price, reason, changed_at, changed_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.ProductID, c.OldPrice, c.NewPrice, nullIfEmpty(c.Reason), c.ChangedAt, c.ChangedBy,
	)
	if err != nil {
		return fmt.Errorf("insert price change: %w", err)
	}
	return nil
}

// ListPriceChanges historial de precios, del más reciente al más antiguo.
func (r *ProductRepo) ListPriceChanges(productID string, limit, offset int) ([]*entity.PriceChange, error) {
	query := `
		SELECT id, product_id, old_price, new_price, COALESCE(reason, ''), changed_at, changed_by
		FROM price_changes
		WHERE product_id = $1
		ORDER BY changed_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list price changes: %w", err)
	}
	defer rows.Close()

	var out []*entity.PriceChange
	for rows.Next() {
		var c entity.PriceChange
		if err := rows.Scan(&c.ID, &c.ProductID, &c.OldPrice, &c.NewPrice, &c.Reason, &c.ChangedAt, &c.ChangedBy); err != nil {
			return nil, fmt.Errorf("scan price change: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category,
		&p.Price, &p.Cost, &p.Unit, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}
