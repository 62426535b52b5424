package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, product_id, sku, product_name, warehouse_id,
	current_stock, reserved_stock, min_threshold, max_threshold, unit,
	cost_price, selling_price, category, last_updated`

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create persiste un registro de inventario nuevo.
func (r *InventoryRepo) Create(rec *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.ProductID, rec.SKU, rec.ProductName, rec.WarehouseID,
		rec.CurrentStock, rec.ReservedStock, rec.MinThreshold, rec.MaxThreshold, rec.Unit,
		rec.CostPrice, rec.SellingPrice, rec.Category, rec.LastUpdated,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("inventory record already exists: %w", err)
		}
		return fmt.Errorf("insert inventory record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID. Nil sin error si no existe.
func (r *InventoryRepo) GetByID(id string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get inventory record")
}

// GetByProductAndWarehouse obtiene el registro de un producto en una bodega.
func (r *InventoryRepo) GetByProductAndWarehouse(productID, warehouseID string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + `
		FROM inventory_records WHERE product_id = $1 AND warehouse_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID, warehouseID), "get inventory record")
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE); usar dentro de una tx.
func (r *InventoryRepo) GetForUpdate(id string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get inventory record for update")
}

// GetForUpdateByProduct como GetForUpdate pero por (producto, bodega).
func (r *InventoryRepo) GetForUpdateByProduct(productID, warehouseID string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + `
		FROM inventory_records WHERE product_id = $1 AND warehouse_id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID, warehouseID), "get inventory record for update")
}

// Update persiste los campos mutables del registro.
func (r *InventoryRepo) Update(rec *entity.InventoryRecord) error {
	query := `
		UPDATE inventory_records
		SET current_stock = $2, reserved_stock = $3, min_threshold = $4,
		    max_threshold = $5, cost_price = $6, selling_price = $7,
		    last_updated = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.CurrentStock, rec.ReservedStock, rec.MinThreshold,
		rec.MaxThreshold, rec.CostPrice, rec.SellingPrice, rec.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("update inventory record: %w", err)
	}
	return nil
}

// List lista registros con filtros opcionales de bodega, categoría y texto.
func (r *InventoryRepo) List(filter repository.InventoryFilter, limit, offset int) ([]*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records WHERE 1=1`
	args := []any{}
	i := 1
	if filter.WarehouseID != "" {
		query += fmt.Sprintf(" AND warehouse_id = $%d", i)
		args = append(args, filter.WarehouseID)
		i++
	}
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", i)
		args = append(args, filter.Category)
		i++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (sku ILIKE $%d OR product_name ILIKE $%d)", i, i)
		args = append(args, "%"+filter.Search+"%")
		i++
	}
	query += fmt.Sprintf(" ORDER BY product_name LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory records: %w", err)
	}
	defer rows.Close()
	return scanInventoryRows(rows)
}

// ListAllByWarehouse snapshot completo (sin paginación) para el agregador.
func (r *InventoryRepo) ListAllByWarehouse(warehouseID string) ([]*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records`
	args := []any{}
	if warehouseID != "" {
		query += ` WHERE warehouse_id = $1`
		args = append(args, warehouseID)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory snapshot: %w", err)
	}
	defer rows.Close()
	return scanInventoryRows(rows)
}

func (r *InventoryRepo) scanOne(row pgx.Row, op string) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	err := row.Scan(
		&rec.ID, &rec.ProductID, &rec.SKU, &rec.ProductName, &rec.WarehouseID,
		&rec.CurrentStock, &rec.ReservedStock, &rec.MinThreshold, &rec.MaxThreshold, &rec.Unit,
		&rec.CostPrice, &rec.SellingPrice, &rec.Category, &rec.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &rec, nil
}

func scanInventoryRows(rows pgx.Rows) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(
			&rec.ID, &rec.ProductID, &rec.SKU, &rec.ProductName, &rec.WarehouseID,
			&rec.CurrentStock, &rec.ReservedStock, &rec.MinThreshold, &rec.MaxThreshold, &rec.Unit,
			&rec.CostPrice, &rec.SellingPrice, &rec.Category, &rec.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}
