package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository (usable con pool o tx).
// Las líneas de la venta se guardan como JSONB: una venta es inmutable una vez
// registrada, no se consultan líneas sueltas.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

type saleItemRow struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Create persiste una venta con sus líneas.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	itemRows := make([]saleItemRow, 0, len(sale.Items))
	for _, it := range sale.Items {
		itemRows = append(itemRows, saleItemRow{
			ProductID: it.ProductID, Name: it.Name, SKU: it.SKU,
			Quantity: it.Quantity, UnitPrice: it.UnitPrice,
		})
	}
	items, err := json.Marshal(itemRows)
	if err != nil {
		return fmt.Errorf("marshal sale items: %w", err)
	}
	query := `
		INSERT INTO sales (id, invoice_number, warehouse_id, items, subtotal, tax, total, payment_method, cash_received, change, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(context.Background(), query,
		sale.ID, sale.InvoiceNumber, sale.WarehouseID, items,
		sale.Subtotal, sale.Tax, sale.Total, sale.PaymentMethod,
		sale.CashReceived, sale.Change, sale.CreatedAt, sale.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number already exists: %w", err)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID. Nil sin error si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, invoice_number, warehouse_id, items, subtotal, tax, total,
		       payment_method, cash_received, change, created_at, created_by
		FROM sales WHERE id = $1`
	sale, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return sale, nil
}

// ListByWarehouse ventas de una bodega, de la más reciente a la más antigua.
func (r *SaleRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, invoice_number, warehouse_id, items, subtotal, tax, total,
		       payment_method, cash_received, change, created_at, created_by
		FROM sales
		WHERE warehouse_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var out []*entity.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, sale)
	}
	return out, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var sale entity.Sale
	var items []byte
	if err := row.Scan(
		&sale.ID, &sale.InvoiceNumber, &sale.WarehouseID, &items,
		&sale.Subtotal, &sale.Tax, &sale.Total, &sale.PaymentMethod,
		&sale.CashReceived, &sale.Change, &sale.CreatedAt, &sale.CreatedBy,
	); err != nil {
		return nil, err
	}
	var itemRows []saleItemRow
	if err := json.Unmarshal(items, &itemRows); err != nil {
		return nil, fmt.Errorf("unmarshal sale items: %w", err)
	}
	for _, it := range itemRows {
		sale.Items = append(sale.Items, entity.SaleItem{
			ProductID: it.ProductID, Name: it.Name, SKU: it.SKU,
			Quantity: it.Quantity, UnitPrice: it.UnitPrice,
		})
	}
	return &sale, nil
}
