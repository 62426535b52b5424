package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryRecordRequest alta de un producto en una bodega
// (aprovisionamiento inicial).
type CreateInventoryRecordRequest struct {
	ProductID     string `json:"product_id" validate:"required"`
	WarehouseID   string `json:"warehouse_id" validate:"required"`
	CurrentStock  int64  `json:"current_stock" validate:"min=0"`
	ReservedStock int64  `json:"reserved_stock" validate:"min=0"`
	MinThreshold  int64  `json:"min_threshold" validate:"min=0"`
	MaxThreshold  int64  `json:"max_threshold" validate:"min=0"`
}

// StockAdjustmentRequest ajuste manual de stock: add, remove o set.
type StockAdjustmentRequest struct {
	RecordID string `json:"record_id" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=add remove set"`
	Quantity int64  `json:"quantity" validate:"required,min=0"`
	Reason   string `json:"reason" validate:"required"`
	// Costo unitario de la mercancía entrante; solo aplica en add.
	UnitCost *decimal.Decimal `json:"unit_cost"`
}

// InventoryRecordResponse registro de inventario con los derivados calculados.
type InventoryRecordResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	SKU            string          `json:"sku"`
	ProductName    string          `json:"product_name"`
	WarehouseID    string          `json:"warehouse_id"`
	CurrentStock   int64           `json:"current_stock"`
	ReservedStock  int64           `json:"reserved_stock"`
	AvailableStock int64           `json:"available_stock"`
	MinThreshold   int64           `json:"min_threshold"`
	MaxThreshold   int64           `json:"max_threshold"`
	Unit           string          `json:"unit"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	StockValue     decimal.Decimal `json:"stock_value"`
	StockStatus    string          `json:"stock_status"`
	Category       string          `json:"category"`
	LastUpdated    time.Time       `json:"last_updated"`
}

// InventoryListRequest filtros de listado (query params).
type InventoryListRequest struct {
	PageRequest
	WarehouseID string `query:"warehouse_id"`
	Category    string `query:"category"`
	Search      string `query:"search"`
}

// InventoryListResponse página de registros.
type InventoryListResponse struct {
	Items []InventoryRecordResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

// CategoryStatsDTO categoría en el ranking por valor.
type CategoryStatsDTO struct {
	Name     string          `json:"name"`
	Products int             `json:"products"`
	Value    decimal.Decimal `json:"value"`
}

// InventoryStatsResponse estadísticas agregadas del inventario.
type InventoryStatsResponse struct {
	TotalProducts   int                `json:"total_products"`
	TotalValue      decimal.Decimal    `json:"total_value"`
	InStockItems    int                `json:"in_stock_items"`
	LowStockItems   int                `json:"low_stock_items"`
	OutOfStockItems int                `json:"out_of_stock_items"`
	OverstockItems  int                `json:"overstock_items"`
	TopCategories   []CategoryStatsDTO `json:"top_categories"`
}

// StockMovementResponse entrada del historial de movimientos de un registro.
type StockMovementResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Reference string    `json:"reference,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
}
