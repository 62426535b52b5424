package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus clasificación de urgencia del stock de un registro de
// inventario. Enum cerrado; ver inventory.Classify para la regla.
type StockStatus string

const (
	StockInStock    StockStatus = "in-stock"
	StockLowStock   StockStatus = "low-stock"
	StockOutOfStock StockStatus = "out-of-stock"
	StockOverstock  StockStatus = "overstock"
)

// InventoryRecord stock de un producto en una bodega concreta.
// AvailableStock y StockValue son derivados, nunca se almacenan por separado.
type InventoryRecord struct {
	ID            string
	ProductID     string
	SKU           string
	ProductName   string
	WarehouseID   string
	CurrentStock  int64
	ReservedStock int64 // >= 0 y <= CurrentStock
	MinThreshold  int64
	MaxThreshold  int64 // >= MinThreshold
	Unit          string
	CostPrice     decimal.Decimal
	SellingPrice  decimal.Decimal
	Category      string
	LastUpdated   time.Time
}

// AvailableStock stock actual menos el reservado para ventas o traslados
// pendientes.
func (r *InventoryRecord) AvailableStock() int64 {
	return r.CurrentStock - r.ReservedStock
}

// StockValue valor del stock actual al costo (CurrentStock × CostPrice).
func (r *InventoryRecord) StockValue() decimal.Decimal {
	return decimal.NewFromInt(r.CurrentStock).Mul(r.CostPrice)
}
