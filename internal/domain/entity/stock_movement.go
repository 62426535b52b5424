package entity

import "time"

// Tipos de movimiento de stock (value object conceptual).
const (
	MovementAdjustAdd    = "adjust-add"    // entrada por ajuste manual
	MovementAdjustRemove = "adjust-remove" // salida por ajuste manual
	MovementAdjustSet    = "adjust-set"    // fijar cantidad exacta (conteo físico)
	MovementSale         = "sale"          // salida por venta POS
	MovementTransferOut  = "transfer-out"  // salida en bodega origen de un traslado
	MovementTransferIn   = "transfer-in"   // entrada en bodega destino de un traslado
)

// StockMovement registro de auditoría por cada mutación de stock.
// Quantity es con signo: positivo para entradas, negativo para salidas.
type StockMovement struct {
	ID          string
	RecordID    string
	ProductID   string
	WarehouseID string
	Type        string
	Quantity    int64
	Reference   string // id de venta, de solicitud de traslado o nota de ajuste
	Reason      string
	CreatedAt   time.Time
	CreatedBy   string // UserID
}
