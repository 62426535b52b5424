package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en el punto de venta.
const (
	PaymentCash = "cash"
	PaymentCard = "card"
)

// SaleItem línea de venta al precio de venta vigente al momento del cobro.
type SaleItem struct {
	ProductID string
	Name      string
	SKU       string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Sale venta registrada en el punto de venta. Total = Subtotal + Tax.
// Para pagos en efectivo se guarda lo recibido y el cambio entregado.
type Sale struct {
	ID            string
	InvoiceNumber string
	WarehouseID   string
	Items         []SaleItem
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string // cash, card
	CashReceived  decimal.Decimal
	Change        decimal.Decimal
	CreatedAt     time.Time
	CreatedBy     string
}
