package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutItemRequest línea del carrito de venta.
type CheckoutItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// CheckoutRequest cobro de una venta en el punto de venta.
// CashReceived solo aplica para pagos en efectivo.
type CheckoutRequest struct {
	WarehouseID   string                `json:"warehouse_id" validate:"required"`
	Items         []CheckoutItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string                `json:"payment_method" validate:"required,oneof=cash card"`
	CashReceived  decimal.Decimal       `json:"cash_received"`
}

// SaleItemResponse línea de venta en respuestas.
type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SaleResponse venta registrada.
type SaleResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	WarehouseID   string             `json:"warehouse_id"`
	Items         []SaleItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Tax           decimal.Decimal    `json:"tax"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	CashReceived  decimal.Decimal    `json:"cash_received,omitempty"`
	Change        decimal.Decimal    `json:"change,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	CreatedBy     string             `json:"created_by"`
}
