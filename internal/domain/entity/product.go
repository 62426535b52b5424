package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo (SKU único). El stock por bodega vive en
// InventoryRecord; aquí solo los datos comerciales.
type Product struct {
	ID          string
	SKU         string
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo promedio ponderado
	Unit        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PriceChange entrada del historial de precios de un producto.
// Se agrega una por cada modificación del precio de venta.
type PriceChange struct {
	ID        string
	ProductID string
	OldPrice  decimal.Decimal
	NewPrice  decimal.Decimal
	Reason    string
	ChangedAt time.Time
	ChangedBy string
}
