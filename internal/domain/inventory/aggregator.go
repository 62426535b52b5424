// Package inventory contiene servicios de dominio de inventario: la
// clasificación de estado de stock y las estadísticas agregadas que consumen
// la pantalla de inventario y la de traslados.
package inventory

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// Classify clasifica un registro según (CurrentStock, MinThreshold, MaxThreshold):
//
//	stock == 0           -> out-of-stock
//	0 < stock <= min     -> low-stock
//	stock >= max         -> overstock
//	en otro caso         -> in-stock
//
// La regla es total: con umbrales invertidos (max < min, rechazados al
// escribir) gana low-stock por orden de evaluación. El límite exacto
// stock == max clasifica overstock (regla >= uniforme).
func Classify(r *entity.InventoryRecord) entity.StockStatus {
	switch {
	case r.CurrentStock == 0:
		return entity.StockOutOfStock
	case r.CurrentStock <= r.MinThreshold:
		return entity.StockLowStock
	case r.CurrentStock >= r.MaxThreshold:
		return entity.StockOverstock
	default:
		return entity.StockInStock
	}
}

const topCategoriesLimit = 5 // categorías en el widget de estadísticas

// CategoryValue valor agregado de una categoría para el ranking.
type CategoryValue struct {
	Name     string
	Products int
	Value    decimal.Decimal
}

// Stats estadísticas derivadas de un snapshot de inventario. Los contadores
// por clasificación particionan exactamente el conjunto de entrada.
type Stats struct {
	TotalProducts   int
	TotalValue      decimal.Decimal
	InStockItems    int
	LowStockItems   int
	OutOfStockItems int
	OverstockItems  int
	TopCategories   []CategoryValue
}

// Summarize calcula las estadísticas sobre un snapshot de registros,
// filtrando por bodega si filterWarehouse no está vacío. Función pura:
// no muta los registros recibidos.
func Summarize(records []*entity.InventoryRecord, filterWarehouse string) Stats {
	stats := Stats{TotalValue: decimal.Zero}

	byCategory := make(map[string]*CategoryValue)
	var categoryOrder []string // orden de primera aparición, para desempate estable

	for _, r := range records {
		if filterWarehouse != "" && r.WarehouseID != filterWarehouse {
			continue
		}
		stats.TotalProducts++
		value := r.StockValue()
		stats.TotalValue = stats.TotalValue.Add(value)

		switch Classify(r) {
		case entity.StockOutOfStock:
			stats.OutOfStockItems++
		case entity.StockLowStock:
			stats.LowStockItems++
		case entity.StockOverstock:
			stats.OverstockItems++
		default:
			stats.InStockItems++
		}

		cv, ok := byCategory[r.Category]
		if !ok {
			cv = &CategoryValue{Name: r.Category, Value: decimal.Zero}
			byCategory[r.Category] = cv
			categoryOrder = append(categoryOrder, r.Category)
		}
		cv.Products++
		cv.Value = cv.Value.Add(value)
	}

	top := make([]CategoryValue, 0, len(categoryOrder))
	for _, name := range categoryOrder {
		top = append(top, *byCategory[name])
	}
	// Orden descendente por valor; empates conservan orden de aparición.
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Value.GreaterThan(top[j].Value)
	})
	if len(top) > topCategoriesLimit {
		top = top[:topCategoriesLimit]
	}
	stats.TopCategories = top

	return stats
}
