package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Classify: vectores de borde con min=10, max=100
// ──────────────────────────────────────────────────────────────────────────────

func record(stock, min, max int64) *entity.InventoryRecord {
	return &entity.InventoryRecord{
		CurrentStock: stock,
		MinThreshold: min,
		MaxThreshold: max,
	}
}

func TestClassify_VectoresDeBorde(t *testing.T) {
	cases := []struct {
		name  string
		stock int64
		want  entity.StockStatus
	}{
		{"stock cero es out-of-stock", 0, entity.StockOutOfStock},
		{"stock igual al mínimo es low-stock", 10, entity.StockLowStock},
		{"stock bajo el mínimo es low-stock", 5, entity.StockLowStock},
		{"stock igual al máximo es overstock", 100, entity.StockOverstock},
		{"stock sobre el máximo es overstock", 150, entity.StockOverstock},
		{"stock intermedio es in-stock", 50, entity.StockInStock},
		{"justo sobre el mínimo es in-stock", 11, entity.StockInStock},
		{"justo bajo el máximo es in-stock", 99, entity.StockInStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.Classify(record(tc.stock, 10, 100)))
		})
	}
}

// Con umbrales invertidos (estado que la capa de escritura rechaza) la regla
// sigue siendo total: low-stock gana por orden de evaluación.
func TestClassify_UmbralesInvertidosGanaLowStock(t *testing.T) {
	assert.Equal(t, entity.StockLowStock, inventory.Classify(record(50, 80, 20)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Summarize
// ──────────────────────────────────────────────────────────────────────────────

func invRecord(id, warehouse, category string, stock, min, max int64, cost float64) *entity.InventoryRecord {
	return &entity.InventoryRecord{
		ID:           id,
		WarehouseID:  warehouse,
		Category:     category,
		CurrentStock: stock,
		MinThreshold: min,
		MaxThreshold: max,
		CostPrice:    decimal.NewFromFloat(cost),
	}
}

// Cinco registros con valores [100..500] en tres
// categorías suman 1500 y las categorías salen en orden descendente por valor.
func TestSummarize_TotalesYRanking(t *testing.T) {
	records := []*entity.InventoryRecord{
		invRecord("i1", "wh-1", "Grains", 10, 2, 50, 10.0),  // valor 100
		invRecord("i2", "wh-1", "Oils", 10, 2, 50, 20.0),    // valor 200
		invRecord("i3", "wh-1", "Grains", 10, 2, 50, 30.0),  // valor 300
		invRecord("i4", "wh-2", "Dairy", 10, 2, 50, 40.0),   // valor 400
		invRecord("i5", "wh-2", "Oils", 10, 2, 50, 50.0),    // valor 500
	}

	stats := inventory.Summarize(records, "")

	assert.Equal(t, 5, stats.TotalProducts)
	assert.True(t, stats.TotalValue.Equal(decimal.NewFromInt(1500)),
		"totalValue debe ser 1500, fue %s", stats.TotalValue)

	require.Len(t, stats.TopCategories, 3)
	assert.Equal(t, "Oils", stats.TopCategories[0].Name)   // 700
	assert.Equal(t, "Grains", stats.TopCategories[1].Name) // 400
	assert.Equal(t, "Dairy", stats.TopCategories[2].Name)  // 400 (empate: Grains apareció primero)
	assert.Equal(t, 2, stats.TopCategories[0].Products)
}

func TestSummarize_EmpatesConservanOrdenDeAparicion(t *testing.T) {
	records := []*entity.InventoryRecord{
		invRecord("i1", "wh-1", "Beverages", 10, 2, 50, 10.0),
		invRecord("i2", "wh-1", "Cleaning", 10, 2, 50, 10.0),
	}
	stats := inventory.Summarize(records, "")
	require.Len(t, stats.TopCategories, 2)
	assert.Equal(t, "Beverages", stats.TopCategories[0].Name)
	assert.Equal(t, "Cleaning", stats.TopCategories[1].Name)
}

func TestSummarize_Top5Categorias(t *testing.T) {
	var records []*entity.InventoryRecord
	categories := []string{"A", "B", "C", "D", "E", "F", "G"}
	for i, cat := range categories {
		records = append(records, invRecord(cat, "wh-1", cat, 10, 2, 50, float64(i+1)))
	}

	stats := inventory.Summarize(records, "")
	require.Len(t, stats.TopCategories, 5, "solo las 5 categorías de mayor valor")
	assert.Equal(t, "G", stats.TopCategories[0].Name)
	assert.Equal(t, "C", stats.TopCategories[4].Name)
}

// Los contadores por clasificación particionan el conjunto de entrada.
func TestSummarize_ContadoresParticionanElConjunto(t *testing.T) {
	records := []*entity.InventoryRecord{
		invRecord("i1", "wh-1", "Grains", 0, 10, 100, 1),   // out-of-stock
		invRecord("i2", "wh-1", "Grains", 10, 10, 100, 1),  // low-stock (== min, > 0)
		invRecord("i3", "wh-1", "Grains", 100, 10, 100, 1), // overstock (== max)
		invRecord("i4", "wh-1", "Grains", 50, 10, 100, 1),  // in-stock
		invRecord("i5", "wh-1", "Grains", 3, 10, 100, 1),   // low-stock
	}

	stats := inventory.Summarize(records, "")

	assert.Equal(t, 1, stats.OutOfStockItems)
	assert.Equal(t, 2, stats.LowStockItems)
	assert.Equal(t, 1, stats.OverstockItems)
	assert.Equal(t, 1, stats.InStockItems)
	assert.Equal(t, stats.TotalProducts,
		stats.OutOfStockItems+stats.LowStockItems+stats.OverstockItems+stats.InStockItems)
}

func TestSummarize_FiltroPorBodega(t *testing.T) {
	records := []*entity.InventoryRecord{
		invRecord("i1", "wh-1", "Grains", 10, 2, 50, 10.0),
		invRecord("i2", "wh-2", "Oils", 10, 2, 50, 99.0),
	}

	stats := inventory.Summarize(records, "wh-1")
	assert.Equal(t, 1, stats.TotalProducts)
	assert.True(t, stats.TotalValue.Equal(decimal.NewFromInt(100)))
	require.Len(t, stats.TopCategories, 1)
	assert.Equal(t, "Grains", stats.TopCategories[0].Name)
}

func TestSummarize_SnapshotVacio(t *testing.T) {
	stats := inventory.Summarize(nil, "")
	assert.Zero(t, stats.TotalProducts)
	assert.True(t, stats.TotalValue.IsZero())
	assert.Empty(t, stats.TopCategories)
}
