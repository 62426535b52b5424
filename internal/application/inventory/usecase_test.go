package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	appinventory "github.com/tu-usuario/almacen-pro/internal/application/inventory"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memInventory struct {
	byID map[string]*entity.InventoryRecord
}

func (m *memInventory) put(rec *entity.InventoryRecord) {
	cp := *rec
	m.byID[rec.ID] = &cp
}

func (m *memInventory) Create(rec *entity.InventoryRecord) error { m.put(rec); return nil }
func (m *memInventory) GetByID(id string) (*entity.InventoryRecord, error) {
	rec, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}
func (m *memInventory) GetByProductAndWarehouse(productID, warehouseID string) (*entity.InventoryRecord, error) {
	for _, rec := range m.byID {
		if rec.ProductID == productID && rec.WarehouseID == warehouseID {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}
func (m *memInventory) GetForUpdate(id string) (*entity.InventoryRecord, error) {
	return m.GetByID(id)
}
func (m *memInventory) GetForUpdateByProduct(productID, warehouseID string) (*entity.InventoryRecord, error) {
	return m.GetByProductAndWarehouse(productID, warehouseID)
}
func (m *memInventory) Update(rec *entity.InventoryRecord) error { m.put(rec); return nil }
func (m *memInventory) List(filter repository.InventoryFilter, limit, offset int) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	for _, rec := range m.byID {
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}
func (m *memInventory) ListAllByWarehouse(warehouseID string) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	for _, rec := range m.byID {
		if warehouseID == "" || rec.WarehouseID == warehouseID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memMovements struct{ movs []*entity.StockMovement }

func (m *memMovements) Create(mov *entity.StockMovement) error {
	cp := *mov
	m.movs = append(m.movs, &cp)
	return nil
}
func (m *memMovements) ListByRecord(recordID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, mov := range m.movs {
		if mov.RecordID == recordID {
			out = append(out, mov)
		}
	}
	return out, nil
}

type memProducts struct {
	byID map[string]*entity.Product
}

func (m *memProducts) Create(p *entity.Product) error { m.byID[p.ID] = p; return nil }
func (m *memProducts) GetByID(id string) (*entity.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}
func (m *memProducts) GetBySKU(sku string) (*entity.Product, error) { return nil, nil }
func (m *memProducts) Update(p *entity.Product) error               { return nil }
func (m *memProducts) List(category, search string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (m *memProducts) Delete(id string) error                             { return nil }
func (m *memProducts) CreatePriceChange(c *entity.PriceChange) error      { return nil }
func (m *memProducts) ListPriceChanges(productID string, limit, offset int) ([]*entity.PriceChange, error) {
	return nil, nil
}

type fakeTxRunner struct {
	inv  *memInventory
	movs *memMovements
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	inv repository.InventoryRepository,
	movs repository.StockMovementRepository,
) error) error {
	invSnap := make(map[string]*entity.InventoryRecord, len(r.inv.byID))
	for k, v := range r.inv.byID {
		cp := *v
		invSnap[k] = &cp
	}
	movsSnap := append([]*entity.StockMovement(nil), r.movs.movs...)
	if err := fn(r.inv, r.movs); err != nil {
		r.inv.byID = invSnap
		r.movs.movs = movsSnap
		return err
	}
	return nil
}

type countingNotifier struct{ calls int }

func (n *countingNotifier) BroadcastStockStatus(rec *entity.InventoryRecord, status entity.StockStatus) {
	n.calls++
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc       *appinventory.UseCase
	inv      *memInventory
	movs     *memMovements
	products *memProducts
	notifier *countingNotifier
}

func newFixture() *fixture {
	inv := &memInventory{byID: map[string]*entity.InventoryRecord{}}
	movs := &memMovements{}
	products := &memProducts{byID: map[string]*entity.Product{}}
	notifier := &countingNotifier{}
	uc := appinventory.NewUseCase(&fakeTxRunner{inv: inv, movs: movs}, inv, movs, products, notifier)
	return &fixture{uc: uc, inv: inv, movs: movs, products: products, notifier: notifier}
}

func (f *fixture) seedRecord(id string, stock, reserved int64, cost float64) {
	f.inv.put(&entity.InventoryRecord{
		ID:            id,
		ProductID:     "p1",
		SKU:           "SKU-p1",
		ProductName:   "Arroz 5kg",
		WarehouseID:   "wh-1",
		CurrentStock:  stock,
		ReservedStock: reserved,
		MinThreshold:  10,
		MaxThreshold:  100,
		Unit:          "saco",
		CostPrice:     decimal.NewFromFloat(cost),
		SellingPrice:  decimal.NewFromInt(12),
		Category:      "Granos",
		LastUpdated:   time.Now(),
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjust
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_AddRecalculaCostoPromedio(t *testing.T) {
	f := newFixture()
	// 10 unidades a costo 8.00; entran 10 a 10.00 → promedio 9.00.
	f.seedRecord("rec-1", 10, 0, 8.00)
	unitCost := decimal.NewFromInt(10)

	resp, err := f.uc.Adjust(context.Background(), "u-gerente", dto.StockAdjustmentRequest{
		RecordID: "rec-1",
		Type:     appinventory.AdjustAdd,
		Quantity: 10,
		Reason:   "compra a proveedor",
		UnitCost: &unitCost,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(20), resp.CurrentStock)
	assert.True(t, resp.CostPrice.Equal(decimal.NewFromInt(9)),
		"costo promedio ponderado: %s", resp.CostPrice)

	require.Len(t, f.movs.movs, 1)
	assert.Equal(t, entity.MovementAdjustAdd, f.movs.movs[0].Type)
	assert.Equal(t, int64(10), f.movs.movs[0].Quantity)
	assert.Equal(t, "compra a proveedor", f.movs.movs[0].Reason)
	assert.Equal(t, 1, f.notifier.calls)
}

func TestAdjust_RemoveRespetaReservado(t *testing.T) {
	f := newFixture()
	// 20 en stock, 15 reservados: disponible 5.
	f.seedRecord("rec-1", 20, 15, 8.00)

	_, err := f.uc.Adjust(context.Background(), "u-gerente", dto.StockAdjustmentRequest{
		RecordID: "rec-1",
		Type:     appinventory.AdjustRemove,
		Quantity: 8,
		Reason:   "merma",
	})
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(5), stockErr.Available)

	rec, _ := f.inv.GetByID("rec-1")
	assert.Equal(t, int64(20), rec.CurrentStock, "un ajuste fallido no toca el stock")
	assert.Empty(t, f.movs.movs)
}

func TestAdjust_SetNoPuedeQuedarBajoReservado(t *testing.T) {
	f := newFixture()
	f.seedRecord("rec-1", 20, 15, 8.00)

	_, err := f.uc.Adjust(context.Background(), "u-gerente", dto.StockAdjustmentRequest{
		RecordID: "rec-1",
		Type:     appinventory.AdjustSet,
		Quantity: 10,
		Reason:   "conteo físico",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjust_SetRegistraDeltaConSigno(t *testing.T) {
	f := newFixture()
	f.seedRecord("rec-1", 20, 0, 8.00)

	resp, err := f.uc.Adjust(context.Background(), "u-gerente", dto.StockAdjustmentRequest{
		RecordID: "rec-1",
		Type:     appinventory.AdjustSet,
		Quantity: 12,
		Reason:   "conteo físico",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), resp.CurrentStock)

	require.Len(t, f.movs.movs, 1)
	assert.Equal(t, entity.MovementAdjustSet, f.movs.movs[0].Type)
	assert.Equal(t, int64(-8), f.movs.movs[0].Quantity, "el movimiento guarda el delta, no el valor fijado")
}

func TestAdjust_RegistroInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Adjust(context.Background(), "u-gerente", dto.StockAdjustmentRequest{
		RecordID: "rec-nope",
		Type:     appinventory.AdjustAdd,
		Quantity: 1,
		Reason:   "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Provision
// ──────────────────────────────────────────────────────────────────────────────

func TestProvision_CopiaDatosDelProducto(t *testing.T) {
	f := newFixture()
	f.products.byID["p9"] = &entity.Product{
		ID: "p9", SKU: "ACE-001", Name: "Aceite 1L", Category: "Aceites",
		Price: decimal.NewFromFloat(6.80), Cost: decimal.NewFromFloat(4.10), Unit: "botella",
	}

	resp, err := f.uc.Provision(context.Background(), "u-admin", dto.CreateInventoryRecordRequest{
		ProductID:    "p9",
		WarehouseID:  "wh-1",
		CurrentStock: 30,
		MinThreshold: 10,
		MaxThreshold: 80,
	})
	require.NoError(t, err)

	assert.Equal(t, "ACE-001", resp.SKU)
	assert.Equal(t, "Aceite 1L", resp.ProductName)
	assert.Equal(t, "Aceites", resp.Category)
	assert.Equal(t, "in-stock", resp.StockStatus)

	// Duplicado en la misma bodega rechazado.
	_, err = f.uc.Provision(context.Background(), "u-admin", dto.CreateInventoryRecordRequest{
		ProductID: "p9", WarehouseID: "wh-1", CurrentStock: 5, MaxThreshold: 10,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProvision_UmbralesInvertidos(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Provision(context.Background(), "u-admin", dto.CreateInventoryRecordRequest{
		ProductID:    "p9",
		WarehouseID:  "wh-1",
		MinThreshold: 50,
		MaxThreshold: 10,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stats
// ──────────────────────────────────────────────────────────────────────────────

func TestStats_AgregaSobreElSnapshot(t *testing.T) {
	f := newFixture()
	f.seedRecord("rec-1", 50, 0, 8.00) // in-stock, valor 400
	f.inv.put(&entity.InventoryRecord{
		ID: "rec-2", ProductID: "p2", SKU: "SKU-p2", ProductName: "Frijoles",
		WarehouseID: "wh-1", CurrentStock: 0, MinThreshold: 5, MaxThreshold: 50,
		CostPrice: decimal.NewFromInt(3), SellingPrice: decimal.NewFromInt(5),
		Category: "Granos", Unit: "paquete", LastUpdated: time.Now(),
	}) // out-of-stock, valor 0

	stats, err := f.uc.Stats(context.Background(), "wh-1")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 1, stats.InStockItems)
	assert.Equal(t, 1, stats.OutOfStockItems)
	assert.True(t, stats.TotalValue.Equal(decimal.NewFromInt(400)), "valor total: %s", stats.TotalValue)
	require.Len(t, stats.TopCategories, 1)
	assert.Equal(t, "Granos", stats.TopCategories[0].Name)
	assert.Equal(t, 2, stats.TopCategories[0].Products)
}
