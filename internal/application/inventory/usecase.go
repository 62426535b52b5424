package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/inventory"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// Tipos de ajuste manual de stock.
const (
	AdjustAdd    = "add"
	AdjustRemove = "remove"
	AdjustSet    = "set"
)

// UseCase casos de uso de inventario: listado con clasificación, estadísticas
// agregadas, aprovisionamiento y ajustes manuales con auditoría.
type UseCase struct {
	txRunner TxRunner
	inv      repository.InventoryRepository
	movs     repository.StockMovementRepository
	products repository.ProductRepository
	notifier StockNotifier
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	inv repository.InventoryRepository,
	movs repository.StockMovementRepository,
	products repository.ProductRepository,
	notifier StockNotifier,
) *UseCase {
	return &UseCase{txRunner: txRunner, inv: inv, movs: movs, products: products, notifier: notifier}
}

// List lista registros de inventario con los derivados (disponible, valor,
// clasificación) calculados por registro.
func (uc *UseCase) List(ctx context.Context, in dto.InventoryListRequest) (*dto.InventoryListResponse, error) {
	in.DefaultPage()
	list, err := uc.inv.List(repository.InventoryFilter{
		WarehouseID: in.WarehouseID,
		Category:    in.Category,
		Search:      in.Search,
	}, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryRecordResponse, 0, len(list))
	for _, rec := range list {
		items = append(items, *toRecordResponse(rec))
	}
	return &dto.InventoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Stats estadísticas agregadas del inventario, opcionalmente filtradas por
// bodega. Delegadas al agregador de dominio sobre un snapshot completo.
func (uc *UseCase) Stats(ctx context.Context, warehouseID string) (*dto.InventoryStatsResponse, error) {
	records, err := uc.inv.ListAllByWarehouse(warehouseID)
	if err != nil {
		return nil, err
	}
	stats := inventory.Summarize(records, "")

	top := make([]dto.CategoryStatsDTO, 0, len(stats.TopCategories))
	for _, c := range stats.TopCategories {
		top = append(top, dto.CategoryStatsDTO{Name: c.Name, Products: c.Products, Value: c.Value})
	}
	return &dto.InventoryStatsResponse{
		TotalProducts:   stats.TotalProducts,
		TotalValue:      stats.TotalValue,
		InStockItems:    stats.InStockItems,
		LowStockItems:   stats.LowStockItems,
		OutOfStockItems: stats.OutOfStockItems,
		OverstockItems:  stats.OverstockItems,
		TopCategories:   top,
	}, nil
}

// Provision da de alta un producto en una bodega. Valida los invariantes del
// registro: umbrales bien formados y reservado dentro del stock actual.
func (uc *UseCase) Provision(ctx context.Context, actorID string, in dto.CreateInventoryRecordRequest) (*dto.InventoryRecordResponse, error) {
	if in.MaxThreshold < in.MinThreshold {
		return nil, &domain.ValidationError{Field: "max_threshold", Reason: "debe ser mayor o igual al umbral mínimo"}
	}
	if in.ReservedStock > in.CurrentStock {
		return nil, &domain.ValidationError{Field: "reserved_stock", Reason: "no puede superar el stock actual"}
	}
	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.inv.GetByProductAndWarehouse(in.ProductID, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	rec := &entity.InventoryRecord{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		SKU:           product.SKU,
		ProductName:   product.Name,
		WarehouseID:   in.WarehouseID,
		CurrentStock:  in.CurrentStock,
		ReservedStock: in.ReservedStock,
		MinThreshold:  in.MinThreshold,
		MaxThreshold:  in.MaxThreshold,
		Unit:          product.Unit,
		CostPrice:     product.Cost,
		SellingPrice:  product.Price,
		Category:      product.Category,
		LastUpdated:   time.Now(),
	}
	if err := uc.inv.Create(rec); err != nil {
		return nil, err
	}
	return toRecordResponse(rec), nil
}

// Adjust aplica un ajuste manual de stock (add/remove/set) dentro de una
// transacción: bloquea la fila, valida, actualiza y escribe el movimiento de
// auditoría. En add con costo unitario se recalcula el costo promedio
// ponderado del registro.
func (uc *UseCase) Adjust(ctx context.Context, actorID string, in dto.StockAdjustmentRequest) (*dto.InventoryRecordResponse, error) {
	now := time.Now()
	var adjusted *entity.InventoryRecord

	err := uc.txRunner.Run(ctx, func(
		inv repository.InventoryRepository,
		movs repository.StockMovementRepository,
	) error {
		rec, err := inv.GetForUpdate(in.RecordID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}

		var delta int64
		switch in.Type {
		case AdjustAdd:
			if in.Quantity <= 0 {
				return &domain.ValidationError{Field: "quantity", Reason: "la cantidad a agregar debe ser positiva"}
			}
			delta = in.Quantity
			if in.UnitCost != nil {
				rec.CostPrice = weightedAverageCost(rec.CurrentStock, rec.CostPrice, in.Quantity, *in.UnitCost)
			}
			rec.CurrentStock += in.Quantity
		case AdjustRemove:
			if in.Quantity <= 0 {
				return &domain.ValidationError{Field: "quantity", Reason: "la cantidad a retirar debe ser positiva"}
			}
			if in.Quantity > rec.AvailableStock() {
				return &domain.InsufficientStockError{
					ProductID: rec.ProductID,
					Requested: in.Quantity,
					Available: rec.AvailableStock(),
				}
			}
			delta = -in.Quantity
			rec.CurrentStock -= in.Quantity
		case AdjustSet:
			if in.Quantity < rec.ReservedStock {
				return &domain.ValidationError{Field: "quantity", Reason: "el stock fijado no puede quedar bajo el reservado"}
			}
			delta = in.Quantity - rec.CurrentStock
			rec.CurrentStock = in.Quantity
		default:
			return &domain.ValidationError{Field: "type", Reason: "tipo de ajuste desconocido"}
		}

		rec.LastUpdated = now
		if err := inv.Update(rec); err != nil {
			return err
		}
		if err := movs.Create(&entity.StockMovement{
			ID:          uuid.New().String(),
			RecordID:    rec.ID,
			ProductID:   rec.ProductID,
			WarehouseID: rec.WarehouseID,
			Type:        movementTypeFor(in.Type),
			Quantity:    delta,
			Reason:      in.Reason,
			CreatedAt:   now,
			CreatedBy:   actorID,
		}); err != nil {
			return err
		}
		adjusted = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.BroadcastStockStatus(adjusted, inventory.Classify(adjusted))
	}
	return toRecordResponse(adjusted), nil
}

// History movimientos de auditoría de un registro, del más reciente al más
// antiguo.
func (uc *UseCase) History(ctx context.Context, recordID string, page dto.PageRequest) ([]dto.StockMovementResponse, error) {
	page.DefaultPage()
	rec, err := uc.inv.GetByID(recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movs.ListByRecord(recordID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.StockMovementResponse{
			ID:        m.ID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Reference: m.Reference,
			Reason:    m.Reason,
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		})
	}
	return out, nil
}

// weightedAverageCost costo promedio ponderado tras una entrada:
// ((stock*costo) + (entrada*costoEntrada)) / (stock + entrada).
func weightedAverageCost(stock int64, cost decimal.Decimal, incoming int64, incomingCost decimal.Decimal) decimal.Decimal {
	total := stock + incoming
	if total <= 0 {
		return decimal.Zero
	}
	num := decimal.NewFromInt(stock).Mul(cost).Add(decimal.NewFromInt(incoming).Mul(incomingCost))
	return num.Div(decimal.NewFromInt(total))
}

func movementTypeFor(adjustType string) string {
	switch adjustType {
	case AdjustAdd:
		return entity.MovementAdjustAdd
	case AdjustRemove:
		return entity.MovementAdjustRemove
	default:
		return entity.MovementAdjustSet
	}
}

func toRecordResponse(rec *entity.InventoryRecord) *dto.InventoryRecordResponse {
	return &dto.InventoryRecordResponse{
		ID:             rec.ID,
		ProductID:      rec.ProductID,
		SKU:            rec.SKU,
		ProductName:    rec.ProductName,
		WarehouseID:    rec.WarehouseID,
		CurrentStock:   rec.CurrentStock,
		ReservedStock:  rec.ReservedStock,
		AvailableStock: rec.AvailableStock(),
		MinThreshold:   rec.MinThreshold,
		MaxThreshold:   rec.MaxThreshold,
		Unit:           rec.Unit,
		CostPrice:      rec.CostPrice,
		SellingPrice:   rec.SellingPrice,
		StockValue:     rec.StockValue(),
		StockStatus:    string(inventory.Classify(rec)),
		Category:       rec.Category,
		LastUpdated:    rec.LastUpdated,
	}
}
