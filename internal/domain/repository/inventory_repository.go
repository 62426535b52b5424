package repository

import "github.com/tu-usuario/almacen-pro/internal/domain/entity"

// InventoryFilter criterios de listado de registros de inventario.
type InventoryFilter struct {
	WarehouseID string
	Category    string
	Search      string // sobre SKU y nombre de producto
}

// InventoryRepository puerto de persistencia para InventoryRecord (DIP).
type InventoryRepository interface {
	Create(rec *entity.InventoryRecord) error
	GetByID(id string) (*entity.InventoryRecord, error)
	GetByProductAndWarehouse(productID, warehouseID string) (*entity.InventoryRecord, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); usar dentro de una tx.
	GetForUpdate(id string) (*entity.InventoryRecord, error)
	// GetForUpdateByProduct como GetForUpdate pero por (producto, bodega).
	// Devuelve nil sin error si no existe registro.
	GetForUpdateByProduct(productID, warehouseID string) (*entity.InventoryRecord, error)
	Update(rec *entity.InventoryRecord) error
	List(filter InventoryFilter, limit, offset int) ([]*entity.InventoryRecord, error)
	// ListAllByWarehouse snapshot completo de una bodega (o de todas si el id
	// está vacío) para el agregador de estadísticas.
	ListAllByWarehouse(warehouseID string) ([]*entity.InventoryRecord, error)
}

// StockMovementRepository puerto para el registro de auditoría de stock.
type StockMovementRepository interface {
	Create(mov *entity.StockMovement) error
	ListByRecord(recordID string, limit, offset int) ([]*entity.StockMovement, error)
}
