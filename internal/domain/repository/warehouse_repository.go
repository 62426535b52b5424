package repository

import "github.com/tu-usuario/almacen-pro/internal/domain/entity"

// WarehouseRepository puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	List(limit, offset int) ([]*entity.Warehouse, error)
	// ListByManager bodegas gestionadas por un usuario (regla de permisos de
	// traslados).
	ListByManager(managerID string) ([]*entity.Warehouse, error)
	Delete(id string) error
}
