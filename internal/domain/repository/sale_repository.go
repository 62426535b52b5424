package repository

import "github.com/tu-usuario/almacen-pro/internal/domain/entity"

// SaleRepository puerto de persistencia para ventas POS (DIP).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Sale, error)
}
