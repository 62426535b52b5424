package repository

import "github.com/tu-usuario/almacen-pro/internal/domain/entity"

// ProductRepository puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(category, search string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
	// Historial de precios de venta.
	CreatePriceChange(change *entity.PriceChange) error
	ListPriceChanges(productID string, limit, offset int) ([]*entity.PriceChange, error)
}
