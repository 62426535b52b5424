package transfer

import (
	"time"

	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
	"github.com/tu-usuario/almacen-pro/internal/domain/transfer"
)

var _ transfer.ActorDirectory = (*Directory)(nil)
var _ transfer.Clock = SystemClock{}

// Directory adaptador de ActorDirectory sobre los repositorios de usuarios y
// bodegas: resuelve roles y el vínculo gerente-bodega.
type Directory struct {
	users      repository.UserRepository
	warehouses repository.WarehouseRepository
}

// NewDirectory construye el adaptador.
func NewDirectory(users repository.UserRepository, warehouses repository.WarehouseRepository) *Directory {
	return &Directory{users: users, warehouses: warehouses}
}

// ResolveRole devuelve el rol del actor.
func (d *Directory) ResolveRole(actorID string) (string, error) {
	user, err := d.users.GetByID(actorID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrUserNotFound
	}
	return user.Role, nil
}

// ManagesWarehouse indica si el actor es el gerente asignado de la bodega.
func (d *Directory) ManagesWarehouse(actorID, warehouseID string) (bool, error) {
	warehouse, err := d.warehouses.GetByID(warehouseID)
	if err != nil {
		return false, err
	}
	if warehouse == nil {
		return false, domain.ErrNotFound
	}
	return warehouse.ManagerID == actorID, nil
}

// SystemClock reloj del sistema para el motor; los tests inyectan uno fijo.
type SystemClock struct{}

// Now hora actual.
func (SystemClock) Now() time.Time { return time.Now() }
