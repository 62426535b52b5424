package entity

import "time"

// Estados operativos de una bodega.
const (
	WarehouseActive      = "active"
	WarehouseInactive    = "inactive"
	WarehouseMaintenance = "maintenance"
)

// Warehouse bodega o sucursal donde se almacena inventario (multi-bodega).
// ManagerID vincula al gerente responsable; las reglas de aprobación de
// traslados dependen de este vínculo.
type Warehouse struct {
	ID        string
	Name      string
	Location  string
	ManagerID string
	Status    string // active, inactive, maintenance
	CreatedAt time.Time
	UpdatedAt time.Time
}
