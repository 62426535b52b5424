package dto

import "time"

// CreateWarehouseRequest alta de bodega.
type CreateWarehouseRequest struct {
	Name      string `json:"name" validate:"required"`
	Location  string `json:"location"`
	ManagerID string `json:"manager_id"`
	Status    string `json:"status" validate:"omitempty,oneof=active inactive maintenance"`
}

// UpdateWarehouseRequest actualización parcial de bodega.
type UpdateWarehouseRequest struct {
	Name      *string `json:"name"`
	Location  *string `json:"location"`
	ManagerID *string `json:"manager_id"`
	Status    *string `json:"status" validate:"omitempty,oneof=active inactive maintenance"`
}

// WarehouseResponse bodega en respuestas.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	ManagerID string    `json:"manager_id,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseListResponse página de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
