package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/inventory"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// WarehouseUseCase casos de uso de administración de bodegas: CRUD,
// asignación de gerente y resumen de inventario por bodega.
type WarehouseUseCase struct {
	repo  repository.WarehouseRepository
	users repository.UserRepository
	inv   repository.InventoryRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, users repository.UserRepository, inv repository.InventoryRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, users: users, inv: inv}
}

// Create crea una nueva bodega. Si se asigna gerente debe existir.
func (uc *WarehouseUseCase) Create(in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.ManagerID != "" {
		if err := uc.checkManager(in.ManagerID); err != nil {
			return nil, err
		}
	}
	status := in.Status
	if status == "" {
		status = entity.WarehouseActive
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Location:  in.Location,
		ManagerID: in.ManagerID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, nil
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza una bodega (parcial).
func (uc *WarehouseUseCase) Update(id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, nil
	}
	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.Location != nil {
		warehouse.Location = *in.Location
	}
	if in.ManagerID != nil {
		if *in.ManagerID != "" {
			if err := uc.checkManager(*in.ManagerID); err != nil {
				return nil, err
			}
		}
		warehouse.ManagerID = *in.ManagerID
	}
	if in.Status != nil {
		warehouse.Status = *in.Status
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas con paginación.
func (uc *WarehouseUseCase) List(limit, offset int) (*dto.WarehouseListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Summary resumen de inventario de la bodega (modal de resumen).
func (uc *WarehouseUseCase) Summary(id string) (*dto.InventoryStatsResponse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	records, err := uc.inv.ListAllByWarehouse(id)
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

// Delete elimina una bodega por ID.
func (uc *WarehouseUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// checkManager el gerente asignado debe existir y tener rol gerente o admin.
func (uc *WarehouseUseCase) checkManager(managerID string) error {
	user, err := uc.users.GetByID(managerID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.Role != entity.RoleGerente && user.Role != entity.RoleAdmin {
		return &domain.ValidationError{Field: "manager_id", Reason: "el usuario no tiene rol de gerente"}
	}
	return nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Location:  w.Location,
		ManagerID: w.ManagerID,
		Status:    w.Status,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
