package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de productos. Los cambios de
// precio de venta generan entradas en el historial de precios.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto; el SKU es único en el catálogo.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Cost:        in.Cost,
		Unit:        in.Unit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto (parcial). Si cambia el precio se registra el
// cambio en el historial con el actor y el motivo.
func (uc *ProductUseCase) Update(id, actorID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	now := time.Now()
	if in.Price != nil && !in.Price.Equal(product.Price) {
		change := &entity.PriceChange{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			OldPrice:  product.Price,
			NewPrice:  *in.Price,
			Reason:    in.PriceReason,
			ChangedAt: now,
			ChangedBy: actorID,
		}
		if err := uc.repo.CreatePriceChange(change); err != nil {
			return nil, err
		}
		product.Price = *in.Price
	}
	product.UpdatedAt = now
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con filtros de categoría y texto.
func (uc *ProductUseCase) List(category, search string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(category, search, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// PriceHistory historial de precios de un producto, del más reciente al más
// antiguo.
func (uc *ProductUseCase) PriceHistory(id string, limit, offset int) ([]dto.PriceChangeResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListPriceChanges(id, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceChangeResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.PriceChangeResponse{
			OldPrice:  c.OldPrice,
			NewPrice:  c.NewPrice,
			Reason:    c.Reason,
			ChangedAt: c.ChangedAt,
			ChangedBy: c.ChangedBy,
		})
	}
	return out, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Cost:        p.Cost,
		Unit:        p.Unit,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
