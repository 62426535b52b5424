package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/inventory"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
	"github.com/tu-usuario/almacen-pro/internal/domain/transfer"
)

// UseCase orquesta el ciclo de vida de solicitudes de traslado: delega las
// transiciones al motor de dominio y persiste el resultado. Complete aplica
// además el movimiento físico de stock en la misma transacción.
//
// El motor re-verifica la precondición de estado en cada llamada, así que ante
// ediciones concurrentes sobre la misma solicitud este caso de uso falla
// limpio (ErrConflict) y el caller puede re-leer y reintentar.
type UseCase struct {
	engine     *transfer.Engine
	txRunner   TxRunner
	transfers  repository.TransferRepository
	inv        repository.InventoryRepository
	warehouses repository.WarehouseRepository
	notifier   StockNotifier
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	engine *transfer.Engine,
	txRunner TxRunner,
	transfers repository.TransferRepository,
	inv repository.InventoryRepository,
	warehouses repository.WarehouseRepository,
	notifier StockNotifier,
) *UseCase {
	return &UseCase{
		engine:     engine,
		txRunner:   txRunner,
		transfers:  transfers,
		inv:        inv,
		warehouses: warehouses,
		notifier:   notifier,
	}
}

// Create valida bodegas, toma el snapshot de disponibilidad en la bodega
// origen y crea la solicitud vía el motor. Todo-o-nada: una línea con stock
// insuficiente aborta la creación completa.
func (uc *UseCase) Create(ctx context.Context, actorID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	for _, whID := range []string{in.SourceWarehouse, in.DestinationWarehouse} {
		if whID == "" {
			continue // el motor reporta el error de validación
		}
		wh, err := uc.warehouses.GetByID(whID)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, domain.ErrNotFound
		}
	}

	// Snapshot de disponibilidad (actual - reservado) por producto en origen.
	snapshot := make(transfer.StockSnapshot, len(in.Items))
	items := make([]entity.TransferItem, 0, len(in.Items))
	for _, line := range in.Items {
		rec, err := uc.inv.GetByProductAndWarehouse(line.ProductID, in.SourceWarehouse)
		if err != nil {
			return nil, err
		}
		item := entity.TransferItem{ProductID: line.ProductID, Quantity: line.Quantity}
		if rec != nil {
			snapshot[line.ProductID] = rec.AvailableStock()
			item.Name = rec.ProductName
			item.SKU = rec.SKU
			item.UnitPrice = rec.SellingPrice
		}
		items = append(items, item)
	}

	req, err := uc.engine.Create(transfer.CreateInput{
		SourceWarehouse:      in.SourceWarehouse,
		DestinationWarehouse: in.DestinationWarehouse,
		Items:                items,
		Justification:        in.Justification,
	}, actorID, snapshot)
	if err != nil {
		return nil, err
	}
	if err := uc.transfers.Create(req); err != nil {
		return nil, err
	}
	return toTransferResponse(req), nil
}

// Approve transiciona la solicitud a approved y persiste.
func (uc *UseCase) Approve(ctx context.Context, actorID, requestID, comment string) (*dto.TransferResponse, error) {
	return uc.transition(requestID, func(req *entity.TransferRequest) (*entity.TransferRequest, error) {
		return uc.engine.Approve(req, actorID, comment)
	})
}

// Reject transiciona la solicitud a rejected (terminal) y persiste.
// El motor exige comentario con el motivo.
func (uc *UseCase) Reject(ctx context.Context, actorID, requestID, comment string) (*dto.TransferResponse, error) {
	return uc.transition(requestID, func(req *entity.TransferRequest) (*entity.TransferRequest, error) {
		return uc.engine.Reject(req, actorID, comment)
	})
}

// MarkInTransit marca la mercancía como despachada desde origen.
func (uc *UseCase) MarkInTransit(ctx context.Context, actorID, requestID string) (*dto.TransferResponse, error) {
	return uc.transition(requestID, func(req *entity.TransferRequest) (*entity.TransferRequest, error) {
		return uc.engine.MarkInTransit(req, actorID)
	})
}

// transition carga, aplica la transición del motor y persiste el valor nuevo.
func (uc *UseCase) transition(requestID string, fn func(*entity.TransferRequest) (*entity.TransferRequest, error)) (*dto.TransferResponse, error) {
	req, err := uc.transfers.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	out, err := fn(req)
	if err != nil {
		return nil, err
	}
	if err := uc.transfers.Update(out); err != nil {
		return nil, err
	}
	return toTransferResponse(out), nil
}

// Complete confirma la recepción en destino y aplica el movimiento de stock de
// forma atómica: en una sola transacción se resta cada línea en la bodega
// origen, se suma en la destino, se escriben los movimientos de auditoría y se
// persiste la solicitud en completed. Si el stock en origen ya no alcanza
// (ventas posteriores a la aprobación), toda la operación falla y la solicitud
// queda intacta.
func (uc *UseCase) Complete(ctx context.Context, actorID, requestID string) (*dto.TransferResponse, error) {
	req, err := uc.transfers.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	out, err := uc.engine.Complete(req, actorID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var touched []*entity.InventoryRecord

	err = uc.txRunner.RunTransfer(ctx, func(
		transfers repository.TransferRepository,
		inv repository.InventoryRepository,
		movs repository.StockMovementRepository,
	) error {
		for _, item := range out.Items {
			src, err := inv.GetForUpdateByProduct(item.ProductID, out.SourceWarehouse)
			if err != nil {
				return err
			}
			if src == nil || src.AvailableStock() < item.Quantity {
				var available int64
				if src != nil {
					available = src.AvailableStock()
				}
				return &domain.InsufficientStockError{
					ProductID: item.ProductID,
					Requested: item.Quantity,
					Available: available,
				}
			}
			src.CurrentStock -= item.Quantity
			src.LastUpdated = now
			if err := inv.Update(src); err != nil {
				return err
			}
			if err := movs.Create(&entity.StockMovement{
				ID:          uuid.New().String(),
				RecordID:    src.ID,
				ProductID:   item.ProductID,
				WarehouseID: out.SourceWarehouse,
				Type:        entity.MovementTransferOut,
				Quantity:    -item.Quantity,
				Reference:   out.ID,
				CreatedAt:   now,
				CreatedBy:   actorID,
			}); err != nil {
				return err
			}

			dst, err := inv.GetForUpdateByProduct(item.ProductID, out.DestinationWarehouse)
			if err != nil {
				return err
			}
			if dst == nil {
				// Primera vez que el producto llega a esta bodega: se crea el
				// registro heredando umbrales y precios del origen.
				dst = &entity.InventoryRecord{
					ID:           uuid.New().String(),
					ProductID:    src.ProductID,
					SKU:          src.SKU,
					ProductName:  src.ProductName,
					WarehouseID:  out.DestinationWarehouse,
					CurrentStock: item.Quantity,
					MinThreshold: src.MinThreshold,
					MaxThreshold: src.MaxThreshold,
					Unit:         src.Unit,
					CostPrice:    src.CostPrice,
					SellingPrice: src.SellingPrice,
					Category:     src.Category,
					LastUpdated:  now,
				}
				if err := inv.Create(dst); err != nil {
					return err
				}
			} else {
				dst.CurrentStock += item.Quantity
				dst.LastUpdated = now
				if err := inv.Update(dst); err != nil {
					return err
				}
			}
			if err := movs.Create(&entity.StockMovement{
				ID:          uuid.New().String(),
				RecordID:    dst.ID,
				ProductID:   item.ProductID,
				WarehouseID: out.DestinationWarehouse,
				Type:        entity.MovementTransferIn,
				Quantity:    item.Quantity,
				Reference:   out.ID,
				CreatedAt:   now,
				CreatedBy:   actorID,
			}); err != nil {
				return err
			}
			touched = append(touched, src, dst)
		}
		return transfers.Update(out)
	})
	if err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		for _, rec := range touched {
			uc.notifier.BroadcastStockStatus(rec, inventory.Classify(rec))
		}
	}
	return toTransferResponse(out), nil
}

// GetByID obtiene una solicitud por id.
func (uc *UseCase) GetByID(ctx context.Context, requestID string) (*dto.TransferResponse, error) {
	req, err := uc.transfers.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, nil
	}
	return toTransferResponse(req), nil
}

// List lista solicitudes con filtros de bodega, dirección, estado, texto y
// rango de fechas.
func (uc *UseCase) List(ctx context.Context, in dto.TransferListRequest) (*dto.TransferListResponse, error) {
	in.DefaultPage()
	filter := repository.TransferFilter{
		Warehouse: in.Warehouse,
		Direction: in.Direction,
		Status:    entity.TransferStatus(in.Status),
		Search:    in.Search,
	}
	if in.From != "" {
		from, err := time.Parse("2006-01-02", in.From)
		if err != nil {
			return nil, &domain.ValidationError{Field: "from", Reason: "fecha inválida, formato AAAA-MM-DD"}
		}
		filter.From = from
	}
	if in.To != "" {
		to, err := time.Parse("2006-01-02", in.To)
		if err != nil {
			return nil, &domain.ValidationError{Field: "to", Reason: "fecha inválida, formato AAAA-MM-DD"}
		}
		// Inclusivo hasta el final del día.
		filter.To = to.Add(24*time.Hour - time.Nanosecond)
	}

	list, err := uc.transfers.List(filter, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, req := range list {
		items = append(items, *toTransferResponse(req))
	}
	return &dto.TransferListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

func toTransferResponse(req *entity.TransferRequest) *dto.TransferResponse {
	items := make([]dto.TransferItemResponse, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, dto.TransferItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			SKU:       it.SKU,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	history := make([]dto.TransferHistoryResponse, 0, len(req.History))
	for _, h := range req.History {
		history = append(history, dto.TransferHistoryResponse{
			Action:    h.Action,
			Status:    string(h.Status),
			User:      h.User,
			Timestamp: h.Timestamp,
			Comment:   h.Comment,
		})
	}
	return &dto.TransferResponse{
		ID:                   req.ID,
		SourceWarehouse:      req.SourceWarehouse,
		DestinationWarehouse: req.DestinationWarehouse,
		Items:                items,
		Status:               string(req.Status),
		Justification:        req.Justification,
		TotalQuantity:        req.TotalQuantity(),
		TotalValue:           req.TotalValue(),
		CreatedAt:            req.CreatedAt,
		CreatedBy:            req.CreatedBy,
		ApprovedBy:           req.ApprovedBy,
		CompletedAt:          req.CompletedAt,
		History:              history,
	}
}
