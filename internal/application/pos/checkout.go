// Package pos contiene el caso de uso de cobro del punto de venta.
package pos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/inventory"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// taxRate impuesto aplicado sobre el subtotal de cada venta.
var taxRate = decimal.NewFromFloat(0.10)

// TxRunner transacción para el cobro: descuento de stock, movimientos de
// auditoría y la venta, todo o nada.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		inv repository.InventoryRepository,
		movs repository.StockMovementRepository,
		sales repository.SaleRepository,
	) error) error
}

// StockNotifier publica cambios de estado de stock tras una venta.
type StockNotifier interface {
	BroadcastStockStatus(rec *entity.InventoryRecord, status entity.StockStatus)
}

// CheckoutUseCase registra ventas del punto de venta descontando stock de la
// bodega de forma atómica. Las líneas se cobran al precio de venta vigente del
// registro de inventario.
type CheckoutUseCase struct {
	txRunner TxRunner
	notifier StockNotifier
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(txRunner TxRunner, notifier StockNotifier) *CheckoutUseCase {
	return &CheckoutUseCase{txRunner: txRunner, notifier: notifier}
}

// Checkout valida el carrito, bloquea cada registro de inventario, verifica
// disponibilidad (actual - reservado), descuenta y registra la venta con sus
// movimientos. Pagos en efectivo exigen recibido >= total y calculan cambio.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, actorID string, in dto.CheckoutRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, &domain.ValidationError{Field: "items", Reason: "el carrito está vacío"}
	}
	for _, line := range in.Items {
		if line.Quantity <= 0 {
			return nil, &domain.ValidationError{Field: "quantity", Reason: "la cantidad debe ser positiva"}
		}
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		InvoiceNumber: newInvoiceNumber(now),
		WarehouseID:   in.WarehouseID,
		PaymentMethod: in.PaymentMethod,
		CreatedAt:     now,
		CreatedBy:     actorID,
	}
	var touched []*entity.InventoryRecord

	err := uc.txRunner.RunSale(ctx, func(
		inv repository.InventoryRepository,
		movs repository.StockMovementRepository,
		sales repository.SaleRepository,
	) error {
		subtotal := decimal.Zero
		for _, line := range in.Items {
			rec, err := inv.GetForUpdateByProduct(line.ProductID, in.WarehouseID)
			if err != nil {
				return err
			}
			if rec == nil {
				return domain.ErrNotFound
			}
			if line.Quantity > rec.AvailableStock() {
				return &domain.InsufficientStockError{
					ProductID: line.ProductID,
					Requested: line.Quantity,
					Available: rec.AvailableStock(),
				}
			}
			rec.CurrentStock -= line.Quantity
			rec.LastUpdated = now
			if err := inv.Update(rec); err != nil {
				return err
			}
			if err := movs.Create(&entity.StockMovement{
				ID:          uuid.New().String(),
				RecordID:    rec.ID,
				ProductID:   rec.ProductID,
				WarehouseID: in.WarehouseID,
				Type:        entity.MovementSale,
				Quantity:    -line.Quantity,
				Reference:   sale.ID,
				CreatedAt:   now,
				CreatedBy:   actorID,
			}); err != nil {
				return err
			}

			sale.Items = append(sale.Items, entity.SaleItem{
				ProductID: rec.ProductID,
				Name:      rec.ProductName,
				SKU:       rec.SKU,
				Quantity:  line.Quantity,
				UnitPrice: rec.SellingPrice,
			})
			subtotal = subtotal.Add(decimal.NewFromInt(line.Quantity).Mul(rec.SellingPrice))
			touched = append(touched, rec)
		}

		sale.Subtotal = subtotal
		sale.Tax = subtotal.Mul(taxRate)
		sale.Total = sale.Subtotal.Add(sale.Tax)

		if in.PaymentMethod == entity.PaymentCash {
			if in.CashReceived.LessThan(sale.Total) {
				return &domain.ValidationError{Field: "cash_received", Reason: "el efectivo recibido no cubre el total"}
			}
			sale.CashReceived = in.CashReceived
			sale.Change = in.CashReceived.Sub(sale.Total)
		}
		return sales.Create(sale)
	})
	if err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		for _, rec := range touched {
			uc.notifier.BroadcastStockStatus(rec, inventory.Classify(rec))
		}
	}
	return toSaleResponse(sale), nil
}

// newInvoiceNumber número de comprobante legible: POS-AAAAMMDD-xxxxxx.
func newInvoiceNumber(t time.Time) string {
	return fmt.Sprintf("POS-%s-%s", t.Format("20060102"), uuid.New().String()[:6])
}

func toSaleResponse(sale *entity.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(sale.Items))
	for _, it := range sale.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			SKU:       it.SKU,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return &dto.SaleResponse{
		ID:            sale.ID,
		InvoiceNumber: sale.InvoiceNumber,
		WarehouseID:   sale.WarehouseID,
		Items:         items,
		Subtotal:      sale.Subtotal,
		Tax:           sale.Tax,
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod,
		CashReceived:  sale.CashReceived,
		Change:        sale.Change,
		CreatedAt:     sale.CreatedAt,
		CreatedBy:     sale.CreatedBy,
	}
}
