package inventory

import (
	"context"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad de los ajustes de stock
// con su registro de auditoría.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		inv repository.InventoryRepository,
		movs repository.StockMovementRepository,
	) error) error
}

// StockNotifier publica cambios de estado de stock a los clientes conectados.
// Puede ser nil si no hay hub configurado.
type StockNotifier interface {
	BroadcastStockStatus(rec *entity.InventoryRecord, status entity.StockStatus)
}
