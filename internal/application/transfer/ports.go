package transfer

import (
	"context"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el cierre de una solicitud y el
// movimiento físico de stock (restar en origen, sumar en destino) sean
// atómicos.
type TxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		transfers repository.TransferRepository,
		inv repository.InventoryRepository,
		movs repository.StockMovementRepository,
	) error) error
}

// StockNotifier publica cambios de estado de stock a los clientes conectados
// (hub websocket). Puede ser nil si no hay hub configurado.
type StockNotifier interface {
	BroadcastStockStatus(rec *entity.InventoryRecord, status entity.StockStatus)
}
