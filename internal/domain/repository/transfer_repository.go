package repository

import (
	"time"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// Direcciones de listado relativas a una bodega.
const (
	DirectionIncoming = "incoming"
	DirectionOutgoing = "outgoing"
)

// TransferFilter criterios de listado de solicitudes de traslado.
// Search aplica sobre id, justificación y nombres de producto.
type TransferFilter struct {
	Warehouse string
	Direction string // incoming, outgoing o vacío (ambas)
	Status    entity.TransferStatus
	Search    string
	From      time.Time
	To        time.Time
}

// TransferRepository puerto de persistencia para TransferRequest (DIP).
type TransferRepository interface {
	Create(req *entity.TransferRequest) error
	GetByID(id string) (*entity.TransferRequest, error)
	// Update persiste status, approvedBy, completedAt y el historial completo.
	Update(req *entity.TransferRequest) error
	List(filter TransferFilter, limit, offset int) ([]*entity.TransferRequest, error)
}
