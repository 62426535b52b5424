package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus estado del ciclo de vida de una solicitud de traslado.
// Enum cerrado: pending -> approved -> in-transit -> completed, con rejected
// como salida terminal desde pending.
type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferApproved  TransferStatus = "approved"
	TransferRejected  TransferStatus = "rejected"
	TransferCompleted TransferStatus = "completed"
	TransferInTransit TransferStatus = "in-transit"
)

// Valid indica si el valor pertenece al enum.
func (s TransferStatus) Valid() bool {
	switch s {
	case TransferPending, TransferApproved, TransferRejected, TransferCompleted, TransferInTransit:
		return true
	}
	return false
}

// Terminal indica si desde este estado no se permite ninguna transición más.
func (s TransferStatus) Terminal() bool {
	return s == TransferRejected || s == TransferCompleted
}

// Acciones registradas en el historial de una solicitud.
const (
	ActionRequestCreated    = "Request Created"
	ActionRequestApproved   = "Request Approved"
	ActionRequestRejected   = "Request Rejected"
	ActionItemsDispatched   = "Items Dispatched"
	ActionTransferCompleted = "Transfer Completed"
)

// TransferItem línea de producto dentro de una solicitud de traslado.
type TransferItem struct {
	ProductID string
	Name      string
	SKU       string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// HistoryEntry entrada del historial de auditoría de una solicitud.
// El historial es append-only: nunca se reordena ni se muta tras agregarse.
type HistoryEntry struct {
	Action    string
	Status    TransferStatus
	User      string
	Timestamp time.Time
	Comment   string
}

// TransferRequest solicitud de movimiento de productos entre bodegas,
// sujeta a aprobación. La última entrada del historial siempre refleja el
// estado actual de la solicitud.
type TransferRequest struct {
	ID                   string
	SourceWarehouse      string
	DestinationWarehouse string
	Items                []TransferItem
	Status               TransferStatus
	Justification        string
	CreatedAt            time.Time
	CreatedBy            string
	ApprovedBy           string
	CompletedAt          *time.Time
	History              []HistoryEntry
}

// Clone devuelve una copia profunda. El motor de traslados trabaja con
// snapshot-de-entrada / valor-nuevo-de-salida y nunca muta la solicitud
// recibida.
func (r *TransferRequest) Clone() *TransferRequest {
	cp := *r
	cp.Items = make([]TransferItem, len(r.Items))
	copy(cp.Items, r.Items)
	cp.History = make([]HistoryEntry, len(r.History))
	copy(cp.History, r.History)
	if r.CompletedAt != nil {
		t := *r.CompletedAt
		cp.CompletedAt = &t
	}
	return &cp
}

// TotalQuantity suma de unidades solicitadas en todas las líneas.
func (r *TransferRequest) TotalQuantity() int64 {
	var total int64
	for _, it := range r.Items {
		total += it.Quantity
	}
	return total
}

// TotalValue valor total de la solicitud (Σ cantidad × precio unitario).
func (r *TransferRequest) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, it := range r.Items {
		total = total.Add(decimal.NewFromInt(it.Quantity).Mul(it.UnitPrice))
	}
	return total
}
