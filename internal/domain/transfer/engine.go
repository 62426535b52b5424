// Package transfer contiene el motor del ciclo de vida de solicitudes de
// traslado entre bodegas (servicio de dominio puro).
//
// Máquina de estados:
//
//	pending --approve--> approved --markInTransit--> in-transit --complete--> completed
//	   |                     \_______________complete_____________/
//	   \--reject--> rejected   (rejected y completed son terminales)
//
// El motor es síncrono y no guarda estado: cada operación recibe la solicitud
// actual y devuelve un valor nuevo (o error), releyendo siempre la precondición
// de estado para fallar limpio ante snapshots desactualizados. La serialización
// de ediciones concurrentes es responsabilidad del caller.
package transfer

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// Clock abstrae la hora actual para pruebas deterministas.
type Clock interface {
	Now() time.Time
}

// ActorDirectory resuelve el rol de un actor y las bodegas que gestiona.
// Lo usan las verificaciones de permiso de approve/reject/complete.
type ActorDirectory interface {
	ResolveRole(actorID string) (string, error)
	ManagesWarehouse(actorID, warehouseID string) (bool, error)
}

// StockSnapshot cantidades disponibles por producto en la bodega origen,
// tomadas al momento de crear la solicitud. La validación de líneas ocurre
// solo en la creación; no se re-valida en transiciones posteriores.
type StockSnapshot map[string]int64

// CreateInput datos para crear una solicitud de traslado.
type CreateInput struct {
	SourceWarehouse      string
	DestinationWarehouse string
	Items                []entity.TransferItem
	Justification        string
}

// Engine motor de transiciones de solicitudes de traslado.
type Engine struct {
	actors ActorDirectory
	clock  Clock
}

// NewEngine construye el motor.
func NewEngine(actors ActorDirectory, clock Clock) *Engine {
	return &Engine{actors: actors, clock: clock}
}

// Create valida la entrada y devuelve una solicitud nueva en estado pending
// con su primera entrada de historial. Todo-o-nada: cualquier línea inválida
// aborta la creación completa.
func (e *Engine) Create(in CreateInput, actor string, snapshot StockSnapshot) (*entity.TransferRequest, error) {
	if in.SourceWarehouse == "" || in.DestinationWarehouse == "" {
		return nil, &domain.ValidationError{Field: "warehouse", Reason: "bodega origen y destino son obligatorias"}
	}
	if in.SourceWarehouse == in.DestinationWarehouse {
		return nil, &domain.ValidationError{Field: "destinationWarehouse", Reason: "debe ser distinta de la bodega origen"}
	}
	if len(in.Items) == 0 {
		return nil, &domain.ValidationError{Field: "items", Reason: "se requiere al menos una línea de producto"}
	}
	if in.Justification == "" {
		return nil, &domain.ValidationError{Field: "justification", Reason: "la justificación es obligatoria"}
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, &domain.ValidationError{Field: "quantity", Reason: "la cantidad debe ser positiva"}
		}
		available := snapshot[it.ProductID]
		if it.Quantity > available {
			return nil, &domain.InsufficientStockError{
				ProductID: it.ProductID,
				Requested: it.Quantity,
				Available: available,
			}
		}
	}

	now := e.clock.Now()
	items := make([]entity.TransferItem, len(in.Items))
	copy(items, in.Items)

	return &entity.TransferRequest{
		ID:                   uuid.New().String(),
		SourceWarehouse:      in.SourceWarehouse,
		DestinationWarehouse: in.DestinationWarehouse,
		Items:                items,
		Status:               entity.TransferPending,
		Justification:        in.Justification,
		CreatedAt:            now,
		CreatedBy:            actor,
		History: []entity.HistoryEntry{{
			Action:    entity.ActionRequestCreated,
			Status:    entity.TransferPending,
			User:      actor,
			Timestamp: now,
			Comment:   "Initial request submission",
		}},
	}, nil
}

// Approve transiciona pending -> approved. El actor debe tener rol elevado o
// gestionar la bodega destino.
func (e *Engine) Approve(req *entity.TransferRequest, actor, comment string) (*entity.TransferRequest, error) {
	if req.Status != entity.TransferPending {
		return nil, &domain.InvalidTransitionError{Current: string(req.Status), Attempted: "approve"}
	}
	if err := e.requireDecisionAuthority(req, actor); err != nil {
		return nil, err
	}
	if comment == "" {
		comment = "Request approved"
	}
	out := req.Clone()
	out.Status = entity.TransferApproved
	out.ApprovedBy = actor
	out.History = append(out.History, entity.HistoryEntry{
		Action:    entity.ActionRequestApproved,
		Status:    entity.TransferApproved,
		User:      actor,
		Timestamp: e.clock.Now(),
		Comment:   comment,
	})
	return out, nil
}

// Reject transiciona pending -> rejected (terminal). Misma regla de permisos
// que Approve; el comentario con el motivo es obligatorio.
func (e *Engine) Reject(req *entity.TransferRequest, actor, comment string) (*entity.TransferRequest, error) {
	if req.Status != entity.TransferPending {
		return nil, &domain.InvalidTransitionError{Current: string(req.Status), Attempted: "reject"}
	}
	if err := e.requireDecisionAuthority(req, actor); err != nil {
		return nil, err
	}
	if comment == "" {
		return nil, &domain.ValidationError{Field: "comment", Reason: "el motivo de rechazo es obligatorio"}
	}
	out := req.Clone()
	out.Status = entity.TransferRejected
	out.History = append(out.History, entity.HistoryEntry{
		Action:    entity.ActionRequestRejected,
		Status:    entity.TransferRejected,
		User:      actor,
		Timestamp: e.clock.Now(),
		Comment:   comment,
	})
	return out, nil
}

// MarkInTransit transiciona approved -> in-transit (despacho desde origen).
func (e *Engine) MarkInTransit(req *entity.TransferRequest, actor string) (*entity.TransferRequest, error) {
	if req.Status != entity.TransferApproved {
		return nil, &domain.InvalidTransitionError{Current: string(req.Status), Attempted: "mark-in-transit"}
	}
	out := req.Clone()
	out.Status = entity.TransferInTransit
	out.History = append(out.History, entity.HistoryEntry{
		Action:    entity.ActionItemsDispatched,
		Status:    entity.TransferInTransit,
		User:      actor,
		Timestamp: e.clock.Now(),
		Comment:   "Items packed and sent for delivery",
	})
	return out, nil
}

// Complete transiciona approved|in-transit -> completed (terminal). Confirma
// recepción el lado receptor: el actor debe gestionar la bodega destino.
// El movimiento físico de stock lo aplica la capa de aplicación en la misma
// transacción que persiste este resultado.
func (e *Engine) Complete(req *entity.TransferRequest, actor string) (*entity.TransferRequest, error) {
	if req.Status != entity.TransferApproved && req.Status != entity.TransferInTransit {
		return nil, &domain.InvalidTransitionError{Current: string(req.Status), Attempted: "complete"}
	}
	manages, err := e.actors.ManagesWarehouse(actor, req.DestinationWarehouse)
	if err != nil {
		return nil, err
	}
	if !manages {
		return nil, &domain.PermissionError{Actor: actor, Required: "gestionar la bodega destino"}
	}
	now := e.clock.Now()
	out := req.Clone()
	out.Status = entity.TransferCompleted
	out.CompletedAt = &now
	out.History = append(out.History, entity.HistoryEntry{
		Action:    entity.ActionTransferCompleted,
		Status:    entity.TransferCompleted,
		User:      actor,
		Timestamp: now,
		Comment:   "Items received and verified",
	})
	return out, nil
}

// requireDecisionAuthority regla de permiso para approve/reject: rol admin o
// gerente de la bodega destino.
func (e *Engine) requireDecisionAuthority(req *entity.TransferRequest, actor string) error {
	role, err := e.actors.ResolveRole(actor)
	if err != nil {
		return err
	}
	if role == entity.RoleAdmin {
		return nil
	}
	manages, err := e.actors.ManagesWarehouse(actor, req.DestinationWarehouse)
	if err != nil {
		return err
	}
	if !manages {
		return &domain.PermissionError{Actor: actor, Required: "rol admin o gestionar la bodega destino"}
	}
	return nil
}
