package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferItemRequest línea de producto de una solicitud de traslado.
type TransferItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// CreateTransferRequest cuerpo para crear una solicitud de traslado.
type CreateTransferRequest struct {
	SourceWarehouse      string                `json:"source_warehouse" validate:"required"`
	DestinationWarehouse string                `json:"destination_warehouse" validate:"required"`
	Items                []TransferItemRequest `json:"items" validate:"required,min=1,dive"`
	Justification        string                `json:"justification" validate:"required"`
}

// TransferDecisionRequest cuerpo para aprobar o rechazar una solicitud.
// El comentario es obligatorio al rechazar; lo valida el motor.
type TransferDecisionRequest struct {
	Comment string `json:"comment"`
}

// TransferItemResponse línea de producto en respuestas.
type TransferItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// TransferHistoryResponse entrada del historial de auditoría.
type TransferHistoryResponse struct {
	Action    string    `json:"action"`
	Status    string    `json:"status"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
	Comment   string    `json:"comment,omitempty"`
}

// TransferResponse solicitud de traslado completa.
type TransferResponse struct {
	ID                   string                    `json:"id"`
	SourceWarehouse      string                    `json:"source_warehouse"`
	DestinationWarehouse string                    `json:"destination_warehouse"`
	Items                []TransferItemResponse    `json:"items"`
	Status               string                    `json:"status"`
	Justification        string                    `json:"justification"`
	TotalQuantity        int64                     `json:"total_quantity"`
	TotalValue           decimal.Decimal           `json:"total_value"`
	CreatedAt            time.Time                 `json:"created_at"`
	CreatedBy            string                    `json:"created_by"`
	ApprovedBy           string                    `json:"approved_by,omitempty"`
	CompletedAt          *time.Time                `json:"completed_at,omitempty"`
	History              []TransferHistoryResponse `json:"history"`
}

// TransferListRequest filtros de listado (query params).
type TransferListRequest struct {
	PageRequest
	Warehouse string `query:"warehouse"`
	Direction string `query:"direction" validate:"omitempty,oneof=incoming outgoing"`
	Status    string `query:"status" validate:"omitempty,oneof=pending approved rejected completed in-transit"`
	Search    string `query:"search"`
	From      string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// TransferListResponse página de solicitudes.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
