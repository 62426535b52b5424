package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository (usable con pool o tx).
// Las líneas y el historial se guardan como JSONB en la misma fila: se leen y
// escriben siempre como un todo junto con la solicitud.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Formas JSONB de las líneas y el historial.
type transferItemRow struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type historyEntryRow struct {
	Action    string    `json:"action"`
	Status    string    `json:"status"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
	Comment   string    `json:"comment,omitempty"`
}

// Create persiste una solicitud nueva con sus líneas e historial inicial.
func (r *TransferRepo) Create(req *entity.TransferRequest) error {
	items, history, err := marshalTransfer(req)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO transfer_requests (id, source_warehouse, destination_warehouse, items, status, justification, created_at, created_by, approved_by, completed_at, history)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(context.Background(), query,
		req.ID, req.SourceWarehouse, req.DestinationWarehouse, items,
		string(req.Status), req.Justification, req.CreatedAt, req.CreatedBy,
		nullIfEmpty(req.ApprovedBy), req.CompletedAt, history,
	)
	if err != nil {
		return fmt.Errorf("insert transfer request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID. Nil sin error si no existe.
func (r *TransferRepo) GetByID(id string) (*entity.TransferRequest, error) {
	query := `
		SELECT id, source_warehouse, destination_warehouse, items, status,
		       justification, created_at, created_by, COALESCE(approved_by, ''),
		       completed_at, history
		FROM transfer_requests WHERE id = $1`
	req, err := scanTransfer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer request: %w", err)
	}
	return req, nil
}

// Update persiste estado, aprobador, fecha de cierre e historial completo.
func (r *TransferRepo) Update(req *entity.TransferRequest) error {
	_, history, err := marshalTransfer(req)
	if err != nil {
		return err
	}
	query := `
		UPDATE transfer_requests
		SET status = $2, approved_by = $3, completed_at = $4, history = $5
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		req.ID, string(req.Status), nullIfEmpty(req.ApprovedBy), req.CompletedAt, history,
	)
	if err != nil {
		return fmt.Errorf("update transfer request: %w", err)
	}
	return nil
}

// List lista solicitudes con filtros de bodega (y dirección), estado, texto y
// rango de fechas. Orden: más recientes primero.
func (r *TransferRepo) List(filter repository.TransferFilter, limit, offset int) ([]*entity.TransferRequest, error) {
	query := `
		SELECT id, source_warehouse, destination_warehouse, items, status,
		       justification, created_at, created_by, COALESCE(approved_by, ''),
		       completed_at, history
		FROM transfer_requests WHERE 1=1`
	args := []any{}
	i := 1

	if filter.Warehouse != "" {
		switch filter.Direction {
		case repository.DirectionIncoming:
			query += fmt.Sprintf(" AND destination_warehouse = $%d", i)
			args = append(args, filter.Warehouse)
			i++
		case repository.DirectionOutgoing:
			query += fmt.Sprintf(" AND source_warehouse = $%d", i)
			args = append(args, filter.Warehouse)
			i++
		default:
			query += fmt.Sprintf(" AND (source_warehouse = $%d OR destination_warehouse = $%d)", i, i)
			args = append(args, filter.Warehouse)
			i++
		}
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", i)
		args = append(args, string(filter.Status))
		i++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(` AND (id::text ILIKE $%d OR justification ILIKE $%d
			OR EXISTS (SELECT 1 FROM jsonb_array_elements(items) it WHERE it->>'name' ILIKE $%d))`, i, i, i)
		args = append(args, "%"+filter.Search+"%")
		i++
	}
	if !filter.From.IsZero() {
		query += fmt.Sprintf(" AND created_at >= $%d", i)
		args = append(args, filter.From)
		i++
	}
	if !filter.To.IsZero() {
		query += fmt.Sprintf(" AND created_at <= $%d", i)
		args = append(args, filter.To)
		i++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfer requests: %w", err)
	}
	defer rows.Close()

	var out []*entity.TransferRequest
	for rows.Next() {
		req, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer request: %w", err)
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func marshalTransfer(req *entity.TransferRequest) (items, history []byte, err error) {
	itemRows := make([]transferItemRow, 0, len(req.Items))
	for _, it := range req.Items {
		itemRows = append(itemRows, transferItemRow{
			ProductID: it.ProductID, Name: it.Name, SKU: it.SKU,
			Quantity: it.Quantity, UnitPrice: it.UnitPrice,
		})
	}
	historyRows := make([]historyEntryRow, 0, len(req.History))
	for _, h := range req.History {
		historyRows = append(historyRows, historyEntryRow{
			Action: h.Action, Status: string(h.Status), User: h.User,
			Timestamp: h.Timestamp, Comment: h.Comment,
		})
	}
	if items, err = json.Marshal(itemRows); err != nil {
		return nil, nil, fmt.Errorf("marshal transfer items: %w", err)
	}
	if history, err = json.Marshal(historyRows); err != nil {
		return nil, nil, fmt.Errorf("marshal transfer history: %w", err)
	}
	return items, history, nil
}

func scanTransfer(row pgx.Row) (*entity.TransferRequest, error) {
	var req entity.TransferRequest
	var status string
	var items, history []byte
	if err := row.Scan(
		&req.ID, &req.SourceWarehouse, &req.DestinationWarehouse, &items, &status,
		&req.Justification, &req.CreatedAt, &req.CreatedBy, &req.ApprovedBy,
		&req.CompletedAt, &history,
	); err != nil {
		return nil, err
	}
	req.Status = entity.TransferStatus(status)

	var itemRows []transferItemRow
	if err := json.Unmarshal(items, &itemRows); err != nil {
		return nil, fmt.Errorf("unmarshal transfer items: %w", err)
	}
	for _, it := range itemRows {
		req.Items = append(req.Items, entity.TransferItem{
			ProductID: it.ProductID, Name: it.Name, SKU: it.SKU,
			Quantity: it.Quantity, UnitPrice: it.UnitPrice,
		})
	}
	var historyRows []historyEntryRow
	if err := json.Unmarshal(history, &historyRows); err != nil {
		return nil, fmt.Errorf("unmarshal transfer history: %w", err)
	}
	for _, h := range historyRows {
		req.History = append(req.History, entity.HistoryEntry{
			Action: h.Action, Status: entity.TransferStatus(h.Status), User: h.User,
			Timestamp: h.Timestamp, Comment: h.Comment,
		})
	}
	return &req, nil
}
