package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de StockMovementRepository (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de auditoría.
func (r *StockMovementRepo) Create(mov *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, record_id, product_id, warehouse_id, type, quantity, reference, reason, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.RecordID, mov.ProductID, mov.WarehouseID, mov.Type,
		mov.Quantity, nullIfEmpty(mov.Reference), nullIfEmpty(mov.Reason),
		mov.CreatedAt, mov.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByRecord movimientos de un registro, del más reciente al más antiguo.
func (r *StockMovementRepo) ListByRecord(recordID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, record_id, product_id, warehouse_id, type, quantity,
		       COALESCE(reference, ''), COALESCE(reason, ''), created_at, created_by
		FROM stock_movements
		WHERE record_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, recordID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.RecordID, &m.ProductID, &m.WarehouseID, &m.Type,
			&m.Quantity, &m.Reference, &m.Reason, &m.CreatedAt, &m.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
