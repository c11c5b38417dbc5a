package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/entity"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/repository"
)

var _ repository.StockBatchRepository = (*StockBatchRepo)(nil)

// StockBatchRepo implementación del libro de lotes sobre PostgreSQL (usable
// con pool o tx). El orden FIFO lo impone el ORDER BY received_at, id.
type StockBatchRepo struct {
	q Querier
}

// NewStockBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockBatchRepository(q Querier) *StockBatchRepo {
	return &StockBatchRepo{q: q}
}

const batchColumns = `id, ingredient_id, location_id, batch_number, initial_quantity, remaining_quantity, unit_cost, received_at, expiry_date, status, created_at`

func scanBatch(row pgx.Row) (*entity.StockBatch, error) {
	var b entity.StockBatch
	var batchNumber *string
	err := row.Scan(
		&b.ID, &b.IngredientID, &b.LocationID, &batchNumber,
		&b.InitialQuantity, &b.RemainingQuantity, &b.UnitCost,
		&b.ReceivedAt, &b.ExpiryDate, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if batchNumber != nil {
		b.BatchNumber = *batchNumber
	}
	return &b, nil
}

// Create persiste un lote nuevo (alta por recepción, ajuste+ o transfer_in).
func (r *StockBatchRepo) Create(batch *entity.StockBatch) error {
	query := `
		INSERT INTO stock_batches (id, ingredient_id, location_id, batch_number, initial_quantity, remaining_quantity, unit_cost, received_at, expiry_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	batchNumber := (*string)(nil)
	if batch.BatchNumber != "" {
		batchNumber = &batch.BatchNumber
	}
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.IngredientID, batch.LocationID, batchNumber,
		batch.InitialQuantity, batch.RemainingQuantity, batch.UnitCost,
		batch.ReceivedAt, batch.ExpiryDate, batch.Status, batch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por id; nil si no existe.
func (r *StockBatchRepo) GetByID(id string) (*entity.StockBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM stock_batches WHERE id = $1`
	b, err := scanBatch(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock batch: %w", err)
	}
	return b, nil
}

// ListActive lotes activos del par en orden FIFO.
func (r *StockBatchRepo) ListActive(ingredientID, locationID string) ([]*entity.StockBatch, error) {
	return r.listActive(ingredientID, locationID, false)
}

// ListActiveForUpdate lotes activos del par en orden FIFO con las filas
// bloqueadas (SELECT FOR UPDATE): ninguna otra transacción puede asignar
// sobre las mismas unidades hasta Commit/Rollback.
func (r *StockBatchRepo) ListActiveForUpdate(ingredientID, locationID string) ([]*entity.StockBatch, error) {
	return r.listActive(ingredientID, locationID, true)
}

func (r *StockBatchRepo) listActive(ingredientID, locationID string, forUpdate bool) ([]*entity.StockBatch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM stock_batches
		WHERE ingredient_id = $1 AND location_id = $2 AND status = 'active'
		ORDER BY received_at, id`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := r.q.Query(context.Background(), query, ingredientID, locationID)
	if err != nil {
		return nil, fmt.Errorf("list active batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// MostRecentReceived último lote activo recibido del par; nil si no hay.
func (r *StockBatchRepo) MostRecentReceived(ingredientID, locationID string) (*entity.StockBatch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM stock_batches
		WHERE ingredient_id = $1 AND location_id = $2 AND status = 'active'
		ORDER BY received_at DESC, id DESC
		LIMIT 1`
	b, err := scanBatch(r.q.QueryRow(context.Background(), query, ingredientID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("most recent batch: %w", err)
	}
	return b, nil
}

// UpdateRemaining persiste remaining_quantity y status de un lote ya bloqueado.
// Son las únicas columnas mutables de stock_batches.
func (r *StockBatchRepo) UpdateRemaining(batch *entity.StockBatch) error {
	query := `UPDATE stock_batches SET remaining_quantity = $2, status = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, batch.ID, batch.RemainingQuantity, batch.Status)
	if err != nil {
		return fmt.Errorf("update batch remaining: %w", err)
	}
	return nil
}

// SumRemaining suma de remaining_quantity sobre los lotes activos del par.
func (r *StockBatchRepo) SumRemaining(ingredientID, locationID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(remaining_quantity), 0)
		FROM stock_batches
		WHERE ingredient_id = $1 AND location_id = $2 AND status = 'active'`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, ingredientID, locationID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum remaining: %w", err)
	}
	return total, nil
}

// ListExpiring lotes activos de la ubicación con vencimiento en [from, until],
// ascendente por fecha de vencimiento.
func (r *StockBatchRepo) ListExpiring(locationID string, from, until time.Time) ([]*entity.StockBatch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM stock_batches
		WHERE location_id = $1 AND status = 'active'
		  AND expiry_date IS NOT NULL AND expiry_date BETWEEN $2 AND $3
		ORDER BY expiry_date, id`
	rows, err := r.q.Query(context.Background(), query, locationID, from, until)
	if err != nil {
		return nil, fmt.Errorf("list expiring batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
