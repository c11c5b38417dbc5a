package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/entity"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo agregados de stock calculados al vuelo desde los lotes
// activos. Solo lectura, sin bloqueos: una consulta repetida sin mutación
// intermedia devuelve exactamente lo mismo.
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador. Pasar pool (solo lecturas).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// GetLevel agregado del par (ingrediente, ubicación). El ingrediente cuenta
// aunque no tenga lotes (total 0); nil si el ingrediente no existe.
func (r *StockLevelRepo) GetLevel(ingredientID, locationID string) (*entity.StockLevel, error) {
	query := `
		SELECT i.id, i.code, i.name, $2::text,
		       COALESCE(SUM(b.remaining_quantity), 0),
		       COUNT(b.id),
		       i.reorder_level
		FROM ingredients i
		LEFT JOIN stock_batches b
		  ON b.ingredient_id = i.id AND b.location_id = $2 AND b.status = 'active'
		WHERE i.id = $1
		GROUP BY i.id`
	var l entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, ingredientID, locationID).Scan(
		&l.IngredientID, &l.IngredientCode, &l.IngredientName, &l.LocationID,
		&l.TotalStock, &l.ActiveBatchCount, &l.ReorderLevel,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &l, nil
}

// ListLowStock ingredientes activos de la ubicación con total ≤ reorder_level.
func (r *StockLevelRepo) ListLowStock(locationID string) ([]*entity.StockLevel, error) {
	query := `
		SELECT i.id, i.code, i.name, $1::text,
		       COALESCE(SUM(b.remaining_quantity), 0),
		       COUNT(b.id),
		       i.reorder_level
		FROM ingredients i
		LEFT JOIN stock_batches b
		  ON b.ingredient_id = i.id AND b.location_id = $1 AND b.status = 'active'
		WHERE i.active
		GROUP BY i.id
		HAVING COALESCE(SUM(b.remaining_quantity), 0) <= i.reorder_level
		ORDER BY i.code`
	rows, err := r.q.Query(context.Background(), query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevel
	for rows.Next() {
		var l entity.StockLevel
		if err := rows.Scan(
			&l.IngredientID, &l.IngredientCode, &l.IngredientName, &l.LocationID,
			&l.TotalStock, &l.ActiveBatchCount, &l.ReorderLevel,
		); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
