package repository

import (
	"time"

	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del registro de
// movimientos. Append-only: los movimientos nunca se actualizan ni borran.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByIngredient(ingredientID, locationID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByBatch(batchID string) ([]*entity.StockMovement, error)
}
