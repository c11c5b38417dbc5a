package repository

import "github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/entity"

// StockLevelRepository define el puerto de lectura para agregados de stock.
// Solo consultas: sin bloqueos, apto para snapshots eventualmente consistentes.
type StockLevelRepository interface {
	// GetLevel agregado del par (ingrediente, ubicación); nil si el ingrediente no existe.
	GetLevel(ingredientID, locationID string) (*entity.StockLevel, error)
	// ListLowStock ingredientes activos de la ubicación con total ≤ reorder_level.
	ListLowStock(locationID string) ([]*entity.StockLevel, error)
}
