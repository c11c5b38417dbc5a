package stock

import (
	"context"
	"time"

	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/entity"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/repository"
)

// StockLevelUseCase agregados de solo lectura sobre el libro de lotes:
// totales, banderas de stock bajo y lotes por vencer. No toma bloqueos;
// apto para snapshots eventualmente consistentes.
type StockLevelUseCase struct {
	levelRepo repository.StockLevelRepository
	batchRepo repository.StockBatchRepository
}

// NewStockLevelUseCase construye el caso de uso.
func NewStockLevelUseCase(
	levelRepo repository.StockLevelRepository,
	batchRepo repository.StockBatchRepository,
) *StockLevelUseCase {
	return &StockLevelUseCase{levelRepo: levelRepo, batchRepo: batchRepo}
}

// GetStockLevel total, conteo de lotes activos y bandera de stock bajo
// (total ≤ reorder_level) para el par (ingrediente, ubicación).
func (uc *StockLevelUseCase) GetStockLevel(ctx context.Context, ingredientID, locationID string) (*entity.StockLevel, error) {
	if ingredientID == "" || locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	level, err := uc.levelRepo.GetLevel(ingredientID, locationID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, domain.ErrNotFound
	}
	level.IsLowStock = level.TotalStock.LessThanOrEqual(level.ReorderLevel)
	return level, nil
}

// ListLowStock ingredientes de la ubicación con total ≤ reorder_level.
func (uc *StockLevelUseCase) ListLowStock(ctx context.Context, locationID string) ([]*entity.StockLevel, error) {
	if locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	levels, err := uc.levelRepo.ListLowStock(locationID)
	if err != nil {
		return nil, err
	}
	for _, l := range levels {
		l.IsLowStock = true
	}
	return levels, nil
}

// ListExpiringBatches lotes activos con vencimiento en [ahora, ahora+withinDays],
// ascendente por fecha de vencimiento.
func (uc *StockLevelUseCase) ListExpiringBatches(ctx context.Context, locationID string, withinDays int) ([]*entity.StockBatch, error) {
	if locationID == "" || withinDays < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	until := now.AddDate(0, 0, withinDays)
	return uc.batchRepo.ListExpiring(locationID, now, until)
}
