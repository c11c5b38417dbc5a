package stock

import (
	"context"
	"time"

	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/entity"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/repository"
)

// MovementLogUseCase lectura del registro de movimientos para el dominio de
// reportes (consumo, merma, varianza). Solo lectura: el registro es append-only.
type MovementLogUseCase struct {
	movementRepo repository.StockMovementRepository
}

// NewMovementLogUseCase construye el caso de uso.
func NewMovementLogUseCase(movementRepo repository.StockMovementRepository) *MovementLogUseCase {
	return &MovementLogUseCase{movementRepo: movementRepo}
}

// ListMovements movimientos de un ingrediente, opcionalmente filtrados por
// ubicación y rango de fechas, del más reciente al más antiguo.
func (uc *MovementLogUseCase) ListMovements(ctx context.Context, ingredientID, locationID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if ingredientID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movementRepo.ListByIngredient(ingredientID, locationID, from, to, limit, offset)
}

// ListBatchMovements todos los movimientos de un lote concreto.
func (uc *MovementLogUseCase) ListBatchMovements(ctx context.Context, batchID string) ([]*entity.StockMovement, error) {
	if batchID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movementRepo.ListByBatch(batchID)
}
