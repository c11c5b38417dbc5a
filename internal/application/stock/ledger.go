package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/entity"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/repository"
)

// BatchLedgerUseCase da de alta lotes en el libro (aceptación de entrega o
// entrada manual) y expone las lecturas ordenadas que definen el FIFO.
type BatchLedgerUseCase struct {
	txRunner       TxRunner
	ingredientRepo repository.IngredientRepository
	batchRepo      repository.StockBatchRepository // lecturas sin bloqueo (pool)
}

// NewBatchLedgerUseCase construye el caso de uso.
func NewBatchLedgerUseCase(
	txRunner TxRunner,
	ingredientRepo repository.IngredientRepository,
	batchRepo repository.StockBatchRepository,
) *BatchLedgerUseCase {
	return &BatchLedgerUseCase{txRunner: txRunner, ingredientRepo: ingredientRepo, batchRepo: batchRepo}
}

// ReceiveBatchInput parámetros de alta de un lote.
type ReceiveBatchInput struct {
	IngredientID string
	LocationID   string
	Quantity     decimal.Decimal
	UnitCost     decimal.Decimal
	ReceivedAt   time.Time // cero = ahora
	BatchNumber  string
	ExpiryDate   *time.Time
}

// ReceiveBatch crea un lote nuevo con initial = remaining = cantidad recibida.
// Falla ErrInvalidIngredient con ingrediente desconocido o inactivo,
// ErrInvalidQuantity con cantidad no positiva y ErrInvalidCost con costo negativo.
func (uc *BatchLedgerUseCase) ReceiveBatch(ctx context.Context, in ReceiveBatchInput) (*entity.StockBatch, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	if in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidCost
	}
	if in.LocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	ing, err := uc.ingredientRepo.GetByID(in.IngredientID)
	if err != nil {
		return nil, err
	}
	if ing == nil || !ing.Active {
		return nil, domain.ErrInvalidIngredient
	}

	now := time.Now()
	receivedAt := in.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = now
	}
	batch := &entity.StockBatch{
		ID:                uuid.New().String(),
		IngredientID:      in.IngredientID,
		LocationID:        in.LocationID,
		BatchNumber:       in.BatchNumber,
		InitialQuantity:   in.Quantity,
		RemainingQuantity: in.Quantity,
		UnitCost:          in.UnitCost,
		ReceivedAt:        receivedAt,
		ExpiryDate:        in.ExpiryDate,
		Status:            entity.BatchStatusActive,
		CreatedAt:         now,
	}
	err = uc.txRunner.Run(ctx, func(
		batchRepo repository.StockBatchRepository,
		_ repository.StockMovementRepository,
	) error {
		return batchRepo.Create(batch)
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// ListActiveBatches lotes activos del par en orden FIFO (received_at asc, id asc).
func (uc *BatchLedgerUseCase) ListActiveBatches(ctx context.Context, ingredientID, locationID string) ([]*entity.StockBatch, error) {
	if ingredientID == "" || locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.batchRepo.ListActive(ingredientID, locationID)
}

// GetRemaining suma de remaining_quantity sobre los lotes activos del par.
func (uc *BatchLedgerUseCase) GetRemaining(ctx context.Context, ingredientID, locationID string) (decimal.Decimal, error) {
	if ingredientID == "" || locationID == "" {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return uc.batchRepo.SumRemaining(ingredientID, locationID)
}
