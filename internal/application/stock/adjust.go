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

// AdjustStockUseCase corrige stock manualmente. Delta negativo reutiliza el
// recorrido FIFO del motor; delta positivo crea un lote nuevo con received_at
// = ahora, de modo que se consume después de todo el stock más antiguo y no
// contamina las capas de costo previas.
type AdjustStockUseCase struct {
	engine *ConsumptionEngine
}

// NewAdjustStockUseCase construye el caso de uso sobre el motor compartido.
func NewAdjustStockUseCase(engine *ConsumptionEngine) *AdjustStockUseCase {
	return &AdjustStockUseCase{engine: engine}
}

// AdjustInput parámetros de un ajuste manual.
type AdjustInput struct {
	IngredientID string
	LocationID   string
	Delta        decimal.Decimal // con signo, distinto de cero
	ReasonCode   string          // razón libre: recount, correction...
	UserID       string
}

// AdjustStock aplica el ajuste. Delta negativo tolera faltante igual que el
// consumo (descuenta lo disponible, Shortfall=true). Delta positivo toma como
// costo unitario el del lote activo recibido más recientemente, o cero si no
// existe ninguno.
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, in AdjustInput) (*entity.AdjustmentRecord, error) {
	if in.Delta.IsZero() {
		return nil, domain.ErrInvalidQuantity
	}
	if in.LocationID == "" || in.ReasonCode == "" || in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.engine.checkIngredient(in.IngredientID); err != nil {
		return nil, err
	}

	now := time.Now()
	if in.Delta.IsPositive() {
		return uc.adjustUp(ctx, in, now)
	}
	return uc.adjustDown(ctx, in, now)
}

// adjustUp crea un lote nuevo por |delta| al costo del último lote recibido.
func (uc *AdjustStockUseCase) adjustUp(ctx context.Context, in AdjustInput, now time.Time) (*entity.AdjustmentRecord, error) {
	var record *entity.AdjustmentRecord
	err := uc.engine.txRunner.Run(ctx, func(
		batchRepo repository.StockBatchRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		last, err := batchRepo.MostRecentReceived(in.IngredientID, in.LocationID)
		if err != nil {
			return err
		}
		unitCost := decimal.Zero
		if last != nil {
			unitCost = last.UnitCost
		}
		batch := &entity.StockBatch{
			ID:                uuid.New().String(),
			IngredientID:      in.IngredientID,
			LocationID:        in.LocationID,
			InitialQuantity:   in.Delta,
			RemainingQuantity: in.Delta,
			UnitCost:          unitCost,
			ReceivedAt:        now,
			Status:            entity.BatchStatusActive,
			CreatedAt:         now,
		}
		if err := batchRepo.Create(batch); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			IngredientID: in.IngredientID,
			LocationID:   in.LocationID,
			BatchID:      batch.ID,
			Type:         entity.MovementTypeAdjustment,
			Quantity:     in.Delta,
			UnitCost:     unitCost,
			Reference:    in.ReasonCode,
			CreatedBy:    in.UserID,
			CreatedAt:    now,
		}
		if err := movementRepo.Create(mov); err != nil {
			return err
		}
		record = &entity.AdjustmentRecord{
			ID:           uuid.New().String(),
			IngredientID: in.IngredientID,
			LocationID:   in.LocationID,
			Delta:        in.Delta,
			Applied:      in.Delta,
			TotalCost:    in.Delta.Mul(unitCost),
			ReasonCode:   in.ReasonCode,
			BatchID:      batch.ID,
			CreatedBy:    in.UserID,
			CreatedAt:    now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// adjustDown descuenta |delta| en orden FIFO, tolerando faltante.
func (uc *AdjustStockUseCase) adjustDown(ctx context.Context, in AdjustInput, now time.Time) (*entity.AdjustmentRecord, error) {
	var res *ConsumptionResult
	err := uc.engine.txRunner.Run(ctx, func(
		batchRepo repository.StockBatchRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		r, err := uc.engine.applyFIFO(batchRepo, movementRepo, fifoRequest{
			ingredientID: in.IngredientID,
			locationID:   in.LocationID,
			quantity:     in.Delta.Neg(),
			movementType: entity.MovementTypeAdjustment,
			reference:    in.ReasonCode,
			createdBy:    in.UserID,
			now:          now,
		})
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entity.AdjustmentRecord{
		ID:           uuid.New().String(),
		IngredientID: in.IngredientID,
		LocationID:   in.LocationID,
		Delta:        in.Delta,
		Applied:      res.Consumed.Neg(),
		TotalCost:    res.TotalCost,
		ReasonCode:   in.ReasonCode,
		Shortfall:    res.Shortfall,
		CreatedBy:    in.UserID,
		CreatedAt:    now,
	}, nil
}
