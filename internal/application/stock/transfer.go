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

// TransferUseCase traslada stock entre ubicaciones como una única operación
// atómica: consumo FIFO en origen (transfer_out) y alta de un lote en destino
// (transfer_in) al promedio ponderado de las líneas consumidas. A diferencia
// del consumo ordinario, un faltante aborta todo con ErrInsufficientStock y
// ningún lado queda mutado.
type TransferUseCase struct {
	engine *ConsumptionEngine
}

// NewTransferUseCase construye el caso de uso sobre el motor compartido.
func NewTransferUseCase(engine *ConsumptionEngine) *TransferUseCase {
	return &TransferUseCase{engine: engine}
}

// TransferInput parámetros de un traslado.
type TransferInput struct {
	IngredientID   string
	FromLocationID string
	ToLocationID   string
	Quantity       decimal.Decimal
	UserID         string
}

// Transfer ejecuta el traslado todo-o-nada dentro de una sola transacción.
func (uc *TransferUseCase) Transfer(ctx context.Context, in TransferInput) (*entity.TransferRecord, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	if in.FromLocationID == "" || in.ToLocationID == "" || in.FromLocationID == in.ToLocationID || in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.engine.checkIngredient(in.IngredientID); err != nil {
		return nil, err
	}

	now := time.Now()
	transferID := uuid.New().String()
	var record *entity.TransferRecord
	err := uc.engine.txRunner.Run(ctx, func(
		batchRepo repository.StockBatchRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		res, err := uc.engine.applyFIFO(batchRepo, movementRepo, fifoRequest{
			ingredientID:    in.IngredientID,
			locationID:      in.FromLocationID,
			quantity:        in.Quantity,
			movementType:    entity.MovementTypeTransferOut,
			reference:       transferID,
			createdBy:       in.UserID,
			failOnShortfall: true,
			now:             now,
		})
		if err != nil {
			return err
		}
		// Origen satisfizo todo: promedio ponderado de las capas consumidas.
		unitCost := decimal.Zero
		if res.Consumed.IsPositive() {
			unitCost = res.TotalCost.Div(res.Consumed)
		}
		dest := &entity.StockBatch{
			ID:                uuid.New().String(),
			IngredientID:      in.IngredientID,
			LocationID:        in.ToLocationID,
			InitialQuantity:   in.Quantity,
			RemainingQuantity: in.Quantity,
			UnitCost:          unitCost,
			ReceivedAt:        now,
			Status:            entity.BatchStatusActive,
			CreatedAt:         now,
		}
		if err := batchRepo.Create(dest); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			IngredientID: in.IngredientID,
			LocationID:   in.ToLocationID,
			BatchID:      dest.ID,
			Type:         entity.MovementTypeTransferIn,
			Quantity:     in.Quantity,
			UnitCost:     unitCost,
			Reference:    transferID,
			CreatedBy:    in.UserID,
			CreatedAt:    now,
		}
		if err := movementRepo.Create(mov); err != nil {
			return err
		}
		record = &entity.TransferRecord{
			ID:             transferID,
			IngredientID:   in.IngredientID,
			FromLocationID: in.FromLocationID,
			ToLocationID:   in.ToLocationID,
			Quantity:       in.Quantity,
			UnitCost:       unitCost,
			BatchID:        dest.ID,
			CreatedBy:      in.UserID,
			CreatedAt:      now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}
