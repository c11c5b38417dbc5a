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

// WasteRecorderUseCase registra mermas reutilizando el recorrido FIFO del
// motor de consumo, etiquetando los movimientos como waste.
type WasteRecorderUseCase struct {
	engine *ConsumptionEngine
}

// NewWasteRecorderUseCase construye el caso de uso sobre el motor compartido.
func NewWasteRecorderUseCase(engine *ConsumptionEngine) *WasteRecorderUseCase {
	return &WasteRecorderUseCase{engine: engine}
}

// WasteInput parámetros de una merma.
type WasteInput struct {
	IngredientID string
	LocationID   string
	Quantity     decimal.Decimal
	ReasonCode   string // spoilage, damaged, expired, theft, other
	Notes        string
}

// RecordWaste descuenta la merma en orden FIFO. Tolera faltante igual que el
// consumo ordinario: descuenta lo disponible y marca Shortfall.
func (uc *WasteRecorderUseCase) RecordWaste(ctx context.Context, in WasteInput) (*entity.WasteRecord, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	if in.LocationID == "" || !entity.ValidWasteReason(in.ReasonCode) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.engine.checkIngredient(in.IngredientID); err != nil {
		return nil, err
	}

	now := time.Now()
	var res *ConsumptionResult
	err := uc.engine.txRunner.Run(ctx, func(
		batchRepo repository.StockBatchRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		r, err := uc.engine.applyFIFO(batchRepo, movementRepo, fifoRequest{
			ingredientID: in.IngredientID,
			locationID:   in.LocationID,
			quantity:     in.Quantity,
			movementType: entity.MovementTypeWaste,
			reference:    in.ReasonCode,
			notes:        in.Notes,
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
	return &entity.WasteRecord{
		ID:           uuid.New().String(),
		IngredientID: in.IngredientID,
		LocationID:   in.LocationID,
		Requested:    in.Quantity,
		Wasted:       res.Consumed,
		TotalCost:    res.TotalCost,
		ReasonCode:   in.ReasonCode,
		Notes:        in.Notes,
		Shortfall:    res.Shortfall,
		CreatedAt:    now,
	}, nil
}
