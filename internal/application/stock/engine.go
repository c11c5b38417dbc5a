package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/entity"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/repository"
	domstock "github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/stock"
)

// ConsumptionEngine descuenta stock contra lotes en orden estricto FIFO y
// registra los movimientos de auditoría. Es el único camino de mutación de
// lotes existentes; consumo, merma, ajuste negativo y traslado comparten su
// recorrido (applyFIFO).
type ConsumptionEngine struct {
	txRunner       TxRunner
	ingredientRepo repository.IngredientRepository
}

// NewConsumptionEngine construye el motor de consumo.
func NewConsumptionEngine(txRunner TxRunner, ingredientRepo repository.IngredientRepository) *ConsumptionEngine {
	return &ConsumptionEngine{txRunner: txRunner, ingredientRepo: ingredientRepo}
}

// ConsumeInput parámetros de un consumo ordinario (venta, receta).
type ConsumeInput struct {
	IngredientID string
	LocationID   string
	Quantity     decimal.Decimal
	Reference    string // id de orden o receta
}

// ConsumptionLine línea de asignación por lote dentro del resultado.
type ConsumptionLine struct {
	BatchID  string
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// ConsumptionResult resultado efímero de un consumo. No se persiste: la
// auditoría son los movimientos. Shortfall es un campo estructurado, no un
// error: el inventario nunca bloquea una venta.
type ConsumptionResult struct {
	Requested decimal.Decimal
	Consumed  decimal.Decimal
	TotalCost decimal.Decimal
	Lines     []ConsumptionLine
	Shortfall bool
}

// Consume descuenta Quantity del stock del par (ingrediente, ubicación) en
// orden FIFO, dentro de una transacción con las filas de lotes bloqueadas.
// Si el stock disponible no alcanza, la llamada igual tiene éxito: consume
// todo lo disponible y devuelve Shortfall=true con Consumed < Requested.
func (e *ConsumptionEngine) Consume(ctx context.Context, in ConsumeInput) (*ConsumptionResult, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	if in.LocationID == "" || in.Reference == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := e.checkIngredient(in.IngredientID); err != nil {
		return nil, err
	}

	var result *ConsumptionResult
	err := e.txRunner.Run(ctx, func(
		batchRepo repository.StockBatchRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		res, err := e.applyFIFO(batchRepo, movementRepo, fifoRequest{
			ingredientID: in.IngredientID,
			locationID:   in.LocationID,
			quantity:     in.Quantity,
			movementType: entity.MovementTypeConsumption,
			reference:    in.Reference,
			now:          time.Now(),
		})
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// checkIngredient valida que el ingrediente exista y esté activo.
func (e *ConsumptionEngine) checkIngredient(id string) error {
	if id == "" {
		return domain.ErrInvalidIngredient
	}
	ing, err := e.ingredientRepo.GetByID(id)
	if err != nil {
		return err
	}
	if ing == nil || !ing.Active {
		return domain.ErrInvalidIngredient
	}
	return nil
}

// fifoRequest parámetros del recorrido FIFO compartido por consumo, merma,
// ajuste negativo y traslado de salida.
type fifoRequest struct {
	ingredientID    string
	locationID      string
	quantity        decimal.Decimal
	movementType    string
	reference       string
	notes           string
	createdBy       string
	failOnShortfall bool // traslados: todo-o-nada
	now             time.Time
}

// applyFIFO núcleo compartido: bloquea los lotes activos del par (la frontera
// de concurrencia), planifica la asignación FIFO, descuenta cada lote tocado
// (depleted al llegar a cero) y registra un movimiento por lote al costo de
// ese lote. Con failOnShortfall, un faltante aborta la transacción sin mutar.
func (e *ConsumptionEngine) applyFIFO(
	batchRepo repository.StockBatchRepository,
	movementRepo repository.StockMovementRepository,
	req fifoRequest,
) (*ConsumptionResult, error) {
	batches, err := batchRepo.ListActiveForUpdate(req.ingredientID, req.locationID)
	if err != nil {
		return nil, err
	}
	plan := domstock.Allocate(batches, req.quantity)
	if req.failOnShortfall && plan.Shortfall {
		return nil, domain.ErrInsufficientStock
	}

	result := &ConsumptionResult{
		Requested: plan.Requested,
		Consumed:  plan.Allocated,
		TotalCost: plan.TotalCost,
		Shortfall: plan.Shortfall,
	}
	for _, line := range plan.Lines {
		b := line.Batch
		b.RemainingQuantity = b.RemainingQuantity.Sub(line.Quantity)
		if b.RemainingQuantity.IsZero() {
			b.Status = entity.BatchStatusDepleted
		}
		if err := batchRepo.UpdateRemaining(b); err != nil {
			return nil, err
		}
		mov := &entity.StockMovement{
			IngredientID: req.ingredientID,
			LocationID:   req.locationID,
			BatchID:      b.ID,
			Type:         req.movementType,
			Quantity:     line.Quantity.Neg(),
			UnitCost:     line.UnitCost,
			Reference:    req.reference,
			Notes:        req.notes,
			CreatedBy:    req.createdBy,
			CreatedAt:    req.now,
		}
		if err := movementRepo.Create(mov); err != nil {
			return nil, err
		}
		result.Lines = append(result.Lines, ConsumptionLine{
			BatchID:  b.ID,
			Quantity: line.Quantity,
			UnitCost: line.UnitCost,
		})
	}
	return result, nil
}
