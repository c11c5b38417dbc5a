package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeConsumption = "consumption"
	MovementTypeWaste       = "waste"
	MovementTypeAdjustment  = "adjustment"
	MovementTypeTransferOut = "transfer_out"
	MovementTypeTransferIn  = "transfer_in"
)

// StockMovement registro inmutable de auditoría: un cambio de cantidad contra
// un lote concreto. Quantity lleva signo: negativo para salidas (consumo,
// merma, ajuste-, transfer_out), positivo para entradas (ajuste+, transfer_in).
type StockMovement struct {
	ID           string
	IngredientID string
	LocationID   string
	BatchID      string
	Type         string
	Quantity     decimal.Decimal
	UnitCost     decimal.Decimal // costo unitario del lote al momento del movimiento
	Reference    string          // id de orden o receta, código de razón, o id de traslado
	Notes        string
	CreatedBy    string
	CreatedAt    time.Time
}
