package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Razones de merma (enumeración cerrada).
const (
	WasteReasonSpoilage = "spoilage"
	WasteReasonDamaged  = "damaged"
	WasteReasonExpired  = "expired"
	WasteReasonTheft    = "theft"
	WasteReasonOther    = "other"
)

// ValidWasteReason verifica pertenencia a la enumeración de razones de merma.
func ValidWasteReason(reason string) bool {
	switch reason {
	case WasteReasonSpoilage, WasteReasonDamaged, WasteReasonExpired, WasteReasonTheft, WasteReasonOther:
		return true
	default:
		return false
	}
}

// WasteRecord resultado de registrar una merma. La persistencia son los
// movimientos tipo waste; el record es la respuesta al caller.
type WasteRecord struct {
	ID           string
	IngredientID string
	LocationID   string
	Requested    decimal.Decimal
	Wasted       decimal.Decimal
	TotalCost    decimal.Decimal
	ReasonCode   string
	Notes        string
	Shortfall    bool
	CreatedAt    time.Time
}

// AdjustmentRecord resultado de un ajuste manual de stock (delta con signo).
type AdjustmentRecord struct {
	ID           string
	IngredientID string
	LocationID   string
	Delta        decimal.Decimal
	Applied      decimal.Decimal // cantidad efectivamente aplicada, con signo
	TotalCost    decimal.Decimal
	ReasonCode   string
	BatchID      string // lote creado cuando Delta > 0
	Shortfall    bool
	CreatedBy    string
	CreatedAt    time.Time
}

// TransferRecord resultado de un traslado entre ubicaciones (todo-o-nada).
type TransferRecord struct {
	ID             string
	IngredientID   string
	FromLocationID string
	ToLocationID   string
	Quantity       decimal.Decimal
	UnitCost       decimal.Decimal // promedio ponderado de las líneas consumidas en origen
	BatchID        string          // lote creado en destino
	CreatedBy      string
	CreatedAt      time.Time
}
