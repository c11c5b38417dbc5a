package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un lote de stock. Active -> Depleted es terminal; un lote nunca
// vuelve a Active (un ajuste positivo crea un lote nuevo).
const (
	BatchStatusActive   = "active"
	BatchStatusDepleted = "depleted"
)

// StockBatch representa una recepción discreta de stock con su propia cantidad
// y costo unitario (valoración por capas, no promedio). El orden FIFO lo define
// received_at ascendente con desempate por id. Append-only: solo mutan
// RemainingQuantity y Status, y únicamente dentro de una transacción del motor
// de consumo o del traslado.
type StockBatch struct {
	ID                string
	IngredientID      string
	LocationID        string
	BatchNumber       string // número de lote del proveedor (opcional)
	InitialQuantity   decimal.Decimal
	RemainingQuantity decimal.Decimal
	UnitCost          decimal.Decimal
	ReceivedAt        time.Time
	ExpiryDate        *time.Time
	Status            string
	CreatedAt         time.Time
}

// IsExpired indica si el lote está vencido respecto a now. Es una propiedad
// derivada de lectura: no bloquea el consumo ni fuerza transición de estado.
func (b *StockBatch) IsExpired(now time.Time) bool {
	return b.ExpiryDate != nil && !b.ExpiryDate.After(now)
}
