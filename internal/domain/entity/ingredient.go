package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient representa un ingrediente controlado por inventario (multi-ubicación).
// Unit es inmutable una vez existe algún lote del ingrediente.
type Ingredient struct {
	ID              string
	Code            string // código único
	Name            string
	Unit            string // kg, g, l, ml, und...
	ReorderLevel    decimal.Decimal // umbral de stock bajo
	ReorderQuantity decimal.Decimal // cantidad sugerida de pedido
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
