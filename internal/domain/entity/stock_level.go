package entity

import "github.com/shopspring/decimal"

// StockLevel agregado de solo lectura del stock de un ingrediente en una
// ubicación. Derivado de los lotes activos; nunca se materializa.
type StockLevel struct {
	IngredientID     string
	IngredientCode   string
	IngredientName   string
	LocationID       string
	TotalStock       decimal.Decimal
	ActiveBatchCount int
	ReorderLevel     decimal.Decimal
	IsLowStock       bool
}
