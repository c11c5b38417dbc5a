package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/entity"
)

// CreateIngredientRequest body para POST /api/ingredients.
type CreateIngredientRequest struct {
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	ReorderLevel    decimal.Decimal `json:"reorder_level"`
	ReorderQuantity decimal.Decimal `json:"reorder_quantity"`
}

// UpdateIngredientRequest body para PUT /api/ingredients/:id.
type UpdateIngredientRequest struct {
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	ReorderLevel    decimal.Decimal `json:"reorder_level"`
	ReorderQuantity decimal.Decimal `json:"reorder_quantity"`
}

// IngredientResponse representación HTTP de un ingrediente.
type IngredientResponse struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	ReorderLevel    decimal.Decimal `json:"reorder_level"`
	ReorderQuantity decimal.Decimal `json:"reorder_quantity"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// FromIngredient mapea la entidad a su representación HTTP.
func FromIngredient(i *entity.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:              i.ID,
		Code:            i.Code,
		Name:            i.Name,
		Unit:            i.Unit,
		ReorderLevel:    i.ReorderLevel,
		ReorderQuantity: i.ReorderQuantity,
		Active:          i.Active,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}
