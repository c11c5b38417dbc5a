package repository

import "github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/entity"

// IngredientRepository define el puerto de persistencia del catálogo de
// ingredientes (DIP).
type IngredientRepository interface {
	Create(ingredient *entity.Ingredient) error
	GetByID(id string) (*entity.Ingredient, error)
	GetByCode(code string) (*entity.Ingredient, error)
	Update(ingredient *entity.Ingredient) error
	SetActive(id string, active bool) error
	List(activeOnly bool, limit, offset int) ([]*entity.Ingredient, error)
	// HasBatches indica si existe algún lote del ingrediente (la unidad de
	// medida queda bloqueada en ese caso).
	HasBatches(ingredientID string) (bool, error)
}
