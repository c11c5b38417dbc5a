package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/entity"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/repository"
)

// IngredientUseCase catálogo de ingredientes: identidad, unidad de medida y
// umbrales de reposición. La unidad es inmutable una vez existen lotes.
type IngredientUseCase struct {
	ingredientRepo repository.IngredientRepository
}

// NewIngredientUseCase construye el caso de uso.
func NewIngredientUseCase(ingredientRepo repository.IngredientRepository) *IngredientUseCase {
	return &IngredientUseCase{ingredientRepo: ingredientRepo}
}

// CreateIngredientInput parámetros de alta.
type CreateIngredientInput struct {
	Code            string
	Name            string
	Unit            string
	ReorderLevel    decimal.Decimal
	ReorderQuantity decimal.Decimal
}

// CreateIngredient da de alta un ingrediente activo con código único.
func (uc *IngredientUseCase) CreateIngredient(ctx context.Context, in CreateIngredientInput) (*entity.Ingredient, error) {
	if in.Code == "" || in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ReorderLevel.IsNegative() || in.ReorderQuantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.ingredientRepo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	ing := &entity.Ingredient{
		ID:              uuid.New().String(),
		Code:            in.Code,
		Name:            in.Name,
		Unit:            in.Unit,
		ReorderLevel:    in.ReorderLevel,
		ReorderQuantity: in.ReorderQuantity,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.ingredientRepo.Create(ing); err != nil {
		return nil, err
	}
	return ing, nil
}

// GetIngredient obtiene un ingrediente por id.
func (uc *IngredientUseCase) GetIngredient(ctx context.Context, id string) (*entity.Ingredient, error) {
	ing, err := uc.ingredientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	return ing, nil
}

// ListIngredients listado paginado, opcionalmente solo activos.
func (uc *IngredientUseCase) ListIngredients(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.Ingredient, error) {
	return uc.ingredientRepo.List(activeOnly, limit, offset)
}

// UpdateIngredientInput campos actualizables.
type UpdateIngredientInput struct {
	ID              string
	Name            string
	Unit            string
	ReorderLevel    decimal.Decimal
	ReorderQuantity decimal.Decimal
}

// UpdateIngredient actualiza nombre, unidad y umbrales. Cambiar la unidad de
// medida con lotes existentes falla ErrUnitInUse: los lotes ya recibidos
// están expresados en la unidad original.
func (uc *IngredientUseCase) UpdateIngredient(ctx context.Context, in UpdateIngredientInput) (*entity.Ingredient, error) {
	if in.Name == "" || in.Unit == "" || in.ReorderLevel.IsNegative() || in.ReorderQuantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	ing, err := uc.ingredientRepo.GetByID(in.ID)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	if in.Unit != ing.Unit {
		has, err := uc.ingredientRepo.HasBatches(in.ID)
		if err != nil {
			return nil, err
		}
		if has {
			return nil, domain.ErrUnitInUse
		}
	}
	ing.Name = in.Name
	ing.Unit = in.Unit
	ing.ReorderLevel = in.ReorderLevel
	ing.ReorderQuantity = in.ReorderQuantity
	ing.UpdatedAt = time.Now()
	if err := uc.ingredientRepo.Update(ing); err != nil {
		return nil, err
	}
	return ing, nil
}

// DeactivateIngredient desactiva el ingrediente: rechaza nuevos lotes y
// consumos, pero conserva historial y lotes existentes para lectura.
func (uc *IngredientUseCase) DeactivateIngredient(ctx context.Context, id string) error {
	ing, err := uc.ingredientRepo.GetByID(id)
	if err != nil {
		return err
	}
	if ing == nil {
		return domain.ErrNotFound
	}
	return uc.ingredientRepo.SetActive(id, false)
}
