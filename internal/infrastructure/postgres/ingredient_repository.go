package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/entity"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación de IngredientRepository sobre PostgreSQL
// (usable con pool o tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

const ingredientColumns = `id, code, name, unit, reorder_level, reorder_quantity, active, created_at, updated_at`

func scanIngredient(row pgx.Row) (*entity.Ingredient, error) {
	var i entity.Ingredient
	err := row.Scan(
		&i.ID, &i.Code, &i.Name, &i.Unit,
		&i.ReorderLevel, &i.ReorderQuantity, &i.Active,
		&i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create persiste un ingrediente nuevo. Código duplicado -> ErrDuplicate.
func (r *IngredientRepo) Create(ingredient *entity.Ingredient) error {
	query := `
		INSERT INTO ingredients (id, code, name, unit, reorder_level, reorder_quantity, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		ingredient.ID, ingredient.Code, ingredient.Name, ingredient.Unit,
		ingredient.ReorderLevel, ingredient.ReorderQuantity, ingredient.Active,
		ingredient.CreatedAt, ingredient.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create ingredient: %w", err)
	}
	return nil
}

// GetByID obtiene un ingrediente por id; nil si no existe.
func (r *IngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1`
	i, err := scanIngredient(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return i, nil
}

// GetByCode obtiene un ingrediente por código único; nil si no existe.
func (r *IngredientRepo) GetByCode(code string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE code = $1`
	i, err := scanIngredient(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient by code: %w", err)
	}
	return i, nil
}

// Update actualiza nombre, unidad y umbrales de reposición.
func (r *IngredientRepo) Update(ingredient *entity.Ingredient) error {
	query := `
		UPDATE ingredients
		SET name = $2, unit = $3, reorder_level = $4, reorder_quantity = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		ingredient.ID, ingredient.Name, ingredient.Unit,
		ingredient.ReorderLevel, ingredient.ReorderQuantity, ingredient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}
	return nil
}

// SetActive activa o desactiva un ingrediente.
func (r *IngredientRepo) SetActive(id string, active bool) error {
	query := `UPDATE ingredients SET active = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, active)
	if err != nil {
		return fmt.Errorf("set ingredient active: %w", err)
	}
	return nil
}

// List listado paginado de ingredientes por código ascendente.
func (r *IngredientRepo) List(activeOnly bool, limit, offset int) ([]*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ingredient
	for rows.Next() {
		i, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

// HasBatches indica si existe algún lote del ingrediente (cualquier estado).
func (r *IngredientRepo) HasBatches(ingredientID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM stock_batches WHERE ingredient_id = $1)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, ingredientID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check ingredient batches: %w", err)
	}
	return exists, nil
}
