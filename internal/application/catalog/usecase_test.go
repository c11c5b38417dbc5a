package catalog_test

import (
	"context"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/application/catalog"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/entity"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake en memoria del repositorio de ingredientes
// ──────────────────────────────────────────────────────────────────────────────

type fakeIngredientRepo struct {
	ingredients map[string]entity.Ingredient
	withBatches map[string]bool // ids de ingredientes con lotes
}

var _ repository.IngredientRepository = (*fakeIngredientRepo)(nil)

func newFakeIngredientRepo() *fakeIngredientRepo {
	return &fakeIngredientRepo{
		ingredients: make(map[string]entity.Ingredient),
		withBatches: make(map[string]bool),
	}
}

func (r *fakeIngredientRepo) Create(ing *entity.Ingredient) error {
	for _, existing := range r.ingredients {
		if existing.Code == ing.Code {
			return domain.ErrDuplicate
		}
	}
	r.ingredients[ing.ID] = *ing
	return nil
}

func (r *fakeIngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	ing, ok := r.ingredients[id]
	if !ok {
		return nil, nil
	}
	cp := ing
	return &cp, nil
}

func (r *fakeIngredientRepo) GetByCode(code string) (*entity.Ingredient, error) {
	for _, ing := range r.ingredients {
		if ing.Code == code {
			cp := ing
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeIngredientRepo) Update(ing *entity.Ingredient) error {
	if _, ok := r.ingredients[ing.ID]; !ok {
		return domain.ErrNotFound
	}
	r.ingredients[ing.ID] = *ing
	return nil
}

func (r *fakeIngredientRepo) SetActive(id string, active bool) error {
	ing, ok := r.ingredients[id]
	if !ok {
		return domain.ErrNotFound
	}
	ing.Active = active
	r.ingredients[id] = ing
	return nil
}

func (r *fakeIngredientRepo) List(activeOnly bool, limit, offset int) ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	for _, ing := range r.ingredients {
		if activeOnly && !ing.Active {
			continue
		}
		cp := ing
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeIngredientRepo) HasBatches(ingredientID string) (bool, error) {
	return r.withBatches[ingredientID], nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: Alta normal de un ingrediente activo.
func TestCreateIngredient(t *testing.T) {
	repo := newFakeIngredientRepo()
	uc := catalog.NewIngredientUseCase(repo)

	ing, err := uc.CreateIngredient(context.Background(), catalog.CreateIngredientInput{
		Code:            "TOMATE",
		Name:            "Tomate chonto",
		Unit:            "kg",
		ReorderLevel:    dec("10"),
		ReorderQuantity: dec("25"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, ing.ID)
	assert.True(t, ing.Active, "los ingredientes nacen activos")
	assert.Equal(t, "kg", ing.Unit)
}

// Caso 2: El código es único.
func TestCreateIngredient_CodigoDuplicado(t *testing.T) {
	repo := newFakeIngredientRepo()
	uc := catalog.NewIngredientUseCase(repo)
	ctx := context.Background()

	_, err := uc.CreateIngredient(ctx, catalog.CreateIngredientInput{Code: "SAL", Name: "Sal", Unit: "g"})
	require.NoError(t, err)

	_, err = uc.CreateIngredient(ctx, catalog.CreateIngredientInput{Code: "SAL", Name: "Sal marina", Unit: "g"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Caso 3: Campos obligatorios y umbrales no negativos.
func TestCreateIngredient_Validaciones(t *testing.T) {
	uc := catalog.NewIngredientUseCase(newFakeIngredientRepo())
	ctx := context.Background()

	_, err := uc.CreateIngredient(ctx, catalog.CreateIngredientInput{Code: "", Name: "x", Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateIngredient(ctx, catalog.CreateIngredientInput{Code: "X", Name: "x", Unit: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateIngredient(ctx, catalog.CreateIngredientInput{Code: "X", Name: "x", Unit: "kg", ReorderLevel: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Caso 4: La unidad de medida es inmutable una vez existen lotes: las
// cantidades históricas están expresadas en la unidad original.
func TestUpdateIngredient_UnidadBloqueadaConLotes(t *testing.T) {
	repo := newFakeIngredientRepo()
	uc := catalog.NewIngredientUseCase(repo)
	ctx := context.Background()

	ing, err := uc.CreateIngredient(ctx, catalog.CreateIngredientInput{Code: "CAFE", Name: "Café", Unit: "kg"})
	require.NoError(t, err)
	repo.withBatches[ing.ID] = true

	_, err = uc.UpdateIngredient(ctx, catalog.UpdateIngredientInput{
		ID: ing.ID, Name: "Café", Unit: "g", ReorderLevel: dec("0"), ReorderQuantity: dec("0"),
	})
	assert.ErrorIs(t, err, domain.ErrUnitInUse)

	// Con la misma unidad, los demás campos sí cambian.
	updated, err := uc.UpdateIngredient(ctx, catalog.UpdateIngredientInput{
		ID: ing.ID, Name: "Café de origen", Unit: "kg", ReorderLevel: dec("5"), ReorderQuantity: dec("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Café de origen", updated.Name)
	assert.True(t, updated.ReorderLevel.Equal(dec("5")))
}

// Caso 5: Sin lotes, la unidad puede cambiar.
func TestUpdateIngredient_UnidadSinLotes(t *testing.T) {
	repo := newFakeIngredientRepo()
	uc := catalog.NewIngredientUseCase(repo)
	ctx := context.Background()

	ing, err := uc.CreateIngredient(ctx, catalog.CreateIngredientInput{Code: "MIEL", Name: "Miel", Unit: "kg"})
	require.NoError(t, err)

	updated, err := uc.UpdateIngredient(ctx, catalog.UpdateIngredientInput{
		ID: ing.ID, Name: "Miel", Unit: "l", ReorderLevel: dec("0"), ReorderQuantity: dec("0"),
	})
	require.NoError(t, err)
	assert.Equal(t, "l", updated.Unit)
}

// Caso 6: Desactivar conserva el registro; el listado activo lo excluye.
func TestDeactivateIngredient(t *testing.T) {
	repo := newFakeIngredientRepo()
	uc := catalog.NewIngredientUseCase(repo)
	ctx := context.Background()

	ing, err := uc.CreateIngredient(ctx, catalog.CreateIngredientInput{Code: "UVA", Name: "Uva", Unit: "kg"})
	require.NoError(t, err)

	require.NoError(t, uc.DeactivateIngredient(ctx, ing.ID))

	got, err := uc.GetIngredient(ctx, ing.ID)
	require.NoError(t, err, "el ingrediente desactivado sigue siendo legible")
	assert.False(t, got.Active)

	actives, err := uc.ListIngredients(ctx, true, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, actives)

	assert.ErrorIs(t, uc.DeactivateIngredient(ctx, "no-existe"), domain.ErrNotFound)
}
