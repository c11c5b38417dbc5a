package stock_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appstock "github.com/dave-hillier/darkvelocity-pos-sub009/internal/application/stock"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/entity"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/repository"
	domstock "github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/stock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore guarda los valores canónicos; los repos devuelven copias. El
// TxRunner toma el mutex del store durante toda la función, reproduciendo la
// serialización por par que en PostgreSQL dan las filas bloqueadas con
// SELECT FOR UPDATE, y restaura un snapshot si fn devuelve error (rollback).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu          sync.Mutex
	ingredients map[string]entity.Ingredient
	batches     map[string]entity.StockBatch
	movements   []entity.StockMovement
}

func newMemStore() *memStore {
	return &memStore{
		ingredients: make(map[string]entity.Ingredient),
		batches:     make(map[string]entity.StockBatch),
	}
}

func (s *memStore) snapshot() ([]entity.StockBatch, []entity.StockMovement) {
	batches := make([]entity.StockBatch, 0, len(s.batches))
	for _, b := range s.batches {
		batches = append(batches, b)
	}
	movements := make([]entity.StockMovement, len(s.movements))
	copy(movements, s.movements)
	return batches, movements
}

func (s *memStore) restore(batches []entity.StockBatch, movements []entity.StockMovement) {
	s.batches = make(map[string]entity.StockBatch, len(batches))
	for _, b := range batches {
		s.batches[b.ID] = b
	}
	s.movements = movements
}

// listActiveLocked lotes activos del par en orden FIFO. Requiere mu tomado.
func (s *memStore) listActiveLocked(ingredientID, locationID string) []*entity.StockBatch {
	var out []*entity.StockBatch
	for _, b := range s.batches {
		if b.IngredientID == ingredientID && b.LocationID == locationID && b.Status == entity.BatchStatusActive {
			cp := b
			out = append(out, &cp)
		}
	}
	domstock.SortFIFO(out)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// memIngredientRepo
// ──────────────────────────────────────────────────────────────────────────────

type memIngredientRepo struct{ s *memStore }

var _ repository.IngredientRepository = (*memIngredientRepo)(nil)

func (r *memIngredientRepo) Create(ing *entity.Ingredient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.ingredients {
		if existing.Code == ing.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.ingredients[ing.ID] = *ing
	return nil
}

func (r *memIngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ing, ok := r.s.ingredients[id]
	if !ok {
		return nil, nil
	}
	cp := ing
	return &cp, nil
}

func (r *memIngredientRepo) GetByCode(code string) (*entity.Ingredient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ing := range r.s.ingredients {
		if ing.Code == code {
			cp := ing
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memIngredientRepo) Update(ing *entity.Ingredient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.ingredients[ing.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.ingredients[ing.ID] = *ing
	return nil
}

func (r *memIngredientRepo) SetActive(id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ing, ok := r.s.ingredients[id]
	if !ok {
		return domain.ErrNotFound
	}
	ing.Active = active
	r.s.ingredients[id] = ing
	return nil
}

func (r *memIngredientRepo) List(activeOnly bool, limit, offset int) ([]*entity.Ingredient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Ingredient
	for _, ing := range r.s.ingredients {
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

func (r *memIngredientRepo) HasBatches(ingredientID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.batches {
		if b.IngredientID == ingredientID {
			return true, nil
		}
	}
	return false, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// memBatchRepo / memMovementRepo
//
// locking=false para los repos que el TxRunner entrega dentro de fn (el mutex
// ya está tomado); locking=true para los repos de solo lectura atados al "pool".
// ──────────────────────────────────────────────────────────────────────────────

type memBatchRepo struct {
	s       *memStore
	locking bool
}

var _ repository.StockBatchRepository = (*memBatchRepo)(nil)

func (r *memBatchRepo) lock() func() {
	if !r.locking {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *memBatchRepo) Create(batch *entity.StockBatch) error {
	defer r.lock()()
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	r.s.batches[batch.ID] = *batch
	return nil
}

func (r *memBatchRepo) GetByID(id string) (*entity.StockBatch, error) {
	defer r.lock()()
	b, ok := r.s.batches[id]
	if !ok {
		return nil, nil
	}
	cp := b
	return &cp, nil
}

func (r *memBatchRepo) ListActive(ingredientID, locationID string) ([]*entity.StockBatch, error) {
	defer r.lock()()
	return r.s.listActiveLocked(ingredientID, locationID), nil
}

func (r *memBatchRepo) ListActiveForUpdate(ingredientID, locationID string) ([]*entity.StockBatch, error) {
	defer r.lock()()
	return r.s.listActiveLocked(ingredientID, locationID), nil
}

func (r *memBatchRepo) MostRecentReceived(ingredientID, locationID string) (*entity.StockBatch, error) {
	defer r.lock()()
	batches := r.s.listActiveLocked(ingredientID, locationID)
	if len(batches) == 0 {
		return nil, nil
	}
	return batches[len(batches)-1], nil
}

func (r *memBatchRepo) UpdateRemaining(batch *entity.StockBatch) error {
	defer r.lock()()
	stored, ok := r.s.batches[batch.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.RemainingQuantity = batch.RemainingQuantity
	stored.Status = batch.Status
	r.s.batches[batch.ID] = stored
	return nil
}

func (r *memBatchRepo) SumRemaining(ingredientID, locationID string) (decimal.Decimal, error) {
	defer r.lock()()
	total := decimal.Zero
	for _, b := range r.s.listActiveLocked(ingredientID, locationID) {
		total = total.Add(b.RemainingQuantity)
	}
	return total, nil
}

func (r *memBatchRepo) ListExpiring(locationID string, from, until time.Time) ([]*entity.StockBatch, error) {
	defer r.lock()()
	var out []*entity.StockBatch
	for _, b := range r.s.batches {
		if b.LocationID != locationID || b.Status != entity.BatchStatusActive || b.ExpiryDate == nil {
			continue
		}
		if b.ExpiryDate.Before(from) || b.ExpiryDate.After(until) {
			continue
		}
		cp := b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ExpiryDate.Equal(*out[j].ExpiryDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].ExpiryDate.Before(*out[j].ExpiryDate)
	})
	return out, nil
}

type memMovementRepo struct {
	s       *memStore
	locking bool
}

var _ repository.StockMovementRepository = (*memMovementRepo)(nil)

func (r *memMovementRepo) lock() func() {
	if !r.locking {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *memMovementRepo) Create(mov *entity.StockMovement) error {
	defer r.lock()()
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	r.s.movements = append(r.s.movements, *mov)
	return nil
}

func (r *memMovementRepo) ListByIngredient(ingredientID, locationID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	defer r.lock()()
	var out []*entity.StockMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if m.IngredientID != ingredientID {
			continue
		}
		if locationID != "" && m.LocationID != locationID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		cp := m
		out = append(out, &cp)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memMovementRepo) ListByBatch(batchID string) ([]*entity.StockMovement, error) {
	defer r.lock()()
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.BatchID == batchID {
			cp := m
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// memTxRunner
// ──────────────────────────────────────────────────────────────────────────────

type memTxRunner struct{ s *memStore }

var _ appstock.TxRunner = (*memTxRunner)(nil)

func (tr *memTxRunner) Run(ctx context.Context, fn func(
	batchRepo repository.StockBatchRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tr.s.mu.Lock()
	defer tr.s.mu.Unlock()

	batches, movements := tr.s.snapshot()
	err := fn(&memBatchRepo{s: tr.s}, &memMovementRepo{s: tr.s})
	if err != nil {
		tr.s.restore(batches, movements)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// memLevelRepo
// ──────────────────────────────────────────────────────────────────────────────

type memLevelRepo struct{ s *memStore }

var _ repository.StockLevelRepository = (*memLevelRepo)(nil)

func (r *memLevelRepo) levelLocked(ing entity.Ingredient, locationID string) *entity.StockLevel {
	total := decimal.Zero
	count := 0
	for _, b := range r.s.batches {
		if b.IngredientID == ing.ID && b.LocationID == locationID && b.Status == entity.BatchStatusActive {
			total = total.Add(b.RemainingQuantity)
			count++
		}
	}
	return &entity.StockLevel{
		IngredientID:     ing.ID,
		IngredientCode:   ing.Code,
		IngredientName:   ing.Name,
		LocationID:       locationID,
		TotalStock:       total,
		ActiveBatchCount: count,
		ReorderLevel:     ing.ReorderLevel,
	}
}

func (r *memLevelRepo) GetLevel(ingredientID, locationID string) (*entity.StockLevel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ing, ok := r.s.ingredients[ingredientID]
	if !ok {
		return nil, nil
	}
	return r.levelLocked(ing, locationID), nil
}

func (r *memLevelRepo) ListLowStock(locationID string) ([]*entity.StockLevel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockLevel
	for _, ing := range r.s.ingredients {
		if !ing.Active {
			continue
		}
		level := r.levelLocked(ing, locationID)
		if level.TotalStock.LessThanOrEqual(ing.ReorderLevel) {
			out = append(out, level)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IngredientCode < out[j].IngredientCode })
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store     *memStore
	ingRepo   *memIngredientRepo
	batchRepo *memBatchRepo
	movRepo   *memMovementRepo
	levelRepo *memLevelRepo
	txRunner  *memTxRunner

	engine    *appstock.ConsumptionEngine
	ledger    *appstock.BatchLedgerUseCase
	waste     *appstock.WasteRecorderUseCase
	adjust    *appstock.AdjustStockUseCase
	transfer  *appstock.TransferUseCase
	levels    *appstock.StockLevelUseCase
	movements *appstock.MovementLogUseCase
}

func newFixture() *fixture {
	store := newMemStore()
	f := &fixture{
		store:     store,
		ingRepo:   &memIngredientRepo{s: store},
		batchRepo: &memBatchRepo{s: store, locking: true},
		movRepo:   &memMovementRepo{s: store, locking: true},
		levelRepo: &memLevelRepo{s: store},
		txRunner:  &memTxRunner{s: store},
	}
	f.engine = appstock.NewConsumptionEngine(f.txRunner, f.ingRepo)
	f.ledger = appstock.NewBatchLedgerUseCase(f.txRunner, f.ingRepo, f.batchRepo)
	f.waste = appstock.NewWasteRecorderUseCase(f.engine)
	f.adjust = appstock.NewAdjustStockUseCase(f.engine)
	f.transfer = appstock.NewTransferUseCase(f.engine)
	f.levels = appstock.NewStockLevelUseCase(f.levelRepo, f.batchRepo)
	f.movements = appstock.NewMovementLogUseCase(f.movRepo)
	return f
}

// seedIngredient da de alta un ingrediente activo y devuelve su id.
func (f *fixture) seedIngredient(code string, reorderLevel string) string {
	ing := &entity.Ingredient{
		ID:           uuid.New().String(),
		Code:         code,
		Name:         "Ingrediente " + code,
		Unit:         "kg",
		ReorderLevel: decimal.RequireFromString(reorderLevel),
		Active:       true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.store.mu.Lock()
	f.store.ingredients[ing.ID] = *ing
	f.store.mu.Unlock()
	return ing.ID
}

// seedBatch inserta un lote directamente en el store.
func (f *fixture) seedBatch(id, ingredientID, locationID string, received time.Time, qty, unitCost string) {
	q := decimal.RequireFromString(qty)
	f.store.mu.Lock()
	f.store.batches[id] = entity.StockBatch{
		ID:                id,
		IngredientID:      ingredientID,
		LocationID:        locationID,
		InitialQuantity:   q,
		RemainingQuantity: q,
		UnitCost:          decimal.RequireFromString(unitCost),
		ReceivedAt:        received,
		Status:            entity.BatchStatusActive,
		CreatedAt:         received,
	}
	f.store.mu.Unlock()
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var fifoBase = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
