package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appstock "github.com/dave-hillier/darkvelocity-pos-sub009/internal/application/stock"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests Transfer
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: Traslado exitoso: consumo FIFO en origen y un lote nuevo en destino
// al promedio ponderado de las capas consumidas (3×4 + 2×6) / 5 = 4.8.
func TestTransfer_Exitoso(t *testing.T) {
	f := newFixture()
	ingID := f.seedIngredient("ACEITE", "0")
	f.seedBatch("b1", ingID, "loc-1", fifoBase, "3", "4.00")
	f.seedBatch("b2", ingID, "loc-1", fifoBase.Add(time.Hour), "2", "6.00")

	rec, err := f.transfer.Transfer(context.Background(), appstock.TransferInput{
		IngredientID:   ingID,
		FromLocationID: "loc-1",
		ToLocationID:   "loc-2",
		Quantity:       dec("5"),
		UserID:         "user-1",
	})
	require.NoError(t, err)

	assert.True(t, rec.UnitCost.Equal(dec("4.8")), "promedio ponderado esperado 4.8, obtuvo %s", rec.UnitCost)

	// Origen vacío, destino con un lote por la cantidad completa.
	fromTotal, _ := f.batchRepo.SumRemaining(ingID, "loc-1")
	assert.True(t, fromTotal.IsZero())
	dest, err := f.batchRepo.GetByID(rec.BatchID)
	require.NoError(t, err)
	require.NotNil(t, dest)
	assert.Equal(t, "loc-2", dest.LocationID)
	assert.True(t, dest.RemainingQuantity.Equal(dec("5")))
	assert.True(t, dest.UnitCost.Equal(dec("4.8")))

	// Movimientos: transfer_out por lote consumido + un transfer_in, todos con
	// el id del traslado como referencia.
	movs, err := f.movements.ListMovements(context.Background(), ingID, "", nil, nil, 0, 0)
	require.NoError(t, err)
	var outs, ins int
	for _, m := range movs {
		assert.Equal(t, rec.ID, m.Reference)
		switch m.Type {
		case entity.MovementTypeTransferOut:
			outs++
			assert.True(t, m.Quantity.IsNegative())
		case entity.MovementTypeTransferIn:
			ins++
			assert.True(t, m.Quantity.Equal(dec("5")))
		}
	}
	assert.Equal(t, 2, outs)
	assert.Equal(t, 1, ins)
}

// Caso 2: Stock insuficiente en origen → ErrInsufficientStock y NINGÚN lado
// mutado. El traslado es la única operación todo-o-nada.
func TestTransfer_FaltanteAbortaTodo(t *testing.T) {
	f := newFixture()
	ingID := f.seedIngredient("VINAGRE", "0")
	f.seedBatch("b1", ingID, "loc-1", fifoBase, "30", "3.00")

	_, err := f.transfer.Transfer(context.Background(), appstock.TransferInput{
		IngredientID:   ingID,
		FromLocationID: "loc-1",
		ToLocationID:   "loc-2",
		Quantity:       dec("50"),
		UserID:         "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	fromTotal, _ := f.batchRepo.SumRemaining(ingID, "loc-1")
	assert.True(t, fromTotal.Equal(dec("30")), "el origen queda intacto")
	toTotal, _ := f.batchRepo.SumRemaining(ingID, "loc-2")
	assert.True(t, toTotal.IsZero(), "el destino queda intacto")

	movs, err := f.movements.ListMovements(context.Background(), ingID, "", nil, nil, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, movs, "un traslado abortado no deja movimientos")
}

// Caso 3: Origen y destino iguales, y demás validaciones.
func TestTransfer_Validaciones(t *testing.T) {
	f := newFixture()
	ingID := f.seedIngredient("SOJA", "0")
	ctx := context.Background()

	_, err := f.transfer.Transfer(ctx, appstock.TransferInput{IngredientID: ingID, FromLocationID: "loc-1", ToLocationID: "loc-1", Quantity: dec("1"), UserID: "u"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "origen = destino")

	_, err = f.transfer.Transfer(ctx, appstock.TransferInput{IngredientID: ingID, FromLocationID: "loc-1", ToLocationID: "loc-2", Quantity: dec("0"), UserID: "u"})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.transfer.Transfer(ctx, appstock.TransferInput{IngredientID: ingID, FromLocationID: "loc-1", ToLocationID: "loc-2", Quantity: dec("1"), UserID: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "usuario vacío")
}

// Caso 4: Trasladar exactamente todo el stock disponible es válido.
func TestTransfer_TodoElStock(t *testing.T) {
	f := newFixture()
	ingID := f.seedIngredient("MIEL", "0")
	f.seedBatch("b1", ingID, "loc-1", fifoBase, "7", "5.00")

	rec, err := f.transfer.Transfer(context.Background(), appstock.TransferInput{
		IngredientID:   ingID,
		FromLocationID: "loc-1",
		ToLocationID:   "loc-2",
		Quantity:       dec("7"),
		UserID:         "user-1",
	})
	require.NoError(t, err)
	assert.True(t, rec.UnitCost.Equal(dec("5.00")))

	b1, _ := f.batchRepo.GetByID("b1")
	assert.Equal(t, entity.BatchStatusDepleted, b1.Status)
}
