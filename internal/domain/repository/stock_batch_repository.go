package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/entity"
)

// StockBatchRepository define el puerto del libro de lotes. Los lotes son
// append-only: solo remaining_quantity y status mutan, y únicamente a través
// del motor de consumo o del traslado dentro de una transacción.
type StockBatchRepository interface {
	Create(batch *entity.StockBatch) error
	GetByID(id string) (*entity.StockBatch, error)
	// ListActive devuelve los lotes activos del par (ingrediente, ubicación)
	// en orden FIFO: received_at ascendente, desempate por id.
	ListActive(ingredientID, locationID string) ([]*entity.StockBatch, error)
	// ListActiveForUpdate igual que ListActive pero bloquea las filas
	// (SELECT FOR UPDATE): serializa las mutaciones del mismo par.
	ListActiveForUpdate(ingredientID, locationID string) ([]*entity.StockBatch, error)
	// MostRecentReceived último lote activo recibido del par; base de costo
	// para ajustes positivos. nil si no existe ninguno.
	MostRecentReceived(ingredientID, locationID string) (*entity.StockBatch, error)
	// UpdateRemaining persiste remaining_quantity y status de un lote ya bloqueado.
	UpdateRemaining(batch *entity.StockBatch) error
	SumRemaining(ingredientID, locationID string) (decimal.Decimal, error)
	// ListExpiring lotes activos con expiry_date en [from, until], ascendente por vencimiento.
	ListExpiring(locationID string, from, until time.Time) ([]*entity.StockBatch, error)
}
