package stock

import (
	"context"

	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que cada mutación del libro de
// lotes (descuentos + movimientos) sea atómica: Commit si fn retorna nil,
// Rollback en caso contrario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.StockBatchRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
