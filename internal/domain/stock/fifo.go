// Package stock contiene el servicio de dominio de asignación FIFO:
// satisfacer una cantidad solicitada consumiendo primero el lote disponible
// más antiguo, avanzando al siguiente solo al agotar el actual.
package stock

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/entity"
)

// Allocation una línea de asignación contra un lote concreto.
type Allocation struct {
	Batch    *entity.StockBatch
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// Plan resultado de planear una asignación FIFO. Allocate no muta los lotes;
// aplicar los descuentos es responsabilidad del caller (dentro de su tx).
type Plan struct {
	Requested decimal.Decimal
	Allocated decimal.Decimal
	TotalCost decimal.Decimal
	Lines     []Allocation
	Shortfall bool
}

// Allocate recorre los lotes en el orden recibido (se asume orden FIFO:
// received_at asc, desempate por id) y asigna min(restante, pendiente) por
// lote hasta satisfacer requested o agotar los lotes. El costo total es
// Σ(cantidad asignada × costo unitario del lote), en decimal exacto.
// Si los lotes se agotan antes de cubrir requested, Shortfall=true y
// Allocated < Requested: el faltante es informativo, nunca un error.
func Allocate(batches []*entity.StockBatch, requested decimal.Decimal) Plan {
	plan := Plan{
		Requested: requested,
		Allocated: decimal.Zero,
		TotalCost: decimal.Zero,
	}
	pending := requested
	for _, b := range batches {
		if !pending.IsPositive() {
			break
		}
		if b.Status != entity.BatchStatusActive || !b.RemainingQuantity.IsPositive() {
			continue
		}
		take := decimal.Min(b.RemainingQuantity, pending)
		plan.Lines = append(plan.Lines, Allocation{Batch: b, Quantity: take, UnitCost: b.UnitCost})
		plan.Allocated = plan.Allocated.Add(take)
		plan.TotalCost = plan.TotalCost.Add(take.Mul(b.UnitCost))
		pending = pending.Sub(take)
	}
	plan.Shortfall = plan.Allocated.LessThan(requested)
	return plan
}

// WeightedAverageCost promedio ponderado por cantidad de las líneas asignadas.
// Cero si no se asignó cantidad alguna.
func WeightedAverageCost(p Plan) decimal.Decimal {
	if !p.Allocated.IsPositive() {
		return decimal.Zero
	}
	return p.TotalCost.Div(p.Allocated)
}

// SortFIFO ordena lotes in place según la regla que define el orden FIFO:
// received_at ascendente con desempate por id.
func SortFIFO(batches []*entity.StockBatch) {
	sort.Slice(batches, func(i, j int) bool {
		if batches[i].ReceivedAt.Equal(batches[j].ReceivedAt) {
			return batches[i].ID < batches[j].ID
		}
		return batches[i].ReceivedAt.Before(batches[j].ReceivedAt)
	})
}
