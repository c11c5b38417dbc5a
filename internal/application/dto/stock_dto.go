package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/application/stock"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/domain/entity"
)

// ReceiveBatchRequest body para POST /api/stock/batches.
type ReceiveBatchRequest struct {
	IngredientID string          `json:"ingredient_id"`
	LocationID   string          `json:"location_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	ReceivedAt   *time.Time      `json:"received_at,omitempty"`
	BatchNumber  string          `json:"batch_number,omitempty"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
}

// ConsumeRequest body para POST /api/stock/consume.
type ConsumeRequest struct {
	IngredientID string          `json:"ingredient_id"`
	LocationID   string          `json:"location_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Reference    string          `json:"reference"` // id de orden o receta
}

// WasteRequest body para POST /api/stock/waste.
type WasteRequest struct {
	IngredientID string          `json:"ingredient_id"`
	LocationID   string          `json:"location_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	ReasonCode   string          `json:"reason_code"`
	Notes        string          `json:"notes,omitempty"`
}

// AdjustRequest body para POST /api/stock/adjustments.
type AdjustRequest struct {
	IngredientID string          `json:"ingredient_id"`
	LocationID   string          `json:"location_id"`
	Delta        decimal.Decimal `json:"delta"` // con signo, distinto de cero
	ReasonCode   string          `json:"reason_code"`
	UserID       string          `json:"user_id"`
}

// TransferRequest body para POST /api/stock/transfers.
type TransferRequest struct {
	IngredientID   string          `json:"ingredient_id"`
	FromLocationID string          `json:"from_location_id"`
	ToLocationID   string          `json:"to_location_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	UserID         string          `json:"user_id"`
}

// BatchResponse representación HTTP de un lote.
type BatchResponse struct {
	ID                string          `json:"id"`
	IngredientID      string          `json:"ingredient_id"`
	LocationID        string          `json:"location_id"`
	BatchNumber       string          `json:"batch_number,omitempty"`
	InitialQuantity   decimal.Decimal `json:"initial_quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	ReceivedAt        time.Time       `json:"received_at"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	Status            string          `json:"status"`
}

// FromBatch mapea la entidad a su representación HTTP.
func FromBatch(b *entity.StockBatch) BatchResponse {
	return BatchResponse{
		ID:                b.ID,
		IngredientID:      b.IngredientID,
		LocationID:        b.LocationID,
		BatchNumber:       b.BatchNumber,
		InitialQuantity:   b.InitialQuantity,
		RemainingQuantity: b.RemainingQuantity,
		UnitCost:          b.UnitCost,
		ReceivedAt:        b.ReceivedAt,
		ExpiryDate:        b.ExpiryDate,
		Status:            b.Status,
	}
}

// ConsumptionLineResponse línea por lote en un resultado de consumo.
type ConsumptionLineResponse struct {
	BatchID  string          `json:"batch_id"`
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// ConsumptionResultResponse resultado de un consumo. shortfall es un campo
// estructurado que el caller inspecciona; nunca un error.
type ConsumptionResultResponse struct {
	Requested decimal.Decimal           `json:"requested"`
	Consumed  decimal.Decimal           `json:"consumed"`
	TotalCost decimal.Decimal           `json:"total_cost"`
	Shortfall bool                      `json:"shortfall"`
	Lines     []ConsumptionLineResponse `json:"lines"`
}

// FromConsumptionResult mapea el resultado del motor a su representación HTTP.
func FromConsumptionResult(r *stock.ConsumptionResult) ConsumptionResultResponse {
	out := ConsumptionResultResponse{
		Requested: r.Requested,
		Consumed:  r.Consumed,
		TotalCost: r.TotalCost,
		Shortfall: r.Shortfall,
		Lines:     make([]ConsumptionLineResponse, 0, len(r.Lines)),
	}
	for _, l := range r.Lines {
		out.Lines = append(out.Lines, ConsumptionLineResponse{BatchID: l.BatchID, Quantity: l.Quantity, UnitCost: l.UnitCost})
	}
	return out
}

// StockLevelResponse agregado de stock de un ingrediente en una ubicación.
type StockLevelResponse struct {
	IngredientID     string          `json:"ingredient_id"`
	IngredientCode   string          `json:"ingredient_code"`
	IngredientName   string          `json:"ingredient_name"`
	LocationID       string          `json:"location_id"`
	TotalStock       decimal.Decimal `json:"total_stock"`
	ActiveBatchCount int             `json:"active_batch_count"`
	ReorderLevel     decimal.Decimal `json:"reorder_level"`
	IsLowStock       bool            `json:"is_low_stock"`
}

// FromStockLevel mapea el agregado a su representación HTTP.
func FromStockLevel(l *entity.StockLevel) StockLevelResponse {
	return StockLevelResponse{
		IngredientID:     l.IngredientID,
		IngredientCode:   l.IngredientCode,
		IngredientName:   l.IngredientName,
		LocationID:       l.LocationID,
		TotalStock:       l.TotalStock,
		ActiveBatchCount: l.ActiveBatchCount,
		ReorderLevel:     l.ReorderLevel,
		IsLowStock:       l.IsLowStock,
	}
}

// MovementResponse representación HTTP de un movimiento de auditoría.
type MovementResponse struct {
	ID           string          `json:"id"`
	IngredientID string          `json:"ingredient_id"`
	LocationID   string          `json:"location_id"`
	BatchID      string          `json:"batch_id"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Reference    string          `json:"reference"`
	Notes        string          `json:"notes,omitempty"`
	CreatedBy    string          `json:"created_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// FromMovement mapea la entidad a su representación HTTP.
func FromMovement(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:           m.ID,
		IngredientID: m.IngredientID,
		LocationID:   m.LocationID,
		BatchID:      m.BatchID,
		Type:         m.Type,
		Quantity:     m.Quantity,
		UnitCost:     m.UnitCost,
		Reference:    m.Reference,
		Notes:        m.Notes,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
	}
}

// WasteResponse resultado de registrar una merma.
type WasteResponse struct {
	ID           string          `json:"id"`
	IngredientID string          `json:"ingredient_id"`
	LocationID   string          `json:"location_id"`
	Requested    decimal.Decimal `json:"requested"`
	Wasted       decimal.Decimal `json:"wasted"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	ReasonCode   string          `json:"reason_code"`
	Notes        string          `json:"notes,omitempty"`
	Shortfall    bool            `json:"shortfall"`
	CreatedAt    time.Time       `json:"created_at"`
}

// FromWasteRecord mapea el record a su representación HTTP.
func FromWasteRecord(w *entity.WasteRecord) WasteResponse {
	return WasteResponse{
		ID:           w.ID,
		IngredientID: w.IngredientID,
		LocationID:   w.LocationID,
		Requested:    w.Requested,
		Wasted:       w.Wasted,
		TotalCost:    w.TotalCost,
		ReasonCode:   w.ReasonCode,
		Notes:        w.Notes,
		Shortfall:    w.Shortfall,
		CreatedAt:    w.CreatedAt,
	}
}

// AdjustmentResponse resultado de un ajuste manual.
type AdjustmentResponse struct {
	ID           string          `json:"id"`
	IngredientID string          `json:"ingredient_id"`
	LocationID   string          `json:"location_id"`
	Delta        decimal.Decimal `json:"delta"`
	Applied      decimal.Decimal `json:"applied"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	ReasonCode   string          `json:"reason_code"`
	BatchID      string          `json:"batch_id,omitempty"`
	Shortfall    bool            `json:"shortfall"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

// FromAdjustmentRecord mapea el record a su representación HTTP.
func FromAdjustmentRecord(a *entity.AdjustmentRecord) AdjustmentResponse {
	return AdjustmentResponse{
		ID:           a.ID,
		IngredientID: a.IngredientID,
		LocationID:   a.LocationID,
		Delta:        a.Delta,
		Applied:      a.Applied,
		TotalCost:    a.TotalCost,
		ReasonCode:   a.ReasonCode,
		BatchID:      a.BatchID,
		Shortfall:    a.Shortfall,
		CreatedBy:    a.CreatedBy,
		CreatedAt:    a.CreatedAt,
	}
}

// TransferResponse resultado de un traslado entre ubicaciones.
type TransferResponse struct {
	ID             string          `json:"id"`
	IngredientID   string          `json:"ingredient_id"`
	FromLocationID string          `json:"from_location_id"`
	ToLocationID   string          `json:"to_location_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	BatchID        string          `json:"batch_id"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
}

// FromTransferRecord mapea el record a su representación HTTP.
func FromTransferRecord(t *entity.TransferRecord) TransferResponse {
	return TransferResponse{
		ID:             t.ID,
		IngredientID:   t.IngredientID,
		FromLocationID: t.FromLocationID,
		ToLocationID:   t.ToLocationID,
		Quantity:       t.Quantity,
		UnitCost:       t.UnitCost,
		BatchID:        t.BatchID,
		CreatedBy:      t.CreatedBy,
		CreatedAt:      t.CreatedAt,
	}
}
