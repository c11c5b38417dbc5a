package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/application/dto"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/application/stock"
)

// StockHandler maneja las mutaciones del libro de stock: recepción de lotes,
// consumo, merma, ajuste y traslado.
type StockHandler struct {
	ledger   *stock.BatchLedgerUseCase
	engine   *stock.ConsumptionEngine
	waste    *stock.WasteRecorderUseCase
	adjust   *stock.AdjustStockUseCase
	transfer *stock.TransferUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(
	ledger *stock.BatchLedgerUseCase,
	engine *stock.ConsumptionEngine,
	waste *stock.WasteRecorderUseCase,
	adjust *stock.AdjustStockUseCase,
	transfer *stock.TransferUseCase,
) *StockHandler {
	return &StockHandler{ledger: ledger, engine: engine, waste: waste, adjust: adjust, transfer: transfer}
}

// ReceiveBatch godoc
// @Summary      Recibir lote de stock
// @Description  Alta de un lote por aceptación de entrega o entrada manual.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveBatchRequest  true  "ingredient_id, location_id, quantity, unit_cost, received_at?, batch_number?, expiry_date?"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/batches [post]
func (h *StockHandler) ReceiveBatch(c *fiber.Ctx) error {
	var in dto.ReceiveBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := stock.ReceiveBatchInput{
		IngredientID: in.IngredientID,
		LocationID:   in.LocationID,
		Quantity:     in.Quantity,
		UnitCost:     in.UnitCost,
		BatchNumber:  in.BatchNumber,
		ExpiryDate:   in.ExpiryDate,
	}
	if in.ReceivedAt != nil {
		input.ReceivedAt = *in.ReceivedAt
	}
	batch, err := h.ledger.ReceiveBatch(c.Context(), input)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromBatch(batch))
}

// ListBatches godoc
// @Summary      Listar lotes activos en orden FIFO
// @Tags         stock
// @Produce      json
// @Param        ingredient_id  query  string  true  "ID del ingrediente"
// @Param        location_id    query  string  true  "ID de la ubicación"
// @Success      200  {array}   dto.BatchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/batches [get]
func (h *StockHandler) ListBatches(c *fiber.Ctx) error {
	list, err := h.ledger.ListActiveBatches(c.Context(), c.Query("ingredient_id"), c.Query("location_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.FromBatch(b))
	}
	return c.JSON(fiber.Map{"total": len(out), "batches": out})
}

// Consume godoc
// @Summary      Consumir stock en orden FIFO
// @Description  Un faltante de stock no es error: la respuesta trae shortfall=true
//
//	y consumed < requested. El inventario nunca bloquea una venta.
//
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsumeRequest  true  "ingredient_id, location_id, quantity, reference"
// @Success      200   {object}  dto.ConsumptionResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/consume [post]
func (h *StockHandler) Consume(c *fiber.Ctx) error {
	var in dto.ConsumeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.engine.Consume(c.Context(), stock.ConsumeInput{
		IngredientID: in.IngredientID,
		LocationID:   in.LocationID,
		Quantity:     in.Quantity,
		Reference:    in.Reference,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.FromConsumptionResult(res))
}

// RecordWaste godoc
// @Summary      Registrar merma
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WasteRequest  true  "ingredient_id, location_id, quantity, reason_code (spoilage|damaged|expired|theft|other), notes?"
// @Success      200   {object}  dto.WasteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/waste [post]
func (h *StockHandler) RecordWaste(c *fiber.Ctx) error {
	var in dto.WasteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.waste.RecordWaste(c.Context(), stock.WasteInput{
		IngredientID: in.IngredientID,
		LocationID:   in.LocationID,
		Quantity:     in.Quantity,
		ReasonCode:   in.ReasonCode,
		Notes:        in.Notes,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.FromWasteRecord(rec))
}

// Adjust godoc
// @Summary      Ajustar stock manualmente
// @Description  Delta positivo crea un lote nuevo (consumido después del stock
//
//	más antiguo); delta negativo descuenta en orden FIFO tolerando faltante.
//
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustRequest  true  "ingredient_id, location_id, delta (≠0), reason_code, user_id"
// @Success      200   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.adjust.AdjustStock(c.Context(), stock.AdjustInput{
		IngredientID: in.IngredientID,
		LocationID:   in.LocationID,
		Delta:        in.Delta,
		ReasonCode:   in.ReasonCode,
		UserID:       in.UserID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.FromAdjustmentRecord(rec))
}

// Transfer godoc
// @Summary      Trasladar stock entre ubicaciones
// @Description  Todo-o-nada: si el origen no cubre la cantidad completa, falla
//
//	con INSUFFICIENT_STOCK y ningún lado queda mutado.
//
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "ingredient_id, from_location_id, to_location_id, quantity, user_id"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/transfers [post]
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.transfer.Transfer(c.Context(), stock.TransferInput{
		IngredientID:   in.IngredientID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		UserID:         in.UserID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromTransferRecord(rec))
}
