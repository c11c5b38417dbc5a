package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/application/dto"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/application/stock"
)

// StockQueryHandler lecturas del libro de stock: niveles, stock bajo, lotes
// por vencer y registro de movimientos. Sin bloqueos.
type StockQueryHandler struct {
	levels    *stock.StockLevelUseCase
	movements *stock.MovementLogUseCase
}

// NewStockQueryHandler construye el handler.
func NewStockQueryHandler(levels *stock.StockLevelUseCase, movements *stock.MovementLogUseCase) *StockQueryHandler {
	return &StockQueryHandler{levels: levels, movements: movements}
}

// GetLevel godoc
// @Summary      Nivel de stock de un ingrediente en una ubicación
// @Tags         stock
// @Produce      json
// @Param        ingredient_id  query  string  true  "ID del ingrediente"
// @Param        location_id    query  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.StockLevelResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/levels [get]
func (h *StockQueryHandler) GetLevel(c *fiber.Ctx) error {
	level, err := h.levels.GetStockLevel(c.Context(), c.Query("ingredient_id"), c.Query("location_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.FromStockLevel(level))
}

// ListLowStock godoc
// @Summary      Ingredientes con stock bajo en una ubicación
// @Tags         stock
// @Produce      json
// @Param        location_id  query  string  true  "ID de la ubicación"
// @Success      200  {array}   dto.StockLevelResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/levels/low [get]
func (h *StockQueryHandler) ListLowStock(c *fiber.Ctx) error {
	list, err := h.levels.ListLowStock(c.Context(), c.Query("location_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.StockLevelResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.FromStockLevel(l))
	}
	return c.JSON(fiber.Map{"total": len(out), "levels": out})
}

// ListExpiring godoc
// @Summary      Lotes activos por vencer en una ubicación
// @Tags         stock
// @Produce      json
// @Param        location_id  query  string  true   "ID de la ubicación"
// @Param        within_days  query  int     false  "Ventana en días (por defecto 7)"
// @Success      200  {array}   dto.BatchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/expiring [get]
func (h *StockQueryHandler) ListExpiring(c *fiber.Ctx) error {
	withinDays := c.QueryInt("within_days", 7)
	list, err := h.levels.ListExpiringBatches(c.Context(), c.Query("location_id"), withinDays)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.FromBatch(b))
	}
	return c.JSON(fiber.Map{"total": len(out), "batches": out})
}

// ListMovements godoc
// @Summary      Registro de movimientos de un ingrediente
// @Tags         stock
// @Produce      json
// @Param        ingredient_id  query  string  true   "ID del ingrediente"
// @Param        location_id    query  string  false  "Filtrar por ubicación"
// @Param        from           query  string  false  "Desde (RFC3339)"
// @Param        to             query  string  false  "Hasta (RFC3339)"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockQueryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha 'from' inválida"})
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha 'to' inválida"})
		}
		to = &t
	}

	list, err := h.movements.ListMovements(c.Context(), c.Query("ingredient_id"), c.Query("location_id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.FromMovement(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}
