package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/application/catalog"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/application/dto"
)

// IngredientHandler maneja las peticiones HTTP del catálogo de ingredientes.
type IngredientHandler struct {
	uc *catalog.IngredientUseCase
}

// NewIngredientHandler construye el handler.
func NewIngredientHandler(uc *catalog.IngredientUseCase) *IngredientHandler {
	return &IngredientHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ingrediente
// @Tags         ingredients
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIngredientRequest  true  "code, name, unit, reorder_level, reorder_quantity"
// @Success      201   {object}  dto.IngredientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ingredients [post]
func (h *IngredientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ing, err := h.uc.CreateIngredient(c.Context(), catalog.CreateIngredientInput{
		Code:            in.Code,
		Name:            in.Name,
		Unit:            in.Unit,
		ReorderLevel:    in.ReorderLevel,
		ReorderQuantity: in.ReorderQuantity,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromIngredient(ing))
}

// List godoc
// @Summary      Listar ingredientes
// @Tags         ingredients
// @Produce      json
// @Param        active_only  query  bool  false  "Solo activos"
// @Success      200  {array}  dto.IngredientResponse
// @Router       /api/ingredients [get]
func (h *IngredientHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	activeOnly := c.QueryBool("active_only")

	list, err := h.uc.ListIngredients(c.Context(), activeOnly, page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.IngredientResponse, 0, len(list))
	for _, ing := range list {
		out = append(out, dto.FromIngredient(ing))
	}
	return c.JSON(fiber.Map{"total": len(out), "ingredients": out})
}

// GetByID godoc
// @Summary      Obtener ingrediente
// @Tags         ingredients
// @Produce      json
// @Param        id  path  string  true  "ID del ingrediente"
// @Success      200  {object}  dto.IngredientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [get]
func (h *IngredientHandler) GetByID(c *fiber.Ctx) error {
	ing, err := h.uc.GetIngredient(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.FromIngredient(ing))
}

// Update godoc
// @Summary      Actualizar ingrediente
// @Description  La unidad de medida es inmutable una vez existen lotes del ingrediente.
// @Tags         ingredients
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ingrediente"
// @Param        body  body  dto.UpdateIngredientRequest  true  "name, unit, reorder_level, reorder_quantity"
// @Success      200   {object}  dto.IngredientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [put]
func (h *IngredientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ing, err := h.uc.UpdateIngredient(c.Context(), catalog.UpdateIngredientInput{
		ID:              c.Params("id"),
		Name:            in.Name,
		Unit:            in.Unit,
		ReorderLevel:    in.ReorderLevel,
		ReorderQuantity: in.ReorderQuantity,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.FromIngredient(ing))
}

// Deactivate godoc
// @Summary      Desactivar ingrediente
// @Tags         ingredients
// @Produce      json
// @Param        id  path  string  true  "ID del ingrediente"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [delete]
func (h *IngredientHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.DeactivateIngredient(c.Context(), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "ingrediente desactivado"})
}
