package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrInvalidIngredient   = errors.New("ingrediente desconocido o inactivo")
	ErrInvalidQuantity     = errors.New("cantidad inválida")
	ErrInvalidCost         = errors.New("costo unitario inválido")
	ErrUnitInUse           = errors.New("la unidad de medida no puede cambiar: existen lotes del ingrediente")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia; reintentar la operación")
)
