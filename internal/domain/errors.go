package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrProductNotFound      = errors.New("producto no encontrado")
	ErrLotNotFound          = errors.New("lote no encontrado")
	ErrFormulaNotFound      = errors.New("fórmula no encontrada")
	ErrProductionNotFound   = errors.New("orden de producción no encontrada")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrProductInUse         = errors.New("el producto tiene registros asociados")
	ErrFormulaInUse         = errors.New("la fórmula tiene órdenes de producción asociadas")
	ErrInvalidMovementType  = errors.New("tipo de movimiento inválido")
	ErrInvalidProductType   = errors.New("tipo de producto inválido")
	ErrInvalidOrderStatus   = errors.New("estado de orden inválido")
)
