package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// ErrUnresolvedProduct: el producto de una línea de documento no existe.
	// Envuelve ErrNotFound para que errors.Is(err, ErrNotFound) siga siendo verdadero.
	ErrUnresolvedProduct = fmt.Errorf("%w: producto de la línea no existe", ErrNotFound)
)
