package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrDuplicate     = errors.New("recurso duplicado")
	ErrNegativeStock = errors.New("el stock no puede ser negativo")
)

// MutationError envuelve la causa de una mutación de stock fallida.
// La transacción ya fue revertida cuando este error llega al caller:
// ni el stock del producto ni el historial cambiaron.
type MutationError struct {
	Cause error
}

func (e *MutationError) Error() string {
	return "mutación de stock fallida: " + e.Cause.Error()
}

// Unwrap permite errors.Is/As sobre la causa interna.
func (e *MutationError) Unwrap() error {
	return e.Cause
}

// NewMutationError envuelve err como MutationError. Los errores de dominio
// (not found, stock negativo, duplicado) pasan sin envolver: el contrato
// visible del caller es el tipo de error, no la causa de almacenamiento.
func NewMutationError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNegativeStock) ||
		errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrDuplicate) {
		return err
	}
	var me *MutationError
	if errors.As(err, &me) {
		return err
	}
	return &MutationError{Cause: err}
}
