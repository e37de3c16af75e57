package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-sync-api/internal/application/inventory"
	"github.com/jhoicas/inventory-sync-api/internal/domain"
)

// Envelope respuesta estándar de la API. Todos los endpoints JSON responden
// con este sobre: success siempre presente, data en éxito, message y errors
// en falla.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func respondOK(c *fiber.Ctx, data any) error {
	return c.JSON(Envelope{Success: true, Data: data})
}

func respondCreated(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Data: data})
}

func respondMessage(c *fiber.Ctx, message string) error {
	return c.JSON(Envelope{Success: true, Message: message})
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Success: false, Message: message})
}

func respondValidation(c *fiber.Ctx, message string, errs any) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(Envelope{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

// respondDomainError mapea los errores del dominio a su status HTTP:
// not found -> 404, stock negativo -> 422, duplicado -> 409, lote
// rechazado -> 422 con el detalle por entrada, y cualquier otra cosa
// (mutación revertida incluida) -> 500 sin filtrar la causa interna.
func respondDomainError(c *fiber.Ctx, err error) error {
	var be *inventory.BulkError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return respondError(c, fiber.StatusNotFound, "producto no encontrado")
	case errors.Is(err, domain.ErrNegativeStock):
		return respondError(c, fiber.StatusUnprocessableEntity, domain.ErrNegativeStock.Error())
	case errors.Is(err, domain.ErrDuplicate):
		return respondError(c, fiber.StatusConflict, "la referencia ya existe")
	case errors.Is(err, domain.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, domain.ErrInvalidInput.Error())
	case errors.As(err, &be):
		return respondValidation(c, "actualización masiva rechazada", be.Errors)
	default:
		return respondError(c, fiber.StatusInternalServerError, "error interno")
	}
}
