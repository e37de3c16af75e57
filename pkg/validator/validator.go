// Package validator valida structs de request vía go-playground/validator y
// traduce las fallas a mensajes por campo, listos para la clave "errors" de
// las respuestas 422.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator valida el struct recibido contra sus tags `validate`.
type Validator interface {
	Validate(s any) error
}

// DefaultValidator implementación sobre go-playground/validator.
type DefaultValidator struct {
	v *validator.Validate
}

// New construye el validador por defecto.
func New() *DefaultValidator {
	return &DefaultValidator{v: validator.New()}
}

// Validate valida el struct. Retorna validator.ValidationErrors con las
// fallas, o nil.
func (d *DefaultValidator) Validate(s any) error {
	return d.v.Struct(s)
}

// Messages convierte un error de validación en un mapa campo -> mensaje
// legible. Para errores de otro tipo retorna nil.
func Messages(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		out[fieldName(fe)] = fieldMessage(fe)
	}
	return out
}

// fieldName convierte el nombre Go del campo a snake_case, que es como lo
// envió el cliente en el JSON (CurrentStock -> current_stock).
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	var sb strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			// Solo separa en el borde minúscula->mayúscula (ProductID -> product_id).
			if i > 0 && name[i-1] >= 'a' && name[i-1] <= 'z' {
				sb.WriteByte('_')
			}
			sb.WriteRune(r + ('a' - 'A'))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "el campo es obligatorio"
	case "min":
		return fmt.Sprintf("debe tener al menos %s elementos", fe.Param())
	case "max":
		return fmt.Sprintf("no puede superar %s", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "lte":
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("debe ser uno de [%s]", fe.Param())
	case "datetime":
		return fmt.Sprintf("debe tener el formato %s", fe.Param())
	default:
		return "es inválido"
	}
}
