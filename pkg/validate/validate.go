// Package validate configura go-playground/validator con nombres de campo JSON
// y traduce sus errores a mensajes cortos en español.
package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// New devuelve un validador que reporta los campos por su nombre JSON.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Message resume los errores de validación en una sola línea ("name: es obligatorio; email: ...").
// Para errores que no son de validación devuelve err.Error().
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		parts = append(parts, e.Field()+": "+fieldMessage(e))
	}
	return strings.Join(parts, "; ")
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "es obligatorio"
	case "email":
		return "formato de email inválido"
	case "oneof":
		return "debe ser uno de: " + e.Param()
	case "gte":
		return "debe ser mayor o igual a " + e.Param()
	case "gt":
		return "debe ser mayor que " + e.Param()
	case "min":
		if e.Kind() == reflect.String {
			return "debe tener al menos " + e.Param() + " caracteres"
		}
		return "debe tener al menos " + e.Param() + " elementos"
	case "max":
		return "excede el máximo de " + e.Param()
	default:
		return "valor inválido"
	}
}
