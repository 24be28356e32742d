package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/recepciones-api/internal/domain/entity"
	"github.com/jhoicas/recepciones-api/internal/domain/rbac"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Nombres de campo según la etiqueta json en los mensajes.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	registry := rbac.DefaultRegistry()

	// role: solo roles con rango en la jerarquía.
	_ = validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return registry.Known(rbac.ParseRole(fl.Field().String()))
	})

	// local_type: tienda, bodega, centro_distribucion.
	_ = validate.RegisterValidation("local_type", func(fl validator.FieldLevel) bool {
		return entity.IsValidLocalType(fl.Field().String())
	})
}

// Validate valida una estructura y devuelve un mapa campo → mensaje (nil si es válida).
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			out[field] = "campo requerido"
		case "email":
			out[field] = "formato de email inválido"
		case "min":
			out[field] = "valor demasiado corto (mín: " + fe.Param() + ")"
		case "max":
			out[field] = "valor demasiado largo (máx: " + fe.Param() + ")"
		case "oneof":
			out[field] = "valor no permitido (opciones: " + fe.Param() + ")"
		case "role":
			out[field] = "rol inválido"
		case "local_type":
			out[field] = "tipo de local inválido: " + strings.Join(entity.LocalTypes, ", ")
		default:
			out[field] = "valor inválido"
		}
	}
	return out
}
