package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// errInvalidBody cuerpo o query que no se puede decodificar.
var errInvalidBody = errors.New("cuerpo inválido")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// En los errores se usa el nombre del campo tal como llega en el JSON o la query.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		}
		return name
	})
	return v
}

// bindBody decodifica el JSON del body y lo valida.
func bindBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return validate.Struct(out)
}

// bindQuery decodifica la query string y la valida.
func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return errInvalidBody
	}
	return validate.Struct(out)
}

// validationDetails un mensaje por campo inválido.
func validationDetails(errs validator.ValidationErrors) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, fmt.Sprintf("%s: %s", fieldPath(e), validationMessage(e)))
	}
	return out
}

// fieldPath ruta del campo sin el nombre del struct raíz (participantes[0].cliente_id).
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "es requerido"
	case "required_if":
		return "es requerido en este caso"
	case "email":
		return "debe ser un email válido"
	case "uuid":
		return "debe ser un UUID válido"
	case "min":
		if e.Kind() == reflect.Slice {
			return "debe tener al menos " + e.Param() + " elementos"
		}
		if e.Kind() == reflect.String {
			return "debe tener al menos " + e.Param() + " caracteres"
		}
		return "debe ser mayor o igual a " + e.Param()
	case "max":
		if e.Kind() == reflect.Slice {
			return "debe tener como máximo " + e.Param() + " elementos"
		}
		if e.Kind() == reflect.String {
			return "debe tener como máximo " + e.Param() + " caracteres"
		}
		return "debe ser menor o igual a " + e.Param()
	case "gt":
		return "debe ser mayor que " + e.Param()
	case "len":
		return "debe tener exactamente " + e.Param() + " caracteres"
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "datetime":
		return "debe tener el formato YYYY-MM-DD"
	case "numeric":
		return "debe ser numérico"
	case "alphanum":
		return "solo admite letras y números"
	case "endswith":
		return "debe terminar en " + e.Param()
	case "gtefield":
		return "no puede ser menor que " + e.Param()
	default:
		return "no cumple la regla " + e.Tag()
	}
}
