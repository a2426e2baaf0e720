package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Usar el nombre JSON en los errores por campo
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError representa un error de validación de un campo
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidationErrors agrupa todos los errores de un formulario
type ValidationErrors []*ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Fields devuelve los errores indexados por campo
func (es ValidationErrors) Fields() map[string]string {
	fields := make(map[string]string, len(es))
	for _, e := range es {
		fields[e.Field] = e.Message
	}
	return fields
}

// Validate valida los campos requeridos del producto antes de cualquier escritura
func (in *ProductInput) Validate() error {
	var errs ValidationErrors

	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			errs = append(errs, &ValidationError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
	}

	if in.BuyPrice.IsNegative() {
		errs = append(errs, &ValidationError{Field: "buy_price", Message: "buy_price cannot be negative"})
	}
	if in.SellPrice.IsNegative() {
		errs = append(errs, &ValidationError{Field: "sell_price", Message: "sell_price cannot be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "mongodb":
		return fmt.Sprintf("%s is not a valid id", fe.Field())
	case "min":
		return fmt.Sprintf("%s cannot be negative", fe.Field())
	case "max":
		return fmt.Sprintf("%s is too long", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
