package domain

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

type choiceField interface {
	Valid() bool
}

// NewValidator returns a validator that knows the "choice" and "price" tags.
func NewValidator() *validator.Validate {
	validate := validator.New()

	// Prices are validated through their exact decimal text.
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		if p, ok := v.Interface().(Price); ok {
			return p.Decimal.String()
		}
		return nil
	}, Price{})

	_ = validate.RegisterValidation("choice", func(fl validator.FieldLevel) bool {
		c, ok := fl.Field().Interface().(choiceField)
		return ok && c.Valid()
	})

	_ = validate.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		p, err := NewPrice(fl.Field().String())
		return err == nil && p.Valid()
	})

	return validate
}
