package handlers

import (
	"errors"
	"reflect"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators installs the custom binding rules on gin's validator engine:
// "money" accepts a positive amount with at most two fractional digits that fits NUMERIC(12,2).
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	return v.RegisterValidation("money", validateMoney)
}

// decimalValue exposes decimals to the validator as their string form.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func validateMoney(fl validator.FieldLevel) bool {
	field := fl.Field()
	var amount decimal.Decimal
	switch field.Kind() {
	case reflect.String:
		d, err := decimal.NewFromString(field.String())
		if err != nil {
			return false
		}
		amount = d
	default:
		d, ok := field.Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		amount = d
	}
	return domain.ValidateAmount(amount) == nil
}
