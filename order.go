package dydx

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// OrderParams is the body of a v4 order placed through the internal host.
type OrderParams struct {
	Market      string          `json:"market" validate:"required"`
	Side        OrderSide       `json:"side" validate:"required,oneof=BUY SELL"`
	Type        OrderType       `json:"orderType" validate:"required,oneof=LIMIT MARKET STOP_LIMIT STOP_MARKET TRAILING_STOP TAKE_PROFIT TAKE_PROFIT_MARKET"`
	Size        decimal.Decimal `json:"size" validate:"gt=0"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
	TimeInForce TimeInForce     `json:"timeInForce" validate:"required,oneof=GTT FOK IOC"`
	// ClientID is a numeric id chosen by the caller, see NewClientID.
	ClientID         string `json:"clientId" validate:"required,numeric"`
	ReduceOnly       bool   `json:"reduceOnly"`
	GoodTilBlockTime int64  `json:"goodTilBlockTime" validate:"gte=0"`

	ConditionalOrderTriggerSubticks string `json:"conditionalOrderTriggerSubticks,omitempty" validate:"omitempty,numeric"`
	PostOnly                        *bool  `json:"postOnly,omitempty"`
	Execution                       string `json:"execution,omitempty" validate:"omitempty,oneof=DEFAULT IOC FOK POST_ONLY"`
}

// Validate checks the parameters without sending them.
func (p OrderParams) Validate() error {
	return validateStruct(p)
}

var structValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	return v
}

// validateStruct runs the struct tags of s and converts field failures into
// a *ValidationError.
func validateStruct(s any) error {
	err := structValidator.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return &ValidationError{Errors: msgs}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "numeric":
		return fmt.Sprintf("%s must be numeric", fe.Field())
	default:
		return fmt.Sprintf("%s failed validation", fe.Field())
	}
}
