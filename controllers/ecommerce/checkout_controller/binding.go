package checkout_controller

import (
	"errors"
	"reflect"
	"strings"

	"github.com/bodthegod/jpperformancecars-backend/checkout"
	"github.com/go-playground/validator/v10"
)

// bindingFields turns validator failures into the json-keyed field map the
// checkout form renders. Any other bind error yields nil.
func bindingFields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	t := reflect.TypeOf(checkout.ShippingInfo{})
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if tag := strings.Split(sf.Tag.Get("json"), ",")[0]; tag != "" {
				name = tag
			}
		}
		fields[name] = describe(fe)
	}
	return fields
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be an email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}
