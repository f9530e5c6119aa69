package form

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one violated rule, keyed by the JSON field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the ordered set of field violations returned by Validate.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "form validation: " + strings.Join(parts, "; ")
}

// Has reports whether a violation was recorded for field.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

var messages = map[string]string{
	"first_name":         "First name is required",
	"last_name":          "Last name is required",
	"phone":              "Phone number is required",
	"email":              "Valid email is required",
	"street":             "Street address is required",
	"zipcode":            "Zip code is required",
	"city":               "City is required",
	"nutzflaeche":        "Nutzfläche is required",
	"webhook_endpoint":   "Please select a webhook endpoint",
	"custom_webhook_url": "Custom webhook URL is required when using custom endpoint",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks raw against the form rules. On success raw is returned
// unchanged; on failure the error is an Errors value with one entry per
// violated field, in declaration order.
func Validate(raw Input) (Input, error) {
	err := validate.Struct(raw)
	if err == nil {
		return raw, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Input{}, err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return Input{}, out
}

func message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()]; ok {
		return msg
	}
	return "failed on the '" + fe.Tag() + "' rule"
}
