package httpapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// queryNames maps bound struct fields back to their query parameters.
var queryNames = map[string]string{
	"Country":       "country",
	"Countries":     "countries",
	"From":          "from",
	"To":            "to",
	"Window":        "window",
	"BaselineStart": "baselineStart",
	"BaselineEnd":   "baselineEnd",
}

func queryName(field string) string {
	if n, ok := queryNames[field]; ok {
		return n
	}
	return field
}

// validationError turns validator output into one short message per field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	name := queryName(fe.StructField())

	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "gtefield":
		return fmt.Sprintf("%s must not be before %s", name, queryName(fe.Param()))
	case "gte", "min":
		if name == "countries" {
			return "select at least " + fe.Param() + " country"
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	default:
		return name + " is invalid"
	}
}
