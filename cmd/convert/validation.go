package convert

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("flag")
	})
	return v
}

// validateConvertArgs validates the command options and collects every problem into one error.
func validateConvertArgs(options *RunOptionsConvert) error {
	var (
		missing []string
		issues  []string
	)

	var validationErrors validator.ValidationErrors
	if err := validate.Struct(options); err != nil && !errors.As(err, &validationErrors) {
		return err
	}

	for _, fieldErr := range validationErrors {
		name := fieldErr.Field()
		switch fieldErr.Tag() {
		case "min":
			if fieldErr.Kind() == reflect.Slice {
				missing = append(missing, name)
				continue
			}
			issues = append(issues, fmt.Sprintf("'%s' must be at least %s", name, fieldErr.Param()))
		case "max":
			issues = append(issues, fmt.Sprintf("'%s' must be at most %s", name, fieldErr.Param()))
		case "required":
			issues = append(issues, fmt.Sprintf("'%s' cannot be empty", name))
		case "oneof":
			issues = append(issues, fmt.Sprintf("'%s' must be one of [%s], got %q", name, fieldErr.Param(), fieldErr.Value()))
		case "url":
			issues = append(issues, fmt.Sprintf("'%s' must be an absolute URL, got %q", name, fieldErr.Value()))
		case "datetime":
			issues = append(issues, fmt.Sprintf("'%s' must be an RFC 3339 time, got %q", name, fieldErr.Value()))
		default:
			issues = append(issues, fmt.Sprintf("'%s' failed the %q check", name, fieldErr.Tag()))
		}
	}

	if options.OutputPath == stdoutOutput && len(options.Inputs) > 1 {
		issues = append(issues, fmt.Sprintf("stdout output accepts a single input, got %d", len(options.Inputs)))
	}

	if len(missing) > 0 {
		issues = append([]string{fmt.Sprintf("missing required arguments: %s", strings.Join(missing, ", "))}, issues...)
	}

	if len(issues) > 0 {
		return errors.New(strings.Join(issues, "; "))
	}

	return nil
}
