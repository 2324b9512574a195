package config

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
	// Report fields by their YAML names so messages match the config file.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("YAML global config: %w", describeValidationError(err))
	}
	return nil
}

// describeValidationError turns the first validator failure into a readable error.
func describeValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}

	fieldErr := validationErrors[0]
	path := strings.TrimPrefix(fieldErr.Namespace(), "Config.")
	section := strings.SplitN(path, ".", 2)[0]

	switch fieldErr.Tag() {
	case "oneof":
		return fmt.Errorf("%s directive is invalid: %s must be one of [%s], got %q", section, path, fieldErr.Param(), fieldErr.Value())
	case "max":
		return fmt.Errorf("%s directive is invalid: %s must be at most %s characters long", section, path, fieldErr.Param())
	default:
		return fmt.Errorf("%s directive is invalid: %s failed the %q check, got %q", section, path, fieldErr.Tag(), fieldErr.Value())
	}
}
