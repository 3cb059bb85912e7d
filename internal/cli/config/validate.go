package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/leapstack-labs/cmpfill/internal/pipeline"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report koanf keys rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("koanf"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// encoding: a WHATWG label or "auto".
	_ = v.RegisterValidation("encoding", func(fl validator.FieldLevel) bool {
		_, err := pipeline.ResolveEncoding(fl.Field().String())
		return err == nil
	})

	// field: a value that survives whitespace splitting as one field.
	_ = v.RegisterValidation("field", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
	})

	return v
}

// Validate checks the configuration and reports every invalid key.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required", "required_if":
		return key + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", key, fe.Param(), fe.Value())
	case "encoding":
		return fmt.Sprintf("%s: unsupported encoding %q", key, fe.Value())
	case "field":
		return fmt.Sprintf("%s must not contain whitespace, got %q", key, fe.Value())
	case "excludesall":
		return fmt.Sprintf("%s must not contain path separators, got %q", key, fe.Value())
	case "alphanum":
		return fmt.Sprintf("%s must be a plain tag name, got %q", key, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", key, fe.Tag())
	}
}
