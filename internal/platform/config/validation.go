package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate reports fields by their koanf key, so messages name the setting
// an operator would change.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}

		return name
	})

	v.RegisterStructValidation(validateBackends, Config{})
	v.RegisterStructValidation(validateBreaker, BreakerConfig{})

	return v
}

// Validate validates the configuration and returns an error if invalid.
// Validation fails fast - the service should not start with invalid config.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationErrors(err)
	}

	return nil
}

// validateBackends checks settings that span sections: the redis repository
// needs a redis URL even though the redis section is optional otherwise.
func validateBackends(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}

	if cfg.Database.Vendor == VendorRedis && cfg.Redis.URL == "" {
		sl.ReportError(cfg.Redis.URL, "redis.url", "URL", "required_with_vendor", VendorRedis)
	}
}

// validateBreaker rejects an enabled breaker that could never close again.
func validateBreaker(sl validator.StructLevel) {
	b, ok := sl.Current().Interface().(BreakerConfig)
	if !ok || b.MaxFailures == 0 {
		return
	}

	if b.OpenTimeout <= 0 {
		sl.ReportError(b.OpenTimeout, "open_timeout", "OpenTimeout", "required_with_breaker", "")
	}

	if b.HalfOpenSuccesses < 1 {
		sl.ReportError(b.HalfOpenSuccesses, "half_open_successes", "HalfOpenSuccesses", "required_with_breaker", "")
	}
}

// formatValidationErrors converts validator errors to a readable format.
func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		errs = append(errs, formatFieldError(e))
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
}

// formatFieldError formats a single field validation error.
func formatFieldError(e validator.FieldError) string {
	field := formatFieldPath(e.Namespace())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "required_if":
		return fmt.Sprintf("%s is required when %s", field, e.Param())
	case "required_with_vendor":
		return fmt.Sprintf("%s is required when database.vendor is %s", field, e.Param())
	case "required_with_breaker":
		return fmt.Sprintf("%s must be positive when the event breaker is enabled", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "hostname_port":
		return fmt.Sprintf("%s must be a host:port pair", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}

// formatFieldPath drops the root struct name: "Config.server.read_timeout"
// becomes "server.read_timeout". Slice indices are kept.
func formatFieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}

	return rest
}
