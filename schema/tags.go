package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// checkTags runs validator tags against a coerced value. Unknown tags make
// the validator panic; that is turned into a rule failure.
func checkTags(value any, tags string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Fail("has an invalid validation rule %q", tags)
		}
	}()

	verr := getValidator().Var(value, tags)
	if verr == nil {
		return nil
	}
	fieldErrs, ok := verr.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return Fail("failed validation")
	}
	return Fail("%s", formatTagError(fieldErrs[0]))
}

// checkTagSyntax reports tags the validator does not know.
func checkTagSyntax(tags string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("invalid validation tags %q: %v", tags, r)
		}
	}()
	_ = getValidator().Var("", tags)
	return nil
}

// formatTagError creates a human-readable error message.
func formatTagError(e validator.FieldError) string {
	numeric := isNumericKind(e.Kind())
	switch e.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		if numeric {
			return "must be greater than or equal to " + e.Param()
		}
		return "length must be at least " + e.Param() + " characters long"
	case "max", "lte":
		if numeric {
			return "must be less than or equal to " + e.Param()
		}
		return "length must be less than or equal to " + e.Param() + " characters long"
	case "gt":
		if numeric {
			return "must be greater than " + e.Param()
		}
		return "length must be greater than " + e.Param() + " characters"
	case "lt":
		if numeric {
			return "must be less than " + e.Param()
		}
		return "length must be less than " + e.Param() + " characters"
	case "len":
		return "length must be " + e.Param() + " characters long"
	case "email":
		return "must be a valid email"
	case "url", "uri", "http_url":
		return "must be a valid uri"
	case "hostname", "hostname_rfc1123", "fqdn":
		return "must be a valid hostname"
	case "ip", "ipv4", "ipv6":
		return "must be a valid ip address"
	case "hostname_port":
		return "must be a valid host:port"
	case "oneof":
		return "must be one of [" + strings.Join(strings.Fields(e.Param()), ", ") + "]"
	case "alphanum":
		return "must only contain alpha-numeric characters"
	case "lowercase":
		return "must only contain lowercase characters"
	case "uppercase":
		return "must only contain uppercase characters"
	default:
		if e.Param() != "" {
			return fmt.Sprintf("failed the %q rule (%s)", e.Tag(), e.Param())
		}
		return fmt.Sprintf("failed the %q rule", e.Tag())
	}
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
