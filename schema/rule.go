package schema

import "fmt"

// Rule validates a resolved value and returns it in its coerced form.
// A failure's message is reported after the quoted key name.
type Rule interface {
	Validate(value any) (any, error)
}

// RuleFunc adapts a function to the Rule interface.
type RuleFunc func(value any) (any, error)

// Validate calls f(value).
func (f RuleFunc) Validate(value any) (any, error) {
	return f(value)
}

// ValidationError is a rule failure. Message never includes the key.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Fail builds a ValidationError from a format string.
func Fail(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
