package schema

import (
	"github.com/kbukum/envcascade/util"
)

// KeyRule describes one configuration key.
type KeyRule struct {
	// Validate checks and coerces the resolved value. Nil accepts anything.
	Validate Rule
	// Required keys must be supplied by some layer.
	Required bool
	// Default is used when no other layer supplies the key. It only counts
	// when HasDefault is set.
	Default    any
	HasDefault bool
	// Secret values are masked in logs and trace output.
	Secret      bool
	Description string
}

// Required declares a key that must be supplied.
func Required(rule Rule) KeyRule {
	return KeyRule{Validate: rule, Required: true}
}

// Optional declares a key that may be absent.
func Optional(rule Rule) KeyRule {
	return KeyRule{Validate: rule}
}

// WithDefault returns a copy of k with a default value.
func (k KeyRule) WithDefault(v any) KeyRule {
	k.Default = v
	k.HasDefault = true
	return k
}

// AsSecret returns a copy of k whose value is masked in output.
func (k KeyRule) AsSecret() KeyRule {
	k.Secret = true
	return k
}

// Describe returns a copy of k with a description.
func (k KeyRule) Describe(text string) KeyRule {
	k.Description = text
	return k
}

// Check runs the key's rule against value.
func (k KeyRule) Check(value any) (any, error) {
	if k.Validate == nil {
		return value, nil
	}
	return k.Validate.Validate(value)
}

// Spec maps key names to their rules.
type Spec map[string]KeyRule

// ProvideConfigSpec returns s itself, so a literal Spec can be handed to
// anything that asks for a spec provider.
func (s Spec) ProvideConfigSpec() Spec {
	return s
}

// Declares reports whether key is part of the spec.
func (s Spec) Declares(key string) bool {
	_, ok := s[key]
	return ok
}

// Keys returns the declared keys in ascending order.
func (s Spec) Keys() []string {
	return util.SortedKeys(s)
}

// Clone returns a shallow copy of the spec.
func (s Spec) Clone() Spec {
	out := make(Spec, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
