package validation

import (
	stderrors "errors"

	"github.com/kbukum/envcascade/errors"
	"github.com/kbukum/envcascade/resolve"
	"github.com/kbukum/envcascade/schema"
)

// Outcome accumulates every failure of one validation pass.
type Outcome struct {
	MissingKeys      []string
	ValidationErrors []string
	// Values holds the coerced value of every declared key. Unresolved
	// optional keys map to nil.
	Values map[string]any
}

// Valid reports whether no failure was recorded.
func (o *Outcome) Valid() bool {
	return len(o.MissingKeys) == 0 && len(o.ValidationErrors) == 0
}

// Err returns the composite InvalidConfiguration error, or nil when valid.
func (o *Outcome) Err() error {
	if o.Valid() {
		return nil
	}
	return errors.InvalidConfiguration(o.MissingKeys, o.ValidationErrors)
}

func (o *Outcome) missing(key string) {
	o.MissingKeys = append(o.MissingKeys, Message(key, "is required, but missing"))
}

func (o *Outcome) invalid(key, msg string) {
	o.ValidationErrors = append(o.ValidationErrors, Message(key, msg))
}

// Message formats a failure the way it is reported: the quoted key followed
// by the rule's message, e.g. `"PORT" must be a number`.
func Message(key, msg string) string {
	return `"` + key + `" ` + msg
}

// Validate checks every declared key of res against spec. Keys are visited
// in sorted order so reports are stable.
//
// An unresolved required key is reported as missing and its default is not
// checked. An unresolved optional key is skipped. Resolved keys, including
// those resolved from a default, are run through their rule. When
// allowExtras is false each extra is reported as not allowed.
func Validate(spec schema.Spec, res *resolve.Result, allowExtras bool) *Outcome {
	out := &Outcome{Values: make(map[string]any, len(spec))}

	for _, key := range spec.Keys() {
		rule := spec[key]
		entry := res.Trace[key]

		if !entry.Resolved() {
			out.Values[key] = nil
			if rule.Required {
				out.missing(key)
			}
			continue
		}

		value, err := rule.Check(entry.ResolvedValue)
		if err != nil {
			out.invalid(key, ruleMessage(err))
			continue
		}
		out.Values[key] = value
	}

	if !allowExtras {
		for _, key := range res.Extras {
			out.invalid(key, "is not allowed")
		}
	}

	return out
}

func ruleMessage(err error) string {
	var verr *schema.ValidationError
	if stderrors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}
