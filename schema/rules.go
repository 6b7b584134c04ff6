package schema

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

type kind int

const (
	kindAny kind = iota
	kindString
	kindNumber
	kindInt
	kindBool
	kindDuration
	kindUUID
	kindOneOf
)

var kindNames = map[kind]string{
	kindAny:      "any",
	kindString:   "string",
	kindNumber:   "number",
	kindInt:      "int",
	kindBool:     "bool",
	kindDuration: "duration",
	kindUUID:     "uuid",
	kindOneOf:    "oneof",
}

// TypedRule is the built-in Rule. It coerces the value to its type and then
// checks any validator tags added with Tag.
type TypedRule struct {
	kind       kind
	tags       string
	allowEmpty bool
	choices    []string
}

// Any accepts every value unchanged.
func Any() TypedRule { return TypedRule{kind: kindAny} }

// String accepts non-empty strings.
func String() TypedRule { return TypedRule{kind: kindString} }

// Number accepts numbers and numeric strings and yields a float64.
func Number() TypedRule { return TypedRule{kind: kindNumber} }

// Int accepts whole numbers and integer strings and yields an int.
func Int() TypedRule { return TypedRule{kind: kindInt} }

// Bool accepts booleans and boolean strings ("true", "false", "1", "0", ...).
func Bool() TypedRule { return TypedRule{kind: kindBool} }

// Duration accepts time.Duration values and duration strings such as "5s".
func Duration() TypedRule { return TypedRule{kind: kindDuration} }

// UUID accepts strings that parse as a UUID.
func UUID() TypedRule { return TypedRule{kind: kindUUID} }

// OneOf accepts one of the given strings.
func OneOf(choices ...string) TypedRule {
	return TypedRule{kind: kindOneOf, choices: slices.Clone(choices)}
}

// Tag returns a copy of r that also checks the given go-playground/validator
// tags against the coerced value, for example "min=1,max=65535" or "url".
func (r TypedRule) Tag(tags string) TypedRule {
	if r.tags != "" && tags != "" {
		r.tags += "," + tags
	} else if tags != "" {
		r.tags = tags
	}
	return r
}

// AllowEmpty returns a copy of r that accepts the empty string.
func (r TypedRule) AllowEmpty() TypedRule {
	r.allowEmpty = true
	return r
}

// String describes the rule in the same form Parse accepts.
func (r TypedRule) String() string {
	head := kindNames[r.kind]
	if r.kind == kindOneOf {
		head = "oneof=" + strings.Join(r.choices, " ")
	}
	if r.tags == "" {
		return head
	}
	return head + "," + r.tags
}

// Validate coerces value and checks the rule's tags.
func (r TypedRule) Validate(value any) (any, error) {
	v, err := r.coerce(value)
	if err != nil {
		return nil, err
	}
	if r.tags != "" {
		if err := checkTags(v, r.tags); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (r TypedRule) coerce(value any) (any, error) {
	switch r.kind {
	case kindString:
		return r.coerceString(value)
	case kindNumber:
		return coerceNumber(value)
	case kindInt:
		return coerceInt(value)
	case kindBool:
		return coerceBool(value)
	case kindDuration:
		return coerceDuration(value)
	case kindUUID:
		return coerceUUID(value)
	case kindOneOf:
		return r.coerceOneOf(value)
	default:
		return value, nil
	}
}

func (r TypedRule) coerceString(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, Fail("must be a string")
	}
	if s == "" && !r.allowEmpty {
		return nil, Fail("is not allowed to be empty")
	}
	return s, nil
}

func coerceNumber(value any) (any, error) {
	if s, ok := value.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, Fail("must be a number")
		}
		value = s
	} else if !isNumeric(value) {
		return nil, Fail("must be a number")
	}
	f, err := cast.ToFloat64E(value)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, Fail("must be a number")
	}
	return f, nil
}

func coerceInt(value any) (any, error) {
	if s, ok := value.(string); ok {
		if i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 0); err == nil {
			return int(i), nil
		}
	}
	if isInteger(value) {
		return cast.ToIntE(value)
	}
	n, err := coerceNumber(value)
	if err != nil {
		return nil, Fail("must be an integer")
	}
	f := n.(float64)
	if f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return nil, Fail("must be an integer")
	}
	return int(f), nil
}

func coerceBool(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, Fail("must be a boolean")
		}
		b, err := cast.ToBoolE(strings.ToLower(strings.TrimSpace(v)))
		if err != nil {
			return nil, Fail("must be a boolean")
		}
		return b, nil
	default:
		return nil, Fail("must be a boolean")
	}
}

func coerceDuration(value any) (any, error) {
	switch v := value.(type) {
	case time.Duration:
		return v, nil
	case string:
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return nil, Fail("must be a duration")
		}
		return d, nil
	default:
		if !isInteger(value) {
			return nil, Fail("must be a duration")
		}
		d, err := cast.ToDurationE(value)
		if err != nil {
			return nil, Fail("must be a duration")
		}
		return d, nil
	}
}

func coerceUUID(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, Fail("must be a valid GUID")
	}
	if _, err := uuid.Parse(s); err != nil {
		return nil, Fail("must be a valid GUID")
	}
	return s, nil
}

func (r TypedRule) coerceOneOf(value any) (any, error) {
	s, err := cast.ToStringE(value)
	if err == nil && slices.Contains(r.choices, s) {
		return s, nil
	}
	return nil, Fail("must be one of [%s]", strings.Join(r.choices, ", "))
}

func isInteger(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func isNumeric(value any) bool {
	switch value.(type) {
	case float32, float64:
		return true
	}
	return isInteger(value)
}

// namedRule maps the type names accepted by Parse to their rules.
func namedRule(name string) (TypedRule, bool) {
	switch strings.ToLower(name) {
	case "any", "":
		return Any(), true
	case "string", "str":
		return String(), true
	case "number", "float":
		return Number(), true
	case "int", "integer":
		return Int(), true
	case "bool", "boolean":
		return Bool(), true
	case "duration":
		return Duration(), true
	case "uuid", "guid":
		return UUID(), true
	}
	return TypedRule{}, false
}

// Parse builds a rule from a textual declaration: a type name optionally
// followed by validator tags, e.g. "number,min=1" or "string,url". A
// declaration starting with "oneof=" lists the accepted values separated by
// spaces. A declaration without a known type name is treated as tags on a
// string.
func Parse(decl string) (TypedRule, error) {
	decl = strings.TrimSpace(decl)
	head, tags, _ := strings.Cut(decl, ",")

	var rule TypedRule
	switch {
	case strings.HasPrefix(head, "oneof="):
		rule = OneOf(strings.Fields(strings.TrimPrefix(head, "oneof="))...)
	default:
		r, ok := namedRule(head)
		if !ok {
			r, tags = String(), decl
		}
		rule = r
	}

	if tags != "" {
		if err := checkTagSyntax(tags); err != nil {
			return TypedRule{}, fmt.Errorf("rule %q: %w", decl, err)
		}
		rule = rule.Tag(tags)
	}
	return rule, nil
}
