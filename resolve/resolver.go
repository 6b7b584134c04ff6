package resolve

import (
	"slices"

	"github.com/kbukum/envcascade/schema"
	"github.com/kbukum/envcascade/source"
)

// Result is the outcome of one resolution pass.
type Result struct {
	// Values holds the winning raw value of every declared key. Keys no layer
	// supplied map to nil.
	Values map[string]any
	// Trace has one entry per declared key and per extra.
	Trace Trace
	// Extras lists undeclared keys found in the source file, sorted.
	Extras []string
}

// Unresolved returns the declared keys no layer supplied, sorted.
func (r *Result) Unresolved() []string {
	var keys []string
	for key, entry := range r.Trace {
		if !entry.IsExtra && !entry.Resolved() {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys
}

// Resolve merges env, file and the spec defaults.
//
// Undeclared keys that only exist in the process environment are ignored;
// the environment of a real process carries far more variables than any
// spec declares.
func Resolve(spec schema.Spec, file source.Values, env source.Environment) *Result {
	res := &Result{
		Values: make(map[string]any, len(spec)),
		Trace:  make(Trace, len(spec)),
	}

	for key, rule := range spec {
		entry := TraceEntry{
			Default:      NotSet,
			Dotenv:       NotSet,
			Env:          NotSet,
			ResolvedFrom: LayerNone,
		}
		envVal, inEnv := env.Lookup(key)
		fileVal, inFile := file[key]
		if inEnv {
			entry.Env = envVal
		}
		if inFile {
			entry.Dotenv = fileVal
		}
		if rule.HasDefault {
			entry.Default = rule.Default
		}

		switch {
		case inEnv:
			entry.ResolvedFrom, entry.ResolvedValue = LayerEnv, envVal
		case inFile:
			entry.ResolvedFrom, entry.ResolvedValue = LayerDotenv, fileVal
		case rule.HasDefault:
			entry.ResolvedFrom, entry.ResolvedValue = LayerDefault, rule.Default
		}

		res.Values[key] = entry.ResolvedValue
		res.Trace[key] = entry
	}

	for key, fileVal := range file {
		if spec.Declares(key) {
			continue
		}
		entry := TraceEntry{
			Default:       NotSet,
			Dotenv:        fileVal,
			Env:           NotSet,
			IsExtra:       true,
			ResolvedFrom:  LayerDotenv,
			ResolvedValue: fileVal,
		}
		if envVal, ok := env.Lookup(key); ok {
			entry.Env = envVal
			entry.ResolvedFrom, entry.ResolvedValue = LayerEnv, envVal
		}
		res.Trace[key] = entry
		res.Extras = append(res.Extras, key)
	}
	slices.Sort(res.Extras)

	return res
}
