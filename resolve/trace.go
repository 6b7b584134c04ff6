package resolve

import (
	"github.com/spf13/cast"

	"github.com/kbukum/envcascade/util"
)

// NotSet marks a layer that did not supply a key.
const NotSet = "--"

// Layer names a resolution layer.
type Layer string

const (
	LayerEnv     Layer = "env"
	LayerDotenv  Layer = "dotenv"
	LayerDefault Layer = "default"
	// LayerNone means no layer supplied the key.
	LayerNone Layer = NotSet
)

// TraceEntry records what each layer supplied for one key.
type TraceEntry struct {
	Default       any    `json:"default"`
	Dotenv        string `json:"dotenv"`
	Env           string `json:"env"`
	IsExtra       bool   `json:"isExtra"`
	ResolvedFrom  Layer  `json:"resolvedFrom"`
	ResolvedValue any    `json:"resolvedValue"`
}

// Resolved reports whether any layer supplied the key.
func (e TraceEntry) Resolved() bool {
	return e.ResolvedFrom != LayerNone
}

// Masked returns a copy of e with every supplied value hidden.
func (e TraceEntry) Masked() TraceEntry {
	if e.Default != NotSet {
		e.Default = mask(e.Default)
	}
	if e.Dotenv != NotSet {
		e.Dotenv = mask(e.Dotenv)
	}
	if e.Env != NotSet {
		e.Env = mask(e.Env)
	}
	if e.ResolvedValue != nil {
		e.ResolvedValue = mask(e.ResolvedValue)
	}
	return e
}

func mask(v any) string {
	return util.MaskSecret(cast.ToString(v), 0)
}

// Trace maps keys to their entries.
type Trace map[string]TraceEntry

// Clone returns a copy of t.
func (t Trace) Clone() Trace {
	out := make(Trace, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
