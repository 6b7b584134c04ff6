package source

import (
	"os"

	"github.com/caarlos0/env/v11"
)

// Values is the key/value mapping read from a source file.
type Values map[string]string

// Environment is an immutable snapshot of process environment variables.
type Environment map[string]string

// FromOS captures the current process environment.
func FromOS() Environment {
	return FromList(os.Environ())
}

// FromList builds a snapshot from KEY=VALUE pairs as returned by os.Environ.
func FromList(pairs []string) Environment {
	return Environment(env.ToMap(pairs))
}

// Lookup returns the value of key and whether it is set. An empty value
// still counts as set.
func (e Environment) Lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

// Clone returns a copy of the snapshot.
func (e Environment) Clone() Environment {
	out := make(Environment, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
