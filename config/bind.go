package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cast"
)

// Bind decodes the resolved values into target, a pointer to a struct whose
// fields carry `env:"KEY"` tags. Only declared keys with a value are
// visible; the process environment is not consulted again.
//
//	var cfg struct {
//	    Port    int           `env:"PORT"`
//	    Timeout time.Duration `env:"TIMEOUT" envDefault:"5s"`
//	}
//	err := m.Bind(&cfg)
func (m *Manager) Bind(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Environment: m.stringValues()}); err != nil {
		return fmt.Errorf("binding configuration: %w", err)
	}
	return nil
}

func (m *Manager) stringValues() map[string]string {
	out := make(map[string]string, len(m.values))
	for key, v := range m.values {
		if v == nil {
			continue
		}
		out[key] = stringify(v)
	}
	return out
}

func stringify(v any) string {
	if d, ok := v.(time.Duration); ok {
		return d.String()
	}
	return cast.ToString(v)
}
