package traceapi

import (
	"fmt"

	"github.com/kbukum/envcascade/schema"
)

// Config holds HTTP server configuration. Field tags match Spec so a
// resolved Manager can be bound straight into it.
type Config struct {
	Host         string `env:"ENVCHECK_HOST"`
	Port         int    `env:"ENVCHECK_PORT"`
	ReadTimeout  int    `env:"ENVCHECK_READ_TIMEOUT"`  // seconds
	WriteTimeout int    `env:"ENVCHECK_WRITE_TIMEOUT"` // seconds
	IdleTimeout  int    `env:"ENVCHECK_IDLE_TIMEOUT"`  // seconds
}

// Spec declares the server settings as configuration keys. Its defaults are
// the only ones; a bound zero is kept as given.
func Spec() schema.Spec {
	return schema.Spec{
		"ENVCHECK_HOST":          schema.Optional(schema.String().AllowEmpty()).WithDefault("").Describe("listen host"),
		"ENVCHECK_PORT":          schema.Optional(schema.Int().Tag("min=0,max=65535")).WithDefault(8080).Describe("listen port"),
		"ENVCHECK_READ_TIMEOUT":  schema.Optional(schema.Int().Tag("min=0")).WithDefault(15),
		"ENVCHECK_WRITE_TIMEOUT": schema.Optional(schema.Int().Tag("min=0")).WithDefault(15),
		"ENVCHECK_IDLE_TIMEOUT":  schema.Optional(schema.Int().Tag("min=0")).WithDefault(60),
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535 (got: %d)", c.Port)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("server.read_timeout must be non-negative (got: %d)", c.ReadTimeout)
	}
	if c.WriteTimeout < 0 {
		return fmt.Errorf("server.write_timeout must be non-negative (got: %d)", c.WriteTimeout)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("server.idle_timeout must be non-negative (got: %d)", c.IdleTimeout)
	}
	return nil
}
