// Package schema declares the configuration keys an application accepts.
//
// A Spec maps each key to a KeyRule: the Rule that validates (and coerces)
// its value, whether it is required, an optional default, and whether the
// value is secret.
//
//	spec := schema.Spec{
//	    "PORT":         schema.Required(schema.Int().Tag("min=1,max=65535")),
//	    "LOG_LEVEL":    schema.Optional(schema.OneOf("debug", "info", "warn")).WithDefault("info"),
//	    "DATABASE_URL": schema.Required(schema.String().Tag("url")).AsSecret(),
//	}
//
// Rules return the coerced value on success. On failure the error message is
// the part that follows the quoted key in a report, for example
// "must be a number".
//
// Specs can also be declared in YAML and read with LoadFile:
//
//	PORT:
//	  validate: int,min=1,max=65535
//	  required: true
//	LOG_LEVEL:
//	  validate: oneof=debug info warn
//	  default: info
package schema
