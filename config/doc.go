// Package config resolves an application's configuration from three layers
// and validates it against a declared spec.
//
// A Manager is built once at startup. Each declared key is taken from the
// process environment, then the source file, then the spec default. The
// merged values are validated and the Manager is returned only when every
// check passes.
//
//	spec := schema.Spec{
//	    "PORT":     schema.Required(schema.Int().Tag("min=1,max=65535")),
//	    "LOG_MODE": schema.Optional(schema.OneOf("json", "console")).WithDefault("console"),
//	}
//
//	cfg, err := config.New(spec,
//	    config.WithEnvFolder("deploy"),
//	    config.WithExitOnError(false),
//	)
//	if err != nil {
//	    return err
//	}
//	port := cfg.GetInt("PORT")
//
// Trace reports, per key, what each layer supplied and which one won.
package config
