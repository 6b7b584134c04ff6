package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/envcascade/config"
	"github.com/kbukum/envcascade/schema"
)

// resolveFlags are the source selection flags shared by show and serve.
type resolveFlags struct {
	spec         string
	file         string
	folder       string
	root         string
	envKey       string
	allowExtras  bool
	allowMissing bool
}

func (f *resolveFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.spec, "spec", "s", "config.spec.yaml", "YAML file declaring the configuration keys")
	fl.StringVarP(&f.file, "file", "f", "", "Read this env file")
	fl.StringVar(&f.folder, "folder", "", "Read <folder>/config/<environment>.env")
	fl.StringVar(&f.root, "root", "", "Project root folder (default: working directory)")
	fl.StringVar(&f.envKey, "env-key", "NODE_ENV", "Variable naming the environment")
	fl.BoolVar(&f.allowExtras, "allow-extras", false, "Accept keys the spec does not declare")
	fl.BoolVar(&f.allowMissing, "allow-missing", false, "Treat a missing env file as empty")
	cmd.MarkFlagsMutuallyExclusive("file", "folder")
}

func (a *app) resolve(cmd *cobra.Command, f *resolveFlags) (*config.Manager, error) {
	spec, err := schema.LoadFile(f.spec)
	if err != nil {
		return nil, fmt.Errorf("failed to load spec: %w", err)
	}

	opts := []config.Option{
		config.WithEnvironment(a.env),
		config.WithEnvKey(f.envKey),
		config.WithAllowExtras(f.allowExtras),
		config.WithAllowMissingEnvFile(f.allowMissing),
		config.WithRootDir(f.root),
		config.WithExitOnError(false),
		config.WithLogger(a.log),
		config.WithContext(cmd.Context()),
	}
	if a.metrics != nil {
		opts = append(opts, config.WithMetrics(a.metrics))
	}
	if f.file != "" {
		opts = append(opts, config.WithFile(f.file))
	} else {
		opts = append(opts, config.WithEnvFolder(f.folder))
	}

	return config.New(spec, opts...)
}
