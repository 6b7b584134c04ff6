package config

import (
	"context"
	"os"

	"github.com/kbukum/envcascade/logger"
	"github.com/kbukum/envcascade/observability"
	"github.com/kbukum/envcascade/source"
)

// Options controls how a Manager finds and checks its configuration.
type Options struct {
	// Strategy picks the source file. Nil means the env folder strategy
	// rooted at the project root.
	Strategy source.Strategy
	// EnvKey names the variable holding the environment name.
	EnvKey string
	// ExitOnError reports the failure and exits the process with status 1.
	ExitOnError bool
	// AllowExtras accepts undeclared keys in the source file.
	AllowExtras bool
	// AllowMissingEnvFile treats a missing source file as empty.
	AllowMissingEnvFile bool
	RootDir             string
	// Environment is the process environment snapshot. Nil means os.Environ.
	Environment source.Environment
	FileSystem  source.FileSystem
	Logger      *logger.Logger
	Exit        func(code int)
	Reporter    Reporter
	Context     context.Context
	Metrics     *observability.Metrics
	// TraceLog logs every trace entry after a successful resolution.
	// DEBUG=trace in the environment turns it on as well.
	TraceLog bool
}

// Option configures a Manager.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		EnvKey:      source.DefaultEnvKey,
		ExitOnError: true,
		Exit:        os.Exit,
		Reporter:    StderrReporter(),
		Context:     context.Background(),
	}
}

// WithFile reads the given file. Relative paths start at the root folder.
func WithFile(path string) Option {
	return func(o *Options) { o.Strategy = source.File(path) }
}

// WithEnvFolder reads <folder>/config/<environment>.env.
func WithEnvFolder(folder string) Option {
	return func(o *Options) { o.Strategy = source.EnvFolder(folder) }
}

// WithResolver builds the source path with fn.
func WithResolver(fn source.ResolverFunc) Option {
	return func(o *Options) { o.Strategy = source.Func(fn) }
}

// WithStrategy sets the source strategy directly.
func WithStrategy(s source.Strategy) Option {
	return func(o *Options) { o.Strategy = s }
}

// WithEnvKey sets the variable holding the environment name.
func WithEnvKey(key string) Option {
	return func(o *Options) { o.EnvKey = key }
}

// WithExitOnError controls whether failures terminate the process.
func WithExitOnError(exit bool) Option {
	return func(o *Options) { o.ExitOnError = exit }
}

// WithAllowExtras controls whether undeclared file keys are accepted.
func WithAllowExtras(allow bool) Option {
	return func(o *Options) { o.AllowExtras = allow }
}

// WithAllowMissingEnvFile controls whether a missing source file is an error.
func WithAllowMissingEnvFile(allow bool) Option {
	return func(o *Options) { o.AllowMissingEnvFile = allow }
}

// WithRootDir sets the project root folder.
func WithRootDir(dir string) Option {
	return func(o *Options) { o.RootDir = dir }
}

// WithEnvironment replaces the process environment snapshot.
func WithEnvironment(env source.Environment) Option {
	return func(o *Options) { o.Environment = env }
}

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs source.FileSystem) Option {
	return func(o *Options) { o.FileSystem = fs }
}

// WithLogger sets the logger used during resolution.
func WithLogger(l *logger.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithExit replaces os.Exit.
func WithExit(fn func(code int)) Option {
	return func(o *Options) { o.Exit = fn }
}

// WithReporter sets where failures are reported before exiting.
func WithReporter(r Reporter) Option {
	return func(o *Options) { o.Reporter = r }
}

// WithContext sets the parent context of the resolution span.
func WithContext(ctx context.Context) Option {
	return func(o *Options) { o.Context = ctx }
}

// WithMetrics records resolution metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}

// WithTraceLog logs the resolution trace once the Manager is built.
func WithTraceLog(enabled bool) Option {
	return func(o *Options) { o.TraceLog = enabled }
}
