package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cast"

	"github.com/kbukum/envcascade/errors"
	"github.com/kbukum/envcascade/logger"
	"github.com/kbukum/envcascade/observability"
	"github.com/kbukum/envcascade/resolve"
	"github.com/kbukum/envcascade/schema"
	"github.com/kbukum/envcascade/source"
	"github.com/kbukum/envcascade/validation"
)

// SpecProvider supplies the spec a Manager resolves.
type SpecProvider interface {
	ProvideConfigSpec() schema.Spec
}

// SpecFunc adapts a function to SpecProvider.
type SpecFunc func() schema.Spec

// ProvideConfigSpec calls f.
func (f SpecFunc) ProvideConfigSpec() schema.Spec { return f() }

// Manager holds a validated configuration. It is immutable once built and
// safe for concurrent reads.
type Manager struct {
	spec   schema.Spec
	values map[string]any
	trace  resolve.Trace
	extras []string
	source string
	log    *logger.Logger
}

// New resolves and validates the configuration described by provider.
//
// On failure nothing is returned but the error. With ExitOnError (the
// default) the failure is reported and the process exits with status 1
// before New returns.
func New(provider SpecProvider, opts ...Option) (*Manager, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.Environment == nil {
		o.Environment = source.FromOS()
	}
	if o.Logger == nil {
		o.Logger = logger.GetGlobalLogger()
	}
	log := o.Logger.WithComponent("config")

	ctx, span := observability.StartSpan(o.Context, observability.SpanConfigResolve)
	defer span.End()
	start := time.Now()

	m, err := build(provider, o, log)

	status := resolutionStatus(err)
	strategy := strategyName(o.Strategy)
	observability.SetSpanAttribute(ctx, observability.AttrStrategy, strategy)
	observability.SetSpanAttribute(ctx, observability.AttrStatus, status)
	if o.Metrics != nil {
		o.Metrics.RecordResolution(ctx, strategy, status, time.Since(start))
	}

	if err != nil {
		observability.SetSpanError(ctx, err)
		if cfgErr, ok := errors.As(err); ok {
			observability.SetSpanAttribute(ctx, observability.AttrErrorCode, string(cfgErr.Code))
			observability.SetSpanAttribute(ctx, observability.AttrMissingCount, len(cfgErr.MissingKeys))
			observability.SetSpanAttribute(ctx, observability.AttrInvalidCount, len(cfgErr.ValidationErrors))
			if o.Metrics != nil {
				o.Metrics.RecordFailures(ctx, "missing", len(cfgErr.MissingKeys))
				o.Metrics.RecordFailures(ctx, "invalid", len(cfgErr.ValidationErrors))
			}
		}
		logFailure(log, err)
		if o.ExitOnError {
			if o.Reporter != nil {
				o.Reporter.Report(err)
			}
			o.Exit(1)
		}
		return nil, err
	}

	observability.SetSpanAttribute(ctx, observability.AttrSourcePath, m.source)
	observability.SetSpanAttribute(ctx, observability.AttrKeyCount, len(m.spec))
	observability.SetSpanAttribute(ctx, observability.AttrExtraCount, len(m.extras))
	if o.Metrics != nil {
		for layer, n := range m.layerCounts() {
			o.Metrics.RecordLayer(ctx, string(layer), n)
		}
	}

	if o.TraceLog || traceRequested(o.Environment) {
		logTrace(log, m.spec, m.trace)
	}
	log.Debug("configuration resolved", logger.Fields(
		logger.FieldPath, m.source,
		logger.FieldStrategy, strategy,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return m, nil
}

// MustNew is like New but panics on error. ExitOnError is forced off.
func MustNew(provider SpecProvider, opts ...Option) *Manager {
	opts = append(opts, WithExitOnError(false))
	m, err := New(provider, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

func build(provider SpecProvider, o *Options, log *logger.Logger) (*Manager, error) {
	if provider == nil {
		return nil, errors.InvalidSpec("", fmt.Errorf("no config spec provided"))
	}
	spec := provider.ProvideConfigSpec().Clone()

	loader := &source.Loader{
		FileSystem:   o.FileSystem,
		RootDir:      o.RootDir,
		EnvKey:       o.EnvKey,
		AllowMissing: o.AllowMissingEnvFile,
	}
	loaded, err := loader.Load(o.Strategy, o.Environment)
	if err != nil {
		return nil, err
	}
	switch {
	case loaded.Missing:
		log.Warn("environment file not found, continuing without it", logger.Fields(logger.FieldPath, loaded.Path))
	case loaded.Path != "":
		log.Debug("environment file loaded", logger.Fields(
			logger.FieldPath, loaded.Path,
			"keys", len(loaded.Values),
		))
	}

	res := resolve.Resolve(spec, loaded.Values, o.Environment)
	outcome := validation.Validate(spec, res, o.AllowExtras)
	if err := outcome.Err(); err != nil {
		return nil, err
	}

	return &Manager{
		spec:   spec,
		values: outcome.Values,
		trace:  res.Trace,
		extras: res.Extras,
		source: loaded.Path,
		log:    log,
	}, nil
}

// resolutionStatus classifies the outcome of New for spans and metrics.
func resolutionStatus(err error) string {
	if err == nil {
		return observability.StatusOK
	}
	cfgErr, ok := errors.As(err)
	switch {
	case !ok:
		return observability.StatusError
	case errors.IsSourceCode(cfgErr.Code):
		return observability.StatusSourceError
	case cfgErr.Code == errors.ErrCodeInvalidConfiguration:
		return observability.StatusInvalid
	default:
		return observability.StatusError
	}
}

func strategyName(s source.Strategy) string {
	if s == nil {
		return source.EnvFolder("").Name()
	}
	return s.Name()
}

func traceRequested(env source.Environment) bool {
	v, _ := env.Lookup("DEBUG")
	return v == "trace"
}

func (m *Manager) layerCounts() map[resolve.Layer]int {
	counts := make(map[resolve.Layer]int, 3)
	for key := range m.spec {
		if entry := m.trace[key]; entry.Resolved() {
			counts[entry.ResolvedFrom]++
		}
	}
	return counts
}

// Get returns the validated value of key, or nil when the key is not
// declared or was not supplied.
func (m *Manager) Get(key string) any {
	return m.values[key]
}

// Lookup returns the value of key and whether the key is declared.
func (m *Manager) Lookup(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Trace returns a copy of the resolution trace, including extras.
func (m *Manager) Trace() resolve.Trace {
	return m.trace.Clone()
}

// MaskedTrace returns a copy of the trace with secret keys masked.
func (m *Manager) MaskedTrace() resolve.Trace {
	out := m.trace.Clone()
	for key, entry := range out {
		if m.spec[key].Secret {
			out[key] = entry.Masked()
		}
	}
	return out
}

// TraceOf returns the trace entry of key.
func (m *Manager) TraceOf(key string) (resolve.TraceEntry, bool) {
	entry, ok := m.trace[key]
	return entry, ok
}

// Keys returns the declared keys, sorted.
func (m *Manager) Keys() []string {
	return m.spec.Keys()
}

// Extras returns the undeclared keys found in the source file.
func (m *Manager) Extras() []string {
	return slices.Clone(m.extras)
}

// Spec returns a copy of the spec the Manager was built from.
func (m *Manager) Spec() schema.Spec {
	return m.spec.Clone()
}

// Source returns the path of the source file, even when it was missing.
func (m *Manager) Source() string {
	return m.source
}

// GetString returns key as a string.
func (m *Manager) GetString(key string) string {
	return cast.ToString(m.Get(key))
}

// GetInt returns key as an int.
func (m *Manager) GetInt(key string) int {
	return cast.ToInt(m.Get(key))
}

// GetFloat returns key as a float64.
func (m *Manager) GetFloat(key string) float64 {
	return cast.ToFloat64(m.Get(key))
}

// GetBool returns key as a bool.
func (m *Manager) GetBool(key string) bool {
	return cast.ToBool(m.Get(key))
}

// GetDuration returns key as a time.Duration.
func (m *Manager) GetDuration(key string) time.Duration {
	return cast.ToDuration(m.Get(key))
}

// MustGet returns the value of key or panics when it is not declared.
func (m *Manager) MustGet(key string) any {
	v, ok := m.Lookup(key)
	if !ok {
		panic(fmt.Sprintf("config: %v", errors.UnknownKey(key)))
	}
	return v
}
