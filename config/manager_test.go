package config

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/envcascade/errors"
	"github.com/kbukum/envcascade/logger"
	"github.com/kbukum/envcascade/observability"
	"github.com/kbukum/envcascade/resolve"
	"github.com/kbukum/envcascade/schema"
	"github.com/kbukum/envcascade/source"
)

func config1() schema.Spec {
	return schema.Spec{
		"TEST1": schema.Required(schema.String()),
		"TEST2": schema.Required(schema.Number()),
		"TEST3": schema.Optional(schema.Number()).WithDefault(3333),
		"TEST4": schema.Optional(schema.String()).WithDefault("4444"),
	}
}

var fixtures = map[string]string{
	"test1.env": "TEST1=abc\nTEST2=123\n",
	"test2.env": "TEST2=123\n",
	"test3.env": "TEST1=abc\nTEST2=abc\n",
	"test4.env": "# nothing set\n",
	"test5.env": "TEST2=abc\n",
	"test6.env": "TEST1=abc\nTEST2=123\nTEST4=FOURTYFOUR\n",
	"test7.env": "TEST1=abc\nTEST2=123\nEXTRA=abc\n",
}

// writeFixtures lays out <root>/testconfigs/config/*.env and returns root.
func writeFixtures(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "testconfigs", "config")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	for name, content := range fixtures {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return root
}

// newManager builds a Manager with exiting disabled and logging silenced.
func newManager(t *testing.T, root string, env source.Environment, opts ...Option) (*Manager, error) {
	t.Helper()
	base := []Option{
		WithRootDir(root),
		WithEnvironment(env),
		WithExitOnError(false),
		WithLogger(logger.Nop()),
	}
	return New(config1(), append(base, opts...)...)
}

func mustConfigError(t *testing.T, err error) *errors.ConfigError {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	cfgErr, ok := errors.As(err)
	if !ok {
		t.Fatalf("expected *errors.ConfigError, got %T: %v", err, err)
	}
	return cfgErr
}

func TestNew_Compiles(t *testing.T) {
	root := writeFixtures(t)
	m, err := newManager(t, root, source.Environment{"NODE_ENV": "test"},
		WithFile("testconfigs/config/test1.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil {
		t.Fatal("expected non-nil manager")
	}
	if m.Get("TEST1") != "abc" {
		t.Errorf("expected TEST1=abc, got %v", m.Get("TEST1"))
	}
	if m.Get("TEST2") != float64(123) {
		t.Errorf("expected TEST2 coerced to 123, got %#v", m.Get("TEST2"))
	}
	if m.Get("TEST3") != float64(3333) {
		t.Errorf("expected TEST3 default, got %#v", m.Get("TEST3"))
	}
	if want := filepath.Join(root, "testconfigs/config/test1.env"); m.Source() != want {
		t.Errorf("expected source %q, got %q", want, m.Source())
	}
	for _, key := range m.Keys() {
		if first, second := m.Get(key), m.Get(key); first != second {
			t.Errorf("%s: repeated Get returned %#v then %#v", key, first, second)
		}
	}
}

func TestNew_ValidationFailures(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		wantMissing []string
		wantInvalid []string
	}{
		{
			name:        "missing required",
			file:        "test2.env",
			wantMissing: []string{`"TEST1" is required, but missing`},
		},
		{
			name:        "string for number",
			file:        "test3.env",
			wantInvalid: []string{`"TEST2" must be a number`},
		},
		{
			name: "multiple missing",
			file: "test4.env",
			wantMissing: []string{
				`"TEST1" is required, but missing`,
				`"TEST2" is required, but missing`,
			},
		},
		{
			name:        "missing and invalid",
			file:        "test5.env",
			wantMissing: []string{`"TEST1" is required, but missing`},
			wantInvalid: []string{`"TEST2" must be a number`},
		},
	}

	root := writeFixtures(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := newManager(t, root, source.Environment{"NODE_ENV": "test"},
				WithFile("testconfigs/config/"+tc.file))
			if m != nil {
				t.Fatal("expected no manager on failure")
			}
			cfgErr := mustConfigError(t, err)
			if cfgErr.Error() != "Invalid Configuration" {
				t.Errorf("unexpected message %q", cfgErr.Error())
			}
			if !slices.Equal(cfgErr.MissingKeys, tc.wantMissing) {
				t.Errorf("missing: expected %v, got %v", tc.wantMissing, cfgErr.MissingKeys)
			}
			if !slices.Equal(cfgErr.ValidationErrors, tc.wantInvalid) {
				t.Errorf("invalid: expected %v, got %v", tc.wantInvalid, cfgErr.ValidationErrors)
			}
			if !stderrors.Is(err, errors.ErrInvalidConfiguration) {
				t.Error("expected errors.Is to match ErrInvalidConfiguration")
			}
		})
	}
}

func TestNew_Cascading(t *testing.T) {
	root := writeFixtures(t)

	t.Run("env fills value missing in dotenv", func(t *testing.T) {
		m, err := newManager(t, root, source.Environment{"NODE_ENV": "test", "TEST4": "FOURFOURFOUR"},
			WithFile("testconfigs/config/test1.env"), WithAllowExtras(true))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Get("TEST4") != "FOURFOURFOUR" {
			t.Errorf("expected TEST4 from env, got %v", m.Get("TEST4"))
		}
	})

	t.Run("env overrides dotenv", func(t *testing.T) {
		m, err := newManager(t, root, source.Environment{"NODE_ENV": "test", "TEST1": "def"},
			WithFile("testconfigs/config/test1.env"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Get("TEST1") != "def" {
			t.Errorf("expected TEST1=def, got %v", m.Get("TEST1"))
		}

		want := resolve.TraceEntry{
			Default:       resolve.NotSet,
			Dotenv:        "abc",
			Env:           "def",
			ResolvedFrom:  resolve.LayerEnv,
			ResolvedValue: "def",
		}
		if got := m.Trace()["TEST1"]; got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("default when missing", func(t *testing.T) {
		m, err := newManager(t, root, source.Environment{"NODE_ENV": "test"},
			WithFile("testconfigs/config/test1.env"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := resolve.TraceEntry{
			Default:       3333,
			Dotenv:        resolve.NotSet,
			Env:           resolve.NotSet,
			ResolvedFrom:  resolve.LayerDefault,
			ResolvedValue: 3333,
		}
		if got := m.Trace()["TEST3"]; got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("env overrides default", func(t *testing.T) {
		m, err := newManager(t, root, source.Environment{"NODE_ENV": "test", "TEST4": "FOUR"},
			WithFile("testconfigs/config/test1.env"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := resolve.TraceEntry{
			Default:       "4444",
			Dotenv:        resolve.NotSet,
			Env:           "FOUR",
			ResolvedFrom:  resolve.LayerEnv,
			ResolvedValue: "FOUR",
		}
		if got := m.Trace()["TEST4"]; got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("dotenv overrides default", func(t *testing.T) {
		m, err := newManager(t, root, source.Environment{"NODE_ENV": "test"},
			WithFile("testconfigs/config/test6.env"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := resolve.TraceEntry{
			Default:       "4444",
			Dotenv:        "FOURTYFOUR",
			Env:           resolve.NotSet,
			ResolvedFrom:  resolve.LayerDotenv,
			ResolvedValue: "FOURTYFOUR",
		}
		if got := m.Trace()["TEST4"]; got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("empty env value still wins", func(t *testing.T) {
		m, err := newManager(t, root, source.Environment{"NODE_ENV": "test", "TEST4": ""},
			WithFile("testconfigs/config/test6.env"))
		if m != nil {
			t.Fatal("expected empty string to be rejected by the string rule")
		}
		cfgErr := mustConfigError(t, err)
		if !slices.Equal(cfgErr.ValidationErrors, []string{`"TEST4" is not allowed to be empty`}) {
			t.Errorf("unexpected validation errors %v", cfgErr.ValidationErrors)
		}
	})
}

func TestNew_Extras(t *testing.T) {
	root := writeFixtures(t)
	env := source.Environment{"NODE_ENV": "test"}

	t.Run("allowed", func(t *testing.T) {
		m, err := newManager(t, root, env, WithFile("testconfigs/config/test7.env"), WithAllowExtras(true))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := resolve.TraceEntry{
			Default:       resolve.NotSet,
			Dotenv:        "abc",
			Env:           resolve.NotSet,
			IsExtra:       true,
			ResolvedFrom:  resolve.LayerDotenv,
			ResolvedValue: "abc",
		}
		if got := m.Trace()["EXTRA"]; got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
		if !slices.Equal(m.Extras(), []string{"EXTRA"}) {
			t.Errorf("expected extras [EXTRA], got %v", m.Extras())
		}
		if _, ok := m.Lookup("EXTRA"); ok {
			t.Error("extras must not be readable through Get")
		}
	})

	for _, name := range []string{"default", "explicit false"} {
		t.Run("rejected "+name, func(t *testing.T) {
			opts := []Option{WithFile("testconfigs/config/test7.env")}
			if name == "explicit false" {
				opts = append(opts, WithAllowExtras(false))
			}
			_, err := newManager(t, root, env, opts...)
			cfgErr := mustConfigError(t, err)
			if cfgErr.Error() != "Invalid Configuration" {
				t.Errorf("unexpected message %q", cfgErr.Error())
			}
			if !slices.Contains(cfgErr.ValidationErrors, `"EXTRA" is not allowed`) {
				t.Errorf("expected EXTRA to be reported, got %v", cfgErr.ValidationErrors)
			}
		})
	}
}

func TestNew_EnvFolderStrategy(t *testing.T) {
	root := writeFixtures(t)

	tests := []struct {
		name   string
		env    source.Environment
		envKey string
	}{
		{"explicit NODE_ENV", source.Environment{"NODE_ENV": "test1"}, "NODE_ENV"},
		{"custom key", source.Environment{"NONNODE_ENV": "test1"}, "NONNODE_ENV"},
		{"default key", source.Environment{"NODE_ENV": "test1"}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts := []Option{WithEnvFolder("testconfigs")}
			if tc.envKey != "" {
				opts = append(opts, WithEnvKey(tc.envKey))
			}
			m, err := newManager(t, root, tc.env, opts...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.Get("TEST1") != "abc" {
				t.Errorf("expected TEST1=abc, got %v", m.Get("TEST1"))
			}
		})
	}
}

func TestNew_ResolverStrategy(t *testing.T) {
	root := writeFixtures(t)
	resolver := func(rootFolder, environment string) string {
		return fmt.Sprintf("%s/testconfigs/config/%s.env", rootFolder, environment)
	}

	t.Run("default key", func(t *testing.T) {
		m, err := newManager(t, root, source.Environment{"NODE_ENV": "test1"}, WithResolver(resolver))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Get("TEST1") != "abc" {
			t.Errorf("expected TEST1=abc, got %v", m.Get("TEST1"))
		}
	})

	t.Run("custom key", func(t *testing.T) {
		m, err := newManager(t, root, source.Environment{"ENVIRONMENT": "test1"},
			WithResolver(resolver), WithEnvKey("ENVIRONMENT"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Get("TEST1") != "abc" {
			t.Errorf("expected TEST1=abc, got %v", m.Get("TEST1"))
		}
	})
}

func TestNew_LastStrategyWins(t *testing.T) {
	root := writeFixtures(t)
	m, err := newManager(t, root, source.Environment{"NODE_ENV": "test1"},
		WithFile("testconfigs/config/nonsense.env"),
		WithEnvFolder("testconfigs"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(m.Source(), filepath.Join("config", "test1.env")) {
		t.Errorf("expected env folder path, got %q", m.Source())
	}
}

func TestNew_MissingFiles(t *testing.T) {
	root := writeFixtures(t)
	badResolver := func(rootFolder, environment string) string {
		return rootFolder + "/testconfigs/badfolder/" + environment + ".env"
	}

	tests := []struct {
		name    string
		env     source.Environment
		opts    []Option
		wantErr error
		wantMsg string
	}{
		{
			name:    "file points at bad file",
			env:     source.Environment{"NODE_ENV": "test"},
			opts:    []Option{WithFile("testconfigs/config/nonsense.env")},
			wantErr: errors.ErrMissingEnvironmentFile,
			wantMsg: "Fatal error loading environment. The following file is missing:",
		},
		{
			name:    "env folder with bad key",
			env:     source.Environment{"NODE_ENV": "test"},
			opts:    []Option{WithEnvKey("BAD_KEY"), WithEnvFolder("")},
			wantErr: errors.ErrBadEnvironmentKey,
			wantMsg: "Bad environment key: BAD_KEY",
		},
		{
			name:    "bad key even when missing file allowed",
			env:     source.Environment{"NODE_ENV": "test"},
			opts:    []Option{WithEnvKey("BAD_KEY"), WithEnvFolder("srcx"), WithAllowMissingEnvFile(true)},
			wantErr: errors.ErrBadEnvironmentKey,
			wantMsg: "Bad environment key: BAD_KEY",
		},
		{
			name:    "env folder key points to bad file",
			env:     source.Environment{"USELESS_KEY": "abc"},
			opts:    []Option{WithEnvKey("USELESS_KEY"), WithEnvFolder("")},
			wantErr: errors.ErrMissingEnvironmentFile,
			wantMsg: "Fatal error loading environment. The following file is missing:",
		},
		{
			name:    "resolver points to bad file",
			env:     source.Environment{"USELESS_KEY": "abc"},
			opts:    []Option{WithEnvKey("USELESS_KEY"), WithResolver(badResolver)},
			wantErr: errors.ErrMissingEnvironmentFile,
			wantMsg: "Fatal error loading environment. The following file is missing:",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := newManager(t, root, tc.env, tc.opts...)
			if m != nil {
				t.Fatal("expected no manager")
			}
			if !stderrors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if !strings.HasPrefix(err.Error(), tc.wantMsg) {
				t.Errorf("expected message starting with %q, got %q", tc.wantMsg, err.Error())
			}
		})
	}
}

func TestNew_AllowMissingEnvFile(t *testing.T) {
	root := writeFixtures(t)

	t.Run("env folder", func(t *testing.T) {
		m, err := newManager(t, root,
			source.Environment{"NODE_ENV": "nonsense", "TEST1": "eee", "TEST2": "555"},
			WithEnvKey("NODE_ENV"), WithEnvFolder("/nowhere"), WithAllowMissingEnvFile(true))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Get("TEST1") != "eee" {
			t.Errorf("expected TEST1=eee, got %v", m.Get("TEST1"))
		}
		if m.Source() != "/nowhere/config/nonsense.env" {
			t.Errorf("unexpected source %q", m.Source())
		}
	})

	t.Run("resolver", func(t *testing.T) {
		m, err := newManager(t, root,
			source.Environment{"USELESS_KEY": "abc", "TEST1": "eee", "TEST2": "555"},
			WithEnvKey("USELESS_KEY"),
			WithResolver(func(rootFolder, environment string) string {
				return rootFolder + "/testconfigs/badfolder/" + environment + ".env"
			}),
			WithAllowMissingEnvFile(true))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Get("TEST1") != "eee" {
			t.Errorf("expected TEST1=eee, got %v", m.Get("TEST1"))
		}
	})
}

func TestNew_ExitOnError(t *testing.T) {
	root := writeFixtures(t)

	var out bytes.Buffer
	exitCode := -1
	m, err := New(config1(),
		WithRootDir(root),
		WithEnvironment(source.Environment{"NODE_ENV": "test"}),
		WithFile("testconfigs/config/test5.env"),
		WithLogger(logger.Nop()),
		WithReporter(WriterReporter(&out)),
		WithExit(func(code int) { exitCode = code }),
	)

	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if m != nil || err == nil {
		t.Fatal("expected failure after exit hook returns")
	}
	report := out.String()
	for _, want := range []string{
		"Invalid Configuration",
		`"TEST1" is required, but missing`,
		`"TEST2" must be a number`,
	} {
		if !strings.Contains(report, want) {
			t.Errorf("expected report to contain %q, got:\n%s", want, report)
		}
	}
}

func TestNew_NoExitWhenDisabled(t *testing.T) {
	root := writeFixtures(t)
	exited := false
	reported := false
	_, err := newManager(t, root, source.Environment{"NODE_ENV": "test"},
		WithFile("testconfigs/config/test5.env"),
		WithExit(func(int) { exited = true }),
		WithReporter(ReporterFunc(func(error) { reported = true })))

	if err == nil {
		t.Fatal("expected an error")
	}
	if exited || reported {
		t.Error("expected neither exit nor report with ExitOnError disabled")
	}
}

func TestNew_NilProvider(t *testing.T) {
	_, err := New(nil, WithExitOnError(false), WithLogger(logger.Nop()))
	if !errors.HasCode(err, errors.ErrCodeInvalidSpec) {
		t.Errorf("expected INVALID_SPEC, got %v", err)
	}
}

func TestNew_SpecFunc(t *testing.T) {
	root := writeFixtures(t)
	m, err := New(SpecFunc(config1),
		WithRootDir(root),
		WithEnvironment(source.Environment{}),
		WithFile("testconfigs/config/test1.env"),
		WithExitOnError(false),
		WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(m.Keys(), []string{"TEST1", "TEST2", "TEST3", "TEST4"}) {
		t.Errorf("unexpected keys %v", m.Keys())
	}
}

func TestNew_SpecIsCopied(t *testing.T) {
	root := writeFixtures(t)
	spec := config1()
	m, err := New(spec,
		WithRootDir(root),
		WithEnvironment(source.Environment{}),
		WithFile("testconfigs/config/test1.env"),
		WithExitOnError(false),
		WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	delete(spec, "TEST1")
	if _, ok := m.Lookup("TEST1"); !ok {
		t.Error("mutating the caller's spec must not affect the manager")
	}
}

func TestNew_StructuredSource(t *testing.T) {
	root := t.TempDir()
	yaml := "test1: from-yaml\ntest2: 42\n"
	if err := os.WriteFile(filepath.Join(root, "app.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("failed to write yaml: %v", err)
	}

	m, err := newManager(t, root, source.Environment{}, WithFile("app.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Get("TEST1") != "from-yaml" {
		t.Errorf("expected TEST1 from yaml, got %v", m.Get("TEST1"))
	}
	if m.GetInt("TEST2") != 42 {
		t.Errorf("expected TEST2=42, got %d", m.GetInt("TEST2"))
	}
}

func TestManager_Getters(t *testing.T) {
	spec := schema.Spec{
		"NAME":    schema.Required(schema.String()),
		"PORT":    schema.Required(schema.Int()),
		"RATIO":   schema.Optional(schema.Number()).WithDefault("0.5"),
		"DEBUG":   schema.Optional(schema.Bool()).WithDefault(false),
		"TIMEOUT": schema.Optional(schema.Duration()).WithDefault("1m30s"),
		"UNSET":   schema.Optional(schema.String()),
	}
	m, err := New(spec,
		WithEnvironment(source.Environment{"NAME": "svc", "PORT": "8080", "DEBUG": "true"}),
		WithFileSystem(emptyFS{}),
		WithRootDir("/app"),
		WithFile(".env"),
		WithAllowMissingEnvFile(true),
		WithExitOnError(false),
		WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.GetString("NAME") != "svc" {
		t.Errorf("GetString: got %q", m.GetString("NAME"))
	}
	if m.GetInt("PORT") != 8080 {
		t.Errorf("GetInt: got %d", m.GetInt("PORT"))
	}
	if m.GetFloat("RATIO") != 0.5 {
		t.Errorf("GetFloat: got %v", m.GetFloat("RATIO"))
	}
	if !m.GetBool("DEBUG") {
		t.Error("GetBool: expected true")
	}
	if m.GetDuration("TIMEOUT") != 90*time.Second {
		t.Errorf("GetDuration: got %v", m.GetDuration("TIMEOUT"))
	}
	if v, ok := m.Lookup("UNSET"); !ok || v != nil {
		t.Errorf("expected declared UNSET with nil value, got %v (%v)", v, ok)
	}
	if m.Get("UNDECLARED") != nil {
		t.Error("expected nil for undeclared key")
	}
	if _, ok := m.Lookup("UNDECLARED"); ok {
		t.Error("expected Lookup to report undeclared key")
	}
	if entry, ok := m.TraceOf("UNSET"); !ok || entry.ResolvedFrom != resolve.LayerNone {
		t.Errorf("expected unresolved trace for UNSET, got %+v", entry)
	}
}

func TestManager_MustGet(t *testing.T) {
	m := MustNew(schema.Spec{"A": schema.Optional(schema.String()).WithDefault("a")},
		WithEnvironment(source.Environment{}),
		WithFileSystem(emptyFS{}),
		WithFile(".env"),
		WithAllowMissingEnvFile(true),
		WithLogger(logger.Nop()))

	if m.MustGet("A") != "a" {
		t.Errorf("expected a, got %v", m.MustGet("A"))
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for undeclared key")
		}
	}()
	m.MustGet("B")
}

func TestMustNew_Panics(t *testing.T) {
	exited := false
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if exited {
			t.Error("MustNew must not call exit")
		}
	}()
	MustNew(config1(),
		WithEnvironment(source.Environment{}),
		WithFileSystem(emptyFS{}),
		WithFile(".env"),
		WithAllowMissingEnvFile(true),
		WithExit(func(int) { exited = true }),
		WithLogger(logger.Nop()))
}

func TestManager_TraceIsACopy(t *testing.T) {
	root := writeFixtures(t)
	m, err := newManager(t, root, source.Environment{}, WithFile("testconfigs/config/test1.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tr := m.Trace()
	delete(tr, "TEST1")
	if _, ok := m.Trace()["TEST1"]; !ok {
		t.Error("mutating a returned trace must not affect the manager")
	}
}

func TestManager_MaskedTrace(t *testing.T) {
	spec := schema.Spec{
		"API_KEY": schema.Required(schema.String()).AsSecret(),
		"HOST":    schema.Required(schema.String()),
	}
	m, err := New(spec,
		WithEnvironment(source.Environment{"API_KEY": "s3cr3t-value", "HOST": "localhost"}),
		WithFileSystem(emptyFS{}),
		WithFile(".env"),
		WithAllowMissingEnvFile(true),
		WithExitOnError(false),
		WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	masked := m.MaskedTrace()
	if masked["API_KEY"].Env == "s3cr3t-value" || masked["API_KEY"].ResolvedValue == "s3cr3t-value" {
		t.Errorf("expected API_KEY masked, got %+v", masked["API_KEY"])
	}
	if masked["HOST"].Env != "localhost" {
		t.Errorf("expected HOST untouched, got %+v", masked["HOST"])
	}
	if m.Trace()["API_KEY"].Env != "s3cr3t-value" {
		t.Error("Trace must still expose the raw value")
	}
	if m.Get("API_KEY") != "s3cr3t-value" {
		t.Error("Get must return the raw value")
	}
}

func TestNew_TraceLogging(t *testing.T) {
	spec := schema.Spec{
		"API_KEY": schema.Required(schema.String()).AsSecret(),
		"HOST":    schema.Required(schema.String()),
	}

	tests := []struct {
		name    string
		env     source.Environment
		opts    []Option
		wantLog bool
	}{
		{"DEBUG=trace", source.Environment{"DEBUG": "trace"}, nil, true},
		{"option", source.Environment{}, []Option{WithTraceLog(true)}, true},
		{"off", source.Environment{"DEBUG": "app:*"}, nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := tc.env.Clone()
			env["API_KEY"] = "s3cr3t-value"
			env["HOST"] = "localhost"

			var buf bytes.Buffer
			log := logger.NewWithWriter(&logger.Config{Level: "info", Format: "json"}, "test", &buf)
			opts := append([]Option{
				WithEnvironment(env),
				WithFileSystem(emptyFS{}),
				WithFile(".env"),
				WithAllowMissingEnvFile(true),
				WithExitOnError(false),
				WithLogger(log),
			}, tc.opts...)

			if _, err := New(spec, opts...); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			out := buf.String()
			if got := strings.Contains(out, "config trace"); got != tc.wantLog {
				t.Errorf("expected trace logged=%v, got output:\n%s", tc.wantLog, out)
			}
			if strings.Contains(out, "s3cr3t-value") {
				t.Errorf("secret leaked into log output:\n%s", out)
			}
		})
	}
}

func TestNew_SpanAndMetrics(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())
	metrics, err := observability.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	root := writeFixtures(t)
	if _, err := newManager(t, root, source.Environment{},
		WithFile("testconfigs/config/test1.env"), WithMetrics(metrics)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := newManager(t, root, source.Environment{},
		WithFile("testconfigs/config/test5.env"), WithMetrics(metrics)); err == nil {
		t.Fatal("expected failure for test5.env")
	}

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	for _, s := range spans {
		if s.Name != observability.SpanConfigResolve {
			t.Errorf("unexpected span name %q", s.Name)
		}
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, metric := range sm.Metrics {
			if data, ok := metric.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range data.DataPoints {
					sums[metric.Name] += dp.Value
				}
			}
		}
	}
	if sums["config.resolutions"] != 2 {
		t.Errorf("expected 2 resolutions, got %d", sums["config.resolutions"])
	}
	if sums["config.validation_errors"] != 2 {
		t.Errorf("expected 2 validation failures, got %d", sums["config.validation_errors"])
	}
	// test1.env: TEST1, TEST2 from dotenv and TEST3, TEST4 from defaults.
	if sums["config.keys.resolved"] != 4 {
		t.Errorf("expected 4 resolved keys, got %d", sums["config.keys.resolved"])
	}
}

// emptyFS is a filesystem with no files.
type emptyFS struct{}

func (emptyFS) Exists(string) bool                    { return false }
func (emptyFS) ReadEnv(string) (source.Values, error) { return nil, nil }
func (emptyFS) Getwd() (string, error)                { return "/app", nil }

func TestResolutionStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ok", nil, observability.StatusOK},
		{"invalid", errors.InvalidConfiguration([]string{"x"}, nil), observability.StatusInvalid},
		{"bad env key", errors.BadEnvironmentKey("NODE_ENV"), observability.StatusSourceError},
		{"missing file", fmt.Errorf("load: %w", errors.MissingEnvironmentFile("/x.env")), observability.StatusSourceError},
		{"invalid spec", errors.InvalidSpec("", nil), observability.StatusSourceError},
		{"unknown key", errors.UnknownKey("X"), observability.StatusError},
		{"plain", stderrors.New("boom"), observability.StatusError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolutionStatus(tc.err); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
