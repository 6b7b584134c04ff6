package source

import (
	"fmt"

	"github.com/kbukum/envcascade/errors"
)

// DefaultEnvKey is the environment variable naming the active environment.
const DefaultEnvKey = "NODE_ENV"

// Loader reads the file-based layer chosen by a Strategy.
type Loader struct {
	FileSystem FileSystem
	// RootDir is the project root. Empty means the working directory.
	RootDir string
	// EnvKey names the variable holding the environment. Empty means NODE_ENV.
	EnvKey string
	// AllowMissing turns a missing file into an empty layer.
	AllowMissing bool
}

// Result is the outcome of a successful Load.
type Result struct {
	Values   Values
	Path     string
	Strategy string
	// Missing is true when the file did not exist and AllowMissing let it pass.
	Missing bool
}

// Load resolves the source path and reads it. A nil strategy behaves like
// EnvFolder("").
func (l *Loader) Load(strategy Strategy, env Environment) (*Result, error) {
	fs := l.FileSystem
	if fs == nil {
		fs = &RealFileSystem{}
	}
	if strategy == nil {
		strategy = EnvFolder("")
	}

	root, err := l.root(fs)
	if err != nil {
		return nil, err
	}

	path, err := strategy.Path(root, env, l.EnvKey)
	if err != nil {
		return nil, err
	}

	result := &Result{Path: path, Strategy: strategy.Name()}
	if path == "" {
		result.Values = Values{}
		return result, nil
	}
	if !fs.Exists(path) {
		if !l.AllowMissing {
			return nil, errors.MissingEnvironmentFile(path)
		}
		result.Values = Values{}
		result.Missing = true
		return result, nil
	}

	values, err := fs.ReadEnv(path)
	if err != nil {
		return nil, errors.UnreadableSource(path, err)
	}
	if values == nil {
		values = Values{}
	}
	result.Values = values
	return result, nil
}

func (l *Loader) root(fs FileSystem) (string, error) {
	if l.RootDir != "" {
		return l.RootDir, nil
	}
	wd, err := fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving root folder: %w", err)
	}
	return wd, nil
}
