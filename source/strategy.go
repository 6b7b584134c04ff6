package source

import (
	"path/filepath"

	"github.com/kbukum/envcascade/errors"
)

// Strategy decides which file holds the file-based configuration layer.
type Strategy interface {
	// Name identifies the strategy in logs.
	Name() string
	// Path returns the file to read. root is the project root folder and
	// envKey names the environment variable holding the environment name.
	Path(root string, env Environment, envKey string) (string, error)
}

// ResolverFunc builds a source path from the root folder and the value of
// the environment key.
type ResolverFunc func(rootFolder, environment string) string

// File uses a literal path. Relative paths are taken from the root folder.
func File(path string) Strategy {
	return fileStrategy{path: path}
}

// EnvFolder reads <folder>/config/<environment>.env, where environment is
// the value of the configured environment key.
func EnvFolder(folder string) Strategy {
	return envFolderStrategy{folder: folder}
}

// Func delegates path construction to fn. A nil fn behaves like EnvFolder("").
func Func(fn ResolverFunc) Strategy {
	if fn == nil {
		return EnvFolder("")
	}
	return funcStrategy{fn: fn}
}

// None reads no file. Only the environment and spec defaults apply.
func None() Strategy {
	return noneStrategy{}
}

type noneStrategy struct{}

func (noneStrategy) Name() string { return "none" }

func (noneStrategy) Path(string, Environment, string) (string, error) { return "", nil }

type fileStrategy struct {
	path string
}

func (s fileStrategy) Name() string { return "file" }

func (s fileStrategy) Path(root string, _ Environment, _ string) (string, error) {
	return underRoot(root, s.path), nil
}

type envFolderStrategy struct {
	folder string
}

func (s envFolderStrategy) Name() string { return "env" }

func (s envFolderStrategy) Path(root string, env Environment, envKey string) (string, error) {
	name, err := environmentName(env, envKey)
	if err != nil {
		return "", err
	}
	return underRoot(root, filepath.Join(s.folder, "config", name+".env")), nil
}

type funcStrategy struct {
	fn ResolverFunc
}

func (s funcStrategy) Name() string { return "function" }

func (s funcStrategy) Path(root string, env Environment, envKey string) (string, error) {
	name, err := environmentName(env, envKey)
	if err != nil {
		return "", err
	}
	return underRoot(root, s.fn(root, name)), nil
}

// environmentName reads the environment key. Unset and empty both fail.
func environmentName(env Environment, envKey string) (string, error) {
	if envKey == "" {
		envKey = DefaultEnvKey
	}
	name, ok := env.Lookup(envKey)
	if !ok || name == "" {
		return "", errors.BadEnvironmentKey(envKey)
	}
	return name, nil
}

func underRoot(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
