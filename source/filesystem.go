package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/kbukum/envcascade/util"
)

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	ReadEnv(path string) (Values, error)
	Getwd() (string, error)
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ReadEnv parses path as a dotenv file, or as structured configuration when
// its extension is one viper understands.
func (rfs *RealFileSystem) ReadEnv(path string) (Values, error) {
	if IsStructured(path) {
		return readStructured(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	values, err := parseDotenv(data)
	if err != nil {
		return nil, fmt.Errorf("parsing env file %s: %w", path, err)
	}
	return values, nil
}

func (rfs *RealFileSystem) Getwd() (string, error) {
	return os.Getwd()
}

// Placeholders for characters godotenv would otherwise interpret inside a
// value. Both sit in the Unicode private use area.
const (
	literalDollar = "\uE000"
	literalHash   = "\uE001"
)

var (
	shieldLiterals  = strings.NewReplacer("$", literalDollar, "#", literalHash)
	restoreLiterals = strings.NewReplacer(literalDollar, "$", literalHash, "#")
)

// parseDotenv reads KEY=VALUE lines with godotenv but keeps value text
// literal: no $VAR expansion and no inline comments. Only lines starting
// with # are comments.
func parseDotenv(data []byte) (Values, error) {
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines[i] = shieldLiterals.Replace(line)
	}

	parsed, err := godotenv.Unmarshal(strings.Join(lines, "\n"))
	if err != nil {
		return nil, err
	}
	values := make(Values, len(parsed))
	for k, v := range parsed {
		values[restoreLiterals.Replace(k)] = restoreLiterals.Replace(v)
	}
	return values, nil
}

var structuredExts = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
	".toml": true,
}

// IsStructured reports whether path is read as structured configuration
// rather than dotenv.
func IsStructured(path string) bool {
	return structuredExts[strings.ToLower(filepath.Ext(path))]
}

// readStructured loads a YAML/JSON/TOML file and flattens nested keys.
func readStructured(path string) (Values, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	values := make(Values, len(v.AllKeys()))
	for _, key := range v.AllKeys() {
		values[util.EnvKey(key)] = flatten(v.Get(key))
	}
	return values, nil
}

// flatten renders a structured value as the string an env var would carry.
// Lists become comma-separated.
func flatten(value any) string {
	switch v := value.(type) {
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, cast.ToString(item))
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(v, ",")
	default:
		return cast.ToString(v)
	}
}
