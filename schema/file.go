package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kbukum/envcascade/errors"
)

// keyDecl is the YAML form of a KeyRule.
type keyDecl struct {
	Validate    string    `yaml:"validate"`
	Required    bool      `yaml:"required"`
	Default     yaml.Node `yaml:"default"`
	Secret      bool      `yaml:"secret"`
	Description string    `yaml:"description"`
}

// LoadFile reads a YAML spec from path.
func LoadFile(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file: %w", err)
	}
	spec, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("spec file %s: %w", path, err)
	}
	return spec, nil
}

// ParseYAML builds a Spec from YAML declarations keyed by config key.
func ParseYAML(data []byte) (Spec, error) {
	var decls map[string]keyDecl
	if err := yaml.Unmarshal(data, &decls); err != nil {
		return nil, fmt.Errorf("decoding spec: %w", err)
	}

	spec := make(Spec, len(decls))
	for key, decl := range decls {
		rule, err := Parse(decl.Validate)
		if err != nil {
			return nil, errors.InvalidSpec(key, err)
		}
		kr := KeyRule{
			Validate:    rule,
			Required:    decl.Required,
			Secret:      decl.Secret,
			Description: decl.Description,
		}
		if !decl.Default.IsZero() {
			var def any
			if err := decl.Default.Decode(&def); err != nil {
				return nil, errors.InvalidSpec(key, fmt.Errorf("decoding default: %w", err))
			}
			kr = kr.WithDefault(def)
		}
		spec[key] = kr
	}
	return spec, nil
}
