// Package config loads the framework configuration that governs the spec
// pipeline: the configured concepts and synchronizations a spec may reference,
// the security defaults every spec must carry, and the execution boundaries
// written into the synthesis prompt.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// FileName is the YAML config path relative to the working root.
	FileName = "config/framework.yaml"
	// JSONFileName is the JSON alternative, used only when FileName is absent.
	JSONFileName = "config/framework.json"
	// EnvPrefix is the prefix of environment variables that override list settings.
	EnvPrefix = "SPEC_COMPILE_"
)

// Concept is a configured subject area a spec must be scoped to.
type Concept struct {
	ID          string `koanf:"id" yaml:"id" validate:"required"`
	Name        string `koanf:"name" yaml:"name"`
	Description string `koanf:"description" yaml:"description,omitempty"`
}

// Synchronization is a configured integration point a spec must declare.
type Synchronization struct {
	ID          string `koanf:"id" yaml:"id" validate:"required"`
	Description string `koanf:"description" yaml:"description,omitempty"`
}

// FrameworkConfig is the governance configuration for one working root.
type FrameworkConfig struct {
	Concepts          []Concept         `koanf:"concepts" yaml:"concepts" validate:"required,min=1,unique=ID,dive"`
	Synchronizations  []Synchronization `koanf:"synchronizations" yaml:"synchronizations" validate:"required,min=1,unique=ID,dive"`
	SecurityDefaults  []string          `koanf:"security_defaults" yaml:"security_defaults"`
	AllowedPaths      []string          `koanf:"allowed_paths" yaml:"allowed_paths"`
	DisallowedActions []string          `koanf:"disallowed_actions" yaml:"disallowed_actions"`

	// Source is the config file the values were read from; empty for built-in defaults.
	Source string `koanf:"-" yaml:"-"`
}

// ConceptIDs returns the configured concept ids in declaration order.
func (c *FrameworkConfig) ConceptIDs() []string {
	ids := make([]string, 0, len(c.Concepts))
	for _, concept := range c.Concepts {
		ids = append(ids, concept.ID)
	}
	return ids
}

// SynchronizationIDs returns the configured synchronization ids in declaration order.
func (c *FrameworkConfig) SynchronizationIDs() []string {
	ids := make([]string, 0, len(c.Synchronizations))
	for _, sync := range c.Synchronizations {
		ids = append(ids, sync.ID)
	}
	return ids
}

// HasConcept reports whether id is a configured concept.
func (c *FrameworkConfig) HasConcept(id string) bool {
	for _, concept := range c.Concepts {
		if concept.ID == id {
			return true
		}
	}
	return false
}

// HasSynchronization reports whether id is a configured synchronization.
func (c *FrameworkConfig) HasSynchronization(id string) bool {
	for _, sync := range c.Synchronizations {
		if sync.ID == id {
			return true
		}
	}
	return false
}

// Load loads the framework configuration for the given working root.
// Priority: Environment variables > config file > Defaults
//
// When no config file exists the built-in concepts and synchronizations apply.
// When a file exists it must declare its own concepts and synchronizations;
// the remaining lists fall back to the defaults if the file omits them.
func Load(root string) (*FrameworkConfig, error) {
	k := koanf.New(".")

	path, parser := locateConfigFile(root)
	for key, value := range GetDefaults() {
		if path != "" && (key == "concepts" || key == "synchronizations") {
			continue
		}
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("applying default %s: %w", key, err)
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, &ValidationError{FilePath: path, Message: err.Error()}
		}
	}

	// Override with environment variables (highest priority)
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment overrides: %w", err)
	}

	var cfg FrameworkConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, &ValidationError{FilePath: path, Message: fmt.Sprintf("failed to unmarshal config: %v", err)}
	}
	cfg.Source = path

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// locateConfigFile returns the config file under root and the parser for it,
// or an empty path when neither the YAML nor the JSON file exists.
func locateConfigFile(root string) (string, koanf.Parser) {
	yamlPath := filepath.Join(root, FileName)
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath, yamlParser{}
	}
	jsonPath := filepath.Join(root, JSONFileName)
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, json.Parser()
	}
	return "", nil
}

// envTransform converts environment variables to config keys and values.
// Only the execution boundary lists may be overridden from the environment.
// List values are comma-separated.
// Example: SPEC_COMPILE_ALLOWED_PATHS=src/**,docs/** -> allowed_paths
func envTransform(key, value string) (string, interface{}) {
	name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	switch name {
	case "allowed_paths", "disallowed_actions":
		return name, splitList(value)
	default:
		return "", nil
	}
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// validateConfig runs the struct validation rules and converts the first
// failure into a ValidationError naming the offending field.
func validateConfig(cfg *FrameworkConfig) error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("koanf"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.Struct(cfg); err != nil {
		return translateValidationError(err, cfg.Source)
	}
	return nil
}
