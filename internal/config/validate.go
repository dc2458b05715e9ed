package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	FilePath string
	Field    string
	Message  string
}

func (e *ValidationError) Error() string {
	source := e.FilePath
	if source == "" {
		source = "built-in config"
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", source, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", source, e.Message)
}

// translateValidationError converts the first validator failure into a ValidationError.
func translateValidationError(err error, filePath string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	fe := verrs[0]
	field := fe.Namespace()
	// Namespace is "FrameworkConfig.concepts[0].id"; drop the struct name.
	if idx := strings.Index(field, "."); idx >= 0 {
		field = field[idx+1:]
	}

	return &ValidationError{
		FilePath: filePath,
		Field:    field,
		Message:  validationMessage(fe),
	}
}

// validationMessage renders a human-readable message for one failed tag.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "min":
		switch fe.Field() {
		case "concepts":
			return "config must declare at least one concept"
		case "synchronizations":
			return "config must declare at least one synchronization"
		}
		return "is required"
	case "unique":
		return "ids must be unique"
	default:
		return fmt.Sprintf("failed '%s' validation", fe.Tag())
	}
}

// yamlParser adapts yaml.v3 to the koanf.Parser interface.
type yamlParser struct{}

// Unmarshal parses YAML bytes into a nested map.
func (yamlParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]interface{}{}
	}
	return out, nil
}

// Marshal renders a nested map as YAML.
func (yamlParser) Marshal(o map[string]interface{}) ([]byte, error) {
	return yaml.Marshal(o)
}

// Marshal renders cfg as the YAML document written by 'spec-compile init'.
func Marshal(cfg *FrameworkConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}
