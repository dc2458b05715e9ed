package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// ConfigYAML declares concept c1 and synchronization s1.
const ConfigYAML = `concepts:
  - id: c1
    name: Concept One
synchronizations:
  - id: s1
security_defaults:
  - Local filesystem only.
  - No application-code generation.
allowed_paths:
  - src/**
  - tests/**
disallowed_actions:
  - Generate application code.
`

// IntentSourceYAML is an external intent document ready for capture.
const IntentSourceYAML = `intent:
  user_goal: Compile governed specs
  context: Local pipeline
  stated_constraints:
    - Offline only
  unstated_assumptions: []
  uncertainties: []
  out_of_scope:
    - Code generation
`

// ReadyResponsesYAML fully populates every decision for FrameworkConfig.
const ReadyResponsesYAML = `metadata:
  spec_id: spec-1
  concept_id: c1
  synchronizations:
    - s1
  pdca_phase: Plan
decisions:
  data_ownership: team-a
  implicit_behaviors: []
requirements:
  - id: r1
    description: Spec documents are rendered deterministically
    validation:
      tests:
        - render twice and compare
      acceptance_criteria:
        - outputs are byte-identical
security:
  defaults_applied: true
  additional_constraints: []
`

// WriteFile writes content to rel beneath root, creating parent directories.
// Returns the absolute file path.
func WriteFile(t *testing.T, root, rel, content string) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
	return path
}

// ReadFile returns the content of rel beneath root.
func ReadFile(t *testing.T, root, rel string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("failed to read %s: %v", rel, err)
	}
	return string(data)
}

// FileExists reports whether rel exists beneath root.
func FileExists(t *testing.T, root, rel string) bool {
	t.Helper()

	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil
}

// CreateWorkspace creates a temp working root holding the fixture config.
// The intent source document is written to input/intent.yaml and its path
// returned alongside the root.
func CreateWorkspace(t *testing.T) (root, intentSource string) {
	t.Helper()

	root = t.TempDir()
	WriteFile(t, root, "config/framework.yaml", ConfigYAML)
	intentSource = WriteFile(t, root, "input/intent.yaml", IntentSourceYAML)
	return root, intentSource
}
