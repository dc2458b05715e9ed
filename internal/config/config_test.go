// Package config_test tests framework configuration loading, file precedence and environment overrides.
// Related: internal/config/config.go
// Tags: config, loading, koanf, env-vars, yaml, json, precedence
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, Default().Concepts, cfg.Concepts)
	assert.Equal(t, Default().Synchronizations, cfg.Synchronizations)
	assert.Equal(t, Default().SecurityDefaults, cfg.SecurityDefaults)
	assert.Equal(t, Default().AllowedPaths, cfg.AllowedPaths)
	assert.Equal(t, Default().DisallowedActions, cfg.DisallowedActions)
	assert.Empty(t, cfg.Source)
}

func TestLoad_YAMLFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfigFile(t, root, FileName, `concepts:
  - id: c1
    name: Concept One
synchronizations:
  - id: s1
security_defaults:
  - "Only local files."
`)

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"c1"}, cfg.ConceptIDs())
	assert.Equal(t, []string{"s1"}, cfg.SynchronizationIDs())
	assert.Equal(t, []string{"Only local files."}, cfg.SecurityDefaults)
	// Omitted lists fall back to the defaults.
	assert.Equal(t, Default().AllowedPaths, cfg.AllowedPaths)
	assert.Equal(t, Default().DisallowedActions, cfg.DisallowedActions)
	assert.Equal(t, filepath.Join(root, FileName), cfg.Source)
}

func TestLoad_JSONFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfigFile(t, root, JSONFileName, `{
		"concepts": [{"id": "json-concept", "name": "JSON"}],
		"synchronizations": [{"id": "json-sync"}],
		"allowed_paths": ["docs/**"]
	}`)

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"json-concept"}, cfg.ConceptIDs())
	assert.Equal(t, []string{"json-sync"}, cfg.SynchronizationIDs())
	assert.Equal(t, []string{"docs/**"}, cfg.AllowedPaths)
}

func TestLoad_YAMLTakesPrecedenceOverJSON(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfigFile(t, root, FileName, "concepts: [{id: from-yaml}]\nsynchronizations: [{id: s}]\n")
	writeConfigFile(t, root, JSONFileName, `{"concepts": [{"id": "from-json"}], "synchronizations": [{"id": "s"}]}`)

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"from-yaml"}, cfg.ConceptIDs())
}

func TestLoad_RequiredSections(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content string
		wantMsg string
	}{
		"missing concepts": {
			content: "synchronizations:\n  - id: s1\n",
			wantMsg: "config must declare at least one concept",
		},
		"empty concepts": {
			content: "concepts: []\nsynchronizations:\n  - id: s1\n",
			wantMsg: "config must declare at least one concept",
		},
		"missing synchronizations": {
			content: "concepts:\n  - id: c1\n",
			wantMsg: "config must declare at least one synchronization",
		},
		"empty file": {
			content: "",
			wantMsg: "config must declare at least one concept",
		},
		"concept without id": {
			content: "concepts:\n  - name: nameless\nsynchronizations:\n  - id: s1\n",
			wantMsg: "concepts[0].id",
		},
		"duplicate concept ids": {
			content: "concepts:\n  - id: c1\n  - id: c1\nsynchronizations:\n  - id: s1\n",
			wantMsg: "ids must be unique",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			writeConfigFile(t, root, FileName, tc.content)

			cfg, err := Load(root)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tc.wantMsg)

			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfigFile(t, root, FileName, "concepts: [[[\n")

	_, err := Load(root)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, filepath.Join(root, FileName), verr.FilePath)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SPEC_COMPILE_ALLOWED_PATHS", "src/**,docs/**")
	t.Setenv("SPEC_COMPILE_DISALLOWED_ACTIONS", "Push to main.")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, []string{"src/**", "docs/**"}, cfg.AllowedPaths)
	assert.Equal(t, []string{"Push to main."}, cfg.DisallowedActions)
}

func TestLoad_EnvCannotOverrideGovernanceData(t *testing.T) {
	t.Setenv("SPEC_COMPILE_SECURITY_DEFAULTS", "nothing")
	t.Setenv("SPEC_COMPILE_CONCEPTS", "rogue")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, Default().SecurityDefaults, cfg.SecurityDefaults)
	assert.Equal(t, Default().ConceptIDs(), cfg.ConceptIDs())
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		key       string
		value     string
		wantKey   string
		wantValue interface{}
	}{
		"allowed paths": {
			key: "SPEC_COMPILE_ALLOWED_PATHS", value: "src/**, docs/**", wantKey: "allowed_paths",
			wantValue: []string{"src/**", "docs/**"},
		},
		"disallowed actions drops blanks": {
			key: "SPEC_COMPILE_DISALLOWED_ACTIONS", value: "a,,b", wantKey: "disallowed_actions",
			wantValue: []string{"a", "b"},
		},
		"security defaults ignored": {
			key: "SPEC_COMPILE_SECURITY_DEFAULTS", value: "x", wantKey: "",
		},
		"unknown key ignored": {
			key: "SPEC_COMPILE_OTHER", value: "x", wantKey: "",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			key, value := envTransform(tc.key, tc.value)
			assert.Equal(t, tc.wantKey, key)
			if tc.wantKey != "" {
				assert.Equal(t, tc.wantValue, value)
			}
		})
	}
}

func TestFrameworkConfig_Membership(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.True(t, cfg.HasConcept("spec-generation-framework"))
	assert.False(t, cfg.HasConcept("unknown"))
	assert.True(t, cfg.HasSynchronization("run-records"))
	assert.False(t, cfg.HasSynchronization(""))
}
