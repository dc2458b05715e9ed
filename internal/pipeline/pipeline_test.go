// Package pipeline_test tests the gated stage pipeline end to end and per stage.
// Related: internal/pipeline/pipeline.go, internal/pipeline/stages.go
// Tags: pipeline, stages, gating, idempotence, spec-id, synthesis
package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/spec-compile/internal/artifact"
	clierrors "github.com/ariel-frischer/spec-compile/internal/errors"
	"github.com/ariel-frischer/spec-compile/internal/schema"
	"github.com/ariel-frischer/spec-compile/internal/testutil"
)

var fixedTime = time.Date(2026, 1, 2, 3, 4, 5, 6_000_000, time.UTC)

func newPipeline(root string) *Pipeline {
	return New(root, WithClock(func() time.Time { return fixedTime }))
}

// readyWorkspace captures intent, installs fully populated responses and
// runs clarify so the workspace is ready for normalization.
func readyWorkspace(t *testing.T) (string, *Pipeline) {
	t.Helper()

	root, source := testutil.CreateWorkspace(t)
	p := newPipeline(root)

	_, err := p.Intent(source)
	require.NoError(t, err)
	testutil.WriteFile(t, root, artifact.ClarificationResponsePath, testutil.ReadyResponsesYAML)

	res, err := p.Clarify(ClarifyOptions{})
	require.NoError(t, err)
	require.Equal(t, OutcomeSuccess, res.Outcome)
	return root, p
}

func requireCategory(t *testing.T, err error, want clierrors.ErrorCategory) *clierrors.CLIError {
	t.Helper()
	require.Error(t, err)
	cliErr := clierrors.AsCLIError(err)
	require.NotNil(t, cliErr, "expected a CLIError, got %T: %v", err, err)
	assert.Equal(t, want, cliErr.Category, cliErr.Message)
	return cliErr
}

func TestPipeline_EndToEnd(t *testing.T) {
	t.Parallel()

	root, source := testutil.CreateWorkspace(t)
	p := newPipeline(root)

	res, err := p.Intent(source)
	require.NoError(t, err)
	assert.Equal(t, []string{artifact.IntentPath}, res.Written)

	// First clarify creates the template and reports pending questions.
	res, err = p.Clarify(ClarifyOptions{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSoftFailure, res.Outcome)
	assert.NotEmpty(t, res.Questions)
	assert.Contains(t, res.Message, "Clarification pending")

	testutil.WriteFile(t, root, artifact.ClarificationResponsePath, testutil.ReadyResponsesYAML)

	res, err = p.Clarify(ClarifyOptions{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Empty(t, res.Questions)
	assert.Equal(t, "spec-1", res.SpecID)

	var state schema.ClarificationState
	require.NoError(t, yaml.Unmarshal([]byte(testutil.ReadFile(t, root, artifact.ClarificationQuestionPath)), &state))
	assert.Equal(t, schema.StatusReady, state.Status)
	assert.Empty(t, state.Questions)
	assert.Equal(t, ClarificationNotes, state.Notes)
	assert.Equal(t, "2026-01-02T03:04:05.006Z", state.GeneratedAt)

	res, err = p.Normalize("")
	require.NoError(t, err)
	assert.Equal(t, []string{"specs/spec-1.md"}, res.Written)
	spec := testutil.ReadFile(t, root, "specs/spec-1.md")
	assert.Contains(t, spec, testutil.SecurityDefaultLocal)
	assert.Contains(t, spec, testutil.SecurityDefaultNoGen)

	res, err = p.Validate("")
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, res.Outcome)
	require.NotNil(t, res.Report)
	assert.Equal(t, schema.ReportPassed, res.Report.Status)
	assert.Len(t, res.Report.Rules, 7)
	for _, rule := range res.Report.Rules {
		assert.True(t, rule.Passed, rule.ID)
	}
	assert.Equal(t, artifact.Digest(spec), res.Report.SpecDigest)

	res, err = p.Synthesize("")
	require.NoError(t, err)
	assert.Equal(t, []string{artifact.SynthesisPromptPath}, res.Written)

	prompt := testutil.ReadFile(t, root, artifact.SynthesisPromptPath)
	assert.Contains(t, prompt, "covering requirements [r1]")
	assert.Contains(t, prompt, "Allowed Paths\n- src/**\n- tests/**\n")
	assert.Contains(t, prompt, "Disallowed Actions\n- Generate application code.\n")
	assert.Contains(t, prompt, "validation/report.json (status: passed)")

	status, err := p.Status()
	require.NoError(t, err)
	assert.Equal(t, Stage(""), status.Next)
}

func TestIntent_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content      string
		input        string
		wantCategory clierrors.ErrorCategory
		wantMsg      string
	}{
		"missing input flag": {
			input:        "",
			wantCategory: clierrors.Argument,
			wantMsg:      "requires --input",
		},
		"input not found": {
			input:        "does-not-exist.yaml",
			wantCategory: clierrors.Prerequisite,
			wantMsg:      "input file not found",
		},
		"malformed yaml": {
			content:      "intent: [unclosed\n",
			wantCategory: clierrors.Runtime,
			wantMsg:      "failed schema validation",
		},
		"blank user goal": {
			content:      "intent:\n  user_goal: \"\"\n  context: c\n",
			wantCategory: clierrors.Runtime,
			wantMsg:      "failed schema validation",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			input := tc.input
			if tc.content != "" {
				input = testutil.WriteFile(t, root, "source.yaml", tc.content)
			} else if input != "" {
				input = filepath.Join(root, input)
			}

			_, err := newPipeline(root).Intent(input)
			cliErr := requireCategory(t, err, tc.wantCategory)
			assert.Contains(t, cliErr.Message, tc.wantMsg)
			assert.False(t, testutil.FileExists(t, root, artifact.IntentPath))
		})
	}
}

func TestIntent_Idempotent(t *testing.T) {
	t.Parallel()

	root, source := testutil.CreateWorkspace(t)
	p := newPipeline(root)

	_, err := p.Intent(source)
	require.NoError(t, err)
	first := testutil.ReadFile(t, root, artifact.IntentPath)

	_, err = p.Intent(source)
	require.NoError(t, err)
	assert.Equal(t, first, testutil.ReadFile(t, root, artifact.IntentPath))
}

func TestClarify_RequiresIntent(t *testing.T) {
	t.Parallel()

	root, _ := testutil.CreateWorkspace(t)
	_, err := newPipeline(root).Clarify(ClarifyOptions{})
	cliErr := requireCategory(t, err, clierrors.Prerequisite)
	assert.Contains(t, cliErr.Message, artifact.IntentPath)
	assert.False(t, testutil.FileExists(t, root, artifact.ClarificationResponsePath))
}

func TestClarify_RoundTripAndDeterminism(t *testing.T) {
	t.Parallel()

	root, source := testutil.CreateWorkspace(t)
	p := newPipeline(root)
	_, err := p.Intent(source)
	require.NoError(t, err)

	_, err = p.Clarify(ClarifyOptions{})
	require.NoError(t, err)
	responses := testutil.ReadFile(t, root, artifact.ClarificationResponsePath)
	questions := testutil.ReadFile(t, root, artifact.ClarificationQuestionPath)

	// Responses written by clarify decode without schema errors.
	node, err := artifact.ParseNode([]byte(responses), "responses")
	require.NoError(t, err)
	decoded, err := schema.ValidateResponses(node, testutil.ReadyIntent())
	require.NoError(t, err)
	assert.Equal(t, schema.NewResponsesTemplate(testutil.ReadyIntent()), decoded)

	// Rerunning on unchanged inputs reproduces both artifacts.
	_, err = p.Clarify(ClarifyOptions{Force: true})
	require.NoError(t, err)
	assert.Equal(t, responses, testutil.ReadFile(t, root, artifact.ClarificationResponsePath))
	assert.Equal(t, questions, testutil.ReadFile(t, root, artifact.ClarificationQuestionPath))

	var state schema.ClarificationState
	require.NoError(t, yaml.Unmarshal([]byte(questions), &state))
	assert.Equal(t, schema.StatusPending, state.Status)
	ids := make([]string, 0, len(state.Questions))
	for _, q := range state.Questions {
		ids = append(ids, q.ID)
		assert.True(t, q.Blocking)
		assert.Nil(t, q.Answer)
	}
	assert.Equal(t, []string{"spec_id", "concept_id", "synchronizations", "data_ownership", "requirements"}, ids)
}

func TestClarify_PreservesAnswersAndResyncsIntent(t *testing.T) {
	t.Parallel()

	root, p := readyWorkspace(t)

	changed := strings.Replace(testutil.IntentSourceYAML, "uncertainties: []", "uncertainties:\n    - expected load", 1)
	source := testutil.WriteFile(t, root, "input/intent.yaml", changed)
	_, err := p.Intent(source)
	require.NoError(t, err)

	res, err := p.Clarify(ClarifyOptions{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSoftFailure, res.Outcome)
	require.Len(t, res.Questions, 1)
	assert.Equal(t, "uncertainties", res.Questions[0].ID)

	written := testutil.ReadFile(t, root, artifact.ClarificationResponsePath)
	assert.Contains(t, written, "spec_id: spec-1")
	assert.Contains(t, written, "data_ownership: team-a")
	assert.Contains(t, written, "- expected load")
}

func TestClarify_SchemaErrorWritesNothing(t *testing.T) {
	t.Parallel()

	root, source := testutil.CreateWorkspace(t)
	p := newPipeline(root)
	_, err := p.Intent(source)
	require.NoError(t, err)
	testutil.WriteFile(t, root, artifact.ClarificationResponsePath, "metadata:\n  spec_id: 42\n")

	_, err = p.Clarify(ClarifyOptions{})
	cliErr := requireCategory(t, err, clierrors.Runtime)
	assert.Contains(t, cliErr.Error(), "responses.metadata.spec_id")
	assert.False(t, testutil.FileExists(t, root, artifact.ClarificationQuestionPath))
}

func TestClarify_FailedWriteKeepsResponses(t *testing.T) {
	t.Parallel()

	root, source := testutil.CreateWorkspace(t)
	p := newPipeline(root)
	_, err := p.Intent(source)
	require.NoError(t, err)

	seeded := "metadata:\n  spec_id: before\n"
	testutil.WriteFile(t, root, artifact.ClarificationResponsePath, seeded)
	require.NoError(t, os.MkdirAll(filepath.Join(root, artifact.ClarificationQuestionPath, "child"), 0755))

	_, err = p.Clarify(ClarifyOptions{})
	requireCategory(t, err, clierrors.Runtime)
	assert.Equal(t, seeded, testutil.ReadFile(t, root, artifact.ClarificationResponsePath))
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	root, p := readyWorkspace(t)

	_, err := p.Normalize("")
	require.NoError(t, err)
	first := testutil.ReadFile(t, root, "specs/spec-1.md")

	_, err = p.Normalize("spec-1")
	require.NoError(t, err)
	assert.Equal(t, first, testutil.ReadFile(t, root, "specs/spec-1.md"))
}

func TestNormalize_Gating(t *testing.T) {
	t.Parallel()

	t.Run("pending clarification", func(t *testing.T) {
		t.Parallel()

		root, source := testutil.CreateWorkspace(t)
		p := newPipeline(root)
		_, err := p.Intent(source)
		require.NoError(t, err)
		_, err = p.Clarify(ClarifyOptions{})
		require.NoError(t, err)

		_, err = p.Normalize("spec-1")
		cliErr := requireCategory(t, err, clierrors.Prerequisite)
		assert.Contains(t, cliErr.Message, "not ready")
		assert.False(t, testutil.FileExists(t, root, "specs"))
	})

	t.Run("stale ready state", func(t *testing.T) {
		t.Parallel()

		root, p := readyWorkspace(t)
		edited := strings.Replace(testutil.ReadyResponsesYAML, "data_ownership: team-a", "data_ownership: \"\"", 1)
		testutil.WriteFile(t, root, artifact.ClarificationResponsePath, edited)

		_, err := p.Normalize("")
		cliErr := requireCategory(t, err, clierrors.Governance)
		assert.Contains(t, cliErr.Message, "clarification gaps remain (1)")
		assert.False(t, testutil.FileExists(t, root, "specs/spec-1.md"))
	})

	t.Run("missing clarification artifacts", func(t *testing.T) {
		t.Parallel()

		root, source := testutil.CreateWorkspace(t)
		p := newPipeline(root)
		_, err := p.Intent(source)
		require.NoError(t, err)

		_, err = p.Normalize("")
		cliErr := requireCategory(t, err, clierrors.Prerequisite)
		assert.Contains(t, cliErr.Remediation[0], "spec-compile clarify")
	})
}

func TestSpecIDConflict_WritesNothing(t *testing.T) {
	t.Parallel()

	root, p := readyWorkspace(t)
	_, err := p.Normalize("")
	require.NoError(t, err)
	_, err = p.Validate("")
	require.NoError(t, err)
	report := testutil.ReadFile(t, root, artifact.ValidationReportPath)

	stages := map[string]func(string) (*Result, error){
		"normalize":  p.Normalize,
		"validate":   p.Validate,
		"synthesize": p.Synthesize,
	}
	for name, run := range stages {
		_, err := run("other")
		cliErr := requireCategory(t, err, clierrors.Argument)
		assert.Contains(t, cliErr.Message, "spec id mismatch", name)
	}

	assert.False(t, testutil.FileExists(t, root, "specs/other.md"))
	assert.Equal(t, report, testutil.ReadFile(t, root, artifact.ValidationReportPath))
	assert.False(t, testutil.FileExists(t, root, artifact.SynthesisPromptPath))
}

func TestResolveSpecID(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		override     string
		recorded     string
		want         string
		wantCategory clierrors.ErrorCategory
		wantErr      string
	}{
		"recorded only":      {recorded: "spec-1", want: "spec-1"},
		"override only":      {override: "spec-2", want: "spec-2"},
		"override matches":   {override: "spec-1", recorded: "spec-1", want: "spec-1"},
		"mismatch":           {override: "x", recorded: "spec-1", wantErr: "spec id mismatch"},
		"neither":            {wantErr: "spec id is required for validate"},
		"path traversal":     {override: "../escape", wantErr: "invalid spec id"},
		"recorded has slash": {recorded: "a/b", wantErr: "invalid spec id"},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveSpecID(tc.override, tc.recorded, StageValidate)
			if tc.wantErr != "" {
				cliErr := requireCategory(t, err, clierrors.Argument)
				assert.Contains(t, cliErr.Message, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidate_SoftFailure(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		edit               func(spec string) string
		wantRule           string
		wantCounterexample string
	}{
		"placeholder inserted": {
			edit:               func(spec string) string { return spec + "\n- Follow-up: REVISIT\n" },
			wantRule:           "no-implicit-behavior.rule",
			wantCounterexample: "Placeholder 'REVISIT' found in spec content.",
		},
		"security default removed": {
			edit: func(spec string) string {
				return strings.Replace(spec, testutil.SecurityDefaultLocal, "Anything goes.", 1)
			},
			wantRule:           "security-scope.rule",
			wantCounterexample: `Security default "Local filesystem only." is missing from spec content.`,
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			root, p := readyWorkspace(t)
			_, err := p.Normalize("")
			require.NoError(t, err)
			spec := testutil.ReadFile(t, root, "specs/spec-1.md")
			testutil.WriteFile(t, root, "specs/spec-1.md", tc.edit(spec))

			res, err := p.Validate("")
			require.NoError(t, err, "rule failures are not errors")
			assert.Equal(t, OutcomeSoftFailure, res.Outcome)
			assert.Equal(t, schema.ReportFailed, res.Report.Status)
			require.Len(t, res.Report.Errors, 1)
			assert.Equal(t, tc.wantRule, res.Report.Errors[0].ID)
			assert.Equal(t, tc.wantCounterexample, res.Report.Errors[0].Counterexample)
			assert.True(t, testutil.FileExists(t, root, artifact.ValidationReportPath))

			// Synthesis refuses while the report is failing.
			_, err = p.Synthesize("")
			requireCategory(t, err, clierrors.Governance)
			assert.False(t, testutil.FileExists(t, root, artifact.SynthesisPromptPath))
		})
	}
}

func TestValidate_RequiresSpec(t *testing.T) {
	t.Parallel()

	root, p := readyWorkspace(t)
	_, err := p.Validate("")
	cliErr := requireCategory(t, err, clierrors.Prerequisite)
	assert.Contains(t, cliErr.Message, "specs/spec-1.md")
	assert.False(t, testutil.FileExists(t, root, artifact.ValidationReportPath))
}

func TestSynthesize_Refusals(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		tamper       func(t *testing.T, root string)
		wantCategory clierrors.ErrorCategory
		wantMsg      string
	}{
		"report status failed": {
			tamper: func(t *testing.T, root string) {
				report := testutil.ReadFile(t, root, artifact.ValidationReportPath)
				testutil.WriteFile(t, root, artifact.ValidationReportPath,
					strings.Replace(report, `"status": "passed"`, `"status": "failed"`, 1))
			},
			wantCategory: clierrors.Governance,
			wantMsg:      "validation status is 'failed'",
		},
		"spec edited after validation": {
			tamper: func(t *testing.T, root string) {
				spec := testutil.ReadFile(t, root, "specs/spec-1.md")
				testutil.WriteFile(t, root, "specs/spec-1.md", spec+"\nextra line\n")
			},
			wantCategory: clierrors.Governance,
			wantMsg:      "changed after validation",
		},
		"report missing": {
			tamper: func(t *testing.T, root string) {
				require.NoError(t, os.Remove(filepath.Join(root, artifact.ValidationReportPath)))
			},
			wantCategory: clierrors.Prerequisite,
			wantMsg:      artifact.ValidationReportPath,
		},
		"spec missing": {
			tamper: func(t *testing.T, root string) {
				require.NoError(t, os.Remove(filepath.Join(root, "specs", "spec-1.md")))
			},
			wantCategory: clierrors.Prerequisite,
			wantMsg:      "specs/spec-1.md",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			root, p := readyWorkspace(t)
			_, err := p.Normalize("")
			require.NoError(t, err)
			_, err = p.Validate("")
			require.NoError(t, err)

			tc.tamper(t, root)

			_, err = p.Synthesize("")
			cliErr := requireCategory(t, err, tc.wantCategory)
			assert.Contains(t, cliErr.Message, tc.wantMsg)
			assert.False(t, testutil.FileExists(t, root, artifact.SynthesisPromptPath))
		})
	}
}

func TestConfigErrors(t *testing.T) {
	t.Parallel()

	root, source := testutil.CreateWorkspace(t)
	testutil.WriteFile(t, root, "config/framework.yaml", "concepts: []\nsynchronizations:\n  - id: s1\n")
	p := newPipeline(root)
	_, err := p.Intent(source)
	require.NoError(t, err)

	_, err = p.Clarify(ClarifyOptions{})
	cliErr := requireCategory(t, err, clierrors.Configuration)
	assert.Contains(t, cliErr.Error(), "at least one concept")
}

func TestBuiltInDefaultsApplyWithoutConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	source := testutil.WriteFile(t, root, "intent.yaml", testutil.IntentSourceYAML)
	p := newPipeline(root)
	_, err := p.Intent(source)
	require.NoError(t, err)

	res, err := p.Clarify(ClarifyOptions{})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(res.Questions), 2)
	assert.Equal(t, "concept_id", res.Questions[1].ID)
	assert.Equal(t, []string{"spec-generation-framework"}, res.Questions[1].Options)
}
