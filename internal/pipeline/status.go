package pipeline

import (
	"github.com/ariel-frischer/spec-compile/internal/artifact"
	clierrors "github.com/ariel-frischer/spec-compile/internal/errors"
	"github.com/ariel-frischer/spec-compile/internal/schema"
)

// ArtifactStatus records whether one artifact exists.
type ArtifactStatus struct {
	Path   string
	Exists bool
}

// StatusReport summarizes the artifacts under a working root.
type StatusReport struct {
	Artifacts     []ArtifactStatus
	SpecID        string
	Clarification schema.ClarificationStatus // empty when clarify has not run
	OpenQuestions []string
	Validation    schema.ReportStatus // empty when validate has not run
	FailingRules  []string
	Next          Stage // empty when every stage is complete
}

// Status inspects the working root without writing anything.
func (p *Pipeline) Status() (*StatusReport, error) {
	report := &StatusReport{}

	var meta struct {
		Metadata struct {
			SpecID string `yaml:"spec_id"`
		} `yaml:"metadata"`
	}
	if p.store.Exists(artifact.ClarificationResponsePath) {
		if err := p.store.ReadYAML(artifact.ClarificationResponsePath, &meta); err != nil {
			return nil, clierrors.SchemaViolation(artifact.ClarificationResponsePath, err)
		}
		report.SpecID = meta.Metadata.SpecID
	}

	specPath := ""
	if artifact.ValidSpecID(report.SpecID) {
		specPath = artifact.SpecPath(report.SpecID)
	}

	for _, path := range []string{
		artifact.IntentPath,
		artifact.ClarificationResponsePath,
		artifact.ClarificationQuestionPath,
		specPath,
		artifact.ValidationReportPath,
		artifact.SynthesisPromptPath,
	} {
		if path == "" {
			continue
		}
		report.Artifacts = append(report.Artifacts, ArtifactStatus{Path: path, Exists: p.store.Exists(path)})
	}

	if p.store.Exists(artifact.ClarificationQuestionPath) {
		var state schema.ClarificationState
		if err := p.store.ReadYAML(artifact.ClarificationQuestionPath, &state); err != nil {
			return nil, clierrors.SchemaViolation(artifact.ClarificationQuestionPath, err)
		}
		report.Clarification = state.Status
		for _, q := range state.Questions {
			report.OpenQuestions = append(report.OpenQuestions, q.ID)
		}
	}

	if p.store.Exists(artifact.ValidationReportPath) {
		var validation schema.ValidationReport
		if err := p.store.ReadJSON(artifact.ValidationReportPath, &validation); err != nil {
			return nil, clierrors.SchemaViolation(artifact.ValidationReportPath, err)
		}
		report.Validation = validation.Status
		report.FailingRules = validation.Failed()
	}

	report.Next = p.nextStage(report, specPath)
	return report, nil
}

func (p *Pipeline) nextStage(report *StatusReport, specPath string) Stage {
	switch {
	case !p.store.Exists(artifact.IntentPath):
		return StageIntent
	case report.Clarification != schema.StatusReady || len(report.OpenQuestions) > 0:
		return StageClarify
	case specPath == "" || !p.store.Exists(specPath):
		return StageNormalize
	case report.Validation != schema.ReportPassed:
		return StageValidate
	case !p.store.Exists(artifact.SynthesisPromptPath):
		return StageSynthesize
	default:
		return ""
	}
}
