package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/spec-compile/internal/artifact"
	clierrors "github.com/ariel-frischer/spec-compile/internal/errors"
	"github.com/ariel-frischer/spec-compile/internal/render"
	"github.com/ariel-frischer/spec-compile/internal/rules"
	"github.com/ariel-frischer/spec-compile/internal/schema"
)

// ClarificationNotes are written into every clarification state.
var ClarificationNotes = []string{
	"Update clarification/responses.yaml to resolve blocking questions, then rerun `spec-compile clarify`.",
	"Questions are regenerated deterministically from rule checks; answers are captured in responses.yaml, not here.",
}

// Intent captures the intent document at input into the intent artifact.
func (p *Pipeline) Intent(input string) (*Result, error) {
	if input == "" {
		return nil, clierrors.MissingInput()
	}
	source, err := filepath.Abs(input)
	if err != nil {
		source = input
	}
	data, err := os.ReadFile(source)
	if err != nil {
		if artifact.IsNotExist(err) {
			return nil, clierrors.InputNotFound(source)
		}
		return nil, clierrors.WrapWithMessage(err, clierrors.Prerequisite, fmt.Sprintf("cannot read %s", source))
	}
	p.logger.Debug("reading intent source", "path", source, "bytes", len(data))

	node, err := artifact.ParseNode(data, source)
	if err != nil {
		return nil, clierrors.SchemaViolation(source, err)
	}
	intent, err := schema.ValidateIntentFile(node)
	if err != nil {
		return nil, clierrors.SchemaViolation(source, err)
	}

	f, err := artifact.YAMLFile(artifact.IntentPath, schema.IntentFile{Intent: intent})
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Runtime)
	}
	if err := p.write(f); err != nil {
		return nil, err
	}

	return &Result{
		Stage:   StageIntent,
		Outcome: OutcomeSuccess,
		Message: fmt.Sprintf("Intent captured at %s", artifact.IntentPath),
		Written: paths(f),
	}, nil
}

// ClarifyOptions configures the clarify stage.
type ClarifyOptions struct {
	// Force is accepted for compatibility. Clarify always regenerates the
	// question set and re-embeds the current intent, so it has no effect.
	Force bool
}

// Clarify derives the blocking questions for the current responses and
// writes both the responses and the clarification state. Remaining questions
// produce OutcomeSoftFailure, not an error.
func (p *Pipeline) Clarify(opts ClarifyOptions) (*Result, error) {
	if opts.Force {
		p.logger.Debug("clarify --force has no additional effect")
	}

	intent, err := p.loadIntent()
	if err != nil {
		return nil, err
	}
	cfg, err := p.loadConfig()
	if err != nil {
		return nil, err
	}

	var responses schema.ClarificationResponses
	if p.store.Exists(artifact.ClarificationResponsePath) {
		if responses, err = p.loadResponses(intent); err != nil {
			return nil, err
		}
	} else {
		p.logger.Debug("creating responses template", "path", artifact.ClarificationResponsePath)
		responses = schema.NewResponsesTemplate(intent)
	}
	responses.Intent = intent

	questions := rules.CollectMissingDecisions(cfg, intent, responses)
	state := schema.ClarificationState{
		Status:      schema.StatusReady,
		GeneratedAt: p.timestamp(),
		Questions:   questions,
		Notes:       append([]string{}, ClarificationNotes...),
	}
	if len(questions) > 0 {
		state.Status = schema.StatusPending
	}

	responsesFile, err := artifact.YAMLFile(artifact.ClarificationResponsePath, responses)
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Runtime)
	}
	stateFile, err := artifact.YAMLFile(artifact.ClarificationQuestionPath, state)
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Runtime)
	}
	if err := p.write(responsesFile, stateFile); err != nil {
		return nil, err
	}
	p.logger.Debug("clarification derived", "status", state.Status, "questions", len(questions))

	result := &Result{
		Stage:     StageClarify,
		Outcome:   OutcomeSuccess,
		Message:   "Clarification ready: no blocking questions.",
		Written:   paths(responsesFile, stateFile),
		SpecID:    responses.Metadata.SpecID,
		Questions: questions,
	}
	if len(questions) > 0 {
		result.Outcome = OutcomeSoftFailure
		result.Message = fmt.Sprintf("Clarification pending: %d blocking decision(s) recorded in %s",
			len(questions), artifact.ClarificationQuestionPath)
	}
	return result, nil
}

// Normalize renders the spec document once clarification is complete.
func (p *Pipeline) Normalize(specID string) (*Result, error) {
	intent, err := p.loadIntent()
	if err != nil {
		return nil, err
	}
	if !p.store.Exists(artifact.ClarificationResponsePath) || !p.store.Exists(artifact.ClarificationQuestionPath) {
		missing := artifact.ClarificationResponsePath
		if p.store.Exists(missing) {
			missing = artifact.ClarificationQuestionPath
		}
		return nil, clierrors.MissingArtifact(missing, string(StageClarify))
	}

	cfg, err := p.loadConfig()
	if err != nil {
		return nil, err
	}
	responses, err := p.loadResponses(intent)
	if err != nil {
		return nil, err
	}

	var state schema.ClarificationState
	if err := p.store.ReadYAML(artifact.ClarificationQuestionPath, &state); err != nil {
		return nil, clierrors.SchemaViolation(artifact.ClarificationQuestionPath, err)
	}
	if state.Status != schema.StatusReady || len(state.Questions) > 0 {
		return nil, clierrors.ClarificationNotReady(len(state.Questions), artifact.ClarificationQuestionPath)
	}

	// The persisted state may be stale or hand-edited; derive again.
	if open := rules.CollectMissingDecisions(cfg, intent, responses); len(open) > 0 {
		p.logger.Debug("stale clarification state", "first", open[0].ID)
		return nil, clierrors.ClarificationGaps(len(open))
	}

	id, err := resolveSpecID(specID, responses.Metadata.SpecID, StageNormalize)
	if err != nil {
		return nil, err
	}

	text, err := render.Spec(id, responses, cfg)
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Runtime)
	}
	f := artifact.TextFile(artifact.SpecPath(id), text)
	if err := p.write(f); err != nil {
		return nil, err
	}

	return &Result{
		Stage:   StageNormalize,
		Outcome: OutcomeSuccess,
		Message: fmt.Sprintf("Normalized spec written to %s", f.Path),
		Written: paths(f),
		SpecID:  id,
	}, nil
}

// Validate evaluates every governance rule against the rendered spec and
// writes the report. Failing rules produce OutcomeSoftFailure.
func (p *Pipeline) Validate(specID string) (*Result, error) {
	intent, err := p.loadIntent()
	if err != nil {
		return nil, err
	}
	responses, err := p.loadResponses(intent)
	if err != nil {
		return nil, err
	}
	id, err := resolveSpecID(specID, responses.Metadata.SpecID, StageValidate)
	if err != nil {
		return nil, err
	}

	specPath := artifact.SpecPath(id)
	if err := p.require(specPath, StageNormalize); err != nil {
		return nil, err
	}
	cfg, err := p.loadConfig()
	if err != nil {
		return nil, err
	}
	text, err := p.store.ReadText(specPath)
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Runtime)
	}

	report := p.engine.Report(&rules.Context{
		Config:    cfg,
		Intent:    intent,
		Responses: responses,
		SpecText:  text,
	}, id, artifact.Digest(text), p.timestamp())

	f, err := artifact.JSONFile(artifact.ValidationReportPath, report)
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Runtime)
	}
	if err := p.write(f); err != nil {
		return nil, err
	}
	p.logger.Debug("validation evaluated", "status", report.Status, "failed", report.Failed())

	result := &Result{
		Stage:   StageValidate,
		Outcome: OutcomeSuccess,
		Message: fmt.Sprintf("Validation passed. Report written to %s", artifact.ValidationReportPath),
		Written: paths(f),
		SpecID:  id,
		Report:  &report,
	}
	if report.Status != schema.ReportPassed {
		result.Outcome = OutcomeSoftFailure
		result.Message = fmt.Sprintf("Validation failed. See %s", artifact.ValidationReportPath)
	}
	return result, nil
}

// Synthesize renders the execution prompt. It refuses unless the validation
// report passed and still describes the current spec document.
func (p *Pipeline) Synthesize(specID string) (*Result, error) {
	if err := p.require(artifact.ValidationReportPath, StageValidate); err != nil {
		return nil, err
	}
	intent, err := p.loadIntent()
	if err != nil {
		return nil, err
	}
	responses, err := p.loadResponses(intent)
	if err != nil {
		return nil, err
	}
	id, err := resolveSpecID(specID, responses.Metadata.SpecID, StageSynthesize)
	if err != nil {
		return nil, err
	}

	var report schema.ValidationReport
	if err := p.store.ReadJSON(artifact.ValidationReportPath, &report); err != nil {
		return nil, clierrors.SchemaViolation(artifact.ValidationReportPath, err)
	}
	if report.Status != schema.ReportPassed {
		return nil, clierrors.ValidationNotPassed(string(report.Status))
	}

	specPath := artifact.SpecPath(id)
	if err := p.require(specPath, StageNormalize); err != nil {
		return nil, err
	}
	text, err := p.store.ReadText(specPath)
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Runtime)
	}
	if report.SpecID != id {
		return nil, clierrors.StaleValidationReport(fmt.Sprintf("report covers spec '%s', not '%s'", report.SpecID, id))
	}
	if report.SpecDigest != artifact.Digest(text) {
		return nil, clierrors.StaleValidationReport(fmt.Sprintf("%s changed after validation", specPath))
	}

	cfg, err := p.loadConfig()
	if err != nil {
		return nil, err
	}
	prompt, err := render.Prompt(render.PromptInput{
		SpecID:       id,
		Responses:    responses,
		ReportStatus: report.Status,
		Config:       cfg,
	})
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Runtime)
	}

	f := artifact.TextFile(artifact.SynthesisPromptPath, prompt)
	if err := p.write(f); err != nil {
		return nil, err
	}

	return &Result{
		Stage:   StageSynthesize,
		Outcome: OutcomeSuccess,
		Message: fmt.Sprintf("Synthesis prompt written to %s", artifact.SynthesisPromptPath),
		Written: paths(f),
		SpecID:  id,
	}, nil
}
