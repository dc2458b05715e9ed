// Package render assembles the spec document and the execution prompt from
// validated records. Rendering is a pure function of its inputs.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/ariel-frischer/spec-compile/internal/artifact"
	"github.com/ariel-frischer/spec-compile/internal/config"
	"github.com/ariel-frischer/spec-compile/internal/schema"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("render").
		Funcs(template.FuncMap{
			"bullets": bullets,
			"join":    strings.Join,
		}).
		ParseFS(templateFS, "templates/*.tmpl"),
)

// TraceEntry maps one requirement to its evidence.
type TraceEntry struct {
	ID         string
	Tests      string
	Acceptance string
}

type specView struct {
	SpecID              string
	Metadata            schema.Metadata
	PDCAPhase           string
	DataOwnership       string
	Intent              schema.IntentRecord
	ImplicitBehaviors   []string
	Requirements        []schema.Requirement
	SecurityConstraints []string
	Traceability        []TraceEntry
}

// Spec renders the spec document for specID. Every configured security
// default appears verbatim in the output.
func Spec(specID string, responses schema.ClarificationResponses, cfg *config.FrameworkConfig) (string, error) {
	phase := responses.Metadata.PDCAPhase
	if phase == "" {
		phase = schema.DefaultPDCAPhase
	}
	ownership := responses.Decisions.DataOwnership
	if ownership == "" {
		ownership = "Unspecified"
	}

	view := specView{
		SpecID:              specID,
		Metadata:            responses.Metadata,
		PDCAPhase:           phase,
		DataOwnership:       ownership,
		Intent:              responses.Intent,
		ImplicitBehaviors:   responses.Decisions.ImplicitBehaviors,
		Requirements:        responses.Requirements,
		SecurityConstraints: SecurityConstraints(cfg.SecurityDefaults, responses.Security.AdditionalConstraints),
		Traceability:        Traceability(responses.Requirements),
	}
	return execute("spec.md.tmpl", view)
}

// PromptInput carries everything the execution prompt enumerates.
type PromptInput struct {
	SpecID       string
	Responses    schema.ClarificationResponses
	ReportStatus schema.ReportStatus
	Config       *config.FrameworkConfig
}

type promptView struct {
	SpecID            string
	ConceptID         string
	PDCAPhase         string
	Synchronizations  []string
	IntentPath        string
	ResponsesPath     string
	SpecPath          string
	ReportPath        string
	ReportStatus      schema.ReportStatus
	AllowedPaths      []string
	DisallowedActions []string
	RequirementIDs    []string
}

// Prompt renders the execution prompt handed to the downstream agent.
func Prompt(in PromptInput) (string, error) {
	phase := in.Responses.Metadata.PDCAPhase
	if phase == "" {
		phase = schema.DefaultPDCAPhase
	}

	view := promptView{
		SpecID:            in.SpecID,
		ConceptID:         in.Responses.Metadata.ConceptID,
		PDCAPhase:         phase,
		Synchronizations:  in.Responses.Metadata.Synchronizations,
		IntentPath:        artifact.IntentPath,
		ResponsesPath:     artifact.ClarificationResponsePath,
		SpecPath:          artifact.SpecPath(in.SpecID),
		ReportPath:        artifact.ValidationReportPath,
		ReportStatus:      in.ReportStatus,
		AllowedPaths:      in.Config.AllowedPaths,
		DisallowedActions: in.Config.DisallowedActions,
		RequirementIDs:    in.Responses.RequirementIDs(),
	}
	return execute("prompt.md.tmpl", view)
}

// SecurityConstraints returns the union of defaults and additional
// constraints, keeping first occurrences in order.
func SecurityConstraints(defaults, additional []string) []string {
	seen := make(map[string]struct{}, len(defaults)+len(additional))
	out := make([]string, 0, len(defaults)+len(additional))
	for _, list := range [][]string{defaults, additional} {
		for _, entry := range list {
			if _, ok := seen[entry]; ok {
				continue
			}
			seen[entry] = struct{}{}
			out = append(out, entry)
		}
	}
	return out
}

// Traceability builds the requirement index in requirement order.
func Traceability(reqs []schema.Requirement) []TraceEntry {
	out := make([]TraceEntry, 0, len(reqs))
	for _, req := range reqs {
		tests := "No tests"
		if len(req.Validation.Tests) > 0 {
			tests = strings.Join(req.Validation.Tests, "; ")
		}
		acceptance := "No acceptance criteria"
		if len(req.Validation.AcceptanceCriteria) > 0 {
			acceptance = strings.Join(req.Validation.AcceptanceCriteria, "; ")
		}
		out = append(out, TraceEntry{ID: req.ID, Tests: tests, Acceptance: acceptance})
	}
	return out
}

// bullets renders items as a markdown list indented by indent spaces, or a
// single fallback bullet when items is empty.
func bullets(items []string, indent int, fallback string) string {
	prefix := strings.Repeat(" ", indent) + "- "
	if len(items) == 0 {
		return prefix + fallback
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, prefix+item)
	}
	return strings.Join(lines, "\n")
}

func execute(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}
