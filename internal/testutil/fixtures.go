// Package testutil provides fixtures and helpers for spec-compile tests.
package testutil

import (
	"github.com/ariel-frischer/spec-compile/internal/config"
	"github.com/ariel-frischer/spec-compile/internal/schema"
)

// Security defaults used by the fixture config.
const (
	SecurityDefaultLocal = "Local filesystem only."
	SecurityDefaultNoGen = "No application-code generation."
)

// FrameworkConfig returns a config declaring concept c1 and synchronization s1.
func FrameworkConfig() *config.FrameworkConfig {
	return &config.FrameworkConfig{
		Concepts:          []config.Concept{{ID: "c1", Name: "Concept One"}},
		Synchronizations:  []config.Synchronization{{ID: "s1"}},
		SecurityDefaults:  []string{SecurityDefaultLocal, SecurityDefaultNoGen},
		AllowedPaths:      []string{"src/**", "tests/**"},
		DisallowedActions: []string{"Generate application code."},
	}
}

// ReadyIntent returns an intent with no open assumptions or uncertainties.
func ReadyIntent() schema.IntentRecord {
	return schema.IntentRecord{
		UserGoal:            "Compile governed specs",
		Context:             "Local pipeline",
		StatedConstraints:   []string{"Offline only"},
		UnstatedAssumptions: []string{},
		Uncertainties:       []string{},
		OutOfScope:          []string{"Code generation"},
	}
}

// ReadyResponses returns responses that satisfy every clarification check
// against FrameworkConfig.
func ReadyResponses(intent schema.IntentRecord) schema.ClarificationResponses {
	r := schema.NewResponsesTemplate(intent)
	r.Metadata.SpecID = "spec-1"
	r.Metadata.ConceptID = "c1"
	r.Metadata.Synchronizations = []string{"s1"}
	r.Decisions.DataOwnership = "team-a"
	r.Requirements = []schema.Requirement{{
		ID:          "r1",
		Description: "Spec documents are rendered deterministically",
		Validation: schema.RequirementValidation{
			Tests:              []string{"render twice and compare"},
			AcceptanceCriteria: []string{"outputs are byte-identical"},
		},
	}}
	return r
}
