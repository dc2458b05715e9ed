// Package rules derives blocking clarification questions and evaluates the
// governance rules that gate synthesis.
package rules

import (
	"strings"

	"github.com/ariel-frischer/spec-compile/internal/config"
	"github.com/ariel-frischer/spec-compile/internal/schema"
)

var yesNo = []string{"yes", "no"}

type questionList []schema.ClarificationQuestion

func (q *questionList) add(id, prompt string, options []string, allowMultiple bool) {
	opts := append([]string{}, options...)
	*q = append(*q, schema.ClarificationQuestion{
		ID:            id,
		Prompt:        prompt,
		Type:          questionType(opts),
		Options:       opts,
		AllowMultiple: allowMultiple,
		Answer:        nil,
		Blocking:      true,
		Issue:         prompt,
	})
}

func questionType(options []string) schema.QuestionType {
	if len(options) == 2 && contains(options, "yes") && contains(options, "no") {
		return schema.QuestionBinary
	}
	return schema.QuestionMultipleChoice
}

// CollectMissingDecisions returns the blocking questions that must be
// resolved before normalization. The result depends only on its inputs and
// is always produced in the same order.
func CollectMissingDecisions(cfg *config.FrameworkConfig, intent schema.IntentRecord, responses schema.ClarificationResponses) []schema.ClarificationQuestion {
	questions := questionList{}
	meta := responses.Metadata

	if blank(meta.SpecID) {
		questions.add("spec_id", "Set metadata.spec_id in clarification/responses.yaml", yesNo, false)
	}

	conceptIDs := cfg.ConceptIDs()
	if blank(meta.ConceptID) {
		questions.add("concept_id", "Select exactly one Concept (metadata.concept_id)", conceptIDs, false)
	} else if !cfg.HasConcept(meta.ConceptID) {
		questions.add("concept_id_invalid", "Concept must be one of the configured concepts", conceptIDs, false)
	}

	syncIDs := cfg.SynchronizationIDs()
	if len(meta.Synchronizations) == 0 {
		questions.add("synchronizations", "Declare required synchronizations in metadata.synchronizations", syncIDs, true)
	} else if !allConfigured(cfg, meta.Synchronizations) {
		questions.add("synchronizations_invalid", "Synchronizations must match configured synchronizations", syncIDs, true)
	}

	if blank(responses.Decisions.DataOwnership) {
		questions.add("data_ownership", "Define data ownership in decisions.data_ownership", yesNo, false)
	}

	if len(responses.Requirements) == 0 {
		questions.add("requirements", "Add at least one requirement with validation coverage", yesNo, false)
	}
	for _, req := range responses.Requirements {
		if blank(req.ID) || blank(req.Description) {
			id := req.ID
			if id == "" {
				id = "missing"
			}
			questions.add("requirement_"+id, "Each requirement needs id and description", yesNo, false)
		}
		if len(req.Validation.Tests) == 0 {
			questions.add("tests_"+req.ID, "Requirement "+req.ID+" needs at least one validation test", yesNo, false)
		}
		if len(req.Validation.AcceptanceCriteria) == 0 {
			questions.add("acceptance_"+req.ID, "Requirement "+req.ID+" needs acceptance criteria", yesNo, false)
		}
	}

	if !responses.Security.DefaultsApplied {
		questions.add("security_defaults", "Default security constraints must be applied", yesNo, false)
	}

	// Implicit behavior is disallowed, so any recorded entry is a gap.
	if len(responses.Decisions.ImplicitBehaviors) > 0 {
		questions.add("implicit_behaviors", "Resolve or document implicit behaviors so none remain unaddressed", yesNo, false)
	}
	if len(intent.UnstatedAssumptions) > 0 {
		questions.add("unstated_assumptions", "Resolve unstated assumptions or convert them into explicit constraints", yesNo, false)
	}
	if len(intent.Uncertainties) > 0 {
		questions.add("uncertainties", "Resolve uncertainties before normalization (update intent or clarifications)", yesNo, false)
	}

	return questions
}

func allConfigured(cfg *config.FrameworkConfig, syncs []string) bool {
	for _, s := range syncs {
		if !cfg.HasSynchronization(s) {
			return false
		}
	}
	return true
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
