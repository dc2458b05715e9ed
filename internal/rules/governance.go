package rules

import (
	"fmt"
	"strings"
)

// Governance rule ids.
const (
	ClarificationCompleteRule   = "clarification-complete.rule"
	OneConceptRule              = "one-concept.rule"
	SynchronizationRequiredRule = "synchronization-required.rule"
	DataOwnershipRule           = "data-ownership.rule"
	SecurityScopeRule           = "security-scope.rule"
	TraceabilityRule            = "requirement-to-test.traceability.rule"
	NoImplicitBehaviorRule      = "no-implicit-behavior.rule"
)

// PlaceholderTokens are scanned in this order; the first hit is reported.
var PlaceholderTokens = []string{"TBD", "??", "<pending>", "REVISIT"}

// DetectPlaceholder returns the first placeholder token found in text.
func DetectPlaceholder(text string) (string, bool) {
	for _, token := range PlaceholderTokens {
		if strings.Contains(text, token) {
			return token, true
		}
	}
	return "", false
}

func pass(message string) Verdict {
	return Verdict{Passed: true, Message: message}
}

func fail(message, counterexample string) Verdict {
	return Verdict{Message: message, Counterexample: counterexample}
}

func checkClarificationComplete(ctx *Context) Verdict {
	open := CollectMissingDecisions(ctx.Config, ctx.Intent, ctx.Responses)
	if len(open) == 0 {
		return pass("All clarification checks are resolved.")
	}
	return fail(fmt.Sprintf("%d clarification decision(s) remain unresolved.", len(open)), open[0].Issue)
}

func checkOneConcept(ctx *Context) Verdict {
	id := ctx.Responses.Metadata.ConceptID
	if !blank(id) && ctx.Config.HasConcept(id) {
		return pass("Exactly one concept is referenced.")
	}
	if id == "" {
		id = "missing"
	}
	return fail("Concept is missing or not in configured concepts.", "concept_id="+id)
}

func checkSynchronizations(ctx *Context) Verdict {
	syncs := ctx.Responses.Metadata.Synchronizations
	if len(syncs) > 0 && allConfigured(ctx.Config, syncs) {
		return pass("Synchronizations declared and valid.")
	}
	listed := strings.Join(syncs, ", ")
	if listed == "" {
		listed = "none"
	}
	return fail("Synchronizations missing or invalid.", "synchronizations="+listed)
}

func checkDataOwnership(ctx *Context) Verdict {
	if !blank(ctx.Responses.Decisions.DataOwnership) {
		return pass("Data ownership is explicitly defined.")
	}
	return fail("Data ownership is missing.", "responses.decisions.data_ownership is empty.")
}

func checkSecurityScope(ctx *Context) Verdict {
	const message = "Default security constraints are missing from responses or spec text."
	if !ctx.Responses.Security.DefaultsApplied {
		return fail(message, "responses.security.defaults_applied=false")
	}
	for _, entry := range ctx.Config.SecurityDefaults {
		if !strings.Contains(ctx.SpecText, entry) {
			return fail(message, fmt.Sprintf("Security default %q is missing from spec content.", entry))
		}
	}
	return pass("Security defaults are applied and present in the spec.")
}

func checkTraceability(ctx *Context) Verdict {
	reqs := ctx.Responses.Requirements
	if len(reqs) == 0 {
		return fail("Some requirements are missing tests or acceptance criteria.", "No requirements defined.")
	}
	for _, req := range reqs {
		if len(req.Validation.Tests) == 0 || len(req.Validation.AcceptanceCriteria) == 0 {
			return fail("Some requirements are missing tests or acceptance criteria.",
				fmt.Sprintf("Requirement %s lacks complete validation coverage.", req.ID))
		}
	}
	return pass("Every requirement has tests and acceptance criteria.")
}

func checkNoImplicitBehavior(ctx *Context) Verdict {
	const message = "Implicit behavior or placeholders detected."
	if token, found := DetectPlaceholder(ctx.SpecText); found {
		return fail(message, fmt.Sprintf("Placeholder '%s' found in spec content.", token))
	}
	if len(ctx.Responses.Decisions.ImplicitBehaviors) > 0 ||
		len(ctx.Intent.UnstatedAssumptions) > 0 ||
		len(ctx.Intent.Uncertainties) > 0 {
		return fail(message, "Implicit behaviors, assumptions, or uncertainties remain.")
	}
	return pass("No implicit or placeholder behaviors remain.")
}
