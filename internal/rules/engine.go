package rules

import (
	"fmt"

	"github.com/ariel-frischer/spec-compile/internal/config"
	"github.com/ariel-frischer/spec-compile/internal/schema"
)

// Context is the shared input every rule is evaluated against.
type Context struct {
	Config    *config.FrameworkConfig
	Intent    schema.IntentRecord
	Responses schema.ClarificationResponses
	SpecText  string
}

// Verdict is the outcome of a single rule check.
type Verdict struct {
	Passed         bool
	Message        string
	Counterexample string
}

// Check evaluates one rule against a context.
type Check func(ctx *Context) Verdict

// Rule is a named governance rule.
type Rule struct {
	ID    string
	Check Check
}

// Engine evaluates registered rules in registration order.
type Engine struct {
	rules []Rule
	index map[string]int
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{index: make(map[string]int)}
}

// DefaultEngine returns an engine loaded with every governance rule in
// canonical report order.
func DefaultEngine() *Engine {
	e := NewEngine()
	e.Register(Rule{ID: ClarificationCompleteRule, Check: checkClarificationComplete})
	e.Register(Rule{ID: OneConceptRule, Check: checkOneConcept})
	e.Register(Rule{ID: SynchronizationRequiredRule, Check: checkSynchronizations})
	e.Register(Rule{ID: DataOwnershipRule, Check: checkDataOwnership})
	e.Register(Rule{ID: SecurityScopeRule, Check: checkSecurityScope})
	e.Register(Rule{ID: TraceabilityRule, Check: checkTraceability})
	e.Register(Rule{ID: NoImplicitBehaviorRule, Check: checkNoImplicitBehavior})
	return e
}

// Register adds a rule. Registering the same id twice panics.
func (e *Engine) Register(r Rule) {
	if r.ID == "" || r.Check == nil {
		panic("rules: rule requires an id and a check")
	}
	if _, dup := e.index[r.ID]; dup {
		panic(fmt.Sprintf("rules: duplicate rule %q", r.ID))
	}
	e.index[r.ID] = len(e.rules)
	e.rules = append(e.rules, r)
}

// IDs returns registered rule ids in evaluation order.
func (e *Engine) IDs() []string {
	ids := make([]string, 0, len(e.rules))
	for _, r := range e.rules {
		ids = append(ids, r.ID)
	}
	return ids
}

// Evaluate runs every rule against ctx.
func (e *Engine) Evaluate(ctx *Context) []schema.ValidationRuleResult {
	results := make([]schema.ValidationRuleResult, 0, len(e.rules))
	for _, r := range e.rules {
		v := r.Check(ctx)
		results = append(results, schema.ValidationRuleResult{
			ID:             r.ID,
			Passed:         v.Passed,
			Message:        v.Message,
			Counterexample: v.Counterexample,
		})
	}
	return results
}

// Report evaluates every rule and assembles a validation report.
func (e *Engine) Report(ctx *Context, specID, digest, generatedAt string) schema.ValidationReport {
	results := e.Evaluate(ctx)
	failed := make([]schema.ValidationRuleResult, 0)
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}

	status := schema.ReportPassed
	if len(failed) > 0 {
		status = schema.ReportFailed
	}
	return schema.ValidationReport{
		Status:      status,
		GeneratedAt: generatedAt,
		SpecID:      specID,
		SpecDigest:  digest,
		Rules:       results,
		Errors:      failed,
	}
}
