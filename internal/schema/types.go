// Package schema decodes the pipeline's human-edited YAML documents into
// closed record types.
package schema

// DefaultPDCAPhase is applied when responses leave metadata.pdca_phase blank.
const DefaultPDCAPhase = "Plan"

// IntentRecord is the captured statement of intent.
type IntentRecord struct {
	UserGoal            string   `yaml:"user_goal" json:"user_goal"`
	Context             string   `yaml:"context" json:"context"`
	StatedConstraints   []string `yaml:"stated_constraints" json:"stated_constraints"`
	UnstatedAssumptions []string `yaml:"unstated_assumptions" json:"unstated_assumptions"`
	Uncertainties       []string `yaml:"uncertainties" json:"uncertainties"`
	OutOfScope          []string `yaml:"out_of_scope" json:"out_of_scope"`
}

// IntentFile is the on-disk shape of the intent artifact.
type IntentFile struct {
	Intent IntentRecord `yaml:"intent"`
}

// QuestionType classifies the answer options of a clarification question.
type QuestionType string

const (
	QuestionBinary         QuestionType = "binary"
	QuestionMultipleChoice QuestionType = "multiple-choice"
)

// ClarificationQuestion is one blocking decision derived from the rule checks.
type ClarificationQuestion struct {
	ID            string       `yaml:"id"`
	Prompt        string       `yaml:"prompt"`
	Type          QuestionType `yaml:"type"`
	Options       []string     `yaml:"options"`
	AllowMultiple bool         `yaml:"allowMultiple"`
	Answer        interface{}  `yaml:"answer"`
	Blocking      bool         `yaml:"blocking"`
	Issue         string       `yaml:"issue"`
}

// ClarificationStatus is the readiness of a clarification state.
type ClarificationStatus string

const (
	StatusPending ClarificationStatus = "pending"
	StatusReady   ClarificationStatus = "ready"
)

// ClarificationState is the question artifact written by clarify.
type ClarificationState struct {
	Status      ClarificationStatus     `yaml:"status"`
	GeneratedAt string                  `yaml:"generated_at"`
	Questions   []ClarificationQuestion `yaml:"questions"`
	Notes       []string                `yaml:"notes,omitempty"`
}

// RequirementValidation lists the evidence that proves a requirement.
type RequirementValidation struct {
	Tests              []string `yaml:"tests"`
	AcceptanceCriteria []string `yaml:"acceptance_criteria"`
}

// Requirement is a single governed requirement.
type Requirement struct {
	ID          string                `yaml:"id"`
	Description string                `yaml:"description"`
	Owner       string                `yaml:"owner,omitempty"`
	Validation  RequirementValidation `yaml:"validation"`
}

// Metadata identifies the spec and its governance scope.
type Metadata struct {
	SpecID           string   `yaml:"spec_id"`
	ConceptID        string   `yaml:"concept_id"`
	Synchronizations []string `yaml:"synchronizations"`
	PDCAPhase        string   `yaml:"pdca_phase"`
}

// Decisions records explicit governance decisions.
type Decisions struct {
	DataOwnership     string   `yaml:"data_ownership"`
	ImplicitBehaviors []string `yaml:"implicit_behaviors"`
}

// Security records how security constraints apply to the spec.
type Security struct {
	DefaultsApplied       bool     `yaml:"defaults_applied"`
	AdditionalConstraints []string `yaml:"additional_constraints"`
}

// ClarificationResponses is the human-edited responses artifact.
type ClarificationResponses struct {
	Metadata     Metadata      `yaml:"metadata"`
	Intent       IntentRecord  `yaml:"intent"`
	Decisions    Decisions     `yaml:"decisions"`
	Requirements []Requirement `yaml:"requirements"`
	Security     Security      `yaml:"security"`
}

// RequirementIDs returns requirement ids in document order.
func (r *ClarificationResponses) RequirementIDs() []string {
	ids := make([]string, 0, len(r.Requirements))
	for _, req := range r.Requirements {
		ids = append(ids, req.ID)
	}
	return ids
}

// NewResponsesTemplate returns an empty responses document embedding intent.
func NewResponsesTemplate(intent IntentRecord) ClarificationResponses {
	return ClarificationResponses{
		Metadata: Metadata{
			Synchronizations: []string{},
			PDCAPhase:        DefaultPDCAPhase,
		},
		Intent: intent,
		Decisions: Decisions{
			ImplicitBehaviors: []string{},
		},
		Requirements: []Requirement{},
		Security: Security{
			DefaultsApplied:       true,
			AdditionalConstraints: []string{},
		},
	}
}

// ReportStatus is the overall outcome of a validation run.
type ReportStatus string

const (
	ReportPassed ReportStatus = "passed"
	ReportFailed ReportStatus = "failed"
)

// ValidationRuleResult is the outcome of one governance rule.
type ValidationRuleResult struct {
	ID             string `json:"id"`
	Passed         bool   `json:"passed"`
	Message        string `json:"message"`
	Counterexample string `json:"counterexample,omitempty"`
}

// ValidationReport is the artifact written by validate.
type ValidationReport struct {
	Status      ReportStatus           `json:"status"`
	GeneratedAt string                 `json:"generated_at"`
	SpecID      string                 `json:"spec_id"`
	SpecDigest  string                 `json:"spec_digest"`
	Rules       []ValidationRuleResult `json:"rules"`
	Errors      []ValidationRuleResult `json:"errors"`
}

// Failed returns the ids of failing rules.
func (r *ValidationReport) Failed() []string {
	ids := make([]string, 0, len(r.Errors))
	for _, rule := range r.Errors {
		ids = append(ids, rule.ID)
	}
	return ids
}
