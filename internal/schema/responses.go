package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const responsesPrefix = "responses"

// ValidateResponses decodes a clarification responses document. The intent
// section of the document is ignored; intent is always the record passed in,
// so edits to the captured intent flow into every later stage.
//
// Type errors fail immediately. Content gaps such as blank ids decode
// successfully and are left for the rule checks to flag.
func ValidateResponses(doc *yaml.Node, intent IntentRecord) (ClarificationResponses, error) {
	root := resolve(doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return ClarificationResponses{}, typeError(root, "", "clarification/responses.yaml must be a YAML object", "object")
	}

	metadata, err := optionalMapping(root, "metadata", responsesPrefix+".metadata")
	if err != nil {
		return ClarificationResponses{}, err
	}
	decisions, err := optionalMapping(root, "decisions", responsesPrefix+".decisions")
	if err != nil {
		return ClarificationResponses{}, err
	}
	security, err := optionalMapping(root, "security", responsesPrefix+".security")
	if err != nil {
		return ClarificationResponses{}, err
	}

	requirements, err := decodeRequirements(root)
	if err != nil {
		return ClarificationResponses{}, err
	}

	out := ClarificationResponses{
		Intent:       intent,
		Requirements: requirements,
	}

	if err := decodeMetadata(metadata, &out.Metadata); err != nil {
		return ClarificationResponses{}, err
	}
	if err := decodeDecisions(decisions, &out.Decisions); err != nil {
		return ClarificationResponses{}, err
	}
	if err := decodeSecurity(security, &out.Security); err != nil {
		return ClarificationResponses{}, err
	}
	return out, nil
}

func decodeMetadata(node *yaml.Node, m *Metadata) error {
	const prefix = responsesPrefix + ".metadata"
	var err error

	if m.SpecID, err = stringField(node, "spec_id", prefix+".spec_id", false); err != nil {
		return err
	}
	if m.ConceptID, err = stringField(node, "concept_id", prefix+".concept_id", false); err != nil {
		return err
	}
	if m.Synchronizations, err = stringList(node, "synchronizations", prefix+".synchronizations"); err != nil {
		return err
	}
	if m.PDCAPhase, err = stringField(node, "pdca_phase", prefix+".pdca_phase", false); err != nil {
		return err
	}
	if m.PDCAPhase == "" {
		m.PDCAPhase = DefaultPDCAPhase
	}
	return nil
}

func decodeDecisions(node *yaml.Node, d *Decisions) error {
	const prefix = responsesPrefix + ".decisions"
	var err error

	if d.DataOwnership, err = stringField(node, "data_ownership", prefix+".data_ownership", false); err != nil {
		return err
	}
	if d.ImplicitBehaviors, err = stringList(node, "implicit_behaviors", prefix+".implicit_behaviors"); err != nil {
		return err
	}
	return nil
}

// decodeSecurity applies the permissive default: anything other than a
// boolean leaves defaults_applied true.
func decodeSecurity(node *yaml.Node, s *Security) error {
	s.DefaultsApplied = true
	if v := findNode(node, "defaults_applied"); v != nil && v.Kind == yaml.ScalarNode && v.ShortTag() == "!!bool" {
		var applied bool
		if err := v.Decode(&applied); err == nil {
			s.DefaultsApplied = applied
		}
	}

	var err error
	s.AdditionalConstraints, err = stringList(node, "additional_constraints", responsesPrefix+".security.additional_constraints")
	return err
}

func decodeRequirements(root *yaml.Node) ([]Requirement, error) {
	node := findNode(root, "requirements")
	if node == nil {
		return []Requirement{}, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, typeError(node, responsesPrefix+".requirements", "must be an array", "array")
	}

	out := make([]Requirement, 0, len(node.Content))
	for i, entry := range node.Content {
		req, err := decodeRequirement(entry, i)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, nil
}

func decodeRequirement(raw *yaml.Node, index int) (Requirement, error) {
	prefix := fmt.Sprintf("requirements[%d]", index)
	node := resolve(raw)
	if node == nil || node.Kind != yaml.MappingNode {
		at := node
		if at == nil {
			at = raw
		}
		e := typeError(node, prefix, "must be an object", "object")
		e.Line, e.Column = at.Line, at.Column
		return Requirement{}, e
	}

	validation, err := optionalMapping(node, "validation", prefix+".validation")
	if err != nil {
		return Requirement{}, err
	}

	var req Requirement
	if req.Validation.Tests, err = stringList(validation, "tests", prefix+".validation.tests"); err != nil {
		return Requirement{}, err
	}
	if req.Validation.AcceptanceCriteria, err = stringList(validation, "acceptance_criteria", prefix+".validation.acceptance_criteria"); err != nil {
		return Requirement{}, err
	}
	if req.ID, err = stringField(node, "id", prefix+".id", false); err != nil {
		return Requirement{}, err
	}
	if req.Description, err = stringField(node, "description", prefix+".description", false); err != nil {
		return Requirement{}, err
	}
	if owner := findNode(node, "owner"); owner != nil && isString(owner) && owner.Value != "" {
		req.Owner = owner.Value
	}
	return req, nil
}
