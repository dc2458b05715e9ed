package schema

import (
	"gopkg.in/yaml.v3"
)

// ValidateIntentFile decodes an intent document of the form
// {intent: {user_goal, context, ...}} into an IntentRecord.
func ValidateIntentFile(doc *yaml.Node) (IntentRecord, error) {
	root := resolve(doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return IntentRecord{}, typeError(root, "", "intent file must be a YAML object with a top-level 'intent' key", "object")
	}

	node := findNode(root, "intent")
	if node == nil || node.Kind != yaml.MappingNode {
		e := typeError(node, "intent", "intent file must include an 'intent' object", "object")
		if node == nil {
			at := keyNode(root, "intent")
			if at == nil {
				at = root
			}
			e.Line, e.Column = at.Line, at.Column
		}
		return IntentRecord{}, e
	}

	return decodeIntent(node, "intent")
}

func decodeIntent(node *yaml.Node, prefix string) (IntentRecord, error) {
	var rec IntentRecord
	var err error

	if rec.UserGoal, err = stringField(node, "user_goal", prefix+".user_goal", true); err != nil {
		return IntentRecord{}, err
	}
	if rec.Context, err = stringField(node, "context", prefix+".context", true); err != nil {
		return IntentRecord{}, err
	}

	lists := []struct {
		key string
		dst *[]string
	}{
		{"stated_constraints", &rec.StatedConstraints},
		{"unstated_assumptions", &rec.UnstatedAssumptions},
		{"uncertainties", &rec.Uncertainties},
		{"out_of_scope", &rec.OutOfScope},
	}
	for _, l := range lists {
		if *l.dst, err = stringList(node, l.key, prefix+"."+l.key); err != nil {
			return IntentRecord{}, err
		}
	}
	return rec, nil
}
