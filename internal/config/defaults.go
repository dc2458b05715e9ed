package config

// Default returns the built-in configuration used when no config file exists.
// A fresh value is returned on every call.
func Default() *FrameworkConfig {
	return &FrameworkConfig{
		Concepts: []Concept{
			{
				ID:          "spec-generation-framework",
				Name:        "Spec Generation Framework",
				Description: "Deterministic compiler that converts human intent into governed specifications.",
			},
		},
		Synchronizations: []Synchronization{
			{ID: "governance-alignment", Description: "Ensure outputs comply with governance contract."},
			{ID: "run-records", Description: "Persist deterministic run receipts for auditability."},
		},
		SecurityDefaults: []string{
			"Local filesystem only; no external service calls or secret material in artifacts.",
			"Deterministic execution; disable automatic retries or unstated fallbacks.",
			"No application-code generation; specifications only.",
		},
		AllowedPaths: []string{
			"src/**",
			"tests/**",
			"intent/**",
			"clarification/**",
			"specs/**",
			"validation/**",
			"synthesis/**",
		},
		DisallowedActions: []string{
			"Generate application code.",
			"Invoke LLMs inside the compiler pipeline.",
			"Bypass validation or governance gates.",
		},
	}
}

// GetDefaults returns the default configuration values as koanf keys.
func GetDefaults() map[string]interface{} {
	d := Default()

	concepts := make([]interface{}, 0, len(d.Concepts))
	for _, c := range d.Concepts {
		concepts = append(concepts, map[string]interface{}{
			"id":          c.ID,
			"name":        c.Name,
			"description": c.Description,
		})
	}

	syncs := make([]interface{}, 0, len(d.Synchronizations))
	for _, s := range d.Synchronizations {
		syncs = append(syncs, map[string]interface{}{
			"id":          s.ID,
			"description": s.Description,
		})
	}

	return map[string]interface{}{
		"concepts":           concepts,
		"synchronizations":   syncs,
		"security_defaults":  d.SecurityDefaults,
		"allowed_paths":      d.AllowedPaths,
		"disallowed_actions": d.DisallowedActions,
	}
}
