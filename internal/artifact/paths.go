// Package artifact reads and writes the pipeline's file artifacts beneath a
// working root. Every write replaces the whole file through a temporary file
// and a rename, so readers never observe a partially written artifact.
package artifact

import (
	"path/filepath"
	"regexp"
)

// Directories under the working root.
const (
	IntentDir        = "intent"
	ClarificationDir = "clarification"
	SpecsDir         = "specs"
	ValidationDir    = "validation"
	SynthesisDir     = "synthesis"
)

// Artifact paths relative to the working root.
const (
	IntentPath                = IntentDir + "/intent.raw.yaml"
	ClarificationQuestionPath = ClarificationDir + "/questions.yaml"
	ClarificationResponsePath = ClarificationDir + "/responses.yaml"
	ValidationReportPath      = ValidationDir + "/report.json"
	SynthesisPromptPath       = SynthesisDir + "/codex.prompt.md"
)

var specIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidSpecID reports whether id can be used to name a spec document.
func ValidSpecID(id string) bool {
	return specIDPattern.MatchString(id)
}

// SpecPath returns the spec document path for id, relative to the working root.
func SpecPath(id string) string {
	return filepath.ToSlash(filepath.Join(SpecsDir, id+".md"))
}
