package errors

import "fmt"

// MissingInput reports that the intent stage was run without --input.
func MissingInput() *CLIError {
	return NewArgumentErrorWithUsage(
		"intent capture requires --input <path> to a YAML file matching the intent schema",
		"spec-compile intent --input <path>",
		"Write the intent payload to a YAML file with a top-level 'intent' object",
		"Pass its path with --input",
	)
}

// InputNotFound reports that the intent source file does not exist.
func InputNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("input file not found: %s", path),
		"Check the path passed to --input",
	)
}

// MissingArtifact reports a required upstream artifact that does not exist.
// producer is the stage that writes it.
func MissingArtifact(path, producer string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("%s is missing", path),
		fmt.Sprintf("Run 'spec-compile %s' first", producer),
	)
}

// SpecIDRequired reports that no spec id was recorded or supplied.
func SpecIDRequired(stage string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("spec id is required for %s", stage),
		"Populate metadata.spec_id in clarification/responses.yaml",
		"Or pass --spec-id <id>",
	)
}

// SpecIDMismatch reports an override that conflicts with the recorded spec id.
func SpecIDMismatch(recorded, requested string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("spec id mismatch: responses metadata uses '%s' but --spec-id is '%s'", recorded, requested),
		fmt.Sprintf("Drop --spec-id or pass --spec-id %s", recorded),
	)
}

// InvalidSpecID reports a spec id that cannot be used as a file name.
func InvalidSpecID(id string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid spec id '%s': use letters, digits, '.', '_' or '-' and start with a letter or digit", id),
		"Fix metadata.spec_id in clarification/responses.yaml",
	)
}

// ClarificationNotReady reports that the persisted clarification state is pending.
func ClarificationNotReady(open int, questionsPath string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("clarification is not ready (%d blocking decision(s))", open),
		fmt.Sprintf("Resolve the questions in %s", questionsPath),
		"Rerun 'spec-compile clarify'",
	)
}

// ClarificationGaps reports gaps found when re-deriving decisions despite a ready state.
func ClarificationGaps(count int) *CLIError {
	return NewGovernanceError(
		fmt.Sprintf("clarification gaps remain (%d) although the clarification state claims readiness", count),
		"Rerun 'spec-compile clarify' after updating responses",
	)
}

// ValidationNotPassed reports an attempt to synthesize while validation is failing.
func ValidationNotPassed(status string) *CLIError {
	return NewGovernanceError(
		fmt.Sprintf("cannot synthesize prompt while validation status is '%s'", status),
		"Resolve the failing rules listed in validation/report.json",
		"Rerun 'spec-compile validate'",
	)
}

// StaleValidationReport reports a validation report that does not describe the current spec.
func StaleValidationReport(reason string) *CLIError {
	return NewGovernanceError(
		fmt.Sprintf("validation report is stale: %s", reason),
		"Rerun 'spec-compile validate'",
	)
}

// ConfigParseError reports a framework configuration that could not be loaded.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to load config %s", path),
		"Check the YAML syntax of the config file",
		"Declare at least one concept and one synchronization",
	)
}

// SchemaViolation reports an artifact that failed schema decoding.
func SchemaViolation(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("%s failed schema validation", path),
		fmt.Sprintf("Fix the reported field in %s", path),
	)
}

// FileNotWritable reports an artifact that could not be written.
func FileNotWritable(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot write %s", path),
		"Check directory permissions under the working root",
	)
}

// ConfigExists reports that init would overwrite an existing config file.
func ConfigExists(path string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("config already exists at %s", path),
		"Pass --force to overwrite it",
	)
}
