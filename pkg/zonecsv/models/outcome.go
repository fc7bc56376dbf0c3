package models

// Outcome is the result class of processing one scenario.
type Outcome string

const (
	// OutcomeSuccess means the file was rewritten (or would be, in a dry run).
	OutcomeSuccess Outcome = "success"
	// OutcomeFileMissing means no regular file exists at the resolved path.
	OutcomeFileMissing Outcome = "file_missing"
	// OutcomeEmptySource means the file exists but has no header row.
	OutcomeEmptySource Outcome = "empty_source"
	// OutcomeError means a malformed row or an I/O failure aborted the scenario.
	OutcomeError Outcome = "error"
)

// ScenarioOutcome records what happened to one scenario's file.
type ScenarioOutcome struct {
	// Scenario is the scenario folder name.
	Scenario string `json:"scenario"`
	// Path is the resolved file path.
	Path string `json:"path"`
	// Outcome is the result class.
	Outcome Outcome `json:"outcome"`
	// Rows is the number of data rows written (success only).
	Rows int `json:"rows"`
	// NumericZones counts zone values that look like numbers in the output.
	NumericZones int `json:"numeric_zones"`
	// DryRun is set when the file was not replaced on purpose.
	DryRun bool `json:"dry_run,omitempty"`
	// Reason describes the failure (error only).
	Reason string `json:"reason,omitempty"`
	// Err is the underlying error (error only).
	Err error `json:"-"`
}

// IsHardError reports whether the outcome should fail the run.
// Missing files count only when missingIsError is set.
func (o ScenarioOutcome) IsHardError(missingIsError bool) bool {
	switch o.Outcome {
	case OutcomeError:
		return true
	case OutcomeFileMissing:
		return missingIsError
	default:
		return false
	}
}
