// Package models defines the report structures produced by zone file runs.
package models

// RunReport is the per-scenario report of one normalization run.
type RunReport struct {
	// RunID identifies the run in logs and reports.
	RunID string `json:"run_id"`
	// Root is the directory the scenario paths were resolved under.
	Root string `json:"root"`
	// Outcomes holds one entry per scenario, in configuration order.
	Outcomes []ScenarioOutcome `json:"outcomes"`
}

// Failed reports whether any scenario hit a hard error.
func (r *RunReport) Failed(missingIsError bool) bool {
	return r.Failures(missingIsError) > 0
}

// Failures returns the number of scenarios that hit a hard error.
func (r *RunReport) Failures(missingIsError bool) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.IsHardError(missingIsError) {
			n++
		}
	}
	return n
}

// Count returns the number of outcomes of the given class.
func (r *RunReport) Count(outcome Outcome) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Outcome == outcome {
			n++
		}
	}
	return n
}
