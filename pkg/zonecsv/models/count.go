package models

// ScenarioCount holds the distinct zone count of one scenario.
type ScenarioCount struct {
	// Scenario is the scenario folder name.
	Scenario string `json:"scenario"`
	// Path is the resolved file path.
	Path string `json:"path"`
	// Zones is the number of distinct zone values.
	Zones int `json:"zones"`
	// Missing is set when the file does not exist.
	Missing bool `json:"missing,omitempty"`
	// Reason describes a read failure.
	Reason string `json:"reason,omitempty"`
}

// CountReport lists distinct zone counts in scenario order.
type CountReport struct {
	// Root is the directory the scenario paths were resolved under.
	Root string `json:"root"`
	// Scenarios holds one entry per scenario.
	Scenarios []ScenarioCount `json:"scenarios"`
}

// Failed reports whether any scenario could not be read.
// Missing files count only when missingIsError is set.
func (r *CountReport) Failed(missingIsError bool) bool {
	for _, s := range r.Scenarios {
		if s.Reason != "" || (s.Missing && missingIsError) {
			return true
		}
	}
	return false
}
