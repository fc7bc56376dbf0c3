// Package output renders run, count and stats reports for people and tools.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ukaji3/zonecsv-go/pkg/zonecsv/models"
)

// ToJSON serializes a report. Pretty output is indented by two spaces.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// OutcomeLine formats one scenario outcome as a single console line.
func OutcomeLine(o models.ScenarioOutcome) string {
	switch o.Outcome {
	case models.OutcomeSuccess:
		verb := "updated"
		if o.DryRun {
			verb = "would update"
		}
		return fmt.Sprintf("%s: %s %s (%d rows)", o.Scenario, verb, o.Path, o.Rows)
	case models.OutcomeFileMissing:
		return fmt.Sprintf("%s: skipping, file not found: %s", o.Scenario, o.Path)
	case models.OutcomeEmptySource:
		return fmt.Sprintf("%s: skipping, %s is empty", o.Scenario, o.Path)
	default:
		return fmt.Sprintf("%s: error: %s", o.Scenario, o.Reason)
	}
}

// RunLines formats every outcome of a run, in scenario order.
func RunLines(r *models.RunReport) []string {
	lines := make([]string, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		lines = append(lines, OutcomeLine(o))
	}
	return lines
}

// CountLines formats a count report, one scenario per line.
func CountLines(r *models.CountReport) []string {
	lines := make([]string, 0, len(r.Scenarios))
	for _, s := range r.Scenarios {
		switch {
		case s.Missing:
			lines = append(lines, fmt.Sprintf("%s missing file", s.Scenario))
		case s.Reason != "":
			lines = append(lines, fmt.Sprintf("%s error: %s", s.Scenario, s.Reason))
		default:
			lines = append(lines, fmt.Sprintf("%s %d", s.Scenario, s.Zones))
		}
	}
	return lines
}

// StatsLines formats a stats summary followed by its sample rows.
func StatsLines(s *models.ZoneStats) []string {
	lines := []string{
		fmt.Sprintf("unique count %d", s.UniqueZones),
		fmt.Sprintf("min zone %d", s.MinZone),
		fmt.Sprintf("max zone %d", s.MaxZone),
		fmt.Sprintf("median zone %g", s.MedianZone),
		fmt.Sprintf("samples>%d %d", s.Threshold, len(s.Samples)),
	}
	for _, row := range s.Samples {
		lines = append(lines, formatSample(s.Header, row))
	}
	return lines
}

// formatSample renders a row as "COL=value" pairs in header order.
func formatSample(header, row []string) string {
	pairs := make([]string, 0, len(row))
	for i, v := range row {
		name := fmt.Sprintf("col%d", i+1)
		if i < len(header) {
			name = header[i]
		}
		pairs = append(pairs, fmt.Sprintf("%s=%s", name, v))
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}
