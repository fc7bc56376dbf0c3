// Package zonecsv rewrites and reports on the zone column of per-scenario CSV files.
package zonecsv

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ukaji3/zonecsv-go/pkg/zonecsv/parser"
	"go.uber.org/zap"
)

// ScenarioPlaceholder is replaced by the scenario name in Options.Pattern.
const ScenarioPlaceholder = "{scenario}"

// DefaultPattern locates a scenario's file relative to the root directory.
const DefaultPattern = ScenarioPlaceholder + "/3DAnimatedMapData.csv"

// DefaultScenarios is the scenario list used when none is configured.
// Folder names are case-sensitive (note the uppercase NB).
var DefaultScenarios = []string{
	"MTP25_2020",
	"MTP25_2030",
	"MTP25_2033",
	"MTP25_2040",
	"MTP25_2050",
	"MTP25_2050NB",
}

// LineEnding selects the line terminator of rewritten files.
type LineEnding string

const (
	// LineEndingAuto reuses the terminator of the source's first line.
	LineEndingAuto LineEnding = "auto"
	// LineEndingLF writes "\n".
	LineEndingLF LineEnding = "lf"
	// LineEndingCRLF writes "\r\n".
	LineEndingCRLF LineEnding = "crlf"
)

// Valid reports whether e is a known line ending. Empty counts as auto.
func (e LineEnding) Valid() bool {
	switch e {
	case "", LineEndingAuto, LineEndingLF, LineEndingCRLF:
		return true
	}
	return false
}

// CRLF returns whether to write "\r\n" given what the source used.
func (e LineEnding) CRLF(sourceCRLF bool) bool {
	switch e {
	case LineEndingLF:
		return false
	case LineEndingCRLF:
		return true
	default:
		return sourceCRLF
	}
}

// Options configures a normalization or count run.
type Options struct {
	// Root is the directory scenario folders live under.
	Root string
	// Scenarios is the ordered list of scenario names to process.
	Scenarios []string
	// Pattern is the file path relative to Root; it must contain ScenarioPlaceholder.
	Pattern string
	// ZonePrefix is prepended to zone values that do not already start with it.
	ZonePrefix string
	// ZoneMapper replaces the prefix transform when set.
	ZoneMapper parser.ZoneMapper
	// Quoting is the zone field quoting policy. Empty means minimal.
	Quoting parser.Quoting
	// Encoding is the WHATWG label of the files. Empty means UTF-8.
	Encoding string
	// LineEnding selects the output line terminator. Empty means auto.
	LineEnding LineEnding
	// DryRun reads and transforms every file without replacing it.
	DryRun bool
	// MissingIsError makes a missing file fail the run.
	MissingIsError bool
	// Logger receives progress logs. Nil disables logging.
	Logger *zap.Logger
}

// DefaultOptions returns options for the default scenario layout under root.
func DefaultOptions(root string) Options {
	return Options{
		Root:       root,
		Scenarios:  append([]string(nil), DefaultScenarios...),
		Pattern:    DefaultPattern,
		Quoting:    parser.QuoteMinimal,
		LineEnding: LineEndingAuto,
	}
}

// Validate checks the options for values no run could succeed with.
func (o Options) Validate() error {
	if o.Root == "" {
		return fmt.Errorf("%w: root directory is required", ErrInvalidOptions)
	}
	if len(o.Scenarios) == 0 {
		return fmt.Errorf("%w: at least one scenario is required", ErrInvalidOptions)
	}
	for _, sc := range o.Scenarios {
		if strings.TrimSpace(sc) == "" {
			return fmt.Errorf("%w: empty scenario name", ErrInvalidOptions)
		}
	}
	if o.Pattern != "" && !strings.Contains(o.Pattern, ScenarioPlaceholder) {
		return fmt.Errorf("%w: pattern %q must contain %s", ErrInvalidOptions, o.Pattern, ScenarioPlaceholder)
	}
	if o.Quoting != "" && !o.Quoting.Valid() {
		return fmt.Errorf("%w: unknown quoting policy %q", ErrInvalidOptions, o.Quoting)
	}
	if !o.LineEnding.Valid() {
		return fmt.Errorf("%w: unknown line ending %q", ErrInvalidOptions, o.LineEnding)
	}
	if _, err := parser.LookupEncoding(o.Encoding); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return nil
}

// Path resolves the file path of a scenario.
func (o Options) Path(scenario string) string {
	pattern := o.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	rel := strings.ReplaceAll(pattern, ScenarioPlaceholder, scenario)
	return filepath.Join(o.Root, filepath.FromSlash(rel))
}

func (o Options) mapper() parser.ZoneMapper {
	if o.ZoneMapper != nil {
		return o.ZoneMapper
	}
	return parser.PrefixMapper(o.ZonePrefix)
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

// StatsOptions configures a zone statistics scan.
type StatsOptions struct {
	// Threshold is the zone id sample rows must exceed.
	Threshold int64
	// SampleCap bounds the number of sample rows kept.
	SampleCap int
	// ZonePrefix is removed from zone values before they are parsed.
	ZonePrefix string
	// Encoding is the WHATWG label of the file. Empty means UTF-8.
	Encoding string
}

// DefaultStatsOptions returns the default threshold and sample cap.
func DefaultStatsOptions() StatsOptions {
	return StatsOptions{
		Threshold: 1000,
		SampleCap: 10,
	}
}
