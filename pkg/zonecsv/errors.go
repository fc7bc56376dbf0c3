package zonecsv

import (
	"errors"
	"fmt"

	"github.com/ukaji3/zonecsv-go/pkg/zonecsv/parser"
)

// ErrMissingSource indicates the scenario's file does not exist.
var ErrMissingSource = errors.New("file not found")

// ErrEmptySource indicates the scenario's file has no header row.
var ErrEmptySource = errors.New("file is empty")

// ErrMalformedRow indicates a data row whose field count differs from the header.
var ErrMalformedRow = parser.ErrMalformedRow

// ErrInvalidZone indicates a zone value that is not an integer.
var ErrInvalidZone = errors.New("invalid zone value")

// ErrInvalidOptions indicates options no run could succeed with.
var ErrInvalidOptions = errors.New("invalid options")

// Stages of the per-scenario pipeline reported in ScenarioError.
const (
	StageResolve = "resolve"
	StageRead    = "read"
	StageWrite   = "write"
	StageReplace = "replace"
)

// ScenarioError represents an error while processing one scenario.
type ScenarioError struct {
	Scenario string
	Stage    string // "resolve", "read", "write", "replace"
	Err      error
}

func (e *ScenarioError) Error() string {
	return fmt.Sprintf("scenario %q (%s): %v", e.Scenario, e.Stage, e.Err)
}

func (e *ScenarioError) Unwrap() error {
	return e.Err
}

// NewScenarioError creates a new ScenarioError.
func NewScenarioError(scenario, stage string, err error) *ScenarioError {
	return &ScenarioError{
		Scenario: scenario,
		Stage:    stage,
		Err:      err,
	}
}
