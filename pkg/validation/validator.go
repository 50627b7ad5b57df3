package validation

import (
	"errors"
	"fmt"

	"github.com/dshills/dungeonwalk/pkg/grid"
)

// ErrNilGrid is returned when Validate is called on a nil grid.
var ErrNilGrid = errors.New("validation: grid is nil")

// CheckResult records the outcome of one structural check.
type CheckResult struct {
	Name    string `json:"Name"`
	Passed  bool   `json:"Passed"`
	Details string `json:"Details"`
}

// Report is the outcome of running every check against a grid.
type Report struct {
	Passed  bool          `json:"Passed"`
	Results []CheckResult `json:"Results"`
}

// check pairs a check's name with the function that runs it.
type check struct {
	name string
	run  func(*grid.Grid) (bool, string)
}

// Validate runs every structural check against g and returns a Report. The
// report's Passed field is true only if every check passed; individual
// failures never abort the run, so a caller always sees the full picture.
func Validate(g *grid.Grid) (*Report, error) {
	if g == nil {
		return nil, ErrNilGrid
	}

	checks := []check{
		{"BilateralConsistency", CheckBilateralConsistency},
		{"DoorImpliesWall", CheckDoorImpliesWall},
		{"PassableFloor", CheckPassableFloor},
		{"BorderWalls", CheckBorderWalls},
		{"Connectivity", CheckConnectivity},
		{"DoorSpacing", func(g *grid.Grid) (bool, string) { return CheckDoorSpacing(g, MinDoorSpacing) }},
	}

	report := &Report{Passed: true}
	for _, c := range checks {
		ok, details := c.run(g)
		report.Results = append(report.Results, CheckResult{Name: c.name, Passed: ok, Details: details})
		if !ok {
			report.Passed = false
		}
	}
	return report, nil
}

// FailureCount returns the number of checks that did not pass.
func (r *Report) FailureCount() int {
	n := 0
	for _, res := range r.Results {
		if !res.Passed {
			n++
		}
	}
	return n
}

// Errors returns the details strings of every failed check, formatted as
// "<name>: <details>".
func (r *Report) Errors() []string {
	var errs []string
	for _, res := range r.Results {
		if !res.Passed {
			errs = append(errs, fmt.Sprintf("%s: %s", res.Name, res.Details))
		}
	}
	return errs
}
