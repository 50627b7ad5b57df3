package validation

import (
	"fmt"
	"strings"
)

// Summary returns a human-readable rendering of a Report.
func Summary(report *Report) string {
	var b strings.Builder

	b.WriteString("=== Validation Report ===\n\n")
	if report.Passed {
		b.WriteString("Status: PASSED\n")
	} else {
		b.WriteString(fmt.Sprintf("Status: FAILED (%d/%d checks failed)\n", report.FailureCount(), len(report.Results)))
	}
	b.WriteString("\nChecks:\n")
	for _, res := range report.Results {
		mark := "ok"
		if !res.Passed {
			mark = "FAIL"
		}
		b.WriteString(fmt.Sprintf("  [%s] %-22s %s\n", mark, res.Name, res.Details))
	}
	return b.String()
}
