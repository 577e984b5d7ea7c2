package nunit

import (
	"strings"

	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/parser"
)

// statusNames maps upper-cased status literals that have no NUnit-specific
// meaning onto the case statuses.
var statusNames = map[string]model.TestStatus{
	"OK":      model.StatusPassed,
	"PASSED":  model.StatusPassed,
	"FAILURE": model.StatusFailed,
	"FAILED":  model.StatusFailed,
	"ERROR":   model.StatusError,
	"SKIPPED": model.StatusSkipped,
}

// ParseStatus converts an NUnit result attribute into a model.TestStatus.
// Matching is case-insensitive. Unknown literals produce an
// *parser.UnknownStatusError rather than a default.
func ParseStatus(raw string) (model.TestStatus, error) {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	switch upper {
	case "SUCCESS":
		return model.StatusPassed, nil
	case "IGNORED", "INCONCLUSIVE":
		return model.StatusSkipped, nil
	}
	if status, ok := statusNames[upper]; ok {
		return status, nil
	}
	return 0, &parser.UnknownStatusError{Status: raw}
}
