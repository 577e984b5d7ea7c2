package model

import "fmt"

// TestKind classifies the report a test case was read from. It is supplied by
// the caller and never derived from the report content itself.
type TestKind int

const (
	UnitTest TestKind = iota
	IntegrationTest
)

func (k TestKind) String() string {
	switch k {
	case UnitTest:
		return "Unit"
	case IntegrationTest:
		return "Integration"
	default:
		return fmt.Sprintf("TestKind(%d)", int(k))
	}
}

// TestStatus is the outcome of a single executed test.
type TestStatus int

const (
	// StatusPassed is a test that ran to completion without failing.
	StatusPassed TestStatus = iota
	// StatusFailed is an assertion failure.
	StatusFailed
	// StatusError is an uncaught exception raised by the test.
	StatusError
	// StatusSkipped is a test that was intentionally not run (ignored or inconclusive).
	StatusSkipped
)

func (s TestStatus) String() string {
	switch s {
	case StatusPassed:
		return "Passed"
	case StatusFailed:
		return "Failed"
	case StatusError:
		return "Error"
	case StatusSkipped:
		return "Skipped"
	default:
		return fmt.Sprintf("TestStatus(%d)", int(s))
	}
}

// MeasureKey is the status label used by the test-data rendering.
func (s TestStatus) MeasureKey() string {
	switch s {
	case StatusPassed:
		return "ok"
	case StatusFailed:
		return "failure"
	case StatusError:
		return "error"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// TestCase represents one executed test read from a report.
type TestCase struct {
	// Name is the identifier as written in the report, parameter list included,
	// e.g. "Lib.Tests.Class1Tests.TestWithInput(False,True)".
	Name           string
	Kind           TestKind
	Status         TestStatus
	DurationMillis int64
	// Message holds the failure/error reason or the skip reason. Empty when the
	// report carried none.
	Message    string
	StackTrace string
}

func (tc TestCase) String() string {
	return fmt.Sprintf("Test %s(%s, time=%.3f)", tc.Name, tc.Status, float64(tc.DurationMillis)*0.001)
}
