package parser

import (
	"errors"
	"fmt"
)

// ErrNoParser is returned when no registered parser accepts a report file.
var ErrNoParser = errors.New("no suitable parser found for file")

// MalformedReportError reports a document that cannot be read as a test
// report at all: broken XML, or a missing or unexpected root element.
type MalformedReportError struct {
	Report string
	Reason string
	Err    error
}

func (e *MalformedReportError) Error() string {
	msg := "malformed test report"
	if e.Report != "" {
		msg += " " + e.Report
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedReportError) Unwrap() error { return e.Err }

// Names of the parse context stacks a ContextCorruptionError can refer to.
const (
	NamespaceStack = "namespace"
	FixtureStack   = "fixture"
)

// ContextCorruptionError reports a namespace or fixture stack that is not
// restored to its pre-entry state when a suite is left.
type ContextCorruptionError struct {
	Stack    string
	Expected string
	Found    string
}

func (e *ContextCorruptionError) Error() string {
	stack := e.Stack
	if stack == "" {
		stack = NamespaceStack
	}
	return fmt.Sprintf("%s collection corrupted: expected %q but found %q", stack, e.Expected, e.Found)
}

// UnknownStatusError reports a test-case result literal with no mapping.
type UnknownStatusError struct {
	Status   string
	TestName string
}

func (e *UnknownStatusError) Error() string {
	if e.TestName == "" {
		return fmt.Sprintf("unknown test status %q", e.Status)
	}
	return fmt.Sprintf("unknown test status %q for test case %s", e.Status, e.TestName)
}
