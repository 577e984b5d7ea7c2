package nunit

import (
	"strings"

	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/parser"
)

// parseContext tracks the namespace path and the fixture being walked.
// One instance belongs to exactly one walk of one report.
type parseContext struct {
	kind       model.TestKind
	namespaces []string
	fixtures   []string
}

func newParseContext(kind model.TestKind) *parseContext {
	return &parseContext{kind: kind}
}

func (c *parseContext) pushNamespace(name string) {
	c.namespaces = append(c.namespaces, name)
}

// popNamespace removes the top namespace, which must equal expected.
func (c *parseContext) popNamespace(expected string) error {
	top := c.topNamespace()
	if len(c.namespaces) == 0 || top != expected {
		return &parser.ContextCorruptionError{Stack: parser.NamespaceStack, Expected: expected, Found: top}
	}
	c.namespaces = c.namespaces[:len(c.namespaces)-1]
	return nil
}

func (c *parseContext) topNamespace() string {
	if len(c.namespaces) == 0 {
		return ""
	}
	return c.namespaces[len(c.namespaces)-1]
}

func (c *parseContext) currentNamespace() string {
	return strings.Join(c.namespaces, ".")
}

// enterFixture pushes the fully qualified name of a fixture and returns it.
// Nested classes are reported as "Outer+Inner"; the '+' becomes '.'.
func (c *parseContext) enterFixture(localName string) string {
	localName = normalizeNestedTypes(localName)
	fullName := localName
	if ns := c.currentNamespace(); ns != "" {
		fullName = ns + "." + localName
	}
	c.fixtures = append(c.fixtures, fullName)
	return fullName
}

// leaveFixture removes the top fixture, which must equal expected.
func (c *parseContext) leaveFixture(expected string) error {
	top := c.currentFixture()
	if len(c.fixtures) == 0 || top != expected {
		return &parser.ContextCorruptionError{Stack: parser.FixtureStack, Expected: expected, Found: top}
	}
	c.fixtures = c.fixtures[:len(c.fixtures)-1]
	return nil
}

// currentFixture is empty when no fixture has been entered.
func (c *parseContext) currentFixture() string {
	if len(c.fixtures) == 0 {
		return ""
	}
	return c.fixtures[len(c.fixtures)-1]
}

func (c *parseContext) depth() (namespaces, fixtures int) {
	return len(c.namespaces), len(c.fixtures)
}

func normalizeNestedTypes(name string) string {
	return strings.ReplaceAll(name, "+", ".")
}
