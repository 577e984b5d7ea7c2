package nunit

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/filereader"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/parser"
)

// NUnit 2.x element and attribute names.
const (
	rootElement    = "test-results"
	suiteElement   = "test-suite"
	caseElement    = "test-case"
	resultsElement = "results"

	suiteAssembly          = "Assembly"
	suiteNamespace         = "Namespace"
	suiteFixture           = "TestFixture"
	suiteParameterizedTest = "ParameterizedTest"
)

type frameKind int

const (
	frameRoot frameKind = iota
	frameSuite
	frameResults
)

// frame is one open element on the walk stack. Suite frames remember what
// they pushed so the context can be restored when the element closes.
type frame struct {
	kind          frameKind
	suiteType     string
	name          string
	namespace     string
	fixture       string
	namespaceSeen int
	fixtureSeen   int
}

// caseDetailXML is a <failure> or <reason> child of a test case.
type caseDetailXML struct {
	XMLName    xml.Name
	Message    *string `xml:"message"`
	StackTrace *string `xml:"stack-trace"`
}

type caseChildrenXML struct {
	Children []caseDetailXML `xml:",any"`
}

// walker drives one depth-first pass over a report. It owns the parse context
// and the working map of groups for that pass.
type walker struct {
	decoder    *xml.Decoder
	reportName string
	ctx        *parseContext
	signatures *signatureResolver
	config     parser.ParserConfig
	logger     *slog.Logger

	groups     map[string]*model.TestFileGroup
	unresolved int
}

func newWalker(reportName string, data []byte, kind model.TestKind, config parser.ParserConfig, logger *slog.Logger) *walker {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = filereader.CharsetReader
	return &walker{
		decoder:    decoder,
		reportName: reportName,
		ctx:        newParseContext(kind),
		signatures: &signatureResolver{resolver: config.Resolver(), logger: logger},
		config:     config,
		logger:     logger,
		groups:     make(map[string]*model.TestFileGroup),
	}
}

func (w *walker) malformed(reason string, err error) error {
	return &parser.MalformedReportError{Report: w.reportName, Reason: reason, Err: err}
}

// walk runs the pass to completion. The element stack is explicit: each
// start tag pushes a frame, each end tag pops one and undoes the context
// changes its suite made.
func (w *walker) walk(ctx context.Context) error {
	root, err := w.rootElement()
	if err != nil {
		return err
	}
	if root.Name.Local != rootElement {
		return w.malformed("unexpected root element <"+root.Name.Local+">", nil)
	}
	w.logger.Debug("Walking NUnit report.", "report", w.reportName, "root", root.Name.Local)

	frames := []frame{{kind: frameRoot, name: root.Name.Local}}
	for len(frames) > 0 {
		token, err := w.decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return w.malformed("unexpected end of document", nil)
			}
			return w.malformed("invalid XML", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			top := frames[len(frames)-1]
			next, descend, err := w.startElement(ctx, top, t)
			if err != nil {
				return err
			}
			if descend {
				frames = append(frames, next)
			}
		case xml.EndElement:
			top := frames[len(frames)-1]
			frames = frames[:len(frames)-1]
			if top.kind == frameSuite {
				if err := w.leaveSuite(top); err != nil {
					return err
				}
			}
		}
	}

	namespaces, fixtures := w.ctx.depth()
	if namespaces != 0 {
		return &parser.ContextCorruptionError{Stack: parser.NamespaceStack, Expected: "", Found: w.ctx.currentNamespace()}
	}
	if fixtures != 0 {
		return &parser.ContextCorruptionError{Stack: parser.FixtureStack, Expected: "", Found: w.ctx.currentFixture()}
	}
	return nil
}

func (w *walker) rootElement() (xml.StartElement, error) {
	for {
		token, err := w.decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return xml.StartElement{}, w.malformed("missing root element", nil)
			}
			return xml.StartElement{}, w.malformed("invalid XML", err)
		}
		if start, ok := token.(xml.StartElement); ok {
			return start, nil
		}
	}
}

// startElement dispatches a start tag according to its parent frame. It
// returns the frame to push when the walk descends into the element; when it
// does not, the element has already been consumed.
func (w *walker) startElement(ctx context.Context, parent frame, start xml.StartElement) (frame, bool, error) {
	name := start.Name.Local

	switch parent.kind {
	case frameRoot, frameResults:
		switch {
		case name == suiteElement:
			return w.enterSuite(start)
		case name == caseElement && parent.kind == frameResults:
			return frame{}, false, w.parseTestCase(ctx, start)
		}
	case frameSuite:
		if name == resultsElement {
			return frame{kind: frameResults, name: name}, true, nil
		}
	}

	w.logger.Debug("Skipping unsupported node.", "node", name, "parent", parent.name)
	if err := w.decoder.Skip(); err != nil {
		return frame{}, false, w.malformed("invalid XML", err)
	}
	return frame{}, false, nil
}

func (w *walker) enterSuite(start xml.StartElement) (frame, bool, error) {
	suiteType, _ := attrValue(start, "type")
	name, _ := attrValue(start, "name")
	namespaces, fixtures := w.ctx.depth()
	f := frame{kind: frameSuite, suiteType: suiteType, name: name, namespaceSeen: namespaces, fixtureSeen: fixtures}

	switch suiteType {
	case suiteAssembly:
		if filter := w.config.AssemblyFilter(); filter != nil && !filter.IsElementIncludedInReport(name) {
			w.logger.Debug("Assembly is not a match for the build artifact, skipping.", "assembly", name)
			if err := w.decoder.Skip(); err != nil {
				return frame{}, false, w.malformed("invalid XML", err)
			}
			return frame{}, false, nil
		}
	case suiteNamespace:
		w.ctx.pushNamespace(name)
		f.namespace = name
		w.logger.Debug("Namespace pushed.", "namespace", w.ctx.currentNamespace())
	case suiteFixture:
		f.fixture = w.ctx.enterFixture(name)
		w.logger.Debug("Fixture entered.", "fixture", f.fixture)
	case suiteParameterizedTest:
		w.logger.Debug("Found parameterized test.", "name", name)
	}
	return f, true, nil
}

func (w *walker) leaveSuite(f frame) error {
	switch f.suiteType {
	case suiteNamespace:
		if err := w.ctx.popNamespace(f.namespace); err != nil {
			return err
		}
		w.logger.Debug("Namespace popped.", "namespace", w.ctx.currentNamespace())
	case suiteFixture:
		if err := w.ctx.leaveFixture(f.fixture); err != nil {
			return err
		}
	}
	namespaces, fixtures := w.ctx.depth()
	if namespaces != f.namespaceSeen {
		return &parser.ContextCorruptionError{Stack: parser.NamespaceStack, Expected: f.name, Found: w.ctx.currentNamespace()}
	}
	if fixtures != f.fixtureSeen {
		return &parser.ContextCorruptionError{Stack: parser.FixtureStack, Expected: f.name, Found: w.ctx.currentFixture()}
	}
	return nil
}

func (w *walker) parseTestCase(ctx context.Context, start xml.StartElement) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var children caseChildrenXML
	if err := w.decoder.DecodeElement(&children, &start); err != nil {
		return w.malformed("invalid test-case element", err)
	}

	testName, _ := attrValue(start, "name")
	executed, _ := attrValue(start, "executed")
	rawStatus, hasStatus := attrValue(start, "result")
	if !hasStatus {
		rawStatus, hasStatus = attrValue(start, "status")
	}

	if !strings.EqualFold(executed, "true") && !hasStatus {
		w.logger.Debug("Test case was not executed.", "name", testName)
		return nil
	}

	status, err := ParseStatus(rawStatus)
	if err != nil {
		var unknown *parser.UnknownStatusError
		if errors.As(err, &unknown) {
			unknown.TestName = testName
		}
		return err
	}

	fixture := w.ctx.currentFixture()
	if filter := w.config.FixtureFilter(); filter != nil && !filter.IsElementIncludedInReport(fixture) {
		w.logger.Debug("Fixture excluded by filter.", "fixture", fixture, "name", testName)
		return nil
	}

	file := w.signatures.resolve(ctx, testName, fixture)
	if file == nil {
		w.unresolved++
		w.logger.Warn("Unable to find source file for test case.", "name", testName, "fixture", fixture)
		return nil
	}

	testCase := model.TestCase{
		Name:           testName,
		Kind:           w.ctx.kind,
		Status:         status,
		DurationMillis: parseDurationMillis(start),
	}
	for _, child := range children.Children {
		if child.XMLName.Local != "failure" && child.XMLName.Local != "reason" {
			continue
		}
		if child.Message != nil {
			testCase.Message = *child.Message
		}
		if child.StackTrace != nil {
			testCase.StackTrace = *child.StackTrace
		}
	}

	group, ok := w.groups[file.Key]
	if !ok {
		group = model.NewTestFileGroup(*file)
		w.groups[file.Key] = group
	}
	group.Add(testCase)
	return nil
}

// parseDurationMillis reads the time attribute, given in seconds. Missing,
// unparsable or negative values count as zero.
func parseDurationMillis(start xml.StartElement) int64 {
	raw, ok := attrValue(start, "time")
	if !ok {
		return 0
	}
	seconds, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(raw), ",", ".", 1), 64)
	if err != nil || seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0
	}
	return int64(math.Round(seconds * 1000))
}

func attrValue(start xml.StartElement, name string) (string, bool) {
	for _, attr := range start.Attr {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}
