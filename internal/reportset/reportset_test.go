package reportset

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/parser"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/parser/filtering"
	_ "github.com/IgorBayerl/ReportGenerator/go_test_report/internal/parser/nunit"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/resolver/static"
)

type testConfig struct {
	resolver parser.NameResolver
}

func (c *testConfig) AssemblyFilter() filtering.IFilter { return nil }
func (c *testConfig) FixtureFilter() filtering.IFilter  { return nil }
func (c *testConfig) Resolver() parser.NameResolver     { return c.resolver }
func (c *testConfig) Logger() *slog.Logger              { return discardLogger() }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAssembler() *Assembler {
	resolver := static.New("", map[string]string{
		"N.C#Method1()":           "F",
		"N.C#Method2(bool, bool)": "F",
		"N.D#Other()":             "G",
	}, nil)
	return NewAssembler(&testConfig{resolver: resolver}, discardLogger())
}

func report(cases string) string {
	return `<?xml version="1.0" encoding="utf-8"?>
<test-results name="N.dll">
  <test-suite type="Namespace" name="N"><results>
    <test-suite type="TestFixture" name="C"><results>` + cases + `</results></test-suite>
    <test-suite type="TestFixture" name="D"><results>
      <test-case name="N.D.Other" executed="True" result="Success" time="0.001" />
    </results></test-suite>
  </results></test-suite>
</test-results>`
}

func writeReport(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseAll_MergesSameSourceFile(t *testing.T) {
	dir := t.TempDir()
	first := writeReport(t, dir, "first.xml", report(
		`<test-case name="N.C.Method1" executed="True" result="Success" time="0.05" />`))
	second := writeReport(t, dir, "second.xml", report(
		`<test-case name="N.C.Method2(False,True)" executed="True" result="Failure" time="0.04"><failure><message>boom</message></failure></test-case>
		 <test-case name="N.C.Unknown" executed="True" result="Success" />`))

	result, err := newTestAssembler().ParseAll(context.Background(), []string{first, second}, model.UnitTest)
	require.NoError(t, err)

	_, err = uuid.Parse(result.RunID)
	assert.NoError(t, err)
	assert.Equal(t, 2, result.ParsedFiles)
	assert.Empty(t, result.Failures)
	assert.Equal(t, 1, result.UnresolvedCases)

	require.Len(t, result.Groups, 2)
	assert.Equal(t, "F", result.Groups[0].SourceFile.Key)
	assert.Equal(t, "G", result.Groups[1].SourceFile.Key)

	f := result.Group("F")
	want := []model.TestCase{
		{Name: "N.C.Method1", Status: model.StatusPassed, DurationMillis: 50},
		{Name: "N.C.Method2(False,True)", Status: model.StatusFailed, DurationMillis: 40, Message: "boom"},
	}
	if diff := cmp.Diff(want, f.Cases); diff != "" {
		t.Errorf("merged cases mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, result.Group("G").Tests(), "one case from each file")
	assert.Nil(t, result.Group("H"))
}

func TestParseAll_FileOrderDecidesCaseOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeReport(t, dir, "a.xml", report(`<test-case name="N.C.Method1" executed="True" result="Success" />`))
	b := writeReport(t, dir, "b.xml", report(`<test-case name="N.C.Method2(True,True)" executed="True" result="Success" />`))

	forward, err := newTestAssembler().ParseAll(context.Background(), []string{a, b}, model.UnitTest)
	require.NoError(t, err)
	backward, err := newTestAssembler().ParseAll(context.Background(), []string{b, a}, model.UnitTest)
	require.NoError(t, err)

	names := func(r *Result) []string {
		var out []string
		for _, tc := range r.Group("F").Cases {
			out = append(out, tc.Name)
		}
		return out
	}
	assert.Equal(t, []string{"N.C.Method1", "N.C.Method2(True,True)"}, names(forward))
	assert.Equal(t, []string{"N.C.Method2(True,True)", "N.C.Method1"}, names(backward))
	assert.ElementsMatch(t, names(forward), names(backward))
}

func TestParseAll_IsolatesBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeReport(t, dir, "good.xml", report(`<test-case name="N.C.Method1" executed="True" result="Success" />`))
	truncated := writeReport(t, dir, "truncated.xml", `<test-results><test-suite type="Namespace" name="N"><results>`)
	unknownStatus := writeReport(t, dir, "status.xml", report(`<test-case name="N.C.Method1" executed="True" result="Exploded" />`))
	notNUnit := writeReport(t, dir, "coverage.xml", `<coverage line-rate="1"/>`)
	missing := filepath.Join(dir, "missing.xml")

	result, err := newTestAssembler().ParseAll(context.Background(),
		[]string{truncated, good, unknownStatus, notNUnit, missing}, model.UnitTest)
	require.NoError(t, err)

	assert.Equal(t, 1, result.ParsedFiles)
	require.Len(t, result.Failures, 4)
	assert.Equal(t, truncated, result.Failures[0].File)
	assert.Equal(t, unknownStatus, result.Failures[1].File)

	var malformed *parser.MalformedReportError
	assert.True(t, errors.As(result.Failures[0], &malformed))
	var unknown *parser.UnknownStatusError
	assert.True(t, errors.As(result.Failures[1], &unknown))
	assert.ErrorIs(t, result.Failures[2], parser.ErrNoParser)
	assert.ErrorIs(t, result.Failures[3], parser.ErrNoParser, "missing files are not sniffed as NUnit")

	require.NotNil(t, result.Group("F"))
	assert.Equal(t, 1, result.Group("F").Tests(), "the partially valid status report adds nothing")
}

func TestParseAll_NonXMLReportIsMalformed(t *testing.T) {
	dir := t.TempDir()
	garbage := writeReport(t, dir, "TestResult.xml", "build aborted before tests ran")

	result, err := newTestAssembler().ParseAll(context.Background(), []string{garbage}, model.UnitTest)
	require.NoError(t, err)

	assert.Zero(t, result.ParsedFiles)
	require.Len(t, result.Failures, 1)
	var malformed *parser.MalformedReportError
	assert.True(t, errors.As(result.Failures[0], &malformed))
	assert.NotErrorIs(t, result.Failures[0], parser.ErrNoParser)
}

func TestParseSets_TagsKinds(t *testing.T) {
	dir := t.TempDir()
	unit := writeReport(t, dir, "unit.xml", report(`<test-case name="N.C.Method1" executed="True" result="Success" />`))
	it := writeReport(t, dir, "it.xml", report(`<test-case name="N.C.Method1" executed="True" result="Failure" />`))

	result, err := newTestAssembler().ParseSets(context.Background(),
		ReportSet{Kind: model.UnitTest, Files: []string{unit}},
		ReportSet{Kind: model.IntegrationTest, Files: []string{it}},
	)
	require.NoError(t, err)

	f := result.Group("F")
	require.Len(t, f.Cases, 2)
	assert.Equal(t, model.UnitTest, f.Cases[0].Kind)
	assert.Equal(t, model.IntegrationTest, f.Cases[1].Kind)
	assert.Equal(t, 1, f.Failures())
}

func TestParseAll_Cancelled(t *testing.T) {
	dir := t.TempDir()
	good := writeReport(t, dir, "good.xml", report(`<test-case name="N.C.Method1" executed="True" result="Success" />`))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestAssembler().ParseAll(ctx, []string{good}, model.UnitTest)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseAll_NoFiles(t *testing.T) {
	result, err := newTestAssembler().ParseAll(context.Background(), nil, model.UnitTest)
	require.NoError(t, err)
	assert.Empty(t, result.Groups)
	assert.NotEmpty(t, result.RunID)
}
