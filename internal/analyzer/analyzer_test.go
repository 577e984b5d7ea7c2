package analyzer

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/reportset"
)

func group(key string, statuses ...model.TestStatus) *model.TestFileGroup {
	g := model.NewTestFileGroup(model.SourceFile{Key: key})
	for i, s := range statuses {
		g.Add(model.TestCase{Name: key + "#" + s.String(), Status: s, DurationMillis: int64(i + 1)})
	}
	return g
}

func TestSummarize(t *testing.T) {
	groups := []*model.TestFileGroup{
		group("A.cs", model.StatusPassed, model.StatusFailed, model.StatusSkipped),
		group("B.cs", model.StatusPassed, model.StatusPassed, model.StatusError),
		group("C.cs", model.StatusSkipped),
	}

	summary := Summarize(groups, nil)

	require.Len(t, summary.Files, 3)
	a := summary.Files[0]
	assert.Equal(t, "A.cs", a.SourceFile.Key)
	assert.Equal(t, 2, a.Tests, "skipped cases are not counted as tests")
	assert.Equal(t, 1, a.Skipped)
	assert.Equal(t, 1, a.Failures)
	assert.Equal(t, int64(6), a.ExecutionTimeMillis)
	require.NotNil(t, a.SuccessDensity)
	assert.Equal(t, 50.0, *a.SuccessDensity)
	assert.Contains(t, a.TestData, `<testcase status="failure" time="2" name="A.cs#Failed">`)

	b := summary.Files[1]
	require.NotNil(t, b.SuccessDensity)
	assert.Equal(t, 66.7, *b.SuccessDensity)

	assert.Nil(t, summary.Files[2].SuccessDensity, "density is omitted when nothing ran")
	assert.Equal(t, 0, summary.Files[2].Tests)

	assert.Equal(t, 5, summary.Tests)
	assert.Equal(t, 2, summary.Skipped)
	assert.Equal(t, 1, summary.Errors)
	assert.Equal(t, 1, summary.Failures)
	assert.Equal(t, int64(13), summary.ExecutionTimeMillis)
	require.NotNil(t, summary.SuccessDensity)
	assert.Equal(t, 60.0, *summary.SuccessDensity)
}

func TestSummarize_RefusesDuplicateAndMissingFiles(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	summary := Summarize([]*model.TestFileGroup{
		group("A.cs", model.StatusPassed),
		group("A.cs", model.StatusFailed),
		group("", model.StatusPassed),
		nil,
	}, logger)

	require.Len(t, summary.Files, 1)
	assert.Equal(t, 1, summary.Tests)
	assert.Contains(t, logs.String(), "Source file measures already saved")
	assert.Contains(t, logs.String(), "Source file not found")
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, nil)
	assert.Empty(t, summary.Files)
	assert.Zero(t, summary.Tests)
	assert.Nil(t, summary.SuccessDensity)
}

func TestAnalyze(t *testing.T) {
	result := &reportset.Result{
		RunID:           "run-1",
		Groups:          []*model.TestFileGroup{group("A.cs", model.StatusPassed)},
		UnresolvedCases: 3,
		Failures:        []*reportset.FileError{{File: "bad.xml", Err: errors.New("broken")}},
	}

	summary := Analyze(result, nil)
	assert.Equal(t, "run-1", summary.RunID)
	assert.Equal(t, 3, summary.UnresolvedCases)
	assert.Equal(t, 1, summary.FailedReports)
	assert.Len(t, summary.Files, 1)
}

func TestScaleValue(t *testing.T) {
	assert.Equal(t, 33.3, ScaleValue(100.0/3))
	assert.Equal(t, 66.7, ScaleValue(200.0/3))
	assert.Equal(t, 100.0, ScaleValue(100))
	assert.Equal(t, 0.0, ScaleValue(0.04))
}
