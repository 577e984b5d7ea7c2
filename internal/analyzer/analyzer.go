package analyzer

import (
	"log/slog"
	"math"

	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/reportset"
)

// FileMeasures are the metrics published for one test source file.
type FileMeasures struct {
	SourceFile model.SourceFile
	// Tests counts the cases that ran: the total minus the skipped ones.
	Tests               int
	Skipped             int
	Errors              int
	Failures            int
	ExecutionTimeMillis int64
	// SuccessDensity is a percentage with one decimal; nil when nothing ran.
	SuccessDensity *float64
	// TestData is the per-case XML rendering of the group.
	TestData string
}

// Summary holds the measures of every source file and the run totals.
type Summary struct {
	RunID               string
	Files               []FileMeasures
	Tests               int
	Skipped             int
	Errors              int
	Failures            int
	ExecutionTimeMillis int64
	SuccessDensity      *float64
	UnresolvedCases     int
	FailedReports       int
}

// Analyze summarizes an assembled result.
func Analyze(result *reportset.Result, logger *slog.Logger) *Summary {
	summary := Summarize(result.Groups, logger)
	summary.RunID = result.RunID
	summary.UnresolvedCases = result.UnresolvedCases
	summary.FailedReports = len(result.Failures)
	return summary
}

// Summarize computes the measures of each group in order. A group without a
// source file, or with a key already measured, is refused and logged.
func Summarize(groups []*model.TestFileGroup, logger *slog.Logger) *Summary {
	if logger == nil {
		logger = slog.Default()
	}
	summary := &Summary{Files: []FileMeasures{}}
	filesAlreadyTreated := make(map[string]struct{})

	for _, g := range groups {
		if g == nil {
			continue
		}
		if g.SourceFile.Key == "" {
			logger.Error("Source file not found for test report.", "group", g.String())
			continue
		}
		if _, done := filesAlreadyTreated[g.SourceFile.Key]; done {
			logger.Error("Source file measures already saved for test report.", "group", g.String())
			continue
		}
		filesAlreadyTreated[g.SourceFile.Key] = struct{}{}

		m := measure(g)
		logger.Debug("Collected test data for file.", "file", g.SourceFile.String(), "tests", m.Tests)
		summary.Files = append(summary.Files, m)

		summary.Tests += m.Tests
		summary.Skipped += m.Skipped
		summary.Errors += m.Errors
		summary.Failures += m.Failures
		summary.ExecutionTimeMillis += m.ExecutionTimeMillis
	}

	summary.SuccessDensity = density(summary.Tests, summary.Errors, summary.Failures)
	return summary
}

func measure(g *model.TestFileGroup) FileMeasures {
	tests := g.Tests() - g.Skipped()
	return FileMeasures{
		SourceFile:          g.SourceFile,
		Tests:               tests,
		Skipped:             g.Skipped(),
		Errors:              g.Errors(),
		Failures:            g.Failures(),
		ExecutionTimeMillis: g.DurationMillis(),
		SuccessDensity:      density(tests, g.Errors(), g.Failures()),
		TestData:            g.TestDataXML(),
	}
}

func density(tests, errors, failures int) *float64 {
	if tests <= 0 {
		return nil
	}
	passed := tests - errors - failures
	d := ScaleValue(float64(passed) * 100 / float64(tests))
	return &d
}

// ScaleValue rounds a percentage to one decimal, halves away from zero.
func ScaleValue(v float64) float64 {
	return math.Round(v*10) / 10
}
