package parser

import (
	"context"

	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/model"
)

// ParserResult holds the per-source-file groups produced from a single report file.
type ParserResult struct {
	// Groups is keyed by model.SourceFile.Key. Cases that could not be resolved
	// to a source file never appear here.
	Groups map[string]*model.TestFileGroup
	// UnresolvedCases counts cases dropped because neither the member nor the
	// fixture type could be resolved.
	UnresolvedCases int
	ParserName      string
}

// IParser defines the contract for all test report parsers.
type IParser interface {
	Name() string
	SupportsFile(filePath string) bool
	// Parse reads one report file and tags every case with kind.
	Parse(ctx context.Context, filePath string, kind model.TestKind, config ParserConfig) (*ParserResult, error)
}
