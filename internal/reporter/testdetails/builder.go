// Package testdetails writes the per-case XML rendering of every source file.
package testdetails

import (
	"fmt"
	"path/filepath"

	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/analyzer"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/reporting"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/utils"
)

// DirName is the subdirectory of the output directory holding the files.
const DirName = "testdata"

type TestDataReportBuilder struct {
	OutputDir string
	ctx       reporting.IReportContext
}

func NewTestDataReportBuilder(outputDir string, ctx reporting.IReportContext) *TestDataReportBuilder {
	return &TestDataReportBuilder{OutputDir: outputDir, ctx: ctx}
}

func (b *TestDataReportBuilder) ReportType() string {
	return "TestData"
}

// CreateReport writes <output>/testdata/<file key>.xml for each source file.
// The key is flattened into a single safe file name.
func (b *TestDataReportBuilder) CreateReport(summary *analyzer.Summary) error {
	fsys := b.ctx.FileSystem()
	dir := filepath.Join(b.OutputDir, DirName)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	for _, m := range summary.Files {
		path := filepath.Join(dir, FileName(m.SourceFile.Key))
		if err := fsys.WriteFile(path, []byte(m.TestData), 0o644); err != nil {
			return fmt.Errorf("failed to write test data for %s: %w", m.SourceFile.Key, err)
		}
		b.ctx.Logger().Debug("Test data written.", "file", m.SourceFile.Key, "path", path)
	}
	b.ctx.Logger().Info("Test data written.", "dir", dir, "files", len(summary.Files))
	return nil
}

// FileName maps a source file key to the name of its test-data file.
func FileName(key string) string {
	return utils.ReplaceInvalidPathChars(key) + ".xml"
}
