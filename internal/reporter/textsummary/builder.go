package textsummary

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/analyzer"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/reporting"
)

// ReportFileName is the file written into the output directory.
const ReportFileName = "Summary.txt"

var columns = []string{"file", "tests", "skipped", "errors", "failures", "duration", "success density"}

// TextReportBuilder writes a plain text summary: run totals followed by a
// table with one row per source file.
type TextReportBuilder struct {
	OutputDir string
	ctx       reporting.IReportContext
}

func NewTextReportBuilder(outputDir string, ctx reporting.IReportContext) *TextReportBuilder {
	return &TextReportBuilder{OutputDir: outputDir, ctx: ctx}
}

func (b *TextReportBuilder) ReportType() string {
	return "TextSummary"
}

// CreateReport renders the summary, prints it to the context's stdout and
// stores it as Summary.txt.
func (b *TextReportBuilder) CreateReport(summary *analyzer.Summary) error {
	var buf bytes.Buffer
	if err := b.render(&buf, summary); err != nil {
		return fmt.Errorf("failed to render text summary: %w", err)
	}

	if _, err := b.ctx.Stdout().Write(buf.Bytes()); err != nil {
		return err
	}

	fsys := b.ctx.FileSystem()
	if err := fsys.MkdirAll(b.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", b.OutputDir, err)
	}
	path := filepath.Join(b.OutputDir, ReportFileName)
	if err := fsys.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	b.ctx.Logger().Info("Text summary written.", "path", path)
	return nil
}

func (b *TextReportBuilder) render(w io.Writer, summary *analyzer.Summary) error {
	cfg := b.ctx.ReportConfiguration()
	fmt.Fprintf(w, "Summary\n")
	fmt.Fprintf(w, "  Title:              %s\n", cfg.Title())
	if cfg.Tag() != "" {
		fmt.Fprintf(w, "  Tag:                %s\n", cfg.Tag())
	}
	fmt.Fprintf(w, "  Run:                %s\n", summary.RunID)
	fmt.Fprintf(w, "  Source files:       %d\n", len(summary.Files))
	fmt.Fprintf(w, "  Tests:              %d\n", summary.Tests)
	fmt.Fprintf(w, "  Skipped:            %d\n", summary.Skipped)
	fmt.Fprintf(w, "  Errors:             %d\n", summary.Errors)
	fmt.Fprintf(w, "  Failures:           %d\n", summary.Failures)
	fmt.Fprintf(w, "  Execution time:     %d ms\n", summary.ExecutionTimeMillis)
	fmt.Fprintf(w, "  Success density:    %s\n", formatDensity(summary.SuccessDensity))
	if summary.UnresolvedCases > 0 {
		fmt.Fprintf(w, "  Unresolved cases:   %d\n", summary.UnresolvedCases)
	}
	if summary.FailedReports > 0 {
		fmt.Fprintf(w, "  Failed reports:     %d\n", summary.FailedReports)
	}
	fmt.Fprintln(w)

	if len(summary.Files) == 0 {
		return nil
	}

	title := cases.Title(language.English)
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = title.String(c)
	}

	rows := make([][]string, 0, len(summary.Files))
	for _, m := range summary.Files {
		rows = append(rows, []string{
			m.SourceFile.Key,
			strconv.Itoa(m.Tests),
			strconv.Itoa(m.Skipped),
			strconv.Itoa(m.Errors),
			strconv.Itoa(m.Failures),
			strconv.FormatInt(m.ExecutionTimeMillis, 10)+" ms",
			formatDensity(m.SuccessDensity),
		})
	}

	table := tablewriter.NewWriter(w)
	table.Header(header...)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func formatDensity(d *float64) string {
	if d == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*d, 'f', 1, 64) + "%"
}
