package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/analyzer"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/filesystem"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/logging"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/model"
	_ "github.com/IgorBayerl/ReportGenerator/go_test_report/internal/parser/nunit"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/reportconfig"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/reporter/testdetails"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/reporter/textsummary"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/reporting"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/reportset"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/resolver"
)

// reportBuilder is implemented by every output format.
type reportBuilder interface {
	ReportType() string
	CreateReport(summary *analyzer.Summary) error
}

// supportedReportTypes defines the available report formats
var supportedReportTypes = map[string]func(outputDir string, ctx reporting.IReportContext) reportBuilder{
	"TextSummary": func(dir string, ctx reporting.IReportContext) reportBuilder {
		return textsummary.NewTextReportBuilder(dir, ctx)
	},
	"TestData": func(dir string, ctx reporting.IReportContext) reportBuilder {
		return testdetails.NewTestDataReportBuilder(dir, ctx)
	},
}

// validateReportTypes checks if all requested report types are supported
func validateReportTypes(types []string) error {
	for _, t := range types {
		if _, ok := supportedReportTypes[strings.TrimSpace(t)]; !ok {
			return fmt.Errorf("unsupported report type: %s", strings.TrimSpace(t))
		}
	}
	return nil
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	start := time.Now()

	fs := flag.NewFlagSet("testreport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "", "Optional YAML configuration file")
	envFile := fs.String("env", ".env", "Optional dotenv file with TESTREPORT_* overrides")
	reports := fs.String("report", "", "Unit test report file paths or patterns (semicolon-separated, e.g. \"./build/**/TestResult.xml;./more.xml\")")
	itReports := fs.String("itreport", "", "Integration test report file paths or patterns (semicolon-separated)")
	artifact := fs.String("artifact", "", "Build artifact name; only Assembly suites with this file name are read (e.g. Lib.Tests.dll)")
	index := fs.String("index", "", "Name index mapping tests to source files (.yaml/.yml static map or .db/.sqlite symbol index)")
	outputDir := fs.String("output", "", "Output directory for reports (default \""+reportconfig.DefaultOutputDir+"\")")
	reportTypes := fs.String("reporttypes", "", "Report types to generate (comma-separated: TextSummary,TestData)")
	assemblyFilters := fs.String("assemblyfilters", "", "Assembly name filters (semicolon-separated, e.g. \"+Lib.*;-*.Slow.dll\")")
	fixtureFilters := fs.String("fixturefilters", "", "Fixture name filters (semicolon-separated, e.g. \"-*.Slow*\")")
	tag := fs.String("tag", "", "Optional tag (e.g., build number)")
	title := fs.String("title", "", "Optional report title. Default: '"+reportconfig.DefaultTitle+"'")
	verbosity := fs.String("verbosity", "", "Logging verbosity level (Verbose, Info, Warning, Error, Off)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var opts reportconfig.Options
	if *configFile != "" {
		fileOpts, err := reportconfig.LoadOptionsFile(*configFile)
		if err != nil {
			return err
		}
		opts = fileOpts
	}
	if err := opts.ApplyEnv(*envFile); err != nil {
		return err
	}
	opts.Override(reportconfig.Options{
		Reports:            splitList(*reports, ";"),
		IntegrationReports: splitList(*itReports, ";"),
		Artifact:           *artifact,
		Index:              *index,
		Output:             *outputDir,
		ReportTypes:        splitList(*reportTypes, ","),
		AssemblyFilters:    splitList(*assemblyFilters, ";"),
		FixtureFilters:     splitList(*fixtureFilters, ";"),
		Tag:                *tag,
		Title:              *title,
		Verbosity:          *verbosity,
	})

	if len(opts.Reports) == 0 && len(opts.IntegrationReports) == 0 {
		fmt.Fprintln(stderr, "Usage: testreport -report <file/pattern>[;<file/pattern>...] [-itreport <pattern>] -index <index file> [-artifact <name>] ...")
		fmt.Fprintln(stderr, "\nReport types:")
		for rt := range supportedReportTypes {
			fmt.Fprintf(stderr, "  %s\n", rt)
		}
		fmt.Fprintln(stderr, "\nVerbosity levels: Verbose, Info, Warning, Error, Off")
		return errors.New("no report file patterns given")
	}
	if opts.Index == "" {
		return errors.New("a name index is required (-index)")
	}

	fsys := filesystem.DefaultFS{}
	cfg, err := reportconfig.Build(opts, fsys)
	if err != nil {
		return err
	}
	if err := validateReportTypes(cfg.ReportTypes()); err != nil {
		return err
	}

	logger := logging.NewLogger(stderr, cfg.VerbosityLevel())
	for _, pattern := range cfg.InvalidReportFilePatterns() {
		logger.Warn("No files found for report pattern.", "pattern", pattern)
	}

	names, err := resolver.Open(ctx, cfg.IndexPath())
	if err != nil {
		return err
	}
	defer names.Close()

	parserConfig, err := reportconfig.NewParserConfig(cfg, names, logger)
	if err != nil {
		return err
	}

	logger.Info("Parsing test reports.", "unit", len(cfg.UnitReportFiles()), "integration", len(cfg.IntegrationReportFiles()))
	result, err := reportset.NewAssembler(parserConfig, logger).ParseSets(ctx,
		reportset.ReportSet{Kind: model.UnitTest, Files: cfg.UnitReportFiles()},
		reportset.ReportSet{Kind: model.IntegrationTest, Files: cfg.IntegrationReportFiles()},
	)
	if err != nil {
		return err
	}
	if result.ParsedFiles == 0 {
		return fmt.Errorf("none of the %d report files could be parsed", len(result.Failures))
	}

	summary := analyzer.Analyze(result, logger)
	reportCtx := reporting.NewReportContext(cfg, fsys, stdout, logger)

	var failed []string
	for _, reportType := range cfg.ReportTypes() {
		builder := supportedReportTypes[strings.TrimSpace(reportType)](cfg.TargetDirectory(), reportCtx)
		logger.Info("Generating report.", "type", builder.ReportType(), "output", cfg.TargetDirectory())
		if err := builder.CreateReport(summary); err != nil {
			logger.Error("Failed to generate report.", "type", builder.ReportType(), "error", err)
			failed = append(failed, builder.ReportType())
		}
	}

	logger.Info("Report generation completed.", "run", result.RunID, "seconds", fmt.Sprintf("%.2f", time.Since(start).Seconds()))
	if len(failed) > 0 {
		return fmt.Errorf("failed to generate reports: %s", strings.Join(failed, ", "))
	}
	return nil
}
