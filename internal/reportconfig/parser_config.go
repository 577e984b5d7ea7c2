package reportconfig

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/parser"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/parser/filtering"
)

type parserConfig struct {
	assemblyFilter filtering.IFilter
	fixtureFilter  filtering.IFilter
	resolver       parser.NameResolver
	logger         *slog.Logger
}

func (c *parserConfig) AssemblyFilter() filtering.IFilter { return c.assemblyFilter }
func (c *parserConfig) FixtureFilter() filtering.IFilter  { return c.fixtureFilter }
func (c *parserConfig) Resolver() parser.NameResolver     { return c.resolver }
func (c *parserConfig) Logger() *slog.Logger              { return c.logger }

// NewParserConfig builds the filters described by cfg and bundles them with
// the name resolver for the parsers.
func NewParserConfig(cfg IReportConfiguration, resolver parser.NameResolver, logger *slog.Logger) (parser.ParserConfig, error) {
	if resolver == nil {
		return nil, errors.New("a name resolver is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	assemblyPatterns, err := filtering.NewDefaultFilter(cfg.AssemblyFilters())
	if err != nil {
		return nil, fmt.Errorf("invalid assembly filters: %w", err)
	}
	fixtureFilter, err := filtering.NewDefaultFilter(cfg.FixtureFilters())
	if err != nil {
		return nil, fmt.Errorf("invalid fixture filters: %w", err)
	}
	return &parserConfig{
		assemblyFilter: filtering.NewArtifactFilter(cfg.ArtifactName(), assemblyPatterns),
		fixtureFilter:  fixtureFilter,
		resolver:       resolver,
		logger:         logger,
	}, nil
}
