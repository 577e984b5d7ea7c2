package reportconfig

import "github.com/IgorBayerl/ReportGenerator/go_test_report/internal/logging"

// IReportConfiguration defines the configuration of one ingestion run.
type IReportConfiguration interface {
	UnitReportFiles() []string
	IntegrationReportFiles() []string
	ArtifactName() string
	AssemblyFilters() []string
	FixtureFilters() []string
	TargetDirectory() string
	ReportTypes() []string
	IndexPath() string
	VerbosityLevel() logging.VerbosityLevel
	Tag() string
	Title() string
	InvalidReportFilePatterns() []string
}

// ReportConfiguration is a concrete implementation of IReportConfiguration.
type ReportConfiguration struct {
	UnitFiles          []string
	IntegrationFiles   []string
	Artifact           string
	AssemblyFilterList []string
	FixtureFilterList  []string
	TDirectory         string
	RTypes             []string
	Index              string
	VLevel             logging.VerbosityLevel
	CfgTag             string
	CfgTitle           string
	InvalidPatterns    []string
}

func (rc *ReportConfiguration) UnitReportFiles() []string              { return rc.UnitFiles }
func (rc *ReportConfiguration) IntegrationReportFiles() []string       { return rc.IntegrationFiles }
func (rc *ReportConfiguration) ArtifactName() string                   { return rc.Artifact }
func (rc *ReportConfiguration) AssemblyFilters() []string              { return rc.AssemblyFilterList }
func (rc *ReportConfiguration) FixtureFilters() []string               { return rc.FixtureFilterList }
func (rc *ReportConfiguration) TargetDirectory() string                { return rc.TDirectory }
func (rc *ReportConfiguration) ReportTypes() []string                  { return rc.RTypes }
func (rc *ReportConfiguration) IndexPath() string                      { return rc.Index }
func (rc *ReportConfiguration) VerbosityLevel() logging.VerbosityLevel { return rc.VLevel }
func (rc *ReportConfiguration) Tag() string                            { return rc.CfgTag }
func (rc *ReportConfiguration) Title() string                          { return rc.CfgTitle }
func (rc *ReportConfiguration) InvalidReportFilePatterns() []string    { return rc.InvalidPatterns }

// NewReportConfiguration is a constructor for ReportConfiguration.
// unitFiles and integrationFiles are existing file paths after glob
// expansion; invalidPatterns are the patterns that resolved to nothing.
func NewReportConfiguration(
	unitFiles []string,
	integrationFiles []string,
	artifact string,
	targetDir string,
	indexPath string,
	reportTypes []string,
	tag string,
	title string,
	verbosity logging.VerbosityLevel,
	invalidPatterns []string,
) *ReportConfiguration {
	if len(reportTypes) == 0 {
		reportTypes = []string{"TextSummary"}
	}
	if title == "" {
		title = DefaultTitle
	}
	return &ReportConfiguration{
		UnitFiles:          unitFiles,
		IntegrationFiles:   integrationFiles,
		Artifact:           artifact,
		TDirectory:         targetDir,
		Index:              indexPath,
		RTypes:             reportTypes,
		CfgTag:             tag,
		CfgTitle:           title,
		VLevel:             verbosity,
		InvalidPatterns:    invalidPatterns,
		AssemblyFilterList: []string{},
		FixtureFilterList:  []string{},
	}
}
