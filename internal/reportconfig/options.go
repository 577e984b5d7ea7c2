package reportconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/filesystem"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/glob"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/logging"
)

const (
	DefaultTitle     = "Test Report"
	DefaultOutputDir = "test-report"
	// EnvPrefix prefixes the environment variables that override options.
	EnvPrefix = "TESTREPORT_"
)

// Options are the raw, unexpanded settings gathered from a config file, the
// environment and command line flags.
type Options struct {
	Reports            []string `yaml:"reports"`
	IntegrationReports []string `yaml:"integrationReports"`
	Artifact           string   `yaml:"artifact"`
	AssemblyFilters    []string `yaml:"assemblyFilters"`
	FixtureFilters     []string `yaml:"fixtureFilters"`
	Output             string   `yaml:"output"`
	ReportTypes        []string `yaml:"reportTypes"`
	Index              string   `yaml:"index"`
	Verbosity          string   `yaml:"verbosity"`
	Tag                string   `yaml:"tag"`
	Title              string   `yaml:"title"`
}

// LoadOptionsFile reads a YAML config file and validates it before decoding.
func LoadOptionsFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	opts, err := ParseOptions(data)
	if err != nil {
		return Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// ParseOptions validates and decodes a YAML config document.
func ParseOptions(data []byte) (Options, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Options{}, fmt.Errorf("invalid YAML: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return Options{}, err
	}
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("invalid YAML: %w", err)
	}
	return opts, nil
}

// Override copies every non-empty field of other over o.
func (o *Options) Override(other Options) {
	overrideSlice(&o.Reports, other.Reports)
	overrideSlice(&o.IntegrationReports, other.IntegrationReports)
	overrideString(&o.Artifact, other.Artifact)
	overrideSlice(&o.AssemblyFilters, other.AssemblyFilters)
	overrideSlice(&o.FixtureFilters, other.FixtureFilters)
	overrideString(&o.Output, other.Output)
	overrideSlice(&o.ReportTypes, other.ReportTypes)
	overrideString(&o.Index, other.Index)
	overrideString(&o.Verbosity, other.Verbosity)
	overrideString(&o.Tag, other.Tag)
	overrideString(&o.Title, other.Title)
}

func overrideString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func overrideSlice(dst *[]string, src []string) {
	if len(src) > 0 {
		*dst = src
	}
}

// ApplyEnv overrides options from TESTREPORT_* variables. Values from
// envFile (a dotenv file) are used when the process environment does not set
// them; a missing envFile is not an error.
func (o *Options) ApplyEnv(envFile string) error {
	fileEnv := map[string]string{}
	if envFile != "" {
		read, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load environment file %s: %w", envFile, err)
		}
		if read != nil {
			fileEnv = read
		}
	}
	lookup := func(name string) string {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			return v
		}
		return fileEnv[EnvPrefix+name]
	}

	o.Override(Options{
		Artifact:  lookup("ARTIFACT"),
		Index:     lookup("INDEX"),
		Verbosity: lookup("VERBOSITY"),
		Output:    lookup("OUTPUT"),
		Reports:   splitList(lookup("REPORTS")),
	})
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Build expands the report patterns against fsys and produces the final
// configuration. It fails when no report file at all was found.
func Build(opts Options, fsys filesystem.Filesystem) (*ReportConfiguration, error) {
	verbosity := logging.Info
	if opts.Verbosity != "" {
		v, err := logging.ParseVerbosity(opts.Verbosity)
		if err != nil {
			return nil, err
		}
		verbosity = v
	}

	unitFiles, invalidUnit := glob.ExpandPatterns(fsys, strings.Join(opts.Reports, ";"))
	integrationFiles, invalidIntegration := glob.ExpandPatterns(fsys, strings.Join(opts.IntegrationReports, ";"))
	invalid := append(invalidUnit, invalidIntegration...)
	if len(unitFiles) == 0 && len(integrationFiles) == 0 {
		if len(invalid) > 0 {
			return nil, fmt.Errorf("no report files found; patterns that yielded no files: %s", strings.Join(invalid, ", "))
		}
		return nil, errors.New("no report file patterns given")
	}

	output := opts.Output
	if output == "" {
		output = DefaultOutputDir
	}
	cfg := NewReportConfiguration(
		unitFiles,
		integrationFiles,
		strings.TrimSpace(opts.Artifact),
		output,
		opts.Index,
		opts.ReportTypes,
		opts.Tag,
		opts.Title,
		verbosity,
		invalid,
	)
	if len(opts.AssemblyFilters) > 0 {
		cfg.AssemblyFilterList = opts.AssemblyFilters
	}
	if len(opts.FixtureFilters) > 0 {
		cfg.FixtureFilterList = opts.FixtureFilters
	}
	return cfg, nil
}
