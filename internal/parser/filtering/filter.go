package filtering

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// IFilter defines an interface for filtering elements.
type IFilter interface {
	IsElementIncludedInReport(name string) bool
	HasCustomFilters() bool
}

// DefaultFilter applies '+' include and '-' exclude wildcard patterns.
// Exclusions win over inclusions; no include pattern means include everything.
type DefaultFilter struct {
	includeFilters []*regexp.Regexp
	excludeFilters []*regexp.Regexp
	hasCustom      bool
}

// NewDefaultFilter creates a DefaultFilter from patterns such as "+Lib.*" or
// "-*.Slow*". Empty patterns are ignored; any other pattern without a sign is
// an error.
func NewDefaultFilter(filters []string) (IFilter, error) {
	df := &DefaultFilter{}
	var errs []string

	for _, f := range filters {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if f[0] != '+' && f[0] != '-' {
			errs = append(errs, fmt.Sprintf("filter '%s' must start with '+' or '-'", f))
			continue
		}
		re, err := createFilterRegex(f[1:])
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid filter '%s': %v", f, err))
			continue
		}
		if f[0] == '+' {
			df.includeFilters = append(df.includeFilters, re)
		} else {
			df.excludeFilters = append(df.excludeFilters, re)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("error creating default filter: %s", strings.Join(errs, "; "))
	}

	df.hasCustom = len(df.includeFilters) > 0 || len(df.excludeFilters) > 0
	return df, nil
}

// IsElementIncludedInReport checks if the given name matches the filter rules.
func (df *DefaultFilter) IsElementIncludedInReport(name string) bool {
	for _, excludeRe := range df.excludeFilters {
		if excludeRe.MatchString(name) {
			return false
		}
	}
	if len(df.includeFilters) == 0 {
		return true
	}
	for _, includeRe := range df.includeFilters {
		if includeRe.MatchString(name) {
			return true
		}
	}
	return false
}

// HasCustomFilters returns true if any include or exclude filters were specified.
func (df *DefaultFilter) HasCustomFilters() bool {
	return df.hasCustom
}

// createFilterRegex turns a wildcard pattern ('*' and '?') into an anchored,
// case-insensitive regex.
func createFilterRegex(pattern string) (*regexp.Regexp, error) {
	pattern = regexp.QuoteMeta(pattern)
	pattern = strings.ReplaceAll(pattern, `\*`, ".*")
	pattern = strings.ReplaceAll(pattern, `\?`, ".")
	return regexp.Compile("(?i)^" + pattern + "$")
}

// ArtifactFilter accepts an Assembly suite only when the file name of its
// declared path equals the build artifact name, e.g. "Lib.Tests.dll".
// An empty artifact name accepts every assembly.
type ArtifactFilter struct {
	artifactName string
	extra        IFilter
}

// NewArtifactFilter creates an ArtifactFilter. extra, when non-nil, is an
// additional pattern filter applied to the assembly file name.
func NewArtifactFilter(artifactName string, extra IFilter) *ArtifactFilter {
	return &ArtifactFilter{artifactName: strings.TrimSpace(artifactName), extra: extra}
}

// IsElementIncludedInReport checks an assembly name as written in the report.
func (af *ArtifactFilter) IsElementIncludedInReport(assemblyName string) bool {
	fileName := AssemblyFileName(assemblyName)
	if af.artifactName != "" && fileName != af.artifactName {
		return false
	}
	if af.extra != nil && !af.extra.IsElementIncludedInReport(fileName) {
		return false
	}
	return true
}

// HasCustomFilters reports whether the filter can reject anything.
func (af *ArtifactFilter) HasCustomFilters() bool {
	return af.artifactName != "" || (af.extra != nil && af.extra.HasCustomFilters())
}

// AssemblyFileName strips the directory part of an assembly path. Reports
// written on Windows use backslashes, so both separators are honoured.
func AssemblyFileName(assemblyPath string) string {
	return path.Base(strings.ReplaceAll(assemblyPath, `\`, "/"))
}
