// Package reportset parses a set of report files and merges their groups by
// source file.
package reportset

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/parser"
)

// ReportSet is a list of report files that all carry the same kind of tests.
type ReportSet struct {
	Kind  model.TestKind
	Files []string
}

// FileError records a report file that contributed nothing to the result.
type FileError struct {
	File string
	Kind model.TestKind
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s report %s: %v", e.Kind, e.File, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Result is the merged outcome of one run.
type Result struct {
	RunID string
	// Groups are sorted by source file key. Cases inside a group keep the
	// order of file processing, then the order within each file.
	Groups          []*model.TestFileGroup
	UnresolvedCases int
	ParsedFiles     int
	Failures        []*FileError
}

// Group returns the group for a source file key, or nil.
func (r *Result) Group(key string) *model.TestFileGroup {
	i := sort.Search(len(r.Groups), func(i int) bool { return r.Groups[i].SourceFile.Key >= key })
	if i < len(r.Groups) && r.Groups[i].SourceFile.Key == key {
		return r.Groups[i]
	}
	return nil
}

// Assembler runs the parsers over report files. Each call owns its own
// accumulation; an Assembler may be shared between goroutines.
type Assembler struct {
	config     parser.ParserConfig
	logger     *slog.Logger
	findParser func(filePath string) (parser.IParser, error)
}

// NewAssembler creates an Assembler that picks each file's parser from the
// registry.
func NewAssembler(config parser.ParserConfig, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{config: config, logger: logger, findParser: parser.FindParserForFile}
}

// ParseAll parses files as one set of kind.
func (a *Assembler) ParseAll(ctx context.Context, files []string, kind model.TestKind) (*Result, error) {
	return a.ParseSets(ctx, ReportSet{Kind: kind, Files: files})
}

// ParseSets parses every set in order and merges all of them into one
// result. A file that cannot be parsed is recorded in Result.Failures and
// the run continues; only cancellation of ctx aborts it.
func (a *Assembler) ParseSets(ctx context.Context, sets ...ReportSet) (*Result, error) {
	acc := newAccumulator()
	result := &Result{RunID: uuid.NewString()}
	logger := a.logger.With("run", result.RunID)

	for _, set := range sets {
		for _, file := range set.Files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			parsed, err := a.parseFile(ctx, file, set.Kind)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				logger.Error("Failed to parse report, skipping it.", "file", file, "kind", set.Kind.String(), "error", err)
				result.Failures = append(result.Failures, &FileError{File: file, Kind: set.Kind, Err: err})
				continue
			}
			logger.Info("Parsed report.", "file", file, "kind", set.Kind.String(),
				"parser", parsed.ParserName, "files", len(parsed.Groups), "unresolved", parsed.UnresolvedCases)
			acc.add(parsed)
			result.ParsedFiles++
			result.UnresolvedCases += parsed.UnresolvedCases
		}
	}

	result.Groups = acc.sorted()
	if result.UnresolvedCases > 0 {
		logger.Warn("Some test cases were not attributed to any source file.", "unresolved", result.UnresolvedCases)
	}
	return result, nil
}

func (a *Assembler) parseFile(ctx context.Context, file string, kind model.TestKind) (*parser.ParserResult, error) {
	p, err := a.findParser(file)
	if err != nil {
		return nil, err
	}
	return p.Parse(ctx, file, kind, a.config)
}

// accumulator merges per-file groups by source file key.
type accumulator struct {
	groups map[string]*model.TestFileGroup
}

func newAccumulator() *accumulator {
	return &accumulator{groups: make(map[string]*model.TestFileGroup)}
}

func (acc *accumulator) add(parsed *parser.ParserResult) {
	keys := make([]string, 0, len(parsed.Groups))
	for key := range parsed.Groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		g := parsed.Groups[key]
		merged, ok := acc.groups[key]
		if !ok {
			merged = model.NewTestFileGroup(g.SourceFile)
			acc.groups[key] = merged
		}
		merged.Merge(g)
	}
}

func (acc *accumulator) sorted() []*model.TestFileGroup {
	groups := make([]*model.TestFileGroup, 0, len(acc.groups))
	for _, g := range acc.groups {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].SourceFile.Key < groups[j].SourceFile.Key })
	return groups
}
