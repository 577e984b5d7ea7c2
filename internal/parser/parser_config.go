package parser

import (
	"context"
	"log/slog"

	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/parser/filtering"
)

// NameResolver maps fully qualified names to test source files. It is backed
// by whatever symbol index the host has; the parsers only consume it.
//
// Both lookups return (nil, nil) when the name is unknown. A non-nil error is
// an index failure and is treated by callers as an unresolved lookup.
type NameResolver interface {
	// ResolveMember looks up a member signature such as "N.C#Method(bool, int)".
	ResolveMember(ctx context.Context, signature string) (*model.SourceFile, error)
	// ResolveType looks up a fully qualified type name such as "N.C".
	ResolveType(ctx context.Context, typeName string) (*model.SourceFile, error)
}

// ParserConfig defines the lean configuration required by a parser.
// This consumer-defined interface decouples parsers from the main report configuration.
type ParserConfig interface {
	// AssemblyFilter decides whether an Assembly suite belongs to the build
	// artifact under analysis.
	AssemblyFilter() filtering.IFilter
	// FixtureFilter decides whether cases of a fully qualified fixture are kept.
	FixtureFilter() filtering.IFilter
	Resolver() NameResolver
	Logger() *slog.Logger
}
