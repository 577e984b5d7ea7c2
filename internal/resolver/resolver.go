// Package resolver opens the name index that maps test cases to source files.
package resolver

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/parser"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/resolver/sqlite"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/resolver/static"
)

// Resolver is a parser.NameResolver that holds resources until closed.
type Resolver interface {
	parser.NameResolver
	io.Closer
}

type nopCloser struct {
	parser.NameResolver
}

func (nopCloser) Close() error { return nil }

// Open picks the index implementation from the file extension: .yaml and
// .yml are static maps, .db, .sqlite and .sqlite3 are SQLite symbol indexes.
func Open(ctx context.Context, path string) (Resolver, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		idx, err := static.Load(path)
		if err != nil {
			return nil, err
		}
		return nopCloser{idx}, nil
	case ".db", ".sqlite", ".sqlite3":
		return sqlite.Open(ctx, path)
	default:
		return nil, fmt.Errorf("unsupported index file %s: expected .yaml, .yml, .db, .sqlite or .sqlite3", path)
	}
}
