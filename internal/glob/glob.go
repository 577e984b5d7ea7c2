// Package glob finds report files by matching path names against a pattern:
//   - `?` matches any single character in a name.
//   - `*` matches zero or more characters in a name.
//   - `**` matches zero or more directories.
//   - `[...]` matches a set of characters, e.g. `[abc]` or `[a-z]`.
//   - `{a,b}` matches any of the comma separated alternatives.
//
// Matching ignores case.
package glob

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/filesystem"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/utils"
)

const globCharacters = "*?[]{}"

// Glob holds a pattern and the filesystem it is expanded against.
type Glob struct {
	pattern string
	fs      filesystem.Filesystem
}

// NewGlob creates a Glob for pattern. A nil fsys uses the host filesystem.
func NewGlob(pattern string, fsys filesystem.Filesystem) *Glob {
	if fsys == nil {
		fsys = filesystem.DefaultFS{}
	}
	return &Glob{pattern: pattern, fs: fsys}
}

func (g *Glob) String() string {
	return g.pattern
}

// Expand returns the sorted absolute paths of the files matching the pattern.
// Directories are never returned.
func (g *Glob) Expand() ([]string, error) {
	pattern := strings.ReplaceAll(strings.TrimSpace(g.pattern), `\`, "/")
	if pattern == "" {
		return nil, nil
	}

	if !strings.ContainsAny(pattern, globCharacters) {
		abs, err := g.fs.Abs(filepath.FromSlash(pattern))
		if err != nil {
			return nil, err
		}
		if info, err := g.fs.Stat(abs); err == nil && !info.IsDir() {
			return []string{abs}, nil
		}
		return nil, nil
	}

	base, segments, err := g.split(pattern)
	if err != nil {
		return nil, err
	}
	matchers := make([]*regexp.Regexp, len(segments))
	for i, seg := range segments {
		if seg == "**" {
			continue
		}
		re, err := segmentRegex(seg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern '%s': %w", g.pattern, err)
		}
		matchers[i] = re
	}

	seen := make(map[string]struct{})
	var files []string
	g.match(base, segments, matchers, func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	})
	sort.Strings(files)
	return files, nil
}

// split separates the literal directory prefix of the pattern from the
// segments that need matching.
func (g *Glob) split(pattern string) (string, []string, error) {
	parts := strings.Split(pattern, "/")
	var base string
	switch {
	case strings.HasPrefix(pattern, "/"):
		base = "/"
		parts = parts[1:]
	case len(parts[0]) == 2 && parts[0][1] == ':':
		base = parts[0] + `\`
		parts = parts[1:]
	default:
		cwd, err := g.fs.Getwd()
		if err != nil {
			return "", nil, err
		}
		base = cwd
	}

	i := 0
	for ; i < len(parts)-1; i++ {
		if strings.ContainsAny(parts[i], globCharacters) {
			break
		}
		if parts[i] != "" {
			base = filepath.Join(base, parts[i])
		}
	}

	var segments []string
	for _, p := range parts[i:] {
		if p == "" || p == "." {
			continue
		}
		if p == "**" && len(segments) > 0 && segments[len(segments)-1] == "**" {
			continue
		}
		segments = append(segments, p)
	}
	return base, segments, nil
}

func (g *Glob) match(dir string, segments []string, matchers []*regexp.Regexp, emit func(string)) {
	if len(segments) == 0 {
		return
	}
	entries, err := g.fs.ReadDir(dir)
	if err != nil {
		return
	}

	if segments[0] == "**" {
		trailing := len(segments) == 1
		if !trailing {
			g.match(dir, segments[1:], matchers[1:], emit)
		}
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			switch {
			case entry.IsDir():
				g.match(path, segments, matchers, emit)
			case trailing:
				emit(path)
			}
		}
		return
	}

	last := len(segments) == 1
	for _, entry := range entries {
		if !matchers[0].MatchString(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		switch {
		case last && !entry.IsDir():
			emit(path)
		case !last && entry.IsDir():
			g.match(path, segments[1:], matchers[1:], emit)
		}
	}
}

// segmentRegex converts one path segment into an anchored case-insensitive
// regular expression.
func segmentRegex(segment string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString("(?i)^")
	depth := 0
	for i := 0; i < len(segment); i++ {
		c := segment[i]
		switch c {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		case '[':
			end := strings.IndexByte(segment[i+1:], ']')
			if end < 0 {
				return nil, fmt.Errorf("unterminated character class in '%s'", segment)
			}
			class := segment[i+1 : i+1+end]
			if strings.HasPrefix(class, "!") {
				class = "^" + class[1:]
			}
			sb.WriteString("[" + class + "]")
			i += end + 1
		case '{':
			depth++
			sb.WriteString("(?:")
		case '}':
			if depth == 0 {
				return nil, fmt.Errorf("unbalanced '}' in '%s'", segment)
			}
			depth--
			sb.WriteString(")")
		case ',':
			if depth > 0 {
				sb.WriteString("|")
			} else {
				sb.WriteString(",")
			}
		default:
			sb.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced '{' in '%s'", segment)
	}
	sb.WriteString("$")
	return regexp.Compile(sb.String())
}

// GetFiles expands pattern against the host filesystem.
func GetFiles(pattern string) ([]string, error) {
	return NewGlob(pattern, nil).Expand()
}

// ExpandPatterns expands a semicolon separated pattern list. The files are
// de-duplicated in first-seen order; patterns that fail or match nothing are
// returned as invalid.
func ExpandPatterns(fsys filesystem.Filesystem, patterns string) (files, invalid []string) {
	seen := make(map[string]struct{})
	for _, pattern := range utils.SplitThatEnsuresGlobsAreSafe(patterns, []rune{';'}) {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		matched, err := NewGlob(pattern, fsys).Expand()
		if err != nil || len(matched) == 0 {
			invalid = append(invalid, pattern)
			continue
		}
		for _, f := range matched {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			files = append(files, f)
		}
	}
	return files, invalid
}
