package static

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/model"
)

// indexFile is the on-disk layout of a static index:
//
//	root: src
//	members:
//	  "Lib.Tests.Class1Tests#TestWithInput(bool, bool)": Lib.Tests/Class1Tests.cs
//	types:
//	  Lib.Tests.DerivedFixture: Lib.Tests/DerivedFixture.cs
type indexFile struct {
	Root    string            `yaml:"root"`
	Members map[string]string `yaml:"members"`
	Types   map[string]string `yaml:"types"`
}

// Index resolves names from fixed maps of member signatures and type names
// to source file keys.
type Index struct {
	root    string
	members map[string]string
	types   map[string]string
}

// New creates an index from in-memory maps. Either map may be nil.
func New(root string, members, types map[string]string) *Index {
	return &Index{root: root, members: members, types: types}
}

// Load reads a YAML index from disk. A relative root is taken relative to the
// index file's directory.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read static index %s: %w", path, err)
	}
	idx, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse static index %s: %w", path, err)
	}
	if idx.root != "" && !filepath.IsAbs(idx.root) {
		idx.root = filepath.Join(filepath.Dir(path), idx.root)
	}
	return idx, nil
}

// Parse decodes a YAML index document.
func Parse(data []byte) (*Index, error) {
	var f indexFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return New(f.Root, f.Members, f.Types), nil
}

func (i *Index) ResolveMember(_ context.Context, signature string) (*model.SourceFile, error) {
	return i.lookup(i.members, signature), nil
}

func (i *Index) ResolveType(_ context.Context, typeName string) (*model.SourceFile, error) {
	return i.lookup(i.types, typeName), nil
}

func (i *Index) lookup(entries map[string]string, name string) *model.SourceFile {
	key, ok := entries[name]
	if !ok || key == "" {
		return nil
	}
	file := &model.SourceFile{Key: key}
	if i.root != "" {
		file.Path = filepath.Join(i.root, filepath.FromSlash(key))
	}
	return file
}

// Len is the number of indexed members and types.
func (i *Index) Len() int {
	return len(i.members) + len(i.types)
}
