package nunit

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/parser"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/parser/filtering"
)

// mockResolver resolves names from in-memory maps and records every lookup.
type mockResolver struct {
	members     map[string]string
	types       map[string]string
	failMembers bool

	memberLookups []string
	typeLookups   []string
}

func (m *mockResolver) ResolveMember(_ context.Context, signature string) (*model.SourceFile, error) {
	m.memberLookups = append(m.memberLookups, signature)
	if m.failMembers {
		return nil, errors.New("index unavailable")
	}
	if path, ok := m.members[signature]; ok {
		return &model.SourceFile{Key: path, Path: path}, nil
	}
	return nil, nil
}

func (m *mockResolver) ResolveType(_ context.Context, typeName string) (*model.SourceFile, error) {
	m.typeLookups = append(m.typeLookups, typeName)
	if path, ok := m.types[typeName]; ok {
		return &model.SourceFile{Key: path, Path: path}, nil
	}
	return nil, nil
}

// MockFileReader serves report content from memory.
type MockFileReader struct {
	Files map[string]string
}

func (m *MockFileReader) ReadReport(path string) ([]byte, error) {
	content, ok := m.Files[path]
	if !ok {
		return nil, errors.New("file not found: " + path)
	}
	return []byte(content), nil
}

// mockParserConfig for providing test configuration.
type mockParserConfig struct {
	assemblyFilter filtering.IFilter
	fixtureFilter  filtering.IFilter
	resolver       parser.NameResolver
}

func (m *mockParserConfig) AssemblyFilter() filtering.IFilter { return m.assemblyFilter }
func (m *mockParserConfig) FixtureFilter() filtering.IFilter  { return m.fixtureFilter }
func (m *mockParserConfig) Resolver() parser.NameResolver     { return m.resolver }
func (m *mockParserConfig) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(resolver parser.NameResolver) *mockParserConfig {
	return &mockParserConfig{
		assemblyFilter: filtering.NewArtifactFilter("ClassLibrary1.Test.dll", nil),
		resolver:       resolver,
	}
}

// exampleResolver knows the members of testdata/TestResult.xml.
func exampleResolver() *mockResolver {
	return &mockResolver{
		members: map[string]string{
			"ClassLibrary1.Test.Class1Tests#SimpleTest_NoAsserts()":                                     "ClassLibrary1.Test/Class1Tests.cs",
			"ClassLibrary1.Test.Class1Tests#TestWithInput(bool, bool)":                                  "ClassLibrary1.Test/Class1Tests.cs",
			"ClassLibrary1.Test.Foo.Bar.Class1Tests#IgnoredTest()":                                      "ClassLibrary1.Test/Foo/Bar/Class1Tests.cs",
			"ClassLibrary1.Test.Foo.Bar.Class1Tests#TestNestedNamespaceClass()":                         "ClassLibrary1.Test/Foo/Bar/Class1Tests.cs",
			"ClassLibrary1.Test.Foo.Bar.Class1Tests#TestWillThrowExeption()":                            "ClassLibrary1.Test/Foo/Bar/Class1Tests.cs",
			"ClassLibrary1.Test.Foo.PartialClassTests#TestInMainFile()":                                 "ClassLibrary1.Test/Foo/PartialClassTest.cs",
			"ClassLibrary1.Test.Foo.PartialClassTests#TestIn2ndFile()":                                  "ClassLibrary1.Test/Foo/PartialClassTest.2ndFile.cs",
			"ClassLibrary1.Test.NestedClassesOutter#UnnestedTest()":                                     "ClassLibrary1.Test/NestedClassesOutter.cs",
			"ClassLibrary1.Test.NestedClassesOutter.NestedClassesInner#InnerNestedTest()":               "ClassLibrary1.Test/NestedClassesOutter.cs",
			"ClassLibrary1.Test.NestedClassesOutter.NestedClassesInner.DoubleNestedClassesInner#DoubleNestedTest()": "ClassLibrary1.Test/NestedClassesOutter.cs",
			"Other.OtherTests#NotMine()": "Other/OtherTests.cs",
		},
		types: map[string]string{
			"ClassLibrary1.Test.DerivedFixture": "ClassLibrary1.Test/DerivedFixture.cs",
		},
	}
}
