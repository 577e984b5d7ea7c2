package model

import "fmt"

// SourceFile is the handle a name resolver returns for a test source file.
// Key identifies the file for grouping; Path is informational.
type SourceFile struct {
	Key  string
	Path string
}

func (f SourceFile) String() string {
	if f.Path != "" {
		return f.Path
	}
	return f.Key
}

// TestFileGroup holds all test cases resolved to one source file.
// Statistics are derived from Cases on every read and never cached.
type TestFileGroup struct {
	SourceFile SourceFile
	Cases      []TestCase
}

// NewTestFileGroup creates an empty group for the given source file.
func NewTestFileGroup(file SourceFile) *TestFileGroup {
	return &TestFileGroup{SourceFile: file, Cases: []TestCase{}}
}

// Add appends a single case in encounter order.
func (g *TestFileGroup) Add(tc TestCase) {
	g.Cases = append(g.Cases, tc)
}

// Merge appends the cases of other to g. Merging the same group content twice
// duplicates the cases; callers must not feed the same report twice.
func (g *TestFileGroup) Merge(other *TestFileGroup) {
	if other == nil {
		return
	}
	g.Cases = append(g.Cases, other.Cases...)
}

// Tests is the total number of cases, skipped ones included.
func (g *TestFileGroup) Tests() int {
	return len(g.Cases)
}

func (g *TestFileGroup) Skipped() int  { return g.count(StatusSkipped) }
func (g *TestFileGroup) Errors() int   { return g.count(StatusError) }
func (g *TestFileGroup) Failures() int { return g.count(StatusFailed) }
func (g *TestFileGroup) Passed() int   { return g.count(StatusPassed) }

func (g *TestFileGroup) count(status TestStatus) int {
	n := 0
	for i := range g.Cases {
		if g.Cases[i].Status == status {
			n++
		}
	}
	return n
}

// DurationMillis sums the case durations. Fixture setup overhead reported at
// suite level is not included.
func (g *TestFileGroup) DurationMillis() int64 {
	var total int64
	for i := range g.Cases {
		total += g.Cases[i].DurationMillis
	}
	return total
}

// SuccessDensity returns the passed percentage of the non-skipped cases.
// The second return value is false when no case was run.
func (g *TestFileGroup) SuccessDensity() (float64, bool) {
	run := g.Tests() - g.Skipped()
	if run == 0 {
		return 0, false
	}
	passed := run - g.Errors() - g.Failures()
	return float64(passed) * 100 / float64(run), true
}

func (g *TestFileGroup) String() string {
	return fmt.Sprintf("file:%s(time=%.3fs, tests=%d, failures=%d, errors=%d, ignored=%d)",
		g.SourceFile, float64(g.DurationMillis())/1000, g.Tests(), g.Failures(), g.Errors(), g.Skipped())
}
