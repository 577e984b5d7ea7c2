package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitThatEnsuresGlobsAreSafe(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []string
	}{
		{"Semicolons", "a.xml; b.xml;c.xml", []string{"a.xml", "b.xml", "c.xml"}},
		{"BracesKeepCommas", "reports/{unit,it}.xml,other.xml", []string{"reports/{unit,it}.xml", "other.xml"}},
		{"EmptyPartsDropped", ";;a.xml;", []string{"a.xml"}},
		{"Empty", "", nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SplitThatEnsuresGlobsAreSafe(tc.input, []rune{';', ','}))
		})
	}
}

func TestSubstringHelpers(t *testing.T) {
	assert.Equal(t, "N.C.M", SubstringBefore("N.C.M(1,2)", "("))
	assert.Equal(t, "N.C.M", SubstringBefore("N.C.M", "("))
	assert.Equal(t, "M", SubstringAfterLast("N.C.M", "."))
	assert.Equal(t, "M", SubstringAfterLast("M", "."))

	between, ok := SubstringBetweenOuter(`M("a(b)", 2)`, "(", ")")
	assert.True(t, ok)
	assert.Equal(t, `"a(b)", 2`, between)

	between, ok = SubstringBetweenOuter("M()", "(", ")")
	assert.True(t, ok)
	assert.Equal(t, "", between)

	_, ok = SubstringBetweenOuter("M)(", "(", ")")
	assert.False(t, ok)
}

func TestIsDigits(t *testing.T) {
	assert.True(t, IsDigits("0123"))
	assert.False(t, IsDigits(""))
	assert.False(t, IsDigits("-1"))
	assert.False(t, IsDigits("1.0"))
}

func TestReplaceInvalidPathChars(t *testing.T) {
	assert.Equal(t, "src_N_C.cs", ReplaceInvalidPathChars("src/N/C.cs"))
	assert.Equal(t, "C_src_Lib_Class1Tests.cs", ReplaceInvalidPathChars(`C:\src\Lib\Class1Tests.cs`))
}
