package nunit

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferParameterType(t *testing.T) {
	testCases := []struct {
		value string
		want  string
	}{
		{`"x"`, "string"},
		{`"True"`, "string"},
		{"True", "bool"},
		{"False", "bool"},
		{"true", "object"},
		{"5", "int"},
		{"0042", "int"},
		{"5.0", "double"},
		{".5", "double"},
		{"5.0.1", "object"},
		{"-5", "object"},
		{".", "object"},
		{"foo", "object"},
		{"null", "object"},
	}
	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			assert.Equal(t, tc.want, InferParameterType(tc.value))
		})
	}
}

func TestMethodSignature(t *testing.T) {
	testCases := []struct {
		name    string
		raw     string
		fixture string
		want    string
	}{
		{"Bare method", "Method1", "N.C", "N.C#Method1()"},
		{"Qualified method", "N.C.Method1", "N.C", "N.C#Method1()"},
		{"Empty parameter list", "N.C.Method1()", "N.C", "N.C#Method1()"},
		{"Bool parameters", "N.C.Method2(False,True)", "N.C", "N.C#Method2(bool, bool)"},
		{"Mixed parameters with spaces", `N.C.M(1, 2.5, "s", x)`, "N.C", "N.C#M(int, double, string, object)"},
		{"Nested class separator", "N.Outer+Inner.Test", "N.Outer.Inner", "N.Outer.Inner#Test()"},
		{"Parentheses inside a string", `N.C.M("a(b)")`, "N.C", "N.C#M(string)"},
		{"Comma inside a string splits", `N.C.M("a,b")`, "N.C", "N.C#M(string, object)"},
		{"No fixture", "Method1", "", "#Method1()"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MethodSignature(tc.raw, tc.fixture))
		})
	}
}

func newTestSignatureResolver(r *mockResolver) *signatureResolver {
	return &signatureResolver{resolver: r, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestSignatureResolver_MemberHit(t *testing.T) {
	r := &mockResolver{members: map[string]string{"N.C#Method2(bool, bool)": "F"}}

	file := newTestSignatureResolver(r).resolve(context.Background(), "N.C.Method2(False,True)", "N.C")

	require.NotNil(t, file)
	assert.Equal(t, "F", file.Key)
	assert.Empty(t, r.typeLookups, "type lookup only runs when the member is unknown")
}

func TestSignatureResolver_FallsBackToFixtureType(t *testing.T) {
	r := &mockResolver{types: map[string]string{"N.Derived": "Derived.cs"}}

	file := newTestSignatureResolver(r).resolve(context.Background(), "N.Derived.InheritedTest", "N.Derived")

	require.NotNil(t, file)
	assert.Equal(t, "Derived.cs", file.Key)
	assert.Equal(t, []string{"N.Derived#InheritedTest()"}, r.memberLookups)
	assert.Equal(t, []string{"N.Derived"}, r.typeLookups)
}

func TestSignatureResolver_Unresolved(t *testing.T) {
	r := &mockResolver{}
	assert.Nil(t, newTestSignatureResolver(r).resolve(context.Background(), "N.C.Lost", "N.C"))
	assert.Len(t, r.memberLookups, 1)
	assert.Len(t, r.typeLookups, 1)
}

func TestSignatureResolver_ResolverErrorIsNotFatal(t *testing.T) {
	r := &mockResolver{failMembers: true, types: map[string]string{"N.C": "C.cs"}}

	file := newTestSignatureResolver(r).resolve(context.Background(), "N.C.M", "N.C")

	require.NotNil(t, file)
	assert.Equal(t, "C.cs", file.Key)
}

func TestSignatureResolver_NoFixtureSkipsTypeLookup(t *testing.T) {
	r := &mockResolver{}
	assert.Nil(t, newTestSignatureResolver(r).resolve(context.Background(), "Orphan", ""))
	assert.Equal(t, []string{"#Orphan()"}, r.memberLookups)
	assert.Empty(t, r.typeLookups)
}
