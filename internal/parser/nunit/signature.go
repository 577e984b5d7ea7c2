package nunit

import (
	"context"
	"log/slog"
	"strings"

	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/parser"
	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/utils"
)

// Inferred parameter types, in the spelling the member index uses.
const (
	typeString = "string"
	typeBool   = "bool"
	typeInt    = "int"
	typeDouble = "double"
	typeObject = "object"
)

// InferParameterType guesses the declared type of a parameterized test
// argument from its literal text. NUnit only accepts compile-time constants,
// so the guess is limited to primitives. The checks run in a fixed order and
// the result is a guess: "True" is always a bool even if the method takes a
// string.
func InferParameterType(value string) string {
	switch {
	case strings.HasPrefix(value, `"`):
		return typeString
	case value == "True" || value == "False":
		return typeBool
	case utils.IsDigits(value):
		return typeInt
	case utils.IsDigits(strings.Replace(value, ".", "", 1)):
		return typeDouble
	default:
		return typeObject
	}
}

// MethodSignature builds the member signature looked up for a test case,
// e.g. "Lib.Class1Tests.TestWithInput(False,True)" in fixture
// "Lib.Class1Tests" becomes "Lib.Class1Tests#TestWithInput(bool, bool)".
//
// Arguments are split on every comma, including commas inside string
// literals, so such cases produce a signature with too many parameters.
func MethodSignature(rawCaseName, fixtureName string) string {
	name := normalizeNestedTypes(rawCaseName)
	if !strings.HasSuffix(name, ")") {
		name += "()"
	}

	methodName := utils.SubstringAfterLast(utils.SubstringBefore(name, "("), ".")

	var types []string
	if allParams, ok := utils.SubstringBetweenOuter(name, "(", ")"); ok {
		for _, param := range strings.Split(allParams, ",") {
			param = strings.TrimSpace(param)
			if param == "" {
				continue
			}
			types = append(types, InferParameterType(param))
		}
	}

	return fixtureName + "#" + methodName + "(" + strings.Join(types, ", ") + ")"
}

// signatureResolver maps a test case to its source file through the external
// name resolver.
type signatureResolver struct {
	resolver parser.NameResolver
	logger   *slog.Logger
}

// resolve returns nil when neither the member nor the fixture type is known.
//
// Inherited test methods are reported under the concrete fixture but declared
// on a base class, so the member lookup fails for them. The fallback attaches
// the case to the concrete fixture's file, not the base class's, which keeps
// the result next to the fixture but loses precision for partial classes.
func (r *signatureResolver) resolve(ctx context.Context, rawCaseName, fixtureName string) *model.SourceFile {
	signature := MethodSignature(rawCaseName, fixtureName)

	file, err := r.resolver.ResolveMember(ctx, signature)
	if err != nil {
		r.logger.Warn("Member lookup failed.", "signature", signature, "error", err)
	}
	if file != nil {
		r.logger.Debug("Resolved test case to source file.", "signature", signature, "file", file.String())
		return file
	}
	r.logger.Debug("Could not find member, trying fixture type.", "signature", signature, "fixture", fixtureName)

	if fixtureName == "" {
		return nil
	}
	file, err = r.resolver.ResolveType(ctx, fixtureName)
	if err != nil {
		r.logger.Warn("Type lookup failed.", "type", fixtureName, "error", err)
	}
	if file == nil {
		r.logger.Debug("Could not find fixture type.", "type", fixtureName)
		return nil
	}
	return file
}
