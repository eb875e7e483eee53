package checker_test

import (
	"strings"
	"testing"

	"github.com/tyro-lang/tyro/internal/ast"
	"github.com/tyro-lang/tyro/internal/binder"
	"github.com/tyro-lang/tyro/internal/checker"
	"github.com/tyro-lang/tyro/internal/diagnostics"
	"github.com/tyro-lang/tyro/internal/parser"
	"github.com/tyro-lang/tyro/internal/scanner"
)

// analyzeSource runs Scan -> Parse -> Bind -> Check over src and returns the
// top-level types plus the diagnostics sink, mirroring the teacher's own
// analyzeSource test helper.
func analyzeSource(t *testing.T, src string) ([]ast.Type, *diagnostics.Sink) {
	t.Helper()
	sink := diagnostics.NewSink()
	sc := scanner.New(src)
	p := parser.New(sc, sink)
	mod := p.ParseModule()
	binder.Bind(mod, sink)
	types := checker.New(sink).Check(mod)
	return types, sink
}

func expectNoDiagnostics(t *testing.T, sink *diagnostics.Sink) {
	t.Helper()
	if got := sink.Diagnostics(); len(got) != 0 {
		t.Fatalf("expected no diagnostics, got %v", got)
	}
}

func expectOneDiagnostic(t *testing.T, sink *diagnostics.Sink, substr string) {
	t.Helper()
	got := sink.Diagnostics()
	if len(got) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", got)
	}
	if !strings.Contains(got[0].Message, substr) {
		t.Fatalf("expected diagnostic containing %q, got %q", substr, got[0].Message)
	}
}

func TestVarWithMatchingAnnotation(t *testing.T) {
	types, sink := analyzeSource(t, `var x: number = 1`)
	expectNoDiagnostics(t, sink)
	if got := ast.TypeToString(types[0]); got != "number" {
		t.Fatalf("top-level type = %q, want number", got)
	}
}

func TestVarWithMismatchedAnnotation(t *testing.T) {
	_, sink := analyzeSource(t, `var x: number = "hi"`)
	expectOneDiagnostic(t, sink, "Cannot assign initialiser of type 'string' to variable with declared type 'number'.")
}

func TestTypeAliasAndObjectLiteral(t *testing.T) {
	types, sink := analyzeSource(t, `type P = { x: number, y: number }; var p: P = { x: 1, y: 2 }`)
	expectNoDiagnostics(t, sink)
	if got := ast.TypeToString(types[1]); got != "{ x: number, y: number }" {
		t.Fatalf("var type = %q", got)
	}
}

func TestGenericInference(t *testing.T) {
	types, sink := analyzeSource(t, `var id = function <T>(x: T): T { return x }; id(1)`)
	expectNoDiagnostics(t, sink)
	if got := ast.TypeToString(types[1]); got != "number" {
		t.Fatalf("call result type = %q, want number", got)
	}
}

func TestReturnTypeMismatch(t *testing.T) {
	_, sink := analyzeSource(t, `var f = function (x: number): string { return x }`)
	expectOneDiagnostic(t, sink, "Returned type 'number' does not match declared return type 'string'.")
}

func TestCallArgumentMismatch(t *testing.T) {
	_, sink := analyzeSource(t, `var f = function (x: number): number { return x }; f("hi")`)
	expectOneDiagnostic(t, sink, "Expected argument of type 'number', but got 'string'.")
}

func TestRedeclarationReportsOnce(t *testing.T) {
	_, sink := analyzeSource(t, `var x = 1; var x = 2`)
	got := sink.Diagnostics()
	if len(got) != 1 {
		t.Fatalf("expected exactly one redeclaration diagnostic, got %v", got)
	}
}

func TestUnresolvedIdentifier(t *testing.T) {
	_, sink := analyzeSource(t, `var x = y`)
	expectOneDiagnostic(t, sink, "Could not resolve y")
}

func TestCallingNonFunction(t *testing.T) {
	_, sink := analyzeSource(t, `var x = 1; x()`)
	expectOneDiagnostic(t, sink, "Cannot call expression of type 'number'.")
}

func TestArityMismatch(t *testing.T) {
	_, sink := analyzeSource(t, `var f = function (x: number): number { return x }; f(1, 2)`)
	expectOneDiagnostic(t, sink, "Expected 1 arguments, but got 2.")
}

func TestErrorTypeAbsorbsAssignability(t *testing.T) {
	_, sink := analyzeSource(t, `var x = 1; var y: P = x`)
	// P is unresolved, so its type is errorType; errorType absorbs any
	// assignment, so no secondary diagnostic beyond the unresolved type name.
	got := sink.Diagnostics()
	if len(got) != 1 || !strings.Contains(got[0].Message, "Could not resolve type P") {
		t.Fatalf("expected only the unresolved-type diagnostic, got %v", got)
	}
}

func TestCheckIsIdempotent(t *testing.T) {
	sink := diagnostics.NewSink()
	sc := scanner.New(`var x: number = 1`)
	p := parser.New(sc, sink)
	mod := p.ParseModule()
	binder.Bind(mod, sink)
	c := checker.New(sink)
	first := c.Check(mod)
	second := c.Check(mod)
	if ast.TypeToString(first[0]) != ast.TypeToString(second[0]) {
		t.Fatalf("check is not idempotent: %v vs %v", first, second)
	}
}
