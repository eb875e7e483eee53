package transform_test

import (
	"testing"

	"github.com/tyro-lang/tyro/internal/ast"
	"github.com/tyro-lang/tyro/internal/binder"
	"github.com/tyro-lang/tyro/internal/checker"
	"github.com/tyro-lang/tyro/internal/diagnostics"
	"github.com/tyro-lang/tyro/internal/parser"
	"github.com/tyro-lang/tyro/internal/scanner"
	"github.com/tyro-lang/tyro/internal/transform"
)

func checkedModule(t *testing.T, src string) *ast.Module {
	t.Helper()
	sink := diagnostics.NewSink()
	p := parser.New(scanner.New(src), sink)
	mod := p.ParseModule()
	binder.Bind(mod, sink)
	checker.New(sink).Check(mod)
	if len(sink.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
	return mod
}

func TestStripDropsTypeAlias(t *testing.T) {
	mod := checkedModule(t, `type P = number; var x: P = 1`)
	out := transform.Strip(mod)
	if len(out.Statements) != 1 {
		t.Fatalf("expected TypeAlias to be dropped, got %d statements", len(out.Statements))
	}
	if _, ok := out.Statements[0].(*ast.Var); !ok {
		t.Fatalf("remaining statement is %T, want *ast.Var", out.Statements[0])
	}
}

func TestStripClearsVarAnnotation(t *testing.T) {
	mod := checkedModule(t, `var x: number = 1`)
	out := transform.Strip(mod)
	v := out.Statements[0].(*ast.Var)
	if v.TypeName != nil {
		t.Fatal("Strip should clear Var.TypeName")
	}
}

func TestStripClearsParameterAndFunctionAnnotations(t *testing.T) {
	mod := checkedModule(t, `var f = function (x: number): number { return x }`)
	out := transform.Strip(mod)
	v := out.Statements[0].(*ast.Var)
	fn := v.Initializer.(*ast.Function)
	if fn.TypeName != nil {
		t.Fatal("Strip should clear Function.TypeName")
	}
	if fn.Parameters[0].TypeName != nil {
		t.Fatal("Strip should clear Parameter.TypeName")
	}
}
