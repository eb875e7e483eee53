package binder_test

import (
	"testing"

	"github.com/tyro-lang/tyro/internal/ast"
	"github.com/tyro-lang/tyro/internal/binder"
	"github.com/tyro-lang/tyro/internal/diagnostics"
	"github.com/tyro-lang/tyro/internal/parser"
	"github.com/tyro-lang/tyro/internal/scanner"
)

func parseAndBind(t *testing.T, src string) (*ast.Module, *diagnostics.Sink) {
	t.Helper()
	sink := diagnostics.NewSink()
	p := parser.New(scanner.New(src), sink)
	mod := p.ParseModule()
	binder.Bind(mod, sink)
	return mod, sink
}

func TestVarGetsSymbolAndParent(t *testing.T) {
	mod, sink := parseAndBind(t, `var x = 1`)
	if len(sink.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
	v, ok := mod.Statements[0].(*ast.Var)
	if !ok {
		t.Fatalf("statement 0 is %T, want *ast.Var", mod.Statements[0])
	}
	if v.Sym == nil {
		t.Fatal("var declaration has no symbol after binding")
	}
	if v.Sym.ValueDeclaration != v {
		t.Fatal("var symbol's ValueDeclaration does not point back to the Var node")
	}
	if v.Parent() != mod {
		t.Fatal("var's parent is not the module")
	}
	if v.Initializer.Parent() != ast.Node(v) {
		t.Fatal("initializer's parent is not the Var node")
	}
}

func TestRedeclarationIsNonFatalAndReportedOnce(t *testing.T) {
	mod, sink := parseAndBind(t, `var x = 1; var x = 2`)
	got := sink.Diagnostics()
	if len(got) != 1 {
		t.Fatalf("expected one redeclaration diagnostic, got %v", got)
	}
	second := mod.Statements[1].(*ast.Var)
	if second.Sym == nil {
		t.Fatal("redeclared Var still needs a symbol attached")
	}
	found := false
	for _, d := range second.Sym.Declarations {
		if d == ast.Node(second) {
			found = true
		}
	}
	if !found {
		t.Fatal("second Var node is not present in its own symbol's Declarations")
	}
}

func TestValueAndTypeMeaningsCoexist(t *testing.T) {
	// "P" as a type alias and "P" as a value do not collide: distinct
	// meanings in the same table are both kept.
	mod, sink := parseAndBind(t, `type P = number; var P = 1`)
	if len(sink.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
	alias := mod.Statements[0].(*ast.TypeAlias)
	v := mod.Statements[1].(*ast.Var)
	if alias.Sym != v.Sym {
		t.Fatal("same-name Type and Value declarations should share one symbol")
	}
	if !alias.Sym.HasMeaning(ast.TypeMeaning) || !alias.Sym.HasMeaning(ast.Value) {
		t.Fatal("shared symbol should carry both meanings")
	}
}

func TestFunctionParametersScopeToTheirOwnFunction(t *testing.T) {
	mod, sink := parseAndBind(t, `var f = function (x: number): number { return x }`)
	if len(sink.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
	v := mod.Statements[0].(*ast.Var)
	fn := v.Initializer.(*ast.Function)
	if fn.Locals.Len() != 1 {
		t.Fatalf("function locals should contain exactly the 1 parameter, got %d", fn.Locals.Len())
	}
	param := fn.Parameters[0]
	if param.Sym == nil || param.Parent() != ast.Node(fn) {
		t.Fatal("parameter is missing its symbol or its parent")
	}
}
