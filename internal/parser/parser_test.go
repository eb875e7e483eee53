package parser_test

import (
	"testing"

	"github.com/tyro-lang/tyro/internal/ast"
	"github.com/tyro-lang/tyro/internal/diagnostics"
	"github.com/tyro-lang/tyro/internal/parser"
	"github.com/tyro-lang/tyro/internal/scanner"
)

func parse(t *testing.T, src string) (*ast.Module, *diagnostics.Sink) {
	t.Helper()
	sink := diagnostics.NewSink()
	p := parser.New(scanner.New(src), sink)
	return p.ParseModule(), sink
}

func TestParseVarWithAnnotation(t *testing.T) {
	mod, sink := parse(t, `var x: number = 1`)
	if len(sink.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
	if len(mod.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(mod.Statements))
	}
	v, ok := mod.Statements[0].(*ast.Var)
	if !ok {
		t.Fatalf("statement is %T, want *ast.Var", mod.Statements[0])
	}
	if v.Name.Text != "x" {
		t.Fatalf("var name = %q", v.Name.Text)
	}
	if _, ok := v.TypeName.(*ast.Identifier); !ok {
		t.Fatalf("var typename is %T, want *ast.Identifier", v.TypeName)
	}
	if n, ok := v.Initializer.(*ast.NumericLiteral); !ok || n.Text != "1" {
		t.Fatalf("var initializer = %#v", v.Initializer)
	}
}

func TestParseGenericCall(t *testing.T) {
	mod, sink := parse(t, `id<number>(1)`)
	if len(sink.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
	es := mod.Statements[0].(*ast.ExpressionStatement)
	call := es.Expr.(*ast.Call)
	if len(call.TypeArguments) != 1 {
		t.Fatalf("expected 1 type argument, got %d", len(call.TypeArguments))
	}
	if len(call.Arguments) != 1 {
		t.Fatalf("expected 1 argument, got %d", len(call.Arguments))
	}
}

func TestParseFunctionExpression(t *testing.T) {
	mod, sink := parse(t, `var f = function <T>(x: T): T { return x }`)
	if len(sink.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
	v := mod.Statements[0].(*ast.Var)
	fn := v.Initializer.(*ast.Function)
	if len(fn.TypeParameters) != 1 || fn.TypeParameters[0].Name.Text != "T" {
		t.Fatalf("type parameters = %#v", fn.TypeParameters)
	}
	if len(fn.Parameters) != 1 || fn.Parameters[0].Name.Text != "x" {
		t.Fatalf("parameters = %#v", fn.Parameters)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Body))
	}
}

func TestParseObjectLiteralType(t *testing.T) {
	mod, sink := parse(t, `type P = { x: number, y: number }`)
	if len(sink.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
	ta := mod.Statements[0].(*ast.TypeAlias)
	olt := ta.TypeName.(*ast.ObjectLiteralType)
	if len(olt.Properties) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(olt.Properties))
	}
}

func TestParseRecoversFromUnexpectedToken(t *testing.T) {
	// The parser skips the stray semicolon rather than aborting the whole
	// module.
	mod, sink := parse(t, `var x = 1; ; var y = 2`)
	if len(mod.Statements) != 2 {
		t.Fatalf("expected 2 statements despite the stray semicolon, got %d", len(mod.Statements))
	}
	_ = sink
}
