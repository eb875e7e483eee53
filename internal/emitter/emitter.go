// Package emitter serialises a transformed (type-stripped) AST back to
// source text, per spec §6's exact render rules.
package emitter

import (
	"strings"

	"github.com/tyro-lang/tyro/internal/ast"
	"github.com/tyro-lang/tyro/internal/ice"
)

// Emit renders m as Tyro source text.
func Emit(m *ast.Module) string {
	parts := make([]string, 0, len(m.Statements))
	for _, s := range m.Statements {
		parts = append(parts, emitStatement(s))
	}
	return strings.Join(parts, ";\n")
}

func emitStatement(s ast.Statement) string {
	switch s := s.(type) {
	case *ast.Var:
		return "var " + s.Name.Text + " = " + emitExpression(s.Initializer)
	case *ast.ExpressionStatement:
		return emitExpression(s.Expr)
	case *ast.Return:
		return "return " + emitExpression(s.Expr)
	default:
		ice.Panic("emitter: emitStatement: unknown statement kind %T", s)
		return ""
	}
}

func emitExpression(e ast.Expression) string {
	switch e := e.(type) {
	case *ast.Identifier:
		return e.Text
	case *ast.NumericLiteral:
		return e.Text
	case *ast.StringLiteral:
		return `"` + e.Text + `"`
	case *ast.Assignment:
		return e.Name.Text + " = " + emitExpression(e.Value)
	case *ast.Object:
		props := make([]string, 0, len(e.Properties))
		for _, pa := range e.Properties {
			props = append(props, pa.Name.Text+": "+emitExpression(pa.Initializer))
		}
		return "{ " + strings.Join(props, ", ") + " }"
	case *ast.Function:
		return emitFunction(e)
	case *ast.Call:
		args := make([]string, 0, len(e.Arguments))
		for _, a := range e.Arguments {
			args = append(args, emitExpression(a))
		}
		return emitExpression(e.Callee) + "(" + strings.Join(args, ", ") + ")"
	default:
		ice.Panic("emitter: emitExpression: unknown expression kind %T", e)
		return ""
	}
}

func emitFunction(f *ast.Function) string {
	var b strings.Builder
	b.WriteString("function ")
	if f.Name != nil {
		b.WriteString(f.Name.Text)
	}
	params := make([]string, 0, len(f.Parameters))
	for _, p := range f.Parameters {
		params = append(params, p.Name.Text)
	}
	b.WriteString("(" + strings.Join(params, ", ") + ") { ")
	for i, stmt := range f.Body {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(emitStatement(stmt))
	}
	b.WriteString(" }")
	return b.String()
}
