// Package transform strips type information from a checked AST before it
// reaches the emitter (spec §6 downstream contract): Var/Parameter/Function
// typename fields, Function type parameters and Call type arguments are
// cleared, TypeAlias statements are dropped entirely, and everything else is
// preserved.
package transform

import "github.com/tyro-lang/tyro/internal/ast"

// Strip returns a new Module with every typename annotation removed and
// every TypeAlias statement dropped. The input module's nodes are copied,
// not mutated, so a caller holding the checked tree is unaffected.
func Strip(m *ast.Module) *ast.Module {
	out := ast.NewModule(m.Pos())
	for _, s := range m.Statements {
		if stripped := stripStatement(s); stripped != nil {
			out.Statements = append(out.Statements, stripped)
		}
	}
	return out
}

func stripStatement(s ast.Statement) ast.Statement {
	switch s := s.(type) {
	case *ast.TypeAlias:
		return nil
	case *ast.Var:
		cp := *s
		cp.TypeName = nil
		cp.Initializer = stripExpression(s.Initializer)
		return &cp
	case *ast.ExpressionStatement:
		cp := *s
		cp.Expr = stripExpression(s.Expr)
		return &cp
	case *ast.Return:
		cp := *s
		cp.Expr = stripExpression(s.Expr)
		return &cp
	default:
		return s
	}
}

func stripExpression(e ast.Expression) ast.Expression {
	switch e := e.(type) {
	case *ast.Function:
		cp := *e
		cp.TypeParameters = nil
		cp.TypeName = nil
		cp.Parameters = make([]*ast.Parameter, len(e.Parameters))
		for i, p := range e.Parameters {
			pc := *p
			pc.TypeName = nil
			cp.Parameters[i] = &pc
		}
		cp.Body = make([]ast.Statement, 0, len(e.Body))
		for _, stmt := range e.Body {
			if stripped := stripStatement(stmt); stripped != nil {
				cp.Body = append(cp.Body, stripped)
			}
		}
		return &cp
	case *ast.Object:
		cp := *e
		cp.Properties = make([]*ast.PropertyAssignment, len(e.Properties))
		for i, pa := range e.Properties {
			pac := *pa
			pac.Initializer = stripExpression(pa.Initializer)
			cp.Properties[i] = &pac
		}
		return &cp
	case *ast.Assignment:
		cp := *e
		cp.Value = stripExpression(e.Value)
		return &cp
	case *ast.Call:
		cp := *e
		cp.Callee = stripExpression(e.Callee)
		cp.TypeArguments = nil
		cp.Arguments = make([]ast.Expression, len(e.Arguments))
		for i, a := range e.Arguments {
			cp.Arguments[i] = stripExpression(a)
		}
		return &cp
	default:
		return e
	}
}
