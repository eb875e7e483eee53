// Package binder implements the single pre-order pass of spec §4.1: it sets
// parent links on every node, populates each scope's symbol table, and
// classifies every declaration as carrying Value or Type meaning (or both,
// for distinct declarations of the same name).
//
// Grounded on the teacher's internal/analyzer walker, which drives a single
// recursive descent over the parsed tree and writes results back onto the
// nodes it visits rather than building a separate side table.
package binder

import (
	"github.com/tyro-lang/tyro/internal/ast"
	"github.com/tyro-lang/tyro/internal/diagnostics"
	"github.com/tyro-lang/tyro/internal/ice"
)

// Bind runs the binder over module, attaching parents, symbols and scope
// tables, and reporting redeclarations into sink.
func Bind(module *ast.Module, sink *diagnostics.Sink) {
	b := &binder{sink: sink}
	b.bindModule(module)
}

type binder struct {
	sink *diagnostics.Sink
}

func (b *binder) bindModule(m *ast.Module) {
	for _, stmt := range m.Statements {
		b.bindStatement(stmt, m, m.Locals)
	}
}

// declareSymbol implements spec §4.1's declareSymbol(container, declaration,
// meaning) contract. setSym writes the resulting symbol back onto the
// concrete declaration node (the one exported mutable field that varies by
// node type).
func (b *binder) declareSymbol(container *ast.Table, decl ast.Node, name string, meaning ast.Meaning, setSym func(*ast.Symbol)) {
	if existing, ok := container.Get(name); ok {
		if existing.HasMeaning(meaning) {
			first := existing.Declarations[0]
			b.sink.Report(decl, diagnostics.ErrRedeclare, "Cannot redeclare %s; first declared at %s", name, first.Pos())
			existing.Declarations = append(existing.Declarations, decl)
			setSym(existing)
			return
		}
		existing.Declarations = append(existing.Declarations, decl)
		if meaning == ast.Value && existing.ValueDeclaration == nil {
			existing.ValueDeclaration = decl
		}
		setSym(existing)
		return
	}
	sym := &ast.Symbol{Name: name, Declarations: []ast.Node{decl}}
	if meaning == ast.Value {
		sym.ValueDeclaration = decl
	}
	container.Set(name, sym)
	setSym(sym)
}

func (b *binder) bindStatement(s ast.Statement, parent ast.Node, container *ast.Table) {
	s.SetParent(parent)
	switch s := s.(type) {
	case *ast.Var:
		b.declareSymbol(container, s, s.Name.Text, ast.Value, func(sym *ast.Symbol) { s.Sym = sym })
		s.Name.SetParent(s)
		if s.TypeName != nil {
			b.bindTypeNode(s.TypeName, s)
		}
		b.bindExpression(s.Initializer, s)
	case *ast.TypeAlias:
		b.declareSymbol(container, s, s.Name.Text, ast.TypeMeaning, func(sym *ast.Symbol) { s.Sym = sym })
		s.Name.SetParent(s)
		b.bindTypeNode(s.TypeName, s)
	case *ast.ExpressionStatement:
		b.bindExpression(s.Expr, s)
	case *ast.Return:
		b.bindExpression(s.Expr, s)
	default:
		ice.Panic("binder: unknown statement kind %T", s)
	}
}

func (b *binder) bindExpression(e ast.Expression, parent ast.Node) {
	e.SetParent(parent)
	switch e := e.(type) {
	case *ast.Identifier:
		// leaf: resolved by the checker, not the binder.
	case *ast.NumericLiteral:
		// leaf
	case *ast.StringLiteral:
		// leaf
	case *ast.Assignment:
		e.Name.SetParent(e)
		b.bindExpression(e.Value, e)
	case *ast.Object:
		b.bindObject(e)
	case *ast.Function:
		b.bindFunction(e)
	case *ast.Call:
		b.bindExpression(e.Callee, e)
		for _, ta := range e.TypeArguments {
			b.bindTypeNode(ta, e)
		}
		for _, arg := range e.Arguments {
			b.bindExpression(arg, e)
		}
	default:
		ice.Panic("binder: unknown expression kind %T", e)
	}
}

func (b *binder) bindObject(o *ast.Object) {
	o.Sym = &ast.Symbol{Name: "__object", Members: ast.NewTable()}
	for _, pa := range o.Properties {
		pa.SetParent(o)
		b.declareSymbol(o.Sym.Members, pa, pa.Name.Text, ast.Value, func(sym *ast.Symbol) { pa.Sym = sym })
		pa.Name.SetParent(pa)
		b.bindExpression(pa.Initializer, pa)
	}
}

func (b *binder) bindFunction(f *ast.Function) {
	// A bare Function expression is never inserted into a scope table (spec
	// §4.1); it still needs its own symbol so getValueTypeOfSymbol has
	// somewhere to cache the computed Function type.
	f.Sym = &ast.Symbol{Name: "__function", Declarations: []ast.Node{f}, ValueDeclaration: f}
	if f.Name != nil {
		f.Name.SetParent(f)
	}
	for _, tp := range f.TypeParameters {
		tp.SetParent(f)
		b.declareSymbol(f.Locals, tp, tp.Name.Text, ast.TypeMeaning, func(sym *ast.Symbol) { tp.Sym = sym })
		tp.Name.SetParent(tp)
	}
	for _, p := range f.Parameters {
		p.SetParent(f)
		b.declareSymbol(f.Locals, p, p.Name.Text, ast.Value, func(sym *ast.Symbol) { p.Sym = sym })
		p.Name.SetParent(p)
		if p.TypeName != nil {
			b.bindTypeNode(p.TypeName, p)
		}
	}
	if f.TypeName != nil {
		b.bindTypeNode(f.TypeName, f)
	}
	for _, stmt := range f.Body {
		b.bindStatement(stmt, f, f.Locals)
	}
}

func (b *binder) bindTypeNode(t ast.TypeNode, parent ast.Node) {
	t.SetParent(parent)
	switch t := t.(type) {
	case *ast.Identifier:
		// leaf
	case *ast.ObjectLiteralType:
		b.bindObjectLiteralType(t)
	case *ast.Signature:
		b.bindSignature(t)
	default:
		ice.Panic("binder: unknown type node kind %T", t)
	}
}

func (b *binder) bindObjectLiteralType(o *ast.ObjectLiteralType) {
	o.Sym = &ast.Symbol{Name: "__object", Members: ast.NewTable()}
	for _, pd := range o.Properties {
		pd.SetParent(o)
		b.declareSymbol(o.Sym.Members, pd, pd.Name.Text, ast.Value, func(sym *ast.Symbol) { pd.Sym = sym })
		pd.Name.SetParent(pd)
		if pd.TypeName != nil {
			b.bindTypeNode(pd.TypeName, pd)
		}
	}
}

func (b *binder) bindSignature(s *ast.Signature) {
	s.Sym = &ast.Symbol{Name: "__signature", Declarations: []ast.Node{s}}
	for _, tp := range s.TypeParameters {
		tp.SetParent(s)
		b.declareSymbol(s.Locals, tp, tp.Name.Text, ast.TypeMeaning, func(sym *ast.Symbol) { tp.Sym = sym })
		tp.Name.SetParent(tp)
	}
	for _, p := range s.Parameters {
		p.SetParent(s)
		b.declareSymbol(s.Locals, p, p.Name.Text, ast.Value, func(sym *ast.Symbol) { p.Sym = sym })
		p.Name.SetParent(p)
		if p.TypeName != nil {
			b.bindTypeNode(p.TypeName, p)
		}
	}
	b.bindTypeNode(s.ReturnType, s)
}
