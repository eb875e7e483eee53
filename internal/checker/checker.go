// Package checker implements the on-demand, memoised type computation of
// spec §4.2–§4.11: canonical primitives, name resolution, statement and
// expression dispatch, object/function type construction, generic call
// checking, instantiation, inference and structural assignability.
//
// Grounded on the teacher's internal/typesystem + internal/analyzer split,
// collapsed here into one package for the same import-cycle reason the
// internal/ast package documents: the checker's own state (a compile-scoped
// id counter, the four canonical types) is inseparable from the dispatch
// logic that produces and consumes them.
package checker

import (
	"github.com/tyro-lang/tyro/internal/ast"
	"github.com/tyro-lang/tyro/internal/diagnostics"
	"github.com/tyro-lang/tyro/internal/ice"
)

// Checker holds the state of one compile: a monotonic type-id counter (spec
// §5 "compile-scoped counter, not a global") and the four pre-allocated
// canonical primitives (spec §4.2).
type Checker struct {
	sink   *diagnostics.Sink
	nextID int

	stringType ast.Primitive
	numberType ast.Primitive
	errorType  ast.Primitive
	anyType    ast.Primitive
}

// New creates a Checker reporting into sink, with the four canonical
// primitives pre-allocated at distinct ids.
func New(sink *diagnostics.Sink) *Checker {
	c := &Checker{sink: sink}
	c.stringType = ast.Primitive{ID: c.newID(), Name: "string"}
	c.numberType = ast.Primitive{ID: c.newID(), Name: "number"}
	c.errorType = ast.Primitive{ID: c.newID(), Name: "error"}
	c.anyType = ast.Primitive{ID: c.newID(), Name: "any"}
	return c
}

func (c *Checker) newID() int {
	id := c.nextID
	c.nextID++
	return id
}

// Check computes the type of every top-level statement, in source order
// (spec §6's `check` entry point).
func (c *Checker) Check(m *ast.Module) []ast.Type {
	out := make([]ast.Type, 0, len(m.Statements))
	for _, s := range m.Statements {
		out = append(out, c.checkStatement(s))
	}
	return out
}

func (c *Checker) checkStatement(s ast.Statement) ast.Type {
	switch s := s.(type) {
	case *ast.ExpressionStatement:
		return c.checkExpression(s.Expr)
	case *ast.Var:
		i := c.checkExpression(s.Initializer)
		if s.TypeName == nil {
			return i
		}
		t := c.checkType(s.TypeName)
		if !c.isAssignableTo(i, t) {
			c.sink.Report(s.Initializer, diagnostics.ErrAssignVar,
				"Cannot assign initialiser of type '%s' to variable with declared type '%s'.",
				ast.TypeToString(i), ast.TypeToString(t))
		}
		return t
	case *ast.TypeAlias:
		return c.checkType(s.TypeName)
	case *ast.Return:
		return c.checkExpression(s.Expr)
	default:
		ice.Panic("checker: checkStatement: unknown statement kind %T", s)
		return nil
	}
}

func (c *Checker) checkExpression(e ast.Expression) ast.Type {
	switch e := e.(type) {
	case *ast.Identifier:
		sym, ok := c.resolve(e, e.Text, ast.Value)
		if !ok {
			c.sink.Report(e, diagnostics.ErrCannotResolve, "Could not resolve %s", e.Text)
			return c.errorType
		}
		return c.getValueTypeOfSymbol(sym)
	case *ast.NumericLiteral:
		return c.numberType
	case *ast.StringLiteral:
		return c.stringType
	case *ast.Object:
		return c.checkObject(e)
	case *ast.Assignment:
		v := c.checkExpression(e.Value)
		// Open Question #5 (SPEC_FULL.md §9): the name's type is obtained via
		// checkExpression, not by resolving its declaration directly.
		t := c.checkExpression(e.Name)
		if !c.isAssignableTo(v, t) {
			c.sink.Report(e.Name, diagnostics.ErrAssignName,
				"Cannot assign value of type '%s' to variable of type '%s'.",
				ast.TypeToString(v), ast.TypeToString(t))
		}
		return t
	case *ast.Function:
		return c.getValueTypeOfSymbol(e.Sym)
	case *ast.Call:
		return c.checkCall(e)
	default:
		ice.Panic("checker: checkExpression: unknown expression kind %T", e)
		return nil
	}
}

// checkType interprets a TypeNode as a Type (spec §4.6).
func (c *Checker) checkType(t ast.TypeNode) ast.Type {
	switch t := t.(type) {
	case *ast.Identifier:
		switch t.Text {
		case "string":
			return c.stringType
		case "number":
			return c.numberType
		}
		sym, ok := c.resolve(t, t.Text, ast.TypeMeaning)
		if !ok {
			c.sink.Report(t, diagnostics.ErrCannotResolveT, "Could not resolve type %s", t.Text)
			return c.errorType
		}
		return c.getTypeTypeOfSymbol(sym)
	case *ast.ObjectLiteralType:
		return c.checkObjectLiteralType(t)
	case *ast.Signature:
		return c.getTypeTypeOfSymbol(t.Sym)
	default:
		ice.Panic("checker: checkType: unknown type node kind %T", t)
		return nil
	}
}

// resolve implements spec §4.3: walk parent links outward from location,
// consulting each scope-owning node's table, first match wins.
func (c *Checker) resolve(location ast.Node, name string, meaning ast.Meaning) (*ast.Symbol, bool) {
	for n := location.Parent(); n != nil; n = n.Parent() {
		table := scopeTableOf(n)
		if table == nil {
			continue
		}
		if sym, ok := table.Get(name); ok && sym.HasMeaning(meaning) {
			return sym, true
		}
	}
	return nil, false
}

func scopeTableOf(n ast.Node) *ast.Table {
	switch n := n.(type) {
	case *ast.Module:
		return n.Locals
	case *ast.Function:
		return n.Locals
	case *ast.Signature:
		return n.Locals
	case *ast.Object:
		return n.Sym.Members
	case *ast.ObjectLiteralType:
		return n.Sym.Members
	default:
		return nil
	}
}

func (c *Checker) checkObject(obj *ast.Object) ast.Type {
	members := ast.NewTable()
	for _, pa := range obj.Properties {
		sym, ok := c.resolve(pa, pa.Name.Text, ast.Value)
		if !ok {
			ice.Panic("checker: checkObject: binder did not place a symbol for property %q", pa.Name.Text)
		}
		members.Set(pa.Name.Text, sym)
		c.getValueTypeOfSymbol(sym)
	}
	return ast.ObjectType{ID: c.newID(), Members: members}
}

func (c *Checker) checkObjectLiteralType(olt *ast.ObjectLiteralType) ast.Type {
	if olt.Sym.TypeType != nil {
		return olt.Sym.TypeType
	}
	members := ast.NewTable()
	for _, pd := range olt.Properties {
		sym, ok := c.resolve(pd, pd.Name.Text, ast.Value)
		if !ok {
			ice.Panic("checker: checkObjectLiteralType: binder did not place a symbol for property %q", pd.Name.Text)
		}
		members.Set(pd.Name.Text, sym)
		c.getValueTypeOfSymbol(sym)
	}
	t := ast.ObjectType{ID: c.newID(), Members: members}
	olt.Sym.TypeType = t
	return t
}
