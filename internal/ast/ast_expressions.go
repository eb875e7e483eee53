package ast

// Assignment is `NAME = VALUE`.
type Assignment struct {
	Base
	Name  *Identifier
	Value Expression
}

func (a *Assignment) Kind() Kind      { return KAssignment }
func (a *Assignment) expressionNode() {}

// PropertyAssignment is one `name: initializer` entry of an Object literal.
type PropertyAssignment struct {
	Base
	Name        *Identifier
	Initializer Expression
	Sym         *Symbol
}

func (p *PropertyAssignment) Kind() Kind      { return KPropertyAssignment }
func (p *PropertyAssignment) Symbol() *Symbol { return p.Sym }

// Object is an object literal `{ k: v, ... }`. Its own Sym.Members table is
// populated by the Binder with one entry per PropertyAssignment.
type Object struct {
	Base
	Properties []*PropertyAssignment
	Sym        *Symbol
}

func (o *Object) Kind() Kind      { return KObject }
func (o *Object) expressionNode() {}
func (o *Object) Symbol() *Symbol { return o.Sym }

// Parameter is one function/signature parameter.
type Parameter struct {
	Base
	Name     *Identifier
	TypeName TypeNode // optional
	Sym      *Symbol
}

func (p *Parameter) Kind() Kind      { return KParameter }
func (p *Parameter) Symbol() *Symbol { return p.Sym }

// TypeParameter is one `<T>` generic parameter.
type TypeParameter struct {
	Base
	Name *Identifier
	Sym  *Symbol
}

func (t *TypeParameter) Kind() Kind      { return KTypeParameter }
func (t *TypeParameter) Symbol() *Symbol { return t.Sym }

// Function is a (possibly anonymous) function expression/declaration.
type Function struct {
	Base
	Name           *Identifier // optional
	TypeParameters []*TypeParameter
	Parameters     []*Parameter
	TypeName       TypeNode // optional declared return type
	Body           []Statement
	Locals         *Table
	Sym            *Symbol
}

func (f *Function) Kind() Kind      { return KFunction }
func (f *Function) expressionNode() {}
func (f *Function) Symbol() *Symbol { return f.Sym }

// Call is `EXPR<TARGS>(ARGS)`.
type Call struct {
	Base
	Callee        Expression
	TypeArguments []TypeNode // optional, explicit type arguments
	Arguments     []Expression
}

func (c *Call) Kind() Kind      { return KCall }
func (c *Call) expressionNode() {}
