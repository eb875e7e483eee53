// Package ast defines the tagged, mutually-recursive node/symbol/type model
// the binder and checker operate on (spec §3). AST, Symbol and Type are
// declared together in one package because they are mutually referential by
// design — a declaration node carries a *Symbol, a Symbol carries cached
// *Type values, a function Type's Signature carries parameter *Symbol
// values — and Go forbids the import cycle that splitting them across
// packages would otherwise require. The fused single-package style is
// grounded on krux02-golem's typedastnodes.go, which keeps its checked AST,
// symbols and types in one package for the same reason.
package ast

import "github.com/tyro-lang/tyro/internal/token"

// Kind tags every node with its variant. The binder and checker do not
// consult it: they dispatch with type switches on the concrete node types.
type Kind int

const (
	KModule Kind = iota
	KVar
	KTypeAlias
	KExpressionStatement
	KReturn
	KIdentifier
	KNumericLiteral
	KStringLiteral
	KAssignment
	KObject
	KPropertyAssignment
	KFunction
	KParameter
	KTypeParameter
	KCall
	KObjectLiteralType
	KPropertyDeclaration
	KSignature
)

func (k Kind) String() string {
	switch k {
	case KModule:
		return "Module"
	case KVar:
		return "Var"
	case KTypeAlias:
		return "TypeAlias"
	case KExpressionStatement:
		return "ExpressionStatement"
	case KReturn:
		return "Return"
	case KIdentifier:
		return "Identifier"
	case KNumericLiteral:
		return "NumericLiteral"
	case KStringLiteral:
		return "StringLiteral"
	case KAssignment:
		return "Assignment"
	case KObject:
		return "Object"
	case KPropertyAssignment:
		return "PropertyAssignment"
	case KFunction:
		return "Function"
	case KParameter:
		return "Parameter"
	case KTypeParameter:
		return "TypeParameter"
	case KCall:
		return "Call"
	case KObjectLiteralType:
		return "ObjectLiteralType"
	case KPropertyDeclaration:
		return "PropertyDeclaration"
	case KSignature:
		return "Signature"
	default:
		return "Unknown"
	}
}

// Node is the base interface implemented by every AST node.
type Node interface {
	Kind() Kind
	Pos() token.Pos
	Parent() Node
	SetParent(Node)
}

// Statement is a Node appearing in a statement list (Module body, Function
// body).
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node appearing in value position.
type Expression interface {
	Node
	expressionNode()
}

// TypeNode is a Node appearing in type position.
type TypeNode interface {
	Node
	typeNode()
}

// Base is embedded by every concrete node to supply Pos/Parent plumbing.
type Base struct {
	NodePos    token.Pos
	parentNode Node
}

func (b *Base) Pos() token.Pos   { return b.NodePos }
func (b *Base) Parent() Node     { return b.parentNode }
func (b *Base) SetParent(n Node) { b.parentNode = n }

// Module is the root of every AST the parser produces.
type Module struct {
	Base
	Statements []Statement
	Locals     *Table
}

func NewModule(pos token.Pos) *Module {
	return &Module{Base: Base{NodePos: pos}, Locals: NewTable()}
}

func (m *Module) Kind() Kind { return KModule }

// Var is `var NAME [: TYPE] = INIT`.
type Var struct {
	Base
	Name        *Identifier
	TypeName    TypeNode // optional
	Initializer Expression
	Sym         *Symbol
}

func (v *Var) Kind() Kind      { return KVar }
func (v *Var) statementNode()  {}
func (v *Var) Symbol() *Symbol { return v.Sym }

// TypeAlias is `type NAME = TYPE`.
type TypeAlias struct {
	Base
	Name     *Identifier
	TypeName TypeNode
	Sym      *Symbol
}

func (t *TypeAlias) Kind() Kind      { return KTypeAlias }
func (t *TypeAlias) statementNode()  {}
func (t *TypeAlias) Symbol() *Symbol { return t.Sym }

// ExpressionStatement wraps an expression used as a statement.
type ExpressionStatement struct {
	Base
	Expr Expression
}

func (e *ExpressionStatement) Kind() Kind     { return KExpressionStatement }
func (e *ExpressionStatement) statementNode() {}

// Return is `return EXPR`.
type Return struct {
	Base
	Expr Expression
}

func (r *Return) Kind() Kind     { return KReturn }
func (r *Return) statementNode() {}

// Identifier names a value (Expression position) or a type (TypeNode
// position); which meaning applies depends on where it appears.
type Identifier struct {
	Base
	Text string
}

func NewIdentifier(pos token.Pos, text string) *Identifier {
	return &Identifier{Base: Base{NodePos: pos}, Text: text}
}

func (i *Identifier) Kind() Kind      { return KIdentifier }
func (i *Identifier) expressionNode() {}
func (i *Identifier) typeNode()       {}

// NumericLiteral is a decimal-digit literal.
type NumericLiteral struct {
	Base
	Text string
}

func (n *NumericLiteral) Kind() Kind      { return KNumericLiteral }
func (n *NumericLiteral) expressionNode() {}

// StringLiteral is a double-quoted literal.
type StringLiteral struct {
	Base
	Text string
}

func (s *StringLiteral) Kind() Kind      { return KStringLiteral }
func (s *StringLiteral) expressionNode() {}
