package ast

// PropertyDeclaration is one `name: TYPE` field of an ObjectLiteralType.
type PropertyDeclaration struct {
	Base
	Name     *Identifier
	TypeName TypeNode // optional; absent means `any`
	Sym      *Symbol
}

func (p *PropertyDeclaration) Kind() Kind      { return KPropertyDeclaration }
func (p *PropertyDeclaration) typeNode()       {}
func (p *PropertyDeclaration) Symbol() *Symbol { return p.Sym }

// ObjectLiteralType is a structural object type annotation, `{ k: T, ... }`.
type ObjectLiteralType struct {
	Base
	Properties []*PropertyDeclaration
	Sym        *Symbol
}

func (o *ObjectLiteralType) Kind() Kind      { return KObjectLiteralType }
func (o *ObjectLiteralType) typeNode()       {}
func (o *ObjectLiteralType) Symbol() *Symbol { return o.Sym }

// Signature is a first-class function type annotation,
// `<T>(p: P) => R`.
type Signature struct {
	Base
	TypeParameters []*TypeParameter // optional
	Parameters     []*Parameter
	ReturnType     TypeNode
	Locals         *Table
	Sym            *Symbol
}

func (s *Signature) Kind() Kind      { return KSignature }
func (s *Signature) typeNode()       {}
func (s *Signature) Symbol() *Symbol { return s.Sym }
