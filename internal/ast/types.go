package ast

import (
	"fmt"
	"strings"
)

// Type is the interface satisfied by all four kinds of the spec's type
// universe: Primitive, Object, Function, TypeVariable (spec §3/§4.2).
type Type interface {
	TypeID() int
	isType()
}

// Primitive is one of the four canonical primitives: string, number,
// error, any. Primitives are pre-allocated once per compile (spec §4.2).
type Primitive struct {
	ID   int
	Name string
}

func (p Primitive) TypeID() int { return p.ID }
func (Primitive) isType()       {}

// ObjectType is a structural record type. Object types are never cached: two
// syntactically identical object literals produce distinct type ids (spec
// §4.5).
type ObjectType struct {
	ID      int
	Members *Table
}

func (o ObjectType) TypeID() int { return o.ID }
func (ObjectType) isType()       {}

// FunctionType carries a SignatureType (spec §3).
type FunctionType struct {
	ID  int
	Sig *SignatureType
}

func (f FunctionType) TypeID() int { return f.ID }
func (FunctionType) isType()       {}

// TypeVariable stands for a not-yet-substituted generic parameter.
type TypeVariable struct {
	ID   int
	Name string
}

func (t TypeVariable) TypeID() int { return t.ID }
func (TypeVariable) isType()       {}

// SignatureType is a function's parametric description (spec §3). Parameters
// and type parameters are Symbols (not bare Types) so the Checker can
// memoise their individually-computed types and so instantiateSignature can
// produce fresh instantiated Symbols per spec §4.8.
type SignatureType struct {
	TypeParameters []*Symbol // nil for a non-generic signature
	Parameters     []*Symbol
	ReturnType     Type
	Target         *SignatureType // set on instantiated signatures
	Mapper         *Mapper
}

// Mapper is a parallel pair of TypeVariable -> Type substitutions (spec
// §3). Substitution is by pointer identity on the TypeVariable value's
// origin, compared here by matching IDs, which are unique per compile.
type Mapper struct {
	Sources []TypeVariable
	Targets []Type
}

// Lookup returns the substitution target for tv, if any.
func (m *Mapper) Lookup(tv TypeVariable) (Type, bool) {
	if m == nil {
		return nil, false
	}
	for i, src := range m.Sources {
		if src.ID == tv.ID {
			return m.Targets[i], true
		}
	}
	return nil, false
}

// TypeToString renders a type for diagnostics (spec §4.2).
func TypeToString(t Type) string {
	switch tt := t.(type) {
	case Primitive:
		return tt.Name
	case ObjectType:
		parts := make([]string, 0, tt.Members.Len())
		for _, name := range tt.Members.Names() {
			m, _ := tt.Members.Get(name)
			parts = append(parts, fmt.Sprintf("%s: %s", name, TypeToString(m.ValueType)))
		}
		return fmt.Sprintf("{ %s }", strings.Join(parts, ", "))
	case FunctionType:
		params := make([]string, 0, len(tt.Sig.Parameters))
		for _, p := range tt.Sig.Parameters {
			params = append(params, fmt.Sprintf("%s: %s", p.Name, TypeToString(p.ValueType)))
		}
		return fmt.Sprintf("(%s) => %s", strings.Join(params, ", "), TypeToString(tt.Sig.ReturnType))
	case TypeVariable:
		return tt.Name
	default:
		return "?"
	}
}
