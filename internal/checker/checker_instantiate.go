package checker

import (
	"github.com/tyro-lang/tyro/internal/ast"
	"github.com/tyro-lang/tyro/internal/ice"
)

// instantiateType implements spec §4.8. No instantiation result is cached;
// every call allocates fresh ids, so two instantiations of the same generic
// type with the same arguments are distinct types.
func (c *Checker) instantiateType(t ast.Type, mapper *ast.Mapper) ast.Type {
	switch t := t.(type) {
	case ast.Primitive:
		return t
	case ast.FunctionType:
		return ast.FunctionType{ID: c.newID(), Sig: c.instantiateSignature(t.Sig, mapper)}
	case ast.ObjectType:
		members := ast.NewTable()
		for _, name := range t.Members.Names() {
			m, _ := t.Members.Get(name)
			members.Set(name, c.instantiateSymbol(m, mapper))
		}
		return ast.ObjectType{ID: c.newID(), Members: members}
	case ast.TypeVariable:
		if target, ok := mapper.Lookup(t); ok {
			return target
		}
		return t
	default:
		ice.Panic("checker: instantiateType: unknown type kind %T", t)
		return nil
	}
}

func (c *Checker) instantiateSignature(sig *ast.SignatureType, mapper *ast.Mapper) *ast.SignatureType {
	params := make([]*ast.Symbol, len(sig.Parameters))
	for i, p := range sig.Parameters {
		params[i] = c.instantiateSymbol(p, mapper)
	}
	return &ast.SignatureType{
		Parameters: params,
		ReturnType: c.instantiateType(sig.ReturnType, mapper),
		Target:     sig,
		Mapper:     mapper,
	}
}

// instantiateSymbol produces a symbol that delegates to sym through mapper.
// Its ValueType/TypeType are left unset; getValueTypeOfSymbol/
// getTypeTypeOfSymbol materialise them lazily through sym.Target.
func (c *Checker) instantiateSymbol(sym *ast.Symbol, mapper *ast.Mapper) *ast.Symbol {
	return &ast.Symbol{
		Name:             sym.Name,
		Declarations:     sym.Declarations,
		ValueDeclaration: sym.ValueDeclaration,
		Target:           sym,
		Mapper:           mapper,
	}
}
