package checker

import "github.com/tyro-lang/tyro/internal/ast"

// inferTypeArguments implements spec §4.9. Only the first inference
// collected per type parameter is used (Open Question #3, SPEC_FULL.md §9:
// preserved as-is); a type parameter with no collected candidate falls back
// to anyType rather than leaving it unset.
func (c *Checker) inferTypeArguments(typeParameters []ast.TypeVariable, sig *ast.SignatureType, argTypes []ast.Type) []ast.Type {
	inferences := make(map[int][]ast.Type, len(typeParameters))

	n := len(sig.Parameters)
	if len(argTypes) < n {
		n = len(argTypes)
	}
	for i := 0; i < n; i++ {
		pt := c.getValueTypeOfSymbol(sig.Parameters[i])
		c.inferType(argTypes[i], pt, inferences)
	}

	result := make([]ast.Type, len(typeParameters))
	for i, tv := range typeParameters {
		if cands := inferences[tv.ID]; len(cands) > 0 {
			result[i] = cands[0]
		} else {
			result[i] = c.anyType
		}
	}
	return result
}

// inferType implements spec §4.9's structural recursion. Only Function and
// TypeVariable target positions contribute inferences (Open Question #2,
// SPEC_FULL.md §9: preserved as-is — no structural inference into Object or
// Primitive targets).
func (c *Checker) inferType(source, target ast.Type, inferences map[int][]ast.Type) {
	switch t := target.(type) {
	case ast.TypeVariable:
		inferences[t.ID] = append(inferences[t.ID], source)
	case ast.FunctionType:
		sf, ok := source.(ast.FunctionType)
		if !ok {
			return
		}
		n := len(t.Sig.Parameters)
		if len(sf.Sig.Parameters) < n {
			n = len(sf.Sig.Parameters)
		}
		for i := 0; i < n; i++ {
			c.inferType(c.getValueTypeOfSymbol(sf.Sig.Parameters[i]), c.getValueTypeOfSymbol(t.Sig.Parameters[i]), inferences)
		}
		c.inferType(sf.Sig.ReturnType, t.Sig.ReturnType, inferences)

		ntp := len(t.Sig.TypeParameters)
		if len(sf.Sig.TypeParameters) < ntp {
			ntp = len(sf.Sig.TypeParameters)
		}
		for i := 0; i < ntp; i++ {
			c.inferType(c.getTypeTypeOfSymbol(sf.Sig.TypeParameters[i]), c.getTypeTypeOfSymbol(t.Sig.TypeParameters[i]), inferences)
		}
	default:
		// Object/Primitive targets: no inference recorded.
	}
}
