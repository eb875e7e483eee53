package checker

import "github.com/tyro-lang/tyro/internal/ast"

// isAssignableTo implements spec §4.11's structural assignability: fixed
// variance (contravariant parameters, covariant returns), reflexive,
// any/error act as absorbers on both sides (Open Question #4, SPEC_FULL.md
// §9: preserved as-is, no bivariant escape hatch).
func (c *Checker) isAssignableTo(source, target ast.Type) bool {
	if source.TypeID() == target.TypeID() {
		return true
	}
	if c.isAnyOrError(source) || c.isAnyOrError(target) {
		return true
	}

	sp, sIsPrim := source.(ast.Primitive)
	tp, tIsPrim := target.(ast.Primitive)
	if sIsPrim || tIsPrim {
		return sIsPrim && tIsPrim && sp.TypeID() == tp.TypeID()
	}

	so, sIsObj := source.(ast.ObjectType)
	to, tIsObj := target.(ast.ObjectType)
	if sIsObj && tIsObj {
		return c.objectAssignable(so, to)
	}

	sf, sIsFn := source.(ast.FunctionType)
	tf, tIsFn := target.(ast.FunctionType)
	if sIsFn && tIsFn {
		return c.functionAssignable(sf, tf)
	}

	return false
}

func (c *Checker) isAnyOrError(t ast.Type) bool {
	p, ok := t.(ast.Primitive)
	return ok && (p.TypeID() == c.anyType.TypeID() || p.TypeID() == c.errorType.TypeID())
}

func (c *Checker) objectAssignable(source, target ast.ObjectType) bool {
	for _, name := range target.Members.Names() {
		tm, _ := target.Members.Get(name)
		sm, ok := source.Members.Get(name)
		if !ok {
			return false
		}
		if !c.isAssignableTo(c.getValueTypeOfSymbol(sm), c.getValueTypeOfSymbol(tm)) {
			return false
		}
	}
	return true
}

func (c *Checker) functionAssignable(source, target ast.FunctionType) bool {
	targetSig := target.Sig
	if len(source.Sig.TypeParameters) > 0 && len(targetSig.TypeParameters) > 0 {
		targetSig = c.renameTargetToSource(source.Sig, targetSig)
	}

	if !c.isAssignableTo(source.Sig.ReturnType, targetSig.ReturnType) {
		return false
	}
	if len(source.Sig.Parameters) > len(targetSig.Parameters) {
		return false
	}
	for i := range source.Sig.Parameters {
		sp := c.getValueTypeOfSymbol(source.Sig.Parameters[i])
		tp := c.getValueTypeOfSymbol(targetSig.Parameters[i])
		// Parameters compared contravariantly: target's parameter type must
		// be assignable to source's parameter type.
		if !c.isAssignableTo(tp, sp) {
			return false
		}
	}
	return true
}

// renameTargetToSource builds a mapper from target's type variables onto
// source's, then instantiates target's signature through it (spec §4.11
// step 4).
func (c *Checker) renameTargetToSource(sourceSig, targetSig *ast.SignatureType) *ast.SignatureType {
	n := len(targetSig.TypeParameters)
	if len(sourceSig.TypeParameters) < n {
		n = len(sourceSig.TypeParameters)
	}
	sources := make([]ast.TypeVariable, n)
	targets := make([]ast.Type, n)
	for i := 0; i < n; i++ {
		sources[i] = c.getTypeTypeOfSymbol(targetSig.TypeParameters[i]).(ast.TypeVariable)
		targets[i] = c.getTypeTypeOfSymbol(sourceSig.TypeParameters[i])
	}
	return c.instantiateSignature(targetSig, &ast.Mapper{Sources: sources, Targets: targets})
}
