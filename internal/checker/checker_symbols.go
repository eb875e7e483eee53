package checker

import (
	"github.com/tyro-lang/tyro/internal/ast"
	"github.com/tyro-lang/tyro/internal/diagnostics"
	"github.com/tyro-lang/tyro/internal/ice"
)

// getValueTypeOfSymbol implements spec §4.10. Instantiated symbols (Target
// set) are never cached here — spec §4.8 ("no caching of instantiations")
// means every lookup on an instantiated symbol recomputes through its
// target.
func (c *Checker) getValueTypeOfSymbol(sym *ast.Symbol) ast.Type {
	if sym.ValueType != nil {
		return sym.ValueType
	}
	if sym.Target != nil {
		return c.instantiateType(c.getValueTypeOfSymbol(sym.Target), sym.Mapper)
	}
	if sym.ValueDeclaration == nil {
		ice.Panic("checker: getValueTypeOfSymbol: symbol %q has no value declaration", sym.Name)
	}
	if sym.ValueInProgress() {
		return c.anyType
	}
	sym.SetValueInProgress(true)
	defer sym.SetValueInProgress(false)

	var t ast.Type
	switch d := sym.ValueDeclaration.(type) {
	case *ast.Var:
		t = c.checkStatement(d)
	case *ast.TypeAlias:
		t = c.checkStatement(d)
	case *ast.Object:
		t = c.checkExpression(d)
	case *ast.PropertyAssignment:
		t = c.checkExpression(d.Initializer)
	case *ast.PropertyDeclaration:
		if d.TypeName != nil {
			t = c.checkType(d.TypeName)
		} else {
			t = c.anyType
		}
	case *ast.Parameter:
		if d.TypeName != nil {
			t = c.checkType(d.TypeName)
		} else {
			t = c.anyType
		}
	case *ast.Function:
		t = c.getTypeOfFunction(d)
	default:
		ice.Panic("checker: getValueTypeOfSymbol: unhandled declaration kind %T", d)
	}
	sym.ValueType = t
	return t
}

// getTypeTypeOfSymbol implements spec §4.10's type-meaning counterpart.
func (c *Checker) getTypeTypeOfSymbol(sym *ast.Symbol) ast.Type {
	if sym.TypeType != nil {
		return sym.TypeType
	}
	if sym.Target != nil {
		return c.instantiateType(c.getTypeTypeOfSymbol(sym.Target), sym.Mapper)
	}
	if sym.TypeInProgress() {
		return c.anyType
	}
	sym.SetTypeInProgress(true)
	defer sym.SetTypeInProgress(false)

	for _, d := range sym.Declarations {
		switch d := d.(type) {
		case *ast.TypeAlias:
			t := c.checkType(d.TypeName)
			sym.TypeType = t
			return t
		case *ast.TypeParameter:
			t := ast.TypeVariable{ID: c.newID(), Name: d.Name.Text}
			sym.TypeType = t
			return t
		case *ast.Signature:
			return c.getTypeOfSignature(d)
		}
	}
	ice.Panic("checker: getTypeTypeOfSymbol: no Type declaration found for %q", sym.Name)
	return nil
}

// getTypeOfFunction implements spec §4.10's Function builder.
func (c *Checker) getTypeOfFunction(fn *ast.Function) ast.Type {
	for _, tp := range fn.TypeParameters {
		c.getTypeTypeOfSymbol(tp.Sym)
	}
	for _, p := range fn.Parameters {
		c.getValueTypeOfSymbol(p.Sym)
	}

	var declaredType ast.Type
	if fn.TypeName != nil {
		declaredType = c.checkType(fn.TypeName)
	}
	bodyType := c.checkBody(fn.Body, declaredType)

	var typeParamSyms []*ast.Symbol
	for _, tp := range fn.TypeParameters {
		typeParamSyms = append(typeParamSyms, tp.Sym)
	}
	paramSyms := make([]*ast.Symbol, len(fn.Parameters))
	for i, p := range fn.Parameters {
		paramSyms[i] = p.Sym
	}

	returnType := declaredType
	if returnType == nil {
		returnType = bodyType
	}
	if returnType == nil {
		// Neither a declared return type nor any return statement: the
		// function returns nothing observable. any is the safe absorber,
		// consistent with how an unannotated binding defaults elsewhere.
		returnType = c.anyType
	}

	sig := &ast.SignatureType{TypeParameters: typeParamSyms, Parameters: paramSyms, ReturnType: returnType}
	t := ast.FunctionType{ID: c.newID(), Sig: sig}
	fn.Sym.ValueType = t
	return t
}

// getTypeOfSignature implements spec §4.10's Signature-type-node builder.
func (c *Checker) getTypeOfSignature(decl *ast.Signature) ast.Type {
	for _, tp := range decl.TypeParameters {
		c.getTypeTypeOfSymbol(tp.Sym)
	}
	for _, p := range decl.Parameters {
		c.getValueTypeOfSymbol(p.Sym)
	}

	var typeParamSyms []*ast.Symbol
	for _, tp := range decl.TypeParameters {
		typeParamSyms = append(typeParamSyms, tp.Sym)
	}
	paramSyms := make([]*ast.Symbol, len(decl.Parameters))
	for i, p := range decl.Parameters {
		paramSyms[i] = p.Sym
	}

	returnType := ast.Type(c.anyType)
	if decl.ReturnType != nil {
		returnType = c.checkType(decl.ReturnType)
	}

	sig := &ast.SignatureType{TypeParameters: typeParamSyms, Parameters: paramSyms, ReturnType: returnType}
	t := ast.FunctionType{ID: c.newID(), Sig: sig}
	decl.Sym.TypeType = t
	return t
}

// checkBody implements spec §4.10's checkBody: every statement is checked
// for its side effects, Return statements in the immediate body (not
// through nested function expressions) are collected, and the first
// collected return type is reported back to the caller.
func (c *Checker) checkBody(body []ast.Statement, declaredType ast.Type) ast.Type {
	var returnTypes []ast.Type
	for _, s := range body {
		switch s := s.(type) {
		case *ast.Return:
			rt := c.checkExpression(s.Expr)
			returnTypes = append(returnTypes, rt)
			if declaredType != nil && !c.isAssignableTo(rt, declaredType) {
				c.sink.Report(s, diagnostics.ErrReturnMismatch,
					"Returned type '%s' does not match declared return type '%s'.",
					ast.TypeToString(rt), ast.TypeToString(declaredType))
			}
		case *ast.Var, *ast.ExpressionStatement, *ast.TypeAlias:
			c.checkStatement(s)
		default:
			ice.Panic("checker: checkBody: unknown statement kind %T", s)
		}
	}
	if len(returnTypes) == 0 {
		return nil
	}
	return returnTypes[0]
}

// checkCall implements spec §4.7.
func (c *Checker) checkCall(call *ast.Call) ast.Type {
	et := c.checkExpression(call.Callee)
	fn, ok := et.(ast.FunctionType)
	if !ok {
		c.sink.Report(call.Callee, diagnostics.ErrCannotCall, "Cannot call expression of type '%s'.", ast.TypeToString(et))
		return c.errorType
	}

	argTypes := make([]ast.Type, len(call.Arguments))
	for i, a := range call.Arguments {
		argTypes[i] = c.checkExpression(a)
	}

	sig := fn.Sig
	if len(sig.TypeParameters) > 0 {
		typeParams := make([]ast.TypeVariable, len(sig.TypeParameters))
		for i, tp := range sig.TypeParameters {
			typeParams[i] = c.getTypeTypeOfSymbol(tp).(ast.TypeVariable)
		}

		var typeArgs []ast.Type
		switch {
		case len(call.TypeArguments) == 0:
			typeArgs = c.inferTypeArguments(typeParams, sig, argTypes)
		case len(call.TypeArguments) != len(typeParams):
			c.sink.Report(call, diagnostics.ErrTypeArity, "Expected %d type arguments, but got %d.", len(typeParams), len(call.TypeArguments))
			typeArgs = make([]ast.Type, len(typeParams))
			for i := range typeArgs {
				typeArgs[i] = c.anyType
			}
		default:
			typeArgs = make([]ast.Type, len(call.TypeArguments))
			for i, ta := range call.TypeArguments {
				typeArgs[i] = c.checkType(ta)
			}
		}
		mapper := &ast.Mapper{Sources: typeParams, Targets: typeArgs}
		sig = c.instantiateSignature(sig, mapper)
	}

	if len(sig.Parameters) != len(call.Arguments) {
		c.sink.Report(call.Callee, diagnostics.ErrArity, "Expected %d arguments, but got %d.", len(sig.Parameters), len(call.Arguments))
	}

	n := len(argTypes)
	if len(sig.Parameters) < n {
		n = len(sig.Parameters)
	}
	for i := 0; i < n; i++ {
		pt := c.getValueTypeOfSymbol(sig.Parameters[i])
		if !c.isAssignableTo(argTypes[i], pt) {
			c.sink.Report(call.Arguments[i], diagnostics.ErrArgument, "Expected argument of type '%s', but got '%s'.", ast.TypeToString(pt), ast.TypeToString(argTypes[i]))
		}
	}
	return sig.ReturnType
}
