package resolver

import (
	"github.com/timu-lang/timu/internal/ast"
	"github.com/timu-lang/timu/internal/diagnostics"
	"github.com/timu-lang/timu/internal/tir"
)

// resolveFunctions is pass 6 (§4.3).
func (r *Resolver) resolveFunctions() {
	for _, m := range r.ctx.Modules.Ordered() {
		if !m.IsReal() {
			continue
		}
		for _, stmt := range m.AST.Statements {
			fn, ok := stmt.(*ast.Function)
			if !ok {
				continue
			}
			sig, _ := r.ctx.AstSignatures.Get(m.Path + "." + fn.Name)
			if sig != nil {
				r.resolveFunctionSignature(sig)
			}
		}
		m.FunctionsResolved = true
	}
}

// resolveFunctionSignature resolves and publishes a top-level
// function. Unlike a class/interface, a Function's TypeLocation is
// only ever consumed as a call target, never named as a field or
// parameter type, so no reservation step is needed before resolving
// its parameters — nothing can reference it before it is fully known.
func (r *Resolver) resolveFunctionSignature(sig *tir.AstSignature) tir.TypeLocation {
	if r.functionStarted[sig.Path] {
		loc, _ := r.ctx.Types.Location(sig.Path)
		return loc
	}
	r.functionStarted[sig.Path] = true

	fn := sig.Node.(*ast.Function)
	modulePath := parentPath(sig.Path)
	m, _ := r.ctx.Modules.Get(modulePath)

	for _, p := range fn.Parameters {
		if p.IsThis {
			r.diags.Add(diagnostics.New(diagnostics.ThisNotInClass, p.Sp,
				"this is only valid as a parameter of a class or extend method"))
		}
	}

	scope := r.ctx.Scopes.New(m.Path, r.ctx.ModuleScope(m), tir.UndefinedType())
	params, ret, _ := r.resolveParamsAndReturn(m, scope, fn.Parameters, fn.ReturnType)
	r.defineParams(scope, fn.Sp, params)

	value := &tir.Function{IsPublic: fn.Public, Name: fn.Name, Path: sig.Path, Parameters: params, HasThis: false, Return: ret}
	loc, err := r.ctx.Types.Add(sig.Path, sig.Name, tir.KindFunction, value)
	if err != nil {
		loc, _ = r.ctx.Types.Location(sig.Path)
		return loc
	}
	m.Types[sig.Name] = loc
	r.pendingBodies = append(r.pendingBodies, pendingBody{module: m, fn: fn, scope: scope, path: sig.Path})
	return loc
}
