package resolver

import (
	"github.com/timu-lang/timu/internal/ast"
	"github.com/timu-lang/timu/internal/diagnostics"
	"github.com/timu-lang/timu/internal/tir"
)

// resolveClasses is pass 5 (§4.3).
func (r *Resolver) resolveClasses() {
	for _, m := range r.ctx.Modules.Ordered() {
		if !m.IsReal() {
			continue
		}
		for _, stmt := range m.AST.Statements {
			class, ok := stmt.(*ast.Class)
			if !ok {
				continue
			}
			sig, _ := r.ctx.AstSignatures.Get(m.Path + "." + class.Name)
			if sig != nil {
				r.resolveClassSignature(sig)
			}
		}
		m.ClassesResolved = true
	}
}

// resolveClassSignature reserves a class's handle before resolving
// its fields, so that a field whose type is another not-yet-visited
// class in this compilation resolves to a stable, reusable handle
// instead of forcing a resolution order (S6: mutual class reference).
func (r *Resolver) resolveClassSignature(sig *tir.AstSignature) tir.TypeLocation {
	if r.classStarted[sig.Path] {
		loc, _ := r.ctx.Types.Location(sig.Path)
		return loc
	}
	r.classStarted[sig.Path] = true

	class := sig.Node.(*ast.Class)
	modulePath := parentPath(sig.Path)
	m, _ := r.ctx.Modules.Get(modulePath)

	loc, err := r.ctx.Types.Reserve(sig.Path, sig.Name, tir.KindClass, sig.File, sig.Span)
	if err != nil {
		loc, _ = r.ctx.Types.Location(sig.Path)
		return loc
	}

	// Extensions targeting this class are merged in by resolveExtension
	// directly into the published *tir.Class value, which may happen
	// before or after this function returns depending on whether pass 4
	// reached the extend clause first or forced this class's
	// resolution on demand; either way the merge mutates the same
	// pointer this function publishes below.
	fields := make(map[string]tir.TypeLocation)
	var order []string
	classScope := r.ctx.Scopes.New(m.Path, r.ctx.ModuleScope(m), loc)
	r.classScopes[sig.Path] = classScope

	for _, f := range class.Fields {
		ft, diag := r.resolveTypeName(m, f.Type)
		if diag != nil {
			r.diags.Add(diag)
			continue
		}
		if _, exists := fields[f.Name]; exists {
			r.diags.Add(diagnostics.New(diagnostics.AlreadyDefined, f.Sp,
				"\""+f.Name+"\" is already defined on this class"))
			continue
		}
		order = append(order, f.Name)
		fields[f.Name] = ft
		r.ctx.Scopes.Define(classScope, f.Name, tir.Local{Span: f.Sp, Type: ft, Nullable: f.Type.Nullable, Reference: f.Type.Reference})
	}

	value := &tir.Class{Name: sig.Name, Path: sig.Path, Fields: fields, FieldOrder: order}
	r.ctx.Types.Publish(sig.Path, value)
	m.Types[sig.Name] = loc

	for _, meth := range class.Methods {
		r.resolveMethod(m, sig.Path, loc, classScope, meth)
	}

	return loc
}

// resolveMethod resolves one class (or extend) method's signature,
// registers its Function type under "<path>.<methodName>", and queues
// its body for pass 7. classLoc is always the enclosing class's own
// handle here, so a method's `this` always resolves; ThisNotInClass
// is reserved for top-level functions (see resolveFunctionSignature).
func (r *Resolver) resolveMethod(m *tir.Module, classPath string, classLoc tir.TypeLocation, classScope tir.ScopeLocation, fn *ast.Function) {
	methodScope := r.ctx.Scopes.New(m.Path, classScope, classLoc)
	params, ret, _ := r.resolveParamsAndReturn(m, methodScope, fn.Parameters, fn.ReturnType)
	r.defineParams(methodScope, fn.Sp, params)
	methodPath := classPath + "." + fn.Name
	funcValue := &tir.Function{IsPublic: fn.Public, Name: fn.Name, Path: methodPath, Parameters: params, HasThis: fn.HasThis(), Return: ret}
	if _, err := r.ctx.Types.Add(methodPath, fn.Name, tir.KindFunction, funcValue); err != nil {
		r.diags.Add(diagnostics.New(diagnostics.AlreadyDefined, fn.Sp, "\""+fn.Name+"\" is already defined on this class"))
		return
	}
	r.pendingBodies = append(r.pendingBodies, pendingBody{module: m, fn: fn, scope: methodScope, path: methodPath})
}
