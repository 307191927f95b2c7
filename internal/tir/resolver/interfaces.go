package resolver

import (
	"github.com/timu-lang/timu/internal/ast"
	"github.com/timu-lang/timu/internal/diagnostics"
	"github.com/timu-lang/timu/internal/source"
	"github.com/timu-lang/timu/internal/tir"
)

// resolveInterfaces is pass 3 (§4.3). Every interface is resolved
// through resolveInterfaceSignature, which is idempotent: a forward
// reference encountered while resolving an earlier interface may
// already have resolved a later one by the time this loop reaches it.
func (r *Resolver) resolveInterfaces() {
	for _, m := range r.ctx.Modules.Ordered() {
		if !m.IsReal() {
			continue
		}
		for _, stmt := range m.AST.Statements {
			iface, ok := stmt.(*ast.Interface)
			if !ok {
				continue
			}
			sig, _ := r.ctx.AstSignatures.Get(m.Path + "." + iface.Name)
			if sig != nil {
				r.resolveInterfaceSignature(sig)
			}
		}
		m.InterfacesResolved = true
	}
}

// resolveInterfaceSignature reserves, resolves and publishes the
// interface named by sig, recursively resolving its parent interfaces
// first so their members can be copied forward (§9: "interface
// multiple-inheritance ... compute the closure ... before comparing").
func (r *Resolver) resolveInterfaceSignature(sig *tir.AstSignature) tir.TypeLocation {
	if r.interfaceStarted[sig.Path] {
		loc, _ := r.ctx.Types.Location(sig.Path)
		return loc
	}
	r.interfaceStarted[sig.Path] = true

	iface := sig.Node.(*ast.Interface)
	modulePath := parentPath(sig.Path)
	m, _ := r.ctx.Modules.Get(modulePath)

	loc, err := r.ctx.Types.Reserve(sig.Path, sig.Name, tir.KindInterface, sig.File, sig.Span)
	if err != nil {
		loc, _ = r.ctx.Types.Location(sig.Path)
		return loc
	}

	members := make(map[string]tir.TypeLocation)
	var order []string

	addMember := func(name string, memberLoc tir.TypeLocation) {
		if _, exists := members[name]; !exists {
			order = append(order, name)
		}
		members[name] = memberLoc
	}

	for _, parentTn := range iface.Parents {
		parentLoc, diag := r.resolveTypeName(m, parentTn)
		if diag != nil {
			r.diags.Add(diag)
			continue
		}
		parentMembers, parentOrder := tir.FlattenInterface(r.ctx, parentLoc, nil)
		for _, name := range parentOrder {
			addMember(name, parentMembers[name])
		}
	}

	scope := r.ctx.ModuleScope(m)
	for _, f := range iface.Fields {
		if f.Public {
			r.diags.Add(diagnostics.New(diagnostics.ExtraAccessibilityIdentifier, f.PublicSp,
				"pub is not allowed on interface members; interfaces are always public"))
		}
		ft, diag := r.resolveTypeName(m, f.Type)
		if diag != nil {
			r.diags.Add(diag)
			continue
		}
		addMember(f.Name, ft)
	}
	for _, meth := range iface.Methods {
		if meth.Public {
			r.diags.Add(diagnostics.New(diagnostics.ExtraAccessibilityIdentifier, meth.PublicSp,
				"pub is not allowed on interface members; interfaces are always public"))
		}
		params, ret, ok := r.resolveParamsAndReturn(m, scope, meth.Parameters, meth.ReturnType)
		if !ok {
			continue
		}
		methLoc, _ := r.ctx.Types.Add(sig.Path+"."+meth.Name, meth.Name, tir.KindInterfaceMethod,
			&tir.InterfaceMethod{Name: meth.Name, Parameters: params, Return: ret})
		addMember(meth.Name, methLoc)
	}

	value := &tir.Interface{Name: sig.Name, Path: sig.Path, Members: members, MemberOrder: order}
	r.ctx.Types.Publish(sig.Path, value)
	m.Types[sig.Name] = loc
	return loc
}

// resolveParamsAndReturn resolves a parameter list and return
// type-name shared by interface methods, class methods and top-level
// functions.
func (r *Resolver) resolveParamsAndReturn(m *tir.Module, scope tir.ScopeLocation, params []*ast.Parameter, returnType *ast.TypeName) ([]tir.Param, tir.TypeLocation, bool) {
	out := make([]tir.Param, 0, len(params))
	ok := true
	for _, p := range params {
		if p.IsThis {
			out = append(out, tir.Param{Name: "this", Type: r.ctx.Scopes.CurrentTypeOf(scope)})
			continue
		}
		t, diag := r.resolveTypeName(m, p.Type)
		if diag != nil {
			r.diags.Add(diag)
			ok = false
			continue
		}
		out = append(out, tir.Param{Name: p.Name, Type: t})
	}
	ret, diag := r.resolveTypeName(m, returnType)
	if diag != nil {
		r.diags.Add(diag)
		ok = false
	}
	return out, ret, ok
}

// defineParams binds every non-receiver parameter as a local in the
// function's scope. A duplicate parameter name is a duplicate binding
// in one scope, the same error a duplicated `var` raises.
func (r *Resolver) defineParams(scope tir.ScopeLocation, span source.Span, params []tir.Param) {
	for _, p := range params {
		if p.Name == "this" {
			continue
		}
		if err := r.ctx.Scopes.Define(scope, p.Name, tir.Local{Span: span, Type: p.Type}); err != nil {
			r.diags.Add(diagnostics.New(diagnostics.VariableAlreadyDefined, span,
				"parameter \""+p.Name+"\" is already defined"))
		}
	}
}
