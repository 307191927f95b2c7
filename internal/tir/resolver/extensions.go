package resolver

import (
	"github.com/timu-lang/timu/internal/ast"
	"github.com/timu-lang/timu/internal/diagnostics"
	"github.com/timu-lang/timu/internal/source"
	"github.com/timu-lang/timu/internal/tir"
)

// resolveExtensions is pass 4 (§4.3 step 4): stage each extend
// clause's contributed members, check them against every listed
// interface, then merge the staged members into the target class's
// field table and scope. It runs before resolveClasses, but a target
// class may still need resolving on demand here; resolveClassSignature
// is idempotent so the classes pass later just sees it already done.
func (r *Resolver) resolveExtensions() {
	for _, m := range r.ctx.Modules.Ordered() {
		if !m.IsReal() {
			continue
		}
		for _, extend := range m.Extends {
			r.resolveExtension(m, extend)
		}
		m.ExtensionsResolved = true
	}
}

func (r *Resolver) resolveExtension(m *tir.Module, extend *ast.Extend) {
	classLoc, classScope, ok := r.resolveExtensionTarget(m, extend)
	if !ok {
		return
	}
	classValue, _ := r.ctx.Types.GetAt(classLoc)
	class, ok := classValue.(*tir.Class)
	if !ok {
		return
	}

	staged := make(map[string]tir.Staged)

	for _, f := range extend.Fields {
		if f.Public {
			r.diags.Add(diagnostics.New(diagnostics.ExtraAccessibilityIdentifier, f.PublicSp,
				"pub is not allowed here; members added by extend are always public"))
		}
		ft, diag := r.resolveTypeName(m, f.Type)
		if diag != nil {
			r.diags.Add(diag)
			continue
		}
		staged[f.Name] = tir.Staged{Name: f.Name, Type: ft, Span: f.Sp}
	}

	for _, meth := range extend.Methods {
		if meth.Public {
			r.diags.Add(diagnostics.New(diagnostics.ExtraAccessibilityIdentifier, meth.Sp,
				"pub is not allowed here; members added by extend are always public"))
		}
		methodScope := r.ctx.Scopes.New(m.Path, classScope, classLoc)
		params, ret, ok := r.resolveParamsAndReturn(m, methodScope, meth.Parameters, meth.ReturnType)
		if !ok {
			continue
		}
		methodPath := class.Path + "." + meth.Name
		funcValue := &tir.Function{IsPublic: true, Name: meth.Name, Path: methodPath, Parameters: params, HasThis: meth.HasThis(), Return: ret}
		methLoc, err := r.ctx.Types.Add(methodPath, meth.Name, tir.KindFunction, funcValue)
		if err != nil {
			r.diags.Add(diagnostics.New(diagnostics.AlreadyDefined, meth.Sp, "\""+meth.Name+"\" is already defined on this class"))
			continue
		}
		staged[meth.Name] = tir.Staged{Name: meth.Name, Type: methLoc, Span: meth.Sp}
		r.defineParams(methodScope, meth.Sp, params)
		r.pendingBodies = append(r.pendingBodies, pendingBody{module: m, fn: meth, scope: methodScope, path: methodPath})
	}

	var interfaceLocs []tir.TypeLocation
	refSpans := make(map[string]source.Span)
	for _, itn := range extend.Interfaces {
		loc, diag := r.resolveTypeName(m, itn)
		if diag != nil {
			r.diags.Add(diag)
			continue
		}
		interfaceLocs = append(interfaceLocs, loc)
		if v, ok := r.ctx.Types.GetAt(loc); ok {
			if iface, ok := v.(*tir.Interface); ok {
				refSpans[iface.Path] = itn.Sp
			}
		}
	}

	for _, d := range tir.CheckConformance(r.ctx, extend.Sp, refSpans, interfaceLocs, staged) {
		r.diags.Add(d)
	}

	extValue := &tir.Extension{TargetPath: class.Path, Interfaces: interfaceLocs, Members: make(map[string]tir.TypeLocation)}
	for name, s := range staged {
		extValue.Members[name] = s.Type
		if _, exists := class.Fields[name]; exists {
			// A second extension (or the class itself) already owns this
			// member name.
			r.diags.Add(diagnostics.New(diagnostics.AlreadyDefined, s.Span,
				"\""+name+"\" is already defined on this class"))
			continue
		}
		class.FieldOrder = append(class.FieldOrder, name)
		class.Fields[name] = s.Type
		if int(classScope) >= 0 {
			r.ctx.Scopes.Define(classScope, name, tir.Local{Span: s.Span, Type: s.Type})
		}
	}
	extLoc, err := r.ctx.Types.Add(r.ctx.TempName("extend."+class.Path), "extend", tir.KindExtension, extValue)
	if err == nil {
		class.Extensions = append(class.Extensions, extLoc)
	}
}

// resolveExtensionTarget resolves an extend clause's target to a
// class defined in the same module, reserving/resolving it on demand.
// Extending a class imported from elsewhere is rejected (§4.3 step 4a).
func (r *Resolver) resolveExtensionTarget(m *tir.Module, extend *ast.Extend) (tir.TypeLocation, tir.ScopeLocation, bool) {
	tn := extend.Target
	if len(tn.Segments) != 1 {
		r.diags.Add(diagnostics.New(diagnostics.InvalidType, tn.Sp, "extend target must be a class defined in this module"))
		return tir.UndefinedType(), tir.UndefinedScope(), false
	}
	name := tn.Segments[0]
	sigLoc, ok := m.Locals[name]
	if !ok {
		r.diags.Add(diagnostics.New(diagnostics.TypeNotFound, tn.Sp, "\""+name+"\" is not defined in this module"))
		return tir.UndefinedType(), tir.UndefinedScope(), false
	}
	sig, _ := r.ctx.AstSignatures.GetAt(sigLoc)
	if sig == nil || sig.Kind != tir.KindClass {
		r.diags.Add(diagnostics.New(diagnostics.InvalidType, tn.Sp, "\""+name+"\" is not a class"))
		return tir.UndefinedType(), tir.UndefinedScope(), false
	}
	loc := r.resolveClassSignature(sig)
	scope, ok := r.classScopes[sig.Path]
	if !ok {
		return loc, tir.UndefinedScope(), false
	}
	return loc, scope, true
}
